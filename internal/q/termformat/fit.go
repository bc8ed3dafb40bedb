package termformat

import (
	"strings"

	"github.com/codalotl/linediff/internal/q/uni"
)

// Ellipsis marks text that Fit truncated.
const Ellipsis = "…"

// Fit returns s laid out in exactly width cells. s must be plain text (no ANSI sequences or controls; see Sanitize). Shorter text is padded with spaces.
// Longer text is cut at a grapheme cluster boundary and ends with Ellipsis; a wide cluster that would straddle the limit is dropped and replaced by padding.
// If width <= 0, Fit returns "".
//
// Examples:
//   - Fit("abc", 5) -> "abc  "
//   - Fit("abcdef", 4) -> "abc…"
//   - Fit("a界b", 3) -> "a …"
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}

	total := uni.Width(s, nil)
	if total <= width {
		return s + strings.Repeat(" ", width-total)
	}

	var b strings.Builder
	used := 0
	for g, w := range uni.Graphemes(s, nil) {
		if used+w > width-1 {
			break
		}
		b.WriteString(g)
		used += w
	}
	b.WriteString(strings.Repeat(" ", width-1-used))
	b.WriteString(Ellipsis)
	return b.String()
}
