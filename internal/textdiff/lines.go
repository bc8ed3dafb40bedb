package textdiff

import (
	"strings"

	"github.com/codalotl/linediff/internal/lcs"
)

// SplitLines splits text into lines. "\n" and "\r\n" are both line separators and are not part of the returned lines. An empty text has zero lines; a
// trailing separator produces a trailing empty line ("a\n" -> ["a", ""]). A "\r" not followed by "\n" is content.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	parts := strings.Split(text, "\n")
	for i := 0; i < len(parts)-1; i++ {
		parts[i] = strings.TrimSuffix(parts[i], "\r")
	}
	return parts
}

// DiffLines returns the line-level edit script from a to b. No pairing is done.
func DiffLines(a, b []string) []lcs.Edit[string] {
	return lcs.Diff(a, b)
}

// DiffTexts splits oldText and newText into lines and diffs them.
func DiffTexts(oldText, newText string) []lcs.Edit[string] {
	return DiffLines(SplitLines(oldText), SplitLines(newText))
}
