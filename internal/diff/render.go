package diff

import (
	"fmt"
	"strings"
)

// Line prefixes, shared by the text renderers.
const (
	prefixEqual  = "  "
	prefixInsert = "+ "
	prefixDelete = "- "

	groupSeparator = "..."
)

// visibleRanges returns the [start, end) row ranges to show. contextSize < 0 shows everything as one range (or nothing, if there are no rows). Otherwise
// each changed row is shown with up to contextSize unchanged rows on each side, and ranges that touch or overlap are merged.
func (d Diff) visibleRanges(contextSize int) [][2]int {
	if contextSize < 0 {
		if len(d.Lines) == 0 {
			return nil
		}
		return [][2]int{{0, len(d.Lines)}}
	}

	var ranges [][2]int
	for i, ln := range d.Lines {
		if ln.Op == OpEqual {
			continue
		}
		start := max(0, i-contextSize)
		end := min(len(d.Lines), i+contextSize+1)
		if n := len(ranges); n > 0 && start <= ranges[n-1][1] {
			ranges[n-1][1] = max(ranges[n-1][1], end)
			continue
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// RenderPlain returns d as uncolored text, one row per line, prefixed with "  " (unchanged), "+ " (added), or "- " (removed). A modified pair is a "- "
// line with the old text followed by a "+ " line with the new text. Groups of rows are separated by "..." when contextSize folds rows away. Lines are joined
// with "\n" and there is no trailing newline.
func (d Diff) RenderPlain(contextSize int) string {
	var out []string
	for gi, r := range d.visibleRanges(contextSize) {
		if gi > 0 {
			out = append(out, groupSeparator)
		}
		for _, ln := range d.Lines[r[0]:r[1]] {
			switch ln.Op {
			case OpEqual:
				out = append(out, prefixEqual+ln.OldText)
			case OpInsert:
				out = append(out, prefixInsert+ln.NewText)
			case OpDelete:
				out = append(out, prefixDelete+ln.OldText)
			case OpReplace:
				out = append(out, prefixDelete+ln.OldText, prefixInsert+ln.NewText)
			}
		}
	}
	return strings.Join(out, "\n")
}

// RenderPretty returns a human-oriented, colorized rendering of d. Rows are laid out like RenderPlain. Within a modified pair, removed words are highlighted
// on the "- " line and added words on the "+ " line; empty tokens are skipped.
//
// If fromFilename and toFilename are both empty, no header is printed. Otherwise a single cyan header line is emitted in one of these forms:
//   - "add <to>:" when only toFilename is set
//   - "delete <from>:" when only fromFilename is set
//   - "<name>:" when both are equal
//   - "<from> -> <to>:" otherwise
//
// The output contains ANSI 256-color escape sequences and is intended for terminals.
func (d Diff) RenderPretty(fromFilename string, toFilename string, contextSize int) string {
	const (
		reset     = "\x1b[0m"
		blackFG   = "\x1b[30m"
		pinkLine  = "\x1b[48;5;224m" // light pink for deleted lines
		pinkSpan  = "\x1b[48;5;217m" // slightly darker pink for deleted words
		greenLine = "\x1b[48;5;194m" // light green for added lines
		greenSpan = "\x1b[48;5;114m" // slightly darker green for added words
		cyanBold  = "\x1b[1;36m"
		dim       = "\x1b[2m"
	)

	var out []string

	if header := headerFor(fromFilename, toFilename); header != "" {
		out = append(out, cyanBold+header+reset)
	}

	// Render the tokens of a modified pair for either the '-' (old) or '+' (new) side.
	renderWords := func(ln DiffLine, tag byte, baseBg string) string {
		var b strings.Builder
		for _, sp := range ln.Spans {
			var text, spanBg string
			switch {
			case sp.Op == OpEqual:
				text = sp.OldText
			case tag == '-' && sp.Op == OpDelete:
				text, spanBg = sp.OldText, pinkSpan
			case tag == '+' && sp.Op == OpInsert:
				text, spanBg = sp.NewText, greenSpan
			}
			if text == "" {
				continue
			}
			if spanBg == "" {
				b.WriteString(text)
				continue
			}
			// Emphasize the word, then reapply the line's base colors.
			b.WriteString(reset + blackFG + spanBg + text + reset + blackFG + baseBg)
		}
		return b.String()
	}

	for gi, r := range d.visibleRanges(contextSize) {
		if gi > 0 {
			out = append(out, dim+groupSeparator+reset)
		}
		for _, ln := range d.Lines[r[0]:r[1]] {
			switch ln.Op {
			case OpEqual:
				out = append(out, blackFG+prefixEqual+ln.OldText+reset)
			case OpDelete:
				out = append(out, blackFG+pinkLine+prefixDelete+ln.OldText+reset)
			case OpInsert:
				out = append(out, blackFG+greenLine+prefixInsert+ln.NewText+reset)
			case OpReplace:
				out = append(out, blackFG+pinkLine+prefixDelete+renderWords(ln, '-', pinkLine)+reset)
				out = append(out, blackFG+greenLine+prefixInsert+renderWords(ln, '+', greenLine)+reset)
			}
		}
	}

	return strings.Join(out, "\n")
}

func headerFor(fromFilename, toFilename string) string {
	switch {
	case fromFilename == "" && toFilename == "":
		return ""
	case fromFilename == "":
		return fmt.Sprintf("add %s:", toFilename)
	case toFilename == "":
		return fmt.Sprintf("delete %s:", fromFilename)
	case fromFilename == toFilename:
		return fmt.Sprintf("%s:", fromFilename)
	default:
		return fmt.Sprintf("%s -> %s:", fromFilename, toFilename)
	}
}
