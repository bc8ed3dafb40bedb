package diff

import (
	"strings"

	"github.com/codalotl/linediff/internal/q/termformat"
)

// DefaultWidth is the total width RenderSideBySide uses when given a width <= 0.
const DefaultWidth = 120

// Side-by-side markers, placed between the two columns.
const (
	markerEqual   = ' '
	markerDelete  = '<'
	markerInsert  = '>'
	markerReplace = '|'
)

// RenderSideBySide renders d as two columns: old lines on the left and new lines on the right, separated by a marker column (' ' unchanged, '<' removed,
// '>' added, '|' modified). Each column is (width-3)/2 cells; text is sanitized (tabs become 4 spaces), then padded or truncated with an ellipsis to fit.
// If color is true, changed cells are highlighted. contextSize folds unchanged rows as in RenderPlain.
func (d Diff) RenderSideBySide(width int, color bool, contextSize int) string {
	const (
		reset     = "\x1b[0m"
		pinkLine  = "\x1b[30;48;5;224m"
		greenLine = "\x1b[30;48;5;194m"
		dim       = "\x1b[2m"
	)

	if width <= 0 {
		width = DefaultWidth
	}
	col := max(1, (width-3)/2)

	cell := func(text string, bg string, show bool) string {
		if !show {
			return strings.Repeat(" ", col)
		}
		s := termformat.Fit(termformat.Sanitize(text, 4), col)
		if color && bg != "" {
			return bg + s + reset
		}
		return s
	}

	var out []string
	for gi, r := range d.visibleRanges(contextSize) {
		if gi > 0 {
			sep := termformat.Fit(groupSeparator, col)
			if color {
				sep = dim + sep + reset
			}
			out = append(out, sep)
		}
		for _, ln := range d.Lines[r[0]:r[1]] {
			var left, right string
			var marker byte
			switch ln.Op {
			case OpEqual:
				left, right, marker = cell(ln.OldText, "", true), cell(ln.NewText, "", true), markerEqual
			case OpDelete:
				left, right, marker = cell(ln.OldText, pinkLine, true), cell("", "", false), markerDelete
			case OpInsert:
				left, right, marker = cell("", "", false), cell(ln.NewText, greenLine, true), markerInsert
			case OpReplace:
				left, right, marker = cell(ln.OldText, pinkLine, true), cell(ln.NewText, greenLine, true), markerReplace
			}
			out = append(out, left+" "+string(marker)+" "+right)
		}
	}
	return strings.Join(out, "\n")
}
