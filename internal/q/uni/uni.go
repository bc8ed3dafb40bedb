// Package uni measures text as a monospace terminal displays it: by grapheme cluster, in cells.
package uni

import (
	"iter"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation. A nil *Options means a non-East Asian locale.
type Options struct {
	EastAsianWidth   bool // Treat ambiguous East Asian code points as 2 cells. Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. Treat emoji as 2 cells.
}

// Width returns the number of terminal cells s occupies.
func Width(s string, opts *Options) int {
	return condition(opts).StringWidth(s)
}

// Graphemes yields each grapheme cluster of s with its width in cells.
func Graphemes(s string, opts *Options) iter.Seq2[string, int] {
	cond := condition(opts)
	return func(yield func(string, int) bool) {
		it := graphemes.FromString(s)
		for it.Next() {
			g := it.Value()
			if !yield(g, cond.StringWidth(g)) {
				return
			}
		}
	}
}

func condition(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true
	if opts == nil {
		return cond
	}
	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}
	return cond
}
