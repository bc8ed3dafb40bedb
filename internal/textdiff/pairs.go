package textdiff

import (
	"iter"

	"github.com/codalotl/linediff/internal/lcs"
)

// Pair is a removed line and an added line treated as the same line, changed.
type Pair struct {
	Old string `json:"old"` // The removed line.
	New string `json:"new"` // The added line.
}

// Entry is one step of a pairing walk: either a plain line operation (Modified == false, Op set) or a modified pair (Modified == true, Pair set).
type Entry struct {
	Op       lcs.Edit[string]
	Pair     Pair
	Modified bool
}

// Resolve walks ops once, left to right, yielding plain operations and modified pairs:
//   - Removed at i followed by Added at i+1 yields Pair{Old: ops[i], New: ops[i+1]} and consumes both.
//   - Added at i followed by Removed at i+1 yields Pair{Old: ops[i+1], New: ops[i]} and consumes both.
//   - Anything else yields ops[i] as a plain entry.
//
// A consumed operation is never reconsidered, and nothing past the immediate neighbor is examined.
func Resolve(ops []lcs.Edit[string]) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i := 0; i < len(ops); {
			cur := ops[i]
			if i+1 < len(ops) {
				next := ops[i+1]
				switch {
				case cur.Kind == lcs.Removed && next.Kind == lcs.Added:
					if !yield(Entry{Pair: Pair{Old: cur.Value, New: next.Value}, Modified: true}) {
						return
					}
					i += 2
					continue
				case cur.Kind == lcs.Added && next.Kind == lcs.Removed:
					if !yield(Entry{Pair: Pair{Old: next.Value, New: cur.Value}, Modified: true}) {
						return
					}
					i += 2
					continue
				}
			}
			if !yield(Entry{Op: cur}) {
				return
			}
			i++
		}
	}
}

// ResolvePairs materializes Resolve(ops) and also returns the number of modified pairs.
func ResolvePairs(ops []lcs.Edit[string]) ([]Entry, int) {
	entries := make([]Entry, 0, len(ops))
	pairs := 0
	for e := range Resolve(ops) {
		if e.Modified {
			pairs++
		}
		entries = append(entries, e)
	}
	return entries, pairs
}

// CountPairs returns the number of modified pairs Resolve would yield for ops.
func CountPairs(ops []lcs.Edit[string]) int {
	n := 0
	for e := range Resolve(ops) {
		if e.Modified {
			n++
		}
	}
	return n
}
