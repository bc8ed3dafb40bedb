package diff

import (
	"fmt"

	"github.com/codalotl/linediff/internal/lcs"
)

// Summary counts a Diff. Same/Added/Removed count the line-level edit script, so a modified pair contributes one Removed, one Added, and one ChangedPairs.
type Summary struct {
	OriginalLines int `json:"original_lines"`
	ModifiedLines int `json:"modified_lines"`
	Same          int `json:"same"`
	Added         int `json:"added"`
	Removed       int `json:"removed"`
	ChangedPairs  int `json:"changed_pairs"`
}

// Summary returns d's counts.
func (d Diff) Summary() Summary {
	c := lcs.Count(d.Ops)
	pairs := 0
	for _, ln := range d.Lines {
		if ln.Op == OpReplace {
			pairs++
		}
	}
	return Summary{
		OriginalLines: len(d.OldLines),
		ModifiedLines: len(d.NewLines),
		Same:          c.Same,
		Added:         c.Added,
		Removed:       c.Removed,
		ChangedPairs:  pairs,
	}
}

// String renders s on one line, ex: "Original: 2 lines | Modified: 2 lines | Same: 1 | Added: 1 | Removed: 1 | Changed pairs: 1".
func (s Summary) String() string {
	return fmt.Sprintf("Original: %d lines | Modified: %d lines | Same: %d | Added: %d | Removed: %d | Changed pairs: %d",
		s.OriginalLines, s.ModifiedLines, s.Same, s.Added, s.Removed, s.ChangedPairs)
}
