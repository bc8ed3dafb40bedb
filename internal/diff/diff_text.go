package diff

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/codalotl/linediff/internal/lcs"
	"github.com/codalotl/linediff/internal/textdiff"
)

// DiffText splits oldText and newText into lines and diffs them, returning a Diff.
func DiffText(oldText, newText string) Diff {
	d, _ := DiffTextLimited(oldText, newText, 0)
	return d
}

// DiffTextLimited is DiffText with a bound on the comparison tables it allocates: the line table, (len(OldLines)+1)*(len(NewLines)+1) cells, and
// the word table of each modified pair, (old tokens+1)*(new tokens+1) cells. If a table would exceed maxCells, a *TooLargeError is returned before
// it is allocated. maxCells <= 0 means no limit.
func DiffTextLimited(oldText, newText string, maxCells int) (Diff, error) {
	d, err := build(textdiff.SplitLines(oldText), textdiff.SplitLines(newText), maxCells)
	if err != nil {
		return Diff{}, err
	}
	d.OldText = oldText
	d.NewText = newText
	mustValidate(d, "DiffText")
	return d, nil
}

// DiffLines diffs two already-split line slices. OldText and NewText of the result are empty.
func DiffLines(oldLines, newLines []string) Diff {
	d, _ := build(oldLines, newLines, 0)
	mustValidate(d, "DiffLines")
	return d
}

func mustValidate(d Diff, caller string) {
	if err := d.validate(); err != nil {
		panic(fmt.Errorf("%s: validate failed with %v", caller, err))
	}
}

// TooLargeError reports a comparison table that would exceed the cell limit given to DiffTextLimited.
type TooLargeError struct {
	Unit     string // "lines" for the line table, "words" for a modified pair's word table.
	OldLine  int    // 1-based line number in the old text of the modified pair. 0 for the line table.
	M, N     int    // Number of old and new lines (or tokens).
	MaxCells int
}

func (e *TooLargeError) Error() string {
	m, n, maxCells := humanize.Comma(int64(e.M)), humanize.Comma(int64(e.N)), humanize.Comma(int64(e.MaxCells))
	if e.Unit == "lines" {
		return fmt.Sprintf("inputs too large: %s x %s lines exceeds maxcells (%s)", m, n, maxCells)
	}
	return fmt.Sprintf("line %d too large: %s x %s %s exceeds maxcells (%s)", e.OldLine, m, n, e.Unit, maxCells)
}

func checkCells(unit string, oldLine, m, n, maxCells int) error {
	if maxCells <= 0 {
		return nil
	}
	if cells := (m + 1) * (n + 1); cells > maxCells || cells < 0 {
		return &TooLargeError{Unit: unit, OldLine: oldLine, M: m, N: n, MaxCells: maxCells}
	}
	return nil
}

func build(oldLines, newLines []string, maxCells int) (Diff, error) {
	if err := checkCells("lines", 0, len(oldLines), len(newLines), maxCells); err != nil {
		return Diff{}, err
	}
	ops := textdiff.DiffLines(oldLines, newLines)

	lines := make([]DiffLine, 0, len(ops))
	oldLine := 0 // old lines consumed so far
	for e := range textdiff.Resolve(ops) {
		if e.Modified {
			oldLine++
			oldToks, newToks := textdiff.TokenizeWords(e.Pair.Old), textdiff.TokenizeWords(e.Pair.New)
			if err := checkCells("words", oldLine, len(oldToks), len(newToks), maxCells); err != nil {
				return Diff{}, err
			}
			lines = append(lines, DiffLine{
				Op:      OpReplace,
				OldText: e.Pair.Old,
				NewText: e.Pair.New,
				Spans:   tokensToSpans(lcs.Diff(oldToks, newToks)),
			})
			continue
		}
		switch e.Op.Kind {
		case lcs.Same:
			oldLine++
			lines = append(lines, DiffLine{Op: OpEqual, OldText: e.Op.Value, NewText: e.Op.Value})
		case lcs.Added:
			lines = append(lines, DiffLine{Op: OpInsert, NewText: e.Op.Value})
		case lcs.Removed:
			oldLine++
			lines = append(lines, DiffLine{Op: OpDelete, OldText: e.Op.Value})
		}
	}

	return Diff{OldLines: oldLines, NewLines: newLines, Ops: ops, Lines: lines}, nil
}

// tokensToSpans converts a token-level edit script to spans, one per token.
func tokensToSpans(tokens []lcs.Edit[string]) []DiffSpan {
	spans := make([]DiffSpan, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case lcs.Same:
			spans = append(spans, DiffSpan{Op: OpEqual, OldText: tok.Value, NewText: tok.Value})
		case lcs.Removed:
			spans = append(spans, DiffSpan{Op: OpDelete, OldText: tok.Value})
		case lcs.Added:
			spans = append(spans, DiffSpan{Op: OpInsert, NewText: tok.Value})
		}
	}
	return spans
}
