package diff

import (
	"encoding/json"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/codalotl/linediff/internal/lcs"
)

// Report is the machine-readable form of a Diff.
type Report struct {
	Summary Summary     `json:"summary"`
	Rows    []ReportRow `json:"rows"`
}

// ReportRow is one row of a Report. Kind is "same", "added", "removed", or "modified". Text is set for the first three; Pair is set for "modified".
type ReportRow struct {
	Kind string      `json:"kind"`
	Text *string     `json:"text,omitempty"`
	Pair *ReportPair `json:"pair,omitempty"`
}

// ReportPair describes a modified pair. Words is the token-level edit script, without empty edge tokens. Levenshtein is the edit distance in runes over that script (a substitution
// counts once, as the longer of its insert/delete). Delta is the script in diff-match-patch delta form, which can be applied to Old to recover New.
type ReportPair struct {
	Old         string             `json:"old"`
	New         string             `json:"new"`
	Words       []lcs.Edit[string] `json:"words"`
	Levenshtein int                `json:"levenshtein"`
	Delta       string             `json:"delta"`
}

// Report builds d's Report. Every row is included, regardless of any context folding the text renderers apply.
func (d Diff) Report() Report {
	dmp := diffmatchpatch.New()
	r := Report{Summary: d.Summary(), Rows: make([]ReportRow, 0, len(d.Lines))}
	for _, ln := range d.Lines {
		switch ln.Op {
		case OpEqual:
			r.Rows = append(r.Rows, ReportRow{Kind: "same", Text: ptr(ln.OldText)})
		case OpInsert:
			r.Rows = append(r.Rows, ReportRow{Kind: "added", Text: ptr(ln.NewText)})
		case OpDelete:
			r.Rows = append(r.Rows, ReportRow{Kind: "removed", Text: ptr(ln.OldText)})
		case OpReplace:
			diffs := spansToDMP(ln.Spans)
			r.Rows = append(r.Rows, ReportRow{Kind: "modified", Pair: &ReportPair{
				Old:         ln.OldText,
				New:         ln.NewText,
				Words:       spansToEdits(ln.Spans),
				Levenshtein: dmp.DiffLevenshtein(diffs),
				Delta:       dmp.DiffToDelta(diffs),
			}})
		}
	}
	return r
}

// RenderJSON returns d.Report() as indented JSON followed by a newline.
func (d Diff) RenderJSON() (string, error) {
	b, err := json.MarshalIndent(d.Report(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(b) + "\n", nil
}

func spansToEdits(spans []DiffSpan) []lcs.Edit[string] {
	out := make([]lcs.Edit[string], 0, len(spans))
	for _, sp := range spans {
		if sp.OldText == "" && sp.NewText == "" {
			continue
		}
		switch sp.Op {
		case OpEqual:
			out = append(out, lcs.Edit[string]{Kind: lcs.Same, Value: sp.OldText})
		case OpInsert:
			out = append(out, lcs.Edit[string]{Kind: lcs.Added, Value: sp.NewText})
		case OpDelete:
			out = append(out, lcs.Edit[string]{Kind: lcs.Removed, Value: sp.OldText})
		}
	}
	return out
}

func spansToDMP(spans []DiffSpan) []diffmatchpatch.Diff {
	out := make([]diffmatchpatch.Diff, 0, len(spans))
	for _, sp := range spans {
		if sp.OldText == "" && sp.NewText == "" {
			continue
		}
		switch sp.Op {
		case OpEqual:
			out = append(out, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: sp.OldText})
		case OpInsert:
			out = append(out, diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: sp.NewText})
		case OpDelete:
			out = append(out, diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: sp.OldText})
		}
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
