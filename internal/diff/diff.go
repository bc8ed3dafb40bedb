package diff

import "github.com/codalotl/linediff/internal/lcs"

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return "unknown"
}

// Diff is a diff from old text to new text.
//
// As an illustration: old is "a\nb\nc" and new is "a\nB\nc\nd". This produces:
//   - Lines[0]: OpEqual "a".
//   - Lines[1]: OpReplace "b" -> "B", with Spans [OpInsert "B", OpDelete "b"] (in the order the token engine emits them).
//   - Lines[2]: OpEqual "c".
//   - Lines[3]: OpInsert "d".
type Diff struct {
	OldText  string             // Entire original text. Empty when built with DiffLines.
	NewText  string             // Entire revised text. Empty when built with DiffLines.
	OldLines []string           // Lines of the original text.
	NewLines []string           // Lines of the revised text.
	Ops      []lcs.Edit[string] // Line-level edit script, before pairing.
	Lines    []DiffLine         // Rendered rows, after pairing.
}

// DiffLine is one row: an unchanged, added, or removed line, or a modified pair (OpReplace).
type DiffLine struct {
	Op      Op         // Operation for this row.
	OldText string     // Old line; empty for inserts.
	NewText string     // New line; empty for deletes.
	Spans   []DiffSpan // Word-level diff when Op == OpReplace; nil otherwise.
}

// DiffSpan is one token of a modified pair: a word or a whitespace run. Op is OpEqual, OpInsert, or OpDelete.
type DiffSpan struct {
	Op      Op     // Operation for this token.
	OldText string // Token in the old line; empty for inserts.
	NewText string // Token in the new line; empty for deletes.
}

// HasChanges reports whether any row is not OpEqual.
func (d Diff) HasChanges() bool {
	for _, ln := range d.Lines {
		if ln.Op != OpEqual {
			return true
		}
	}
	return false
}
