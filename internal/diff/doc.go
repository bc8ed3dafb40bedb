// Package diff compares an "old" and a "new" text line by line, with word-level detail for modified lines, and renders the result.
//
// Representation: A Diff holds both texts, their lines, the line-level edit script (Ops), and an ordered slice of DiffLine rows. Each row has an Op:
//   - OpEqual: an unchanged line (OldText == NewText).
//   - OpInsert: a line present only in the new side (OldText == "").
//   - OpDelete: a line present only in the old side (NewText == "").
//   - OpReplace: a modified pair: a removed line and an added line that were adjacent in the edit script. Spans holds the word-level diff.
//
// Lines never include their "\n" or "\r\n" separator. An empty line is a valid line, so OldText == "" on an OpEqual row is fine.
//
// Invariants:
//   - concat(rows.OldText for OpEqual, OpDelete, OpReplace) == OldLines
//   - concat(rows.NewText for OpEqual, OpInsert, OpReplace) == NewLines
//   - If row.Op != OpReplace, row.Spans is nil. Otherwise concat(span.OldText) == row.OldText and concat(span.NewText) == row.NewText.
//   - Spans are single tokens (a word or a whitespace run) and are OpEqual, OpInsert, or OpDelete; never OpReplace.
//
// Pairing: rows come from a single greedy pass over Ops (see textdiff.Resolve). Whether the line engine emitted "removed, added" or "added, removed", an
// OpReplace row always has the removed line as OldText.
//
// Getting a diff:
//
//	d := diff.DiffText(oldText, newText)
//	fmt.Println(d.Summary())
//	fmt.Println(d.RenderPlain(-1))
//
// Both the line table and each modified pair's word table take O(m*n) memory. DiffTextLimited fails with a *TooLargeError instead of allocating a
// table larger than a given number of cells.
//
// Rendering:
//   - RenderPlain: "  " / "+ " / "- " prefixed lines; a modified pair is a "- " line followed by a "+ " line.
//   - RenderPretty: the same layout with ANSI colors and highlighted changed words.
//   - RenderSideBySide: two columns sized for a terminal.
//   - RenderHTML: markup with diff-line / diff-word classes.
//   - RenderJSON / Report: a machine-readable report.
//
// contextSize < 0 shows every row. Otherwise unchanged rows farther than contextSize rows from a change are folded away, and groups are separated by
// "...".
package diff
