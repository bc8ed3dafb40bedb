package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/codalotl/linediff/internal/lcs"
)

// validate checks the Diff invariants and returns an error on the first violation.
func (d Diff) validate() error {
	if err := lcs.Validate(d.OldLines, d.NewLines, d.Ops, func(x, y string) bool { return x == y }); err != nil {
		return fmt.Errorf("ops: %w", err)
	}

	var oldLines, newLines []string
	for li, ln := range d.Lines {
		switch ln.Op {
		case OpEqual:
			if ln.OldText != ln.NewText {
				return fmt.Errorf("line[%d]: OpEqual requires OldText==NewText", li)
			}
		case OpInsert:
			if ln.OldText != "" {
				return fmt.Errorf("line[%d]: OpInsert requires OldText==\"\"", li)
			}
		case OpDelete:
			if ln.NewText != "" {
				return fmt.Errorf("line[%d]: OpDelete requires NewText==\"\"", li)
			}
		case OpReplace:
		default:
			return fmt.Errorf("line[%d]: unknown op %d", li, int(ln.Op))
		}

		if ln.Op != OpInsert {
			oldLines = append(oldLines, ln.OldText)
		}
		if ln.Op != OpDelete {
			newLines = append(newLines, ln.NewText)
		}

		if ln.Op != OpReplace {
			if ln.Spans != nil {
				return fmt.Errorf("line[%d]: %s requires Spans==nil", li, ln.Op)
			}
			continue
		}

		var sOld, sNew strings.Builder
		for si, sp := range ln.Spans {
			switch sp.Op {
			case OpEqual:
				if sp.OldText != sp.NewText {
					return fmt.Errorf("line[%d].span[%d]: OpEqual requires OldText==NewText", li, si)
				}
			case OpInsert:
				if sp.OldText != "" {
					return fmt.Errorf("line[%d].span[%d]: OpInsert requires OldText==\"\"", li, si)
				}
			case OpDelete:
				if sp.NewText != "" {
					return fmt.Errorf("line[%d].span[%d]: OpDelete requires NewText==\"\"", li, si)
				}
			default:
				return fmt.Errorf("line[%d].span[%d]: spans must be OpEqual, OpInsert, or OpDelete", li, si)
			}
			sOld.WriteString(sp.OldText)
			sNew.WriteString(sp.NewText)
		}
		if ln.OldText != sOld.String() {
			return fmt.Errorf("line[%d]: spans do not reconstruct OldText", li)
		}
		if ln.NewText != sNew.String() {
			return fmt.Errorf("line[%d]: spans do not reconstruct NewText", li)
		}
	}

	if !slices.Equal(oldLines, d.OldLines) {
		return fmt.Errorf("diff: lines do not reconstruct OldLines")
	}
	if !slices.Equal(newLines, d.NewLines) {
		return fmt.Errorf("diff: lines do not reconstruct NewLines")
	}
	return nil
}
