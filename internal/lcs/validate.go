package lcs

import "fmt"

// Validate checks that script is a valid edit script from a to b under eq and returns an error on the first violation:
//   - every edit has a known Kind;
//   - Same edits carry equal elements of a and b at the current positions;
//   - Same+Removed values reproduce a, and Same+Added values reproduce b.
//
// Validate does not check that the script is LCS-optimal; compare Count(script).Same with LCSLength for that.
func Validate[T any](a, b []T, script []Edit[T], eq func(x, y T) bool) error {
	i, j := 0, 0
	for k, e := range script {
		switch e.Kind {
		case Same:
			if i >= len(a) || j >= len(b) {
				return fmt.Errorf("edit[%d]: Same past the end of an input", k)
			}
			if !eq(a[i], e.Value) || !eq(b[j], e.Value) {
				return fmt.Errorf("edit[%d]: Same value does not match a[%d] and b[%d]", k, i, j)
			}
			i++
			j++
		case Removed:
			if i >= len(a) {
				return fmt.Errorf("edit[%d]: Removed past the end of a", k)
			}
			if !eq(a[i], e.Value) {
				return fmt.Errorf("edit[%d]: Removed value does not match a[%d]", k, i)
			}
			i++
		case Added:
			if j >= len(b) {
				return fmt.Errorf("edit[%d]: Added past the end of b", k)
			}
			if !eq(b[j], e.Value) {
				return fmt.Errorf("edit[%d]: Added value does not match b[%d]", k, j)
			}
			j++
		default:
			return fmt.Errorf("edit[%d]: unknown kind %d", k, int(e.Kind))
		}
	}
	if i != len(a) {
		return fmt.Errorf("script consumes %d of %d elements of a", i, len(a))
	}
	if j != len(b) {
		return fmt.Errorf("script consumes %d of %d elements of b", j, len(b))
	}
	return nil
}
