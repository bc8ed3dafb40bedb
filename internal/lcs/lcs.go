package lcs

import "fmt"

// Kind is the kind of an Edit.
type Kind int

// Edit kinds.
const (
	Same Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Same:
		return "same"
	case Added:
		return "added"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes k as its String form, so JSON renders "same", "added", or "removed".
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Same, Added, Removed:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("lcs: invalid kind %d", int(k))
}

// UnmarshalText decodes the String form of a Kind.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "same":
		*k = Same
	case "added":
		*k = Added
	case "removed":
		*k = Removed
	default:
		return fmt.Errorf("lcs: unknown kind %q", string(b))
	}
	return nil
}

// Edit is one step of an edit script.
type Edit[T any] struct {
	Kind  Kind `json:"kind"`
	Value T    `json:"value"`
}

// Diff returns the edit script from a to b, comparing elements with ==.
func Diff[T comparable](a, b []T) []Edit[T] {
	return DiffFunc(a, b, func(x, y T) bool { return x == y })
}

// DiffFunc returns the edit script from a to b, comparing elements with eq. The result is never nil.
func DiffFunc[T any](a, b []T, eq func(x, y T) bool) []Edit[T] {
	m, n := len(a), len(b)
	t := fill(a, b, eq)

	ops := make([]Edit[T], 0, m+n)
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case eq(a[i-1], b[j-1]):
			ops = append(ops, Edit[T]{Kind: Same, Value: a[i-1]})
			i--
			j--
		case t.at(i-1, j) >= t.at(i, j-1):
			ops = append(ops, Edit[T]{Kind: Removed, Value: a[i-1]})
			i--
		default:
			ops = append(ops, Edit[T]{Kind: Added, Value: b[j-1]})
			j--
		}
	}
	for ; i > 0; i-- {
		ops = append(ops, Edit[T]{Kind: Removed, Value: a[i-1]})
	}
	for ; j > 0; j-- {
		ops = append(ops, Edit[T]{Kind: Added, Value: b[j-1]})
	}

	// Built back to front.
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

// LCSLength returns the length of a longest common subsequence of a and b under eq.
func LCSLength[T any](a, b []T, eq func(x, y T) bool) int {
	return fill(a, b, eq).at(len(a), len(b))
}

// table is the (m+1)x(n+1) DP table in one row-major buffer. cell(i, j) is the LCS length of a[:i] and b[:j].
type table struct {
	cells  []int
	stride int
}

func (t table) at(i, j int) int {
	return t.cells[i*t.stride+j]
}

func fill[T any](a, b []T, eq func(x, y T) bool) table {
	m, n := len(a), len(b)
	t := table{cells: make([]int, (m+1)*(n+1)), stride: n + 1}
	for i := 1; i <= m; i++ {
		row := i * t.stride
		prev := row - t.stride
		for j := 1; j <= n; j++ {
			if eq(a[i-1], b[j-1]) {
				t.cells[row+j] = t.cells[prev+j-1] + 1
			} else {
				t.cells[row+j] = max(t.cells[prev+j], t.cells[row+j-1])
			}
		}
	}
	return t
}

// Old returns the values of Same and Removed edits, in order. For a valid script from a to b, this equals a.
func Old[T any](script []Edit[T]) []T {
	out := make([]T, 0, len(script))
	for _, e := range script {
		if e.Kind != Added {
			out = append(out, e.Value)
		}
	}
	return out
}

// New returns the values of Same and Added edits, in order. For a valid script from a to b, this equals b.
func New[T any](script []Edit[T]) []T {
	out := make([]T, 0, len(script))
	for _, e := range script {
		if e.Kind != Removed {
			out = append(out, e.Value)
		}
	}
	return out
}

// Counts tallies edits by kind.
type Counts struct {
	Same    int `json:"same"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Count tallies script by kind.
func Count[T any](script []Edit[T]) Counts {
	var c Counts
	for _, e := range script {
		switch e.Kind {
		case Same:
			c.Same++
		case Added:
			c.Added++
		case Removed:
			c.Removed++
		}
	}
	return c
}
