package termformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		tabWidth int
		want     string
	}{
		{name: "plain text unchanged", input: "hello, 世界", tabWidth: 4, want: "hello, 世界"},
		{name: "tab expanded when width positive", input: "a\tb", tabWidth: 3, want: "a   b"},
		{name: "tab escaped when width nonpositive", input: "a\tb", tabWidth: 0, want: `a\x09b`},
		{name: "control characters escaped", input: "\x1bX\x00Y\x7f", tabWidth: 4, want: `\x1BX\x00Y\x7F`},
		{name: "carriage return and newline escaped", input: "line1\r\nline2", tabWidth: 4, want: `line1\x0D\x0Aline2`},
		{name: "invalid utf8 replaced", input: string([]byte{0xff, 'a', 0xc1}), tabWidth: 4, want: "�a�"},
		{name: "empty", input: "", tabWidth: 4, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Sanitize(tt.input, tt.tabWidth))
		})
	}
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 0, Width(""))
	assert.Equal(t, 11, Width("hello world"))
	assert.Equal(t, 4, Width("\x1b[31m世a\x1b[0m!"))
	assert.Equal(t, 4, Width("\x1b]8;;https://example.com\x07link\x1b]8;;\x07"))
	assert.Equal(t, 2, Width("ok\x1bc"))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{name: "pad", s: "abc", width: 5, want: "abc  "},
		{name: "exact", s: "abcde", width: 5, want: "abcde"},
		{name: "truncate", s: "abcdef", width: 4, want: "abc…"},
		{name: "wide cluster straddles limit", s: "a界b", width: 3, want: "a …"},
		{name: "wide cluster fits", s: "界界界", width: 5, want: "界界…"},
		{name: "width one", s: "abc", width: 1, want: "…"},
		{name: "zero width", s: "abc", width: 0, want: ""},
		{name: "empty pads", s: "", width: 2, want: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.s, tt.width)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, max(tt.width, 0), Width(got))
		})
	}
}
