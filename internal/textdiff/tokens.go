package textdiff

import (
	"unicode"
	"unicode/utf8"

	"github.com/codalotl/linediff/internal/lcs"
)

// TokenizeWords splits line into maximal runs of whitespace and non-whitespace, in order. Whitespace runs are tokens too, so concatenating the result
// reproduces line exactly. A line that starts with whitespace gets a leading "" token, and one that ends with whitespace a trailing "" token, so
// that non-whitespace runs always sit at even indexes. The empty tokens take part in the diff; renderers skip them. An empty line has zero tokens.
// Invalid UTF-8 bytes are treated as non-whitespace.
//
// Examples:
//   - "a b" -> ["a", " ", "b"]
//   - " a" -> ["", " ", "a"]
//   - "   " -> ["", "   ", ""]
func TokenizeWords(line string) []string {
	tokens := []string{}
	if line == "" {
		return tokens
	}

	start := 0
	inSpace := false
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		space := isSpace(r)
		if i == 0 {
			inSpace = space
			if space {
				tokens = append(tokens, "")
			}
		} else if space != inSpace {
			tokens = append(tokens, line[start:i])
			start = i
			inSpace = space
		}
		i += size
	}
	tokens = append(tokens, line[start:])
	if inSpace {
		tokens = append(tokens, "")
	}
	return tokens
}

// isSpace matches the JavaScript \s class: Unicode white space except NEL (U+0085), plus the zero-width no-break space (U+FEFF).
func isSpace(r rune) bool {
	if r == utf8.RuneError || r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\ufeff'
}

// DiffTokens tokenizes oldLine and newLine with TokenizeWords and returns the token-level edit script.
func DiffTokens(oldLine, newLine string) []lcs.Edit[string] {
	return lcs.Diff(TokenizeWords(oldLine), TokenizeWords(newLine))
}
