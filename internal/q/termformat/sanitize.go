package termformat

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// Sanitize makes s safe to print as a single terminal line.
//   - If tabWidth > 0, \t becomes tabWidth spaces. Otherwise \t is escaped like other controls.
//   - ASCII controls (<= 0x1F, including \r and \n) and 0x7F become "\\xXX" (ex: `\x1B` for ESC).
//   - Invalid UTF-8 becomes U+FFFD.
func Sanitize(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('\uFFFD')
			i++
			continue
		}
		i += size

		if r == '\t' && tabWidth > 0 {
			b.WriteString(strings.Repeat(" ", tabWidth))
			continue
		}
		if r < 0x20 || r == 0x7F {
			code := byte(r)
			b.WriteByte('\\')
			b.WriteByte('x')
			b.WriteByte(hexDigits[code>>4])
			b.WriteByte(hexDigits[code&0x0F])
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
