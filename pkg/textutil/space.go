// Package textutil holds the whitespace definition shared by the text
// cleanup and tokenizing packages.
package textutil

import (
	"strings"
	"unicode"
)

// SpaceClass is the body of a regexp character class matching the same runes
// as IsSpace. RE2's \s only covers [\t\n\f\r ], so patterns that need the
// wider definition embed this instead.
const SpaceClass = `\t\n\v\f\r \x{1c}-\x{1f}\x{85}\p{Z}`

// IsSpace reports whether r separates words. On top of unicode.IsSpace it
// treats the ASCII information separators (0x1C-0x1F) as whitespace.
func IsSpace(r rune) bool {
	if r >= 0x1c && r <= 0x1f {
		return true
	}
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r)
}

// Fields splits s around runs of whitespace as defined by IsSpace.
func Fields(s string) []string {
	return strings.FieldsFunc(s, IsSpace)
}

// Trim removes leading and trailing whitespace as defined by IsSpace.
func Trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
