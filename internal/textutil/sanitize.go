package textutil

import (
	"strings"
	"unicode"
)

// maxStemRunes bounds sanitized stems so the full output path stays well
// under common filesystem name limits.
const maxStemRunes = 100

// SanitizeTitle maps an arbitrary title to a filesystem-safe stem. Unicode
// letters and digits are kept along with space, hyphen, underscore, and
// period; everything else is dropped. The result is trimmed of trailing
// whitespace and truncated to 100 runes, then trimmed again so that
// truncation can never reintroduce a trailing space. The function is
// idempotent.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		}
	}
	stem := strings.TrimRight(b.String(), " \t\n\r")
	if runes := []rune(stem); len(runes) > maxStemRunes {
		stem = string(runes[:maxStemRunes])
	}
	return strings.TrimRight(stem, " \t\n\r")
}
