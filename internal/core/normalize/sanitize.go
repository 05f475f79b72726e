package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// unwanted lists what we never persist: NUL and C0 controls other than
// tab, newline and carriage return, DEL, C1 controls, the byte order mark and
// U+FFFD, which also stands in for invalid UTF-8 bytes
func unwanted(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	case r == 0xFEFF, r == utf8.RuneError:
		return true
	}
	return false
}

var sanitizer = runes.Remove(runes.Predicate(unwanted))

// Sanitize cleans raw documents before they are stored. It is not part of
// the analysis pipeline since dropping runes would shift term offsets.
// Clean input is returned unchanged
func Sanitize(s string) string {
	if strings.IndexFunc(s, unwanted) < 0 {
		return s
	}
	out, _, err := transform.String(sanitizer, s)
	if err != nil {
		return strings.ToValidUTF8(s, "")
	}
	return out
}
