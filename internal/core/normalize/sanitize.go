package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops NUL, ASCII controls other than tab and line breaks, DEL,
// C1 controls and invalid UTF-8. Clean input is returned unchanged
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, s)
}

func drop(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	case r == utf8.RuneError:
		return true
	}
	return false
}

func clean(s string) bool {
	for _, r := range s {
		if drop(r) {
			return false
		}
	}
	return true
}
