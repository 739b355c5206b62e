package lexicon

import (
	"unicode"
	"unicode/utf8"
)

// isWord reports whether r continues a token. Hyphens, slashes and
// apostrophes split tokens so "brava-123456789" still yields "brava"
func isWord(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.In(r, unicode.Mn, unicode.Pc)
}

// boundary reports whether [start,end) sits on token edges in s
func boundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWord(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWord(r) {
			return false
		}
	}
	return true
}

// Tokens splits s into word tokens with their byte offsets
func Tokens(s string) []Token {
	var out []Token
	start := -1
	for i, r := range s {
		if isWord(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Token{Text: s[start:i], Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Token{Text: s[start:], Start: start, End: len(s)})
	}
	return out
}

// Token is a word with byte offsets [Start,End)
type Token struct {
	Text       string
	Start, End int
}
