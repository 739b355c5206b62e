package queryparse

import (
	"regexp"
	"strings"
	"unicode"

	"vesselq/internal/core/lexicon"
	"vesselq/internal/core/normalize"
)

var reQuoted = regexp.MustCompile(`"([^"]{2,64})"|“([^”]{2,64})”|(?:^|\s)'([^']{2,64})'(?:$|[\s?.!,])`)

// entity is the last name stage: a small proper noun recogniser over the
// original casing. Quoted phrases win; otherwise the first run of
// Capitalised or UPPERCASE tokens that are not parser vocabulary or one of
// the identifiers in skip
func (p *Parser) entity(original string, skip map[string]bool) (string, bool) {
	if m := reQuoted.FindStringSubmatch(original); m != nil {
		for _, g := range m[1:] {
			if g = strings.TrimSpace(g); g != "" && !p.allReserved(g) {
				return g, true
			}
		}
	}

	var run []string
	flush := func() (string, bool) {
		if len(run) == 0 {
			return "", false
		}
		s := strings.Join(run, " ")
		run = run[:0]
		return s, true
	}
	for _, tok := range lexicon.Tokens(original) {
		if p.properNoun(tok.Text) && !skip[strings.ToLower(tok.Text)] {
			run = append(run, tok.Text)
			continue
		}
		if s, ok := flush(); ok {
			return s, true
		}
	}
	return flush()
}

// properNoun accepts tokens that start upper case, carry no digits and are
// not parser vocabulary such as intents, months, units or stopwords
func (p *Parser) properNoun(tok string) bool {
	r := []rune(tok)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	for _, c := range r {
		if unicode.IsDigit(c) {
			return false
		}
	}
	return !p.vocab.Reserved(normalize.Fold(tok))
}

func (p *Parser) allReserved(phrase string) bool {
	for _, tok := range lexicon.Tokens(normalize.Fold(phrase)) {
		if !p.vocab.Reserved(tok.Text) {
			return false
		}
	}
	return true
}
