package queryparse

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"vesselq/internal/core/lexicon"
	"vesselq/internal/core/normalize"
)

// NameStage says which stage produced the vessel name
type NameStage string

// Name stages in the order they run
const (
	StagePhrase NameStage = "phrase"
	StageRegex  NameStage = "regex"
	StageEntity NameStage = "entity"
)

// catalog holds the known vessel names in the forms each stage needs
type catalog struct {
	dict  *lexicon.Dict
	names []string // display forms, longest first

	once sync.Once
	res  []*regexp.Regexp // parallel to names, built on first use
}

func newCatalog(names []string) *catalog {
	c := &catalog{}
	seen := map[string]struct{}{}
	var entries []lexicon.Entry
	for _, n := range names {
		n = strings.TrimSpace(n)
		k := normalize.Fold(n)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		c.names = append(c.names, n)
		entries = append(entries, lexicon.Entry{Phrase: n, Label: n})
	}
	sort.SliceStable(c.names, func(i, j int) bool { return len(c.names[i]) > len(c.names[j]) })
	c.dict = lexicon.New(entries)
	return c
}

// phrase is stage 1: the longest dictionary phrase on word boundaries
func (c *catalog) phrase(folded string) (string, bool) {
	m, ok := c.dict.Longest(folded)
	if !ok {
		return "", false
	}
	return m.Label, true
}

var reNameSep = regexp.MustCompile(`[\s\-_./]+`)

// regex is stage 2: whole word patterns tolerant of punctuation between the
// words of a name, tried longest name first
func (c *catalog) regex(folded string) (string, bool) {
	c.once.Do(func() {
		c.res = make([]*regexp.Regexp, len(c.names))
		for i, n := range c.names {
			var words []string
			for _, w := range reNameSep.Split(normalize.Fold(n), -1) {
				if w != "" {
					words = append(words, regexp.QuoteMeta(w))
				}
			}
			c.res[i] = regexp.MustCompile(`\b` + strings.Join(words, `[\s\-_./]*`) + `\b`)
		}
	})
	for i, re := range c.res {
		if re.MatchString(folded) {
			return c.names[i], true
		}
	}
	return "", false
}

// vesselName runs the stages in order; the first hit wins
func (p *Parser) vesselName(original, folded string, skip map[string]bool) (string, NameStage, bool) {
	if p.cat != nil {
		if n, ok := p.cat.phrase(folded); ok {
			return normalize.Title(n), StagePhrase, true
		}
		if n, ok := p.cat.regex(folded); ok {
			return normalize.Title(n), StageRegex, true
		}
	}
	if n, ok := p.entity(original, skip); ok {
		return normalize.Title(n), StageEntity, true
	}
	return "", "", false
}
