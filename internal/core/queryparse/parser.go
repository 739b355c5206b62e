// Package queryparse turns a free text vessel question into a ParsedQuery:
// intent, vessel name, identifiers and a resolved time target.
// Parsing never fails; anything not understood is left nil
package queryparse

import (
	"strings"
	"time"

	"vesselq/internal/core/normalize"
)

// Options tunes a Parser
type Options struct {
	// Now is the clock for relative arithmetic; defaults to time.Now in UTC
	Now func() time.Time
	// AtAnchorsClock reads "at N hours M minutes" as a clock time instead of a duration
	AtAnchorsClock bool
	// Vocab overrides the embedded lexicon
	Vocab *Vocab
}

// Parser is built once per vessel dictionary and is safe for concurrent use
type Parser struct {
	opts  Options
	vocab *Vocab
	cat   *catalog
}

// New builds a parser over the known vessel names
func New(names []string, opts Options) (*Parser, error) {
	v := opts.Vocab
	if v == nil {
		var err error
		if v, err = DefaultVocab(); err != nil {
			return nil, err
		}
	}
	p := &Parser{opts: opts, vocab: v}
	if len(names) > 0 {
		p.cat = newCatalog(names)
	}
	return p, nil
}

// MustNew is New for callers holding the embedded lexicon, which always compiles
func MustNew(names []string, opts Options) *Parser {
	p, err := New(names, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Size is the number of distinct vessel names in the dictionary
func (p *Parser) Size() int {
	if p.cat == nil {
		return 0
	}
	return len(p.cat.names)
}

func (p *Parser) now() time.Time {
	now := time.Now
	if p.opts.Now != nil {
		now = p.opts.Now
	}
	return now().UTC().Truncate(time.Second)
}

// Parse reads text into a ParsedQuery
func (p *Parser) Parse(text string) ParsedQuery {
	q := ParsedQuery{RawText: text, TimeKind: TimeNone}
	original := normalize.Sanitize(text)
	folded := normalize.Fold(original)
	if folded == "" {
		return q
	}

	q.Intent = p.intent(folded)
	q.Identifiers = identifiers(folded)

	skip := map[string]bool{}
	for _, id := range []*string{q.Identifiers.MMSI, q.Identifiers.IMO, q.Identifiers.CallSign} {
		if id != nil {
			skip[strings.ToLower(*id)] = true
		}
	}
	if name, stage, ok := p.vesselName(unglue(original), unglue(folded), skip); ok {
		q.VesselName = &name
		q.NameStage = stage
	}

	if h, ok := p.horizon(folded); ok {
		q.TimeHorizon = &h
	}
	tr := p.resolveTime(folded, p.now())
	q.TimeKind = tr.kind
	if tr.expr != "" {
		expr := tr.expr
		q.TimeExpr = &expr
	}
	q.EndDateTime = tr.end
	q.DurationMinutes = tr.dur
	return q
}
