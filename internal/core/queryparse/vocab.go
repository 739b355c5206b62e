package queryparse

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"vesselq/internal/core/lexicon"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var embedded []byte

type rawVocab struct {
	Version    int                 `yaml:"version"`
	Intents    map[string][]string `yaml:"intents"`
	Predictive []string            `yaml:"predictive"`
	Units      map[string][]string `yaml:"units"`
	Numbers    map[string]int      `yaml:"numbers"`
	Months     map[string]int      `yaml:"months"`
	Tags       []string            `yaml:"tags"`
	Stopwords  []string            `yaml:"stopwords"`
}

// Vocab is the compiled parser vocabulary
type Vocab struct {
	Version int

	intents    *lexicon.Dict // label is the intent
	predictive *lexicon.Dict

	unitMinutes map[string]int // word -> minutes per unit
	numbers     map[string]int
	months      map[string]int

	// words the entity recogniser must never treat as part of a name
	reserved map[string]struct{}

	rules *timeRules
}

var (
	vocabOnce sync.Once
	vocab     *Vocab
	vocabErr  error
)

// DefaultVocab parses the embedded lexicon once
func DefaultVocab() (*Vocab, error) {
	vocabOnce.Do(func() { vocab, vocabErr = ParseVocab(embedded) })
	return vocab, vocabErr
}

// ParseVocab compiles a vocabulary document
func ParseVocab(doc []byte) (*Vocab, error) {
	var rv rawVocab
	if err := yaml.Unmarshal(doc, &rv); err != nil {
		return nil, fmt.Errorf("queryparse: parse lexicon: %w", err)
	}
	if len(rv.Intents) == 0 {
		return nil, fmt.Errorf("queryparse: lexicon has no intents")
	}

	v := &Vocab{
		Version:     rv.Version,
		unitMinutes: map[string]int{},
		numbers:     map[string]int{},
		months:      map[string]int{},
		reserved:    map[string]struct{}{},
	}

	var entries []lexicon.Entry
	// sorted for a stable dictionary regardless of map order
	keys := make([]string, 0, len(rv.Intents))
	for k := range rv.Intents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		in, ok := intentByBucket[k]
		if !ok {
			return nil, fmt.Errorf("queryparse: unknown intent bucket %q", k)
		}
		for _, w := range rv.Intents[k] {
			entries = append(entries, lexicon.Entry{Phrase: w, Label: string(in)})
			v.reserve(w)
		}
	}
	v.intents = lexicon.New(entries)
	v.predictive = lexicon.Words(rv.Predictive...)

	for unit, words := range rv.Units {
		per := 1
		switch unit {
		case "minutes":
		case "hours":
			per = 60
		default:
			return nil, fmt.Errorf("queryparse: unknown unit %q", unit)
		}
		for _, w := range words {
			v.unitMinutes[w] = per
			v.reserve(w)
		}
	}
	for w, n := range rv.Numbers {
		v.numbers[w] = n
		v.reserve(w)
	}
	for w, m := range rv.Months {
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("queryparse: month %q out of range", w)
		}
		v.months[w] = m
		v.reserve(w)
	}
	for _, w := range rv.Tags {
		v.reserve(w)
	}
	for _, w := range rv.Stopwords {
		v.reserve(w)
	}
	if len(v.months) == 0 || len(v.unitMinutes) == 0 {
		return nil, fmt.Errorf("queryparse: lexicon needs months and units")
	}
	v.rules = compileTimeRules(v)
	return v, nil
}

func (v *Vocab) reserve(w string) { v.reserved[w] = struct{}{} }

// Reserved reports whether a folded word belongs to the parser vocabulary
func (v *Vocab) Reserved(w string) bool {
	_, ok := v.reserved[w]
	return ok
}

// number reads a count written as digits or as a word
func (v *Vocab) number(s string) (int, bool) {
	if n, ok := v.numbers[s]; ok {
		return n, true
	}
	if len(s) > 6 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// minutes converts a count and unit word to minutes
func (v *Vocab) minutes(count int, unit string) (int, bool) {
	per, ok := v.unitMinutes[unit]
	if !ok {
		return 0, false
	}
	return count * per, true
}
