// Package lexicon matches a dictionary of phrases against folded text on word
// boundaries. It backs vessel name lookup and keyword spotting in the query parser
package lexicon

import (
	"sort"

	"vesselq/internal/core/normalize"
)

// Match is one dictionary hit; offsets are bytes into the folded text
type Match struct {
	Term  string // folded dictionary form
	Label string // caller supplied tag, e.g. the original vessel name or an intent bucket
	Start int
	End   int
}

// Len is the byte length of the match
func (m Match) Len() int { return m.End - m.Start }

// Entry is a phrase to index and the label reported when it matches
type Entry struct {
	Phrase string
	Label  string
}

// Dict is immutable after New and safe for concurrent use
type Dict struct {
	ac     *automaton
	terms  []string
	labels []string
}

// New indexes entries by their folded phrase. Empty phrases are skipped and
// the first label wins for duplicate phrases
func New(entries []Entry) *Dict {
	d := &Dict{ac: newAutomaton()}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		term := normalize.Fold(e.Phrase)
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		d.ac.add([]byte(term), int32(len(d.terms)))
		d.terms = append(d.terms, term)
		d.labels = append(d.labels, e.Label)
	}
	d.ac.build()
	return d
}

// Words indexes plain phrases labelled with themselves
func Words(phrases ...string) *Dict {
	es := make([]Entry, len(phrases))
	for i, p := range phrases {
		es[i] = Entry{Phrase: p, Label: p}
	}
	return New(es)
}

// Size is the number of distinct indexed phrases
func (d *Dict) Size() int {
	if d == nil {
		return 0
	}
	return len(d.terms)
}

// All returns every boundary aligned match in text order, overlaps included.
// text must already be folded with normalize.Fold
func (d *Dict) All(folded string) []Match {
	if d.Size() == 0 || folded == "" {
		return nil
	}
	var out []Match
	d.ac.scan([]byte(folded), func(end int, id int32) bool {
		start := end - len(d.terms[id])
		if boundary(folded, start, end) {
			out = append(out, Match{Term: d.terms[id], Label: d.labels[id], Start: start, End: end})
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Len() > out[j].Len()
	})
	return out
}

// Find returns non overlapping matches, preferring longer phrases and then
// earlier ones, in text order
func (d *Dict) Find(folded string) []Match {
	all := d.All(folded)
	if len(all) < 2 {
		return all
	}
	byLen := make([]Match, len(all))
	copy(byLen, all)
	sort.SliceStable(byLen, func(i, j int) bool {
		if byLen[i].Len() != byLen[j].Len() {
			return byLen[i].Len() > byLen[j].Len()
		}
		return byLen[i].Start < byLen[j].Start
	})
	var kept []Match
	for _, m := range byLen {
		clash := false
		for _, k := range kept {
			if m.Start < k.End && k.Start < m.End {
				clash = true
				break
			}
		}
		if !clash {
			kept = append(kept, m)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// Longest returns the longest match, the earliest among equals
func (d *Dict) Longest(folded string) (Match, bool) {
	var best Match
	ok := false
	for _, m := range d.All(folded) {
		if !ok || m.Len() > best.Len() {
			best, ok = m, true
		}
	}
	return best, ok
}

// Has reports whether the folded phrase is in the dictionary as a whole
func (d *Dict) Has(phrase string) bool {
	f := normalize.Fold(phrase)
	if f == "" || d.Size() == 0 {
		return false
	}
	for _, m := range d.All(f) {
		if m.Start == 0 && m.End == len(f) {
			return true
		}
	}
	return false
}
