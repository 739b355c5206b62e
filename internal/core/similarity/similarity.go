// Package similarity scores vessel names against each other for the fuzzy
// resolution stage
package similarity

import (
	"sort"
	"strings"
	"unicode/utf8"

	"vesselq/internal/core/normalize"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultFloor is the lowest score accepted as a fuzzy match
const DefaultFloor = 0.80

// Ratio is 1 - levenshtein/maxlen over the folded letters and digits of a
// and b, in [0,1]. Two empty keys score 0
func Ratio(a, b string) float64 {
	ka, kb := normalize.Key(a), normalize.Key(b)
	if ka == kb {
		if ka == "" {
			return 0
		}
		return 1
	}
	n := max(utf8.RuneCountInString(ka), utf8.RuneCountInString(kb))
	d := fuzzy.LevenshteinDistance(ka, kb)
	return 1 - float64(d)/float64(n)
}

// Contains reports whether needle appears inside name, ignoring case,
// accents and punctuation
func Contains(name, needle string) bool {
	k := normalize.Key(needle)
	return k != "" && strings.Contains(normalize.Key(name), k)
}

// Candidate is a scored name
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every name against query and returns those at or above floor,
// best first; ties keep input order
func Rank(query string, names []string, floor float64) []Candidate {
	var out []Candidate
	for _, n := range names {
		if s := Ratio(query, n); s >= floor && s > 0 {
			out = append(out, Candidate{Name: n, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Best returns the top candidate at or above floor
func Best(query string, names []string, floor float64) (Candidate, bool) {
	r := Rank(query, names, floor)
	if len(r) == 0 {
		return Candidate{}, false
	}
	return r[0], true
}
