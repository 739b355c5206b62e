// Package normalize folds query text and vessel names into a comparable form
// Pipeline order
// 1 sanitize control runes and drop invalid UTF-8
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove combining and format marks
// 5 Width fold fullwidth to ASCII
// 6 Recompose to NFC
// 7 Collapse whitespace to single spaces and trim
//
// Digits are left alone so identifiers survive folding
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // são -> sao
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF
			width.Fold,
			norm.NFC,
		)
	},
}

var titlePool = sync.Pool{
	New: func() any {
		c := cases.Title(language.Und)
		return &c
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

var std = New()

// Fold runs the package level normalizer
func Fold(s string) string { return std.Normalize(s) }

// Normalize returns the folded form of s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// Key keeps only letters and digits of the folded form, so "M/V Brava-1"
// and "mv brava 1" compare equal
func Key(s string) string {
	f := Fold(s)
	if f == "" {
		return f
	}
	b := make([]rune, 0, len(f))
	for _, r := range f {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b = append(b, r)
		}
	}
	return string(b)
}

// Title renders a vessel name for display, e.g. "BRAVA STAR" -> "Brava Star"
func Title(s string) string {
	s = collapseSpaces(Sanitize(s))
	if s == "" {
		return s
	}
	c := titlePool.Get().(*cases.Caser)
	out := c.String(s)
	c.Reset()
	titlePool.Put(c)
	return out
}

// collapseSpaces converts every whitespace run, newlines included, to one ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
