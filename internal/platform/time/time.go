// Package time contains time related helpers
package time

import (
	"strconv"
	"strings"
	"time"
)

// Layout is the wall clock format used on the wire and in the positional store
const Layout = "2006-01-02 15:04:05"

var accepted = []string{
	Layout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Parse reads Layout, RFC3339 and a few shorter ISO forms. Zone-less values are UTC
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, l := range accepted {
		var t time.Time
		if t, err = time.ParseInLocation(l, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// Format renders t in Layout after converting to UTC
func Format(t time.Time) string { return t.UTC().Format(Layout) }

// Wall is a UTC instant that marshals as Layout
type Wall time.Time

// WallPtr converts an optional time to an optional Wall
func WallPtr(t *time.Time) *Wall {
	if t == nil {
		return nil
	}
	w := Wall(*t)
	return &w
}

// T returns the underlying time
func (w Wall) T() time.Time { return time.Time(w) }

// String renders Layout
func (w Wall) String() string { return Format(w.T()) }

// MarshalJSON renders a quoted Layout string
func (w Wall) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(w.String())), nil
}

// UnmarshalJSON accepts anything Parse accepts; null leaves w untouched
func (w *Wall) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	u, err := strconv.Unquote(s)
	if err != nil {
		return err
	}
	t, err := Parse(u)
	if err != nil {
		return err
	}
	*w = Wall(t)
	return nil
}
