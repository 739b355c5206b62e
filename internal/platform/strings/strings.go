// Package strings holds the small string helpers shared by module wiring,
// the vessel repo and the query parser
package strings

import std "strings"

func blank(s string) bool { return std.TrimSpace(s) == "" }

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<what> is required" when s is blank
func MustString(s, what string) string {
	if blank(s) {
		panic(what + " is required")
	}
	return s
}

// MustPrefix returns s as a route prefix with one leading slash and no
// trailing slash: " vessels/ " becomes "/vessels". The root is rejected
func MustPrefix(s string) string {
	p := "/" + std.Trim(s, " /")
	if p == "/" {
		panic("module route prefix is required")
	}
	return p
}

// Ptr returns nil for "" so optional parsed fields stay absent in JSON
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" for nil
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// SQLNull maps blank text to a NULL argument, e.g. a missing IMO or call sign
func SQLNull(s string) any {
	if blank(s) {
		return nil
	}
	return s
}
