package queryparse

import (
	"regexp"
	"strings"

	pstr "vesselq/internal/platform/strings"
)

var (
	reMMSI      = regexp.MustCompile(`\b(\d{9})\b`)
	reMMSIGlued = regexp.MustCompile(`\b[a-z][a-z'.]+[-_]?(\d{9})\b`)
	reIMO       = regexp.MustCompile(`\bimo\s*[:#-]?\s*(\d{7})\b`)
	reCallSign  = regexp.MustCompile(`\bcall\s?sign\s*[:#-]?\s*([a-z0-9]{3,7})\b`)
)

// identifiers reads MMSI, IMO and call sign from folded text
func identifiers(folded string) Identifiers {
	var id Identifiers
	if m := reMMSI.FindStringSubmatch(folded); m != nil {
		id.MMSI = pstr.Ptr(m[1])
	} else if m := reMMSIGlued.FindStringSubmatch(folded); m != nil {
		id.MMSI = pstr.Ptr(m[1])
	}
	if m := reIMO.FindStringSubmatch(folded); m != nil {
		id.IMO = pstr.Ptr(m[1])
	}
	if m := reCallSign.FindStringSubmatch(folded); m != nil {
		id.CallSign = pstr.Ptr(strings.ToUpper(m[1]))
	}
	return id
}

var reGlued = regexp.MustCompile(`(\pL)(\d{9})\b`)

// unglue separates a trailing MMSI from the word it is stuck to so the
// name stages can see "brava" in "brava123456789"
func unglue(s string) string { return reGlued.ReplaceAllString(s, "${1} ${2}") }
