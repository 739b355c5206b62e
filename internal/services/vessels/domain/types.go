// Package domain defines the types and ports of the vessels service
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"vesselq/internal/core/queryparse"
	"vesselq/internal/core/track"
	ptime "vesselq/internal/platform/time"
)

// Strategy names the identity stage that matched
type Strategy string

// Identity strategies, tried in this order
const (
	StrategyMMSI      Strategy = "mmsi"
	StrategyExact     Strategy = "exact"
	StrategySubstring Strategy = "substring"
	StrategyFuzzy     Strategy = "fuzzy"
)

// TimeStrategy names how the record was picked
type TimeStrategy string

// Time strategies
const (
	TimeLatest          TimeStrategy = "latest"
	TimeAtOrBefore      TimeStrategy = "at_or_before"
	TimeToleranceWindow TimeStrategy = "tolerance_window"
	TimeLatestFallback  TimeStrategy = "latest_fallback"
)

// Identity selects the rows of one vessel. MMSI wins when set
type Identity struct {
	MMSI int64  `json:"mmsi,omitempty"`
	Name string `json:"name,omitempty"`
}

// Zero reports whether neither key is set
func (id Identity) Zero() bool { return id.MMSI == 0 && id.Name == "" }

// String names the vessel for messages
func (id Identity) String() string {
	if id.Name != "" {
		return id.Name
	}
	if id.MMSI != 0 {
		return "MMSI " + strconv.FormatInt(id.MMSI, 10)
	}
	return "that vessel"
}

// ResolveInput is what the resolver needs from a query
type ResolveInput struct {
	Name string
	MMSI int64
	End  *time.Time
}

// Label names the requested vessel for messages
func (in ResolveInput) Label() string {
	if in.MMSI != 0 {
		return Identity{MMSI: in.MMSI}.String()
	}
	return Identity{Name: in.Name}.String()
}

// FromParsed builds a ResolveInput from a parsed query. An unparsable MMSI
// is ignored so the name stages still run
func FromParsed(q queryparse.ParsedQuery) ResolveInput {
	in := ResolveInput{End: q.EndDateTime}
	if q.VesselName != nil {
		in.Name = strings.TrimSpace(*q.VesselName)
	}
	if q.Identifiers.MMSI != nil {
		if n, err := strconv.ParseInt(*q.Identifiers.MMSI, 10, 64); err == nil {
			in.MMSI = n
		}
	}
	return in
}

// ResolvedMatch is the record closest to the requested time and the trailing
// window that ends at it
type ResolvedMatch struct {
	Identity        Identity
	Record          track.Position
	Track           track.Track
	MatchConfidence *float64
	Strategy        Strategy
	TimeStrategy    TimeStrategy
}

type wireMatch struct {
	Identity        Identity       `json:"identity"`
	Record          track.Position `json:"record"`
	Recent          track.Track    `json:"recent"`
	MatchConfidence *float64       `json:"match_confidence,omitempty"`
	Strategy        Strategy       `json:"strategy"`
	TimeStrategy    TimeStrategy   `json:"time_strategy"`
}

// MarshalJSON renders the track newest first as recent
func (m ResolvedMatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMatch{
		Identity:        m.Identity,
		Record:          m.Record,
		Recent:          m.Track.NewestFirst(),
		MatchConfidence: m.MatchConfidence,
		Strategy:        m.Strategy,
		TimeStrategy:    m.TimeStrategy,
	})
}

// Resolution carries either a match or a message, never both
type Resolution struct {
	Match   *ResolvedMatch `json:"match,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Found reports whether a match was made
func (r Resolution) Found() bool { return r.Match != nil }

// NoVessel is the message for a query that names no vessel
const NoVessel = "Please name a vessel or give its MMSI."

// NoData is the message for a vessel the store has never seen
func NoData(label string) Resolution {
	return Resolution{Message: "No data found for " + label + "."}
}

// Summary describes one known vessel
type Summary struct {
	Name      string    `json:"name"`
	MMSI      int64     `json:"mmsi"`
	Count     int64     `json:"count"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// TrackQuery selects fixes of one vessel, ascending; zero bounds are open
type TrackQuery struct {
	Identity Identity
	From     *time.Time
	To       *time.Time
	Limit    int
}

// VesselRef names a vessel in requests
type VesselRef struct {
	Name string `json:"name,omitempty" validate:"required_without=MMSI,max=128"`
	MMSI int64  `json:"mmsi,omitempty" validate:"omitempty,mmsi"`
}

// ResolveRequest is the body of POST /vessels/resolve
type ResolveRequest struct {
	VesselRef
	At *ptime.Wall `json:"at,omitempty"`
}

// Input converts the request
func (r ResolveRequest) Input() ResolveInput {
	in := ResolveInput{Name: strings.TrimSpace(r.Name), MMSI: r.MMSI}
	if r.At != nil {
		in.End = ptime.Ptr(r.At.T())
	}
	return in
}

// TrackRequest is the body of POST /vessels/track
type TrackRequest struct {
	VesselRef
	From  *ptime.Wall `json:"from,omitempty"`
	To    *ptime.Wall `json:"to,omitempty"`
	Limit int         `json:"limit,omitempty" validate:"omitempty,min=1,max=1000"`
}

// Bounds returns the optional window as times
func (r TrackRequest) Bounds() (from, to *time.Time) {
	if r.From != nil {
		from = ptime.Ptr(r.From.T())
	}
	if r.To != nil {
		to = ptime.Ptr(r.To.T())
	}
	return from, to
}
