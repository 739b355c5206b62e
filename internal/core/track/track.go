// Package track holds the positional value types shared by the resolver,
// the predictor and the verifier
package track

import (
	"sort"
	"time"
)

// Position is one reported AIS fix
type Position struct {
	MMSI       int64     `json:"mmsi"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	SOG        float64   `json:"sog"`
	COG        float64   `json:"cog"`
	Heading    float64   `json:"heading"`
	VesselType int       `json:"vessel_type"`
	IMO        string    `json:"imo,omitempty"`
	CallSign   string    `json:"call_sign,omitempty"`
}

// Track is a run of fixes for one vessel, oldest first
type Track []Position

// Default bounds on track length
const (
	HistoryLimit = 1000
	PredictLimit = 24
	DisplayLimit = 10
)

// Len is the number of fixes
func (t Track) Len() int { return len(t) }

// Empty reports whether there are no fixes
func (t Track) Empty() bool { return len(t) == 0 }

// Last returns the newest fix
func (t Track) Last() (Position, bool) {
	if len(t) == 0 {
		return Position{}, false
	}
	return t[len(t)-1], true
}

// First returns the oldest fix
func (t Track) First() (Position, bool) {
	if len(t) == 0 {
		return Position{}, false
	}
	return t[0], true
}

// Tail returns the newest n fixes, still oldest first
func (t Track) Tail(n int) Track {
	if n <= 0 {
		return Track{}
	}
	if n >= len(t) {
		return t
	}
	return t[len(t)-n:]
}

// NewestFirst returns a reversed copy
func (t Track) NewestFirst() Track {
	out := make(Track, len(t))
	for i, p := range t {
		out[len(t)-1-i] = p
	}
	return out
}

// Sorted returns a copy ordered by timestamp, stable for equal stamps
func (t Track) Sorted() Track {
	out := append(Track(nil), t...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// Valid reports whether the fixes are ascending and share one identity.
// Identity is the MMSI when set, the name otherwise
func (t Track) Valid() bool {
	for i := 1; i < len(t); i++ {
		if t[i].Timestamp.Before(t[i-1].Timestamp) {
			return false
		}
		if !sameVessel(t[0], t[i]) {
			return false
		}
	}
	return true
}

func sameVessel(a, b Position) bool {
	if a.MMSI != 0 && b.MMSI != 0 {
		return a.MMSI == b.MMSI
	}
	return a.Name == b.Name
}

// Span is the time between the oldest and newest fix
func (t Track) Span() time.Duration {
	if len(t) < 2 {
		return 0
	}
	return t[len(t)-1].Timestamp.Sub(t[0].Timestamp)
}

// Native returns the per fix feature rows in the order
// lat, lon, sog, cog, heading, vessel_type
func (t Track) Native() [][]float64 {
	rows := make([][]float64, len(t))
	for i, p := range t {
		rows[i] = []float64{p.Lat, p.Lon, p.SOG, p.COG, p.Heading, float64(p.VesselType)}
	}
	return rows
}

// NativeDims is the width of a Native row
const NativeDims = 6
