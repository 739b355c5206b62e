package service

import (
	"time"

	"vesselq/internal/core/similarity"
	"vesselq/internal/core/track"
)

// Config tunes resolution and catalog reads
type Config struct {
	// FuzzyFloor is the lowest similarity the fuzzy stage accepts
	FuzzyFloor float64
	// Tolerance is the half width of the window searched around a requested time
	Tolerance time.Duration
	// TrackLimit bounds the trailing track attached to a match
	TrackLimit int
	// PrefixLimit bounds prefix searches
	PrefixLimit int
	// Window is the span used when a track window has none
	Window time.Duration
	// Candidates bounds the substring stage
	Candidates int
}

// Defaults
const (
	DefaultTolerance   = 30 * time.Minute
	DefaultPrefixLimit = 50
	DefaultWindow      = 60 * time.Minute
	DefaultCandidates  = 50
)

func (c Config) withDefaults() Config {
	if c.FuzzyFloor <= 0 || c.FuzzyFloor > 1 {
		c.FuzzyFloor = similarity.DefaultFloor
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.TrackLimit <= 0 || c.TrackLimit > track.HistoryLimit {
		c.TrackLimit = track.DisplayLimit
	}
	if c.PrefixLimit <= 0 {
		c.PrefixLimit = DefaultPrefixLimit
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Candidates <= 0 {
		c.Candidates = DefaultCandidates
	}
	return c
}
