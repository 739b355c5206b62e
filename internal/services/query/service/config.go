package service

import (
	"time"

	tdomain "vesselq/internal/services/trajectory/domain"
	vdomain "vesselq/internal/services/vessels/domain"
)

// DefaultLexiconTTL is how long a parser built from the catalog is reused
const DefaultLexiconTTL = 5 * time.Minute

// Config tunes the query service
type Config struct {
	LexiconTTL     time.Duration
	AtAnchorsClock bool
	// Now is the clock for parsing and cache age; defaults to time.Now
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.LexiconTTL <= 0 {
		c.LexiconTTL = DefaultLexiconTTL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Ports are the upstream ports a query fans out to
type Ports struct {
	Resolver   vdomain.Resolver
	Catalog    vdomain.Catalog
	Tracks     vdomain.Tracks
	Forecaster tdomain.Forecaster
	Checker    tdomain.Checker
}

func (p Ports) complete() bool {
	return p.Resolver != nil && p.Catalog != nil && p.Tracks != nil && p.Forecaster != nil && p.Checker != nil
}
