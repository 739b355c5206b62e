package domain

import (
	"context"
	"time"

	"vesselq/internal/core/track"
)

// Resolver maps a query onto a vessel record. It never returns an error;
// failures degrade to a message
type Resolver interface {
	Resolve(ctx context.Context, in ResolveInput) Resolution
}

// Catalog enumerates known vessels
type Catalog interface {
	Names(ctx context.Context, prefix string, limit int) ([]string, error)
	Summaries(ctx context.Context) ([]Summary, error)
}

// Tracks reads positional history
type Tracks interface {
	Track(ctx context.Context, ref ResolveInput, q TrackQuery) (track.Track, error)
	Window(ctx context.Context, id Identity, end time.Time, span time.Duration) (track.Track, error)
	Trailing(ctx context.Context, id Identity, end time.Time, n int) (track.Track, error)
}

// Ports is the port set the vessels module exposes for cross wiring
type Ports struct {
	Resolver Resolver
	Catalog  Catalog
	Tracks   Tracks
}
