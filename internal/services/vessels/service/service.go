// Package service implements the vessels ports: resolution, the catalog of
// known vessels and track reads
package service

import (
	"context"
	"strings"
	"time"

	"vesselq/internal/core/track"
	"vesselq/internal/modkit/repokit"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/services/vessels/domain"
	"vesselq/internal/services/vessels/repo"
)

// Service implements domain.Catalog and domain.Tracks and embeds the Resolver
type Service struct {
	*Resolver

	Repo   repo.Storage
	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	cfg    Config
}

var (
	_ domain.Catalog  = (*Service)(nil)
	_ domain.Tracks   = (*Service)(nil)
	_ domain.Resolver = (*Service)(nil)
)

// New constructs the vessels service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if db == nil {
		panic("vessels.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("vessels.Service requires a non nil Repo binder")
	}
	cfg = cfg.withDefaults()
	st := binder.Bind(db)
	return &Service{
		Resolver: NewResolver(st, cfg),
		Repo:     st,
		binder:   binder,
		db:       db,
		cfg:      cfg,
	}
}

// Names lists known vessels. With a prefix the list is capped at the prefix limit
func (s *Service) Names(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		names, err := s.Repo.DistinctNames(ctx)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "list vessel names")
		}
		if limit > 0 && len(names) > limit {
			names = names[:limit]
		}
		return names, nil
	}
	if limit <= 0 || limit > s.cfg.PrefixLimit {
		limit = s.cfg.PrefixLimit
	}
	names, err := s.Repo.NamesByPrefix(ctx, prefix, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "search vessel names")
	}
	return names, nil
}

// Summaries reports count and first and last seen per vessel
func (s *Service) Summaries(ctx context.Context) ([]domain.Summary, error) {
	out, err := s.Repo.Summaries(ctx)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "summarise vessels")
	}
	return out, nil
}

// Track identifies the vessel in ref and reads its history inside q's bounds
func (s *Service) Track(ctx context.Context, ref domain.ResolveInput, q domain.TrackQuery) (track.Track, error) {
	if ref.MMSI == 0 && ref.Name == "" {
		return nil, perr.WithField(perr.InvalidArgf("%s", NoVessel), "name")
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, perr.WithField(perr.InvalidArgf("to is before from"), "to")
	}
	id, _, _, ok := s.Identify(ctx, ref)
	if !ok {
		return nil, perr.NotFoundf("No data found for %s.", ref.Label())
	}
	q.Identity = id
	tr, err := s.Repo.Range(ctx, q)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "read track of %s", id)
	}
	return tr, nil
}

// Window returns the fixes in [end-span, end], ascending. A zero span takes the default window
func (s *Service) Window(ctx context.Context, id domain.Identity, end time.Time, span time.Duration) (track.Track, error) {
	if span <= 0 {
		span = s.cfg.Window
	}
	tr, err := s.Repo.Between(ctx, id, end.Add(-span), end, track.HistoryLimit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "read window of %s", id)
	}
	return tr, nil
}

// Trailing returns up to n fixes ending at end, ascending
func (s *Service) Trailing(ctx context.Context, id domain.Identity, end time.Time, n int) (track.Track, error) {
	if n <= 0 || n > track.HistoryLimit {
		n = track.HistoryLimit
	}
	tr, err := s.Repo.Trailing(ctx, id, end, n)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "read trailing fixes of %s", id)
	}
	return tr, nil
}
