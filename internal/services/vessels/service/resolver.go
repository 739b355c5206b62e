package service

import (
	"context"
	"errors"
	"time"

	"vesselq/internal/core/similarity"
	"vesselq/internal/core/track"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/logger"
	"vesselq/internal/services/vessels/domain"
	"vesselq/internal/services/vessels/repo"
)

// NoVessel is the message for a query that names nothing
const NoVessel = domain.NoVessel

// identityStrategy picks a vessel for the input. conf is set only by stages
// that score their match
type identityStrategy struct {
	name domain.Strategy
	find func(ctx context.Context, in domain.ResolveInput) (id domain.Identity, conf *float64, ok bool)
}

// timeStrategy picks the record of a known vessel
type timeStrategy struct {
	name    domain.TimeStrategy
	applies func(in domain.ResolveInput) bool
	find    func(ctx context.Context, id domain.Identity, in domain.ResolveInput) (track.Position, bool)
}

// Resolver implements domain.Resolver over the positions repo. It only reads
type Resolver struct {
	repo repo.Storage
	cfg  Config
	log  *logger.Logger

	byMMSI []identityStrategy
	byName []identityStrategy
	timing []timeStrategy
}

var _ domain.Resolver = (*Resolver)(nil)

// NewResolver builds the strategy chains over s
func NewResolver(s repo.Storage, cfg Config) *Resolver {
	if s == nil {
		panic("vessels.Resolver requires a non nil repo")
	}
	r := &Resolver{repo: s, cfg: cfg.withDefaults(), log: logger.Named("resolver")}
	r.byMMSI = []identityStrategy{
		{domain.StrategyMMSI, r.mmsi},
	}
	r.byName = []identityStrategy{
		{domain.StrategyExact, r.exact},
		{domain.StrategySubstring, r.substring},
		{domain.StrategyFuzzy, r.fuzzy},
	}
	hasEnd := func(in domain.ResolveInput) bool { return in.End != nil }
	r.timing = []timeStrategy{
		{domain.TimeAtOrBefore, hasEnd, r.atOrBefore},
		{domain.TimeToleranceWindow, hasEnd, r.closest},
		{domain.TimeLatestFallback, hasEnd, r.latest},
		{domain.TimeLatest, func(in domain.ResolveInput) bool { return in.End == nil }, r.latest},
	}
	return r
}

// Resolve finds the vessel, then the record nearest the requested time and
// the trailing track that ends at it
func (r *Resolver) Resolve(ctx context.Context, in domain.ResolveInput) domain.Resolution {
	if in.MMSI == 0 && in.Name == "" {
		return domain.Resolution{Message: NoVessel}
	}
	id, conf, strat, ok := r.Identify(ctx, in)
	if !ok {
		return domain.NoData(in.Label())
	}

	for _, ts := range r.timing {
		if !ts.applies(in) {
			continue
		}
		rec, ok := ts.find(ctx, id, in)
		if !ok {
			continue
		}
		if id.Name == "" {
			id.Name = rec.Name
		}
		return domain.Resolution{Match: &domain.ResolvedMatch{
			Identity:        id,
			Record:          rec,
			Track:           r.trailing(ctx, id, rec),
			MatchConfidence: conf,
			Strategy:        strat,
			TimeStrategy:    ts.name,
		}}
	}
	return domain.NoData(in.Label())
}

// Identify runs the identity chain alone. An MMSI skips the name stages
func (r *Resolver) Identify(ctx context.Context, in domain.ResolveInput) (domain.Identity, *float64, domain.Strategy, bool) {
	chain := r.byName
	if in.MMSI != 0 {
		chain = r.byMMSI
	}
	for _, s := range chain {
		if ctx.Err() != nil {
			break
		}
		if id, conf, ok := s.find(ctx, in); ok {
			r.log.Debug().Str("strategy", string(s.name)).Str("vessel", id.String()).Msg("identity resolved")
			return id, conf, s.name, true
		}
	}
	return domain.Identity{}, nil, "", false
}

func (r *Resolver) mmsi(_ context.Context, in domain.ResolveInput) (domain.Identity, *float64, bool) {
	return domain.Identity{MMSI: in.MMSI}, nil, in.MMSI != 0
}

func (r *Resolver) exact(ctx context.Context, in domain.ResolveInput) (domain.Identity, *float64, bool) {
	if in.Name == "" {
		return domain.Identity{}, nil, false
	}
	name, err := r.repo.NameExact(ctx, in.Name)
	if !r.ok(err, "exact") {
		return domain.Identity{}, nil, false
	}
	return domain.Identity{Name: name}, nil, true
}

func (r *Resolver) substring(ctx context.Context, in domain.ResolveInput) (domain.Identity, *float64, bool) {
	if in.Name == "" {
		return domain.Identity{}, nil, false
	}
	names, err := r.repo.NamesLike(ctx, in.Name, r.cfg.Candidates)
	if !r.ok(err, "substring") || len(names) == 0 {
		return domain.Identity{}, nil, false
	}
	best, ok := similarity.Best(in.Name, names, 0)
	if !ok {
		best.Name = names[0]
	}
	return domain.Identity{Name: best.Name}, nil, true
}

func (r *Resolver) fuzzy(ctx context.Context, in domain.ResolveInput) (domain.Identity, *float64, bool) {
	if in.Name == "" {
		return domain.Identity{}, nil, false
	}
	names, err := r.repo.DistinctNames(ctx)
	if !r.ok(err, "fuzzy") {
		return domain.Identity{}, nil, false
	}
	best, ok := similarity.Best(in.Name, names, r.cfg.FuzzyFloor)
	if !ok {
		return domain.Identity{}, nil, false
	}
	score := best.Score
	return domain.Identity{Name: best.Name}, &score, true
}

func (r *Resolver) atOrBefore(ctx context.Context, id domain.Identity, in domain.ResolveInput) (track.Position, bool) {
	p, err := r.repo.AtOrBefore(ctx, id, *in.End)
	return p, r.ok(err, "at_or_before")
}

// closest picks the record nearest the end time inside the tolerance window
func (r *Resolver) closest(ctx context.Context, id domain.Identity, in domain.ResolveInput) (track.Position, bool) {
	end := *in.End
	rows, err := r.repo.Between(ctx, id, end.Add(-r.cfg.Tolerance), end.Add(r.cfg.Tolerance), 0)
	if !r.ok(err, "tolerance_window") || len(rows) == 0 {
		return track.Position{}, false
	}
	best, bestGap := 0, absDur(rows[0].Timestamp.Sub(end))
	for i := 1; i < len(rows); i++ {
		if g := absDur(rows[i].Timestamp.Sub(end)); g < bestGap {
			best, bestGap = i, g
		}
	}
	return rows[best], true
}

func (r *Resolver) latest(ctx context.Context, id domain.Identity, _ domain.ResolveInput) (track.Position, bool) {
	p, err := r.repo.Latest(ctx, id)
	return p, r.ok(err, "latest")
}

// trailing reads the display window ending at rec; a failed read keeps rec alone
func (r *Resolver) trailing(ctx context.Context, id domain.Identity, rec track.Position) track.Track {
	tr, err := r.repo.Trailing(ctx, id, rec.Timestamp, r.cfg.TrackLimit)
	if !r.ok(err, "trailing") || tr.Empty() {
		return track.Track{rec}
	}
	return tr
}

// ok reports whether a stage produced data. Store failures are logged and
// treated as a miss so the next stage still runs
func (r *Resolver) ok(err error, stage string) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, perr.ErrNotFound) && !errors.Is(err, context.Canceled) {
		r.log.Warn().Err(err).Str("stage", stage).Msg("resolver stage failed; degrading")
	}
	return false
}

func absDur(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
