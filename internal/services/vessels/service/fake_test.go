package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"vesselq/internal/core/track"
	"vesselq/internal/modkit/repokit"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/services/vessels/domain"
	"vesselq/internal/services/vessels/repo"
)

// fakeRepo is an in memory repo.Storage. fail injects an error per method name
type fakeRepo struct {
	rows      []track.Position
	fail      map[string]error
	calls     []string
	lastLimit int
}

var _ repo.Storage = (*fakeRepo)(nil)

func (f *fakeRepo) hit(op string) error {
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakeRepo) of(id domain.Identity) track.Track {
	var out track.Track
	for _, p := range f.rows {
		if (id.MMSI != 0 && p.MMSI == id.MMSI) || (id.MMSI == 0 && p.Name == id.Name) {
			out = append(out, p)
		}
	}
	return out.Sorted()
}

func (f *fakeRepo) names(keep func(string) bool, limit int) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range f.rows {
		if p.Name != "" && !seen[p.Name] && keep(p.Name) {
			seen[p.Name] = true
			out = append(out, p.Name)
		}
	}
	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeRepo) DistinctNames(context.Context) ([]string, error) {
	if err := f.hit("DistinctNames"); err != nil {
		return nil, err
	}
	return f.names(func(string) bool { return true }, 0), nil
}

func (f *fakeRepo) NamesByPrefix(_ context.Context, prefix string, limit int) ([]string, error) {
	f.lastLimit = limit
	if err := f.hit("NamesByPrefix"); err != nil {
		return nil, err
	}
	p := strings.ToLower(prefix)
	return f.names(func(n string) bool { return strings.HasPrefix(strings.ToLower(n), p) }, limit), nil
}

func (f *fakeRepo) NamesLike(_ context.Context, needle string, limit int) ([]string, error) {
	if err := f.hit("NamesLike"); err != nil {
		return nil, err
	}
	k := strings.ToLower(needle)
	return f.names(func(n string) bool { return strings.Contains(strings.ToLower(n), k) }, limit), nil
}

func (f *fakeRepo) NameExact(_ context.Context, name string) (string, error) {
	if err := f.hit("NameExact"); err != nil {
		return "", err
	}
	if ns := f.names(func(n string) bool { return strings.EqualFold(n, name) }, 1); len(ns) > 0 {
		return ns[0], nil
	}
	return "", perr.ErrNotFound
}

func (f *fakeRepo) Summaries(context.Context) ([]domain.Summary, error) {
	if err := f.hit("Summaries"); err != nil {
		return nil, err
	}
	var out []domain.Summary
	for _, n := range f.names(func(string) bool { return true }, 0) {
		tr := f.of(domain.Identity{Name: n})
		first, _ := tr.First()
		last, _ := tr.Last()
		out = append(out, domain.Summary{
			Name: n, MMSI: last.MMSI, Count: int64(tr.Len()),
			FirstSeen: first.Timestamp, LastSeen: last.Timestamp,
		})
	}
	return out, nil
}

func (f *fakeRepo) Latest(_ context.Context, id domain.Identity) (track.Position, error) {
	if err := f.hit("Latest"); err != nil {
		return track.Position{}, err
	}
	last, ok := f.of(id).Last()
	if !ok {
		return track.Position{}, perr.ErrNotFound
	}
	return last, nil
}

func (f *fakeRepo) AtOrBefore(_ context.Context, id domain.Identity, end time.Time) (track.Position, error) {
	if err := f.hit("AtOrBefore"); err != nil {
		return track.Position{}, err
	}
	var (
		best  track.Position
		found bool
	)
	for _, p := range f.of(id) {
		if !p.Timestamp.After(end) {
			best, found = p, true
		}
	}
	if !found {
		return track.Position{}, perr.ErrNotFound
	}
	return best, nil
}

func (f *fakeRepo) Between(_ context.Context, id domain.Identity, from, to time.Time, limit int) (track.Track, error) {
	if err := f.hit("Between"); err != nil {
		return nil, err
	}
	var out track.Track
	for _, p := range f.of(id) {
		if !p.Timestamp.Before(from) && !p.Timestamp.After(to) {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) Trailing(_ context.Context, id domain.Identity, end time.Time, limit int) (track.Track, error) {
	if err := f.hit("Trailing"); err != nil {
		return nil, err
	}
	var out track.Track
	for _, p := range f.of(id) {
		if !p.Timestamp.After(end) {
			out = append(out, p)
		}
	}
	return out.Tail(limit), nil
}

func (f *fakeRepo) Range(_ context.Context, q domain.TrackQuery) (track.Track, error) {
	if err := f.hit("Range"); err != nil {
		return nil, err
	}
	var out track.Track
	for _, p := range f.of(q.Identity) {
		if q.From != nil && p.Timestamp.Before(*q.From) {
			continue
		}
		if q.To != nil && p.Timestamp.After(*q.To) {
			continue
		}
		out = append(out, p)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = track.HistoryLimit
	}
	if q.From == nil {
		return out.Tail(limit), nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) InsertBatch(_ context.Context, xs []track.Position) error {
	if err := f.hit("InsertBatch"); err != nil {
		return err
	}
	f.rows = append(f.rows, xs...)
	return nil
}

func (f *fakeRepo) Purge(context.Context) error {
	if err := f.hit("Purge"); err != nil {
		return err
	}
	f.rows = nil
	return nil
}

var base = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

// seeded holds LAVACA every ten minutes from base (12 fixes) and one LAKER fix
func seeded() *fakeRepo {
	f := &fakeRepo{fail: map[string]error{}}
	for i := range 12 {
		f.rows = append(f.rows, track.Position{
			MMSI: 367000001, Name: "LAVACA", Timestamp: base.Add(time.Duration(i) * 10 * time.Minute),
			Lat: 29 + float64(i)*0.01, Lon: -94.8, SOG: 10, COG: 0, Heading: 0,
		})
	}
	f.rows = append(f.rows, track.Position{MMSI: 366000002, Name: "LAKER", Timestamp: base, Lat: 30, Lon: -90})
	return f
}

// nopTx satisfies the non nil TxRunner check; the fake repo never touches it
type nopTx struct{ repokit.TxRunner }

func newService(f *fakeRepo, cfg Config) *Service {
	return New(nopTx{}, repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return f }), cfg)
}
