package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vesselq/internal/core/track"
	"vesselq/internal/modkit/repokit"
	"vesselq/internal/platform/store"
	kit "vesselq/internal/platform/testkit"
	"vesselq/internal/services/vessels/domain"
)

// roundTrip seeds a fresh schema and reads it back through every query
func roundTrip(t *testing.T, st *store.Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := ApplySchema(ctx, st.DB, st.Driver); err != nil {
		t.Fatalf("schema: %v", err)
	}
	s := repokit.MustBind(New(), st.DB)

	base := time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)
	var xs []track.Position
	for i := range 6 {
		xs = append(xs, track.Position{
			MMSI: 367000001, Name: "LAVACA", Timestamp: base.Add(time.Duration(i) * 10 * time.Minute),
			Lat: 29 + float64(i)*0.01, Lon: -94.8, SOG: 10, COG: 90, Heading: 90, VesselType: 70,
		})
	}
	xs = append(xs, track.Position{MMSI: 366000002, Name: "LAKER", Timestamp: base, Lat: 30, Lon: -90, IMO: "IMO7"})

	err := repokit.WithTx(ctx, repokit.WithBeginHooks(st.DB, func(ctx context.Context, q repokit.Queryer) error {
		return New().Bind(q).Purge(ctx)
	}), func(q repokit.Queryer) error {
		return New().Bind(q).InsertBatch(ctx, xs)
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	names, err := s.DistinctNames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	kit.MustEqual(t, names, []string{"LAKER", "LAVACA"})

	if got, err := s.NamesByPrefix(ctx, "la", 1); err != nil || len(got) != 1 || got[0] != "LAKER" {
		t.Fatalf("NamesByPrefix = %v, %v", got, err)
	}
	if got, err := s.NamesLike(ctx, "vac", 10); err != nil || len(got) != 1 || got[0] != "LAVACA" {
		t.Fatalf("NamesLike = %v, %v", got, err)
	}
	if got, err := s.NameExact(ctx, "lavaca"); err != nil || got != "LAVACA" {
		t.Fatalf("NameExact = %q, %v", got, err)
	}

	id := domain.Identity{Name: "LAVACA"}
	last, err := s.Latest(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !last.Timestamp.Equal(base.Add(50*time.Minute)) || last.VesselType != 70 || last.IMO != "" {
		t.Fatalf("Latest = %+v", last)
	}

	p, err := s.AtOrBefore(ctx, domain.Identity{MMSI: 367000001}, base.Add(25*time.Minute))
	if err != nil || !p.Timestamp.Equal(base.Add(20*time.Minute)) {
		t.Fatalf("AtOrBefore = %+v, %v", p, err)
	}

	tr, err := s.Trailing(ctx, id, base.Add(25*time.Minute), 2)
	if err != nil || tr.Len() != 2 || !tr.Valid() || !tr[len(tr)-1].Timestamp.Equal(base.Add(20*time.Minute)) {
		t.Fatalf("Trailing = %+v, %v", tr, err)
	}

	win, err := s.Between(ctx, id, base.Add(10*time.Minute), base.Add(30*time.Minute), 0)
	if err != nil || win.Len() != 3 {
		t.Fatalf("Between = %d, %v", win.Len(), err)
	}

	sums, err := s.Summaries(ctx)
	if err != nil || len(sums) != 2 {
		t.Fatalf("Summaries = %+v, %v", sums, err)
	}
	if sums[1].Count != 6 || !sums[1].FirstSeen.Equal(base) || !sums[1].LastSeen.Equal(base.Add(50*time.Minute)) {
		t.Fatalf("LAVACA summary = %+v", sums[1])
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	st, err := store.Open(context.Background(), store.Config{
		Driver: store.DriverSQLite,
		SQLite: store.SQLiteConfig{Path: filepath.Join(t.TempDir(), "ais.db"), MaxOpen: 1},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	roundTrip(t, st)
}
