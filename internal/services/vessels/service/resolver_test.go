package service

import (
	"context"
	"errors"
	"testing"
	"time"

	kit "vesselq/internal/platform/testkit"
	ptime "vesselq/internal/platform/time"
	"vesselq/internal/services/vessels/domain"
)

func TestResolve_IdentityChain(t *testing.T) {
	cases := []struct {
		name     string
		in       domain.ResolveInput
		want     string
		strategy domain.Strategy
		scored   bool
	}{
		{"exact folds case", domain.ResolveInput{Name: "lavaca"}, "LAVACA", domain.StrategyExact, false},
		{"substring", domain.ResolveInput{Name: "VAC"}, "LAVACA", domain.StrategySubstring, false},
		{"fuzzy", domain.ResolveInput{Name: "LAVACKA"}, "LAVACA", domain.StrategyFuzzy, true},
		{"mmsi wins over name", domain.ResolveInput{Name: "LAKER", MMSI: 367000001}, "LAVACA", domain.StrategyMMSI, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewResolver(seeded(), Config{})
			res := r.Resolve(context.Background(), c.in)
			if !res.Found() {
				t.Fatalf("no match: %q", res.Message)
			}
			m := res.Match
			if m.Identity.Name != c.want || m.Strategy != c.strategy {
				t.Fatalf("match = %s via %s", m.Identity.Name, m.Strategy)
			}
			if (m.MatchConfidence != nil) != c.scored {
				t.Fatalf("confidence = %v", m.MatchConfidence)
			}
			if res.Message != "" {
				t.Fatalf("match and message both set: %q", res.Message)
			}
		})
	}
}

func TestResolve_ExactSkipsLaterStages(t *testing.T) {
	f := seeded()
	res := NewResolver(f, Config{}).Resolve(context.Background(), domain.ResolveInput{Name: "LAVACA"})
	if !res.Found() || res.Match.Strategy != domain.StrategyExact {
		t.Fatalf("res = %+v", res)
	}
	for _, op := range f.calls {
		if op == "NamesLike" || op == "DistinctNames" {
			t.Fatalf("exact match still ran %s: %v", op, f.calls)
		}
	}
}

func TestResolve_FuzzyConfidence(t *testing.T) {
	r := NewResolver(seeded(), Config{})
	res := r.Resolve(context.Background(), domain.ResolveInput{Name: "LAVACKA"})
	kit.MustNear(t, *res.Match.MatchConfidence, 6.0/7.0, 1e-9)

	strict := NewResolver(seeded(), Config{FuzzyFloor: 0.9})
	if res := strict.Resolve(context.Background(), domain.ResolveInput{Name: "LAVACKA"}); res.Found() {
		t.Fatalf("floor 0.9 should reject, got %+v", res.Match)
	}
}

func TestResolve_Messages(t *testing.T) {
	r := NewResolver(seeded(), Config{})
	ctx := context.Background()

	cases := map[string]struct {
		in   domain.ResolveInput
		want string
	}{
		"unknown name": {domain.ResolveInput{Name: "ZZZZ"}, "No data found for ZZZZ."},
		"unknown mmsi": {domain.ResolveInput{MMSI: 1}, "No data found for MMSI 1."},
		"nothing":      {domain.ResolveInput{}, NoVessel},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			res := r.Resolve(ctx, c.in)
			if res.Found() || res.Message != c.want {
				t.Fatalf("resolution = %+v", res)
			}
		})
	}
}

func TestResolve_TimeStrategies(t *testing.T) {
	cases := []struct {
		name   string
		end    *time.Time
		want   domain.TimeStrategy
		record time.Time
		track  int
	}{
		{"latest without end", nil, domain.TimeLatest, base.Add(110 * time.Minute), 10},
		{"at or before", ptime.Ptr(base.Add(25 * time.Minute)), domain.TimeAtOrBefore, base.Add(20 * time.Minute), 3},
		{"closest inside tolerance", ptime.Ptr(base.Add(-20 * time.Minute)), domain.TimeToleranceWindow, base, 1},
		{"latest fallback", ptime.Ptr(base.Add(-2 * time.Hour)), domain.TimeLatestFallback, base.Add(110 * time.Minute), 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewResolver(seeded(), Config{})
			res := r.Resolve(context.Background(), domain.ResolveInput{Name: "LAVACA", End: c.end})
			if !res.Found() {
				t.Fatalf("no match: %q", res.Message)
			}
			m := res.Match
			if m.TimeStrategy != c.want || !m.Record.Timestamp.Equal(c.record) {
				t.Fatalf("time = %s at %s", m.TimeStrategy, m.Record.Timestamp)
			}
			if m.Track.Len() != c.track || !m.Track.Valid() {
				t.Fatalf("track len = %d", m.Track.Len())
			}
			if last, _ := m.Track.Last(); !last.Timestamp.Equal(m.Record.Timestamp) {
				t.Fatalf("track ends at %s, record at %s", last.Timestamp, m.Record.Timestamp)
			}
		})
	}
}

func TestResolve_ToleranceBounds(t *testing.T) {
	r := NewResolver(seeded(), Config{Tolerance: 5 * time.Minute})
	end := base.Add(-20 * time.Minute)
	res := r.Resolve(context.Background(), domain.ResolveInput{Name: "LAVACA", End: &end})
	if res.Match.TimeStrategy != domain.TimeLatestFallback {
		t.Fatalf("narrow tolerance should fall back, got %s", res.Match.TimeStrategy)
	}
}

func TestResolve_StoreErrorsDegrade(t *testing.T) {
	f := seeded()
	f.fail["NameExact"] = errors.New("connection reset")
	f.fail["AtOrBefore"] = errors.New("timeout")
	f.fail["Trailing"] = errors.New("timeout")
	r := NewResolver(f, Config{})

	end := base.Add(27 * time.Minute)
	res := r.Resolve(context.Background(), domain.ResolveInput{Name: "LAVACA", End: &end})
	if !res.Found() {
		t.Fatalf("expected degraded match, got %q", res.Message)
	}
	m := res.Match
	if m.Strategy != domain.StrategySubstring {
		t.Fatalf("strategy = %s", m.Strategy)
	}
	if m.TimeStrategy != domain.TimeToleranceWindow || !m.Record.Timestamp.Equal(base.Add(30*time.Minute)) {
		t.Fatalf("time = %s at %s", m.TimeStrategy, m.Record.Timestamp)
	}
	if m.Track.Len() != 1 {
		t.Fatalf("failed trailing read should keep the record alone, got %d", m.Track.Len())
	}
}

func TestResolve_MMSIFillsName(t *testing.T) {
	f := seeded()
	r := NewResolver(f, Config{})
	res := r.Resolve(context.Background(), domain.ResolveInput{MMSI: 366000002})
	if !res.Found() || res.Match.Identity.Name != "LAKER" || res.Match.Identity.MMSI != 366000002 {
		t.Fatalf("match = %+v", res.Match)
	}
	for _, c := range f.calls {
		if c == "NameExact" || c == "NamesLike" || c == "DistinctNames" {
			t.Fatalf("mmsi lookup ran name stage %s", c)
		}
	}
}

func TestResolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewResolver(seeded(), Config{})
	if res := r.Resolve(ctx, domain.ResolveInput{Name: "LAVACA"}); res.Found() {
		t.Fatalf("cancelled context resolved %+v", res.Match)
	}
}

func TestNewResolver_NilRepoPanics(t *testing.T) {
	kit.MustPanic(t, func() { NewResolver(nil, Config{}) })
}
