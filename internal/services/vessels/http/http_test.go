package http

import (
	"bytes"
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vesselq/internal/core/track"
	perr "vesselq/internal/platform/errors"
	phttp "vesselq/internal/platform/net/http"
	kit "vesselq/internal/platform/testkit"
	"vesselq/internal/services/vessels/domain"

	"github.com/go-chi/chi/v5"
)

type stubService struct {
	prefix string
	limit  int
	in     domain.ResolveInput
	q      domain.TrackQuery
}

func (s *stubService) Resolve(_ context.Context, in domain.ResolveInput) domain.Resolution {
	s.in = in
	if in.Name == "GHOST" {
		return domain.NoData(in.Label())
	}
	return domain.Resolution{Match: &domain.ResolvedMatch{
		Identity: domain.Identity{Name: in.Name},
		Record:   track.Position{Name: in.Name, Timestamp: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
		Strategy: domain.StrategyExact, TimeStrategy: domain.TimeLatest,
	}}
}

func (s *stubService) Names(_ context.Context, prefix string, limit int) ([]string, error) {
	s.prefix, s.limit = prefix, limit
	return []string{"LAVACA"}, nil
}

func (s *stubService) Summaries(context.Context) ([]domain.Summary, error) {
	return []domain.Summary{{Name: "LAVACA", Count: 3}}, nil
}

func (s *stubService) Track(_ context.Context, ref domain.ResolveInput, q domain.TrackQuery) (track.Track, error) {
	s.in, s.q = ref, q
	if ref.Name == "GHOST" {
		return nil, perr.NotFoundf("No data found for GHOST.")
	}
	return track.Track{{Name: ref.Name}}, nil
}

func (s *stubService) Window(context.Context, domain.Identity, time.Time, time.Duration) (track.Track, error) {
	return nil, nil
}

func (s *stubService) Trailing(context.Context, domain.Identity, time.Time, int) (track.Track, error) {
	return nil, nil
}

func serve(t *testing.T, s Service, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewMux()
	Register(phttp.AdaptChi(mux), s, 50)
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestNames(t *testing.T) {
	s := &stubService{}
	rr := serve(t, s, stdhttp.MethodGet, "/?prefix=la&limit=20", "")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body)
	}
	kit.MustContain(t, rr.Body.String(), `"items":["LAVACA"]`)
	if s.prefix != "la" || s.limit != 20 {
		t.Fatalf("service saw %q %d", s.prefix, s.limit)
	}

	if rr := serve(t, s, stdhttp.MethodGet, "/?prefix=la&limit=51", ""); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("limit over prefix cap = %d", rr.Code)
	}
	if rr := serve(t, s, stdhttp.MethodGet, "/?limit=500", ""); rr.Code != stdhttp.StatusOK {
		t.Fatalf("unprefixed limit = %d", rr.Code)
	}
}

func TestSummary(t *testing.T) {
	rr := serve(t, &stubService{}, stdhttp.MethodGet, "/summary", "")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"count":3`)
}

func TestResolve(t *testing.T) {
	s := &stubService{}
	rr := serve(t, s, stdhttp.MethodPost, "/resolve", `{"name":"LAVACA","at":"2024-03-05 10:30:00"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body)
	}
	kit.MustContain(t, rr.Body.String(), `"strategy":"exact"`)
	kit.MustContain(t, rr.Body.String(), `"recent":`)
	if s.in.End == nil || !s.in.End.Equal(time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", s.in.End)
	}

	rr = serve(t, s, stdhttp.MethodPost, "/resolve", `{"name":"GHOST"}`)
	kit.MustContain(t, rr.Body.String(), "No data found for GHOST.")

	if rr := serve(t, s, stdhttp.MethodPost, "/resolve", `{}`); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("empty ref = %d", rr.Code)
	}
	if rr := serve(t, s, stdhttp.MethodPost, "/resolve", `{"mmsi":12}`); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("short mmsi = %d", rr.Code)
	}
}

func TestTrackRoute(t *testing.T) {
	s := &stubService{}
	rr := serve(t, s, stdhttp.MethodPost, "/track", `{"mmsi":367000001,"from":"2024-03-05 00:00:00","limit":5}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body)
	}
	if s.in.MMSI != 367000001 || s.q.Limit != 5 || s.q.From == nil || s.q.To != nil {
		t.Fatalf("service saw %+v %+v", s.in, s.q)
	}

	if rr := serve(t, s, stdhttp.MethodPost, "/track", `{"name":"GHOST"}`); rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown vessel = %d", rr.Code)
	}
	if rr := serve(t, s, stdhttp.MethodPost, "/track", `{"name":"LAVACA","limit":5000}`); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("limit over cap = %d", rr.Code)
	}
}
