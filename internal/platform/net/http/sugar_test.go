package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type minutesDTO struct {
	Minutes int `json:"minutes" validate:"min=0,max=1440"`
}

func TestSugar_GetAndPost(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	GetJSON(r, "/g", func(_ *http.Request) (any, error) {
		return map[string]string{"ok": "get"}, nil
	})
	PostJSON[minutesDTO](r, "/p", func(_ *http.Request, in minutesDTO) (any, error) {
		return map[string]int{"hours": in.Minutes / 60}, nil
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		return rr
	}

	if rr := do(http.MethodGet, "/g", ""); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok":"get"`) {
		t.Fatalf("GET => %d %s", rr.Code, rr.Body.String())
	}
	if rr := do(http.MethodPost, "/p", `{"minutes":120}`); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"hours":2`) {
		t.Fatalf("POST => %d %s", rr.Code, rr.Body.String())
	}
	rr := do(http.MethodPost, "/p", `{"minutes":5000}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("validation => %d %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "minutes must be at most 1440") {
		t.Fatalf("validation message missing: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"field":"minutes"`) {
		t.Fatalf("validation field missing: %s", rr.Body.String())
	}
}
