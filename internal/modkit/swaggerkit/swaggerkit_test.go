package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "vesselq/internal/platform/net/http"
	kit "vesselq/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func get(t *testing.T, r phttp.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestMount_ServesNormalisedDoc(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &titleSuffix, func() string { return "(dev)" })

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true)

	rr := get(t, r, "/api/docs/doc.json")
	if rr.Code != http.StatusOK {
		t.Fatalf("doc.json => %d", rr.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi %v", spec["openapi"])
	}
	info := spec["info"].(map[string]any)
	kit.MustContain(t, info["title"].(string), "(dev)")

	paths := spec["paths"].(map[string]any)
	query, ok := paths["/query"].(map[string]any)
	if !ok {
		t.Fatalf("query path missing: %v", paths)
	}
	resps := query["post"].(map[string]any)["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("response %s missing", code)
		}
	}

	if rr := get(t, r, "/api/docs"); rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect => %d", rr.Code)
	}
	if rr := get(t, r, "/api/docs/index.html"); rr.Code != http.StatusOK {
		t.Fatalf("ui => %d", rr.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, false)
	if rr := get(t, r, "/api/docs/doc.json"); rr.Code != http.StatusNotFound {
		t.Fatalf("disabled => %d", rr.Code)
	}
}

func TestServeDocJSON_BadDoc(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &docReader, func() string { return "{" })

	rr := httptest.NewRecorder()
	serveDocJSON("/api/v1")(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("bad doc => %d", rr.Code)
	}
}

func TestEnsureServers(t *testing.T) {
	cases := []map[string]any{
		{"swagger": "2.0"},
		{"openapi": "3.1.0"},
		{},
	}
	for _, spec := range cases {
		ensureServers(spec, "/api/v1")
		if spec["openapi"] != "3.0.3" || spec["servers"] == nil || spec["swagger"] != nil {
			t.Fatalf("spec %v", spec)
		}
	}
	keep := map[string]any{"openapi": "3.0.1", "servers": []any{"x"}}
	ensureServers(keep, "/api/v1")
	if keep["openapi"] != "3.0.1" {
		t.Fatalf("3.0.x should be kept: %v", keep)
	}
}

func TestRegister_AppliesMutators(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &mutators, nil)
	Register(nil)
	Register(func(spec map[string]any) { spec["x-vesselq"] = true })

	rr := httptest.NewRecorder()
	serveDocJSON("/api/v1")(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	kit.MustContain(t, rr.Body.String(), `"x-vesselq":true`)
}
