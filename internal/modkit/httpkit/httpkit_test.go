package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vesselq/internal/platform/config"
	perr "vesselq/internal/platform/errors"
	phttp "vesselq/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type nameIn struct {
	Name string `json:"name" validate:"required"`
}

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func serve(r Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, req)
	return rr
}

func TestMountAPIV1_AndSugar(t *testing.T) {
	r := newRouter()
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Scope", "api")
			next.ServeHTTP(w, req)
		})
	}

	MountAPIV1(r, []func(http.Handler) http.Handler{tagged}, func(api Router) {
		MountUnder(api, "/vessels", nil, func(vr Router) {
			Get(vr, "/", func(*http.Request) (any, error) {
				return List([]string{"Brava"}, 1, 50), nil
			})
			Get(vr, "/missing", func(*http.Request) (any, error) {
				return nil, perr.NotFoundf("no vessel")
			})
			PostJSON[nameIn](vr, "/resolve", func(_ *http.Request, in nameIn) (any, error) {
				return map[string]string{"name": in.Name}, nil
			})
		})
	})

	rr := serve(r, http.MethodGet, "/api/v1/vessels/", "")
	if rr.Code != http.StatusOK || rr.Header().Get("X-Scope") != "api" {
		t.Fatalf("list => %d %v", rr.Code, rr.Header())
	}
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data == nil {
		t.Fatal("list data missing")
	}

	if rr := serve(r, http.MethodGet, "/api/v1/vessels/missing", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("missing => %d", rr.Code)
	}
	if rr := serve(r, http.MethodPost, "/api/v1/vessels/resolve", `{"name":"Lavaca"}`); rr.Code != http.StatusOK ||
		!strings.Contains(rr.Body.String(), `"name":"Lavaca"`) {
		t.Fatalf("resolve => %d %s", rr.Code, rr.Body.String())
	}
	if rr := serve(r, http.MethodPost, "/api/v1/vessels/resolve", `{}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("resolve validation => %d", rr.Code)
	}
	if rr := serve(r, http.MethodGet, "/vessels/", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unversioned path should not exist, got %d", rr.Code)
	}
}

func TestHandle_AndOK(t *testing.T) {
	r := newRouter()
	r.Get("/h", Handle(func(*http.Request) Response { return OK("x") }))
	r.Get("/e", Handle(func(*http.Request) Response { return Error(perr.Unavailablef("down")) }))

	if rr := serve(r, http.MethodGet, "/h", ""); rr.Code != http.StatusOK {
		t.Fatalf("ok => %d", rr.Code)
	}
	if rr := serve(r, http.MethodGet, "/e", ""); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("unavailable => %d", rr.Code)
	}
}

func TestStackFromConfig(t *testing.T) {
	t.Setenv("HK_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HK_RATE_RPS", "2.5")
	t.Setenv("HK_TIMEOUT", "5s")

	o := StackFromConfig(config.New().Prefix("HK_"))
	if len(o.Origins) != 2 || o.RPS != 2.5 || o.Timeout != 5*time.Second || o.Burst != 40 {
		t.Fatalf("options %+v", o)
	}
}

func TestCommonStack_Runs(t *testing.T) {
	stack := CommonStack(StackOptions{RPS: 1, Burst: 1, Throttle: 4})
	if len(stack) != 10 {
		t.Fatalf("stack len %d", len(stack))
	}

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}
	first := do()
	if first.Code != http.StatusNoContent || first.Header().Get("X-Request-ID") == "" {
		t.Fatalf("first => %d %v", first.Code, first.Header())
	}
	if second := do(); second.Code != http.StatusTooManyRequests {
		t.Fatalf("second should be limited, got %d", second.Code)
	}
}
