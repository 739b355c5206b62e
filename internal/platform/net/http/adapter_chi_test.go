package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func text(s string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(s)) }
}

func TestAdaptChi_RootGroupRouteWith(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(header("X-Root"))
	r.Get("/root", text("root"))
	r.Handle("/std", stdhttp.HandlerFunc(text("std")))

	r.Group(func(gr Router) {
		gr.Use(header("X-Group"))
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Get("/g/ping", text("g"))
	})

	r.Route("/api/v1", func(sr Router) {
		sr.Use(header("X-Route"))
		sr.Route("/vessels", func(vr Router) {
			vr.Get("/", text("list"))
			vr.With(header("X-With")).Post("/resolve", text("resolved"))
		})
	})

	cases := []struct {
		method, path, body string
		headers            []string
		absent             []string
	}{
		{stdhttp.MethodGet, "/root", "root", []string{"X-Root"}, []string{"X-Group"}},
		{stdhttp.MethodGet, "/std", "std", []string{"X-Root"}, nil},
		{stdhttp.MethodGet, "/g/ping", "g", []string{"X-Root", "X-Group"}, nil},
		{stdhttp.MethodGet, "/api/v1/vessels/", "list", []string{"X-Root", "X-Route"}, []string{"X-With"}},
		{stdhttp.MethodPost, "/api/v1/vessels/resolve", "resolved", []string{"X-Route", "X-With"}, nil},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
		if rr.Code != stdhttp.StatusOK || rr.Body.String() != c.body {
			t.Fatalf("%s %s => %d %q", c.method, c.path, rr.Code, rr.Body.String())
		}
		for _, h := range c.headers {
			if rr.Header().Get(h) != "1" {
				t.Fatalf("%s %s: header %s missing", c.method, c.path, h)
			}
		}
		for _, h := range c.absent {
			if rr.Header().Get(h) != "" {
				t.Fatalf("%s %s: header %s leaked", c.method, c.path, h)
			}
		}
	}
}

func TestAdaptChi_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Post("/only-post", text("p"))

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/only-post", nil))
	if rr.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}
