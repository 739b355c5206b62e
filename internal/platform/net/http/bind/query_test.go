package bind

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "vesselq/internal/platform/errors"
)

func get(q string) *http.Request { return httptest.NewRequest(http.MethodGet, "/?"+q, nil) }

func TestQueryInt(t *testing.T) {
	cases := []struct {
		q    string
		want int
		err  bool
	}{
		{"", 10, false},
		{"limit=25", 25, false},
		{"limit=%2050%20", 50, false},
		{"limit=51", 0, true},
		{"limit=0", 0, true},
		{"limit=ten", 0, true},
	}
	for _, c := range cases {
		got, err := QueryInt(get(c.q), "limit", 10, 1, 50)
		if c.err {
			if perr.CodeOf(err) != perr.ErrorCodeValidation {
				t.Fatalf("%q: expected validation error, got %v", c.q, err)
			}
			if e, _ := perr.As(err); e.Field() != "limit" {
				t.Fatalf("%q: field %q", c.q, e.Field())
			}
			continue
		}
		if err != nil || got != c.want {
			t.Fatalf("%q: got %d, %v", c.q, got, err)
		}
	}
}

func TestQueryStringAndTime(t *testing.T) {
	r := get("prefix=%20br%20&at=2024-01-01%2010:00:00")
	if got := QueryString(r, "prefix", ""); got != "br" {
		t.Fatalf("prefix %q", got)
	}
	if got := QueryString(r, "missing", "def"); got != "def" {
		t.Fatalf("default %q", got)
	}

	at, err := QueryTime(r, "at")
	if err != nil || at == nil || !at.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("at %v, %v", at, err)
	}
	if at, err := QueryTime(r, "missing"); at != nil || err != nil {
		t.Fatalf("missing => %v, %v", at, err)
	}
	if _, err := QueryTime(get("at=noonish"), "at"); perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("bad time => %v", err)
	}
}
