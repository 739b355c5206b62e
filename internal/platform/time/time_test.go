package time

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	want := time.Date(2024, 3, 5, 18, 25, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05 18:25:00", want},
		{" 2024-03-05T18:25:00Z ", want},
		{"2024-03-05T20:25:00+02:00", want},
		{"2024-03-05T18:25", want},
		{"2024-03-05 18:25", want},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if !got.Equal(c.want) || got.Location() != time.UTC {
			t.Fatalf("Parse(%q) = %v want %v", c.in, got, c.want)
		}
	}
	if _, err := Parse("yesterday"); err == nil {
		t.Fatal("expected error")
	}
}

func TestWallJSON(t *testing.T) {
	type dto struct {
		At *Wall `json:"at,omitempty"`
	}
	in := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	b, err := json.Marshal(dto{At: WallPtr(&in)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"at":"2024-01-01 10:00:00"}` {
		t.Fatalf("marshal = %s", b)
	}

	var out dto
	if err := json.Unmarshal([]byte(`{"at":"2024-01-01T10:00:00Z"}`), &out); err != nil {
		t.Fatal(err)
	}
	if out.At == nil || !out.At.T().Equal(in) {
		t.Fatalf("unmarshal = %v", out.At)
	}
	if err := json.Unmarshal([]byte(`{"at":"soon"}`), &out); err == nil {
		t.Fatal("expected error for bad time")
	}
	if WallPtr(nil) != nil {
		t.Fatal("nil in, nil out")
	}
}

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatal("zero should be nil")
	}
	if p := Ptr(time.Unix(1, 0)); p == nil {
		t.Fatal("non zero should be non nil")
	}
}
