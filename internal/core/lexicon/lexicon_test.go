package lexicon

import (
	"testing"

	"vesselq/internal/core/normalize"

	"github.com/google/go-cmp/cmp"
)

func TestFind_LongestWinsOnOverlap(t *testing.T) {
	d := New([]Entry{
		{Phrase: "Brava", Label: "BRAVA"},
		{Phrase: "Brava Star", Label: "BRAVA STAR"},
		{Phrase: "Star", Label: "STAR"},
	})
	got := d.Find(normalize.Fold("where is the BRAVA STAR now"))
	want := []Match{{Term: "brava star", Label: "BRAVA STAR", Start: 13, End: 23}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Find mismatch (-want +got):\n%s", diff)
	}
}

func TestFind_WordBoundaries(t *testing.T) {
	d := Words("ava", "lavaca")
	cases := []struct {
		text string
		want []string
	}{
		{"show lavaca", []string{"lavaca"}},
		{"show lavacas", nil},
		{"ava and lavaca", []string{"ava", "lavaca"}},
		{"brava-123456789", nil},
		{"(ava)", []string{"ava"}},
	}
	for _, c := range cases {
		var got []string
		for _, m := range d.Find(normalize.Fold(c.text)) {
			got = append(got, m.Label)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("%q (-want +got):\n%s", c.text, diff)
		}
	}
}

func TestAll_KeepsOverlaps(t *testing.T) {
	d := Words("sea", "sea star", "star")
	got := d.All("sea star")
	if len(got) != 3 {
		t.Fatalf("All = %+v", got)
	}
	if got[0].Term != "sea star" || got[1].Term != "sea" || got[2].Term != "star" {
		t.Fatalf("order = %+v", got)
	}
}

func TestLongest(t *testing.T) {
	d := Words("ever", "ever given", "given")
	m, ok := d.Longest("track ever given please")
	if !ok || m.Term != "ever given" {
		t.Fatalf("Longest = %+v %v", m, ok)
	}
	if _, ok := d.Longest("nothing here"); ok {
		t.Fatal("unexpected match")
	}
}

func TestNew_DedupAndEmpty(t *testing.T) {
	d := New([]Entry{{Phrase: "BRAVA", Label: "first"}, {Phrase: "brava", Label: "second"}, {Phrase: "  "}})
	if d.Size() != 1 {
		t.Fatalf("Size = %d", d.Size())
	}
	m, _ := d.Longest("brava")
	if m.Label != "first" {
		t.Fatalf("label = %q", m.Label)
	}
	var nilDict *Dict
	if nilDict.Size() != 0 {
		t.Fatal("nil dict size")
	}
}

func TestHas(t *testing.T) {
	d := Words("in", "minutes")
	if !d.Has("Minutes") || d.Has("minute") || d.Has("in minutes") {
		t.Fatal("Has mismatch")
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("brava-123456789, at 6pm")
	want := []Token{
		{Text: "brava", Start: 0, End: 5},
		{Text: "123456789", Start: 6, End: 15},
		{Text: "at", Start: 17, End: 19},
		{Text: "6pm", Start: 20, End: 23},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Tokens (-want +got):\n%s", diff)
	}
}
