package similarity

import (
	"testing"

	kit "vesselq/internal/platform/testkit"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"BRAVA", "brava", 1},
		{"Ever-Given", "EVER GIVEN", 1},
		{"BRAVA", "BRAVO", 0.8},
		{"LAVACA", "LAVACCA", 1 - 1.0/7},
		{"abc", "xyz", 0},
		{"", "", 0},
	}
	for _, c := range cases {
		kit.MustNear(t, Ratio(c.a, c.b), c.want, 1e-9)
	}
}

func TestRank_FloorAndOrder(t *testing.T) {
	names := []string{"BRAVO", "BRAVA STAR", "BRAVA", "LAVACA"}
	got := Rank("brava", names, DefaultFloor)
	want := []Candidate{{Name: "BRAVA", Score: 1}, {Name: "BRAVO", Score: 0.8}}
	kit.MustEqual(t, got, want, kit.ApproxFloats(1e-9))

	if _, ok := Best("zzzz", names, DefaultFloor); ok {
		t.Fatal("nothing should clear the floor")
	}
	c, ok := Best("lavacaa", names, DefaultFloor)
	if !ok || c.Name != "LAVACA" {
		t.Fatalf("Best = %+v %v", c, ok)
	}
}

func TestContains(t *testing.T) {
	if !Contains("M/V BRAVA STAR", "brava star") {
		t.Fatal("expected match across punctuation")
	}
	if Contains("BRAVA", "") || Contains("BRAVA", "lavaca") {
		t.Fatal("unexpected match")
	}
}
