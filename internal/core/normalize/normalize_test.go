package normalize

import "testing"

func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"identity ascii", "show brava", "show brava"},
		{"utf8 repair drops invalid bytes", string([]byte{0xff, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}), "foo bar"},
		{"case fold", "LAVACA", "lavaca"},
		{"remove zero-widths", "bra\u200bva", "brava"},
		{"remove combining marks", "sa\u0303o joa\u0303o", "sao joao"},
		{"precomposed accents", "S\u00e3o Jo\u00e3o", "sao joao"},
		{"width fold fullwidth", "ＢＲＡＶＡ now", "brava now"},
		{"digits survive", "MMSI 367000001", "mmsi 367000001"},
		{"collapse whitespace and newlines", "a\t\tb\nc   d", "a b c d"},
		{"control runes dropped", "br\x00ava\x7f", "brava"},
		{"idempotent", n.Normalize("Ｌ@VACA\t\tone  "), "l@vaca one"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := n.Normalize(got); again != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestKey(t *testing.T) {
	cases := map[string]string{
		"M/V Brava-1":   "mvbrava1",
		"  mv  brava 1": "mvbrava1",
		"":              "",
		"---":           "",
	}
	for in, want := range cases {
		if got := Key(in); got != want {
			t.Fatalf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"BRAVA":       "Brava",
		"brava  star": "Brava Star",
		"ever given":  "Ever Given",
		"":            "",
	}
	for in, want := range cases {
		if got := Title(in); got != want {
			t.Fatalf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitize_FastPath(t *testing.T) {
	s := "clean\ttext\n"
	if got := Sanitize(s); got != s {
		t.Fatalf("Sanitize changed clean input: %q", got)
	}
	if got := Sanitize("a\u0085b"); got != "ab" {
		t.Fatalf("C1 control kept: %q", got)
	}
}
