package slug

import "testing"

func TestDerive(t *testing.T) {
	for _, tc := range []struct {
		name string
		want string
	}{
		{"Acme Corp!", "acme-corp"},
		{"Acme Corp", "acme-corp"},
		{"  acme   corp  ", "acme-corp"},
		{"ACME", "acme"},
		{"a b c", "a-b-c"},
		{"--already--slugged--", "already-slugged"},
		{"client42", "client42"},
		{"42", "42"},
		{"!!!", "client"},
		{"", "client"},
		{"   ", "client"},
		{"über café", "ber-caf"},
		{"a_b.c/d", "a-b-c-d"},
	} {
		if got := Derive(tc.name); got != tc.want {
			t.Errorf("Derive(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDeriveDeterministic(t *testing.T) {
	for _, name := range []string{"Acme Corp!", "x", "!!!"} {
		if Derive(name) != Derive(name) {
			t.Errorf("Derive(%q) is not deterministic", name)
		}
	}
}

func TestDeriveAlphabet(t *testing.T) {
	for _, name := range []string{"Acme Corp!", "Hello, World", "a--b", "The End."} {
		got := Derive(name)
		if got[0] == '-' || got[len(got)-1] == '-' {
			t.Errorf("Derive(%q) = %q has leading/trailing hyphen", name, got)
		}
		for i := 0; i < len(got); i++ {
			c := got[i]
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
				t.Errorf("Derive(%q) = %q contains %q", name, got, c)
			}
		}
	}
}
