package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		year     uint16
		revision uint16
	}{
		{"1999.0", 1999, 0},
		{"1994.0", 1994, 0},
		{"1999.1", 1999, 1},
	}

	for _, tt := range tests {
		v, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.in, err)
			continue
		}
		if v.Year != tt.year || v.Revision != tt.revision {
			t.Errorf("Parse(%q) = %+v", tt.in, v)
		}
		if v.String() != tt.in {
			t.Errorf("String() = %q, want %q", v.String(), tt.in)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "1999", "1999.0.1", "x.0", "1999.x", ".0", "1999."} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestCurrentParses(t *testing.T) {
	v, err := Parse(Current)
	if err != nil {
		t.Fatalf("Parse(Current) failed: %v", err)
	}
	if v.Year != 1999 {
		t.Errorf("Current year = %d", v.Year)
	}
}

func TestAtLeast(t *testing.T) {
	v1994 := SystemVersion{Year: 1994}
	v1999 := SystemVersion{Year: 1999}
	v1999r1 := SystemVersion{Year: 1999, Revision: 1}

	if !v1999.AtLeast(v1994) || v1994.AtLeast(v1999) {
		t.Error("year comparison")
	}
	if !v1999r1.AtLeast(v1999) || v1999.AtLeast(v1999r1) {
		t.Error("revision comparison")
	}
	if !v1999.AtLeast(v1999) {
		t.Error("reflexive comparison")
	}
}
