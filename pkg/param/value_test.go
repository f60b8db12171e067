package param

import (
	"errors"
	"testing"
)

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		tok  string
		want float64
		unit Unit
	}{
		{"5", 5, UnitNone},
		{"-3.5", -3.5, UnitNone},
		{"+0.01", 0.01, UnitNone},
		{".5", 0.5, UnitNone},
		{"1e3", 1000, UnitNone},
		{"1.5E-2", 0.015, UnitNone},
		{"5V", 5, UnitVolt},
		{"5v", 5, UnitVolt},
		{"2KV", 2000, UnitVolt},
		{"10MV", 0.01, UnitVolt},
		{"250UV", 250e-6, UnitVolt},
		{"0.01V", 0.01, UnitVolt},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			v, err := Parse(tt.tok)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.tok, err)
			}
			if v.Kind != KindNumber {
				t.Fatalf("kind = %v", v.Kind)
			}
			if v.Number != tt.want {
				t.Errorf("number = %v, want %v", v.Number, tt.want)
			}
			if v.Unit != tt.unit {
				t.Errorf("unit = %v, want %v", v.Unit, tt.unit)
			}
		})
	}
}

func TestParseNumberErrors(t *testing.T) {
	tests := []struct {
		tok  string
		want error
	}{
		{"5X", ErrInvalidSuffix},
		{"3.0A", ErrInvalidSuffix},
		{"+", ErrNumericParse},
		{"-.", ErrNumericParse},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			_, err := Parse(tt.tok)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.tok, err, tt.want)
			}
		})
	}
}

func TestParseExponentBacktrack(t *testing.T) {
	// "5E" has no exponent digits, so E must be tried as a suffix and
	// rejected.
	_, err := Parse("5E")
	if !errors.Is(err, ErrInvalidSuffix) {
		t.Errorf("Parse(5E) = %v, want %v", err, ErrInvalidSuffix)
	}
}

func TestParseKeyword(t *testing.T) {
	v, err := Parse("AUTO")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Kind != KindKeyword || v.Text != "AUTO" {
		t.Errorf("value = %+v", v)
	}

	if !v.Is("AUTO") || !v.Is("auto") || !v.Is("MIN", "AUTO") {
		t.Error("Is should match case-insensitively")
	}
	if v.Is("MIN", "MINIMUM") {
		t.Error("Is matched a different keyword")
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{`"VOLT:AC"`, "VOLT:AC"},
		{`""`, ""},
		{`"say ""hi"""`, `say "hi"`},
	}

	for _, tt := range tests {
		v, err := Parse(tt.tok)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.tok, err)
		}
		if v.Kind != KindString || v.Text != tt.want {
			t.Errorf("Parse(%q) = %+v, want text %q", tt.tok, v, tt.want)
		}
	}
}

func TestParseStringErrors(t *testing.T) {
	for _, tok := range []string{`"open`, `"`, `"a"b"`} {
		if _, err := Parse(tok); !errors.Is(err, ErrInvalidString) {
			t.Errorf("Parse(%q) = %v, want %v", tok, err, ErrInvalidString)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("Parse(\"\") = %v", err)
	}
}

func TestArgsExpect(t *testing.T) {
	args, err := DecodeAll([]string{"5", "0.01"})
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}

	if err := args.Expect(0, 2); err != nil {
		t.Errorf("Expect(0,2) = %v", err)
	}
	if err := args.Expect(3, 4); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("Expect(3,4) = %v", err)
	}
	if err := args.Expect(0, 1); !errors.Is(err, ErrTooManyParameters) {
		t.Errorf("Expect(0,1) = %v", err)
	}
}

func TestArgsAccessors(t *testing.T) {
	args, err := DecodeAll([]string{"5V", `"VOLT:AC"`})
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}

	n, err := args.Number(0)
	if err != nil || n != 5 {
		t.Errorf("Number(0) = %v, %v", n, err)
	}
	if _, err := args.Number(1); !errors.Is(err, ErrDataType) {
		t.Errorf("Number(1) = %v, want data type error", err)
	}

	s, err := args.String(1)
	if err != nil || s != "VOLT:AC" {
		t.Errorf("String(1) = %q, %v", s, err)
	}
	if _, err := args.String(0); !errors.Is(err, ErrDataType) {
		t.Errorf("String(0) = %v, want data type error", err)
	}

	if _, err := args.Number(2); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("Number(2) = %v", err)
	}
	if _, ok := args.Value(2); ok {
		t.Error("Value(2) should report absent")
	}
}
