package response

import "testing"

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{1, "1.0"},
		{5, "5.0"},
		{100, "100.0"},
		{0, "0.0"},
		{0.01, "0.01"},
		{0.5, "0.5"},
		{-3.25, "-3.25"},
		{2.5e-7, "2.5e-07"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.v); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestQuoteString(t *testing.T) {
	if got := QuoteString("VOLT:AC"); got != `"VOLT:AC"` {
		t.Errorf("QuoteString = %q", got)
	}
	if got := QuoteString(`say "hi"`); got != `"say ""hi"""` {
		t.Errorf("QuoteString with quotes = %q", got)
	}
}

func TestUnitRender(t *testing.T) {
	var u Unit
	if !u.Empty() {
		t.Error("new unit should be empty")
	}

	u.Float(5).Int(3).Bool(true).Bool(false).Literal("AUTO").String("VOLT:DC")
	want := `5.0,3,1,0,AUTO,"VOLT:DC"`
	if got := u.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if u.Empty() {
		t.Error("unit should not be empty after appends")
	}
}
