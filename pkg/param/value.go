package param

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors.
var (
	// ErrNumericParse indicates malformed decimal numeric data.
	ErrNumericParse = errors.New("malformed numeric data")

	// ErrInvalidSuffix indicates an unrecognized unit suffix.
	ErrInvalidSuffix = errors.New("invalid unit suffix")

	// ErrInvalidKeyword indicates unrecognized character data.
	ErrInvalidKeyword = errors.New("invalid character data")

	// ErrInvalidString indicates malformed string data.
	ErrInvalidString = errors.New("malformed string data")

	// ErrMissingParameter indicates a required argument was absent.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrTooManyParameters indicates surplus arguments.
	ErrTooManyParameters = errors.New("too many parameters")

	// ErrDataType indicates an argument of the wrong data form.
	ErrDataType = errors.New("wrong data type")
)

// Kind classifies a decoded value.
type Kind uint8

const (
	// KindNumber is decimal numeric data, possibly unit-suffixed.
	KindNumber Kind = iota
	// KindKeyword is bare character data.
	KindKeyword
	// KindString is quoted string data.
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindKeyword:
		return "keyword"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Unit identifies the dimension of a numeric value.
type Unit uint8

const (
	// UnitNone is dimensionless numeric data.
	UnitNone Unit = iota
	// UnitVolt is electric potential, normalized to volts.
	UnitVolt
)

// voltSuffixes maps volt suffixes to their scale factor.
// Matching is case-insensitive; longer suffixes are tried first so MV
// is not mistaken for V.
var voltSuffixes = []struct {
	suffix string
	scale  float64
}{
	{"KV", 1e3},
	{"MV", 1e-3},
	{"UV", 1e-6},
	{"V", 1},
}

// Value is one decoded argument.
type Value struct {
	Kind Kind

	// Number and Unit are set for KindNumber.
	Number float64
	Unit   Unit

	// Text holds the keyword (as written) or the unquoted string body.
	Text string
}

// Is reports whether v is character data equal to any of the given
// forms, compared case-insensitively. Callers pass both the short and
// the long form of a keyword, e.g. v.Is("MIN", "MINIMUM").
func (v Value) Is(forms ...string) bool {
	if v.Kind != KindKeyword {
		return false
	}
	for _, f := range forms {
		if strings.EqualFold(v.Text, f) {
			return true
		}
	}
	return false
}

// Parse classifies and decodes a single argument token.
func Parse(tok string) (Value, error) {
	if tok == "" {
		return Value{}, ErrMissingParameter
	}

	switch c := tok[0]; {
	case c == '"':
		return parseString(tok)
	case c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9':
		return parseNumber(tok)
	default:
		return parseKeyword(tok)
	}
}

// parseNumber decodes decimal numeric data with an optional suffix.
func parseNumber(tok string) (Value, error) {
	end := numericEnd(tok)
	if end == 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrNumericParse, tok)
	}

	f, err := strconv.ParseFloat(tok[:end], 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrNumericParse, tok)
	}

	suffix := tok[end:]
	if suffix == "" {
		return Value{Kind: KindNumber, Number: f, Unit: UnitNone}, nil
	}
	for _, s := range voltSuffixes {
		if strings.EqualFold(suffix, s.suffix) {
			return Value{Kind: KindNumber, Number: f * s.scale, Unit: UnitVolt}, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %q", ErrInvalidSuffix, suffix)
}

// numericEnd returns the index one past the numeric part of tok:
// sign, digits, optional fraction, optional exponent.
func numericEnd(tok string) int {
	i := 0
	n := len(tok)

	digits := func() int {
		start := i
		for i < n && tok[i] >= '0' && tok[i] <= '9' {
			i++
		}
		return i - start
	}

	if i < n && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	intDigits := digits()
	fracDigits := 0
	if i < n && tok[i] == '.' {
		i++
		fracDigits = digits()
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}
	if i < n && (tok[i] == 'e' || tok[i] == 'E') {
		mark := i
		i++
		if i < n && (tok[i] == '+' || tok[i] == '-') {
			i++
		}
		if digits() == 0 {
			// Not an exponent; treat 'E...' as a suffix start.
			i = mark
		}
	}
	return i
}

// parseKeyword decodes bare character data.
func parseKeyword(tok string) (Value, error) {
	for _, r := range tok {
		isLetter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit && r != '_' && r != ':' {
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidKeyword, tok)
		}
	}
	return Value{Kind: KindKeyword, Text: tok}, nil
}

// parseString decodes quoted string data, undoubling embedded quotes.
func parseString(tok string) (Value, error) {
	if len(tok) < 2 || tok[len(tok)-1] != '"' {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidString, tok)
	}
	body := tok[1 : len(tok)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '"' {
			if i+1 >= len(body) || body[i+1] != '"' {
				return Value{}, fmt.Errorf("%w: %q", ErrInvalidString, tok)
			}
			i++
		}
		b.WriteByte(body[i])
	}
	return Value{Kind: KindString, Text: b.String()}, nil
}
