package param

import "fmt"

// Args is the decoded argument list of one message unit.
type Args []Value

// DecodeAll decodes every raw argument token.
func DecodeAll(tokens []string) (Args, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	args := make(Args, 0, len(tokens))
	for _, tok := range tokens {
		v, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// Expect verifies the argument count is within [min, max].
func (a Args) Expect(min, max int) error {
	if len(a) < min {
		return fmt.Errorf("%w: want at least %d, got %d", ErrMissingParameter, min, len(a))
	}
	if len(a) > max {
		return fmt.Errorf("%w: want at most %d, got %d", ErrTooManyParameters, max, len(a))
	}
	return nil
}

// Number returns argument i as a float, rejecting other data forms.
func (a Args) Number(i int) (float64, error) {
	if i >= len(a) {
		return 0, ErrMissingParameter
	}
	v := a[i]
	if v.Kind != KindNumber {
		return 0, fmt.Errorf("%w: want number, got %s", ErrDataType, v.Kind)
	}
	return v.Number, nil
}

// String returns argument i as string data.
func (a Args) String(i int) (string, error) {
	if i >= len(a) {
		return "", ErrMissingParameter
	}
	v := a[i]
	if v.Kind != KindString {
		return "", fmt.Errorf("%w: want string, got %s", ErrDataType, v.Kind)
	}
	return v.Text, nil
}

// Value returns argument i, or ok=false if absent.
func (a Args) Value(i int) (Value, bool) {
	if i >= len(a) {
		return Value{}, false
	}
	return a[i], true
}
