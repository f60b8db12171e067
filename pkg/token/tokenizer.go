package token

import (
	"errors"
	"fmt"
	"strings"
)

// Tokenizer errors.
var (
	// ErrUnterminatedString indicates an unbalanced double quote.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrEmptyHeader indicates a message unit without a command header.
	ErrEmptyHeader = errors.New("empty command header")

	// ErrInvalidCharacter indicates a character that cannot appear in a
	// command header.
	ErrInvalidCharacter = errors.New("invalid character in header")
)

// Header is a parsed command header.
type Header struct {
	// Mnemonics is the ':'-separated command path, e.g. ["SENS","FUNC"].
	// A common command header holds a single entry with its '*' prefix,
	// e.g. ["*IDN"].
	Mnemonics []string

	// Query is true if the header ended with '?'.
	Query bool

	// Absolute is true if the header began with ':' and must be
	// resolved from the tree root regardless of compound scope.
	Absolute bool

	// Common is true for IEEE 488.2 common commands ('*' prefix).
	// Common headers resolve at the root and do not shift the
	// compound-message scope.
	Common bool
}

// String reassembles the header path for diagnostics.
func (h Header) String() string {
	s := strings.Join(h.Mnemonics, ":")
	if h.Absolute {
		s = ":" + s
	}
	if h.Query {
		s += "?"
	}
	return s
}

// Segment is one message unit: a header plus its raw argument tokens.
type Segment struct {
	Header Header
	Args   []string
}

// Tokenize splits one program message (line terminator already
// stripped) into its message units.
func Tokenize(line string) ([]Segment, error) {
	units, err := splitTopLevel(line, ';')
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(units))
	for i, unit := range units {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			// An empty trailing unit (line ending in ';') is ignored;
			// an empty unit between separators is a syntax error.
			if i == len(units)-1 {
				continue
			}
			return nil, ErrEmptyHeader
		}

		seg, err := parseUnit(unit)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return nil, ErrEmptyHeader
	}
	return segments, nil
}

// parseUnit parses a single message unit into header and argument tokens.
func parseUnit(unit string) (Segment, error) {
	headerEnd := len(unit)
	for i, r := range unit {
		if r == ' ' || r == '\t' {
			headerEnd = i
			break
		}
	}

	rawHeader := unit[:headerEnd]
	rawArgs := strings.TrimSpace(unit[headerEnd:])

	header, err := parseHeader(rawHeader)
	if err != nil {
		return Segment{}, err
	}

	var args []string
	if rawArgs != "" {
		parts, err := splitTopLevel(rawArgs, ',')
		if err != nil {
			return Segment{}, err
		}
		for _, p := range parts {
			args = append(args, strings.TrimSpace(p))
		}
	}

	return Segment{Header: header, Args: args}, nil
}

// parseHeader classifies and splits a raw command header.
func parseHeader(raw string) (Header, error) {
	var h Header

	if strings.HasSuffix(raw, "?") {
		h.Query = true
		raw = raw[:len(raw)-1]
	}

	switch {
	case strings.HasPrefix(raw, "*"):
		h.Common = true
	case strings.HasPrefix(raw, ":"):
		h.Absolute = true
		raw = raw[1:]
	}

	if raw == "" || raw == "*" {
		return Header{}, ErrEmptyHeader
	}

	if h.Common {
		if strings.ContainsRune(raw, ':') {
			return Header{}, fmt.Errorf("%w: %q", ErrInvalidCharacter, raw)
		}
		if err := checkMnemonic(raw[1:]); err != nil {
			return Header{}, err
		}
		h.Mnemonics = []string{raw}
		return h, nil
	}

	for _, m := range strings.Split(raw, ":") {
		if err := checkMnemonic(m); err != nil {
			return Header{}, err
		}
		h.Mnemonics = append(h.Mnemonics, m)
	}
	return h, nil
}

// checkMnemonic validates a single path segment.
func checkMnemonic(m string) error {
	if m == "" {
		return ErrEmptyHeader
	}
	for _, r := range m {
		isLetter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit && r != '_' {
			return fmt.Errorf("%w: %q", ErrInvalidCharacter, m)
		}
	}
	return nil
}

// splitTopLevel splits s on sep, ignoring separators inside
// double-quoted strings. Doubled quotes inside a string are the SCPI
// escape for a literal quote and do not close it.
func splitTopLevel(s string, sep rune) ([]string, error) {
	var parts []string
	var start int
	inString := false

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inString && i+1 < len(runes) && runes[i+1] == '"' {
				i++ // escaped quote
				continue
			}
			inString = !inString
		case r == sep && !inString:
			parts = append(parts, string(runes[start:i]))
			start = i + 1
		}
	}
	if inString {
		return nil, ErrUnterminatedString
	}
	parts = append(parts, string(runes[start:]))
	return parts, nil
}
