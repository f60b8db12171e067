package response

import (
	"strconv"
	"strings"
)

// Unit assembles the response data of one query message unit.
type Unit struct {
	items []string
}

// Float appends numeric data in canonical form.
func (u *Unit) Float(v float64) *Unit {
	u.items = append(u.items, FormatFloat(v))
	return u
}

// Int appends integer data.
func (u *Unit) Int(v int64) *Unit {
	u.items = append(u.items, strconv.FormatInt(v, 10))
	return u
}

// Bool appends boolean data as 0 or 1.
func (u *Unit) Bool(v bool) *Unit {
	if v {
		return u.Literal("1")
	}
	return u.Literal("0")
}

// Literal appends character data verbatim (e.g. AUTO).
func (u *Unit) Literal(s string) *Unit {
	u.items = append(u.items, s)
	return u
}

// String appends string data, quoted with embedded quotes doubled.
func (u *Unit) String(s string) *Unit {
	u.items = append(u.items, QuoteString(s))
	return u
}

// Empty reports whether no data has been appended.
func (u *Unit) Empty() bool {
	return len(u.items) == 0
}

// Render joins the data items into the response payload, without the
// line terminator.
func (u *Unit) Render() string {
	return strings.Join(u.items, ",")
}

// FormatFloat renders a float in the instrument's canonical form.
// Integral values keep one decimal: 1 renders as "1.0". Other values
// use the shortest representation that round-trips: "0.01".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// QuoteString renders SCPI string data: double-quote delimited with
// embedded double quotes doubled.
func QuoteString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
