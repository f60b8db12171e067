// Package version provides SCPI system version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the SCPI standard version implemented by this library,
// reported by SYSTem:VERSion?.
const Current = "1999.0"

// SystemVersion represents a parsed "YYYY.V" SCPI version: the
// approval year of the standard and its revision within that year.
type SystemVersion struct {
	Year     uint16
	Revision uint16
}

// Parse parses a "YYYY.V" version string.
func Parse(s string) (SystemVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return SystemVersion{}, fmt.Errorf("invalid version %q: expected YYYY.V", s)
	}

	year, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return SystemVersion{}, fmt.Errorf("invalid version %q: bad year component", s)
	}

	revision, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return SystemVersion{}, fmt.Errorf("invalid version %q: bad revision component", s)
	}

	return SystemVersion{Year: uint16(year), Revision: uint16(revision)}, nil
}

// String returns the version as "YYYY.V".
func (v SystemVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Year, v.Revision)
}

// AtLeast returns true if v is the same as or newer than other.
func (v SystemVersion) AtLeast(other SystemVersion) bool {
	if v.Year != other.Year {
		return v.Year > other.Year
	}
	return v.Revision >= other.Revision
}
