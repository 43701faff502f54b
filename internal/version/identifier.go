package version

import (
	"cmp"
	"strconv"
)

// Identifier is a single dot-separated component of a pre-release tag.
// It is either numeric or text; numeric identifiers sort before text ones.
//
// Numeric identifiers have no upper bound. They are kept as digit strings
// and compared by value, so "007" equals "7" and a 30-digit number sorts
// after a 20-digit one.
type Identifier struct {
	raw     string
	numeric bool
}

// NewIdentifier classifies a raw component. A string made only of decimal
// digits becomes a numeric identifier ("007" has the value 7); anything else
// is kept as text. The raw form is preserved for rendering.
//
// s is not validated: callers must pass a non-empty run of [0-9A-Za-z-], or
// the tag will not parse back. ParseIdentifier checks the charset.
func NewIdentifier(s string) Identifier {
	return Identifier{raw: s, numeric: isDigits(s)}
}

// ParseIdentifier is like NewIdentifier but rejects an empty string or one
// with characters outside [0-9A-Za-z-].
func ParseIdentifier(s string) (Identifier, error) {
	if err := checkIdentifier(s); err != nil {
		return Identifier{}, &ParseError{Input: s, Section: sectionPreRelease, Part: s, Err: err}
	}
	return NewIdentifier(s), nil
}

// NumericIdentifier returns the numeric identifier n.
func NumericIdentifier(n uint64) Identifier {
	return Identifier{raw: strconv.FormatUint(n, 10), numeric: true}
}

// IsNumeric reports whether the identifier is a number.
func (i Identifier) IsNumeric() bool {
	return i.numeric
}

// Number returns the numeric value. The second result is false for text and
// for numbers too large for uint64.
func (i Identifier) Number() (uint64, bool) {
	if !i.numeric {
		return 0, false
	}
	return parseNumber(i.raw)
}

func (i Identifier) String() string {
	return i.raw
}

// Equal reports whether two identifiers have the same value.
func (i Identifier) Equal(o Identifier) bool {
	return i.Compare(o) == 0
}

// Compare orders identifiers: numbers by value, text by byte order,
// and any number before any text.
func (i Identifier) Compare(o Identifier) int {
	switch {
	case i.numeric && o.numeric:
		return compareDigits(i.raw, o.raw)
	case i.numeric:
		return -1
	case o.numeric:
		return 1
	}
	return cmp.Compare(i.raw, o.raw)
}

// compareDigits compares two digit strings by numeric value: without
// leading zeros the longer string is larger, and equal lengths compare
// bytewise.
func compareDigits(a, b string) int {
	a, b = trimZeros(a), trimZeros(b)
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

// parseNumber parses a run of decimal digits. Leading zeros are accepted.
func parseNumber(s string) (uint64, bool) {
	if !isDigits(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isIdentifier reports whether s is a non-empty run of [0-9A-Za-z-].
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func isIdentChar(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-'
}

// hasLeadingZero reports whether a digit string has a superfluous leading 0.
func hasLeadingZero(s string) bool {
	return len(s) > 1 && s[0] == '0'
}
