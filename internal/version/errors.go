package version

import (
	"errors"
	"fmt"
)

// Rule violations reported by Parse. A *ParseError unwraps to one of these.
var (
	ErrEmpty            = errors.New("version string is empty")
	ErrComponentCount   = errors.New("normal version must have exactly 3 components")
	ErrNotNumeric       = errors.New("component is not a non-negative integer")
	ErrLeadingZero      = errors.New("numeric component has a leading zero")
	ErrOutOfRange       = errors.New("numeric component is out of range")
	ErrInvalidCharacter = errors.New("component contains characters outside [0-9A-Za-z-]")
	ErrEmptyComponent   = errors.New("component is empty")
)

// ParseError describes why a string is not a valid version.
type ParseError struct {
	// Input is the full string passed to Parse.
	Input string
	// Section is the part of the version the problem was found in:
	// "normal", "pre-release" or "metadata".
	Section string
	// Part is the offending substring.
	Part string
	// Err is the rule that was violated.
	Err error
}

func (e *ParseError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("invalid version %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid version %q: %s %q: %v", e.Input, e.Section, e.Part, e.Err)
}

// Unwrap returns the violated rule for errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Err
}
