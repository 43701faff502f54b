// Package version implements Semantic Versioning 2.0.0 values: parsing,
// precedence, and the "next version" policies used to cut stable, alpha and
// beta releases.
//
// A Version is an immutable value. Every operation returns a new Version and
// is safe for concurrent use.
package version

import (
	"math"
	"strconv"
	"strings"
)

// MaxNumber is the largest major, minor or patch number Parse accepts. It
// leaves room for the increment that follows it.
const MaxNumber = math.MaxUint64 - 1

// Version represents a semantic version.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64

	// PreRelease is the classified tag after "-". The zero value is no tag.
	PreRelease PreRelease

	// Metadata is the build metadata after "+", or "" when absent.
	// It never takes part in equality or ordering.
	Metadata string
}

// New returns the release version major.minor.patch.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Zero returns the zero version (0.0.0).
func Zero() Version {
	return Version{}
}

// WithPreRelease returns a copy of v with the given tag.
func (v Version) WithPreRelease(p PreRelease) Version {
	v.PreRelease = p
	return v
}

// WithMetadata returns a copy of v with the given build metadata.
// The caller is responsible for passing a valid metadata string.
func (v Version) WithMetadata(m string) Version {
	v.Metadata = m
	return v
}

// IsPreRelease reports whether v carries a pre-release tag.
func (v Version) IsPreRelease() bool {
	return !v.PreRelease.IsZero()
}

// String returns the version as "X.Y.Z[-pre][+meta]".
func (v Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(v.Major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Patch, 10))
	if !v.PreRelease.IsZero() {
		b.WriteByte('-')
		b.WriteString(v.PreRelease.String())
	}
	if v.Metadata != "" {
		b.WriteByte('+')
		b.WriteString(v.Metadata)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
