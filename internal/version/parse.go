package version

import (
	"strings"
)

const (
	sectionNormal     = "normal"
	sectionPreRelease = "pre-release"
	sectionMetadata   = "metadata"
)

// Parse parses a version string in the "X.Y.Z[-pre][+meta]" format.
//
// Numeric components with leading zeros ("1.02.3", "1.0.0-alpha.007") are
// accepted for compatibility with existing tags; use ParseStrict to reject
// them. No "v" prefix is accepted; callers that deal in tags strip their own
// prefix. Major, minor and patch above MaxNumber are out of range;
// pre-release numbers have no limit.
func Parse(s string) (Version, error) {
	return parser{input: s}.parse()
}

// ParseStrict is like Parse but enforces the semver.org rule that numeric
// components must not have leading zeros.
func ParseStrict(s string) (Version, error) {
	return parser{input: s, strict: true}.parse()
}

// MustParse is like Parse but panics on error. It is meant for constants
// and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

type parser struct {
	input  string
	strict bool
}

func (p parser) fail(section, part string, err error) error {
	return &ParseError{Input: p.input, Section: section, Part: part, Err: err}
}

func (p parser) parse() (Version, error) {
	if p.input == "" {
		return Version{}, &ParseError{Input: p.input, Err: ErrEmpty}
	}

	normal, rest := p.input, ""
	if i := strings.IndexAny(p.input, "-+"); i >= 0 {
		normal, rest = p.input[:i], p.input[i:]
	}

	nums, err := p.normal(normal)
	if err != nil {
		return Version{}, err
	}
	v := Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}

	if strings.HasPrefix(rest, "-") {
		pre := rest[1:]
		rest = ""
		if i := strings.IndexByte(pre, '+'); i >= 0 {
			pre, rest = pre[:i], pre[i:]
		}
		components, err := p.preRelease(pre)
		if err != nil {
			return Version{}, err
		}
		v.PreRelease = ClassifyPreRelease(components)
	}

	if strings.HasPrefix(rest, "+") {
		meta := rest[1:]
		if err := p.metadata(meta); err != nil {
			return Version{}, err
		}
		v.Metadata = meta
	}

	return v, nil
}

// normal parses the "X.Y.Z" section.
func (p parser) normal(s string) ([3]uint64, error) {
	var nums [3]uint64
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nums, p.fail(sectionNormal, s, ErrComponentCount)
	}
	for i, part := range parts {
		switch {
		case part == "":
			return nums, p.fail(sectionNormal, s, ErrEmptyComponent)
		case !isDigits(part):
			return nums, p.fail(sectionNormal, part, ErrNotNumeric)
		case p.strict && hasLeadingZero(part):
			return nums, p.fail(sectionNormal, part, ErrLeadingZero)
		}
		n, ok := parseNumber(part)
		if !ok || n > MaxNumber {
			return nums, p.fail(sectionNormal, part, ErrOutOfRange)
		}
		nums[i] = n
	}
	return nums, nil
}

// preRelease validates the section after "-" and returns its components.
func (p parser) preRelease(s string) ([]string, error) {
	components := strings.Split(s, ".")
	for _, c := range components {
		if err := checkIdentifier(c); err != nil {
			return nil, p.fail(sectionPreRelease, partOrSection(c, s), err)
		}
		if p.strict && isDigits(c) && hasLeadingZero(c) {
			return nil, p.fail(sectionPreRelease, c, ErrLeadingZero)
		}
	}
	return components, nil
}

// metadata validates the section after "+".
func (p parser) metadata(s string) error {
	for _, c := range strings.Split(s, ".") {
		if err := checkIdentifier(c); err != nil {
			return p.fail(sectionMetadata, partOrSection(c, s), err)
		}
	}
	return nil
}

func checkIdentifier(c string) error {
	if c == "" {
		return ErrEmptyComponent
	}
	if !isIdentifier(c) {
		return ErrInvalidCharacter
	}
	return nil
}

// partOrSection names an empty component by its whole section, which is
// more useful in an error message than "".
func partOrSection(part, section string) string {
	if part == "" {
		return section
	}
	return part
}
