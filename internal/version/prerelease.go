package version

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a pre-release tag.
type Kind uint8

const (
	// KindNone means the version has no pre-release tag.
	KindNone Kind = iota
	// KindAlpha is "alpha" or "alpha.N".
	KindAlpha
	// KindBeta is "beta" or "beta.N".
	KindBeta
	// KindArbitrary is any other dot-separated identifier sequence.
	KindArbitrary
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAlpha:
		return "alpha"
	case KindBeta:
		return "beta"
	case KindArbitrary:
		return "arbitrary"
	}
	return "unknown"
}

const (
	alphaTag = "alpha"
	betaTag  = "beta"
)

// PreRelease is a classified pre-release tag. The zero value is no tag.
//
// Alpha and beta tags carry an optional revision: a bare "alpha" has no
// revision and sorts before "alpha.0". Any other tag keeps its identifiers
// in their original order.
type PreRelease struct {
	kind   Kind
	rev    uint64
	hasRev bool
	ids    []Identifier
}

// NoPreRelease is the empty tag.
var NoPreRelease = PreRelease{}

// Alpha returns the bare "alpha" tag.
func Alpha() PreRelease {
	return PreRelease{kind: KindAlpha}
}

// AlphaRev returns the "alpha.n" tag.
func AlphaRev(n uint64) PreRelease {
	return PreRelease{kind: KindAlpha, rev: n, hasRev: true}
}

// Beta returns the bare "beta" tag.
func Beta() PreRelease {
	return PreRelease{kind: KindBeta}
}

// BetaRev returns the "beta.n" tag.
func BetaRev(n uint64) PreRelease {
	return PreRelease{kind: KindBeta, rev: n, hasRev: true}
}

// Arbitrary returns a tag made of the given identifiers, unclassified.
// No identifiers means no tag. The identifiers are not validated; build them
// with ParseIdentifier when they come from outside, or the tag will not
// parse back.
func Arbitrary(ids ...Identifier) PreRelease {
	if len(ids) == 0 {
		return NoPreRelease
	}
	return PreRelease{kind: KindArbitrary, ids: append([]Identifier(nil), ids...)}
}

// ClassifyPreRelease turns already-validated components into a tag.
// "alpha"/"beta", optionally followed by a number, become the alpha and beta
// channels; everything else is arbitrary. Sequences of three or more
// components are never classified, and neither is a revision too large for
// uint64: "alpha.99999999999999999999" stays arbitrary and still sorts after
// every alpha.N.
func ClassifyPreRelease(components []string) PreRelease {
	switch len(components) {
	case 0:
		return NoPreRelease
	case 1:
		switch components[0] {
		case alphaTag:
			return Alpha()
		case betaTag:
			return Beta()
		}
	case 2:
		if n, ok := parseNumber(components[1]); ok {
			switch components[0] {
			case alphaTag:
				return AlphaRev(n)
			case betaTag:
				return BetaRev(n)
			}
		}
	}
	ids := make([]Identifier, len(components))
	for i, c := range components {
		ids[i] = NewIdentifier(c)
	}
	return PreRelease{kind: KindArbitrary, ids: ids}
}

// Kind returns the tag classification.
func (p PreRelease) Kind() Kind {
	return p.kind
}

// IsZero reports whether there is no tag.
func (p PreRelease) IsZero() bool {
	return p.kind == KindNone
}

// Revision returns the alpha/beta revision. The second result is false for
// bare "alpha"/"beta" and for other kinds.
func (p PreRelease) Revision() (uint64, bool) {
	return p.rev, p.hasRev
}

// Identifiers returns the normalized identifier sequence that equality and
// ordering operate on. The result is a fresh slice.
func (p PreRelease) Identifiers() []Identifier {
	switch p.kind {
	case KindAlpha:
		return channelIdentifiers(alphaTag, p.rev, p.hasRev)
	case KindBeta:
		return channelIdentifiers(betaTag, p.rev, p.hasRev)
	case KindArbitrary:
		return append([]Identifier(nil), p.ids...)
	}
	return nil
}

func channelIdentifiers(tag string, rev uint64, hasRev bool) []Identifier {
	if !hasRev {
		return []Identifier{{raw: tag}}
	}
	return []Identifier{{raw: tag}, NumericIdentifier(rev)}
}

// revisionExhausted reports whether the revision has no successor.
func (p PreRelease) revisionExhausted() bool {
	return p.hasRev && p.rev == math.MaxUint64
}

// nextRevision is the revision that follows the current one. A bare tag
// counts as the revision before 0.
func (p PreRelease) nextRevision() uint64 {
	if !p.hasRev {
		return 0
	}
	return p.rev + 1
}

// String renders the tag without the leading "-".
func (p PreRelease) String() string {
	switch p.kind {
	case KindAlpha, KindBeta:
		tag := alphaTag
		if p.kind == KindBeta {
			tag = betaTag
		}
		if !p.hasRev {
			return tag
		}
		return tag + "." + strconv.FormatUint(p.rev, 10)
	case KindArbitrary:
		parts := make([]string, len(p.ids))
		for i, id := range p.ids {
			parts[i] = id.String()
		}
		return strings.Join(parts, ".")
	}
	return ""
}

// Equal reports whether two tags have the same normalized sequence.
func (p PreRelease) Equal(o PreRelease) bool {
	return p.Compare(o) == 0
}

// Compare orders tags by precedence. No tag is greater than any tag; two
// tags compare identifier by identifier, and when one is a prefix of the
// other the longer one is greater.
func (p PreRelease) Compare(o PreRelease) int {
	a, b := p.Identifiers(), o.Identifiers()
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
