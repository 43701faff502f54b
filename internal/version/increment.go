package version

import (
	"fmt"
	"math"
)

// The Next* methods compute the version to release next. They inspect the
// current pre-release tag to decide between bumping the alpha/beta revision
// in place and moving on to the next major, minor or patch. Every result
// drops build metadata.
//
// Parse never returns a number above MaxNumber, so the result of an
// increment always fits. A Version built with New holding math.MaxUint64
// panics when that number has to be incremented. An alpha/beta revision at
// math.MaxUint64 moves on to the next major, minor or patch instead.

// NextMajor bumps the major number and clears everything below it.
func (v Version) NextMajor() Version {
	return Version{Major: succ(v.Major)}
}

// NextMinor bumps the minor number and clears everything below it.
func (v Version) NextMinor() Version {
	return Version{Major: v.Major, Minor: succ(v.Minor)}
}

// NextPatch bumps the patch number and drops the pre-release tag.
func (v Version) NextPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: succ(v.Patch)}
}

// NextStable drops the pre-release tag and metadata: 2.0.0-beta.3 becomes
// 2.0.0. A stable version is returned without its metadata.
func (v Version) NextStable() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// NextMajorAlpha returns the next X.0.0-alpha.N.
//
//	2.3.5         -> 3.0.0-alpha.0
//	3.0.0-alpha.0 -> 3.0.0-alpha.1
//	3.0.0-alpha   -> 3.0.0-alpha.0
//	3.0.0-beta.1  -> 4.0.0-alpha.0
//	3.0.0-234     -> 3.0.0-alpha.0
//	3.0.0-tim     -> 4.0.0-alpha.0
func (v Version) NextMajorAlpha() Version {
	return v.nextMajor(KindAlpha)
}

// NextMinorAlpha returns the next X.Y.0-alpha.N.
//
//	2.3.5         -> 2.4.0-alpha.0
//	2.3.0-alpha.3 -> 2.3.0-alpha.4
//	2.3.5-alpha.3 -> 2.4.0-alpha.0
//	2.3.0-beta.3  -> 2.4.0-alpha.0
//	2.3.0-12      -> 2.3.0-alpha.0
func (v Version) NextMinorAlpha() Version {
	return v.nextMinor(KindAlpha)
}

// NextPatchAlpha returns the next X.Y.Z-alpha.N.
//
//	2.0.0         -> 2.0.1-alpha.0
//	2.0.1-alpha.0 -> 2.0.1-alpha.1
//	2.0.1-beta.3  -> 2.0.2-alpha.0
func (v Version) NextPatchAlpha() Version {
	return v.nextPatch(KindAlpha)
}

// NextMajorBeta returns the next X.0.0-beta.N.
//
//	2.3.5         -> 3.0.0-beta.0
//	3.0.0-beta.7  -> 3.0.0-beta.8
//	3.0.0-alpha.7 -> 4.0.0-beta.0
//	3.0.0-123     -> 3.0.0-beta.0
func (v Version) NextMajorBeta() Version {
	return v.nextMajor(KindBeta)
}

// NextMinorBeta returns the next X.Y.0-beta.N.
//
//	2.3.5         -> 2.4.0-beta.0
//	2.7.0-beta.3  -> 2.7.0-beta.4
//	8.3.0-final   -> 8.4.0-beta.0
//	8.4.0-45      -> 8.4.0-beta.0
func (v Version) NextMinorBeta() Version {
	return v.nextMinor(KindBeta)
}

// NextPatchBeta returns the next X.Y.Z-beta.N.
//
//	2.3.5         -> 2.3.6-beta.0
//	3.1.0-beta.1  -> 3.1.0-beta.2
//	3.1.0-123     -> 3.1.0-beta.0
func (v Version) NextPatchBeta() Version {
	return v.nextPatch(KindBeta)
}

// channelTag returns revision n of the alpha or beta channel.
func channelTag(ch Kind, n uint64) PreRelease {
	if ch == KindBeta {
		return BetaRev(n)
	}
	return AlphaRev(n)
}

// belowChannelStart reports whether an arbitrary tag sorts before the first
// revision of the channel, in which case moving to that revision does not
// require a new major/minor/patch.
func (v Version) belowChannelStart(ch Kind) bool {
	return v.PreRelease.Compare(channelTag(ch, 0)) < 0
}

func (v Version) nextMajor(ch Kind) Version {
	advance := func() Version {
		return Version{Major: succ(v.Major), PreRelease: channelTag(ch, 0)}
	}

	switch v.PreRelease.Kind() {
	case KindNone:
		return advance()
	case ch:
		if v.Minor == 0 && v.Patch == 0 && !v.PreRelease.revisionExhausted() {
			return Version{Major: v.Major, PreRelease: channelTag(ch, v.PreRelease.nextRevision())}
		}
		return advance()
	case KindArbitrary:
		if v.belowChannelStart(ch) {
			return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, PreRelease: channelTag(ch, 0)}
		}
		return advance()
	default:
		// The other channel.
		return advance()
	}
}

func (v Version) nextMinor(ch Kind) Version {
	advance := func() Version {
		return Version{Major: v.Major, Minor: succ(v.Minor), PreRelease: channelTag(ch, 0)}
	}

	switch v.PreRelease.Kind() {
	case KindNone:
		return advance()
	case ch:
		if v.Patch == 0 && !v.PreRelease.revisionExhausted() {
			return Version{Major: v.Major, Minor: v.Minor, PreRelease: channelTag(ch, v.PreRelease.nextRevision())}
		}
		return advance()
	case KindArbitrary:
		if v.Patch != 0 || v.belowChannelStart(ch) {
			return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, PreRelease: channelTag(ch, 0)}
		}
		return advance()
	default:
		return advance()
	}
}

func (v Version) nextPatch(ch Kind) Version {
	advance := func() Version {
		return Version{Major: v.Major, Minor: v.Minor, Patch: succ(v.Patch), PreRelease: channelTag(ch, 0)}
	}

	switch v.PreRelease.Kind() {
	case KindNone:
		return advance()
	case ch:
		if !v.PreRelease.revisionExhausted() {
			return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, PreRelease: channelTag(ch, v.PreRelease.nextRevision())}
		}
		return advance()
	case KindArbitrary:
		if v.belowChannelStart(ch) {
			return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, PreRelease: channelTag(ch, 0)}
		}
		return advance()
	default:
		return advance()
	}
}

// succ returns n+1. Only a Version built with New can hold math.MaxUint64,
// which has no successor.
func succ(n uint64) uint64 {
	if n == math.MaxUint64 {
		panic(fmt.Sprintf("version: cannot increment %d: %v", n, ErrOutOfRange))
	}
	return n + 1
}
