// Package bump maps increment flags onto the version package's "next version"
// operations.
package bump

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimdowning-cyclops/semver-next-go/internal/version"
)

// ErrNoValidCombination is returned by Resolve when the flags are empty,
// contradictory, or contain an unrecognized token.
var ErrNoValidCombination = errors.New("no valid combination of increment flags")

// Tier selects which part of the version moves. Tiers below TierStable are
// ordered by significance, so the larger of two tiers is the bigger bump.
type Tier uint8

const (
	TierNone Tier = iota
	TierPatch
	TierMinor
	TierMajor
	TierStable
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierPatch:
		return "patch"
	case TierMinor:
		return "minor"
	case TierMajor:
		return "major"
	case TierStable:
		return "stable"
	}
	return "unknown"
}

// Channel selects the pre-release track of the next version.
type Channel uint8

const (
	ChannelNone Channel = iota
	ChannelAlpha
	ChannelBeta
)

func (c Channel) String() string {
	switch c {
	case ChannelNone:
		return ""
	case ChannelAlpha:
		return "alpha"
	case ChannelBeta:
		return "beta"
	}
	return "unknown"
}

// ParseChannel parses "alpha" or "beta". The empty string, "none" and
// "stable" all mean no channel.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "", "none", "stable":
		return ChannelNone, nil
	case "alpha":
		return ChannelAlpha, nil
	case "beta":
		return ChannelBeta, nil
	}
	return ChannelNone, fmt.Errorf("unknown channel %q: must be stable, alpha or beta", s)
}

var (
	tierTokens = map[string]Tier{
		"major":  TierMajor,
		"minor":  TierMinor,
		"patch":  TierPatch,
		"stable": TierStable,
	}
	channelTokens = map[string]Channel{
		"alpha": ChannelAlpha,
		"beta":  ChannelBeta,
	}
)

// Op computes a next version.
type Op func(version.Version) version.Version

// Selector is a resolved tier and channel.
type Selector struct {
	Tier    Tier
	Channel Channel
}

// String returns names such as "minor", "minor-alpha" or "stable".
func (s Selector) String() string {
	if s.Channel == ChannelNone {
		return s.Tier.String()
	}
	return s.Tier.String() + "-" + s.Channel.String()
}

// Op returns the operation the selector stands for. TierNone with any
// channel returns the version unchanged.
func (s Selector) Op() Op {
	switch s.Tier {
	case TierMajor:
		switch s.Channel {
		case ChannelAlpha:
			return version.Version.NextMajorAlpha
		case ChannelBeta:
			return version.Version.NextMajorBeta
		}
		return version.Version.NextMajor
	case TierMinor:
		switch s.Channel {
		case ChannelAlpha:
			return version.Version.NextMinorAlpha
		case ChannelBeta:
			return version.Version.NextMinorBeta
		}
		return version.Version.NextMinor
	case TierPatch:
		switch s.Channel {
		case ChannelAlpha:
			return version.Version.NextPatchAlpha
		case ChannelBeta:
			return version.Version.NextPatchBeta
		}
		return version.Version.NextPatch
	case TierStable:
		return version.Version.NextStable
	}
	return func(v version.Version) version.Version { return v }
}

// Apply runs the selector's operation on v.
func (s Selector) Apply(v version.Version) version.Version {
	return s.Op()(v)
}

// Resolve maps a set of flag tokens onto exactly one operation. Tokens are
// "major", "minor", "patch", "stable", "alpha" and "beta", with or without a
// leading "--". Repeating a token is allowed.
func Resolve(tokens []string) (Selector, error) {
	if len(tokens) == 0 {
		return Selector{}, fmt.Errorf("%w: no flags given", ErrNoValidCombination)
	}

	var s Selector
	for _, tok := range tokens {
		name := strings.TrimPrefix(tok, "--")
		if t, ok := tierTokens[name]; ok {
			if s.Tier != TierNone && s.Tier != t {
				return Selector{}, fmt.Errorf("%w: --%s conflicts with --%s", ErrNoValidCombination, t, s.Tier)
			}
			s.Tier = t
			continue
		}
		if c, ok := channelTokens[name]; ok {
			if s.Channel != ChannelNone && s.Channel != c {
				return Selector{}, fmt.Errorf("%w: --%s conflicts with --%s", ErrNoValidCombination, c, s.Channel)
			}
			s.Channel = c
			continue
		}
		return Selector{}, fmt.Errorf("%w: unknown flag %q", ErrNoValidCombination, tok)
	}

	switch {
	case s.Tier == TierNone:
		return Selector{}, fmt.Errorf("%w: --%s needs --major, --minor or --patch", ErrNoValidCombination, s.Channel)
	case s.Tier == TierStable && s.Channel != ChannelNone:
		return Selector{}, fmt.Errorf("%w: --stable cannot be combined with --%s", ErrNoValidCombination, s.Channel)
	}
	return s, nil
}
