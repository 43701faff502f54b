// Package commit reads Conventional Commits messages and derives the release
// tier they call for.
package commit

import (
	"regexp"
	"strings"

	"github.com/jimdowning-cyclops/semver-next-go/internal/bump"
)

// Commit is a parsed conventional commit.
type Commit struct {
	Hash        string
	Type        string
	Scope       string
	Description string
	Breaking    bool
}

// header matches "type(scope)!: description" with the scope and "!" optional.
var header = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?\s*:\s*(.*)$`)

// breakingFooters are the footer tokens that mark a breaking change.
var breakingFooters = []string{"BREAKING CHANGE:", "BREAKING-CHANGE:"}

// Parse parses a commit subject and body. A commit is breaking when the
// header carries "!" or a body line starts with a BREAKING CHANGE footer.
// Subjects that are not conventional come back with only Description set.
func Parse(subject, body string) Commit {
	m := header.FindStringSubmatch(subject)
	if m == nil {
		return Commit{Description: subject}
	}

	return Commit{
		Type:        m[1],
		Scope:       m[2],
		Description: m[4],
		Breaking:    m[3] == "!" || hasBreakingFooter(body),
	}
}

func hasBreakingFooter(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.ToUpper(strings.TrimSpace(line))
		for _, f := range breakingFooters {
			if strings.HasPrefix(line, f) {
				return true
			}
		}
	}
	return false
}

// Tier returns the tier this commit alone asks for. Only feat and fix
// commits release anything.
func (c Commit) Tier() bump.Tier {
	switch c.Type {
	case "feat":
		if c.Breaking {
			return bump.TierMajor
		}
		return bump.TierMinor
	case "fix":
		if c.Breaking {
			return bump.TierMajor
		}
		return bump.TierPatch
	}
	return bump.TierNone
}

// DetermineTier returns the largest tier asked for by any of the commits,
// or bump.TierNone when none of them is a feat or fix.
func DetermineTier(commits []Commit) bump.Tier {
	tier := bump.TierNone
	for _, c := range commits {
		tier = max(tier, c.Tier())
		if tier == bump.TierMajor {
			break
		}
	}
	return tier
}
