package version

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sortedVersions is in strictly ascending precedence.
var sortedVersions = []string{
	"0.0.1-alpha.0",
	"0.0.1",
	"0.0.2-alpha",
	"0.0.2-alpha.0",
	"0.0.2-alpha.0.1",
	"0.0.2",
	"0.0.3-aaa",
	"0.0.3-aaa.2",
	"0.0.3-aaa.11",
	"0.0.3-alpha.1",
	"0.1.0-alpha.3",
	"0.1.0-beta.2",
	"0.1.0-beta.3",
	"0.1.0-rc.1",
	"0.1.0",
	"1.0.0-1",
	"1.0.0-3",
	"1.0.0-11",
	"1.0.0-alpha.0",
	"1.0.0",
	"1.0.1",
	"1.1.0",
	"1.2.0",
	"2.0.0-1",
	"2.0.0-alpha.0",
}

func parseAll(t *testing.T, in []string) []Version {
	t.Helper()
	out := make([]Version, len(in))
	for i, s := range in {
		v, err := Parse(s)
		require.NoError(t, err, s)
		out[i] = v
	}
	return out
}

func render(vs []Version) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "2.1.0", -1},
		{"2.1.0", "2.1.1", -1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-alpha.1", -1},
		{"1.0.0-alpha.1", "1.0.0-alpha.beta", -1},
		{"1.0.0-alpha.beta", "1.0.0-beta", -1},
		{"1.0.0-beta", "1.0.0-beta.2", -1},
		{"1.0.0-beta.2", "1.0.0-beta.11", -1},
		{"1.0.0-beta.11", "1.0.0-rc.1", -1},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"1.0.0", "1.0.0", 0},
		{"1.0.0+build.1", "1.0.0+build.2", 0},
		{"1.0.0-alpha.1+a", "1.0.0-alpha.1", 0},
		{"1.0.0-alpha.007", "1.0.0-alpha.7", 0},
		{"1.0.0-007", "1.0.0-7", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.0.0", "1.0.0-rc.1", 1},
		{"1.0.0-a", "1.0.0-9999", 1},
		{"1.0.0-alpha.0.1", "1.0.0-alpha.0", 1},
		{"18446744073709551614.0.0", "18446744073709551613.0.0", 1},
		{"1.0.0-18446744073709551616", "1.0.0-18446744073709551615", 1},
		{"1.0.0-99999999999999999999", "1.0.0-100000000000000000000", -1},
		{"1.0.0-000000000000000000000001", "1.0.0-1", 0},
		{"1.0.0-99999999999999999999999", "1.0.0-a", -1},
		{"1.0.0-alpha.99999999999999999999", "1.0.0-alpha.5", 1},
		{"1.0.0-alpha.99999999999999999999", "1.0.0-beta", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			assert.Equal(t, tt.want, Compare(a, b))
			assert.Equal(t, -tt.want, Compare(b, a))
			assert.Equal(t, tt.want == 0, a.Equal(b))
			assert.Equal(t, tt.want < 0, a.LessThan(b))
			assert.Equal(t, tt.want > 0, a.GreaterThan(b))
		})
	}
}

func TestEqual_IgnoresMetadata(t *testing.T) {
	equal := [][2]string{
		{"1.0.0", "1.0.0"},
		{"1.0.0+abc", "1.0.0+def"},
		{"1.0.0-alpha.1+x", "1.0.0-alpha.1"},
		{"0.0.0+0", "0.0.0"},
	}
	for _, pair := range equal {
		assert.True(t, Equal(MustParse(pair[0]), MustParse(pair[1])), "%s == %s", pair[0], pair[1])
	}

	notEqual := [][2]string{
		{"1.0.0", "1.0.1"},
		{"1.0.0", "1.0.0-alpha"},
		{"1.0.0-alpha", "1.0.0-alpha.0"},
		{"1.0.0-alpha.0", "1.0.0-beta.0"},
		{"1.0.0-rc.1", "1.0.0-rc.1.1"},
	}
	for _, pair := range notEqual {
		assert.False(t, Equal(MustParse(pair[0]), MustParse(pair[1])), "%s != %s", pair[0], pair[1])
	}
}

func TestSort(t *testing.T) {
	want := parseAll(t, sortedVersions)

	t.Run("reversed", func(t *testing.T) {
		got := slices.Clone(want)
		slices.Reverse(got)
		Sort(got)
		assert.Equal(t, sortedVersions, render(got))
	})

	t.Run("shuffled", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		for range 20 {
			got := slices.Clone(want)
			r.Shuffle(len(got), func(i, j int) { got[i], got[j] = got[j], got[i] })
			Sort(got)
			assert.Equal(t, sortedVersions, render(got))
		}
	})

	t.Run("stable for equal precedence", func(t *testing.T) {
		got := parseAll(t, []string{"1.0.0+b", "0.1.0", "1.0.0+a"})
		Sort(got)
		assert.Equal(t, []string{"0.1.0", "1.0.0+b", "1.0.0+a"}, render(got))
	})
}

func TestCompare_Properties(t *testing.T) {
	vs := parseAll(t, sortedVersions)

	for i, a := range vs {
		assert.Equal(t, 0, Compare(a, a), "reflexive %s", a)
		for j, b := range vs {
			ab, ba := Compare(a, b), Compare(b, a)
			assert.Equal(t, -ab, ba, "antisymmetric %s %s", a, b)
			assert.Equal(t, cmp.Compare(i, j), ab, "total order %s %s", a, b)
		}
	}
}

func TestMax(t *testing.T) {
	_, ok := Max(nil)
	assert.False(t, ok)

	got, ok := Max(parseAll(t, []string{"1.0.0", "2.0.0-rc.1", "1.9.9", "2.0.0-beta"}))
	require.True(t, ok)
	assert.Equal(t, "2.0.0-rc.1", got.String())

	got, ok = Max(parseAll(t, []string{"1.0.0+first", "1.0.0+second"}))
	require.True(t, ok)
	assert.Equal(t, "1.0.0+first", got.String())
}

// TestCompare_MatchesMasterminds checks precedence against an independent
// implementation of the same rules.
func TestCompare_MatchesMasterminds(t *testing.T) {
	inputs := append(slices.Clone(sortedVersions),
		"1.0.0-alpha.beta",
		"1.0.0-x.7.z.92",
		"1.0.0-x-y-z.--",
		"1.0.0+20130313144700",
		"1.0.0-beta+exp.sha.5114f85",
	)

	for _, a := range inputs {
		for _, b := range inputs {
			ma, err := semver.StrictNewVersion(a)
			require.NoError(t, err, a)
			mb, err := semver.StrictNewVersion(b)
			require.NoError(t, err, b)

			want := ma.Compare(mb)
			got := Compare(MustParse(a), MustParse(b))
			assert.Equal(t, want, got, "Compare(%s, %s)", a, b)
		}
	}
}
