package version

import (
	"cmp"
	"slices"
)

// Compare returns -1, 0 or +1 depending on whether a has lower, equal or
// higher precedence than b. Build metadata is ignored.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Patch, b.Patch); c != 0 {
		return c
	}
	return a.PreRelease.Compare(b.PreRelease)
}

// Equal reports whether a and b have the same precedence. Two versions that
// differ only in build metadata are equal.
func Equal(a, b Version) bool {
	return Compare(a, b) == 0
}

// Compare compares v to o. See the package-level Compare.
func (v Version) Compare(o Version) int {
	return Compare(v, o)
}

// Equal reports whether v and o have the same precedence.
func (v Version) Equal(o Version) bool {
	return Compare(v, o) == 0
}

// LessThan reports whether v has lower precedence than o.
func (v Version) LessThan(o Version) bool {
	return Compare(v, o) < 0
}

// GreaterThan reports whether v has higher precedence than o.
func (v Version) GreaterThan(o Version) bool {
	return Compare(v, o) > 0
}

// Sort sorts versions in ascending precedence. Versions of equal precedence
// keep their relative order.
func Sort(vs []Version) {
	slices.SortStableFunc(vs, Compare)
}

// Max returns the version with the highest precedence, or false if vs is
// empty. The first of several equal maxima wins.
func Max(vs []Version) (Version, bool) {
	if len(vs) == 0 {
		return Version{}, false
	}
	best := vs[0]
	for _, v := range vs[1:] {
		if Compare(v, best) > 0 {
			best = v
		}
	}
	return best, true
}
