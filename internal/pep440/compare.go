package pep440

import "cmp"

// Ordering of the pre-release slot. A dev release without a pre or post
// segment sorts before every pre-release of the same release, and a final
// release sorts after all of them.
const (
	preDevOnly = iota
	prePresent
	preFinal
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b. Trailing zeros in the release segment are insignificant, so
// "1.0" and "1.0.0" compare equal.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.epoch, b.epoch); c != 0 {
		return c
	}
	if c := compareRelease(a.release, b.release); c != 0 {
		return c
	}
	if c := comparePre(a, b); c != 0 {
		return c
	}
	if c := compareOptional(a.post, b.post, -1); c != 0 {
		return c
	}
	if c := compareOptional(a.dev, b.dev, 1); c != 0 {
		return c
	}
	return compareLocal(a.local, b.local)
}

// Equal reports whether a and b compare equal.
func Equal(a, b Version) bool { return Compare(a, b) == 0 }

// Less reports whether a sorts before b.
func Less(a, b Version) bool { return Compare(a, b) < 0 }

func compareRelease(a, b []uint64) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var x, y uint64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func preClass(v Version) int {
	switch {
	case v.pre != nil:
		return prePresent
	case v.post == nil && v.dev != nil:
		return preDevOnly
	default:
		return preFinal
	}
}

func comparePre(a, b Version) int {
	ca, cb := preClass(a), preClass(b)
	if c := cmp.Compare(ca, cb); c != 0 {
		return c
	}
	if ca != prePresent {
		return 0
	}
	if c := cmp.Compare(a.pre.Kind, b.pre.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.pre.Number, b.pre.Number)
}

// compareOptional orders two optional numbers; absent sorts as the given
// sign (-1 before any value, +1 after any value).
func compareOptional(a, b *uint64, absent int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return absent
	case b == nil:
		return -absent
	}
	return cmp.Compare(*a, *b)
}

func compareLocal(a, b []LocalSegment) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		x, y := a[i], b[i]
		switch {
		case x.IsNumber && y.IsNumber:
			if c := cmp.Compare(x.Number, y.Number); c != 0 {
				return c
			}
		case x.IsNumber:
			return 1
		case y.IsNumber:
			return -1
		default:
			if c := cmp.Compare(x.Text, y.Text); c != 0 {
				return c
			}
		}
	}
	return cmp.Compare(len(a), len(b))
}
