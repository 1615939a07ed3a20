package dist

import (
	"cmp"
	"errors"
	"strconv"
	"strings"
)

// BuildTag is the optional build number of a wheel, e.g. "1" or "202206090410",
// with an optional alphanumeric suffix ("1a").
type BuildTag struct {
	number uint64
	suffix string
}

var (
	errBuildTagDigit = errors.New("must start with a digit")
	errBuildTagRange = errors.New("leading digits are out of range")
)

// ParseBuildTag parses a build tag. The leading run of ASCII digits is the
// build number; anything after it is kept as the suffix.
func ParseBuildTag(s string) (BuildTag, error) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return BuildTag{}, errBuildTagDigit
	}
	n, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil {
		return BuildTag{}, errBuildTagRange
	}
	return BuildTag{number: n, suffix: s[end:]}, nil
}

// Number returns the numeric part of the build tag.
func (b BuildTag) Number() uint64 { return b.number }

// Suffix returns the text following the number, possibly empty.
func (b BuildTag) Suffix() string { return b.suffix }

func (b BuildTag) String() string {
	return strconv.FormatUint(b.number, 10) + b.suffix
}

// CompareBuildTags orders build tags by number, then by suffix.
func CompareBuildTags(a, b BuildTag) int {
	if c := cmp.Compare(a.number, b.number); c != 0 {
		return c
	}
	return strings.Compare(a.suffix, b.suffix)
}
