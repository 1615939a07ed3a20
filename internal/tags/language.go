// Package tags implements the language, ABI and platform tags of PEP 425
// compatibility tags, and the engine that matches wheel tags against the set
// of tags an interpreter supports.
package tags

import (
	"strconv"
	"strings"
)

// Implementation identifies a Python implementation in a language tag.
type Implementation string

const (
	ImplNone       Implementation = ""
	ImplPython     Implementation = "py"
	ImplCPython    Implementation = "cp"
	ImplPyPy       Implementation = "pp"
	ImplIronPython Implementation = "ip"
	ImplJython     Implementation = "jy"
	ImplPyston     Implementation = "pt"
	ImplGraalPy    Implementation = "graalpy"
)

// implementations is ordered so longer prefixes are tried first.
var implementations = []Implementation{
	ImplGraalPy, ImplPython, ImplCPython, ImplPyPy, ImplIronPython, ImplJython, ImplPyston,
}

// LanguageTag is the first compatibility tag, e.g. "py3", "cp311" or "none".
type LanguageTag struct {
	impl     Implementation
	major    int
	minor    int
	hasMajor bool
	hasMinor bool
}

// ParseLanguageTag parses a single language tag.
func ParseLanguageTag(s string) (LanguageTag, error) {
	if s == "none" {
		return LanguageTag{}, nil
	}
	if s == "" {
		return LanguageTag{}, &ParseTagError{Kind: KindLanguage, Tag: s, Reason: "tag is empty"}
	}

	for _, impl := range implementations {
		rest, ok := strings.CutPrefix(s, string(impl))
		if !ok {
			continue
		}
		tag := LanguageTag{impl: impl}
		if rest == "" {
			if impl != ImplPython {
				return LanguageTag{}, &ParseTagError{Kind: KindLanguage, Tag: s, Reason: "missing major version"}
			}
			return tag, nil
		}
		if !isDigits(rest) {
			return LanguageTag{}, &ParseTagError{Kind: KindLanguage, Tag: s, Reason: "version must be a sequence of ASCII digits"}
		}
		tag.major = int(rest[0] - '0')
		tag.hasMajor = true
		if len(rest) > 1 {
			minor, err := strconv.Atoi(rest[1:])
			if err != nil {
				return LanguageTag{}, &ParseTagError{Kind: KindLanguage, Tag: s, Reason: "minor version is out of range"}
			}
			tag.minor = minor
			tag.hasMinor = true
		}
		return tag, nil
	}

	return LanguageTag{}, &ParseTagError{Kind: KindLanguage, Tag: s, Reason: "unknown implementation"}
}

// MustParseLanguageTag is like ParseLanguageTag but panics on error.
func MustParseLanguageTag(s string) LanguageTag {
	t, err := ParseLanguageTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewLanguageTag builds a language tag for impl and a major.minor version.
// A negative minor omits the minor version.
func NewLanguageTag(impl Implementation, major, minor int) LanguageTag {
	return LanguageTag{impl: impl, major: major, hasMajor: true, minor: max(minor, 0), hasMinor: minor >= 0}
}

// Implementation returns the implementation, ImplNone for "none".
func (t LanguageTag) Implementation() Implementation { return t.impl }

// Major returns the major Python version, if the tag carries one.
func (t LanguageTag) Major() (int, bool) { return t.major, t.hasMajor }

// Minor returns the minor Python version, if the tag carries one.
func (t LanguageTag) Minor() (int, bool) { return t.minor, t.hasMinor }

// IsNone reports whether t is the "none" tag.
func (t LanguageTag) IsNone() bool { return t.impl == ImplNone }

func (t LanguageTag) String() string {
	if t.impl == ImplNone {
		return "none"
	}
	var b strings.Builder
	b.WriteString(string(t.impl))
	if t.hasMajor {
		b.WriteString(strconv.Itoa(t.major))
	}
	if t.hasMinor {
		b.WriteString(strconv.Itoa(t.minor))
	}
	return b.String()
}
