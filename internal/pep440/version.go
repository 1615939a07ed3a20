// Package pep440 parses, normalizes and orders Python package versions
// following PEP 440.
package pep440

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVersion is the sentinel error wrapped by ParseError.
var ErrInvalidVersion = errors.New("invalid version")

// PreKind is the phase of a pre-release.
type PreKind int

const (
	Alpha PreKind = iota
	Beta
	ReleaseCandidate
)

func (k PreKind) String() string {
	switch k {
	case Alpha:
		return "a"
	case Beta:
		return "b"
	default:
		return "rc"
	}
}

// Prerelease is the pre-release segment of a version, e.g. "rc1".
type Prerelease struct {
	Kind   PreKind
	Number uint64
}

// LocalSegment is one dot-separated part of a local version label. Numeric
// segments have IsNumber set and the value in Number.
type LocalSegment struct {
	Text     string
	Number   uint64
	IsNumber bool
}

func (s LocalSegment) String() string {
	if s.IsNumber {
		return strconv.FormatUint(s.Number, 10)
	}
	return s.Text
}

// Version is a parsed PEP 440 version. The zero value is "0".
type Version struct {
	epoch   uint64
	release []uint64
	pre     *Prerelease
	post    *uint64
	dev     *uint64
	local   []LocalSegment
}

// ParseError is returned when a string is not a valid PEP 440 version.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrInvalidVersion }

const (
	reasonNoLeadingDigits = "expected version to start with a number, but no leading ASCII digits were found"
	reasonTrailing        = "after parsing the release segment, found unexpected characters"
)

var versionRe = regexp.MustCompile(`(?i)^v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<pre_l>alpha|a|beta|b|preview|pre|c|rc)[-_.]?(?P<pre_n>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<post_n1>[0-9]+))|(?:[-_.]?(?P<post_l>post|rev|r)[-_.]?(?P<post_n2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?(?P<dev_l>dev)[-_.]?(?P<dev_n>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?$`)

var localSepRe = regexp.MustCompile(`[-_.]`)

// Parse parses s as a PEP 440 version. Surrounding whitespace is ignored.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	m := versionRe.FindStringSubmatch(trimmed)
	if m == nil {
		body := strings.TrimPrefix(strings.TrimPrefix(trimmed, "v"), "V")
		if body == "" || body[0] < '0' || body[0] > '9' {
			return Version{}, &ParseError{Input: s, Reason: reasonNoLeadingDigits}
		}
		return Version{}, &ParseError{Input: s, Reason: reasonTrailing}
	}
	group := func(name string) string {
		return m[versionRe.SubexpIndex(name)]
	}

	var v Version
	var err error

	if e := group("epoch"); e != "" {
		if v.epoch, err = parseNumber(s, e); err != nil {
			return Version{}, err
		}
	}

	for _, part := range strings.Split(group("release"), ".") {
		n, err := parseNumber(s, part)
		if err != nil {
			return Version{}, err
		}
		v.release = append(v.release, n)
	}

	if group("pre") != "" {
		pre := &Prerelease{Kind: preKind(group("pre_l"))}
		if n := group("pre_n"); n != "" {
			if pre.Number, err = parseNumber(s, n); err != nil {
				return Version{}, err
			}
		}
		v.pre = pre
	}

	if group("post") != "" {
		n := group("post_n1")
		if n == "" {
			n = group("post_n2")
		}
		var post uint64
		if n != "" {
			if post, err = parseNumber(s, n); err != nil {
				return Version{}, err
			}
		}
		v.post = &post
	}

	if group("dev") != "" {
		var dev uint64
		if n := group("dev_n"); n != "" {
			if dev, err = parseNumber(s, n); err != nil {
				return Version{}, err
			}
		}
		v.dev = &dev
	}

	if l := group("local"); l != "" {
		for _, part := range localSepRe.Split(strings.ToLower(l), -1) {
			if n, err := strconv.ParseUint(part, 10, 64); err == nil {
				v.local = append(v.local, LocalSegment{Number: n, IsNumber: true})
			} else {
				v.local = append(v.local, LocalSegment{Text: part})
			}
		}
	}

	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseNumber(input, digits string) (uint64, error) {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, &ParseError{Input: input, Reason: fmt.Sprintf("number %q is too large", digits)}
	}
	return n, nil
}

func preKind(label string) PreKind {
	switch strings.ToLower(label) {
	case "a", "alpha":
		return Alpha
	case "b", "beta":
		return Beta
	default:
		return ReleaseCandidate
	}
}

// String returns the normalized form of the version.
func (v Version) String() string {
	var b strings.Builder
	if v.epoch != 0 {
		b.WriteString(strconv.FormatUint(v.epoch, 10))
		b.WriteByte('!')
	}
	if len(v.release) == 0 {
		b.WriteByte('0')
	}
	for i, n := range v.release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(n, 10))
	}
	if v.pre != nil {
		b.WriteString(v.pre.Kind.String())
		b.WriteString(strconv.FormatUint(v.pre.Number, 10))
	}
	if v.post != nil {
		b.WriteString(".post")
		b.WriteString(strconv.FormatUint(*v.post, 10))
	}
	if v.dev != nil {
		b.WriteString(".dev")
		b.WriteString(strconv.FormatUint(*v.dev, 10))
	}
	for i, seg := range v.local {
		if i == 0 {
			b.WriteByte('+')
		} else {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Epoch returns the version epoch, 0 when absent.
func (v Version) Epoch() uint64 { return v.epoch }

// Release returns a copy of the release segment.
func (v Version) Release() []uint64 {
	if len(v.release) == 0 {
		return []uint64{0}
	}
	return append([]uint64(nil), v.release...)
}

// Pre returns the pre-release segment, if any.
func (v Version) Pre() (Prerelease, bool) {
	if v.pre == nil {
		return Prerelease{}, false
	}
	return *v.pre, true
}

// Post returns the post-release number, if any.
func (v Version) Post() (uint64, bool) {
	if v.post == nil {
		return 0, false
	}
	return *v.post, true
}

// Dev returns the development release number, if any.
func (v Version) Dev() (uint64, bool) {
	if v.dev == nil {
		return 0, false
	}
	return *v.dev, true
}

// Local returns a copy of the local version label segments.
func (v Version) Local() []LocalSegment {
	return append([]LocalSegment(nil), v.local...)
}

// IsPrerelease reports whether v is a pre-release or development release.
func (v Version) IsPrerelease() bool { return v.pre != nil || v.dev != nil }

// IsLocal reports whether v carries a local version label.
func (v Version) IsLocal() bool { return len(v.local) > 0 }
