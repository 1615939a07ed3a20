package tags

import (
	"regexp"
	"strconv"
	"strings"
)

// AbiKind classifies an ABI tag.
type AbiKind int

const (
	AbiNone AbiKind = iota
	AbiStable
	AbiCPython
	AbiPyPy
	AbiGraalPy
	AbiPyston
)

var (
	cpythonAbiRe = regexp.MustCompile(`^cp([0-9])([0-9]+)(d?)(m?)(u?)(t?)$`)
	pypyAbiRe    = regexp.MustCompile(`^pypy([0-9])([0-9]+)_pp([0-9]+)$`)
	graalpyAbiRe = regexp.MustCompile(`^graalpy([0-9]+)_([0-9]+)_([a-z0-9_]+)$`)
	pystonAbiRe  = regexp.MustCompile(`^pyston_([0-9]+)_([a-z0-9_]+)$`)
)

// AbiTag is the second compatibility tag, e.g. "cp311", "abi3" or "none".
type AbiTag struct {
	kind  AbiKind
	major int
	minor int
	// flags holds the CPython build flags ("d", "m", "u", "t") in order.
	flags string
	// impl holds the implementation version for PyPy ("73"), GraalPy and
	// Pyston ("<version>_<suffix>").
	impl string
}

// ParseAbiTag parses a single ABI tag.
func ParseAbiTag(s string) (AbiTag, error) {
	switch s {
	case "none":
		return AbiTag{kind: AbiNone}, nil
	case "abi3":
		return AbiTag{kind: AbiStable}, nil
	case "":
		return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "tag is empty"}
	}

	if m := cpythonAbiRe.FindStringSubmatch(s); m != nil {
		minor, err := strconv.Atoi(m[2])
		if err != nil {
			return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "minor version is out of range"}
		}
		return AbiTag{
			kind:  AbiCPython,
			major: int(m[1][0] - '0'),
			minor: minor,
			flags: m[3] + m[4] + m[5] + m[6],
		}, nil
	}
	if m := pypyAbiRe.FindStringSubmatch(s); m != nil {
		minor, err := strconv.Atoi(m[2])
		if err != nil {
			return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "minor version is out of range"}
		}
		return AbiTag{kind: AbiPyPy, major: int(m[1][0] - '0'), minor: minor, impl: m[3]}, nil
	}
	if m := graalpyAbiRe.FindStringSubmatch(s); m != nil {
		return AbiTag{kind: AbiGraalPy, impl: m[1] + "_" + m[2] + "_" + m[3]}, nil
	}
	if m := pystonAbiRe.FindStringSubmatch(s); m != nil {
		return AbiTag{kind: AbiPyston, impl: m[1] + "_" + m[2]}, nil
	}

	switch {
	case strings.HasPrefix(s, "cp"):
		return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "expected a CPython ABI like cp311 or cp27mu"}
	case strings.HasPrefix(s, "pypy"):
		return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "expected a PyPy ABI like pypy310_pp73"}
	case strings.HasPrefix(s, "graalpy"):
		return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "expected a GraalPy ABI like graalpy240_310_native"}
	case strings.HasPrefix(s, "pyston"):
		return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "expected a Pyston ABI like pyston_23_x86_64_linux_gnu"}
	}
	return AbiTag{}, &ParseTagError{Kind: KindAbi, Tag: s, Reason: "unknown ABI"}
}

// MustParseAbiTag is like ParseAbiTag but panics on error.
func MustParseAbiTag(s string) AbiTag {
	t, err := ParseAbiTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewCPythonAbi returns the CPython ABI tag for major.minor, e.g. cp312.
// freeThreaded selects the "t" variant.
func NewCPythonAbi(major, minor int, freeThreaded bool) AbiTag {
	t := AbiTag{kind: AbiCPython, major: major, minor: minor}
	if freeThreaded {
		t.flags = "t"
	}
	return t
}

// Kind returns the ABI classification.
func (t AbiTag) Kind() AbiKind { return t.kind }

// PythonVersion returns the Python version for CPython and PyPy ABIs.
func (t AbiTag) PythonVersion() (major, minor int, ok bool) {
	if t.kind != AbiCPython && t.kind != AbiPyPy {
		return 0, 0, false
	}
	return t.major, t.minor, true
}

// IsFreeThreaded reports whether t is a free-threaded CPython ABI.
func (t AbiTag) IsFreeThreaded() bool {
	return t.kind == AbiCPython && strings.Contains(t.flags, "t")
}

func (t AbiTag) String() string {
	switch t.kind {
	case AbiNone:
		return "none"
	case AbiStable:
		return "abi3"
	case AbiCPython:
		return "cp" + strconv.Itoa(t.major) + strconv.Itoa(t.minor) + t.flags
	case AbiPyPy:
		return "pypy" + strconv.Itoa(t.major) + strconv.Itoa(t.minor) + "_pp" + t.impl
	case AbiGraalPy:
		return "graalpy" + t.impl
	default:
		return "pyston_" + t.impl
	}
}
