package tags

import (
	"strconv"
	"strings"
)

// OS identifies the operating system family of a platform tag.
type OS int

const (
	OSAny OS = iota
	OSWindows
	OSManylinux
	OSManylinux1
	OSManylinux2010
	OSManylinux2014
	OSMusllinux
	OSLinux
	OSMacOS
	OSAndroid
	OSIOS
	OSOther
)

// PlatformTag is the third compatibility tag, e.g. "any", "win_amd64" or
// "manylinux_2_17_x86_64".
type PlatformTag struct {
	os    OS
	major int
	minor int
	arch  string
	// raw holds the whole tag for OSOther.
	raw string
}

var windowsArchs = map[string]string{
	"win32":     "x86",
	"win_amd64": "amd64",
	"win_arm64": "arm64",
	"win_ia64":  "ia64",
}

// legacyManylinux maps the pre-PEP 600 aliases to their glibc minor version.
var legacyManylinux = []struct {
	prefix string
	os     OS
	glibc  int
}{
	{"manylinux1_", OSManylinux1, 5},
	{"manylinux2010_", OSManylinux2010, 12},
	{"manylinux2014_", OSManylinux2014, 17},
}

// ParsePlatformTag parses a single platform tag.
func ParsePlatformTag(s string) (PlatformTag, error) {
	if s == "any" {
		return PlatformTag{os: OSAny}, nil
	}
	if !isToken(s) {
		return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: s, Reason: "must be a non-empty string of lowercase letters, digits and underscores"}
	}
	if arch, ok := windowsArchs[s]; ok {
		return PlatformTag{os: OSWindows, arch: arch}, nil
	}
	if strings.HasPrefix(s, "win_") {
		return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: s, Reason: "unknown Windows architecture"}
	}

	for _, legacy := range legacyManylinux {
		if arch, ok := strings.CutPrefix(s, legacy.prefix); ok {
			if arch == "" {
				return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: s, Reason: "missing architecture"}
			}
			return PlatformTag{os: legacy.os, major: 2, minor: legacy.glibc, arch: arch}, nil
		}
	}

	if rest, ok := strings.CutPrefix(s, "manylinux_"); ok {
		return parseVersioned(s, rest, OSManylinux, "manylinux")
	}
	if rest, ok := strings.CutPrefix(s, "musllinux_"); ok {
		return parseVersioned(s, rest, OSMusllinux, "musllinux")
	}
	if rest, ok := strings.CutPrefix(s, "macosx_"); ok {
		return parseVersioned(s, rest, OSMacOS, "macOS")
	}
	if rest, ok := strings.CutPrefix(s, "ios_"); ok {
		return parseVersioned(s, rest, OSIOS, "iOS")
	}
	if rest, ok := strings.CutPrefix(s, "android_"); ok {
		api, arch, found := strings.Cut(rest, "_")
		if !found || arch == "" {
			return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: s, Reason: "expected android_<api>_<arch>"}
		}
		level, err := parseInt(api)
		if err != nil {
			return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: s, Reason: "invalid Android API level"}
		}
		return PlatformTag{os: OSAndroid, major: level, arch: arch}, nil
	}
	if arch, ok := strings.CutPrefix(s, "linux_"); ok {
		if arch == "" {
			return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: s, Reason: "missing architecture"}
		}
		return PlatformTag{os: OSLinux, arch: arch}, nil
	}

	return PlatformTag{os: OSOther, raw: s}, nil
}

// parseVersioned parses "<major>_<minor>_<arch>".
func parseVersioned(tag, rest string, os OS, family string) (PlatformTag, error) {
	parts := strings.SplitN(rest, "_", 3)
	if len(parts) != 3 || parts[2] == "" {
		return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: tag, Reason: "expected " + family + " tag of the form <major>_<minor>_<arch>"}
	}
	major, err := parseInt(parts[0])
	if err != nil {
		return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: tag, Reason: "invalid " + family + " major version"}
	}
	minor, err := parseInt(parts[1])
	if err != nil {
		return PlatformTag{}, &ParseTagError{Kind: KindPlatform, Tag: tag, Reason: "invalid " + family + " minor version"}
	}
	return PlatformTag{os: os, major: major, minor: minor, arch: parts[2]}, nil
}

func parseInt(s string) (int, error) {
	if !isDigits(s) {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// MustParsePlatformTag is like ParsePlatformTag but panics on error.
func MustParsePlatformTag(s string) PlatformTag {
	t, err := ParsePlatformTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// OS returns the operating system family.
func (t PlatformTag) OS() OS { return t.os }

// Arch returns the architecture, empty for "any" and unrecognized families.
func (t PlatformTag) Arch() string { return t.arch }

// Version returns the OS version carried by the tag: the glibc or musl
// version for Linux tags, the OS release for macOS and iOS, and the API
// level (as major) for Android.
func (t PlatformTag) Version() (major, minor int) { return t.major, t.minor }

// IsAny reports whether t is the "any" tag.
func (t PlatformTag) IsAny() bool { return t.os == OSAny }

func (t PlatformTag) String() string {
	switch t.os {
	case OSAny:
		return "any"
	case OSWindows:
		if t.arch == "x86" {
			return "win32"
		}
		return "win_" + t.arch
	case OSManylinux1:
		return "manylinux1_" + t.arch
	case OSManylinux2010:
		return "manylinux2010_" + t.arch
	case OSManylinux2014:
		return "manylinux2014_" + t.arch
	case OSManylinux:
		return "manylinux_" + strconv.Itoa(t.major) + "_" + strconv.Itoa(t.minor) + "_" + t.arch
	case OSMusllinux:
		return "musllinux_" + strconv.Itoa(t.major) + "_" + strconv.Itoa(t.minor) + "_" + t.arch
	case OSMacOS:
		return "macosx_" + strconv.Itoa(t.major) + "_" + strconv.Itoa(t.minor) + "_" + t.arch
	case OSIOS:
		return "ios_" + strconv.Itoa(t.major) + "_" + strconv.Itoa(t.minor) + "_" + t.arch
	case OSAndroid:
		return "android_" + strconv.Itoa(t.major) + "_" + t.arch
	case OSLinux:
		return "linux_" + t.arch
	default:
		return t.raw
	}
}

// manylinux2014Archs are the architectures with a manylinux2014 alias;
// manylinux1 and manylinux2010 only exist for x86_64 and i686.
var manylinux2014Archs = map[string]bool{
	"x86_64": true, "i686": true, "aarch64": true, "armv7l": true,
	"ppc64": true, "ppc64le": true, "s390x": true,
}

// Compatible returns the platform tags a system described by t can install,
// most specific first. A manylinux_2_17 system also accepts every older
// glibc baseline and its legacy alias, a musllinux_1_2 system every older
// musl release. Other tags are returned unchanged.
func (t PlatformTag) Compatible() []PlatformTag {
	switch t.os {
	case OSManylinux, OSManylinux1, OSManylinux2010, OSManylinux2014:
		if t.major != 2 || t.minor < 5 {
			return []PlatformTag{t}
		}
		var out []PlatformTag
		for minor := t.minor; minor >= 5; minor-- {
			out = append(out, PlatformTag{os: OSManylinux, major: 2, minor: minor, arch: t.arch})
			if alias, ok := legacyAlias(minor, t.arch); ok {
				out = append(out, alias)
			}
		}
		return out
	case OSMusllinux:
		var out []PlatformTag
		for minor := t.minor; minor >= 0; minor-- {
			out = append(out, PlatformTag{os: OSMusllinux, major: t.major, minor: minor, arch: t.arch})
		}
		return out
	default:
		return []PlatformTag{t}
	}
}

func legacyAlias(glibcMinor int, arch string) (PlatformTag, bool) {
	switch glibcMinor {
	case 17:
		if manylinux2014Archs[arch] {
			return PlatformTag{os: OSManylinux2014, major: 2, minor: 17, arch: arch}, true
		}
	case 12:
		if arch == "x86_64" || arch == "i686" {
			return PlatformTag{os: OSManylinux2010, major: 2, minor: 12, arch: arch}, true
		}
	case 5:
		if arch == "x86_64" || arch == "i686" {
			return PlatformTag{os: OSManylinux1, major: 2, minor: 5, arch: arch}, true
		}
	}
	return PlatformTag{}, false
}
