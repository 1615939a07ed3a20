// Package dist parses and formats wheel filenames
// ({name}-{version}[-{build}]-{python}-{abi}-{platform}.whl).
package dist

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/frederic-klein/wheelname/internal/pep440"
	"github.com/frederic-klein/wheelname/internal/pkgname"
	"github.com/frederic-klein/wheelname/internal/tags"
)

const wheelExt = ".whl"

// WheelFilename is a parsed wheel filename. It is a value type: build one
// with Parse, ParseStem or ParseURL and read it through its accessors.
type WheelFilename struct {
	name        pkgname.Name
	version     pep440.Version
	buildTag    *BuildTag
	pythonTag   []tags.LanguageTag
	abiTag      []tags.AbiTag
	platformTag []tags.PlatformTag
}

// Parse parses a wheel filename such as "foo-1.2.3-py3-none-any.whl".
func Parse(filename string) (WheelFilename, error) {
	stem, ok := strings.CutSuffix(filename, wheelExt)
	if !ok {
		return WheelFilename{}, newError(filename, MissingExtension, nil)
	}
	return parse(stem, filename)
}

// ParseStem parses a wheel filename without its extension, e.g.
// "foo-1.2.3-py3-none-any".
func ParseStem(stem string) (WheelFilename, error) {
	return parse(stem, stem)
}

// ParseURL parses the wheel filename in the last path segment of u.
// Errors report the URL rather than the extracted segment.
func ParseURL(u *url.URL) (WheelFilename, error) {
	if u.Opaque != "" || u.Path == "" {
		return WheelFilename{}, newError(u.String(), MissingURLPath, nil)
	}
	filename := u.Path[strings.LastIndexByte(u.Path, '/')+1:]
	if filename == "" {
		return WheelFilename{}, newError(u.String(), MissingURLFilename, nil)
	}
	w, err := Parse(filename)
	if err != nil {
		var fe *FilenameError
		if errors.As(err, &fe) {
			fe.Filename = u.String()
		}
		return WheelFilename{}, err
	}
	return w, nil
}

// ParseURLString parses raw as a URL and then behaves like ParseURL.
func ParseURLString(raw string) (WheelFilename, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return WheelFilename{}, fmt.Errorf("parsing URL %q: %w", raw, err)
	}
	return ParseURL(u)
}

// parse splits stem into five or six components. With six, the third is the
// build tag; with five there is none. Which form applies is decided by the
// count alone. filename is the caller's input, used in errors.
func parse(stem, filename string) (WheelFilename, error) {
	parts := strings.Split(stem, "-")

	name := parts[0]
	if len(parts) < 2 {
		return WheelFilename{}, newError(filename, MissingVersion, nil)
	}
	version := parts[1]
	if len(parts) < 3 {
		return WheelFilename{}, newError(filename, MissingPythonTag, nil)
	}
	if len(parts) < 4 {
		return WheelFilename{}, newError(filename, MissingAbiTag, nil)
	}
	if len(parts) < 5 {
		return WheelFilename{}, newError(filename, MissingPlatformTag, nil)
	}

	var rawBuild *string
	python, abi, platform := parts[2], parts[3], parts[4]
	switch len(parts) {
	case 5:
	case 6:
		rawBuild = &parts[2]
		python, abi, platform = parts[3], parts[4], parts[5]
	default:
		return WheelFilename{}, newError(filename, TooManyComponents, nil)
	}

	var w WheelFilename
	var err error

	if w.name, err = pkgname.Parse(name); err != nil {
		return WheelFilename{}, newError(filename, InvalidPackageName, err)
	}
	if w.version, err = pep440.Parse(version); err != nil {
		return WheelFilename{}, newError(filename, InvalidVersion, err)
	}
	if rawBuild != nil {
		build, err := ParseBuildTag(*rawBuild)
		if err != nil {
			return WheelFilename{}, newError(filename, InvalidBuildTag, err)
		}
		w.buildTag = &build
	}
	if w.pythonTag, err = parseTagSet(python, tags.ParseLanguageTag); err != nil {
		return WheelFilename{}, newError(filename, InvalidLanguageTag, err)
	}
	if w.abiTag, err = parseTagSet(abi, tags.ParseAbiTag); err != nil {
		return WheelFilename{}, newError(filename, InvalidAbiTag, err)
	}
	if w.platformTag, err = parseTagSet(platform, tags.ParsePlatformTag); err != nil {
		return WheelFilename{}, newError(filename, InvalidPlatformTag, err)
	}

	return w, nil
}

// parseTagSet parses a dot-separated compressed tag set.
func parseTagSet[T any](s string, parseOne func(string) (T, error)) ([]T, error) {
	raw := strings.Split(s, ".")
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		t, err := parseOne(r)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Name returns the normalized package name.
func (w WheelFilename) Name() pkgname.Name { return w.name }

// Version returns the package version.
func (w WheelFilename) Version() pep440.Version { return w.version }

// BuildTag returns the build tag, if the filename has one.
func (w WheelFilename) BuildTag() (BuildTag, bool) {
	if w.buildTag == nil {
		return BuildTag{}, false
	}
	return *w.buildTag, true
}

// PythonTags returns a copy of the language tags.
func (w WheelFilename) PythonTags() []tags.LanguageTag { return slices.Clone(w.pythonTag) }

// AbiTags returns a copy of the ABI tags.
func (w WheelFilename) AbiTags() []tags.AbiTag { return slices.Clone(w.abiTag) }

// PlatformTags returns a copy of the platform tags.
func (w WheelFilename) PlatformTags() []tags.PlatformTag { return slices.Clone(w.platformTag) }

// IsZero reports whether w is the zero value rather than a parsed filename.
func (w WheelFilename) IsZero() bool { return w.name.IsZero() }

// String returns the canonical filename, e.g. "foo-1.2.3-py3-none-any.whl".
func (w WheelFilename) String() string { return w.Stem() + wheelExt }

// Stem returns the canonical filename without the .whl extension.
func (w WheelFilename) Stem() string {
	parts := []string{w.name.DistInfoName(), w.version.String()}
	if w.buildTag != nil {
		parts = append(parts, w.buildTag.String())
	}
	parts = append(parts,
		formatTagSet(w.pythonTag),
		formatTagSet(w.abiTag),
		formatTagSet(w.platformTag),
	)
	return strings.Join(parts, "-")
}

// Tag returns the "python-abi-platform" part of the filename.
func (w WheelFilename) Tag() string {
	return formatTagSet(w.pythonTag) + "-" + formatTagSet(w.abiTag) + "-" + formatTagSet(w.platformTag)
}

func formatTagSet[T interface{ String() string }](set []T) string {
	if len(set) == 1 {
		return set[0].String()
	}
	parts := make([]string, len(set))
	for i, t := range set {
		parts[i] = t.String()
	}
	return strings.Join(parts, ".")
}

// IsCompatible reports whether any tag combination of w is in supported.
func (w WheelFilename) IsCompatible(supported *tags.Tags) bool {
	return supported.IsCompatible(w.pythonTag, w.abiTag, w.platformTag)
}

// Compatibility returns the verdict of matching w against supported.
func (w WheelFilename) Compatibility(supported *tags.Tags) tags.Compatibility {
	return supported.Compatibility(w.pythonTag, w.abiTag, w.platformTag)
}

// Key returns a string that identifies w, for use as a map key.
func (w WheelFilename) Key() string { return w.String() }

// Equal reports whether w and other describe the same filename.
func (w WheelFilename) Equal(other WheelFilename) bool { return w.String() == other.String() }

// Compare orders filenames by name, version, build tag (absent first), then
// the python, ABI and platform tag sets, falling back to the canonical
// string so that Compare returns 0 only for equal filenames.
func Compare(a, b WheelFilename) int {
	if c := strings.Compare(a.name.String(), b.name.String()); c != 0 {
		return c
	}
	if c := pep440.Compare(a.version, b.version); c != 0 {
		return c
	}
	switch {
	case a.buildTag == nil && b.buildTag != nil:
		return -1
	case a.buildTag != nil && b.buildTag == nil:
		return 1
	case a.buildTag != nil:
		if c := CompareBuildTags(*a.buildTag, *b.buildTag); c != 0 {
			return c
		}
	}
	if c := compareTagSets(a.pythonTag, b.pythonTag); c != 0 {
		return c
	}
	if c := compareTagSets(a.abiTag, b.abiTag); c != 0 {
		return c
	}
	if c := compareTagSets(a.platformTag, b.platformTag); c != 0 {
		return c
	}
	return cmp.Compare(a.String(), b.String())
}

func compareTagSets[T interface{ String() string }](a, b []T) int {
	return slices.CompareFunc(a, b, func(x, y T) int {
		return strings.Compare(x.String(), y.String())
	})
}
