package dist

import (
	"errors"
	"net/url"
	"slices"
	"testing"

	"github.com/frederic-klein/wheelname/internal/pep440"
	"github.com/frederic-klein/wheelname/internal/pkgname"
	"github.com/frederic-klein/wheelname/internal/tags"
)

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input   string
		kind    ErrorKind
		wantErr error
		message string
	}{
		{"foo.rs", MissingExtension, ErrMissingExtension, `the wheel filename "foo.rs" is invalid: must end with .whl`},
		{".whl", MissingVersion, ErrMissingVersion, `the wheel filename ".whl" is invalid: must have a version`},
		{"foo.whl", MissingVersion, ErrMissingVersion, `the wheel filename "foo.whl" is invalid: must have a version`},
		{"foo-1.2.3.whl", MissingPythonTag, ErrMissingPythonTag, `the wheel filename "foo-1.2.3.whl" is invalid: must have a Python tag`},
		{"foo-1.2.3-py3.whl", MissingAbiTag, ErrMissingAbiTag, `the wheel filename "foo-1.2.3-py3.whl" is invalid: must have an ABI tag`},
		{"foo-1.2.3-py3-none.whl", MissingPlatformTag, ErrMissingPlatformTag, `the wheel filename "foo-1.2.3-py3-none.whl" is invalid: must have a platform tag`},
		{"foo-1.2.3-202206090410-py3-none-any-whoops.whl", TooManyComponents, ErrTooManyComponents, `the wheel filename "foo-1.2.3-202206090410-py3-none-any-whoops.whl" is invalid: must have 5 or 6 components, but has more`},
		{"foo-1.2.3-tag-py3-none-any.whl", InvalidBuildTag, ErrInvalidBuildTag, `the wheel filename "foo-1.2.3-tag-py3-none-any.whl" has an invalid build tag: must start with a digit`},
		{"foo-x.y.z-py3-none-any.whl", InvalidVersion, ErrInvalidVersion, `the wheel filename "foo-x.y.z-py3-none-any.whl" has an invalid version: expected version to start with a number, but no leading ASCII digits were found`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			var fe *FilenameError
			if !errors.As(err, &fe) {
				t.Fatalf("Parse(%q) error is %T, want *FilenameError", tt.input, err)
			}
			if fe.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", fe.Kind, tt.kind)
			}
			if fe.Filename != tt.input {
				t.Errorf("Filename = %q, want %q", fe.Filename, tt.input)
			}
			if err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestParse_InvalidComponents(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
		cause   error
	}{
		{"f!oo-1.2.3-py3-none-any.whl", ErrInvalidPackageName, pkgname.ErrInvalidName},
		{"foo-1.0-123-none-any.whl", ErrInvalidLanguageTag, tags.ErrInvalidLanguageTag},
		{"foo-1.0-py3..py2-none-any.whl", ErrInvalidLanguageTag, tags.ErrInvalidLanguageTag},
		{"foo-1.0-py3-cp3x-any.whl", ErrInvalidAbiTag, tags.ErrInvalidAbiTag},
		{"foo-1.0-py3-none-any.Win_amd64.whl", ErrInvalidPlatformTag, tags.ErrInvalidPlatformTag},
		{"foo-1.0-99999999999999999999999-py3-none-any.whl", ErrInvalidBuildTag, nil},
		{"foo-1.0.x-py3-none-any.whl", ErrInvalidVersion, pep440.ErrInvalidVersion},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("Parse(%q) error = %v, does not wrap %v", tt.input, err, tt.cause)
			}
		})
	}
}

func TestParse_ErrorOrder(t *testing.T) {
	// Splitting errors win over component errors, and components are
	// validated name first.
	tests := []struct {
		input   string
		wantErr error
	}{
		{"f!oo-x.y-py3-none.whl", ErrMissingPlatformTag},
		{"f!oo-x.y-tag-py3-none-any-x.whl", ErrTooManyComponents},
		{"f!oo-x.y-tag-py3-none-any.whl", ErrInvalidPackageName},
		{"foo-x.y-tag-py3-none-any.whl", ErrInvalidVersion},
		{"foo-1.0-tag-!!-none-any.whl", ErrInvalidBuildTag},
		{"foo-1.0-!!-!!-!!.whl", ErrInvalidLanguageTag},
		{"foo-1.0-py3-!!-!!.whl", ErrInvalidAbiTag},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if _, err := Parse(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParse_SingleTags(t *testing.T) {
	w, err := Parse("foo-1.2.3-py3-none-any.whl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if w.Name().String() != "foo" {
		t.Errorf("Name() = %q, want foo", w.Name())
	}
	if w.Version().String() != "1.2.3" {
		t.Errorf("Version() = %q, want 1.2.3", w.Version())
	}
	if _, ok := w.BuildTag(); ok {
		t.Error("BuildTag() present, want absent")
	}
	if got := w.PythonTags(); len(got) != 1 || got[0].String() != "py3" {
		t.Errorf("PythonTags() = %v", got)
	}
	if got := w.AbiTags(); len(got) != 1 || got[0].String() != "none" {
		t.Errorf("AbiTags() = %v", got)
	}
	if got := w.PlatformTags(); len(got) != 1 || !got[0].IsAny() {
		t.Errorf("PlatformTags() = %v", got)
	}
}

func TestParse_MultipleTags(t *testing.T) {
	w, err := Parse("foo-1.2.3-cp311-cp311-manylinux_2_17_x86_64.manylinux2014_x86_64.whl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	platforms := w.PlatformTags()
	if len(platforms) != 2 {
		t.Fatalf("got %d platform tags, want 2", len(platforms))
	}
	if platforms[0].String() != "manylinux_2_17_x86_64" || platforms[1].String() != "manylinux2014_x86_64" {
		t.Errorf("PlatformTags() = %v, order not preserved", platforms)
	}
	if w.Tag() != "cp311-cp311-manylinux_2_17_x86_64.manylinux2014_x86_64" {
		t.Errorf("Tag() = %q", w.Tag())
	}

	platforms[0] = tags.MustParsePlatformTag("any")
	if w.PlatformTags()[0].IsAny() {
		t.Error("PlatformTags() exposed internal storage")
	}
}

func TestParse_BuildTag(t *testing.T) {
	w, err := Parse("foo-1.2.3-202206090410-py3-none-any.whl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	build, ok := w.BuildTag()
	if !ok {
		t.Fatal("BuildTag() absent, want 202206090410")
	}
	if build.Number() != 202206090410 || build.Suffix() != "" {
		t.Errorf("BuildTag() = %d%q", build.Number(), build.Suffix())
	}
	if got := w.PythonTags()[0].String(); got != "py3" {
		t.Errorf("python tag = %q, want py3", got)
	}
}

func TestParseStem(t *testing.T) {
	w, err := ParseStem("foo-1.2.3-py3-none-any")
	if err != nil {
		t.Fatalf("ParseStem() error = %v", err)
	}
	if w.Stem() != "foo-1.2.3-py3-none-any" {
		t.Errorf("Stem() = %q", w.Stem())
	}

	_, err = ParseStem("foo-1.2.3-py3")
	var fe *FilenameError
	if !errors.As(err, &fe) || fe.Kind != MissingAbiTag || fe.Filename != "foo-1.2.3-py3" {
		t.Errorf("ParseStem() error = %v, want MissingAbiTag carrying the stem", err)
	}

	// No extension check: "foo.rs" is a one-component stem.
	if _, err := ParseStem("foo.rs"); !errors.Is(err, ErrMissingVersion) {
		t.Errorf("ParseStem(%q) error = %v, want ErrMissingVersion", "foo.rs", err)
	}
}

func TestRoundTrip(t *testing.T) {
	names := []string{
		"django_allauth-0.51.0-py3-none-any.whl",
		"osm2geojson-0.2.4-py3-none-any.whl",
		"numpy-1.26.2-cp311-cp311-manylinux_2_17_x86_64.manylinux2014_x86_64.whl",
		"foo-1.2.3-202206090410-py3-none-any.whl",
		"six-1.16.0-py2.py3-none-any.whl",
		"cryptography-41.0.7-cp37-abi3-manylinux_2_17_aarch64.manylinux2014_aarch64.whl",
		"pywin32-306-cp312-cp312-win_amd64.whl",
		"torch-2.1.0+cu121-cp311-cp311-linux_x86_64.whl",
		"greenlet-3.0.1-cp312-cp312-macosx_10_9_universal2.whl",
		"pkg-1.0-1a-py3-none-any.whl",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			w, err := Parse(name)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", name, err)
			}
			if w.String() != name {
				t.Errorf("String() = %q, want %q", w.String(), name)
			}
			again, err := Parse(w.String())
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", w.String(), err)
			}
			if !again.Equal(w) || Compare(again, w) != 0 {
				t.Errorf("round trip changed the filename: %q -> %q", w, again)
			}
		})
	}
}

func TestRoundTrip_Normalizes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Django.Allauth-0.51.0-py3-none-any.whl", "django_allauth-0.51.0-py3-none-any.whl"},
		{"foo-v1.0RC1-py3-none-any.whl", "foo-1.0rc1-py3-none-any.whl"},
		{"foo-1.0-007-py3-none-any.whl", "foo-1.0-7-py3-none-any.whl"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if w.String() != tt.want {
				t.Errorf("String() = %q, want %q", w.String(), tt.want)
			}
			again, err := Parse(w.String())
			if err != nil || !again.Equal(w) {
				t.Errorf("Parse(String()) = %v, %v; want equal filename", again, err)
			}
		})
	}
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{"https://files.pythonhosted.org/packages/ab/cd/foo-1.2.3-py3-none-any.whl", "foo-1.2.3-py3-none-any.whl", nil},
		{"https://example.com/simple/foo/foo-1.2.3-py3-none-any.whl#sha256=abc", "foo-1.2.3-py3-none-any.whl", nil},
		{"file:///tmp/wheels/torch-2.1.0%2Bcu121-cp311-cp311-linux_x86_64.whl", "torch-2.1.0+cu121-cp311-cp311-linux_x86_64.whl", nil},
		{"https://example.com", "", ErrMissingURLPath},
		{"mailto:foo@example.com", "", ErrMissingURLPath},
		{"https://example.com/simple/", "", ErrMissingURLFilename},
		{"https://example.com/foo-1.0.tar.gz", "", ErrMissingExtension},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			if err != nil {
				t.Fatalf("url.Parse(%q) error = %v", tt.raw, err)
			}
			w, err := ParseURL(u)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseURL(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				var fe *FilenameError
				if errors.As(err, &fe) && fe.Filename != u.String() {
					t.Errorf("error context = %q, want the URL %q", fe.Filename, u.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURL(%q) error = %v", tt.raw, err)
			}
			if w.String() != tt.want {
				t.Errorf("ParseURL(%q) = %q, want %q", tt.raw, w, tt.want)
			}
		})
	}

	if _, err := ParseURLString("https://example.com/pkgs/foo-1.0-py3-none-any.whl"); err != nil {
		t.Errorf("ParseURLString() error = %v", err)
	}
	if _, err := ParseURLString("://bad"); err == nil {
		t.Error("ParseURLString() with malformed URL succeeded")
	}
}

func TestCompatibility(t *testing.T) {
	supported, err := tags.FromInterpreter(tags.Interpreter{
		Implementation: tags.ImplCPython,
		Major:          3,
		Minor:          11,
		Platforms:      []tags.PlatformTag{tags.MustParsePlatformTag("manylinux_2_17_x86_64")},
	})
	if err != nil {
		t.Fatalf("FromInterpreter() error = %v", err)
	}

	tests := []struct {
		filename   string
		compatible bool
		reason     tags.IncompatibleTag
	}{
		{"numpy-1.26.2-cp311-cp311-manylinux_2_17_x86_64.manylinux2014_x86_64.whl", true, 0},
		{"cryptography-41.0.7-cp37-abi3-manylinux2014_x86_64.whl", true, 0},
		{"six-1.16.0-py2.py3-none-any.whl", true, 0},
		{"numpy-1.26.2-cp312-cp312-manylinux_2_17_x86_64.whl", false, tags.IncompatiblePython},
		{"numpy-1.26.2-cp311-cp311d-manylinux_2_17_x86_64.whl", false, tags.IncompatibleAbi},
		{"numpy-1.26.2-cp311-cp311-win_amd64.whl", false, tags.IncompatiblePlatform},
		{"numpy-1.26.2-cp311-cp311-manylinux_2_28_x86_64.whl", false, tags.IncompatiblePlatform},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			w, err := Parse(tt.filename)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := w.IsCompatible(supported); got != tt.compatible {
				t.Errorf("IsCompatible() = %v, want %v", got, tt.compatible)
			}
			c := w.Compatibility(supported)
			if c.IsCompatible() != tt.compatible {
				t.Errorf("Compatibility() = %v, want compatible=%v", c, tt.compatible)
			}
			if reason, ok := c.Reason(); ok && reason != tt.reason {
				t.Errorf("Compatibility() reason = %v, want %v", reason, tt.reason)
			}
		})
	}

	specific, _ := Parse("numpy-1.26.2-cp311-cp311-manylinux_2_17_x86_64.whl")
	pure, _ := Parse("numpy-1.26.2-py3-none-any.whl")
	if tags.CompareCompatibility(specific.Compatibility(supported), pure.Compatibility(supported)) <= 0 {
		t.Error("a platform-specific wheel should rank above a pure-Python one")
	}
}

func TestCompare(t *testing.T) {
	input := []string{
		"foo-1.10-py3-none-any.whl",
		"bar-2.0-py3-none-any.whl",
		"foo-1.9-2-py3-none-any.whl",
		"foo-1.9-py3-none-any.whl",
		"foo-1.9-10-py3-none-any.whl",
		"foo-1.9-cp311-cp311-win_amd64.whl",
	}
	want := []string{
		"bar-2.0-py3-none-any.whl",
		"foo-1.9-cp311-cp311-win_amd64.whl",
		"foo-1.9-py3-none-any.whl",
		"foo-1.9-2-py3-none-any.whl",
		"foo-1.9-10-py3-none-any.whl",
		"foo-1.10-py3-none-any.whl",
	}

	wheels := make([]WheelFilename, len(input))
	for i, s := range input {
		w, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", s, err)
		}
		wheels[i] = w
	}
	slices.SortFunc(wheels, Compare)

	got := make([]string, len(wheels))
	for i, w := range wheels {
		got[i] = w.String()
	}
	if !slices.Equal(got, want) {
		t.Errorf("sorted =\n%v\nwant:\n%v", got, want)
	}
}

func TestKey_Dedup(t *testing.T) {
	a, _ := Parse("Foo-1.0-py3-none-any.whl")
	b, _ := Parse("foo-1.0-py3-none-any.whl")
	c, _ := Parse("foo-1.0.0-py3-none-any.whl")

	seen := map[string]WheelFilename{}
	for _, w := range []WheelFilename{a, b, c} {
		seen[w.Key()] = w
	}
	if len(seen) != 2 {
		t.Errorf("got %d distinct keys, want 2", len(seen))
	}
	if Compare(b, c) == 0 {
		t.Error("1.0 and 1.0.0 filenames differ and must not compare equal")
	}
}
