// Package pkgname validates and normalizes Python distribution names.
package pkgname

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
var ErrInvalidName = errors.New("invalid package name")

var (
	validNameRe = regexp.MustCompile(`^(?i:[a-z0-9]|[a-z0-9][a-z0-9._-]*[a-z0-9])$`)
	separatorRe = regexp.MustCompile(`[-_.]+`)
)

// Name is a normalized package name, e.g. "django-allauth".
type Name struct {
	normalized string
}

// InvalidNameError is returned when a string is not a valid package name.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%q is not a valid package name: names must start and end with a letter or digit and may only contain -, _, ., and alphanumeric characters", e.Name)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Parse validates s and returns its normalized form.
func Parse(s string) (Name, error) {
	if !validNameRe.MatchString(s) {
		return Name{}, &InvalidNameError{Name: s}
	}
	return Name{normalized: normalize(s)}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func normalize(s string) string {
	return separatorRe.ReplaceAllString(strings.ToLower(s), "-")
}

// String returns the normalized name.
func (n Name) String() string { return n.normalized }

// DistInfoName returns the name as it appears in wheel filenames and
// .dist-info directories, with dashes replaced by underscores.
func (n Name) DistInfoName() string {
	return strings.ReplaceAll(n.normalized, "-", "_")
}

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool { return n.normalized == "" }
