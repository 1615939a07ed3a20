package dist

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the parsing stage that rejected a wheel filename.
type ErrorKind int

const (
	MissingExtension ErrorKind = iota
	MissingVersion
	MissingPythonTag
	MissingAbiTag
	MissingPlatformTag
	TooManyComponents
	InvalidPackageName
	InvalidVersion
	InvalidBuildTag
	InvalidLanguageTag
	InvalidAbiTag
	InvalidPlatformTag
	MissingURLPath
	MissingURLFilename
)

// Sentinels for errors.Is, one per ErrorKind.
var (
	ErrMissingExtension   = errors.New("missing .whl extension")
	ErrMissingVersion     = errors.New("missing version")
	ErrMissingPythonTag   = errors.New("missing python tag")
	ErrMissingAbiTag      = errors.New("missing ABI tag")
	ErrMissingPlatformTag = errors.New("missing platform tag")
	ErrTooManyComponents  = errors.New("too many components")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidVersion     = errors.New("invalid version")
	ErrInvalidBuildTag    = errors.New("invalid build tag")
	ErrInvalidLanguageTag = errors.New("invalid language tag")
	ErrInvalidAbiTag      = errors.New("invalid ABI tag")
	ErrInvalidPlatformTag = errors.New("invalid platform tag")
	ErrMissingURLPath     = errors.New("missing URL path")
	ErrMissingURLFilename = errors.New("missing URL filename")
)

var kindInfo = map[ErrorKind]struct {
	sentinel error
	message  string
}{
	MissingExtension:   {ErrMissingExtension, "is invalid: must end with .whl"},
	MissingVersion:     {ErrMissingVersion, "is invalid: must have a version"},
	MissingPythonTag:   {ErrMissingPythonTag, "is invalid: must have a Python tag"},
	MissingAbiTag:      {ErrMissingAbiTag, "is invalid: must have an ABI tag"},
	MissingPlatformTag: {ErrMissingPlatformTag, "is invalid: must have a platform tag"},
	TooManyComponents:  {ErrTooManyComponents, "is invalid: must have 5 or 6 components, but has more"},
	InvalidPackageName: {ErrInvalidPackageName, "has an invalid package name"},
	InvalidVersion:     {ErrInvalidVersion, "has an invalid version"},
	InvalidBuildTag:    {ErrInvalidBuildTag, "has an invalid build tag"},
	InvalidLanguageTag: {ErrInvalidLanguageTag, "has an invalid language tag"},
	InvalidAbiTag:      {ErrInvalidAbiTag, "has an invalid ABI tag"},
	InvalidPlatformTag: {ErrInvalidPlatformTag, "has an invalid platform tag"},
	MissingURLPath:     {ErrMissingURLPath, "is invalid: URL must have a path"},
	MissingURLFilename: {ErrMissingURLFilename, "is invalid: URL must contain a filename"},
}

func (k ErrorKind) String() string {
	if s := kindInfo[k].sentinel; s != nil {
		return s.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// FilenameError reports why a wheel filename could not be parsed. Filename
// is the input exactly as the caller passed it (or the URL string for
// ParseURL); Err is the sub-parser error for the Invalid* kinds.
type FilenameError struct {
	Filename string
	Kind     ErrorKind
	Err      error
}

func (e *FilenameError) Error() string {
	msg := fmt.Sprintf("the wheel filename %q %s", e.Filename, kindInfo[e.Kind].message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the sub-parser error, if any.
func (e *FilenameError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *FilenameError) Is(target error) bool {
	return target != nil && target == kindInfo[e.Kind].sentinel
}

func newError(filename string, kind ErrorKind, err error) *FilenameError {
	return &FilenameError{Filename: filename, Kind: kind, Err: err}
}
