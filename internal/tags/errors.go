package tags

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLanguageTag is wrapped by ParseTagError for language tags.
	ErrInvalidLanguageTag = errors.New("invalid language tag")
	// ErrInvalidAbiTag is wrapped by ParseTagError for ABI tags.
	ErrInvalidAbiTag = errors.New("invalid ABI tag")
	// ErrInvalidPlatformTag is wrapped by ParseTagError for platform tags.
	ErrInvalidPlatformTag = errors.New("invalid platform tag")
)

// Kind names one of the three tag dimensions.
type Kind int

const (
	KindLanguage Kind = iota
	KindAbi
	KindPlatform
)

func (k Kind) String() string {
	switch k {
	case KindLanguage:
		return "language"
	case KindAbi:
		return "ABI"
	default:
		return "platform"
	}
}

// ParseTagError is returned when a tag does not match its grammar.
type ParseTagError struct {
	Kind   Kind
	Tag    string
	Reason string
}

func (e *ParseTagError) Error() string {
	return fmt.Sprintf("invalid %s tag %q: %s", e.Kind, e.Tag, e.Reason)
}

// Unwrap returns the sentinel for the tag kind.
func (e *ParseTagError) Unwrap() error {
	switch e.Kind {
	case KindLanguage:
		return ErrInvalidLanguageTag
	case KindAbi:
		return ErrInvalidAbiTag
	default:
		return ErrInvalidPlatformTag
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isToken reports whether s is a non-empty run of [a-z0-9_].
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
