package pep440

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSpecifier is returned for malformed version specifiers.
var ErrInvalidSpecifier = errors.New("invalid version specifier")

// Operator is a version comparison operator.
type Operator string

const (
	OpCompatible   Operator = "~="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpArbitrary    Operator = "==="
)

// Longest first so "===" is not read as "==".
var operators = []Operator{OpArbitrary, OpCompatible, OpEqual, OpNotEqual, OpLessEqual, OpGreaterEqual, OpLess, OpGreater}

// Specifier is a single clause such as ">=1.0" or "==2.*".
type Specifier struct {
	op       Operator
	version  Version
	raw      string
	wildcard bool
}

// Specifiers is a comma-separated conjunction of clauses. An empty set
// contains every version.
type Specifiers []Specifier

// ParseSpecifiers parses a clause list like ">= 1.0, < 2". A bare version is
// read as "==".
func ParseSpecifiers(s string) (Specifiers, error) {
	var out Specifiers
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, clause := range strings.Split(s, ",") {
		spec, err := ParseSpecifier(clause)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// ParseSpecifier parses one clause.
func ParseSpecifier(s string) (Specifier, error) {
	clause := strings.TrimSpace(s)
	op := OpEqual
	for _, candidate := range operators {
		if strings.HasPrefix(clause, string(candidate)) {
			op = candidate
			clause = strings.TrimSpace(clause[len(candidate):])
			break
		}
	}
	if clause == "" {
		return Specifier{}, fmt.Errorf("%w: %q is missing a version", ErrInvalidSpecifier, strings.TrimSpace(s))
	}

	spec := Specifier{op: op, raw: clause}
	if op == OpArbitrary {
		return spec, nil
	}

	body := clause
	if strings.HasSuffix(body, ".*") {
		if op != OpEqual && op != OpNotEqual {
			return Specifier{}, fmt.Errorf("%w: wildcard not allowed with %s", ErrInvalidSpecifier, op)
		}
		spec.wildcard = true
		body = strings.TrimSuffix(body, ".*")
	}

	v, err := Parse(body)
	if err != nil {
		return Specifier{}, fmt.Errorf("%w: %q: %w", ErrInvalidSpecifier, clause, err)
	}
	if spec.wildcard && (v.pre != nil || v.post != nil || v.dev != nil || v.IsLocal()) {
		return Specifier{}, fmt.Errorf("%w: wildcard requires a plain release in %q", ErrInvalidSpecifier, clause)
	}
	if op == OpCompatible && len(v.release) < 2 {
		return Specifier{}, fmt.Errorf("%w: %s requires at least two release segments", ErrInvalidSpecifier, op)
	}
	if v.IsLocal() && op != OpEqual && op != OpNotEqual {
		return Specifier{}, fmt.Errorf("%w: local version not allowed with %s", ErrInvalidSpecifier, op)
	}
	spec.version = v
	return spec, nil
}

// Operator returns the clause's operator.
func (s Specifier) Operator() Operator { return s.op }

// Version returns the clause's version. It is the zero value for "===".
func (s Specifier) Version() Version { return s.version }

func (s Specifier) String() string {
	if s.op == OpArbitrary {
		return string(s.op) + s.raw
	}
	if s.wildcard {
		return string(s.op) + s.version.String() + ".*"
	}
	return string(s.op) + s.version.String()
}

// Contains reports whether v satisfies the clause.
func (s Specifier) Contains(v Version) bool {
	switch s.op {
	case OpArbitrary:
		return v.String() == s.raw
	case OpEqual:
		return s.matchesEqual(v)
	case OpNotEqual:
		return !s.matchesEqual(v)
	case OpCompatible:
		prefix := Version{epoch: s.version.epoch, release: s.version.release[:len(s.version.release)-1]}
		return Compare(v, s.version) >= 0 && releasePrefixMatch(v, prefix)
	case OpLessEqual:
		return Compare(v.public(), s.version) <= 0
	case OpGreaterEqual:
		return Compare(v.public(), s.version) >= 0
	case OpLess:
		return Compare(v.public(), s.version) < 0
	case OpGreater:
		return Compare(v.public(), s.version) > 0
	}
	return false
}

func (s Specifier) matchesEqual(v Version) bool {
	if s.wildcard {
		return releasePrefixMatch(v, s.version)
	}
	if !s.version.IsLocal() {
		v = v.public()
	}
	return Compare(v, s.version) == 0
}

// releasePrefixMatch reports whether v's release starts with prefix's
// release, padding v with zeros.
func releasePrefixMatch(v, prefix Version) bool {
	if v.epoch != prefix.epoch {
		return false
	}
	for i, want := range prefix.release {
		var got uint64
		if i < len(v.release) {
			got = v.release[i]
		}
		if got != want {
			return false
		}
	}
	return true
}

func (v Version) public() Version {
	v.local = nil
	return v
}

// Contains reports whether v satisfies every clause.
func (s Specifiers) Contains(v Version) bool {
	for _, spec := range s {
		if !spec.Contains(v) {
			return false
		}
	}
	return true
}

func (s Specifiers) String() string {
	parts := make([]string, len(s))
	for i, spec := range s {
		parts[i] = spec.String()
	}
	return strings.Join(parts, ",")
}
