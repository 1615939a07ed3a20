// Package selector picks the best wheel per package from a set of candidates.
package selector

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/frederic-klein/wheelname/internal/dist"
	"github.com/frederic-klein/wheelname/internal/pep440"
	"github.com/frederic-klein/wheelname/internal/pkgname"
	"github.com/frederic-klein/wheelname/internal/tags"
)

// Candidate is a wheel offered for selection, with the URL it came from if
// any.
type Candidate struct {
	Wheel dist.WheelFilename
	URL   string
}

// Selection is the chosen wheel for one package.
type Selection struct {
	Candidate
	Compatibility tags.Compatibility
}

// RejectReason explains why a candidate was not selected.
type RejectReason int

const (
	RejectIncompatible RejectReason = iota
	RejectPrerelease
	RejectRequirement
	RejectOutranked
)

func (r RejectReason) String() string {
	switch r {
	case RejectIncompatible:
		return "incompatible"
	case RejectPrerelease:
		return "pre-release"
	case RejectRequirement:
		return "requirement not met"
	default:
		return "outranked"
	}
}

// Rejection is a candidate that was dropped.
type Rejection struct {
	Candidate
	Reason        RejectReason
	Compatibility tags.Compatibility
}

func (r Rejection) String() string {
	if r.Reason == RejectIncompatible {
		return fmt.Sprintf("%s: %s", r.Wheel, r.Compatibility)
	}
	return fmt.Sprintf("%s: %s", r.Wheel, r.Reason)
}

// Options tune selection.
type Options struct {
	// Prereleases allows pre-release and dev versions.
	Prereleases bool
	// Requirements restricts packages to versions matching a specifier,
	// keyed by normalized package name.
	Requirements map[pkgname.Name]pep440.Specifiers
}

// Result holds the outcome of Select. Selected is sorted by package name.
type Result struct {
	Selected []Selection
	Rejected []Rejection
}

// Selector ranks candidates against a supported tag set.
type Selector struct {
	supported *tags.Tags
	opts      Options
}

// NewSelector creates a selector for the given supported tags.
func NewSelector(supported *tags.Tags, opts Options) *Selector {
	return &Selector{supported: supported, opts: opts}
}

// Select drops candidates that cannot be installed and keeps the best one
// per package: highest version, then best tag priority, then highest build
// tag. Duplicate filenames are collapsed.
func (s *Selector) Select(candidates []Candidate) Result {
	var result Result
	best := make(map[pkgname.Name]Selection)
	seen := make(map[string]bool)

	for _, c := range candidates {
		if c.Wheel.IsZero() || seen[c.Wheel.Key()] {
			continue
		}
		seen[c.Wheel.Key()] = true

		compat := c.Wheel.Compatibility(s.supported)
		if !compat.IsCompatible() {
			result.Rejected = append(result.Rejected, Rejection{Candidate: c, Reason: RejectIncompatible, Compatibility: compat})
			continue
		}
		if !s.opts.Prereleases && c.Wheel.Version().IsPrerelease() {
			result.Rejected = append(result.Rejected, Rejection{Candidate: c, Reason: RejectPrerelease, Compatibility: compat})
			continue
		}
		if req, ok := s.opts.Requirements[c.Wheel.Name()]; ok && !req.Contains(c.Wheel.Version()) {
			result.Rejected = append(result.Rejected, Rejection{Candidate: c, Reason: RejectRequirement, Compatibility: compat})
			continue
		}

		sel := Selection{Candidate: c, Compatibility: compat}
		current, ok := best[c.Wheel.Name()]
		if !ok {
			best[c.Wheel.Name()] = sel
			continue
		}
		if rank(sel, current) > 0 {
			best[c.Wheel.Name()] = sel
			sel = current
		}
		result.Rejected = append(result.Rejected, Rejection{Candidate: sel.Candidate, Reason: RejectOutranked, Compatibility: sel.Compatibility})
	}

	for _, sel := range best {
		result.Selected = append(result.Selected, sel)
	}
	slices.SortFunc(result.Selected, func(a, b Selection) int {
		return cmp.Compare(a.Wheel.Name().String(), b.Wheel.Name().String())
	})
	return result
}

// rank orders two compatible wheels of the same package.
func rank(a, b Selection) int {
	if c := pep440.Compare(a.Wheel.Version(), b.Wheel.Version()); c != 0 {
		return c
	}
	if c := tags.CompareCompatibility(a.Compatibility, b.Compatibility); c != 0 {
		return c
	}
	ab, aok := a.Wheel.BuildTag()
	bb, bok := b.Wheel.BuildTag()
	switch {
	case aok && bok:
		if c := dist.CompareBuildTags(ab, bb); c != 0 {
			return c
		}
	case aok:
		return 1
	case bok:
		return -1
	}
	// Stable tie-break so the result does not depend on input order.
	return -dist.Compare(a.Wheel, b.Wheel)
}
