package tags

import (
	"cmp"
	"fmt"
	"strings"
)

// Triple is one supported (language, ABI, platform) combination.
type Triple struct {
	Python   LanguageTag
	Abi      AbiTag
	Platform PlatformTag
}

// ParseTriple parses a "python-abi-platform" string such as "cp312-cp312-win_amd64".
func ParseTriple(s string) (Triple, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Triple{}, fmt.Errorf("tag triple %q must have the form <python>-<abi>-<platform>", s)
	}
	py, err := ParseLanguageTag(parts[0])
	if err != nil {
		return Triple{}, err
	}
	abi, err := ParseAbiTag(parts[1])
	if err != nil {
		return Triple{}, err
	}
	plat, err := ParsePlatformTag(parts[2])
	if err != nil {
		return Triple{}, err
	}
	return Triple{Python: py, Abi: abi, Platform: plat}, nil
}

func (t Triple) String() string {
	return t.Python.String() + "-" + t.Abi.String() + "-" + t.Platform.String()
}

// Priority ranks a supported triple; higher values are preferred.
type Priority int

// IncompatibleTag names the dimension that ruled a wheel out. Later values
// mean the wheel got further through the match.
type IncompatibleTag int

const (
	IncompatibleInvalid IncompatibleTag = iota
	IncompatiblePython
	IncompatibleAbi
	IncompatiblePlatform
)

func (t IncompatibleTag) String() string {
	switch t {
	case IncompatiblePython:
		return "python"
	case IncompatibleAbi:
		return "abi"
	case IncompatiblePlatform:
		return "platform"
	default:
		return "invalid"
	}
}

// Compatibility is the verdict of matching a wheel's tags against Tags.
// The zero value is incompatible with reason IncompatibleInvalid.
type Compatibility struct {
	compatible bool
	priority   Priority
	reason     IncompatibleTag
}

// Compatible returns a compatible verdict with priority p.
func Compatible(p Priority) Compatibility {
	return Compatibility{compatible: true, priority: p}
}

// Incompatible returns an incompatible verdict with the given reason.
func Incompatible(reason IncompatibleTag) Compatibility {
	return Compatibility{reason: reason}
}

// IsCompatible reports whether the wheel can be installed.
func (c Compatibility) IsCompatible() bool { return c.compatible }

// Priority returns the priority of the best matching triple.
func (c Compatibility) Priority() (Priority, bool) { return c.priority, c.compatible }

// Reason returns why the wheel is incompatible.
func (c Compatibility) Reason() (IncompatibleTag, bool) { return c.reason, !c.compatible }

func (c Compatibility) String() string {
	if c.compatible {
		return fmt.Sprintf("compatible (priority %d)", c.priority)
	}
	return fmt.Sprintf("incompatible (%s)", c.reason)
}

// CompareCompatibility orders verdicts: incompatible verdicts sort below
// compatible ones, and within each group the larger reason or priority wins.
func CompareCompatibility(a, b Compatibility) int {
	switch {
	case a.compatible && !b.compatible:
		return 1
	case !a.compatible && b.compatible:
		return -1
	case a.compatible:
		return cmp.Compare(a.priority, b.priority)
	default:
		return cmp.Compare(a.reason, b.reason)
	}
}

// Tags is the set of tags an interpreter supports, ordered by preference.
// It is immutable after construction and safe for concurrent use.
type Tags struct {
	triples []Triple
	index   map[LanguageTag]map[AbiTag]map[PlatformTag]Priority
}

// New builds Tags from triples ordered most preferred first. Duplicate
// triples keep the priority of their first occurrence.
func New(triples []Triple) *Tags {
	seen := make(map[Triple]bool, len(triples))
	distinct := make([]Triple, 0, len(triples))
	for _, triple := range triples {
		if !seen[triple] {
			seen[triple] = true
			distinct = append(distinct, triple)
		}
	}

	t := &Tags{
		triples: distinct,
		index:   make(map[LanguageTag]map[AbiTag]map[PlatformTag]Priority),
	}
	for i, triple := range distinct {
		abis, ok := t.index[triple.Python]
		if !ok {
			abis = make(map[AbiTag]map[PlatformTag]Priority)
			t.index[triple.Python] = abis
		}
		platforms, ok := abis[triple.Abi]
		if !ok {
			platforms = make(map[PlatformTag]Priority)
			abis[triple.Abi] = platforms
		}
		platforms[triple.Platform] = Priority(len(distinct) - i)
	}
	return t
}

// Triples returns the supported triples, most preferred first.
func (t *Tags) Triples() []Triple {
	return append([]Triple(nil), t.triples...)
}

// Len returns the number of distinct supported triples.
func (t *Tags) Len() int { return len(t.triples) }

// IsCompatible reports whether any combination of the given wheel tags is supported.
func (t *Tags) IsCompatible(python []LanguageTag, abi []AbiTag, platform []PlatformTag) bool {
	for _, py := range python {
		abis, ok := t.index[py]
		if !ok {
			continue
		}
		for _, a := range abi {
			platforms, ok := abis[a]
			if !ok {
				continue
			}
			for _, p := range platform {
				if _, ok := platforms[p]; ok {
					return true
				}
			}
		}
	}
	return false
}

// Compatibility returns the best verdict across every combination of the
// given wheel tags: the highest priority if any combination is supported,
// otherwise the dimension the closest combination failed on.
func (t *Tags) Compatibility(python []LanguageTag, abi []AbiTag, platform []PlatformTag) Compatibility {
	best := Incompatible(IncompatibleInvalid)
	consider := func(c Compatibility) {
		if CompareCompatibility(c, best) > 0 {
			best = c
		}
	}
	for _, py := range python {
		abis, ok := t.index[py]
		if !ok {
			consider(Incompatible(IncompatiblePython))
			continue
		}
		for _, a := range abi {
			platforms, ok := abis[a]
			if !ok {
				consider(Incompatible(IncompatibleAbi))
				continue
			}
			for _, p := range platform {
				if priority, ok := platforms[p]; ok {
					consider(Compatible(priority))
				} else {
					consider(Incompatible(IncompatiblePlatform))
				}
			}
		}
	}
	return best
}
