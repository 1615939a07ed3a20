package tags

import (
	"errors"
	"fmt"
)

// Interpreter describes the target environment tags are generated for.
type Interpreter struct {
	Implementation Implementation
	Major          int
	Minor          int
	// FreeThreaded selects the free-threaded CPython ABI (cp313t), which
	// cannot load abi3 wheels.
	FreeThreaded bool
	// Abis are extra ABI tags supported in addition to the ones derived
	// from the implementation, e.g. pypy310_pp73 for PyPy.
	Abis []AbiTag
	// Platforms are the platform tags of the target system, most specific
	// first. manylinux and musllinux tags are expanded to every older
	// baseline they imply.
	Platforms []PlatformTag
}

// ErrInvalidInterpreter is returned by FromInterpreter for unusable input.
var ErrInvalidInterpreter = errors.New("invalid interpreter")

// FromInterpreter generates the supported tags for in, most preferred
// first, in the order pip and packaging use.
func FromInterpreter(in Interpreter) (*Tags, error) {
	if in.Implementation == ImplNone || in.Implementation == ImplPython {
		return nil, fmt.Errorf("%w: implementation %q cannot run code", ErrInvalidInterpreter, in.Implementation)
	}
	if in.Major < 2 || in.Minor < 0 {
		return nil, fmt.Errorf("%w: unsupported Python version %d.%d", ErrInvalidInterpreter, in.Major, in.Minor)
	}

	var platforms []PlatformTag
	seen := make(map[PlatformTag]bool)
	for _, p := range in.Platforms {
		for _, c := range p.Compatible() {
			if !seen[c] {
				seen[c] = true
				platforms = append(platforms, c)
			}
		}
	}

	interp := NewLanguageTag(in.Implementation, in.Major, in.Minor)
	var triples []Triple
	add := func(py LanguageTag, abi AbiTag, plats []PlatformTag) {
		for _, p := range plats {
			triples = append(triples, Triple{Python: py, Abi: abi, Platform: p})
		}
	}

	none := AbiTag{kind: AbiNone}
	stable := AbiTag{kind: AbiStable}

	if in.Implementation == ImplCPython {
		add(interp, NewCPythonAbi(in.Major, in.Minor, in.FreeThreaded), platforms)
		for _, abi := range in.Abis {
			add(interp, abi, platforms)
		}
		abi3 := !in.FreeThreaded && (in.Major > 3 || (in.Major == 3 && in.Minor >= 2))
		if abi3 {
			add(interp, stable, platforms)
		}
		add(interp, none, platforms)
		if abi3 {
			for minor := in.Minor - 1; minor >= 2; minor-- {
				add(NewLanguageTag(ImplCPython, in.Major, minor), stable, platforms)
			}
		}
	} else {
		for _, abi := range in.Abis {
			add(interp, abi, platforms)
		}
		add(interp, none, platforms)
	}

	anyPlatform := []PlatformTag{{os: OSAny}}
	pythons := pythonRange(in.Major, in.Minor)
	for _, py := range pythons {
		add(py, none, platforms)
	}
	add(interp, none, anyPlatform)
	for _, py := range pythons {
		add(py, none, anyPlatform)
	}

	return New(triples), nil
}

// pythonRange yields pyXY, pyX, then pyX(Y-1) down to pyX0.
func pythonRange(major, minor int) []LanguageTag {
	out := []LanguageTag{
		NewLanguageTag(ImplPython, major, minor),
		NewLanguageTag(ImplPython, major, -1),
	}
	for m := minor - 1; m >= 0; m-- {
		out = append(out, NewLanguageTag(ImplPython, major, m))
	}
	return out
}
