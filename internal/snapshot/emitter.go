package snapshot

import (
	"fmt"
	"io"
	"slices"

	"github.com/frederic-klein/wheelname/internal/dist"
)

const header = "# wheelname snapshot format: version 1.0\n"

// Entry is one locked wheel.
type Entry struct {
	Wheel dist.WheelFilename
	URL   string
}

// Emitter writes wheel snapshot files.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates a new snapshot emitter.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes entries sorted by package name, then by wheel ordering.
func (e *Emitter) Emit(entries []Entry) error {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return dist.Compare(a.Wheel, b.Wheel)
	})

	if _, err := fmt.Fprint(e.w, header); err != nil {
		return err
	}

	if _, err := fmt.Fprint(e.w, "WHEELS\n"); err != nil {
		return err
	}

	for _, entry := range sorted {
		if entry.Wheel.IsZero() {
			return fmt.Errorf("emitting snapshot: entry has no wheel")
		}
		if err := e.emitEntry(entry); err != nil {
			return err
		}
	}

	return nil
}

func (e *Emitter) emitEntry(entry Entry) error {
	w := entry.Wheel

	// Package name with 2-space indent
	if _, err := fmt.Fprintf(e.w, "  %s\n", w.Name()); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(e.w, "    filename: %s\n", w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.w, "    version: %s\n", w.Version()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.w, "    tag: %s\n", w.Tag()); err != nil {
		return err
	}

	if entry.URL != "" {
		if _, err := fmt.Fprintf(e.w, "    url: %s\n", entry.URL); err != nil {
			return err
		}
	}

	return nil
}
