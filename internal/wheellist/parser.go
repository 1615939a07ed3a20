package wheellist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/frederic-klein/wheelname/internal/dist"
)

// Entry is one candidate from a wheel list.
type Entry struct {
	Line  int
	Raw   string
	URL   string // set when the line was a URL
	Wheel dist.WheelFilename
	Err   error // parse failure; Wheel is zero when set
}

// ParseResult contains the entries of a wheel list in file order.
type ParseResult struct {
	Entries []Entry
}

// Valid returns the entries that parsed successfully.
func (r *ParseResult) Valid() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Err == nil {
			out = append(out, e)
		}
	}
	return out
}

// Invalid returns the entries that failed to parse.
func (r *ParseResult) Invalid() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Parser reads wheel lists: one wheel filename or URL per line, with blank
// lines and # comments ignored.
type Parser struct{}

// NewParser creates a new wheel list parser.
func NewParser() *Parser {
	return &Parser{}
}

var urlRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Parse reads the wheel list at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wheel list: %w", err)
	}
	defer file.Close()

	return p.ParseReader(file)
}

// ParseReader reads a wheel list from r. Entries that are not valid wheel
// filenames are kept with Err set rather than failing the whole list.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// Inline comments need a leading space so URL fragments survive.
		if idx := strings.Index(line, " #"); idx != -1 {
			line = line[:idx]
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		entry := Entry{Line: lineNo, Raw: trimmed}
		if urlRe.MatchString(trimmed) {
			entry.URL = trimmed
			entry.Wheel, entry.Err = dist.ParseURLString(trimmed)
		} else {
			entry.Wheel, entry.Err = dist.Parse(trimmed)
		}
		result.Entries = append(result.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading wheel list: %w", err)
	}

	return result, nil
}
