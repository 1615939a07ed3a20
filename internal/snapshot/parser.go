package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/frederic-klein/wheelname/internal/dist"
)

var (
	packageRe  = regexp.MustCompile(`^  (\S+)$`)
	filenameRe = regexp.MustCompile(`^    filename: (.+)$`)
	fieldRe    = regexp.MustCompile(`^    (version|tag|url): (.+)$`)
)

// Parser reads wheel snapshot files.
type Parser struct {
	r io.Reader
}

// NewParser creates a new snapshot parser.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

type block struct {
	line    int
	name    string
	entry   Entry
	version string
	tag     string
}

// Parse reads entries from a snapshot. The version and tag fields are
// checked against the filename.
func (p *Parser) Parse() ([]Entry, error) {
	var entries []Entry
	var current *block

	flush := func() error {
		if current == nil {
			return nil
		}
		entry, err := current.finish()
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	}

	scanner := bufio.NewScanner(p.r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// Skip header, WHEELS line and blanks
		if strings.HasPrefix(line, "#") || line == "WHEELS" || line == "" {
			continue
		}

		if matches := packageRe.FindStringSubmatch(line); matches != nil {
			if err := flush(); err != nil {
				return nil, err
			}
			current = &block{line: lineNo, name: matches[1]}
			continue
		}

		if current == nil {
			continue
		}

		if matches := filenameRe.FindStringSubmatch(line); matches != nil {
			w, err := dist.Parse(matches[1])
			if err != nil {
				return nil, fmt.Errorf("snapshot line %d: %w", lineNo, err)
			}
			current.entry.Wheel = w
			continue
		}

		if matches := fieldRe.FindStringSubmatch(line); matches != nil {
			switch matches[1] {
			case "version":
				current.version = matches[2]
			case "tag":
				current.tag = matches[2]
			case "url":
				current.entry.URL = matches[2]
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	// Don't forget the last package
	if err := flush(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (b *block) finish() (Entry, error) {
	w := b.entry.Wheel
	if w.IsZero() {
		return Entry{}, fmt.Errorf("snapshot line %d: package %s has no filename", b.line, b.name)
	}
	if w.Name().String() != b.name {
		return Entry{}, fmt.Errorf("snapshot line %d: package %s does not match filename %s", b.line, b.name, w)
	}
	if b.version != "" && b.version != w.Version().String() {
		return Entry{}, fmt.Errorf("snapshot line %d: version %s does not match filename %s", b.line, b.version, w)
	}
	if b.tag != "" && b.tag != w.Tag() {
		return Entry{}, fmt.Errorf("snapshot line %d: tag %s does not match filename %s", b.line, b.tag, w)
	}
	return b.entry, nil
}
