package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/frederic-klein/wheelname/internal/config"
	"github.com/frederic-klein/wheelname/internal/dist"
)

// render writes doc in the configured format. text handles the plain text
// format.
func (a *app) render(w io.Writer, doc any, text func(io.Writer) error) error {
	switch a.cfg.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return text(w)
	}
}

// wheelInfo is the structured view of a parsed filename.
type wheelInfo struct {
	Filename dist.WheelFilename `json:"filename" yaml:"filename" toml:"filename"`
	Input    string             `json:"input" yaml:"input" toml:"input"`
	Name     string             `json:"name" yaml:"name" toml:"name"`
	Version  string             `json:"version" yaml:"version" toml:"version"`
	Build    string             `json:"build,omitempty" yaml:"build,omitempty" toml:"build,omitempty"`
	Python   []string           `json:"python" yaml:"python" toml:"python"`
	Abi      []string           `json:"abi" yaml:"abi" toml:"abi"`
	Platform []string           `json:"platform" yaml:"platform" toml:"platform"`
}

func newWheelInfo(input string, w dist.WheelFilename) wheelInfo {
	info := wheelInfo{
		Filename: w,
		Input:    input,
		Name:     w.Name().String(),
		Version:  w.Version().String(),
		Python:   toStrings(w.PythonTags()),
		Abi:      toStrings(w.AbiTags()),
		Platform: toStrings(w.PlatformTags()),
	}
	if b, ok := w.BuildTag(); ok {
		info.Build = b.String()
	}
	return info
}

func (info wheelInfo) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n  name:     %s\n  version:  %s\n", info.Filename, info.Name, info.Version)
	if err != nil {
		return err
	}
	if info.Build != "" {
		if _, err := fmt.Fprintf(w, "  build:    %s\n", info.Build); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "  python:   %s\n  abi:      %s\n  platform: %s\n",
		strings.Join(info.Python, ", "),
		strings.Join(info.Abi, ", "),
		strings.Join(info.Platform, ", "))
	return err
}

func toStrings[T fmt.Stringer](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}

func isURL(s string) bool {
	return strings.Contains(s, "://")
}

// parseArg parses a filename or URL argument.
func parseArg(s string) (dist.WheelFilename, error) {
	if isURL(s) {
		return dist.ParseURLString(s)
	}
	return dist.Parse(s)
}
