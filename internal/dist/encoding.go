package dist

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalText encodes w as its canonical filename. encoding/json and
// go-toml use it, so a WheelFilename serializes as a plain string.
func (w WheelFilename) MarshalText() ([]byte, error) {
	if w.IsZero() {
		return nil, fmt.Errorf("marshaling wheel filename: zero value")
	}
	return []byte(w.String()), nil
}

// UnmarshalText parses a wheel filename.
func (w *WheelFilename) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalYAML encodes w as its canonical filename.
func (w WheelFilename) MarshalYAML() (interface{}, error) {
	text, err := w.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML decodes a scalar node holding a wheel filename.
func (w *WheelFilename) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("decoding wheel filename at line %d: %w", node.Line, err)
	}
	return w.UnmarshalText([]byte(s))
}
