package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/frederic-klein/wheelname/internal/snapshot"
)

var target = []string{"--python", "3.11", "--implementation", "cp", "--platform", "manylinux_2_17_x86_64"}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, target...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParse_Text(t *testing.T) {
	out, err := run(t, "parse", "Foo.Bar-1.0-1-py3-none-any.whl")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	want := `foo_bar-1.0-1-py3-none-any.whl
  name:     foo-bar
  version:  1.0
  build:    1
  python:   py3
  abi:      none
  platform: any
`
	if out != want {
		t.Errorf("parse output =\n%s\nwant:\n%s", out, want)
	}
}

func TestParse_Formats(t *testing.T) {
	const filename = "numpy-1.26.2-cp311-cp311-manylinux_2_17_x86_64.manylinux2014_x86_64.whl"

	type doc struct {
		Wheels []struct {
			Filename string   `json:"filename" yaml:"filename" toml:"filename"`
			Name     string   `json:"name" yaml:"name" toml:"name"`
			Platform []string `json:"platform" yaml:"platform" toml:"platform"`
		} `json:"wheels" yaml:"wheels" toml:"wheels"`
	}

	tests := []struct {
		format string
		decode func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
		{"toml", toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, "parse", "-o", tt.format, "https://example.com/packages/"+filename)
			if err != nil {
				t.Fatalf("parse error = %v", err)
			}
			var got doc
			if err := tt.decode([]byte(out), &got); err != nil {
				t.Fatalf("decoding %s output: %v\n%s", tt.format, err, out)
			}
			if len(got.Wheels) != 1 {
				t.Fatalf("got %d wheels, want 1", len(got.Wheels))
			}
			w := got.Wheels[0]
			if w.Filename != filename || w.Name != "numpy" || len(w.Platform) != 2 {
				t.Errorf("decoded %+v", w)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := run(t, "parse", "six-1.16.0-py2.py3-none-any.whl", "six-1.16.0.tar.gz")
	if err == nil || err.Error() != "1 of 2 wheel filenames are invalid" {
		t.Errorf("parse error = %v", err)
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "six-1.16.0-py2.py3-none-any.whl", "numpy-1.26.2-cp312-cp312-win_amd64.whl")
	if err == nil || err.Error() != "1 of 2 wheels cannot be installed" {
		t.Errorf("check error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("check output =\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "six-1.16.0-py2.py3-none-any.whl: compatible (priority ") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "numpy-1.26.2-cp312-cp312-win_amd64.whl: incompatible (python)" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestCheck_AllCompatible(t *testing.T) {
	if _, err := run(t, "check", "numpy-1.26.2-cp311-cp311-manylinux2014_x86_64.whl"); err != nil {
		t.Errorf("check error = %v", err)
	}
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "wheels.txt")
	snapPath := filepath.Join(dir, "wheels.snapshot")
	list := `# candidates
numpy-1.26.2-cp311-cp311-manylinux_2_17_x86_64.whl
numpy-1.26.3-cp312-cp312-manylinux_2_17_x86_64.whl
https://files.example.com/six-1.16.0-py2.py3-none-any.whl
six-1.15.0-py2.py3-none-any.whl
not-a-wheel.tar.gz
`
	if err := os.WriteFile(listPath, []byte(list), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "select", "-f", listPath, "-s", snapPath)
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if !strings.Contains(out, "with 2 wheels") {
		t.Errorf("select output = %q", out)
	}

	f, err := os.Open(snapPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	entries, err := snapshot.NewParser(f).Parse()
	if err != nil {
		t.Fatalf("parsing snapshot: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Wheel.String() != "numpy-1.26.2-cp311-cp311-manylinux_2_17_x86_64.whl" {
		t.Errorf("entry 0 = %s", entries[0].Wheel)
	}
	if entries[1].URL != "https://files.example.com/six-1.16.0-py2.py3-none-any.whl" {
		t.Errorf("entry 1 url = %q", entries[1].URL)
	}
}

func TestTags(t *testing.T) {
	out, err := run(t, "tags")
	if err != nil {
		t.Fatalf("tags error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "cp311-cp311-manylinux_2_17_x86_64" {
		t.Errorf("first tag = %q", lines[0])
	}
	if lines[len(lines)-1] != "py30-none-any" {
		t.Errorf("last tag = %q", lines[len(lines)-1])
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "tags", "--format", "xml")
	if err == nil {
		t.Error("tags with invalid format succeeded")
	}
}
