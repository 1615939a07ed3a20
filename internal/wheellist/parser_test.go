package wheellist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frederic-klein/wheelname/internal/dist"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantValid   []string
		wantInvalid []int
	}{
		{
			name:      "single filename",
			content:   `six-1.16.0-py2.py3-none-any.whl`,
			wantValid: []string{"six-1.16.0-py2.py3-none-any.whl"},
		},
		{
			name: "comments and blank lines",
			content: `# pinned wheels

six-1.16.0-py2.py3-none-any.whl  # pure python
`,
			wantValid: []string{"six-1.16.0-py2.py3-none-any.whl"},
		},
		{
			name:      "url with fragment",
			content:   `https://files.example.com/packages/numpy-1.26.2-cp311-cp311-win_amd64.whl#sha256=deadbeef`,
			wantValid: []string{"numpy-1.26.2-cp311-cp311-win_amd64.whl"},
		},
		{
			name: "invalid entries are kept",
			content: `six-1.16.0-py2.py3-none-any.whl
six-1.16.0.tar.gz
f!oo-1.0-py3-none-any.whl
`,
			wantValid:   []string{"six-1.16.0-py2.py3-none-any.whl"},
			wantInvalid: []int{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			listPath := filepath.Join(tmpDir, "wheels.txt")
			if err := os.WriteFile(listPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			parser := NewParser()
			result, err := parser.Parse(listPath)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			valid := result.Valid()
			if len(valid) != len(tt.wantValid) {
				t.Fatalf("got %d valid entries, want %d", len(valid), len(tt.wantValid))
			}
			for i, want := range tt.wantValid {
				if got := valid[i].Wheel.String(); got != want {
					t.Errorf("entry %d = %q, want %q", i, got, want)
				}
			}

			invalid := result.Invalid()
			if len(invalid) != len(tt.wantInvalid) {
				t.Fatalf("got %d invalid entries, want %d", len(invalid), len(tt.wantInvalid))
			}
			for i, line := range tt.wantInvalid {
				if invalid[i].Line != line {
					t.Errorf("invalid entry %d on line %d, want %d", i, invalid[i].Line, line)
				}
				if !invalid[i].Wheel.IsZero() {
					t.Errorf("invalid entry %d carries a wheel", i)
				}
			}
		})
	}
}

func TestParser_ParseReader_URLContext(t *testing.T) {
	const raw = "https://example.com/simple/six/"
	result, err := NewParser().ParseReader(strings.NewReader(raw + "\n"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(result.Entries))
	}
	entry := result.Entries[0]
	if entry.URL != raw {
		t.Errorf("URL = %q, want %q", entry.URL, raw)
	}
	if !errors.Is(entry.Err, dist.ErrMissingURLFilename) {
		t.Errorf("Err = %v, want ErrMissingURLFilename", entry.Err)
	}
}

func TestParser_Parse_MissingFile(t *testing.T) {
	_, err := NewParser().Parse(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Parse() error = %v, want os.ErrNotExist", err)
	}
}
