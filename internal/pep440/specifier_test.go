package pep440

import (
	"errors"
	"testing"
)

func TestSpecifiers_Contains(t *testing.T) {
	tests := []struct {
		version string
		spec    string
		ok      bool
	}{
		{"1.0", "", true},
		{"1.0", "1.0", true},
		{"1.0.0", "==1.0", true},
		{"1.1", "==1.0", false},
		{"1.0+local.7", "==1.0", true},
		{"1.0+local.7", "==1.0+local.7", true},
		{"1.0+other", "==1.0+local.7", false},
		{"2.0", ">= 1.0", true},
		{"1.0", ">= 1.0", true},
		{"0.9", ">= 1.0", false},
		{"0.9", "< 1.0", true},
		{"1.0", "< 1.0", false},
		{"1.5", "> 1.0", true},
		{"1.0", "> 1.0", false},
		{"1.0", "<= 1.0", true},
		{"1.1", "<= 1.0", false},
		{"1.1", "!= 1.0", true},
		{"1.0", "!= 1.0", false},
		{"1.5", ">= 1.0, < 2.0", true},
		{"0.9", ">= 1.0, < 2.0", false},
		{"2.0", ">= 1.0, < 2.0", false},
		{"1.2.7", "==1.2.*", true},
		{"1.2", "==1.2.*", true},
		{"1.2rc1", "==1.2.*", true},
		{"1.3", "==1.2.*", false},
		{"1.3", "!=1.2.*", true},
		{"2.2", "~=2.2", true},
		{"2.9", "~=2.2", true},
		{"3.0", "~=2.2", false},
		{"1.4.5", "~=1.4.2", true},
		{"1.5.0", "~=1.4.2", false},
		{"1.4.1", "~=1.4.2", false},
		{"1!1.0", ">=2.0", true},
		{"1.0", "===1.0", true},
		{"1.0.0", "===1.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.version+"_"+tt.spec, func(t *testing.T) {
			specs, err := ParseSpecifiers(tt.spec)
			if err != nil {
				t.Fatalf("ParseSpecifiers(%q) error = %v", tt.spec, err)
			}
			if got := specs.Contains(MustParse(tt.version)); got != tt.ok {
				t.Errorf("%q.Contains(%q) = %v, want %v", tt.spec, tt.version, got, tt.ok)
			}
		})
	}
}

func TestParseSpecifiers_Invalid(t *testing.T) {
	for _, input := range []string{
		">=",
		">=1.0,",
		">=1.*",
		"~=1",
		"==1.0a1.*",
		">=1.0+local",
		"==foo",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSpecifiers(input)
			if !errors.Is(err, ErrInvalidSpecifier) {
				t.Errorf("ParseSpecifiers(%q) error = %v, want ErrInvalidSpecifier", input, err)
			}
		})
	}
}

func TestSpecifiers_String(t *testing.T) {
	specs, err := ParseSpecifiers(" >= 1.0 , <2.0.dev0, ==1.*")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := specs.String(), ">=1.0,<2.0.dev0,==1.*"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
