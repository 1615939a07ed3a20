// Package config loads the target interpreter and output settings using
// Viper.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/frederic-klein/wheelname/internal/pep440"
	"github.com/frederic-klein/wheelname/internal/pkgname"
	"github.com/frederic-klein/wheelname/internal/tags"
)

const (
	// AppName is the application name.
	AppName = "wheelname"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "wheelname"
	// EnvPrefix prefixes environment overrides, e.g. WHEELNAME_PYTHON.
	EnvPrefix = "WHEELNAME"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

var formats = []string{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	// Python is the target "major.minor" version.
	Python         string   `json:"python" yaml:"python" mapstructure:"python"`
	Implementation string   `json:"implementation" yaml:"implementation" mapstructure:"implementation"`
	FreeThreaded   bool     `json:"free_threaded" yaml:"free_threaded" mapstructure:"free_threaded"`
	Abis           []string `json:"abis" yaml:"abis" mapstructure:"abis"`
	// Platforms are platform tags, most specific first.
	Platforms   []string          `json:"platforms" yaml:"platforms" mapstructure:"platforms"`
	Format      string            `json:"format" yaml:"format" mapstructure:"format"`
	Prereleases bool              `json:"prereleases" yaml:"prereleases" mapstructure:"prereleases"`
	Requires    map[string]string `json:"requires" yaml:"requires" mapstructure:"requires"`
}

// DefaultConfig returns the configuration used when nothing overrides it:
// CPython 3.12 on the host platform, text output.
func DefaultConfig() *Config {
	return &Config{
		Python:         "3.12",
		Implementation: string(tags.ImplCPython),
		Abis:           []string{},
		Platforms:      HostPlatforms(runtime.GOOS, runtime.GOARCH),
		Format:         FormatText,
		Requires:       map[string]string{},
	}
}

// HostPlatforms returns the platform tags for a Go GOOS/GOARCH pair. An
// unknown pair yields no platforms, leaving only "any" wheels installable.
func HostPlatforms(goos, goarch string) []string {
	arch := map[string]string{
		"amd64":   "x86_64",
		"arm64":   "aarch64",
		"386":     "i686",
		"ppc64le": "ppc64le",
		"s390x":   "s390x",
	}[goarch]

	switch goos {
	case "linux":
		if arch == "" {
			return []string{}
		}
		return []string{"manylinux_2_17_" + arch}
	case "darwin":
		switch goarch {
		case "arm64":
			return []string{"macosx_11_0_arm64"}
		case "amd64":
			return []string{"macosx_10_12_x86_64"}
		}
	case "windows":
		switch goarch {
		case "amd64":
			return []string{"win_amd64"}
		case "arm64":
			return []string{"win_arm64"}
		case "386":
			return []string{"win32"}
		}
	}
	return []string{}
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath, when set, is used exclusively and must exist.
	ConfigFilePath string
	// SearchDirs are searched for wheelname.{yaml,toml,json} when
	// ConfigFilePath is empty.
	SearchDirs []string
	// Flags are bound on top of file and environment values. Only flags
	// the user changed take effect.
	Flags *pflag.FlagSet
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"python":         "python",
	"implementation": "implementation",
	"free-threaded":  "free_threaded",
	"abi":            "abis",
	"platform":       "platforms",
	"format":         "format",
	"pre":            "prereleases",
}

// Load resolves configuration from defaults, the config file, WHEELNAME_*
// environment variables and flags, in increasing precedence. It returns the
// config file used, or "" when none was found.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("python", defaults.Python)
	v.SetDefault("implementation", defaults.Implementation)
	v.SetDefault("free_threaded", defaults.FreeThreaded)
	v.SetDefault("abis", defaults.Abis)
	v.SetDefault("platforms", defaults.Platforms)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("prereleases", defaults.Prereleases)
	v.SetDefault("requires", defaults.Requires)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("reading config %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		for _, dir := range opts.SearchDirs {
			v.AddConfigPath(dir)
		}
		if len(opts.SearchDirs) > 0 {
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, "", fmt.Errorf("reading config: %w", err)
				}
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, v.ConfigFileUsed(), nil
}

// Validate checks every field without building anything from it.
func (c *Config) Validate() error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("%w: format %q must be one of %s", ErrInvalidConfig, c.Format, strings.Join(formats, ", "))
	}
	if _, err := c.Interpreter(); err != nil {
		return err
	}
	if _, err := c.Requirements(); err != nil {
		return err
	}
	return nil
}

// Interpreter converts the target settings into a tags.Interpreter.
func (c *Config) Interpreter() (tags.Interpreter, error) {
	major, minor, err := parsePython(c.Python)
	if err != nil {
		return tags.Interpreter{}, err
	}

	in := tags.Interpreter{
		Implementation: tags.Implementation(c.Implementation),
		Major:          major,
		Minor:          minor,
		FreeThreaded:   c.FreeThreaded,
	}
	if in.Implementation == tags.ImplNone || in.Implementation == tags.ImplPython {
		return tags.Interpreter{}, fmt.Errorf("%w: implementation %q is not an interpreter", ErrInvalidConfig, c.Implementation)
	}

	for _, s := range c.Abis {
		abi, err := tags.ParseAbiTag(s)
		if err != nil {
			return tags.Interpreter{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		in.Abis = append(in.Abis, abi)
	}
	for _, s := range c.Platforms {
		p, err := tags.ParsePlatformTag(s)
		if err != nil {
			return tags.Interpreter{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		in.Platforms = append(in.Platforms, p)
	}
	return in, nil
}

// Tags generates the supported tags for the configured interpreter.
func (c *Config) Tags() (*tags.Tags, error) {
	in, err := c.Interpreter()
	if err != nil {
		return nil, err
	}
	return tags.FromInterpreter(in)
}

// Requirements parses the per-package version specifiers.
func (c *Config) Requirements() (map[pkgname.Name]pep440.Specifiers, error) {
	out := make(map[pkgname.Name]pep440.Specifiers, len(c.Requires))
	for name, spec := range c.Requires {
		n, err := pkgname.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: requires: %w", ErrInvalidConfig, err)
		}
		specs, err := pep440.ParseSpecifiers(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: requires %s: %w", ErrInvalidConfig, name, err)
		}
		out[n] = specs
	}
	return out, nil
}

func parsePython(s string) (int, int, error) {
	majorStr, minorStr, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return 0, 0, fmt.Errorf("%w: python %q must be major.minor", ErrInvalidConfig, s)
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: python %q must be major.minor", ErrInvalidConfig, s)
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: python %q must be major.minor", ErrInvalidConfig, s)
	}
	if major < 2 || minor < 0 {
		return 0, 0, fmt.Errorf("%w: unsupported python %q", ErrInvalidConfig, s)
	}
	return major, minor, nil
}
