package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/frederic-klein/wheelname/internal/config"
)

// app holds state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "wheelname",
		Short: "Parse Python wheel filenames and check them against a target interpreter",
		Long: "wheelname parses and normalizes wheel filenames, reports whether a wheel can be installed " +
			"on a target interpreter, and picks the best wheel per package from a list of candidates.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (default ./wheelname.{yaml,toml})")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")
	flags.String("python", "", "Target Python version, e.g. 3.12")
	flags.String("implementation", "", "Target implementation tag, e.g. cp or pp")
	flags.Bool("free-threaded", false, "Target the free-threaded CPython build")
	flags.StringSlice("abi", nil, "Extra ABI tags the target supports")
	flags.StringSlice("platform", nil, "Target platform tags, most specific first")
	flags.StringP("format", "o", "", "Output format: text, json, yaml or toml")
	flags.Bool("pre", false, "Allow pre-release versions")

	rootCmd.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newSelectCmd(a),
		newTagsCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "wheelname",
	})
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, used, err := config.Load(config.LoadOptions{
		ConfigFilePath: a.configPath,
		SearchDirs:     []string{"."},
		Flags:          cmd.Flags(),
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if used != "" {
		a.logger.Debug("Loaded config", "path", used)
	}
	a.logger.Debug("Target", "python", cfg.Python, "implementation", cfg.Implementation, "platforms", cfg.Platforms)

	a.cfg = cfg
	return nil
}
