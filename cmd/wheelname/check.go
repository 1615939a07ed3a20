package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/frederic-klein/wheelname/internal/dist"
)

type checkResult struct {
	Filename   dist.WheelFilename `json:"filename" yaml:"filename" toml:"filename"`
	Compatible bool               `json:"compatible" yaml:"compatible" toml:"compatible"`
	Priority   int                `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	Reason     string             `json:"reason,omitempty" yaml:"reason,omitempty" toml:"reason,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <filename|url>...",
		Short: "Check whether wheels can be installed on the target interpreter",
		Long: "Check reports, for each wheel, whether its tags match the target interpreter. " +
			"It exits non-zero when any wheel is invalid or incompatible.",
		Args: cobra.MinimumNArgs(1),
		RunE: a.runCheck,
	}
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	supported, err := a.cfg.Tags()
	if err != nil {
		return fmt.Errorf("generating tags: %w", err)
	}
	a.logger.Debug("Generated supported tags", "count", supported.Len())

	var results []checkResult
	failed := 0
	for _, arg := range args {
		w, err := parseArg(arg)
		if err != nil {
			a.logger.Error("Invalid wheel", "input", arg, "error", err)
			failed++
			continue
		}

		compat := w.Compatibility(supported)
		result := checkResult{Filename: w, Compatible: compat.IsCompatible()}
		if p, ok := compat.Priority(); ok {
			result.Priority = int(p)
		}
		if reason, ok := compat.Reason(); ok {
			result.Reason = reason.String()
			failed++
		}
		results = append(results, result)
	}

	doc := struct {
		Wheels []checkResult `json:"wheels" yaml:"wheels" toml:"wheels"`
	}{Wheels: results}

	err = a.render(cmd.OutOrStdout(), doc, func(w io.Writer) error {
		for _, r := range results {
			verdict := fmt.Sprintf("compatible (priority %d)", r.Priority)
			if !r.Compatible {
				verdict = fmt.Sprintf("incompatible (%s)", r.Reason)
			}
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.Filename, verdict); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d wheels cannot be installed", failed, len(args))
	}
	return nil
}
