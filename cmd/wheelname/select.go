package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/frederic-klein/wheelname/internal/selector"
	"github.com/frederic-klein/wheelname/internal/snapshot"
	"github.com/frederic-klein/wheelname/internal/wheellist"
)

type selectOptions struct {
	listPath     string
	snapshotPath string
}

func newSelectCmd(a *app) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick the best compatible wheel per package and write a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSelect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.listPath, "file", "f", "./wheels.txt", "Input wheel list, one filename or URL per line")
	cmd.Flags().StringVarP(&opts.snapshotPath, "snapshot", "s", "./wheels.snapshot", "Output snapshot path, - for stdout")

	return cmd
}

func (a *app) runSelect(cmd *cobra.Command, opts *selectOptions) error {
	a.logger.Debug("Parsing wheel list", "path", opts.listPath)
	list, err := wheellist.NewParser().Parse(opts.listPath)
	if err != nil {
		return fmt.Errorf("parsing wheel list: %w", err)
	}
	for _, e := range list.Invalid() {
		a.logger.Warn("Skipping invalid wheel", "line", e.Line, "error", e.Err)
	}

	valid := list.Valid()
	if len(valid) == 0 {
		return fmt.Errorf("no valid wheels found in %s", opts.listPath)
	}

	supported, err := a.cfg.Tags()
	if err != nil {
		return fmt.Errorf("generating tags: %w", err)
	}
	reqs, err := a.cfg.Requirements()
	if err != nil {
		return err
	}

	candidates := make([]selector.Candidate, 0, len(valid))
	for _, e := range valid {
		candidates = append(candidates, selector.Candidate{Wheel: e.Wheel, URL: e.URL})
	}

	a.logger.Debug("Selecting wheels", "candidates", len(candidates))
	result := selector.NewSelector(supported, selector.Options{
		Prereleases:  a.cfg.Prereleases,
		Requirements: reqs,
	}).Select(candidates)
	for _, r := range result.Rejected {
		a.logger.Debug("Rejected", "wheel", r.String())
	}

	if len(result.Selected) == 0 {
		return fmt.Errorf("none of %d wheels can be installed", len(candidates))
	}

	entries := make([]snapshot.Entry, len(result.Selected))
	for i, sel := range result.Selected {
		entries[i] = snapshot.Entry{Wheel: sel.Wheel, URL: sel.URL}
	}

	if opts.snapshotPath == "-" {
		return writeSnapshot(cmd.OutOrStdout(), entries)
	}

	a.logger.Debug("Writing snapshot", "path", opts.snapshotPath)
	outFile, err := os.Create(opts.snapshotPath)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer outFile.Close()

	if err := writeSnapshot(outFile, entries); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %d wheels\n", opts.snapshotPath, len(entries))
	return nil
}

func writeSnapshot(w io.Writer, entries []snapshot.Entry) error {
	if err := snapshot.NewEmitter(w).Emit(entries); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
