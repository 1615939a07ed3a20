package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print the tags the target interpreter supports, most preferred first",
		Args:  cobra.NoArgs,
		RunE:  a.runTags,
	}
}

func (a *app) runTags(cmd *cobra.Command, _ []string) error {
	supported, err := a.cfg.Tags()
	if err != nil {
		return fmt.Errorf("generating tags: %w", err)
	}

	triples := supported.Triples()
	doc := struct {
		Python         string   `json:"python" yaml:"python" toml:"python"`
		Implementation string   `json:"implementation" yaml:"implementation" toml:"implementation"`
		Platforms      []string `json:"platforms" yaml:"platforms" toml:"platforms"`
		Tags           []string `json:"tags" yaml:"tags" toml:"tags"`
	}{
		Python:         a.cfg.Python,
		Implementation: a.cfg.Implementation,
		Platforms:      a.cfg.Platforms,
		Tags:           toStrings(triples),
	}

	err = a.render(cmd.OutOrStdout(), doc, func(w io.Writer) error {
		for _, t := range doc.Tags {
			if _, err := fmt.Fprintln(w, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
