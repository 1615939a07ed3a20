package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <filename|url>...",
		Short: "Parse wheel filenames and print their components",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runParse,
	}
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	var infos []wheelInfo
	failed := 0
	for _, arg := range args {
		w, err := parseArg(arg)
		if err != nil {
			a.logger.Error("Invalid wheel", "input", arg, "error", err)
			failed++
			continue
		}
		infos = append(infos, newWheelInfo(arg, w))
	}

	doc := struct {
		Wheels []wheelInfo `json:"wheels" yaml:"wheels" toml:"wheels"`
	}{Wheels: infos}

	err := a.render(cmd.OutOrStdout(), doc, func(w io.Writer) error {
		for _, info := range infos {
			if err := info.writeText(w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d wheel filenames are invalid", failed, len(args))
	}
	return nil
}
