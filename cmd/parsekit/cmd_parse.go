package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/parsekit/format"
	"github.com/dhamidi/parsekit/kvlang"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *options) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse kvlang files and print their contents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatName == "" {
				formatName = opts.cfg.Format
			}
			return runParse(cmd.OutOrStdout(), cmd.ErrOrStderr(), formatName, args)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "output format: text, json or kv (default from config)")

	return cmd
}

// runParse keeps going after a file fails so that every error is reported.
func runParse(stdout, stderr io.Writer, formatName string, paths []string) error {
	enc, err := format.New(formatName, stdout)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range paths {
		doc, err := kvlang.ParseFile(path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			failed++
			continue
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(paths))
	}
	return nil
}
