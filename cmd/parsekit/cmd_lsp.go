package main

import (
	"github.com/dhamidi/parsekit/internal/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server that reports kvlang syntax errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.New(opts.cfg.LSP.Name, version)
			return server.RunStdio()
		},
	}
}
