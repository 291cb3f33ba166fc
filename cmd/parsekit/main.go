package main

import (
	"os"

	"github.com/dhamidi/parsekit/internal/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

type options struct {
	configPath string
	verbosity  int
	logFile    string

	cfg config.Config
}

func main() {
	opts := &options{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:          "parsekit",
		Short:        "Parser combinators and tools for kvlang documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (TOML or YAML, default $"+config.EnvVar+")")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the config file, lets command-line flags override it and
// configures logging.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbosity = o.verbosity
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	o.cfg = cfg

	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, path)
	return nil
}
