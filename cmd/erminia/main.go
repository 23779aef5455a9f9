package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/erminia/config"
)

var version = "0.1.0"

// rootOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type rootOptions struct {
	verbosity  int
	logFile    string
	configPath string
	noColor    bool

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "erminia",
		Short:        "Front end tools for the erminia puzzle language",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default: discovered)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newLexCmd(opts))
	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newREPLCmd(opts))
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.Load(o.configPath)
	} else {
		o.cfg, err = config.Discover()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		o.cfg.Log.Verbosity = o.verbosity
	}
	if flags.Changed("log-file") {
		o.cfg.Log.File = o.logFile
	}
	if o.noColor {
		o.cfg.Output.Color = false
	}

	var logPath *string
	if o.cfg.Log.File != "" {
		logPath = &o.cfg.Log.File
	}
	commonlog.Configure(o.cfg.Log.Verbosity, logPath)

	if !o.cfg.Output.Color {
		color.NoColor = true
	}
	return nil
}
