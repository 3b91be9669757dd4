// Package cmd wires the gno command line: flag and config handling,
// logging setup, and one subcommand per report.
package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anton-dovnar/gno/config"
	"github.com/anton-dovnar/gno/logging"
	"github.com/anton-dovnar/gno/view"
)

// app carries state shared by the root command and its subcommands.
type app struct {
	env []string
	cfg *config.Config

	configFile string
	path       string
	format     string
	logLevel   string
}

// NewRootCmd builds the gno command tree reading the process environment.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Environ())
}

func newRootCmd(env []string) *cobra.Command {
	a := &app{env: env}

	root := &cobra.Command{
		Use:           "gno",
		Short:         "Show statistics about a git repository",
		Long:          `gno reports commit, branch, contributor and size statistics for the git repository containing --path.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return err
			}
			return errors.New("a command is required")
		},
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", config.DefaultFile, "Path to the config file")
	flags.StringVarP(&a.path, "path", "p", ".", "Path to the git repository")
	flags.StringVarP(&a.format, "format", "f", config.FormatTable, "Output format: table, json, or svg")
	flags.StringVar(&a.logLevel, "log-level", logging.DefaultLevel, "Log level: debug, info, warn, or error")

	root.AddCommand(
		a.commitsCmd(),
		a.branchesCmd(),
		a.contributorsCmd(),
		a.summaryCmd(),
	)
	return root
}

// setup loads configuration and initializes logging before any subcommand.
// Only flags set explicitly on the command line override the config file
// and environment.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	overrides := &config.Overrides{}
	if flags.Changed("path") {
		overrides.Path = &a.path
	}
	if flags.Changed("format") {
		overrides.Format = &a.format
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = &a.logLevel
	}

	cfg, err := config.Load(config.LoadOptions{
		File:      a.configFile,
		Required:  flags.Changed("config"),
		Env:       a.env,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.cfg = cfg
	logging.Logger.Debug("Loaded configuration", "path", cfg.Path, "format", cfg.Format)
	return nil
}

// render writes r to w in the configured format.
func (a *app) render(w io.Writer, r view.Report) error {
	switch a.cfg.Format {
	case config.FormatJSON:
		return view.WriteJSON(w, r)
	case config.FormatSVG:
		return view.WriteCard(w, r)
	default:
		return view.WriteTable(w, r)
	}
}
