package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"brewflow/internal/config"
	"brewflow/internal/logger"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose, quiet bool

	app := &appContext{
		configFlag: &configFlag,
		verbose:    &verbose,
		quiet:      &quiet,
	}

	rootCmd := &cobra.Command{
		Use:           "brewflow",
		Short:         "Guided pour-over brewing from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.ensure()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable all logging")

	rootCmd.AddCommand(newRecipesCommand(app))
	rootCmd.AddCommand(newScaleCommand(app))
	rootCmd.AddCommand(newBrewCommand(app))
	rootCmd.AddCommand(newLogsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// appContext carries the configuration and logger shared by all commands.
type appContext struct {
	configFlag *string
	verbose    *bool
	quiet      *bool

	cfg     *config.Config
	log     *logger.Logger
	logFile *os.File
}

// ensure loads configuration and builds the logger. Logs go to a file by
// default so the session UI stays clean.
func (a *appContext) ensure() error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := config.Load(*a.configFlag)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := logger.LevelNormal
	if *a.verbose {
		level = logger.LevelVerbose
	}
	if *a.quiet {
		level = logger.LevelOff
	}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" && level != logger.LevelOff {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		f, ferr := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (using stderr)\n", cfg.LogFile, ferr)
		} else {
			out = f
			a.logFile = f
		}
	}

	a.log = logger.New(level, out)
	return nil
}

func (a *appContext) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
