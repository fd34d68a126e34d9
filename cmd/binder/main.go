// Package main provides the binder CLI.
//
// binder inspects configuration sources through binding paths:
//   - parse shows how a path is tokenized
//   - get binds the value at a path into a chosen Go type and prints it
//   - keys lists the keys below a path
//   - diff compares the value bound at a path in two sources
//
// Sources are YAML or JSON files, environment variables or a SQLite
// key/value table.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"struct-binder/options"
)

// app holds the state shared by all subcommands.
type app struct {
	configFile string
	logLevel   string

	opts *options.Options
	log  *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "binder",
		Short: "Bind configuration sources into typed values",
		Long: `binder resolves binding paths such as server.hosts[0].name against
a configuration source and binds the result into a Go type.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Binder options file (YAML)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides the options file)")

	rootCmd.AddCommand(
		newParseCmd(a),
		newGetCmd(a),
		newKeysCmd(a),
		newDiffCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.opts = options.Default()

	if a.configFile != "" {
		opts, err := options.LoadFile(a.configFile)
		if err != nil {
			return err
		}

		a.opts = opts
	}

	if a.logLevel != "" {
		a.opts.LogLevel = a.logLevel
	}

	level, err := a.opts.Level()
	if err != nil {
		return err
	}

	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}
