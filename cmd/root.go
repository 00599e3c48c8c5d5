// Copyright © 2018 The ELPS authors

// Package cmd implements the mal command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the mal command with every subcommand attached.
// Without a subcommand mal starts the repl when stdin is a terminal and runs
// stdin as a program otherwise.
func NewRootCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts...)
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "mal",
		Short: "Make-a-lisp interpreter",
		Long: `mal is a small Lisp interpreter with a mark and sweep collector.

Getting started:
  mal run file.mal             Run a Lisp source file
  mal run -e -p '(+ 1 2)'      Evaluate an expression and print it
  mal repl                     Start an interactive REPL
  mal doc zip                  Show documentation for a native function

Language overview:
  Values are nil, booleans, integers, decimals, strings, keywords, symbols,
  lists, vectors and hashmaps.  (def! name value) binds in the root
  environment and (let* (name value ...) body) binds in a new one.  A
  hashmap in function position looks up its argument: ({:a 1} :a) is 1.

Configuration is read from $HOME/.mal.yaml and from MAL_ environment
variables, for example MAL_LOG_LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.readConfig(cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if f, ok := cmd.InOrStdin().(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
				return c.runRepl()
			}
			return c.runSources(cmd, nil, false, true)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mal.yaml)")
	flags.String(keyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String(keyLogLevel, "warn", "Log level: trace, debug, info, warn or error.")
	flags.Bool(keyComments, false, "Print the comments read with each result.")
	for _, key := range []string{keyColor, keyLogLevel, keyComments} {
		_ = c.viper.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(
		newReplCommand(c),
		newRunCommand(c),
		newDocCommand(c),
	)
	return rootCmd
}

// Execute runs the mal command line and exits with a non-zero status when a
// command fails.  This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint:errcheck // exiting anyway
		os.Exit(1)
	}
}
