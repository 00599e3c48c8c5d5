// Copyright © 2018 The ELPS authors

package cmd

import (
	"github.com/luthersystems/mal/repl"
	"github.com/spf13/cobra"
)

func newReplCommand(c *cmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive mal REPL",
		Long: `Start an interactive read-eval-print loop.

The native library is loaded automatically.  Line editing, history and
symbol completion are supported via readline.  Use Ctrl-D to exit.

Example REPL session:
  mal> (def! sq {:a 1})
  {:a 1}
  mal> (sq :a)
  1
  mal> (zip (list :x :y) [1 2])
  (:x 1 :y 2)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRepl()
		},
	}
}

func (c *cmdConfig) runRepl() error {
	rt, closeRuntime, err := c.newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime()
	return repl.RunRepl(
		repl.WithRuntime(rt),
		repl.WithLogger(rt.Log),
		repl.WithPrompt(c.viper.GetString(keyPrompt)),
		repl.WithHistoryFile(c.viper.GetString(keyHistoryFile)),
		repl.WithDiagnostics(c.colorMode()),
	)
}
