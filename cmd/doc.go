// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/mal/docs"
	"github.com/luthersystems/mal/lisp/lisplib/libhelp"
	"github.com/spf13/cobra"
)

// DocCommand returns the doc command.  Use WithRuntime to document the
// natives of an embedder's runtime instead of the default library.
func DocCommand(opts ...Option) *cobra.Command {
	return newDocCommand(newCmdConfig(opts...))
}

func newDocCommand(c *cmdConfig) *cobra.Command {
	var (
		docSourceFile string
		docMissing    bool
		docGuide      bool
	)
	docCmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for native functions",
		Long: `Show built-in documentation for the native functions bound in the
root environment.

With no argument every native is listed in name order.  Use -f to load a
source file first so that its definitions can be inspected.

Examples:
  mal doc                       List every native function
  mal doc hashmap               Show docs for the hashmap function
  mal doc -f lib.mal my-table   Load a file, then show my-table
  mal doc --missing             List natives without documentation
  mal doc --guide               Show the language guide`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if docGuide {
				_, err := io.WriteString(cmd.OutOrStdout(), docs.LangGuide)
				return err
			}
			rt, closeRuntime, err := c.newRuntime()
			if err != nil {
				return err
			}
			defer closeRuntime()
			if docSourceFile != "" {
				b, err := os.ReadFile(docSourceFile) //nolint:gosec // reading a user supplied program
				if err != nil {
					return err
				}
				if _, err := rt.LoadString(docSourceFile, string(b)); err != nil {
					_ = c.renderErrors(cmd.ErrOrStderr(), rt, docSourceFile, b)
					return fmt.Errorf("%s: %w", docSourceFile, err)
				}
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			switch {
			case docMissing:
				missing := libhelp.CheckMissing(rt)
				if len(missing) > 0 {
					fmt.Fprintln(out, strings.Join(missing, "\n")) //nolint:errcheck // reported by Flush
					return fmt.Errorf("%d function(s) without documentation", len(missing))
				}
				return nil
			case len(args) == 0:
				return libhelp.RenderAll(out, rt)
			default:
				return libhelp.RenderVar(out, rt, args[0])
			}
		},
	}

	docCmd.Flags().StringVarP(&docSourceFile, "source-file", "f", "",
		"Evaluate a lisp source file before querying documentation.")
	docCmd.Flags().BoolVar(&docMissing, "missing", false,
		"List native functions that have no documentation.")
	docCmd.Flags().BoolVar(&docGuide, "guide", false,
		"Show the language guide.")
	return docCmd
}
