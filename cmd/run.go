// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCommand(c *cmdConfig) *cobra.Command {
	var (
		runExpression bool
		runPrint      bool
	)
	runCmd := &cobra.Command{
		Use:   "run [flags] [FILE|EXPR]...",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line, files or stdin.

Each argument is read, evaluated and printed as one cycle on a shared
runtime, so definitions made by one argument are visible to the next.
With no arguments the program is read from stdin.  Errors are shown as
annotated source and stop the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSources(cmd, args, runExpression, runPrint)
		},
	}

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	return runCmd
}

type source struct {
	name string
	text []byte
}

func runReadSources(in io.Reader, args []string, expression bool) ([]source, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []source{{name: "stdin", text: b}}, nil
	}
	srcs := make([]source, len(args))
	for i, arg := range args {
		if expression {
			srcs[i] = source{name: fmt.Sprintf("expr%d", i+1), text: []byte(arg)}
			continue
		}
		b, err := os.ReadFile(arg) //nolint:gosec // reading user supplied programs
		if err != nil {
			return nil, err
		}
		srcs[i] = source{name: arg, text: b}
	}
	return srcs, nil
}

// runSources evaluates each source as one rep cycle.  The first source that
// reports errors has them rendered to stderr and ends the run.
func (c *cmdConfig) runSources(cmd *cobra.Command, args []string, expression, printResults bool) error {
	srcs, err := runReadSources(cmd.InOrStdin(), args, expression)
	if err != nil {
		return err
	}
	rt, closeRuntime, err := c.newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime()

	for _, src := range srcs {
		out := rt.RepContext(cmd.Context(), src.name, string(src.text))
		if !rt.Errors.Empty() {
			if err := c.renderErrors(cmd.ErrOrStderr(), rt, src.name, src.text); err != nil {
				return err
			}
			return fmt.Errorf("%s: %d error(s)", src.name, rt.Errors.Len())
		}
		if printResults && out != "" {
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		}
	}
	return nil
}
