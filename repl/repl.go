// Copyright © 2018 The ELPS authors

// Package repl runs an interactive read-eval-print loop over a lisp.Runtime.
package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Version is shown in the banner of an interactive session.
const Version = "0.1.2"

// DefaultPrompt is used when no prompt is configured.
const DefaultPrompt = "mal> "

type config struct {
	stdin       io.ReadCloser
	stderr      io.WriteCloser
	historyFile string
	prompt      string
	runtime     *lisp.Runtime
	log         logrus.FieldLogger
	diagnostics bool
	color       diagnostic.ColorMode
}

func newConfig(opts ...Option) *config {
	config := &config{
		historyFile: historyPath(),
		prompt:      DefaultPrompt,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the file line history is kept in.  An empty path
// disables the history file.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithPrompt sets the prompt shown before each line.
func WithPrompt(prompt string) Option {
	return func(c *config) {
		c.prompt = prompt
	}
}

// WithRuntime runs the REPL on rt instead of a new runtime with the native
// library loaded.  The caller remains responsible for closing rt.
func WithRuntime(rt *lisp.Runtime) Option {
	return func(c *config) {
		c.runtime = rt
	}
}

// WithLogger sets the logger for line reader failures.  When no logger is
// given the runtime's logger is used.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithDiagnostics renders errors as annotated source snippets instead of the
// collapsed error log.
func WithDiagnostics(color diagnostic.ColorMode) Option {
	return func(c *config) {
		c.diagnostics = true
		c.color = color
	}
}

// RunRepl reads lines until the end of input and prints the result of each
// rep cycle.  Unless WithRuntime is given the runtime is torn down when the
// input ends.
func RunRepl(opts ...Option) error {
	cfg := newConfig(opts...)
	rt := cfg.runtime
	if rt == nil {
		var err error
		rt, err = lisplib.NewRuntime()
		if err != nil {
			return fmt.Errorf("runtime initialization failure: %w", err)
		}
		defer rt.Close()
	}
	log := cfg.log
	if log == nil {
		log = rt.Log
	}
	var stderr io.Writer = os.Stderr
	if cfg.stderr != nil {
		stderr = cfg.stderr
	}

	rlCfg := &readline.Config{
		Stdout:            stderr,
		Stderr:            stderr,
		Prompt:            cfg.prompt,
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{rt: rt},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	} else if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		_, _ = fmt.Fprintf(stderr, "Make-a-lisp version %s\n", Version)
		_, _ = fmt.Fprintln(stderr, "Press Ctrl+D to exit")
	}
	ensureHistoryFilePermissions(cfg.historyFile)
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("line reader: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	ctx := context.Background()
	for {
		line, err := rl.ReadSlice()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WithError(err).Warn("line reader failed")
			}
			return nil
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		src := string(line)
		out := rt.RepContext(ctx, "stdin", src)
		if cfg.diagnostics && !rt.Errors.Empty() {
			r := &diagnostic.Renderer{
				Color:   cfg.color,
				Sources: map[string][]byte{"stdin": line},
			}
			_ = r.RenderAll(stderr, ErrorDiagnostics(rt.Errors))
			if rt.ShowComments && !rt.Comments.Empty() {
				out = rt.Comments.Collapse()
			} else {
				continue
			}
		}
		if out == "" {
			continue
		}
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		fmt.Fprint(stderr, out) //nolint:errcheck // best-effort REPL output
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mal_history")
}

// ensureHistoryFilePermissions creates path if needed and restricts it to
// the owner.  Failures are ignored, readline reports them when it opens the
// file.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path comes from configuration
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
