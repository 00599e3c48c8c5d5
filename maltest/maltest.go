// Copyright © 2018 The ELPS authors

// Package maltest runs sequences of expressions through a runtime and checks
// what the rep cycle prints.
package maltest

import (
	"strings"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.Runtime.
type TestSequence []struct {
	Expr   string // lisp source for one rep cycle
	Result string // the printed result, or the collapsed error log
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewRuntime returns a runtime with the native library loaded whose logs are
// written to the test log.  The runtime is closed when the test finishes.
func NewRuntime(t testing.TB, config ...lisp.Config) *lisp.Runtime {
	t.Helper()
	log, w := NewFieldLogger(t)
	config = append([]lisp.Config{lisp.WithLogger(log)}, config...)
	rt, err := lisplib.NewRuntime(config...)
	if err != nil {
		t.Fatalf("failed to initialize runtime: %v", err)
	}
	t.Cleanup(func() {
		rt.Close()
		w.Flush()
	})
	return rt
}

// RunTestSuite runs each TestSequence in tests on an isolated lisp.Runtime.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			rt := NewRuntime(t)
			for j, expr := range test.TestSequence {
				result := strings.TrimSuffix(rt.Rep(expr.Expr), "\n")
				expect := strings.TrimSuffix(expr.Result, "\n")
				if result != expect {
					t.Errorf("test %d %q: expr %d: expected result %q (got %q)", i, test.Name, j, expect, result)
				}
			}
		})
	}
}

// RunBenchmark runs a standard benchmark that evaluates source on a fresh
// runtime for each iteration.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		rt, err := lisplib.NewRuntime()
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		out := rt.Rep(source)
		b.StopTimer()
		if !rt.Errors.Empty() {
			b.Fatalf("rep failed: %s", out)
		}
		rt.Close()
	}
}
