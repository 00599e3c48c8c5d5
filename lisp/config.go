// Copyright © 2018 The ELPS authors

package lisp

import (
	"errors"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Config is a function that configures a runtime.
type Config func(rt *Runtime) error

// WithReader returns a Config that makes the runtime use r to parse source
// text.  There is no default Reader.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		rt.Reader = r
		return nil
	}
}

// WithLogger returns a Config that sends runtime and collector logs to log.
func WithLogger(log logrus.FieldLogger) Config {
	return func(rt *Runtime) error {
		if log == nil {
			return errors.New("nil logger")
		}
		rt.Log = log
		rt.Heap.Log = log
		return nil
	}
}

// WithTracer returns a Config that records read/eval/print spans with
// tracer instead of the global tracer provider.
func WithTracer(tracer trace.Tracer) Config {
	return func(rt *Runtime) error {
		if tracer == nil {
			return errors.New("nil tracer")
		}
		rt.Tracer = tracer
		return nil
	}
}

// WithComments returns a Config that controls whether comments collected
// while reading are shown after each result.
func WithComments(show bool) Config {
	return func(rt *Runtime) error {
		rt.ShowComments = show
		return nil
	}
}

// WithLibrary returns a Config that calls load to bind native functions
// into the root environment.
func WithLibrary(load func(rt *Runtime) error) Config {
	return load
}
