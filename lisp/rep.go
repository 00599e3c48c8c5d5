// Copyright © 2024 The ELPS authors

package lisp

import (
	"context"
	"errors"

	"github.com/luthersystems/mal/text"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrNoReader is returned when source is evaluated by a runtime without a
// Reader.
var ErrNoReader = errors.New("runtime has no reader")

// Read parses src into forms.  The error sink is reset first, so errors
// reported while reading belong to this cycle.
func (rt *Runtime) Read(name string, src string) ([]*Value, error) {
	if rt.Reader == nil {
		return nil, ErrNoReader
	}
	rt.Errors.Reset()
	buf := text.NewString(src)
	return rt.Reader.Read(rt, name, buf), nil
}

// Rep reads, evaluates and prints src in the root environment, then collects
// garbage.
func (rt *Runtime) Rep(src string) string {
	return rt.RepContext(context.Background(), "stdin", src)
}

// RepContext is Rep with an explicit context and source name.  The cycle is
// recorded as a span with child spans for each phase.
//
// Every form read from src is evaluated in order and the last result is
// printed.  If any error was reported during the cycle the collapsed error
// log is returned instead of the result.
func (rt *Runtime) RepContext(ctx context.Context, name, src string) string {
	ctx, span := rt.Tracer.Start(ctx, "mal.rep")
	defer span.End()
	span.SetAttributes(attribute.String("mal.source", name))

	rt.Errors.Reset()
	rt.Comments.Reset()

	out := rt.rep(ctx, name, src)
	if !rt.Errors.Empty() {
		out = rt.Errors.Collapse()
		span.SetStatus(codes.Error, "evaluation error")
		span.SetAttributes(attribute.Int("mal.errors", rt.Errors.Len()))
	}
	if rt.ShowComments && !rt.Comments.Empty() {
		if out != "" && out[len(out)-1] != '\n' {
			out += "\n"
		}
		out += rt.Comments.Collapse()
	}

	_, gcSpan := rt.Tracer.Start(ctx, "mal.gc")
	stats := rt.GC(ctx)
	gcSpan.SetAttributes(attribute.Int("gc.freed", stats.Freed))
	gcSpan.End()
	return out
}

func (rt *Runtime) rep(ctx context.Context, name, src string) string {
	_, span := rt.Tracer.Start(ctx, "mal.read")
	forms, err := rt.Read(name, src)
	span.End()
	if err != nil {
		rt.Errorf(ErrNone, nil, "%v", err)
		return ""
	}

	_, span = rt.Tracer.Start(ctx, "mal.eval")
	result := rt.eoi
	for _, form := range forms {
		if !rt.Errors.Empty() {
			break
		}
		result = rt.Eval(form, rt.Root)
	}
	span.End()

	_, span = rt.Tracer.Start(ctx, "mal.print")
	defer span.End()
	if !rt.Errors.Empty() {
		return ""
	}
	out := rt.Print(result, false)
	if out.IsError() {
		return ""
	}
	return out.Text()
}

// LoadString evaluates every form in src and returns the last result.  The
// error sink is reset first and is left populated for the caller to inspect.
// No collection is run.
func (rt *Runtime) LoadString(name, src string) (*Value, error) {
	rt.Errors.Reset()
	rt.Comments.Reset()
	forms, err := rt.Read(name, src)
	if err != nil {
		return nil, err
	}
	result := rt.eoi
	for _, form := range forms {
		if form.IsError() {
			return form, GoError(form)
		}
		result = rt.Eval(form, rt.Root)
		if result.IsError() {
			break
		}
	}
	return result, GoError(result)
}
