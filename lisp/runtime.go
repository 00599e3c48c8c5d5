// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"io"

	"github.com/luthersystems/mal/gc"
	"github.com/luthersystems/mal/text"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the default tracer used for read/eval/print
// spans.
const TracerName = "github.com/luthersystems/mal/lisp"

// Reader parses source text into forms.
type Reader interface {
	// Read returns the forms in src.  Reading stops at the end of input or
	// when rt.Errors is no longer empty, in which case the last form returned
	// is the reader error.
	Read(rt *Runtime, name string, src *text.Buffer) []*Value
}

type specialForm func(rt *Runtime, ast *Value, env *Env) *Value

// Runtime owns every object of a single interpreter: the heap, the root
// environment, the diagnostic sinks and the Nil, True and False singletons.
// A Runtime is not safe for concurrent use.
type Runtime struct {
	Heap     *gc.Heap
	Root     *Env
	Errors   *Sink
	Comments *Sink
	Reader   Reader
	Log      logrus.FieldLogger
	Tracer   trace.Tracer

	// ShowComments appends the collapsed comment sink to the output of Rep.
	ShowComments bool

	nilv   *Value
	truev  *Value
	falsev *Value
	eoi    *Value

	// symbols interns symbol text so every symbol with the same name shares
	// its text and signature.
	symbols  *Table
	specials map[string]specialForm

	// callSite is the form being applied, used to position errors raised
	// by natives.
	callSite *Value
}

// NewRuntime returns a Runtime with an empty root environment.  The runtime
// has no Reader unless one is supplied with WithReader.
func NewRuntime(config ...Config) (*Runtime, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.WarnLevel)
	rt := &Runtime{
		Heap:     gc.NewHeap(log),
		Errors:   NewErrorSink(),
		Comments: NewCommentSink(),
		Log:      log,
		Tracer:   otel.Tracer(TracerName),
	}
	rt.specials = map[string]specialForm{
		"def!": (*Runtime).evalDef,
		"let*": (*Runtime).evalLet,
	}
	rt.nilv = rt.singleton(&Value{Type: VNil})
	rt.truev = rt.singleton(&Value{Type: VBool, Bool: true})
	rt.falsev = rt.singleton(&Value{Type: VBool, Bool: false})
	rt.eoi = rt.singleton(&Value{Type: VEOI})
	rt.Heap.Track(rt.Errors, gc.KindSink)
	rt.Heap.Track(rt.Comments, gc.KindSink)
	rt.symbols = rt.NewTable(0)
	rt.Root = rt.NewEnv(nil)
	for _, fn := range config {
		if err := fn(rt); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

func (rt *Runtime) singleton(v *Value) *Value {
	rt.Heap.Track(v, gc.KindValue)
	rt.Heap.Protect(v)
	return v
}

// roots returns the objects from which collection starts.
func (rt *Runtime) roots() []gc.Object {
	return []gc.Object{rt.Root, rt.symbols, rt.Errors, rt.Comments}
}

// GC runs a full collection rooted at the root environment and the pending
// sinks.  GC must not be called while a form is being evaluated.
func (rt *Runtime) GC(ctx context.Context) gc.Stats {
	return rt.Heap.Collect(ctx, rt.roots()...)
}

// Close releases every object in the heap.  The runtime cannot be used
// afterwards.
func (rt *Runtime) Close() {
	n := rt.Heap.Free()
	rt.Log.WithField("objects", n).Debug("runtime closed")
	rt.Root = nil
	rt.symbols = nil
}

// Define binds name to v in the root environment.
func (rt *Runtime) Define(name string, v *Value) {
	rt.Root.Put(rt.Symbol(name), v)
}

// Lookup returns the value bound to name in the root environment.
func (rt *Runtime) Lookup(name string) (*Value, bool) {
	return rt.Root.Get(rt.Symbol(name))
}

// Register binds a native function in the root environment.
func (rt *Runtime) Register(name, doc string, fn Builtin) {
	rt.Define(name, rt.Function(name, doc, fn))
}

// Functions returns every native function bound in the root environment.
func (rt *Runtime) Functions() []*Function {
	var funs []*Function
	rt.Root.Bindings.Range(func(_, v *Value) bool {
		if v.Type == VFunction {
			funs = append(funs, v.Fun)
		}
		return true
	})
	return funs
}

// Symbols returns the names bound in the root environment.
func (rt *Runtime) Symbols() []string {
	var names []string
	rt.Root.Bindings.Range(func(k, _ *Value) bool {
		names = append(names, k.Text())
		return true
	})
	return names
}
