// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"

	"github.com/luthersystems/mal/gc"
	"github.com/luthersystems/mal/parser/token"
	"github.com/luthersystems/mal/text"
	"github.com/sirupsen/logrus"
)

// track links v and its text into the heap.
func (rt *Runtime) track(v *Value) *Value {
	if v.Str != nil {
		rt.Heap.Track(v.Str, gc.KindText)
	}
	rt.Heap.Track(v, gc.KindValue)
	return v
}

// Nil returns the Nil singleton.
func (rt *Runtime) Nil() *Value {
	return rt.nilv
}

// True returns the true singleton.
func (rt *Runtime) True() *Value {
	return rt.truev
}

// False returns the false singleton.
func (rt *Runtime) False() *Value {
	return rt.falsev
}

// Bool returns the singleton for b.
func (rt *Runtime) Bool(b bool) *Value {
	if b {
		return rt.truev
	}
	return rt.falsev
}

// EOI returns the end-of-input singleton.
func (rt *Runtime) EOI() *Value {
	return rt.eoi
}

// Int returns a new integer.
func (rt *Runtime) Int(n int64) *Value {
	return rt.track(&Value{Type: VInt, Int: n})
}

// Decimal returns a new decimal.
func (rt *Runtime) Decimal(f float64) *Value {
	return rt.track(&Value{Type: VDecimal, Float: f})
}

// String returns a new string holding s.
func (rt *Runtime) String(s string) *Value {
	return rt.StringText(text.NewString(s))
}

// StringText returns a new string which takes ownership of buf.
func (rt *Runtime) StringText(buf *text.Buffer) *Value {
	return rt.track(&Value{Type: VString, Str: buf})
}

// Keyword returns a new keyword.  The name does not include the colon.
func (rt *Runtime) Keyword(name string) *Value {
	return rt.track(&Value{Type: VKeyword, Str: text.NewString(name)})
}

// intern returns the canonical symbol for name.
func (rt *Runtime) intern(name string) *Value {
	sig := text.NewString(VSymbol.String() + ": " + name)
	if v, ok := rt.symbols.GetSignature(sig.Bytes(), sig.Hash()); ok {
		return v
	}
	v := rt.track(&Value{Type: VSymbol, Str: text.NewString(name)})
	v.sig = sig
	rt.Heap.Track(sig, gc.KindText)
	rt.symbols.Set(v, v)
	return v
}

// Symbol returns a new symbol.  Symbols with the same name share their text
// and signature with an interned canonical symbol.
func (rt *Runtime) Symbol(name string) *Value {
	canon := rt.intern(name)
	return rt.track(&Value{
		Type:    VSymbol,
		Str:     canon.Str,
		sig:     canon.sig,
		hash:    canon.Hash(),
		hashSet: true,
	})
}

// List returns a new list of elems terminated by tail.  A nil tail
// terminates the list with Nil.
func (rt *Runtime) List(elems []*Value, tail *Value) *Value {
	return rt.seq(VList, elems, tail)
}

// Vector returns a new vector of elems terminated by tail.
func (rt *Runtime) Vector(elems []*Value, tail *Value) *Value {
	return rt.seq(VVector, elems, tail)
}

// seq builds a list or vector.  The elements are copied.
func (rt *Runtime) seq(typ ValueType, elems []*Value, tail *Value) *Value {
	if tail == nil {
		tail = rt.nilv
	}
	cells := make([]*Value, len(elems)+1)
	copy(cells, elems)
	cells[len(elems)] = tail
	return rt.track(&Value{Type: typ, Cells: cells})
}

// NewTable returns a new heap tracked Table.
func (rt *Runtime) NewTable(capacity int) *Table {
	t := NewTable(capacity)
	rt.Heap.Track(t, gc.KindTable)
	return t
}

// HashMap returns a new hashmap backed by t.
func (rt *Runtime) HashMap(t *Table) *Value {
	return rt.track(&Value{Type: VHashMap, Map: t})
}

// NewEnv returns a new scope enclosed by outer.
func (rt *Runtime) NewEnv(outer *Env) *Env {
	env := &Env{Outer: outer, Bindings: rt.NewTable(0)}
	rt.Heap.Track(env, gc.KindEnv)
	return env
}

// EnvValue wraps env as a first class value.
func (rt *Runtime) EnvValue(env *Env) *Value {
	return rt.track(&Value{Type: VEnv, Env: env})
}

// Function returns a new native function value.
func (rt *Runtime) Function(name, doc string, fn Builtin) *Value {
	return rt.track(&Value{Type: VFunction, Fun: &Function{Name: name, Doc: doc, Fn: fn}})
}

// Errorf returns a new error value positioned at tok and appends it to the
// error sink.  When tok is nil the error is positioned at the form currently
// being applied.
func (rt *Runtime) Errorf(kind ErrorKind, tok *token.Token, format string, v ...interface{}) *Value {
	if tok == nil && rt.callSite != nil {
		tok = rt.callSite.Token
	}
	msg := fmt.Sprintf(format, v...)
	rt.Errors.Append(kind, tok, msg)
	rt.Log.WithFields(logrus.Fields{
		"kind":     kind.String(),
		"position": tok.Position(),
	}).Debug(msg)
	return rt.track(&Value{
		Type:    VError,
		ErrKind: kind,
		Str:     text.NewString(msg),
		Token:   tok,
	})
}
