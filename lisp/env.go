// Copyright © 2018 The ELPS authors

package lisp

import (
	"github.com/luthersystems/mal/gc"
)

// Env is a lexical scope.  Bindings are stored in a Table keyed by symbol
// signature and lookups fall back to the Outer scope.
type Env struct {
	gc.Header
	Outer    *Env
	Bindings *Table
}

var _ gc.Object = (*Env)(nil)

// Put binds k to v in env itself, never in an outer scope.
func (env *Env) Put(k, v *Value) {
	env.Bindings.Set(k, v)
}

// Get returns the value bound to k in the nearest scope defining it.  Get
// does not modify any scope.
func (env *Env) Get(k *Value) (*Value, bool) {
	for e := env; e != nil; e = e.Outer {
		if v, ok := e.Bindings.Get(k); ok {
			return v, true
		}
	}
	return nil, false
}

// Depth returns the number of scopes enclosing env.
func (env *Env) Depth() int {
	var n int
	for e := env.Outer; e != nil; e = e.Outer {
		n++
	}
	return n
}

// Children implements gc.Object.
func (env *Env) Children(visit func(gc.Object)) {
	if env.Outer != nil {
		visit(env.Outer)
	}
	if env.Bindings != nil {
		visit(env.Bindings)
	}
}

// Release implements gc.Releaser.
func (env *Env) Release() {
	env.Outer = nil
	env.Bindings = nil
}
