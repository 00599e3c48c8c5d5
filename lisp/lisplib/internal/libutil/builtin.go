// Copyright © 2018 The ELPS authors

package libutil

import "github.com/luthersystems/mal/lisp"

func Function(name string, fun lisp.Builtin) *Builtin {
	return &Builtin{name, fun, ""}
}

func FunctionDoc(name string, fun lisp.Builtin, docs string) *Builtin {
	return &Builtin{name, fun, docs}
}

type Builtin struct {
	name string
	fun  lisp.Builtin
	docs string
}

func (fun *Builtin) Name() string {
	return fun.name
}

func (fun *Builtin) Eval(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
	return fun.fun(rt, args)
}

func (fun *Builtin) Docstring() string {
	return fun.docs
}

// Register binds each builtin in the root environment of rt.
func Register(rt *lisp.Runtime, builtins ...*Builtin) {
	for _, fn := range builtins {
		rt.Register(fn.name, fn.docs, fn.fun)
	}
}
