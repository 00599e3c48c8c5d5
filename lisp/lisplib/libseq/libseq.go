// Copyright © 2024 The ELPS authors

// Package libseq provides natives that build and take apart lists, vectors
// and hashmaps.
package libseq

import (
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib/internal/libutil"
)

// LoadPackage binds the sequence natives in the root environment of rt.
func LoadPackage(rt *lisp.Runtime) error {
	libutil.Register(rt, builtins...)
	return nil
}

// Builtins returns the natives bound by LoadPackage.
func Builtins() []*libutil.Builtin {
	return builtins
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("list", builtinList, `Returns a list of the
		arguments. List and vector arguments are spliced in one level and a
		hashmap argument contributes its keys.`),
	libutil.FunctionDoc("vector", builtinVector, `Returns a vector of the
		arguments, splicing them in the same way as list.`),
	libutil.FunctionDoc("hashmap", builtinHashMap, `Returns a hashmap built
		from the arguments. A scalar argument is a key whose value is the
		argument following it. A list or vector argument contributes its
		elements as key value pairs and a hashmap argument contributes its
		entries. A key with no value maps to nil.`),
	libutil.FunctionDoc("zip", builtinZip, `Takes two sequences and returns
		a flat list pairing each element of the first with the element of
		the second at the same position. Elements of the first with no
		partner are paired with nil. The first sequence must not be shorter
		than the second.`),
	libutil.FunctionDoc("keys", builtinKeys, `Returns a list of the keys of
		a hashmap.`),
	libutil.FunctionDoc("vals", builtinVals, `Returns a list of the values of
		a hashmap.`),
}

// splice flattens args one level.
func splice(args []*lisp.Value) []*lisp.Value {
	var items []*lisp.Value
	for _, arg := range args {
		switch arg.Type {
		case lisp.VList, lisp.VVector:
			items = append(items, arg.Items()...)
		case lisp.VHashMap:
			arg.Map.Range(func(k, _ *lisp.Value) bool {
				items = append(items, k)
				return true
			})
		default:
			items = append(items, arg)
		}
	}
	return items
}

func builtinList(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
	return rt.List(splice(args), nil)
}

func builtinVector(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
	return rt.Vector(splice(args), nil)
}

func builtinHashMap(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
	t := rt.NewTable(len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg.Type {
		case lisp.VList, lisp.VVector:
			setPairs(rt, t, arg.Items())
		case lisp.VHashMap:
			arg.Map.Range(func(k, v *lisp.Value) bool {
				t.Set(k, v)
				return true
			})
		default:
			if i+1 < len(args) {
				t.Set(arg, args[i+1])
				i++
			} else {
				t.Set(arg, rt.Nil())
			}
		}
	}
	return rt.HashMap(t)
}

func setPairs(rt *lisp.Runtime, t *lisp.Table, items []*lisp.Value) {
	for i := 0; i < len(items); i += 2 {
		if i+1 < len(items) {
			t.Set(items[i], items[i+1])
		} else {
			t.Set(items[i], rt.Nil())
		}
	}
}

func builtinZip(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
	if len(args) != 2 || !args[0].IsSeq() || !args[1].IsSeq() {
		return rt.Errorf(lisp.ErrRuntime, nil, "zip expects two sequences")
	}
	first, second := args[0].Items(), args[1].Items()
	if len(first) < len(second) {
		return rt.Errorf(lisp.ErrRuntime, nil, "in zip first %s has to be equal or longer then second %s",
			args[0].Type, args[1].Type)
	}
	out := make([]*lisp.Value, 0, 2*len(first))
	for i, k := range first {
		v := rt.Nil()
		if i < len(second) {
			v = second[i]
		}
		out = append(out, k, v)
	}
	return rt.List(out, nil)
}

func builtinKeys(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
	return entries(rt, "keys", args, func(k, _ *lisp.Value) *lisp.Value { return k })
}

func builtinVals(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
	return entries(rt, "vals", args, func(_, v *lisp.Value) *lisp.Value { return v })
}

func entries(rt *lisp.Runtime, name string, args []*lisp.Value, pick func(k, v *lisp.Value) *lisp.Value) *lisp.Value {
	if len(args) != 1 || args[0].Type != lisp.VHashMap {
		return rt.Errorf(lisp.ErrRuntime, nil, "%s expects a hashmap", name)
	}
	var items []*lisp.Value
	args[0].Map.Range(func(k, v *lisp.Value) bool {
		items = append(items, pick(k, v))
		return true
	})
	return rt.List(items, nil)
}
