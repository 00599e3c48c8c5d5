// Copyright © 2018 The ELPS authors

// Package libmath provides the arithmetic natives.
package libmath

import (
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib/internal/libutil"
)

// LoadPackage binds the arithmetic natives in the root environment of rt.
func LoadPackage(rt *lisp.Runtime) error {
	libutil.Register(rt, builtins...)
	return nil
}

// Builtins returns the natives bound by LoadPackage.
func Builtins() []*libutil.Builtin {
	return builtins
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("+", fold(add), `Returns the sum of the arguments,
		or 0 when called without arguments. The result is a decimal if any
		argument is a decimal.`),
	libutil.FunctionDoc("-", fold(sub), `Subtracts each remaining argument
		from the first, or returns 0 when called without arguments. A single
		argument is returned unchanged.`),
	libutil.FunctionDoc("*", fold(mul), `Returns the product of the
		arguments, or 1 when called without arguments.`),
	libutil.FunctionDoc("/", fold(div), `Divides the first argument by each
		remaining argument, or returns 1 when called without arguments.
		Integer division truncates toward zero and an integer division by
		zero is an error. Decimal division follows IEEE 754.`),
}

// operator is a left fold over numbers.  Integer results wrap on overflow.
type operator struct {
	name     string
	identity int64
	ints     func(a, b int64) (int64, bool)
	decimals func(a, b float64) float64
}

var add = &operator{
	name:     "+",
	identity: 0,
	ints:     func(a, b int64) (int64, bool) { return a + b, true },
	decimals: func(a, b float64) float64 { return a + b },
}

var sub = &operator{
	name:     "-",
	identity: 0,
	ints:     func(a, b int64) (int64, bool) { return a - b, true },
	decimals: func(a, b float64) float64 { return a - b },
}

var mul = &operator{
	name:     "*",
	identity: 1,
	ints:     func(a, b int64) (int64, bool) { return a * b, true },
	decimals: func(a, b float64) float64 { return a * b },
}

var div = &operator{
	name:     "/",
	identity: 1,
	ints: func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	},
	decimals: func(a, b float64) float64 { return a / b },
}

func fold(op *operator) lisp.Builtin {
	return func(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value {
		if len(args) == 0 {
			return rt.Int(op.identity)
		}
		var (
			decimal bool
			n       int64
			f       float64
		)
		for i, arg := range args {
			switch arg.Type {
			case lisp.VInt:
				switch {
				case i == 0:
					n = arg.Int
				case decimal:
					f = op.decimals(f, float64(arg.Int))
				default:
					var ok bool
					n, ok = op.ints(n, arg.Int)
					if !ok {
						return rt.Errorf(lisp.ErrRuntime, arg.Token, "division by zero")
					}
				}
			case lisp.VDecimal:
				switch {
				case i == 0:
					f = arg.Float
				case decimal:
					f = op.decimals(f, arg.Float)
				default:
					f = op.decimals(float64(n), arg.Float)
				}
				decimal = true
			default:
				return rt.Errorf(lisp.ErrRuntime, arg.Token, "args to '%s' are not numbers '%s'", op.name, lisp.PrintString(arg))
			}
		}
		if decimal {
			return rt.Decimal(f)
		}
		return rt.Int(n)
	}
}
