// Copyright © 2018 The ELPS authors

package lisp

import (
	"github.com/luthersystems/mal/gc"
	"github.com/luthersystems/mal/parser/token"
	"github.com/luthersystems/mal/text"
)

// ValueType is the closed set of runtime value kinds.
type ValueType uint8

const (
	VEOI ValueType = iota
	VError
	VNil
	VBool
	VInt
	VDecimal
	VSymbol
	VKeyword
	VString
	VList
	VVector
	VHashMap
	VFunction
	VEnv
	numValueTypes
)

func (t ValueType) String() string {
	typeStrings := [numValueTypes]string{
		VEOI:      "eoi",
		VError:    "error",
		VNil:      "nil",
		VBool:     "boolean",
		VInt:      "integer",
		VDecimal:  "decimal",
		VSymbol:   "symbol",
		VKeyword:  "keyword",
		VString:   "string",
		VList:     "list",
		VVector:   "vector",
		VHashMap:  "hashmap",
		VFunction: "function",
		VEnv:      "environment",
	}
	if t >= numValueTypes {
		return "unknown"
	}
	return typeStrings[t]
}

// Builtin is the implementation of a native function.  Args never include a
// Nil list terminator but do include an improper tail.
type Builtin func(rt *Runtime, args []*Value) *Value

// Function describes a native function bound in an environment.
type Function struct {
	Name string
	Doc  string
	Fn   Builtin
}

// Value is the tagged representation of every runtime value.  The fields in
// use depend on Type.
type Value struct {
	gc.Header
	Type ValueType

	Int   int64
	Float float64
	Bool  bool

	// Str holds the text of symbols, keywords and strings and the message of
	// errors.
	Str     *text.Buffer
	ErrKind ErrorKind

	// Cells holds the elements of lists and vectors followed by a terminator,
	// which is Nil unless the form was read with an improper tail.
	Cells []*Value
	Map   *Table
	Env   *Env
	Fun   *Function

	// Token is the token the value was read from, if any.
	Token *token.Token

	sig     *text.Buffer
	hash    uint32
	hashSet bool
}

var _ gc.Object = (*Value)(nil)

// Children implements gc.Object.
func (v *Value) Children(visit func(gc.Object)) {
	if v.Str != nil {
		visit(v.Str)
	}
	for _, c := range v.Cells {
		if c != nil {
			visit(c)
		}
	}
	if v.Map != nil {
		visit(v.Map)
	}
	if v.Env != nil {
		visit(v.Env)
	}
	if v.Token != nil {
		visit(v.Token)
	}
	if v.sig != nil {
		visit(v.sig)
	}
}

// Release implements gc.Releaser.
func (v *Value) Release() {
	v.Cells = nil
	v.Map = nil
	v.Env = nil
	v.Token = nil
	v.sig = nil
}

func (v *Value) IsNil() bool {
	return v.Type == VNil
}

func (v *Value) IsError() bool {
	return v.Type == VError
}

func (v *Value) IsNumeric() bool {
	return v.Type == VInt || v.Type == VDecimal
}

// IsSeq reports whether v is a list or a vector.
func (v *Value) IsSeq() bool {
	return v.Type == VList || v.Type == VVector
}

// Len returns the number of elements in a list or vector, not counting the
// terminator, or the number of entries in a hashmap.
func (v *Value) Len() int {
	switch v.Type {
	case VList, VVector:
		if len(v.Cells) == 0 {
			return 0
		}
		return len(v.Cells) - 1
	case VHashMap:
		return v.Map.Len()
	default:
		return 0
	}
}

// Elems returns the elements of a list or vector without the terminator.
func (v *Value) Elems() []*Value {
	if len(v.Cells) == 0 {
		return nil
	}
	return v.Cells[:len(v.Cells)-1]
}

// Tail returns the terminator of a list or vector.
func (v *Value) Tail() *Value {
	if len(v.Cells) == 0 {
		return nil
	}
	return v.Cells[len(v.Cells)-1]
}

// Items returns the elements of a list or vector followed by its tail when
// the tail is not Nil.
func (v *Value) Items() []*Value {
	tail := v.Tail()
	if tail == nil || tail.IsNil() {
		return v.Elems()
	}
	return v.Cells
}

// Text returns the text of a symbol, keyword, string or error.
func (v *Value) Text() string {
	if v.Str == nil {
		return ""
	}
	return v.Str.String()
}

// Signature returns the canonical "kind: text" form of v.  Two values are
// structurally equal when their signatures are equal.  The signature is
// computed once and cached.
func (v *Value) Signature() *text.Buffer {
	if v.sig == nil {
		v.sig = signature(v)
	}
	return v.sig
}

// Hash returns the hash of the signature of v.
func (v *Value) Hash() uint32 {
	if !v.hashSet {
		v.hash = v.Signature().Hash()
		v.hashSet = true
	}
	return v.hash
}

// Equal reports structural equality.
func (v *Value) Equal(other *Value) bool {
	if v == other {
		return true
	}
	return v.Hash() == other.Hash() && v.Signature().Equal(other.Signature())
}

func (v *Value) invalidate() {
	v.sig = nil
	v.hashSet = false
}

func signature(v *Value) *text.Buffer {
	sig := text.NewString(v.Type.String())
	gc.Tag(sig, gc.KindText)
	sig.ExtendString(": ")
	switch v.Type {
	case VEOI:
		sig.ExtendString("eoi")
	case VSymbol, VKeyword, VString, VError:
		sig.ExtendBuffer(v.Str)
	case VFunction:
		sig.ExtendString(v.Fun.Name)
	default:
		writeValue(sig, v, false)
	}
	return sig
}

// ErrorVal is an error Value viewed as a Go error.
type ErrorVal Value

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return e.ErrKind.String() + " ERROR: " + (*Value)(e).Text()
}

// Kind returns the error taxonomy of e.
func (e *ErrorVal) Kind() ErrorKind {
	return e.ErrKind
}

// GoError returns an error that represents v if v is an error Value.
// Otherwise GoError returns nil.
func GoError(v *Value) error {
	if v == nil || v.Type != VError {
		return nil
	}
	return (*ErrorVal)(v)
}
