// Copyright © 2018 The ELPS authors

package lisp

import (
	"math"
	"strconv"
	"strings"

	"github.com/luthersystems/mal/text"
)

// Print renders v as surface syntax.  When readable is true strings are
// written with their escape sequences.  Print returns a PRINTER error for a
// value of unknown kind.
func (rt *Runtime) Print(v *Value, readable bool) *Value {
	if v.Type >= numValueTypes {
		return rt.Errorf(ErrPrinter, v.Token, "unknown type of object")
	}
	buf := text.NewString("")
	writeValue(buf, v, readable)
	return rt.StringText(buf)
}

// PrintString renders v as surface syntax without escapes.
func PrintString(v *Value) string {
	buf := text.NewString("")
	writeValue(buf, v, false)
	return buf.String()
}

func writeValue(buf *text.Buffer, v *Value, readable bool) {
	switch v.Type {
	case VEOI:
	case VError:
		buf.ExtendString(v.Token.Position())
		buf.Append(' ')
		buf.ExtendBuffer(v.Str)
	case VNil:
		buf.ExtendString("nil")
	case VBool:
		if v.Bool {
			buf.ExtendString("true")
		} else {
			buf.ExtendString("false")
		}
	case VInt:
		buf.ExtendString(strconv.FormatInt(v.Int, 10))
	case VDecimal:
		buf.ExtendString(formatDecimal(v.Float))
	case VSymbol:
		buf.ExtendBuffer(v.Str)
	case VKeyword:
		buf.Append(':')
		buf.ExtendBuffer(v.Str)
	case VString:
		buf.Append('"')
		if readable {
			writeEscaped(buf, v.Str.Bytes())
		} else {
			buf.ExtendBuffer(v.Str)
		}
		buf.Append('"')
	case VList:
		writeSeq(buf, v, '(', ')', readable)
	case VVector:
		writeSeq(buf, v, '[', ']', readable)
	case VHashMap:
		writeTable(buf, v.Map, readable)
	case VFunction:
		buf.ExtendString(v.Fun.Name)
	case VEnv:
		writeTable(buf, v.Env.Bindings, readable)
	default:
		buf.ExtendString("#<unknown>")
	}
}

func writeSeq(buf *text.Buffer, v *Value, open, close byte, readable bool) {
	buf.Append(open)
	for i, c := range v.Elems() {
		if i > 0 {
			buf.Append(' ')
		}
		writeValue(buf, c, readable)
	}
	if tail := v.Tail(); tail != nil && !tail.IsNil() {
		buf.ExtendString(" : ")
		writeValue(buf, tail, readable)
	}
	buf.Append(close)
}

func writeTable(buf *text.Buffer, t *Table, readable bool) {
	buf.Append('{')
	first := true
	t.Range(func(k, v *Value) bool {
		if !first {
			buf.Append(' ')
		}
		first = false
		writeValue(buf, k, readable)
		buf.ExtendString(": ")
		writeValue(buf, v, readable)
		return true
	})
	buf.Append('}')
}

func writeEscaped(buf *text.Buffer, p []byte) {
	for _, c := range p {
		switch c {
		case '\n':
			buf.ExtendString(`\n`)
		case '\t':
			buf.ExtendString(`\t`)
		case '\r':
			buf.ExtendString(`\r`)
		case '"':
			buf.ExtendString(`\"`)
		case '\\':
			buf.ExtendString(`\\`)
		default:
			buf.Append(c)
		}
	}
}

// formatDecimal keeps a decimal point on integral values so decimals never
// read back as integers.
func formatDecimal(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
