// Copyright © 2018 The ELPS authors

package rdparser

import (
	"strconv"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser/token"
	"github.com/luthersystems/mal/text"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(rt *lisp.Runtime, name string, src *text.Buffer) []*lisp.Value {
	s := token.NewScanner(name, src)
	p := New(rt, s)
	return p.ParseProgram()
}

// Parser is a lisp reader.  Tokens and values it creates are tracked by the
// runtime heap and comments are collected in the runtime comment sink.
type Parser struct {
	rt  *lisp.Runtime
	src *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(rt *lisp.Runtime, src *TokenSource) *Parser {
	return &Parser{
		rt:  rt,
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(rt *lisp.Runtime, scanner *token.Scanner) *Parser {
	return NewFromSource(rt, NewTokenSource(scanner, rt.Heap, rt.Comments))
}

// Parse reads the next form.  Parse returns the EOI value at the end of input
// and once an error has been reported to the runtime.
func (p *Parser) Parse() *lisp.Value {
	if p.src.IsEOI() || !p.rt.Errors.Empty() {
		return p.rt.EOI()
	}
	return p.ParseExpression()
}

// ParseProgram reads forms until the end of input.  If an error is reported
// the error is the last form returned.
func (p *Parser) ParseProgram() []*lisp.Value {
	var exprs []*lisp.Value
	for {
		expr := p.Parse()
		if expr.Type == lisp.VEOI {
			return exprs
		}
		exprs = append(exprs, expr)
		if expr.IsError() {
			return exprs
		}
	}
}

// ParseExpression parses a single expression.  At the end of input
// ParseExpression returns the EOI value.
func (p *Parser) ParseExpression() *lisp.Value {
	return p.parseExpression()(p)
}

func (p *Parser) parseExpression() func(p *Parser) *lisp.Value {
	switch p.PeekType() {
	case token.EOI:
		return (*Parser).ParseEOI
	case token.ERROR:
		return (*Parser).ParseLexError
	case token.INTEGER:
		return (*Parser).ParseLiteralInt
	case token.DECIMAL:
		return (*Parser).ParseLiteralDecimal
	case token.STRING:
		return (*Parser).ParseLiteralString
	case token.KEYWORD:
		return (*Parser).ParseKeyword
	case token.SYMBOL:
		return (*Parser).ParseSymbol
	case token.QUOTE:
		return wrapped("quote")
	case token.BACKTICK:
		return wrapped("quasiquote")
	case token.TILDE:
		return wrapped("unquote")
	case token.TILDE_AT:
		return wrapped("splice-unquote")
	case token.AT:
		return wrapped("deref")
	case token.CARET:
		return (*Parser).ParseMeta
	case token.PAREN_L:
		return (*Parser).ParseList
	case token.BRACKET_L:
		return (*Parser).ParseVector
	case token.BRACE_L:
		return (*Parser).ParseHashMap
	case token.PAREN_R:
		return unexpected("unbalanced parenthesis, expected '('")
	case token.BRACKET_R:
		return unexpected("unbalanced brackets, expected '['")
	case token.BRACE_R:
		return unexpected("unbalanced braces, expected '{'")
	case token.COLON:
		return unexpected("unexpected colon character ':'")
	case token.BACKSLASH:
		return unexpected("unexpected backslash character '\\'")
	default:
		return unexpected("unexpected token")
	}
}

// ParseEOI returns the EOI value without consuming anything.
func (p *Parser) ParseEOI() *lisp.Value {
	return p.rt.EOI()
}

// ParseLexError turns an ERROR token into a reader error.
func (p *Parser) ParseLexError() *lisp.Value {
	tok := p.src.Next()
	return p.errorf(tok, "%s", tok.Text.String())
}

func (p *Parser) ParseLiteralInt() *lisp.Value {
	tok := p.src.Next()
	x, err := strconv.ParseInt(tok.Text.String(), 10, 64)
	if err != nil {
		return p.errorf(tok, "invalid integer literal '%s'", tok.Text.String())
	}
	return p.at(tok, p.rt.Int(x))
}

func (p *Parser) ParseLiteralDecimal() *lisp.Value {
	tok := p.src.Next()
	x, err := strconv.ParseFloat(tok.Text.String(), 64)
	if err != nil {
		return p.errorf(tok, "invalid decimal literal '%s'", tok.Text.String())
	}
	return p.at(tok, p.rt.Decimal(x))
}

func (p *Parser) ParseLiteralString() *lisp.Value {
	tok := p.src.Next()
	return p.at(tok, p.rt.String(tok.Text.String()))
}

func (p *Parser) ParseKeyword() *lisp.Value {
	tok := p.src.Next()
	return p.at(tok, p.rt.Keyword(tok.Text.String()))
}

// ParseSymbol reads a symbol.  The names nil, true and false read as the
// corresponding singletons.
func (p *Parser) ParseSymbol() *lisp.Value {
	tok := p.src.Next()
	switch name := tok.Text.String(); name {
	case "nil":
		return p.rt.Nil()
	case "true":
		return p.rt.True()
	case "false":
		return p.rt.False()
	default:
		return p.at(tok, p.rt.Symbol(name))
	}
}

// wrapped returns a parse function for a reader macro which expands to
// (name form).
func wrapped(name string) func(p *Parser) *lisp.Value {
	return func(p *Parser) *lisp.Value {
		tok := p.src.Next()
		form := p.parseOperand(tok)
		if form.IsError() {
			return form
		}
		sym := p.at(tok, p.rt.Symbol(name))
		return p.at(tok, p.rt.List([]*lisp.Value{sym, form}, nil))
	}
}

// ParseMeta reads ^meta form as (with-meta form meta).
func (p *Parser) ParseMeta() *lisp.Value {
	tok := p.src.Next()
	meta := p.parseOperand(tok)
	if meta.IsError() {
		return meta
	}
	form := p.parseOperand(tok)
	if form.IsError() {
		return form
	}
	sym := p.at(tok, p.rt.Symbol("with-meta"))
	return p.at(tok, p.rt.List([]*lisp.Value{sym, form, meta}, nil))
}

// parseOperand reads the form following a reader macro.
func (p *Parser) parseOperand(macro *token.Token) *lisp.Value {
	if p.src.IsEOI() {
		return p.errorf(macro, "unexpected end of input after '%s'", macro.Text.String())
	}
	return p.ParseExpression()
}

func (p *Parser) ParseList() *lisp.Value {
	return p.parseSeq(lisp.VList, token.PAREN_R, "unbalanced parenthesis, expected ')'")
}

func (p *Parser) ParseVector() *lisp.Value {
	return p.parseSeq(lisp.VVector, token.BRACKET_R, "unbalanced brackets, expected ']'")
}

// parseSeq reads the elements of a list or vector up to the closing token.
// A colon introduces an improper tail, which must be the last form.  A tail
// with no elements before it is preceded by nil.
func (p *Parser) parseSeq(typ lisp.ValueType, closer token.Type, unbalanced string) *lisp.Value {
	open := p.src.Next()
	var elems []*lisp.Value
	var tail *lisp.Value
	for {
		switch p.PeekType() {
		case token.EOI:
			return p.errorf(open, "%s", unbalanced)
		case closer:
			p.src.Scan()
			return p.at(open, p.seq(typ, elems, tail))
		case token.COLON:
			if tail != nil {
				return p.errorf(p.src.Peek(), "unexpected colon character ':'")
			}
			p.src.Scan()
			if p.src.IsEOI() {
				return p.errorf(open, "%s", unbalanced)
			}
			if len(elems) == 0 {
				elems = append(elems, p.rt.Nil())
			}
			tail = p.ParseExpression()
			if tail.IsError() {
				return tail
			}
		default:
			if tail != nil {
				return p.errorf(p.src.Peek(), "improper tail must be the last form")
			}
			elem := p.ParseExpression()
			if elem.IsError() {
				return elem
			}
			elems = append(elems, elem)
		}
	}
}

func (p *Parser) seq(typ lisp.ValueType, elems []*lisp.Value, tail *lisp.Value) *lisp.Value {
	if typ == lisp.VVector {
		return p.rt.Vector(elems, tail)
	}
	return p.rt.List(elems, tail)
}

// ParseHashMap reads {key value ...}.  A colon may separate a key from its
// value and a key with no value before the closing brace maps to nil.
func (p *Parser) ParseHashMap() *lisp.Value {
	const unbalanced = "unbalanced braces, expected '}'"
	open := p.src.Next()
	t := p.rt.NewTable(0)
	for {
		switch p.PeekType() {
		case token.EOI:
			return p.errorf(open, "%s", unbalanced)
		case token.BRACE_R:
			p.src.Scan()
			return p.at(open, p.rt.HashMap(t))
		case token.COLON:
			return p.errorf(open, "unexpected colon ':'")
		}
		key := p.ParseExpression()
		if key.IsError() {
			return key
		}
		p.src.AcceptType(token.COLON)
		var val *lisp.Value
		switch p.PeekType() {
		case token.EOI:
			return p.errorf(open, "%s", unbalanced)
		case token.BRACE_R:
			val = p.rt.Nil()
		default:
			val = p.ParseExpression()
			if val.IsError() {
				return val
			}
		}
		t.Set(key, val)
	}
}

// PeekType returns the type of the next unconsumed token.
func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func unexpected(msg string) func(p *Parser) *lisp.Value {
	return func(p *Parser) *lisp.Value {
		tok := p.src.Next()
		return p.errorf(tok, "%s", msg)
	}
}

func (p *Parser) errorf(tok *token.Token, format string, v ...interface{}) *lisp.Value {
	return p.rt.Errorf(lisp.ErrReader, tok, format, v...)
}

func (p *Parser) at(tok *token.Token, v *lisp.Value) *lisp.Value {
	v.Token = tok
	return v
}
