// Copyright © 2018 The ELPS authors

package token

import (
	"fmt"
	"strconv"

	"github.com/luthersystems/mal/gc"
	"github.com/luthersystems/mal/text"
)

// Source is an abstract stream of tokens which allows two tokens of
// lookahead: the current token and the one following it.
type Source interface {
	// Token returns the current token.  Token returns nil if Scan has not been
	// called.
	Token() *Token
	// Peek returns the token following the current one.  At the end of the
	// stream Peek returns an EOI token.
	Peek() *Token
	// Scan advances the token stream.  If there are no tokens remaining Scan
	// returns false.
	Scan() bool
}

// Token is a lexeme together with the span of source it was read from.
// Tokens are heap objects so that values produced by the reader can keep a
// reference to the token for error reporting.
type Token struct {
	gc.Header
	Type Type
	// Text holds the token payload.  String escapes are already decoded and
	// keywords do not include their leading colon.
	Text   *text.Buffer
	Source *Location
	End    *Location
	Len    int
}

var _ gc.Object = (*Token)(nil)

// Children implements gc.Object.
func (tok *Token) Children(visit func(gc.Object)) {
	if tok.Text != nil {
		visit(tok.Text)
	}
}

// Release implements gc.Releaser.
func (tok *Token) Release() {
	tok.Text = nil
}

func (tok *Token) String() string {
	if tok.Text == nil {
		return tok.Type.String()
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Text.String())
}

// Position formats the token span as "L<line> C<col>".  Lines and columns
// are shown as a range when the token spans more than one of them.
func (tok *Token) Position() string {
	if tok == nil || tok.Source == nil {
		return "L0 C0"
	}
	return Span(tok.Source, tok.End)
}

// Span formats the span between two locations as "L<line> C<col>".  When
// start and end differ a component is shown as "start-end".  A span that
// crosses lines may end in an earlier column than it starts: "L1-2 C5-3".
func Span(start, end *Location) string {
	if end == nil {
		end = start
	}
	return "L" + rangeString(start.Line, end.Line) + " C" + rangeString(start.Col, end.Col)
}

func rangeString(start, end int) string {
	if start == end {
		return strconv.Itoa(end)
	}
	return strconv.Itoa(start) + "-" + strconv.Itoa(end)
}

type Type uint

// Type constants used by the lexer and reader.
const (
	INVALID Type = iota
	ERROR
	EOI

	// Atomic expressions & literals
	INTEGER
	DECIMAL
	STRING
	SYMBOL
	KEYWORD
	COMMENT

	// Reader macros
	COLON
	QUOTE
	AT
	BACKSLASH
	CARET
	BACKTICK
	TILDE
	TILDE_AT

	// Delimiters
	PAREN_L
	PAREN_R
	BRACKET_L
	BRACKET_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:   "invalid",
		ERROR:     "error",
		EOI:       "EOI",
		INTEGER:   "integer",
		DECIMAL:   "decimal",
		STRING:    "string",
		SYMBOL:    "symbol",
		KEYWORD:   "keyword",
		COMMENT:   ";",
		COLON:     ":",
		QUOTE:     "'",
		AT:        "@",
		BACKSLASH: `\`,
		CARET:     "^",
		BACKTICK:  "`",
		TILDE:     "~",
		TILDE_AT:  "~@",
		PAREN_L:   "(",
		PAREN_R:   ")",
		BRACKET_L: "[",
		BRACKET_R: "]",
		BRACE_L:   "{",
		BRACE_R:   "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

type Location struct {
	File string // a name representing the source stream
	Pos  int    // byte offset from the start of the stream
	Line int    // line number (starting at 1)
	Col  int    // line column number (starting at 1)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
