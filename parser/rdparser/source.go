// Copyright © 2018 The ELPS authors

package rdparser

import (
	"github.com/luthersystems/mal/gc"
	"github.com/luthersystems/mal/parser/lexer"
	"github.com/luthersystems/mal/parser/token"
	"github.com/luthersystems/mal/text"
)

// TokenStream is an arbitrary sequence of tokens.  Typically, a TokenStream
// will be a *lexer.Lexer but other implementations may be desirable for
// testing.
type TokenStream interface {
	// ReadToken returns the next token from an input source.  When no more
	// tokens can be generated ReadToken returns a token with type token.EOI
	// every time it is called.
	ReadToken() *token.Token
}

// TokenGenerator implements TokenStream.  The function will be called any time
// a TokenSource wants a token.
type TokenGenerator func() *token.Token

// ReadToken implements TokenStream.
func (fn TokenGenerator) ReadToken() *token.Token {
	return fn()
}

// TokenSlice returns a TokenStream that yields toks in order followed by EOI
// tokens.
func TokenSlice(toks []*token.Token) TokenStream {
	pos := &token.Location{}
	return TokenGenerator(func() *token.Token {
		if len(toks) == 0 {
			return &token.Token{Type: token.EOI, Text: text.NewString(""), Source: pos, End: pos}
		}
		tok := toks[0]
		toks = toks[1:]
		if tok.End != nil {
			pos = tok.End
		}
		return tok
	})
}

// TokenSource keeps two tokens of a TokenStream: the token most recently
// consumed and the token following it.
type TokenSource struct {
	lex  TokenStream
	tok  *token.Token
	peek *token.Token
}

var _ token.Source = (*TokenSource)(nil)

func NewTokenStreamSource(stream TokenStream) *TokenSource {
	return &TokenSource{
		lex: stream,
	}
}

// NewTokenSource initializes and returns a new TokenSource that scans tokens
// from scanner.  Tokens are tracked by heap and comments are sent to
// comments, when they are non-nil.
func NewTokenSource(scanner *token.Scanner, heap *gc.Heap, comments lexer.CommentSink) *TokenSource {
	lex := lexer.New(scanner)
	lex.Heap = heap
	lex.Comments = comments
	return NewTokenStreamSource(lex)
}

// Token returns the token most recently consumed by Scan.
func (s *TokenSource) Token() *token.Token {
	return s.tok
}

// Peek returns the next unconsumed token.
func (s *TokenSource) Peek() *token.Token {
	if s.peek == nil {
		s.peek = s.lex.ReadToken()
	}
	return s.peek
}

// Scan consumes the next token.  Scan returns false, without consuming
// anything, at the end of input.
func (s *TokenSource) Scan() bool {
	if s.IsEOI() {
		s.tok = s.Peek()
		return false
	}
	s.scan()
	return true
}

// Next consumes and returns the next token.
func (s *TokenSource) Next() *token.Token {
	s.Scan()
	return s.tok
}

// AcceptType consumes the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

func (s *TokenSource) IsEOI() bool {
	return s.Peek().Type == token.EOI
}

func (s *TokenSource) scan() {
	s.tok = s.Peek()
	s.peek = nil
}
