// Copyright © 2018 The ELPS authors

// Package lexer converts source text into tokens.  The lexer never fails.
// Malformed input is reported through ERROR tokens which the reader turns
// into reader errors.
package lexer

import (
	"bytes"

	"github.com/luthersystems/mal/gc"
	"github.com/luthersystems/mal/parser/token"
	"github.com/luthersystems/mal/text"
)

// delimiters terminate symbols and keywords, and decide whether a colon is
// an improper tail marker or the start of a keyword.
const delimiters = " \t\r\n\f\v,;\"'():@[\\]^`{}~"

// CommentSink receives comments skipped by the lexer.  The token text holds
// the trimmed comment body.
type CommentSink interface {
	AppendComment(tok *token.Token)
}

type Lexer struct {
	scanner *token.Scanner
	// Heap, if non-nil, tracks every token emitted along with its text.
	Heap *gc.Heap
	// Comments, if non-nil, collects every comment in the source.
	Comments CommentSink
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// ReadToken scans and returns the next token.  At the end of input
// ReadToken returns EOI tokens indefinitely.
func (lex *Lexer) ReadToken() *token.Token {
	for {
		lex.skipWhitespace()
		if !lex.scanner.Scan() {
			return lex.emit(token.EOI, nil)
		}
		c := lex.scanner.Byte()
		switch c {
		case ';':
			lex.readComment()
			continue
		case '(':
			return lex.emit(token.PAREN_L, nil)
		case ')':
			return lex.emit(token.PAREN_R, nil)
		case '[':
			return lex.emit(token.BRACKET_L, nil)
		case ']':
			return lex.emit(token.BRACKET_R, nil)
		case '{':
			return lex.emit(token.BRACE_L, nil)
		case '}':
			return lex.emit(token.BRACE_R, nil)
		case '\'':
			return lex.emit(token.QUOTE, nil)
		case '@':
			return lex.emit(token.AT, nil)
		case '\\':
			return lex.emit(token.BACKSLASH, nil)
		case '^':
			return lex.emit(token.CARET, nil)
		case '`':
			return lex.emit(token.BACKTICK, nil)
		case '~':
			if lex.scanner.AcceptByte('@') {
				return lex.emit(token.TILDE_AT, nil)
			}
			return lex.emit(token.TILDE, nil)
		case '"':
			return lex.readString()
		case ':':
			return lex.readColon()
		case '-', '+':
			if next, ok := lex.scanner.Peek(); ok && isDigit(next) {
				return lex.readNumber()
			}
			return lex.readSymbol()
		default:
			if isDigit(c) {
				return lex.readNumber()
			}
			return lex.readSymbol()
		}
	}
}

func (lex *Lexer) emit(typ token.Type, payload *text.Buffer) *token.Token {
	tok := lex.scanner.EmitToken(typ, payload)
	if lex.Heap != nil {
		lex.Heap.Track(tok.Text, gc.KindText)
		lex.Heap.Track(tok, gc.KindToken)
	}
	return tok
}

func (lex *Lexer) errorf(msg string) *token.Token {
	return lex.emit(token.ERROR, text.NewString(msg))
}

func (lex *Lexer) skipWhitespace() {
	lex.scanner.AcceptSeq(isSpace)
	lex.scanner.Ignore()
}

func (lex *Lexer) readComment() {
	lex.scanner.AcceptSeq(func(c byte) bool { return c != '\n' })
	body := bytes.TrimSpace(bytes.TrimLeft(lex.scanner.Text(), ";"))
	tok := lex.emit(token.COMMENT, text.New(body))
	if lex.Comments != nil {
		lex.Comments.AppendComment(tok)
	}
}

// readNumber scans digits.  The first of '.', 'e' or 'E' marks the literal
// as a decimal and a second one terminates it.  An exponent marker may be
// followed by a sign.
func (lex *Lexer) readNumber() *token.Token {
	decimal := false
	for {
		lex.scanner.AcceptSeq(isDigit)
		next, ok := lex.scanner.Peek()
		if !ok || decimal || (next != '.' && next != 'e' && next != 'E') {
			break
		}
		decimal = true
		lex.scanner.Scan()
		if next != '.' {
			lex.scanner.Accept(func(c byte) bool { return c == '-' || c == '+' })
		}
	}
	if decimal {
		return lex.emit(token.DECIMAL, nil)
	}
	return lex.emit(token.INTEGER, nil)
}

// readString decodes the escapes \n \t \r \" and \\.  Any other escaped
// character is kept without its backslash.
func (lex *Lexer) readString() *token.Token {
	payload := text.NewString("")
	for {
		if !lex.scanner.Scan() {
			return lex.errorf("unterminated string literal")
		}
		c := lex.scanner.Byte()
		switch c {
		case '"':
			return lex.emit(token.STRING, payload)
		case '\\':
			if !lex.scanner.Scan() {
				return lex.errorf("unterminated string literal")
			}
			payload.Append(unescape(lex.scanner.Byte()))
		default:
			payload.Append(c)
		}
	}
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func (lex *Lexer) readColon() *token.Token {
	next, ok := lex.scanner.Peek()
	if !ok || isDelimiter(next) {
		return lex.emit(token.COLON, nil)
	}
	lex.scanner.AcceptSeq(isWord)
	return lex.emit(token.KEYWORD, text.New(lex.scanner.Text()[1:]))
}

func (lex *Lexer) readSymbol() *token.Token {
	lex.scanner.AcceptSeq(isWord)
	return lex.emit(token.SYMBOL, nil)
}

func isDelimiter(c byte) bool {
	return bytes.IndexByte([]byte(delimiters), c) >= 0
}

func isWord(c byte) bool {
	return !isDelimiter(c)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v', ',':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
