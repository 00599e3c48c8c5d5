// Copyright © 2024 The ELPS authors

package lisp

import (
	"strings"

	"github.com/luthersystems/mal/gc"
	"github.com/luthersystems/mal/parser/token"
	"github.com/luthersystems/mal/text"
	"github.com/muesli/reflow/indent"
)

// ErrorKind classifies errors by the phase that produced them.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	ErrReader
	ErrRuntime
	ErrPrinter
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "OK"
	case ErrReader:
		return "READER"
	case ErrRuntime:
		return "RUNTIME"
	case ErrPrinter:
		return "PRINTER"
	default:
		return "UNKNOWN"
	}
}

// SinkEntry is a single diagnostic.  Text holds the rendered
// "L<line> C<col> message" line, including its trailing newline.
type SinkEntry struct {
	Kind    ErrorKind
	Message string
	Text    *text.Buffer
	Token   *token.Token
}

// Sink accumulates diagnostics for one read/eval/print cycle.  Sinks are
// collection roots.
type Sink struct {
	gc.Header
	name    string
	tagged  bool
	entries []SinkEntry
}

var _ gc.Object = (*Sink)(nil)

// NewErrorSink returns a sink whose collapsed form labels every entry with
// its error kind.
func NewErrorSink() *Sink {
	return &Sink{name: "ERROR", tagged: true}
}

// NewCommentSink returns a sink for source comments.
func NewCommentSink() *Sink {
	return &Sink{name: "comment"}
}

// Append records a diagnostic positioned at tok and returns its rendered
// text.
func (s *Sink) Append(kind ErrorKind, tok *token.Token, msg string) *text.Buffer {
	buf := text.NewString(tok.Position())
	buf.Append(' ')
	buf.ExtendString(msg)
	buf.Append('\n')
	s.entries = append(s.entries, SinkEntry{
		Kind:    kind,
		Message: msg,
		Text:    buf,
		Token:   tok,
	})
	return buf
}

// AppendComment implements lexer.CommentSink.
func (s *Sink) AppendComment(tok *token.Token) {
	s.Append(ErrNone, tok, tok.Text.String())
}

func (s *Sink) Len() int {
	return len(s.entries)
}

func (s *Sink) Empty() bool {
	return len(s.entries) == 0
}

// Entries returns the diagnostics recorded since the last Reset.
func (s *Sink) Entries() []SinkEntry {
	return s.entries
}

// Reset discards all entries.
func (s *Sink) Reset() {
	s.entries = nil
}

// Collapse renders every entry as a single block:
//
//	([ERROR]
//	  [RUNTIME] L1 C4 message
//	)
//
// Continuation lines of multi-line messages are indented to stay inside the
// block.
func (s *Sink) Collapse() string {
	var b strings.Builder
	b.WriteString("([")
	b.WriteString(s.name)
	b.WriteString("]\n")
	for _, e := range s.entries {
		var line strings.Builder
		if s.tagged {
			line.WriteString("[")
			line.WriteString(e.Kind.String())
			line.WriteString("] ")
		}
		line.Write(e.Text.Bytes())
		b.WriteString(indent.String(line.String(), 2))
	}
	b.WriteString(")\n")
	return b.String()
}

// Children implements gc.Object.
func (s *Sink) Children(visit func(gc.Object)) {
	for _, e := range s.entries {
		if e.Text != nil {
			visit(e.Text)
		}
		if e.Token != nil {
			visit(e.Token)
		}
	}
}
