// Copyright © 2018 The ELPS authors

package token

import (
	"github.com/luthersystems/mal/text"
)

// Scanner facilitates construction of tokens from a source buffer.  It keeps
// the absolute byte position along with the line and column of every byte it
// accepts.  Columns reset after a newline.
type Scanner struct {
	file string
	src  []byte

	next     int // index of the next byte to accept
	nextLine int // line of src[next]
	nextCol  int // column of src[next]

	c       byte // last accepted byte
	curLine int  // line of c
	curCol  int  // column of c

	start     int // index of the first byte of the current token
	startLine int
	startCol  int
}

// NewScanner initializes and returns a new Scanner over the contents of src.
// The scanner aliases src, which must not be modified while scanning.
func NewScanner(file string, src *text.Buffer) *Scanner {
	return NewScannerBytes(file, src.Bytes())
}

// NewScannerBytes is like NewScanner but reads from a byte slice.
func NewScannerBytes(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		nextLine:  1,
		nextCol:   1,
		curLine:   1,
		startLine: 1,
		startCol:  1,
	}
}

// Ignore causes the scanner to skip all text scanned since the last call to
// Ignore.  The next token starts at the next unaccepted byte.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.nextLine
	s.startCol = s.nextCol
}

// Text returns the bytes scanned since the last call to Ignore.
func (s *Scanner) Text() []byte {
	return s.src[s.start:s.next]
}

// Byte returns the last accepted byte.
func (s *Scanner) Byte() byte {
	return s.c
}

// EOF returns true when every byte of the source has been accepted.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.src)
}

// Peek returns the next byte to be scanned.  Peek returns false at the end
// of the source.
func (s *Scanner) Peek() (byte, bool) {
	if s.EOF() {
		return 0, false
	}
	return s.src[s.next], true
}

// PeekAt returns the byte n positions past the next byte to be scanned.
func (s *Scanner) PeekAt(n int) (byte, bool) {
	i := s.next + n
	if i >= len(s.src) {
		return 0, false
	}
	return s.src[i], true
}

// Scan accepts the next byte.  Scan returns false at the end of the source.
func (s *Scanner) Scan() bool {
	if s.EOF() {
		return false
	}
	s.c = s.src[s.next]
	s.curLine = s.nextLine
	s.curCol = s.nextCol
	s.next++
	if s.c == '\n' {
		s.nextLine++
		s.nextCol = 1
	} else {
		s.nextCol++
	}
	return true
}

func (s *Scanner) Accept(fn func(byte) bool) bool {
	peek, ok := s.Peek()
	if !ok || !fn(peek) {
		return false
	}
	return s.Scan()
}

func (s *Scanner) AcceptByte(c byte) bool {
	return s.Accept(func(b byte) bool { return b == c })
}

func (s *Scanner) AcceptSeq(fn func(byte) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// LocStart returns a Location referencing the first byte of the current
// token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the last accepted byte of the current
// token.  When nothing has been accepted since Ignore, Loc equals LocStart.
func (s *Scanner) Loc() *Location {
	if s.next == s.start {
		return s.LocStart()
	}
	return &Location{
		File: s.file,
		Pos:  s.next - 1,
		Line: s.curLine,
		Col:  s.curCol,
	}
}

// EmitToken returns a token with the given payload spanning the text scanned
// since the last call to Ignore, then calls Ignore.  A nil payload uses the
// scanned text verbatim.
func (s *Scanner) EmitToken(typ Type, payload *text.Buffer) *Token {
	if payload == nil {
		payload = text.New(s.Text())
	}
	tok := &Token{
		Type:   typ,
		Text:   payload,
		Source: s.LocStart(),
		End:    s.Loc(),
		Len:    s.next - s.start,
	}
	s.Ignore()
	return tok
}
