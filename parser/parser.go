// Copyright © 2018 The ELPS authors

// Package parser provides the default lisp.Reader.
package parser

import (
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser/rdparser"
)

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}
