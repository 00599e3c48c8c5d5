// Copyright © 2018 The ELPS authors

// Package lisplib is used to conveniently load the native library into a
// runtime.
package lisplib

import (
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib/libmath"
	"github.com/luthersystems/mal/lisp/lisplib/libseq"
	"github.com/luthersystems/mal/parser"
)

// LoadLibrary binds every native function in the root environment of rt.
func LoadLibrary(rt *lisp.Runtime) error {
	err := libmath.LoadPackage(rt)
	if err != nil {
		return err
	}
	return libseq.LoadPackage(rt)
}

// NewRuntime returns a runtime with the default reader and the native
// library loaded, followed by any additional configuration.
func NewRuntime(config ...lisp.Config) (*lisp.Runtime, error) {
	base := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(LoadLibrary),
	}
	return lisp.NewRuntime(append(base, config...)...)
}
