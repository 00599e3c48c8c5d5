// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"

	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/repl"
)

func (c *cmdConfig) colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(c.viper.GetString(keyColor))
}

func (c *cmdConfig) newRenderer(sources map[string][]byte) *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: c.colorMode(), Sources: sources}
}

// renderErrors renders the pending errors of rt against the source they
// were read from.
func (c *cmdConfig) renderErrors(w io.Writer, rt *lisp.Runtime, name string, src []byte) error {
	r := c.newRenderer(map[string][]byte{name: src})
	return r.RenderAll(w, repl.ErrorDiagnostics(rt.Errors))
}
