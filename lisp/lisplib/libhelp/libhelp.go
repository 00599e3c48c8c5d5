// Copyright © 2021 The ELPS authors

// Package libhelp renders documentation for the natives bound in a runtime.
package libhelp

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/luthersystems/mal/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// CheckMissing returns the names of natives bound in rt that have no
// documentation.
func CheckMissing(rt *lisp.Runtime) []string {
	var missing []string
	for _, fn := range sortedFunctions(rt) {
		if strings.TrimSpace(fn.Doc) == "" {
			missing = append(missing, fn.Name)
		}
	}
	return missing
}

// RenderAll writes to w the documentation of every native bound in rt,
// ordered by name.
func RenderAll(w io.Writer, rt *lisp.Runtime) error {
	for i, fn := range sortedFunctions(rt) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := RenderFunction(w, fn); err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}
	return nil
}

// RenderVar writes to w formatted documentation for the value bound to sym
// in the root environment of rt.
func RenderVar(w io.Writer, rt *lisp.Runtime, sym string) error {
	v, ok := rt.Lookup(sym)
	if !ok {
		return fmt.Errorf("var '%s' not found", sym)
	}
	if v.Type != lisp.VFunction {
		_, err := fmt.Fprintf(w, "%s %s %s\n", v.Type, sym, lisp.PrintString(v))
		return err
	}
	return RenderFunction(w, v.Fun)
}

// RenderFunction writes the name of fn followed by its wrapped docstring.
func RenderFunction(w io.Writer, fn *lisp.Function) error {
	_, err := fmt.Fprintf(w, "function %s\n", fn.Name)
	if err != nil {
		return fmt.Errorf("rendering signature: %w", err)
	}
	doc := cleanDocstring(fn.Doc)
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
		return err
	}
	return nil
}

func sortedFunctions(rt *lisp.Runtime) []*lisp.Function {
	funs := rt.Functions()
	sort.Slice(funs, func(i, j int) bool { return funs[i].Name < funs[j].Name })
	return funs
}

// cleanDocstring joins the lines of doc and wraps them to 72 columns.
func cleanDocstring(doc string) string {
	doc = strings.Join(strings.Fields(doc), " ")
	if doc == "" {
		return ""
	}
	doc = indent.String(wordwrap.String(doc, 72), 2)
	return strings.TrimSuffix(doc, "\n")
}
