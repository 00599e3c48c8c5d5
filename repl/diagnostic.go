// Copyright © 2024 The ELPS authors

package repl

import (
	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
)

// ErrorDiagnostics converts the entries of an error sink to diagnostics
// coded by error kind.  Entries without a position have no span.
func ErrorDiagnostics(sink *lisp.Sink) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	for _, e := range sink.Entries() {
		d := diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     e.Kind.String(),
			Message:  e.Message,
		}
		if e.Token != nil && e.Token.Source != nil {
			src := e.Token.Source
			span := diagnostic.Span{
				File: src.File,
				Line: src.Line,
				Col:  src.Col,
			}
			if end := e.Token.End; end != nil && end.Line == src.Line {
				span.EndCol = end.Col
			}
			d.Spans = append(d.Spans, span)
		}
		diags = append(diags, d)
	}
	return diags
}
