// Copyright © 2024 The ELPS authors

// Package diagnostic renders errors as annotated source snippets for the mal
// command line.  It does not depend on the lisp package, callers convert
// their errors to a Diagnostic first.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of a single source line to underline.
type Span struct {
	File   string // name used to look up the source text
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column, 0 underlines a single column
	Label  string // text shown after the underline
}

// Diagnostic is a single error or warning with optional source annotations
// and trailing notes.
type Diagnostic struct {
	Severity Severity
	// Code, when set, is shown in brackets after the severity, as in
	// "error[RUNTIME]".
	Code    string
	Message string
	Spans   []Span
	Notes   []string
}
