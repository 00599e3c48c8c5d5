// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Renderer formats diagnostics as annotated source snippets:
//
//	error[RUNTIME]: var 'foo' not found
//	  --> stdin:1:4
//	   |
//	 1 |  (+ foo 1)
//	   |     ^^^
//	   |
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Sources holds in-memory source text by file name.  It is consulted
	// before SourceReader.
	Sources map[string][]byte

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	sev := d.Severity.String()
	if d.Code != "" {
		sev += "[" + d.Code + "]"
	}
	color := p.boldRed
	switch d.Severity {
	case SeverityWarning:
		color = p.yellow
	case SeverityNote:
		color = p.boldCyan
	}
	ew.printf("%s%s%s: %s%s%s\n", color, sev, p.reset, p.bold, d.Message, p.reset)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter keeps the first write error and drops every later write.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc += ":" + strconv.Itoa(span.Line)
		if span.Col > 0 {
			loc += ":" + strconv.Itoa(span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}
	num := strconv.Itoa(span.Line)
	gutter := strings.Repeat(" ", len(num))
	ew.printf(" %s%s |%s\n", p.boldBlue, gutter, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, num, p.reset, expandTabs(source))

	col := span.Col
	if col < 1 {
		col = 1
	}
	if col > len(source)+1 {
		col = len(source) + 1
	}
	end := span.EndCol
	if end > len(source)+1 {
		end = len(source) + 1
	}
	if end < col {
		end = col
	}
	pad := strings.Repeat(" ", len(expandTabs(source[:col-1])))
	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, gutter, p.reset, pad, p.boldRed, strings.Repeat("^", end-col+1), p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.printf("\n %s%s |%s\n", p.boldBlue, gutter, p.reset)
}

func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	data, ok := r.Sources[file]
	if !ok {
		read := r.SourceReader
		if read == nil {
			read = os.ReadFile
		}
		var err error
		data, err = read(file)
		if err != nil {
			return "", false
		}
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 1; scanner.Scan(); i++ {
		if i == line {
			return scanner.Text(), true
		}
	}
	return "", false
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
