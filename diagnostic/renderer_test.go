// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bytes"
	"strings"
	"testing"
)

// testRenderer returns a Renderer with colors disabled and a fake source reader.
func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			s, ok := sources[name]
			if !ok {
				return nil, &fakeErr{name}
			}
			return []byte(s), nil
		},
	}
}

type fakeErr struct{ name string }

func (e *fakeErr) Error() string { return "not found: " + e.name }

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(def! nil 42)",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "cannot bind nil",
		Spans: []Span{
			{File: "test.lisp", Line: 1, Col: 7, EndCol: 9, Label: "def! target must be a symbol"},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()

	// Verify key structural elements
	assertContains(t, got, "error: cannot bind nil")
	assertContains(t, got, "--> test.lisp:1:7")
	assertContains(t, got, "(def! nil 42)")
	assertContains(t, got, "      ^^^ def! target must be a symbol")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(def! x 1)\n(def! x 2)",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Message:  "x is defined twice",
		Spans: []Span{
			{File: "test.lisp", Line: 2, Col: 1, EndCol: 9},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "warning: x is defined twice")
	assertContains(t, got, "--> test.lisp:2:1")
	assertContains(t, got, "(def! x 2)")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans: []Span{
			{File: "<stdin>", Line: 5, Col: 3},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: some error")
	assertContains(t, got, "--> <stdin>:5:3")
	// Should have a gutter but no source line
	assertContains(t, got, "|")
	assertNotContains(t, got, "^")
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(my-fn 1 2)",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "var 'my-fn' not found",
		Spans: []Span{
			{File: "test.lisp", Line: 1, Col: 2, EndCol: 6},
		},
		Notes: []string{
			"in my-fn at test.lisp:1:1",
			"called from main at main.lisp:10:5",
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "= note: in my-fn at test.lisp:1:1")
	assertContains(t, got, "= note: called from main at main.lisp:10:5")
}

func TestRenderCode(t *testing.T) {
	r := &Renderer{
		Color:   ColorNever,
		Sources: map[string][]byte{"stdin": []byte("(+ foo 1)")},
	}

	d := Diagnostic{
		Severity: SeverityError,
		Code:     "RUNTIME",
		Message:  "var 'foo' not found",
		Spans: []Span{
			{File: "stdin", Line: 1, Col: 4, EndCol: 6},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	want := "error[RUNTIME]: var 'foo' not found\n" +
		"  --> stdin:1:4\n" +
		"   |\n" +
		" 1 |  (+ foo 1)\n" +
		"   |     ^^^\n" +
		"   |\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSingleColumn(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(1 2",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "unbalanced",
		Spans: []Span{
			{File: "test.lisp", Line: 1, Col: 1}, // EndCol=0 marks one column
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "|  ^\n")
	assertNotContains(t, got, "^^")
}

func TestRenderColumnPastEnd(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(a",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "unexpected end of input",
		Spans: []Span{
			{File: "test.lisp", Line: 1, Col: 40, EndCol: 42},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "|    ^\n")
	assertNotContains(t, got, "^^")
}

func TestRenderSourcesBeforeReader(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "on disk",
	})
	r.Sources = map[string][]byte{"test.lisp": []byte("in memory")}

	d := Diagnostic{
		Severity: SeverityNote,
		Message:  "look here",
		Spans:    []Span{{File: "test.lisp", Line: 1, Col: 1, EndCol: 2}},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "note: look here")
	assertContains(t, got, "in memory")
	assertNotContains(t, got, "on disk")
}

func TestRenderColor(t *testing.T) {
	r := testRenderer(nil)
	r.Color = ColorAlways

	var buf bytes.Buffer
	if err := r.Render(&buf, Diagnostic{Message: "boom"}); err != nil {
		t.Fatal(err)
	}
	assertContains(t, buf.String(), "\033[1;31merror\033[0m")

	buf.Reset()
	r.Color = ColorAuto
	if err := r.Render(&buf, Diagnostic{Message: "boom"}); err != nil {
		t.Fatal(err)
	}
	assertNotContains(t, buf.String(), "\033[")
}

func TestParseColorMode(t *testing.T) {
	for name, want := range map[string]ColorMode{
		"always": ColorAlways,
		"never":  ColorNever,
		"auto":   ColorAuto,
		"":       ColorAuto,
		"bogus":  ColorAuto,
	} {
		if got := ParseColorMode(name); got != want {
			t.Errorf("ParseColorMode(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestRenderMultipleDiagnostics(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(def! x 1)\n(def! x 2)\n(let* (y) y)",
	})

	diags := []Diagnostic{
		{
			Severity: SeverityWarning,
			Message:  "x is defined twice",
			Spans:    []Span{{File: "test.lisp", Line: 2, Col: 1, EndCol: 9}},
		},
		{
			Severity: SeverityWarning,
			Message:  "let* binding has no value",
			Spans:    []Span{{File: "test.lisp", Line: 3, Col: 1, EndCol: 9}},
		},
	}

	var buf bytes.Buffer
	if err := r.RenderAll(&buf, diags); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// Should have both diagnostics separated by blank line
	parts := strings.Split(got, "\n\n")
	if len(parts) < 2 {
		t.Errorf("expected diagnostics separated by blank line, got:\n%s", got)
	}
	assertContains(t, got, "x is defined twice")
	assertContains(t, got, "let* binding has no value")
}

func TestRenderNoSpans(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "runtime has no reader",
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: runtime has no reader")
	// Should be just the header, no arrows or source
	assertNotContains(t, got, "-->")
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output does not contain %q:\n%s", want, got)
	}
}

func assertNotContains(t *testing.T, got, unwanted string) {
	t.Helper()
	if strings.Contains(got, unwanted) {
		t.Errorf("output unexpectedly contains %q:\n%s", unwanted, got)
	}
}
