// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/maltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocCommand_DefaultFlags(t *testing.T) {
	cmd := DocCommand()
	assert.Equal(t, "doc [flags] [NAME]", cmd.Use)

	for _, name := range []string{"source-file", "missing", "guide"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDoc(t *testing.T) {
	out, _, err := execute(t, "", "doc", "zip")
	require.NoError(t, err)
	assert.Contains(t, out, "function zip\n  Takes two sequences")

	out, _, err = execute(t, "", "doc")
	require.NoError(t, err)
	for _, name := range []string{"+", "-", "*", "/", "list", "vector", "hashmap", "zip", "keys", "vals"} {
		assert.Contains(t, out, "function "+name+"\n")
	}

	out, _, err = execute(t, "", "doc", "--missing")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = execute(t, "", "doc", "nope")
	assert.EqualError(t, err, "var 'nope' not found")
}

func TestDoc_SourceFile(t *testing.T) {
	path := writeFile(t, "lib.mal", "(def! answer (* 6 7))\n")
	out, _, err := execute(t, "", "doc", "-f", path, "answer")
	require.NoError(t, err)
	assert.Equal(t, "integer answer 42\n", out)

	path = writeFile(t, "bad.mal", "(def! answer missing)\n")
	_, stderr, err := execute(t, "", "doc", "-f", path, "answer")
	assert.Error(t, err)
	assert.Contains(t, stderr, "var 'missing' not found")
}

func TestDocCommand_WithRuntime(t *testing.T) {
	rt := maltest.NewRuntime(t)
	identity := func(rt *lisp.Runtime, args []*lisp.Value) *lisp.Value { return args[0] }
	rt.Register("my-helper", "Returns its argument.", identity)

	run := func(args ...string) (string, error) {
		cmd := DocCommand(WithRuntime(rt))
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("my-helper")
	require.NoError(t, err)
	assert.Equal(t, "function my-helper\n  Returns its argument.\n", out)

	rt.Register("undocumented", "", identity)
	out, err = run("--missing")
	assert.EqualError(t, err, "1 function(s) without documentation")
	assert.Equal(t, "undocumented\n", out)
	assert.NotContains(t, out, "Usage:")

	// The injected runtime is not closed by the command.
	_, ok := rt.Lookup("my-helper")
	assert.True(t, ok)
}

func TestDoc_Guide(t *testing.T) {
	out, _, err := execute(t, "", "doc", "--guide")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# mal language guide\n"), out)
	assert.Contains(t, out, "({:a 1} :a)")
}
