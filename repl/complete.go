// Copyright © 2018 The ELPS authors

package repl

import (
	"sort"
	"strings"

	"github.com/luthersystems/mal/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the
// symbols bound in the root environment of a runtime.
type symbolCompleter struct {
	rt *lisp.Runtime
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a delimiter).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if isDelimiter(ch) {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len(prefix)
}

func isDelimiter(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '(', '[', '{', '\'', '`', '~', '@', '^':
		return true
	}
	return false
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	var result []string
	for _, name := range c.rt.Symbols() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}
