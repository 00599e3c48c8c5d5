// Copyright © 2018 The ELPS authors

package maltest

import (
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/stretchr/testify/assert"
)

// AssertTable runs tests to ensure that m satisfies the constraints required
// of a hash table.  The following properties are tested by AssertTable:
//
//	The capacity is a power of two and at least lisp.DefaultTableCapacity
//
//	Used slots, tombstones included, never exceed three quarters of capacity
//
//	m.Range visits exactly m.Len() entries, in the same order every time
//
//	Calling m.Get() with a key visited by m.Range returns the value it was
//	visited with
//
// AssertTable does not test the success or failure of insertions or
// deletions.
func AssertTable(t *testing.T, m *lisp.Table) bool {
	t.Helper()
	n := m.Cap()
	if !assert.True(t, n >= lisp.DefaultTableCapacity && n&(n-1) == 0, "capacity %d is not a power of two", n) {
		return false
	}
	if !assert.LessOrEqual(t, m.Count(), n/2+n/4, "table is over its load limit") {
		return false
	}
	if !assert.LessOrEqual(t, m.Len(), m.Count()) {
		return false
	}
	keys, vals := entries(m)
	if !assert.Len(t, keys, m.Len(), "Range visited the wrong number of entries") {
		return false
	}
	for i := 0; i < 3; i++ {
		again, _ := entries(m)
		if !assert.Equal(t, keys, again, "Range order is not fixed") {
			return false
		}
	}
	for i, k := range keys {
		v, ok := m.Get(k)
		if !assert.True(t, ok, "entry %d was not found in table: %s", i, lisp.PrintString(k)) {
			return false
		}
		if !assert.Same(t, vals[i], v, "entry for key %s is not consistent", lisp.PrintString(k)) {
			return false
		}
	}
	return true
}

func entries(m *lisp.Table) (keys, vals []*lisp.Value) {
	m.Range(func(k, v *lisp.Value) bool {
		keys = append(keys, k)
		vals = append(vals, v)
		return true
	})
	return keys, vals
}
