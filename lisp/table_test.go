// Copyright © 2024 The ELPS authors

package lisp_test

import (
	"math/rand"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/maltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSetGet(t *testing.T) {
	rt := maltest.NewRuntime(t)
	m := rt.NewTable(0)
	assert.Equal(t, lisp.DefaultTableCapacity, m.Cap())

	assert.True(t, m.Set(rt.Symbol("a"), rt.Int(1)))
	assert.True(t, m.Set(rt.Keyword("a"), rt.Int(2)))
	assert.True(t, m.Set(rt.String("a"), rt.Int(3)))
	assert.False(t, m.Set(rt.Symbol("a"), rt.Int(4)))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 3, m.Count())

	v, ok := m.Get(rt.Symbol("a"))
	require.True(t, ok)
	assert.Equal(t, int64(4), v.Int)
	v, ok = m.Get(rt.Keyword("a"))
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int)
	_, ok = m.Get(rt.Symbol("b"))
	assert.False(t, ok)

	// integers and decimals with equal magnitude are distinct keys
	m.Set(rt.Int(1), rt.True())
	m.Set(rt.Decimal(1), rt.False())
	v, _ = m.Get(rt.Int(1))
	assert.Same(t, rt.True(), v)
	v, _ = m.Get(rt.Decimal(1))
	assert.Same(t, rt.False(), v)
	maltest.AssertTable(t, m)
}

func TestTableRemove(t *testing.T) {
	rt := maltest.NewRuntime(t)
	m := rt.NewTable(0)
	for i := 0; i < 8; i++ {
		m.Set(rt.Int(int64(i)), rt.Int(int64(i*i)))
	}
	assert.True(t, m.Remove(rt.Int(3)))
	assert.False(t, m.Remove(rt.Int(3)))
	assert.Equal(t, 7, m.Len())
	// the tombstone still counts as a used slot
	assert.Equal(t, 8, m.Count())
	_, ok := m.Get(rt.Int(3))
	assert.False(t, ok)
	for _, i := range []int64{0, 1, 2, 4, 5, 6, 7} {
		v, ok := m.Get(rt.Int(i))
		if assert.True(t, ok, "key %d", i) {
			assert.Equal(t, i*i, v.Int)
		}
	}

	// reinsertion reuses the tombstone
	assert.True(t, m.Set(rt.Int(3), rt.Nil()))
	assert.Equal(t, 8, m.Len())
	assert.Equal(t, 8, m.Count())
	maltest.AssertTable(t, m)
}

func TestTableGrow(t *testing.T) {
	rt := maltest.NewRuntime(t)
	m := rt.NewTable(0)
	for i := 0; i < 12; i++ {
		m.Set(rt.Int(int64(i)), rt.Nil())
	}
	assert.Equal(t, 16, m.Cap())
	m.Set(rt.Int(12), rt.Nil())
	assert.Equal(t, 32, m.Cap())
	assert.Equal(t, 13, m.Len())
	maltest.AssertTable(t, m)

	assert.Equal(t, 64, lisp.NewTable(33).Cap())
	assert.Equal(t, 16, lisp.NewTable(-1).Cap())
}

func TestTableRandom(t *testing.T) {
	rt := maltest.NewRuntime(t)
	rng := rand.New(rand.NewSource(7))
	m := rt.NewTable(0)
	model := make(map[int64]int64)
	for i := 0; i < 5000; i++ {
		k := rng.Int63n(300)
		if rng.Intn(3) == 0 {
			_, present := model[k]
			assert.Equal(t, present, m.Remove(rt.Int(k)))
			delete(model, k)
			continue
		}
		model[k] = int64(i)
		m.Set(rt.Int(k), rt.Int(int64(i)))
	}
	assert.Equal(t, len(model), m.Len())
	for k, want := range model {
		v, ok := m.Get(rt.Int(k))
		if assert.True(t, ok, "key %d", k) {
			assert.Equal(t, want, v.Int)
		}
	}
	maltest.AssertTable(t, m)
}

func TestTableStructuralKeys(t *testing.T) {
	rt := maltest.NewRuntime(t)
	m := rt.NewTable(0)
	key := rt.List([]*lisp.Value{rt.Int(1), rt.Symbol("a")}, nil)
	m.Set(key, rt.String("found"))
	v, ok := m.Get(rt.List([]*lisp.Value{rt.Int(1), rt.Symbol("a")}, nil))
	require.True(t, ok)
	assert.Equal(t, "found", v.Text())
	_, ok = m.Get(rt.Vector([]*lisp.Value{rt.Int(1), rt.Symbol("a")}, nil))
	assert.False(t, ok)
	stored, ok := m.Key(rt.List([]*lisp.Value{rt.Int(1), rt.Symbol("a")}, nil))
	require.True(t, ok)
	assert.Same(t, key, stored)
}
