// Copyright © 2024 The ELPS authors

package text

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInvariants(t *testing.T, b *Buffer, want string) {
	t.Helper()
	require.Equal(t, want, b.String())
	assert.Equal(t, len(want), b.Len())
	assert.Zero(t, b.Cap()%Block, "capacity %d not a multiple of %d", b.Cap(), Block)
	assert.GreaterOrEqual(t, b.Cap(), b.Len()+1)
	assert.Equal(t, byte(0), b.data[b.count], "buffer is not NUL terminated")
}

func TestNew(t *testing.T) {
	tests := []struct {
		in  string
		cap int
	}{
		{"", 32},
		{"a", 32},
		{strings.Repeat("x", 30), 32},
		{strings.Repeat("x", 31), 32},
		{strings.Repeat("x", 32), 64},
		{strings.Repeat("x", 100), 128},
	}
	for _, test := range tests {
		b := New([]byte(test.in))
		checkInvariants(t, b, test.in)
		assert.Equal(t, test.cap, b.Cap(), "len %d", len(test.in))
		assert.Equal(t, test.in, NewString(test.in).String())
	}
}

func TestAppendExtend(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		b := NewString("")
		var want strings.Builder
		for op := 0; op < 40; op++ {
			if r.Intn(2) == 0 {
				c := byte('a' + r.Intn(26))
				b.Append(c)
				want.WriteByte(c)
			} else {
				s := strings.Repeat("z", r.Intn(70))
				b.Extend([]byte(s))
				want.WriteString(s)
			}
			checkInvariants(t, b, want.String())
		}
	}
}

func TestNeverShrinks(t *testing.T) {
	b := NewString(strings.Repeat("x", 200))
	c := b.Cap()
	b.Reset()
	checkInvariants(t, b, "")
	assert.Equal(t, c, b.Cap())
	b.ExtendString("abc")
	assert.Equal(t, c, b.Cap())
}

func TestWrite(t *testing.T) {
	b := NewString("L")
	_, err := fmt.Fprintf(b, "%d C%d", 3, 7)
	require.NoError(t, err)
	b.ExtendBuffer(NewString(" msg"))
	checkInvariants(t, b, "L3 C7 msg")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		cmp  int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", -1},
		{"abd", "abc", 1},
		{"ab", "abc", -1},
		{"b", "abc", 1},
	}
	for _, test := range tests {
		a := NewString(test.a)
		assert.Equal(t, test.cmp, a.Compare([]byte(test.b)), "%q %q", test.a, test.b)
		assert.Equal(t, test.cmp, a.CompareBuffer(NewString(test.b)), "%q %q", test.a, test.b)
		assert.Equal(t, test.cmp == 0, a.Equal(NewString(test.b)))
	}
}

func TestHash(t *testing.T) {
	// Reference values of Jenkins' one-at-a-time hash.
	assert.Equal(t, uint32(0), Hash(nil))
	assert.Equal(t, uint32(0xca2e9442), Hash([]byte("a")))
	assert.Equal(t, uint32(0x519e91f5), Hash([]byte("The quick brown fox jumps over the lazy dog")))
	assert.Equal(t, NewString("symbol: x").Hash(), NewString("symbol: x").Hash())
	assert.NotEqual(t, NewString("symbol: x").Hash(), NewString("symbol: y").Hash())
}
