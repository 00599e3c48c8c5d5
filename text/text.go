// Copyright © 2024 The ELPS authors

// Package text provides Buffer, the growable byte buffer shared by every
// other part of the runtime.  A Buffer is always NUL terminated and its
// capacity is always a multiple of 32 bytes.
package text

import (
	"bytes"
	"io"

	"github.com/luthersystems/mal/gc"
)

// Block is the allocation granularity of a Buffer.
const Block = 32

// Buffer is a growable, NUL terminated byte buffer.  Buffers never shrink.
type Buffer struct {
	gc.Header
	data  []byte
	count int
}

var _ io.Writer = (*Buffer)(nil)
var _ gc.Object = (*Buffer)(nil)

// New returns a Buffer containing a copy of b.
func New(b []byte) *Buffer {
	buf := &Buffer{data: make([]byte, roundUp(len(b)+1))}
	buf.count = copy(buf.data, b)
	return buf
}

// NewString returns a Buffer containing s.
func NewString(s string) *Buffer {
	buf := &Buffer{data: make([]byte, roundUp(len(s)+1))}
	buf.count = copy(buf.data, s)
	return buf
}

func roundUp(n int) int {
	if n <= 0 {
		return Block
	}
	return (n + Block - 1) / Block * Block
}

// Len returns the number of bytes in use.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the number of bytes allocated, including the terminator.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Bytes returns the used portion of the buffer.  The slice aliases the buffer
// and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.count]
}

func (b *Buffer) String() string {
	return string(b.data[:b.count])
}

// grow ensures room for n more bytes plus the terminator.
func (b *Buffer) grow(n int) {
	need := b.count + n + 1
	if need <= len(b.data) {
		return
	}
	size := len(b.data)
	if size == 0 {
		size = Block
	}
	for size < need {
		size *= 2
	}
	data := make([]byte, size)
	copy(data, b.data[:b.count])
	b.data = data
}

// Append adds a single byte.
func (b *Buffer) Append(c byte) {
	b.grow(1)
	b.data[b.count] = c
	b.count++
	b.data[b.count] = 0
}

// Extend adds every byte of p.
func (b *Buffer) Extend(p []byte) {
	b.grow(len(p))
	b.count += copy(b.data[b.count:], p)
	b.data[b.count] = 0
}

// ExtendString adds every byte of s.
func (b *Buffer) ExtendString(s string) {
	b.grow(len(s))
	b.count += copy(b.data[b.count:], s)
	b.data[b.count] = 0
}

// ExtendBuffer adds the contents of other.
func (b *Buffer) ExtendBuffer(other *Buffer) {
	b.Extend(other.Bytes())
}

// Write implements io.Writer.  It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Extend(p)
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (b *Buffer) WriteString(s string) (int, error) {
	b.ExtendString(s)
	return len(s), nil
}

// Reset empties the buffer without releasing its storage.
func (b *Buffer) Reset() {
	b.count = 0
	if len(b.data) > 0 {
		b.data[0] = 0
	}
}

// Compare compares the buffer with p lexicographically, byte by byte.
func (b *Buffer) Compare(p []byte) int {
	return bytes.Compare(b.Bytes(), p)
}

// CompareBuffer compares two buffers lexicographically.
func (b *Buffer) CompareBuffer(other *Buffer) int {
	return bytes.Compare(b.Bytes(), other.Bytes())
}

// Equal reports whether both buffers hold the same bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	return b.CompareBuffer(other) == 0
}

// Hash returns Jenkins' one-at-a-time hash of the buffer contents.
func (b *Buffer) Hash() uint32 {
	return Hash(b.Bytes())
}

// Hash returns Jenkins' one-at-a-time hash of p.
func Hash(p []byte) uint32 {
	var h uint32
	for _, c := range p {
		h += uint32(c)
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// Children implements gc.Object.  Buffers reference no other objects.
func (b *Buffer) Children(func(gc.Object)) {}
