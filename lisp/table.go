// Copyright © 2024 The ELPS authors

package lisp

import (
	"github.com/luthersystems/mal/gc"
)

// DefaultTableCapacity is the initial number of slots in a Table.
const DefaultTableCapacity = 16

// tombstone marks a deleted slot.  Probing continues past it but inserts may
// reuse it.
var tombstone = &Value{Type: VBool, Bool: true}

type slot struct {
	key *Value
	val *Value
}

func (s slot) empty() bool     { return s.key == nil && s.val == nil }
func (s slot) tombstone() bool { return s.key == nil && s.val != nil }

// Table is an open addressing hash table keyed by value signature.  Its
// capacity is always a power of two and it grows before an insert would
// push the number of used slots, tombstones included, past three quarters
// of capacity.
type Table struct {
	gc.Header
	slots []slot
	count int // occupied and tombstone slots
	live  int // occupied slots
}

var _ gc.Object = (*Table)(nil)

// NewTable returns a table with room for at least capacity slots.
func NewTable(capacity int) *Table {
	n := DefaultTableCapacity
	for n < capacity {
		n <<= 1
	}
	return &Table{slots: make([]slot, n)}
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return t.live
}

// Count returns the number of used slots, including tombstones.
func (t *Table) Count() int {
	return t.count
}

// Cap returns the number of slots.
func (t *Table) Cap() int {
	return len(t.slots)
}

// find returns the index of the slot holding key, or when key is absent the
// first tombstone passed while scanning for it, or failing that the empty
// slot which ended the scan.
func (t *Table) find(sig []byte, hash uint32) int {
	mask := uint32(len(t.slots) - 1)
	index := hash & mask
	tomb := -1
	for {
		s := t.slots[index]
		switch {
		case s.empty():
			if tomb >= 0 {
				return tomb
			}
			return int(index)
		case s.tombstone():
			if tomb < 0 {
				tomb = int(index)
			}
		case s.key.Hash() == hash && s.key.Signature().Compare(sig) == 0:
			return int(index)
		}
		index = (index + 1) & mask
	}
}

// Get returns the value bound to key.
func (t *Table) Get(key *Value) (*Value, bool) {
	return t.GetSignature(key.Signature().Bytes(), key.Hash())
}

// GetSignature looks up an entry by the signature of its key.
func (t *Table) GetSignature(sig []byte, hash uint32) (*Value, bool) {
	s := t.slots[t.find(sig, hash)]
	if s.key == nil {
		return nil, false
	}
	return s.val, true
}

// Key returns the stored key equal to key.
func (t *Table) Key(key *Value) (*Value, bool) {
	s := t.slots[t.find(key.Signature().Bytes(), key.Hash())]
	if s.key == nil {
		return nil, false
	}
	return s.key, true
}

// Set binds key to val and reports whether key was not already present.
// Setting an existing key replaces its value and leaves the count alone.
func (t *Table) Set(key, val *Value) bool {
	if t.count+1 > len(t.slots)/2+len(t.slots)/4 {
		t.resize(len(t.slots) << 1)
	}
	i := t.find(key.Signature().Bytes(), key.Hash())
	s := &t.slots[i]
	if s.key != nil {
		s.val = val
		return false
	}
	if s.empty() {
		t.count++
	}
	t.live++
	s.key = key
	s.val = val
	return true
}

// Remove deletes key and reports whether it was present.
func (t *Table) Remove(key *Value) bool {
	i := t.find(key.Signature().Bytes(), key.Hash())
	s := &t.slots[i]
	if s.key == nil {
		return false
	}
	s.key = nil
	s.val = tombstone
	t.live--
	return true
}

// resize rehashes live entries into n slots.  Tombstones are dropped.
func (t *Table) resize(n int) {
	old := t.slots
	t.slots = make([]slot, n)
	t.count = 0
	t.live = 0
	for _, s := range old {
		if s.key == nil {
			continue
		}
		i := t.find(s.key.Signature().Bytes(), s.key.Hash())
		t.slots[i] = s
		t.count++
		t.live++
	}
}

// Range calls fn for each live entry in slot order until fn returns false.
func (t *Table) Range(fn func(key, val *Value) bool) {
	for _, s := range t.slots {
		if s.key == nil {
			continue
		}
		if !fn(s.key, s.val) {
			return
		}
	}
}

// Children implements gc.Object.
func (t *Table) Children(visit func(gc.Object)) {
	for _, s := range t.slots {
		if s.key == nil {
			continue
		}
		visit(s.key)
		if s.val != nil {
			visit(s.val)
		}
	}
}

// Release implements gc.Releaser.
func (t *Table) Release() {
	t.slots = nil
	t.count = 0
	t.live = 0
}
