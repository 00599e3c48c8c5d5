// Copyright © 2024 The ELPS authors

// Package gc implements the intrusive object heap used by the mal runtime.
// Every object allocated by the runtime embeds a Header and is linked into a
// single Heap list.  Collection is a stop-the-world mark and sweep driven by a
// generation bit which toggles after every cycle, so objects never need a
// separate unmark pass.
package gc

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/golang-collections/collections/stack"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// TracerName is the name of the tracer used for collection spans.
const TracerName = "github.com/luthersystems/mal/gc"

// Kind tags the concrete type of a heap object.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindText
	KindToken
	KindValue
	KindTable
	KindEnv
	KindSink
	numKinds
)

func (k Kind) String() string {
	kindStrings := [numKinds]string{
		KindUnknown: "unknown",
		KindText:    "text",
		KindToken:   "token",
		KindValue:   "value",
		KindTable:   "table",
		KindEnv:     "env",
		KindSink:    "sink",
	}
	if k >= numKinds {
		return kindStrings[KindUnknown]
	}
	return kindStrings[k]
}

// Header is embedded in every heap object.
type Header struct {
	kind    Kind
	mark    bool
	protect bool
	tracked bool
	next    Object
}

// GCHeader returns h.  Types embedding a Header satisfy the first half of the
// Object interface through it.
func (h *Header) GCHeader() *Header {
	return h
}

// Kind returns the tag assigned when the object was tracked.
func (h *Header) Kind() Kind {
	return h.kind
}

// Protected reports whether the object is a permanent root.
func (h *Header) Protected() bool {
	return h.protect
}

// Tracked reports whether the object is currently linked into a heap.
func (h *Header) Tracked() bool {
	return h.tracked
}

// Object is any value managed by a Heap.
type Object interface {
	GCHeader() *Header
	// Children calls visit for every heap object directly referenced by the
	// receiver.  Implementations must not pass nil pointers to visit.
	Children(visit func(Object))
}

// Releaser is implemented by objects that hold references which should be
// dropped once the object is swept.
type Releaser interface {
	Release()
}

// Stats summarizes a single collection.
type Stats struct {
	Marked   int
	Freed    int
	Live     int
	Duration time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("marked=%d freed=%d live=%d", s.Marked, s.Freed, s.Live)
}

// Heap is the intrusive list of all objects owned by one runtime.  A Heap is
// not safe for concurrent use.
type Heap struct {
	head       Object
	count      int
	generation bool
	cycles     int
	Log        logrus.FieldLogger
}

// NewHeap returns an empty heap.  Collection statistics are logged to log at
// debug level.  A nil log discards them.
func NewHeap(log logrus.FieldLogger) *Heap {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Heap{Log: log}
}

// Len returns the number of objects linked into the heap.
func (h *Heap) Len() int {
	return h.count
}

// Generation returns the current value of the generation toggle.
func (h *Heap) Generation() bool {
	return h.generation
}

// Cycles returns the number of completed collections.
func (h *Heap) Cycles() int {
	return h.cycles
}

// Track links obj into the heap.  New objects are created unmarked, carrying
// the opposite of the current generation, so anything not reached during the
// next mark phase is garbage.  Track returns obj.  Tracking an object twice is
// a no-op.
func (h *Heap) Track(obj Object, kind Kind) Object {
	hdr := obj.GCHeader()
	if hdr.tracked {
		return obj
	}
	hdr.kind = kind
	hdr.mark = !h.generation
	hdr.tracked = true
	hdr.next = h.head
	h.head = obj
	h.count++
	return obj
}

// Tag sets the kind an untracked object is given when Mark links it into
// the heap.  Tag has no effect on a tracked object.
func Tag(obj Object, kind Kind) {
	if hdr := obj.GCHeader(); !hdr.tracked {
		hdr.kind = kind
	}
}

// Protect sets the sticky protect bit on obj, making it a permanent root.
func (h *Heap) Protect(obj Object) {
	obj.GCHeader().protect = true
}

// Each calls fn for every object in the heap, most recently tracked first.
func (h *Heap) Each(fn func(Object)) {
	for obj := h.head; obj != nil; obj = obj.GCHeader().next {
		fn(obj)
	}
}

// Mark sets the mark of every object reachable from roots, or from a
// protected object, to the current generation and returns the number of
// objects visited.  Objects already at the current generation are skipped so
// cyclic structures terminate.  A reachable object that was never tracked is
// linked into the heap before it is marked.
func (h *Heap) Mark(roots ...Object) int {
	work := stack.New()
	push := func(obj Object) {
		hdr := obj.GCHeader()
		if !hdr.tracked {
			h.Track(obj, hdr.kind)
		}
		if hdr.mark != h.generation {
			work.Push(obj)
		}
	}
	for _, root := range roots {
		if root != nil {
			push(root)
		}
	}
	h.Each(func(obj Object) {
		if obj.GCHeader().protect {
			work.Push(obj)
		}
	})
	var marked int
	for work.Len() > 0 {
		obj := work.Pop().(Object)
		hdr := obj.GCHeader()
		if hdr.mark == h.generation {
			continue
		}
		hdr.mark = h.generation
		marked++
		obj.Children(push)
	}
	return marked
}

// Sweep unlinks every object whose mark differs from the current generation
// and whose protect bit is unset, then flips the generation.  Sweep returns
// the number of objects released.
func (h *Heap) Sweep() int {
	var freed int
	var prev Object
	obj := h.head
	for obj != nil {
		hdr := obj.GCHeader()
		next := hdr.next
		if hdr.mark != h.generation && !hdr.protect {
			if prev == nil {
				h.head = next
			} else {
				prev.GCHeader().next = next
			}
			h.release(obj)
			freed++
		} else {
			prev = obj
		}
		obj = next
	}
	h.generation = !h.generation
	return freed
}

// Collect runs one full mark and sweep cycle rooted at roots.  The cycle is
// recorded as a span on the global tracer provider.
func (h *Heap) Collect(ctx context.Context, roots ...Object) Stats {
	_, span := otel.Tracer(TracerName).Start(ctx, "gc.collect")
	defer span.End()

	start := time.Now()
	gen := h.generation
	var stats Stats
	stats.Marked = h.Mark(roots...)
	stats.Freed = h.Sweep()
	stats.Live = h.count
	stats.Duration = time.Since(start)
	h.cycles++

	span.SetAttributes(
		attribute.Bool("gc.generation", gen),
		attribute.Int("gc.marked", stats.Marked),
		attribute.Int("gc.freed", stats.Freed),
		attribute.Int("gc.live", stats.Live),
	)
	h.Log.WithFields(logrus.Fields{
		"generation": gen,
		"cycle":      h.cycles,
		"marked":     stats.Marked,
		"freed":      stats.Freed,
		"live":       stats.Live,
	}).Debug("gc cycle complete")
	return stats
}

// Free unlinks every object in the heap, protected objects included, and
// returns the number of objects released.  The heap may be reused afterwards.
func (h *Heap) Free() int {
	var freed int
	obj := h.head
	for obj != nil {
		next := obj.GCHeader().next
		h.release(obj)
		freed++
		obj = next
	}
	h.head = nil
	h.Log.WithField("freed", freed).Debug("heap freed")
	return freed
}

func (h *Heap) release(obj Object) {
	hdr := obj.GCHeader()
	hdr.next = nil
	hdr.tracked = false
	h.count--
	if r, ok := obj.(Releaser); ok {
		r.Release()
	}
}
