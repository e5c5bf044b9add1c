// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resource implements the pluggable memory-resource abstraction
// that every arenajson container and Value is built on top of: a
// process-wide default heap resource, and a monotonic arena that can be
// handed to a Value tree to make its allocations reclaimable in one shot.
package resource

import (
	"sync"

	"go.uber.org/atomic"
)

// Resource is a pluggable allocator. Implementations must be safe for
// concurrent Allocate/Deallocate calls iff they advertise themselves as
// thread-safe in their documentation; arenajson never assumes this on the
// caller's behalf.
type Resource interface {
	// Allocate returns a byte slice of length n. The returned slice's
	// backing array is owned by the resource until Deallocate is called
	// with it (or never, for a resource whose Deallocate is a no-op).
	Allocate(n int) []byte

	// Deallocate releases a slice previously returned by Allocate.
	// Implementations may treat this as a no-op (e.g. an arena).
	Deallocate(b []byte)

	// IsEqual reports whether other refers to the same underlying
	// resource, i.e. whether allocations from one may be deallocated
	// through the other.
	IsEqual(other Resource) bool
}

// heapResource forwards to the Go allocator/GC. Deallocate actually
// "frees" by returning the slice's memory to the garbage collector, which
// for Go means simply dropping the reference; there is nothing else to do.
type heapResource struct{}

func (heapResource) Allocate(n int) []byte     { return make([]byte, n) }
func (heapResource) Deallocate(b []byte)       {}
func (heapResource) IsEqual(o Resource) bool   { _, ok := o.(heapResource); return ok }

var theHeap = heapResource{}

// defaultOnce lazily initializes the process-wide default resource on
// first use and never tears it down.
var defaultOnce sync.Once
var defaultHandle Handle

// Default returns the process-wide default resource handle. It is
// lazily initialized on first call and never destroyed; callers must not
// rely on observing side effects of its initialization beyond the
// allocations it performs.
func Default() Handle {
	defaultOnce.Do(func() {
		defaultHandle = Handle{r: theHeap, owning: false}
	})
	return defaultHandle
}

// Heap returns a resource handle for the default heap resource. Unlike
// Default, this does not memoize a singleton handle, but since the heap
// resource is stateless that distinction is unobservable.
func Heap() Handle {
	return Handle{r: theHeap, owning: false}
}

// Handle is a tagged, possibly-shared reference to a Resource: either a
// non-owning reference to the process-wide default (the common case, no
// refcounting overhead), or a shared-owning reference to a user-provided
// resource such as an Arena. Clone bumps the refcount in the owning case
// (a plain struct copy does not); Release must be called once per
// Clone/NewOwning call to eventually reclaim the underlying resource.
//
// The zero Handle behaves as a non-owning reference to the heap
// resource.
type Handle struct {
	r      Resource
	owning bool
	refs   *atomic.Int64 // nil unless owning
}

// NewOwning wraps a user-provided resource in an owning Handle with an
// initial refcount of one. Use this for arenas and other resources whose
// lifetime must be explicitly managed.
func NewOwning(r Resource) Handle {
	return Handle{r: r, owning: true, refs: atomic.NewInt64(1)}
}

// Get returns the underlying Resource.
func (h Handle) Get() Resource {
	if h.r == nil {
		return theHeap
	}
	return h.r
}

// Clone returns a copy of h, bumping the refcount if h is owning.
func (h Handle) Clone() Handle {
	if h.owning && h.refs != nil {
		h.refs.Inc()
	}
	return h
}

// resetter is implemented by resources that can discard everything they
// have allocated and be reused, such as Arena. Release calls this on the
// underlying resource once the last owning Handle has been released.
type resetter interface {
	Reset()
}

// Release decrements the refcount if h is owning, and reclaims the
// underlying resource once the count reaches zero (by calling its Reset
// method, if it has one). Callers that hold an owning Handle (e.g.
// because they constructed it via NewOwning or cloned one) must call
// Release exactly once per Clone/NewOwning call they made. Non-owning
// handles (Default, Heap) ignore Release.
func (h Handle) Release() {
	if h.owning && h.refs != nil {
		if h.refs.Dec() == 0 {
			if r, ok := h.r.(resetter); ok {
				r.Reset()
			}
		}
	}
}

// Equal reports whether a and b refer to structurally equal resources,
// i.e. whether memory allocated through one may be deallocated through
// the other.
func (a Handle) Equal(b Handle) bool {
	return a.Get().IsEqual(b.Get())
}
