// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

// Arena is a monotonic bump allocator. All allocations made through it
// live until the Arena itself is discarded; Deallocate is a legal but
// no-op call. A single Arena must be owned by one goroutine at a time —
// it performs no internal locking.
type Arena struct {
	chunks    [][]byte
	chunkSize int
	off       int // offset into the last chunk
}

const defaultArenaChunkSize = 4096

// maxArenaChunkSize bounds how large a single chunk may grow to via
// doubling, so a long-lived arena with one huge allocation can't balloon
// every subsequent chunk to match it.
const maxArenaChunkSize = 1 << 20

// NewArena constructs an Arena whose first chunk is chunkSize bytes (a
// default is used if chunkSize <= 0).
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = defaultArenaChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// Allocate returns n zeroed bytes, bump-allocating from the current chunk
// or growing a new one if the current chunk cannot satisfy the request.
func (a *Arena) Allocate(n int) []byte {
	if n == 0 {
		return nil
	}
	if len(a.chunks) == 0 || a.off+n > len(a.chunks[len(a.chunks)-1]) {
		a.growFor(n)
	}
	last := a.chunks[len(a.chunks)-1]
	b := last[a.off : a.off+n : a.off+n]
	a.off += n
	return b
}

// growFor appends a new chunk sized to hold at least n bytes, doubling the
// chunk size policy (bounded by maxArenaChunkSize) each time a fresh chunk
// is needed.
func (a *Arena) growFor(n int) {
	size := a.chunkSize
	for size < n {
		if size >= maxArenaChunkSize {
			size = n // a single oversized allocation gets its own chunk
			break
		}
		size *= 2
	}
	if size > maxArenaChunkSize && n <= maxArenaChunkSize {
		size = maxArenaChunkSize
	}
	a.chunks = append(a.chunks, make([]byte, size))
	a.chunkSize = min(a.chunkSize*2, maxArenaChunkSize)
	a.off = 0
}

// Deallocate is a no-op: arena memory is reclaimed only when the Arena
// itself is dropped or Reset.
func (a *Arena) Deallocate(b []byte) {}

// IsEqual reports whether other is this same Arena instance.
func (a *Arena) IsEqual(other Resource) bool {
	o, ok := other.(*Arena)
	return ok && o == a
}

// Reset discards all chunks allocated so far, invalidating every slice
// previously returned by Allocate. The Arena may be reused afterward.
func (a *Arena) Reset() {
	a.chunks = nil
	a.off = 0
}
