// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import "testing"

func TestArenaAllocateWithinChunk(t *testing.T) {
	a := NewArena(64)
	b1 := a.Allocate(16)
	b2 := a.Allocate(16)
	if len(a.chunks) != 1 {
		t.Fatalf("expected allocations to share the first chunk, got %d chunks", len(a.chunks))
	}
	// b1 and b2 must not alias.
	b1[0] = 1
	b2[0] = 2
	if b1[0] == b2[0] {
		t.Fatalf("allocations alias the same memory")
	}
}

func TestArenaGrowsNewChunk(t *testing.T) {
	a := NewArena(16)
	a.Allocate(16)
	a.Allocate(16) // must not fit in the first 16-byte chunk
	if len(a.chunks) < 2 {
		t.Fatalf("expected a.Allocate to grow a new chunk, got %d chunks", len(a.chunks))
	}
}

func TestArenaOversizedAllocationGetsOwnChunk(t *testing.T) {
	a := NewArena(16)
	b := a.Allocate(1 << 21) // larger than maxArenaChunkSize
	if len(b) != 1<<21 {
		t.Fatalf("got len %d, want %d", len(b), 1<<21)
	}
}

func TestArenaIsEqual(t *testing.T) {
	a := NewArena(0)
	b := NewArena(0)
	if !a.IsEqual(a) {
		t.Fatalf("arena must be equal to itself")
	}
	if a.IsEqual(b) {
		t.Fatalf("distinct arenas must not be equal")
	}
}

func TestArenaReset(t *testing.T) {
	a := NewArena(64)
	a.Allocate(32)
	a.Reset()
	if len(a.chunks) != 0 || a.off != 0 {
		t.Fatalf("Reset did not clear arena state")
	}
	a.Allocate(8) // must still work after Reset
}
