// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"testing"

	"github.com/arenajson/arenajson/resource"
)

func TestArrayPushBackAndAt(t *testing.T) {
	a := NewArray(resource.Heap())
	for i := int64(0); i < 10; i++ {
		if err := a.PushBack(NewInt64(i)); err != nil {
			t.Fatalf("PushBack(%d): %v", i, err)
		}
	}
	if a.Len() != 10 {
		t.Fatalf("got length %d, want 10", a.Len())
	}
	for i := int64(0); i < 10; i++ {
		v, err := a.At(int(i))
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		n, err := v.AsInt64()
		if err != nil || n != i {
			t.Fatalf("At(%d) = %v, %v; want %d, nil", i, n, err, i)
		}
	}
}

func TestArrayAtOutOfRange(t *testing.T) {
	a := NewArray(resource.Heap())
	if _, err := a.At(0); err == nil {
		t.Fatalf("expected an error indexing an empty array")
	} else if de, ok := err.(*DOMError); !ok || de.Code != ErrOutOfRange {
		t.Fatalf("got error %v, want ErrOutOfRange", err)
	}
}

func TestArrayInsertShiftsElements(t *testing.T) {
	a := NewArray(resource.Heap())
	for _, n := range []int64{1, 2, 4} {
		if err := a.PushBack(NewInt64(n)); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Insert(2, NewInt64(3)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	want := []int64{1, 2, 3, 4}
	for i, w := range want {
		v, _ := a.At(i)
		got, _ := v.AsInt64()
		if got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestArrayEraseRange(t *testing.T) {
	a := NewArray(resource.Heap())
	for _, n := range []int64{0, 1, 2, 3, 4} {
		a.PushBack(NewInt64(n))
	}
	if err := a.EraseRange(1, 3); err != nil {
		t.Fatalf("EraseRange: %v", err)
	}
	want := []int64{0, 3, 4}
	if a.Len() != len(want) {
		t.Fatalf("got length %d, want %d", a.Len(), len(want))
	}
	for i, w := range want {
		v, _ := a.At(i)
		got, _ := v.AsInt64()
		if got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestArrayResizeGrowFillsNull(t *testing.T) {
	a := NewArray(resource.Heap())
	a.PushBack(NewInt64(1))
	if err := a.Resize(3); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	v, _ := a.At(1)
	if !v.IsNull() {
		t.Fatalf("expected newly-exposed element to be null, got %v", v.Kind())
	}
	v, _ = a.At(2)
	if !v.IsNull() {
		t.Fatalf("expected newly-exposed element to be null, got %v", v.Kind())
	}
}

func TestArrayFrontBack(t *testing.T) {
	a := NewArray(resource.Heap())
	a.PushBack(NewInt64(1))
	a.PushBack(NewInt64(2))
	a.PushBack(NewInt64(3))
	f, _ := a.Front()
	b, _ := a.Back()
	fv, _ := f.AsInt64()
	bv, _ := b.AsInt64()
	if fv != 1 || bv != 3 {
		t.Fatalf("Front=%d Back=%d, want 1, 3", fv, bv)
	}
}
