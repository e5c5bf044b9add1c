// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"testing"

	"github.com/arenajson/arenajson/resource"
)

func TestValueKindPredicates(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
	}{
		{Null(), KindNull},
		{NewBool(true), KindBool},
		{NewInt64(-1), KindInt64},
		{NewUint64(1), KindUint64},
		{NewFloat64(1.5), KindFloat64},
		{NewStringValue(resource.Heap(), "x"), KindString},
		{NewArrayValue(resource.Heap()), KindArray},
		{NewObjectValue(resource.Heap()), KindObject},
	}
	for _, tt := range tests {
		v := tt.v
		if v.Kind() != tt.kind {
			t.Fatalf("Kind() = %v, want %v", v.Kind(), tt.kind)
		}
	}
}

func TestValueAsAccessorMismatch(t *testing.T) {
	v := NewInt64(1)
	if _, err := v.AsBool(); err == nil {
		t.Fatalf("expected an error reading AsBool() on an i64 Value")
	} else if de, ok := err.(*DOMError); !ok || de.Code != ErrNotBool {
		t.Fatalf("got error %v, want ErrNotBool", err)
	}
	if _, err := v.AsString(); err == nil {
		t.Fatalf("expected an error reading AsString() on an i64 Value")
	}
}

func TestValueAsNumberWidensAllKinds(t *testing.T) {
	for _, v := range []Value{NewInt64(-3), NewUint64(3), NewFloat64(3.5)} {
		if _, err := v.AsNumber(); err != nil {
			t.Fatalf("AsNumber() on kind %v: %v", v.Kind(), err)
		}
	}
}

func TestValueSwap(t *testing.T) {
	a := NewInt64(1)
	b := NewStringValue(resource.Heap(), "hi")
	a.Swap(&b)
	if n, err := a.AsString(); err != nil || n.String() != "hi" {
		t.Fatalf("after Swap, a = %v, %v", n, err)
	}
	if n, err := b.AsInt64(); err != nil || n != 1 {
		t.Fatalf("after Swap, b = %v, %v", n, err)
	}
}

func TestValueMoveSameResourceIsOwnershipTransfer(t *testing.T) {
	h := resource.Heap()
	src := NewArrayValue(h)
	arr, _ := src.AsArray()
	arr.PushBack(NewInt64(7))

	var dst Value
	if err := dst.Move(&src); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !src.IsNull() {
		t.Fatalf("Move must leave the source null, got %v", src.Kind())
	}
	darr, err := dst.AsArray()
	if err != nil {
		t.Fatalf("AsArray: %v", err)
	}
	if darr.Len() != 1 {
		t.Fatalf("moved array has length %d, want 1", darr.Len())
	}
}

func TestValueCopyIsDeepAndIndependent(t *testing.T) {
	h := resource.Heap()
	src := NewArrayValue(h)
	arr, _ := src.AsArray()
	arr.PushBack(NewStringValue(h, "original"))

	var dst Value
	if err := dst.Copy(&src); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	// Mutating the copy must not affect the source.
	darr, _ := dst.AsArray()
	dv, _ := darr.At(0)
	ds, _ := dv.AsString()
	ds.Clear()
	ds.Append([]byte("mutated"))

	sarr, _ := src.AsArray()
	sv, _ := sarr.At(0)
	ss, _ := sv.AsString()
	if ss.String() != "original" {
		t.Fatalf("Copy aliased storage with the source: got %q", ss.String())
	}
}

func TestValueCopyNestedObject(t *testing.T) {
	h := resource.Heap()
	src := NewObjectValue(h)
	obj, _ := src.AsObject()
	obj.Emplace("n", NewInt64(5))
	inner := NewArrayValue(h)
	ia, _ := inner.AsArray()
	ia.PushBack(NewBool(true))
	obj.Emplace("arr", inner)

	var dst Value
	if err := dst.Copy(&src); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	dobj, _ := dst.AsObject()
	if dobj.Len() != 2 {
		t.Fatalf("copied object has %d entries, want 2", dobj.Len())
	}
	v, ok := dobj.Find("n")
	if !ok {
		t.Fatalf("copied object missing key n")
	}
	if n, _ := v.AsInt64(); n != 5 {
		t.Fatalf("copied n = %d, want 5", n)
	}
	av, ok := dobj.Find("arr")
	if !ok {
		t.Fatalf("copied object missing key arr")
	}
	aarr, _ := av.AsArray()
	if aarr.Len() != 1 {
		t.Fatalf("copied nested array has length %d, want 1", aarr.Len())
	}
}
