// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"testing"

	"github.com/arenajson/arenajson/resource"
)

func TestBuilderArenaBacked(t *testing.T) {
	arena := resource.NewArena(0)
	h := resource.NewOwning(arena)

	b := NewBuilder(h)
	p := NewParser(b, ParseOptions{})
	if _, err := p.WriteSome([]byte(`{"a":[1,2,3],"b":"text"}`)); err != nil {
		t.Fatalf("WriteSome: %v", err)
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	root := b.Value()
	if !root.Resource().Equal(h) {
		t.Fatalf("Builder did not allocate the root value from the supplied resource")
	}
	obj, err := root.AsObject()
	if err != nil {
		t.Fatalf("AsObject: %v", err)
	}
	if obj.Len() != 2 {
		t.Fatalf("got %d entries, want 2", obj.Len())
	}
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder(resource.Heap())
	p := NewParser(b, ParseOptions{})
	p.WriteSome([]byte(`1`))
	p.Finish()
	if n, err := b.Value().AsInt64(); err != nil || n != 1 {
		t.Fatalf("first document: got %d, %v", n, err)
	}

	b.Reset(resource.Heap())
	p.Reset(ParseOptions{})
	p.SetHandler(b)
	p.WriteSome([]byte(`2`))
	p.Finish()
	if n, err := b.Value().AsInt64(); err != nil || n != 2 {
		t.Fatalf("second document: got %d, %v", n, err)
	}
}
