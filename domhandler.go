// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import "github.com/arenajson/arenajson/resource"

// builderFrame is one level of in-progress container construction.
type builderFrame struct {
	isObject bool
	arr      Array
	obj      Object
	pendKey  []byte // set between OnKey and the value that follows it
}

// Builder is a Handler that assembles a Value tree from parser events,
// allocating every node from a caller-supplied resource. It is the
// reference DOM consumer: any Handler can drive application logic
// directly from parser events, but most callers just want a tree.
//
// On encountering a duplicate object key, Builder keeps the
// first-occurrence value and discards the later one. The Parser itself
// never rejects duplicate keys, since key uniqueness is a DOM policy
// decision, not a grammar rule.
type Builder struct {
	handle resource.Handle
	root   Value
	stack  []builderFrame
	keyBuf []byte
	strBuf []byte
	done   bool
}

// NewBuilder returns a Builder that allocates every Value it constructs
// from h, cloning h for its own reference.
func NewBuilder(h resource.Handle) *Builder {
	return &Builder{handle: h.Clone()}
}

// Value returns the completed document. It is only meaningful after the
// parser has reported OnDocumentEnd.
func (b *Builder) Value() *Value { return &b.root }

// Reset clears the builder so it can be reused for another document,
// optionally against a new resource.
func (b *Builder) Reset(h resource.Handle) {
	b.root.Close()
	b.handle.Release()
	b.handle = h.Clone()
	b.stack = b.stack[:0]
	b.keyBuf = b.keyBuf[:0]
	b.strBuf = b.strBuf[:0]
	b.done = false
}

func (b *Builder) OnDocumentBegin() error { return nil }

func (b *Builder) OnDocumentEnd() error {
	b.done = true
	return nil
}

func (b *Builder) OnObjectBegin() error {
	b.stack = append(b.stack, builderFrame{isObject: true, obj: NewObject(b.handle)})
	return nil
}

func (b *Builder) OnObjectEnd() error {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	v := Value{kind: KindObject, handle: top.obj.handle, obj: top.obj}
	return b.deliver(v)
}

func (b *Builder) OnArrayBegin() error {
	b.stack = append(b.stack, builderFrame{arr: NewArray(b.handle)})
	return nil
}

func (b *Builder) OnArrayEnd() error {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	v := Value{kind: KindArray, handle: top.arr.handle, arr: top.arr}
	return b.deliver(v)
}

func (b *Builder) OnKeyPart(p []byte) error {
	b.keyBuf = append(b.keyBuf, p...)
	return nil
}

func (b *Builder) OnKey(p []byte) error {
	b.keyBuf = append(b.keyBuf, p...)
	top := &b.stack[len(b.stack)-1]
	top.pendKey = append(top.pendKey[:0], b.keyBuf...)
	b.keyBuf = b.keyBuf[:0]
	return nil
}

func (b *Builder) OnStringPart(p []byte) error {
	b.strBuf = append(b.strBuf, p...)
	return nil
}

func (b *Builder) OnString(p []byte) error {
	b.strBuf = append(b.strBuf, p...)
	v := NewStringValue(b.handle, string(b.strBuf))
	b.strBuf = b.strBuf[:0]
	return b.deliver(v)
}

func (b *Builder) OnInt64(n int64) error   { return b.deliver(NewInt64(n)) }
func (b *Builder) OnUint64(n uint64) error { return b.deliver(NewUint64(n)) }
func (b *Builder) OnDouble(f float64) error { return b.deliver(NewFloat64(f)) }
func (b *Builder) OnBool(v bool) error     { return b.deliver(NewBool(v)) }
func (b *Builder) OnNull() error           { return b.deliver(NullIn(b.handle)) }

// deliver places v at the current cursor position: as the root if the
// stack is empty, as the next array element, or as the value for the
// pending object key (first occurrence wins on a duplicate).
func (b *Builder) deliver(v Value) error {
	if len(b.stack) == 0 {
		b.root = v
		return nil
	}
	top := &b.stack[len(b.stack)-1]
	if top.isObject {
		key := top.pendKey
		top.pendKey = nil
		if _, present := top.obj.Find(string(key)); present {
			v.Close()
			return nil
		}
		_, _, err := top.obj.Emplace(string(key), v)
		return err
	}
	return top.arr.PushBack(v)
}
