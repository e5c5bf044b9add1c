// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import "github.com/arenajson/arenajson/resource"

// maxArraySize is the implementation limit beyond which Array mutations
// fail with ErrArrayTooLarge.
const maxArraySize = 1 << 28

// Array is a contiguous sequence of Values. Iterators (as returned by
// At's address or a raw slice from Values) are invalidated by any
// mutation that reallocates the backing storage.
type Array struct {
	handle resource.Handle
	elems  []Value
}

// NewArray returns an empty Array backed by h, cloning h for its own
// reference.
func NewArray(h resource.Handle) Array {
	return Array{handle: h.Clone()}
}

// Close releases the Array's resource reference, after closing every
// element it holds. a must not be used afterward without reinitializing
// it through NewArray.
func (a *Array) Close() {
	for i := range a.elems {
		a.elems[i].Close()
	}
	a.handle.Release()
	*a = Array{}
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// Cap returns the array's current capacity.
func (a *Array) Cap() int { return cap(a.elems) }

// Values returns the array's elements as a slice. The slice is only
// valid until the next mutating call.
func (a *Array) Values() []Value { return a.elems }

// At returns a pointer to the element at i, or a DOMError if i is out of
// range.
func (a *Array) At(i int) (*Value, error) {
	if i < 0 || i >= len(a.elems) {
		return nil, newDOMError(ErrOutOfRange, "array index out of range")
	}
	return &a.elems[i], nil
}

// Front returns a pointer to the first element.
func (a *Array) Front() (*Value, error) { return a.At(0) }

// Back returns a pointer to the last element.
func (a *Array) Back() (*Value, error) { return a.At(len(a.elems) - 1) }

// Reserve ensures the array can hold at least n elements without a
// further allocation.
func (a *Array) Reserve(n int) error {
	if n > maxArraySize {
		return newDOMError(ErrArrayTooLarge, "requested array capacity exceeds the implementation limit")
	}
	if n <= cap(a.elems) {
		return nil
	}
	newCap := growCapacity(cap(a.elems), n)
	next := make([]Value, len(a.elems), newCap)
	copy(next, a.elems)
	a.elems = next
	return nil
}

// PushBack appends v to the end of the array.
func (a *Array) PushBack(v Value) error {
	if len(a.elems) >= maxArraySize {
		v.Close()
		return newDOMError(ErrArrayTooLarge, "array has reached the implementation's maximum size")
	}
	if len(a.elems) == cap(a.elems) {
		if err := a.Reserve(len(a.elems) + 1); err != nil {
			v.Close()
			return err
		}
	}
	a.elems = append(a.elems, v)
	return nil
}

// Insert inserts v at index i, shifting subsequent elements right.
func (a *Array) Insert(i int, v Value) error {
	if i < 0 || i > len(a.elems) {
		v.Close()
		return newDOMError(ErrOutOfRange, "array insert index out of range")
	}
	if err := a.PushBack(Value{}); err != nil {
		v.Close()
		return err
	}
	copy(a.elems[i+1:], a.elems[i:len(a.elems)-1])
	a.elems[i] = v
	return nil
}

// Erase removes the element at index i.
func (a *Array) Erase(i int) error {
	return a.EraseRange(i, i+1)
}

// EraseRange removes elements in [from, to).
func (a *Array) EraseRange(from, to int) error {
	if from < 0 || to > len(a.elems) || from > to {
		return newDOMError(ErrOutOfRange, "array erase range out of range")
	}
	for i := from; i < to; i++ {
		a.elems[i].Close()
	}
	a.elems = append(a.elems[:from], a.elems[to:]...)
	return nil
}

// Clear removes all elements without releasing capacity.
func (a *Array) Clear() {
	for i := range a.elems {
		a.elems[i].Close()
	}
	a.elems = a.elems[:0]
}

// Resize changes the array's length to n. Newly-exposed elements (when
// growing) are null Values.
func (a *Array) Resize(n int) error {
	if n <= len(a.elems) {
		for i := n; i < len(a.elems); i++ {
			a.elems[i].Close()
		}
		a.elems = a.elems[:n]
		return nil
	}
	if err := a.Reserve(n); err != nil {
		return err
	}
	old := len(a.elems)
	a.elems = a.elems[:n]
	for i := old; i < n; i++ {
		a.elems[i] = Null()
	}
	return nil
}
