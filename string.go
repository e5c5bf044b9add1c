// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"bytes"

	"github.com/arenajson/arenajson/resource"
)

// ssoCap is the short-string-optimization threshold: strings up to this
// many bytes live inline in the String control block with no resource
// allocation. 15 matches common small-string layouts elsewhere in the
// ecosystem.
const ssoCap = 15

// maxStringSize is the implementation limit beyond which String
// operations fail with ErrStringTooLarge.
const maxStringSize = 1<<32 - 1

// String is a mutable byte sequence with a short-string optimization.
// It is not required to be valid UTF-8 at this layer — the Parser
// enforces UTF-8 on its input before any bytes reach a String.
type String struct {
	handle resource.Handle
	inline [ssoCap]byte
	length int
	heap   []byte // non-nil only once length has exceeded ssoCap at some point
}

// NewString returns an empty String backed by h, cloning h for its own
// reference.
func NewString(h resource.Handle) String {
	return String{handle: h.Clone()}
}

// NewStringFrom returns a String initialized to a copy of s, backed by h.
func NewStringFrom(h resource.Handle, s string) String {
	str := String{handle: h.Clone()}
	str.Append([]byte(s))
	return str
}

// Len returns the number of bytes in the string.
func (s *String) Len() int { return s.length }

// Cap returns the string's current capacity.
func (s *String) Cap() int {
	if s.heap != nil {
		return cap(s.heap)
	}
	return ssoCap
}

// Bytes returns the string's contents. The returned slice is only valid
// until the next mutating call.
func (s *String) Bytes() []byte {
	if s.heap != nil {
		return s.heap[:s.length]
	}
	return s.inline[:s.length]
}

// String returns a copy of the string's contents as a Go string.
func (s *String) String() string { return string(s.Bytes()) }

// Compare performs a byte lexicographic comparison, returning a negative
// number, zero, or a positive number as s is less than, equal to, or
// greater than other.
func (s *String) Compare(other *String) int {
	return bytes.Compare(s.Bytes(), other.Bytes())
}

// Clear empties the string without releasing its capacity.
func (s *String) Clear() { s.length = 0 }

// Reserve ensures the string can hold at least n bytes without a further
// allocation, growing geometrically (factor 1.5) if needed.
func (s *String) Reserve(n int) error {
	if n > maxStringSize {
		return newDOMError(ErrStringTooLarge, "requested string capacity exceeds the implementation limit")
	}
	if n <= s.Cap() {
		return nil
	}
	newCap := growCapacity(s.Cap(), n)
	buf := s.handle.Get().Allocate(newCap)
	copy(buf, s.Bytes())
	if old := s.heap; old != nil {
		s.handle.Get().Deallocate(old)
	}
	s.heap = buf[:s.length]
	return nil
}

// growCapacity implements the String/Array/Object shared growth policy:
// new_capacity = max(requested, old_capacity * 1.5).
func growCapacity(oldCap, requested int) int {
	grown := oldCap + oldCap/2
	if grown < requested {
		return requested
	}
	return grown
}

// Append adds b to the end of the string.
func (s *String) Append(b []byte) error {
	if s.length+len(b) > maxStringSize {
		return newDOMError(ErrStringTooLarge, "appending would exceed the implementation's maximum string size")
	}
	if s.length+len(b) > s.Cap() {
		if err := s.Reserve(s.length + len(b)); err != nil {
			return err
		}
	}
	if s.heap != nil {
		s.heap = append(s.heap[:s.length], b...)
	} else {
		copy(s.inline[s.length:], b)
	}
	s.length += len(b)
	return nil
}

// PushBack appends a single byte.
func (s *String) PushBack(c byte) error { return s.Append([]byte{c}) }

// Resize changes the string's length to n, filling any newly-exposed
// bytes with fill. Shrinking never deallocates.
func (s *String) Resize(n int, fill byte) error {
	if n <= s.length {
		s.length = n
		return nil
	}
	if err := s.Reserve(n); err != nil {
		return err
	}
	b := s.mutableBytes()
	for i := s.length; i < n; i++ {
		b[i] = fill
	}
	s.length = n
	if s.heap != nil {
		s.heap = s.heap[:n]
	}
	return nil
}

func (s *String) mutableBytes() []byte {
	if s.heap != nil {
		return s.heap[:cap(s.heap)]
	}
	return s.inline[:]
}

// Close releases the String's resource reference and any heap buffer it
// holds. s must not be used afterward without reinitializing it through
// NewString or NewStringFrom.
func (s *String) Close() {
	if s.heap != nil {
		s.handle.Get().Deallocate(s.heap)
	}
	s.handle.Release()
	*s = String{}
}

// ShrinkToFit releases any heap buffer back to the resource and moves the
// contents inline if they now fit, or to a tightly-sized heap buffer
// otherwise.
func (s *String) ShrinkToFit() {
	if s.heap == nil {
		return
	}
	if s.length <= ssoCap {
		copy(s.inline[:], s.heap[:s.length])
		s.handle.Get().Deallocate(s.heap)
		s.heap = nil
		return
	}
	buf := s.handle.Get().Allocate(s.length)
	copy(buf, s.heap[:s.length])
	s.handle.Get().Deallocate(s.heap)
	s.heap = buf[:s.length]
}
