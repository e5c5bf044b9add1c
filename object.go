// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"bytes"

	"github.com/cespare/xxhash/v2"

	"github.com/arenajson/arenajson/resource"
)

// minSlotFloor is the smallest hash-index size used for a non-empty
// Object, so a handful of keys never shares a single bucket.
const minSlotFloor = 16

// maxKeySize and maxObjectSize are implementation limits; requests past
// either fail with a dedicated error code rather than attempting the
// allocation.
const (
	maxKeySize    = 1<<32 - 1
	maxObjectSize = 1 << 28
)

// objectEntry is one (key, value) record. next chains entries that hash
// to the same slot; -1 marks the end of a chain.
type objectEntry struct {
	key   []byte
	value Value
	next  int
}

// Object is an insertion-ordered map from string keys to Values with
// unique keys, backed by a separate hash index. Each slot holds the
// index of the first entry that hashes there; collisions chain through
// entries[i].next rather than probing other slots.
type Object struct {
	handle  resource.Handle
	slots   []int // power-of-two sized; -1 = empty
	entries []objectEntry
	size    int
}

// NewObject returns an empty Object backed by h, cloning h for its own
// reference.
func NewObject(h resource.Handle) Object {
	return Object{handle: h.Clone()}
}

// Close releases the Object's resource reference, after closing every
// value it holds. o must not be used afterward without reinitializing it
// through NewObject.
func (o *Object) Close() {
	for i := range o.entries {
		o.entries[i].value.Close()
	}
	o.handle.Release()
	*o = Object{}
}

// Len returns the number of entries.
func (o *Object) Len() int { return o.size }

func hashKey(key []byte) uint64 { return xxhash.Sum64(key) }

func slotIndex(h uint64, slotCount int) int { return int(h & uint64(slotCount-1)) }

// find returns the entry index for key, or -1 if absent. Expected O(1),
// worst case O(size).
func (o *Object) find(key []byte) int {
	if len(o.slots) == 0 {
		return -1
	}
	h := hashKey(key)
	idx := o.slots[slotIndex(h, len(o.slots))]
	for idx != -1 {
		e := &o.entries[idx]
		if len(e.key) == len(key) && bytes.Equal(e.key, key) {
			return idx
		}
		idx = e.next
	}
	return -1
}

// Find returns a pointer to the value stored under key, and whether it
// was present.
func (o *Object) Find(key string) (*Value, bool) {
	idx := o.find([]byte(key))
	if idx < 0 {
		return nil, false
	}
	return &o.entries[idx].value, true
}

// KeyAt returns the key of the i-th entry in insertion order.
func (o *Object) KeyAt(i int) []byte { return o.entries[i].key }

// ValueAt returns a pointer to the value of the i-th entry in insertion
// order.
func (o *Object) ValueAt(i int) *Value { return &o.entries[i].value }

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// rehash rebuilds the hash index at newSlotCount, re-inserting every
// existing entry by iterating entries in order (head-insertion per
// bucket). The entries slice itself is never reordered, which is what
// preserves insertion order across a rehash.
func (o *Object) rehash(newSlotCount int) {
	slots := make([]int, newSlotCount)
	for i := range slots {
		slots[i] = -1
	}
	for i := range o.entries {
		h := hashKey(o.entries[i].key)
		slot := slotIndex(h, newSlotCount)
		o.entries[i].next = slots[slot]
		slots[slot] = i
	}
	o.slots = slots
}

func (o *Object) ensureSlotCapacity() {
	if o.size+1 <= len(o.slots) {
		return
	}
	newCount := nextPow2(len(o.slots) * 2)
	if newCount < minSlotFloor {
		newCount = minSlotFloor
	}
	if newCount < o.size+1 {
		newCount = nextPow2(o.size + 1)
	}
	o.rehash(newCount)
}

// upsert is the shared implementation behind Emplace, InsertOrAssign,
// and Set (operator[]): if key is present, it either leaves the existing
// value alone or overwrites it (assignIfFound), and always returns the
// existing value's pointer with inserted=false; if absent, it inserts
// value and returns the new pointer with inserted=true.
func (o *Object) upsert(key string, value Value, assignIfFound bool) (*Value, bool, error) {
	kb := []byte(key)
	if len(kb) > maxKeySize {
		value.Close()
		return nil, false, newDOMError(ErrKeyTooLarge, "object key exceeds the implementation's maximum key size")
	}
	if idx := o.find(kb); idx >= 0 {
		if assignIfFound {
			o.entries[idx].value.Close()
			o.entries[idx].value = value
		} else {
			value.Close()
		}
		return &o.entries[idx].value, false, nil
	}
	if o.size+1 > maxObjectSize {
		value.Close()
		return nil, false, newDOMError(ErrObjectTooLarge, "object has reached the implementation's maximum size")
	}
	o.ensureSlotCapacity()

	keyBuf := o.handle.Get().Allocate(len(kb))
	copy(keyBuf, kb)

	idx := len(o.entries)
	h := hashKey(kb)
	slot := slotIndex(h, len(o.slots))
	o.entries = append(o.entries, objectEntry{key: keyBuf, value: value, next: o.slots[slot]})
	o.slots[slot] = idx
	o.size++
	return &o.entries[idx].value, true, nil
}

// Emplace inserts (key, value) if key is absent, returning the new
// entry's value pointer and true; if key is already present, it returns
// the existing entry's value pointer, unmodified, and false.
func (o *Object) Emplace(key string, value Value) (*Value, bool, error) {
	return o.upsert(key, value, false)
}

// InsertOrAssign inserts (key, value) if absent, or overwrites the
// existing value if present. It returns the resulting value pointer and
// whether a new entry was inserted.
func (o *Object) InsertOrAssign(key string, value Value) (*Value, bool, error) {
	return o.upsert(key, value, true)
}

// Set implements operator[] semantics: it returns a pointer to the
// value stored under key, inserting a null Value if key was absent.
func (o *Object) Set(key string) (*Value, error) {
	v, _, err := o.upsert(key, NullIn(o.handle), false)
	return v, err
}

// unlink removes idx from its own bucket chain, without touching the
// entries array itself.
func (o *Object) unlink(idx int) {
	h := hashKey(o.entries[idx].key)
	slot := slotIndex(h, len(o.slots))
	if o.slots[slot] == idx {
		o.slots[slot] = o.entries[idx].next
		return
	}
	p := o.slots[slot]
	for p != -1 {
		if o.entries[p].next == idx {
			o.entries[p].next = o.entries[idx].next
			return
		}
		p = o.entries[p].next
	}
}

// Erase removes the entry for key, if present, and reports whether it
// was found. The erased slot is filled by relocating the current last
// entry into it (patching whichever bucket chain referenced the old
// last index); every other entry's relative insertion order is
// preserved.
func (o *Object) Erase(key string) bool {
	idx := o.find([]byte(key))
	if idx < 0 {
		return false
	}
	o.entries[idx].value.Close()
	o.unlink(idx)
	last := len(o.entries) - 1
	if idx != last {
		h := hashKey(o.entries[last].key)
		slot := slotIndex(h, len(o.slots))
		if o.slots[slot] == last {
			o.slots[slot] = idx
		} else {
			p := o.slots[slot]
			for p != -1 {
				if o.entries[p].next == last {
					o.entries[p].next = idx
					break
				}
				p = o.entries[p].next
			}
		}
		o.entries[idx] = o.entries[last]
	}
	o.entries = o.entries[:last]
	o.size--
	return true
}

// Clear removes all entries, releasing the hash index.
func (o *Object) Clear() {
	for i := range o.entries {
		o.entries[i].value.Close()
	}
	o.slots = nil
	o.entries = o.entries[:0]
	o.size = 0
}
