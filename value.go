// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"math"

	"github.com/arenajson/arenajson/resource"
)

// Value is a tagged union over {null, bool, i64, u64, f64, string, array,
// object}. Its kind is exactly one of those eight at all times after
// construction.
//
// A Value contains no pointer back into itself, so a plain Go struct
// assignment is already a trivially-relocatable move: copying the
// struct transfers ownership of whatever String/Array/Object backing
// storage it holds. Move performs exactly that copy and then resets
// the source to null; Copy performs a deep copy instead, which is needed
// whenever the source and destination do not share a resource.
type Value struct {
	kind   Kind
	handle resource.Handle
	num    uint64 // raw bits: bool (0/1), int64, uint64, or float64
	str    String
	arr    Array
	obj    Object
}

// Null returns a Value of kind null backed by the default resource.
func Null() Value { return Value{kind: KindNull, handle: resource.Default()} }

// NullIn returns a Value of kind null backed by h, cloning h for its own
// reference.
func NullIn(h resource.Handle) Value { return Value{kind: KindNull, handle: h.Clone()} }

// NewBool returns a Value of kind bool.
func NewBool(b bool) Value {
	v := Value{kind: KindBool, handle: resource.Default()}
	if b {
		v.num = 1
	}
	return v
}

// NewInt64 returns a Value of kind i64.
func NewInt64(n int64) Value {
	return Value{kind: KindInt64, handle: resource.Default(), num: uint64(n)}
}

// NewUint64 returns a Value of kind u64.
func NewUint64(n uint64) Value {
	return Value{kind: KindUint64, handle: resource.Default(), num: n}
}

// NewFloat64 returns a Value of kind f64.
func NewFloat64(f float64) Value {
	return Value{kind: KindFloat64, handle: resource.Default(), num: math.Float64bits(f)}
}

// NewStringValue returns a Value of kind string holding a copy of s,
// backed by h. The Value and its embedded String share the single
// reference NewStringFrom clones from h.
func NewStringValue(h resource.Handle, s string) Value {
	str := NewStringFrom(h, s)
	return Value{kind: KindString, handle: str.handle, str: str}
}

// NewArrayValue returns a Value of kind array wrapping an empty Array
// backed by h. The Value and its embedded Array share the single
// reference NewArray clones from h.
func NewArrayValue(h resource.Handle) Value {
	arr := NewArray(h)
	return Value{kind: KindArray, handle: arr.handle, arr: arr}
}

// NewObjectValue returns a Value of kind object wrapping an empty Object
// backed by h. The Value and its embedded Object share the single
// reference NewObject clones from h.
func NewObjectValue(h resource.Handle) Value {
	obj := NewObject(h)
	return Value{kind: KindObject, handle: obj.handle, obj: obj}
}

// Kind reports the Value's dynamic type tag.
func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool    { return v.kind == KindNull }
func (v *Value) IsBool() bool    { return v.kind == KindBool }
func (v *Value) IsInt64() bool   { return v.kind == KindInt64 }
func (v *Value) IsUint64() bool  { return v.kind == KindUint64 }
func (v *Value) IsFloat64() bool { return v.kind == KindFloat64 }
func (v *Value) IsString() bool  { return v.kind == KindString }
func (v *Value) IsArray() bool   { return v.kind == KindArray }
func (v *Value) IsObject() bool  { return v.kind == KindObject }

// IsNumber reports whether the Value holds any of the three numeric
// kinds.
func (v *Value) IsNumber() bool {
	return v.kind == KindInt64 || v.kind == KindUint64 || v.kind == KindFloat64
}

// Resource returns the resource handle this Value (and all of its
// children) was allocated from.
func (v *Value) Resource() resource.Handle { return v.handle }

// AsBool returns the Value's boolean, or a DOMError if the kind is not
// bool.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, kindMismatchError(v.kind, KindBool)
	}
	return v.num != 0, nil
}

// AsInt64 returns the Value's signed integer, or a DOMError if the kind
// is not i64.
func (v *Value) AsInt64() (int64, error) {
	if v.kind != KindInt64 {
		return 0, kindMismatchError(v.kind, KindInt64)
	}
	return int64(v.num), nil
}

// AsUint64 returns the Value's unsigned integer, or a DOMError if the
// kind is not u64.
func (v *Value) AsUint64() (uint64, error) {
	if v.kind != KindUint64 {
		return 0, kindMismatchError(v.kind, KindUint64)
	}
	return v.num, nil
}

// AsFloat64 returns the Value's double, or a DOMError if the kind is not
// f64.
func (v *Value) AsFloat64() (float64, error) {
	if v.kind != KindFloat64 {
		return 0, kindMismatchError(v.kind, KindFloat64)
	}
	return math.Float64frombits(v.num), nil
}

// AsNumber returns the Value's numeric value widened to float64,
// regardless of whether it is stored as i64, u64, or f64.
func (v *Value) AsNumber() (float64, error) {
	switch v.kind {
	case KindInt64:
		return float64(int64(v.num)), nil
	case KindUint64:
		return float64(v.num), nil
	case KindFloat64:
		return math.Float64frombits(v.num), nil
	default:
		return 0, kindMismatchError(v.kind, KindFloat64)
	}
}

// AsString returns a pointer to the Value's String, or a DOMError if the
// kind is not string.
func (v *Value) AsString() (*String, error) {
	if v.kind != KindString {
		return nil, kindMismatchError(v.kind, KindString)
	}
	return &v.str, nil
}

// AsArray returns a pointer to the Value's Array, or a DOMError if the
// kind is not array.
func (v *Value) AsArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, kindMismatchError(v.kind, KindArray)
	}
	return &v.arr, nil
}

// AsObject returns a pointer to the Value's Object, or a DOMError if the
// kind is not object.
func (v *Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, kindMismatchError(v.kind, KindObject)
	}
	return &v.obj, nil
}

// Swap exchanges the contents of v and other in O(1).
func (v *Value) Swap(other *Value) { *v, *other = *other, *v }

// Close releases v's resource reference (and, recursively, any
// children's), leaving v the zero Value (kind null, no resource
// reference held). Call this before discarding or overwriting a Value
// that was allocated from an owning resource.Handle, so the handle's
// refcount can reach zero and the resource reclaim its memory.
func (v *Value) Close() {
	switch v.kind {
	case KindString:
		v.str.Close()
	case KindArray:
		v.arr.Close()
	case KindObject:
		v.obj.Close()
	default:
		v.handle.Release()
	}
	*v = Value{}
}

// Move transfers ownership of other's contents into v and resets other
// to null. If v and other share a resource this is an O(1) byte
// relocation; otherwise a move across resources falls back to Copy
// semantics, since storage from one resource cannot be adopted by
// another without actually duplicating it.
func (v *Value) Move(other *Value) error {
	if v.handle.Equal(other.handle) || other.kind == KindNull {
		v.Close()
		*v = *other
		*other = NullIn(other.handle)
		return nil
	}
	if err := v.Copy(other); err != nil {
		return err
	}
	*other = NullIn(other.handle)
	return nil
}

// Copy deep-copies other into v, allocating any string/array/object
// children from v's own resource. It provides the strong exception
// guarantee: on failure, v is left unchanged.
func (v *Value) Copy(other *Value) error {
	scratch, err := deepCopy(v.handle, other)
	if err != nil {
		return err
	}
	v.Close()
	*v = scratch
	return nil
}

func deepCopy(h resource.Handle, src *Value) (Value, error) {
	switch src.kind {
	case KindString:
		str := NewStringFrom(h, src.str.String())
		return Value{kind: KindString, handle: str.handle, str: str}, nil
	case KindArray:
		dst := NewArray(h)
		if err := dst.Reserve(src.arr.Len()); err != nil {
			dst.Close()
			return Value{}, err
		}
		for i := range src.arr.elems {
			ev, err := deepCopy(h, &src.arr.elems[i])
			if err != nil {
				dst.Close()
				return Value{}, err
			}
			if err := dst.PushBack(ev); err != nil {
				dst.Close()
				return Value{}, err
			}
		}
		return Value{kind: KindArray, handle: dst.handle, arr: dst}, nil
	case KindObject:
		dst := NewObject(h)
		for i := range src.obj.entries {
			e := &src.obj.entries[i]
			ev, err := deepCopy(h, &e.value)
			if err != nil {
				dst.Close()
				return Value{}, err
			}
			if _, _, err := dst.Emplace(string(e.key), ev); err != nil {
				dst.Close()
				return Value{}, err
			}
		}
		return Value{kind: KindObject, handle: dst.handle, obj: dst}, nil
	default:
		v := *src
		v.handle = h.Clone()
		return v, nil
	}
}
