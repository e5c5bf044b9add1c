// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"math"
	"strconv"

	"github.com/arenajson/arenajson/internal/jsonwire"
)

// SerializeOptions configures a Serializer. The zero value is ready to
// use.
type SerializeOptions struct{}

// serFrame is one level of the cursor stack mirroring the Value tree
// being emitted. idx is the index of the next child to emit; a frame is
// popped once idx reaches the container's length.
type serFrame struct {
	isObject bool
	arr      *Array
	obj      *Object
	idx      int
}

// Serializer is a pull-mode emitter: repeated calls to Read copy
// canonical JSON bytes for the Value it was constructed around into the
// caller's buffer, without ever materializing the whole document at
// once. Internal state is a cursor stack mirroring the Value tree.
type Serializer struct {
	_ nonComparable

	opts      SerializeOptions
	root      *Value
	stack     []serFrame
	pending   []byte
	scratch   []byte
	scratchPB *pooledBuffer
	started   bool
	done      bool
	err       error
}

// NewSerializer returns a Serializer that emits v. Its number/string
// formatting scratch buffer is drawn from the package's shared
// bufferPool, for the same reason Parser's is.
func NewSerializer(v *Value, opts SerializeOptions) *Serializer {
	s := &Serializer{opts: opts}
	s.scratchPB = getBuffer()
	s.scratch = s.scratchPB.buf
	s.Reset(v, opts)
	return s
}

// Close returns the Serializer's scratch buffer to the shared pool.
func (s *Serializer) Close() {
	if s.scratchPB == nil {
		return
	}
	s.scratchPB.buf = s.scratch[:0]
	putBuffer(s.scratchPB)
	s.scratchPB = nil
	s.scratch = nil
}

// Reset rebinds the Serializer to emit v from the beginning, reusing its
// internal buffers.
func (s *Serializer) Reset(v *Value, opts SerializeOptions) {
	s.opts = opts
	s.root = v
	s.stack = s.stack[:0]
	s.pending = s.pending[:0]
	s.started = false
	s.done = false
	s.err = nil
}

// Read copies up to len(buf) bytes of output into buf, returning the
// number of bytes written and whether the document has been fully
// emitted. Once done is true, subsequent calls return (0, true, nil).
func (s *Serializer) Read(buf []byte) (int, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	n := 0
	for n < len(buf) {
		if len(s.pending) > 0 {
			c := copy(buf[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.done {
			break
		}
		if err := s.advance(); err != nil {
			s.err = err
			return n, false, err
		}
	}
	return n, s.done && len(s.pending) == 0, nil
}

func (s *Serializer) emit(b []byte) { s.pending = append(s.pending, b...) }

// advance produces the next chunk of output bytes (a punctuation byte,
// a whole quoted string, a whole number, or a container's open/close
// bracket) and appends it to s.pending. It performs at most one step of
// the tree walk per call.
func (s *Serializer) advance() error {
	if len(s.stack) == 0 {
		if s.started {
			s.done = true
			return nil
		}
		s.started = true
		return s.emitValue(s.root)
	}

	top := &s.stack[len(s.stack)-1]
	if top.isObject {
		if top.idx >= top.obj.Len() {
			s.emit(closeBrace)
			s.stack = s.stack[:len(s.stack)-1]
			return s.checkDone()
		}
		if top.idx > 0 {
			s.emit(comma)
		}
		key := top.obj.KeyAt(top.idx)
		quoted := jsonwire.AppendQuote(s.scratch[:0], key)
		s.scratch = quoted
		s.emit(quoted)
		s.emit(colon)
		val := top.obj.ValueAt(top.idx)
		top.idx++
		return s.emitValue(val)
	}

	if top.idx >= top.arr.Len() {
		s.emit(closeBracket)
		s.stack = s.stack[:len(s.stack)-1]
		return s.checkDone()
	}
	if top.idx > 0 {
		s.emit(comma)
	}
	val := &top.arr.Values()[top.idx]
	top.idx++
	return s.emitValue(val)
}

func (s *Serializer) checkDone() error {
	if len(s.stack) == 0 {
		s.done = true
	}
	return nil
}

var (
	openBrace    = []byte("{")
	closeBrace   = []byte("}")
	openBracket  = []byte("[")
	closeBracket = []byte("]")
	comma        = []byte(",")
	colon        = []byte(":")
	literalTrue  = []byte("true")
	literalFalse = []byte("false")
	literalNull  = []byte("null")
)

// emitValue writes the opening token(s) for v. Scalars are written in
// full; containers push a frame and are finished by later advance
// calls.
func (s *Serializer) emitValue(v *Value) error {
	switch v.Kind() {
	case KindNull:
		s.emit(literalNull)
	case KindBool:
		b, _ := v.AsBool()
		if b {
			s.emit(literalTrue)
		} else {
			s.emit(literalFalse)
		}
	case KindInt64:
		n, _ := v.AsInt64()
		s.scratch = strconv.AppendInt(s.scratch[:0], n, 10)
		s.emit(s.scratch)
	case KindUint64:
		n, _ := v.AsUint64()
		s.scratch = strconv.AppendUint(s.scratch[:0], n, 10)
		s.emit(s.scratch)
	case KindFloat64:
		f, _ := v.AsFloat64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return newDOMError(ErrNotNumber, "cannot serialize a non-finite double")
		}
		s.scratch = jsonwire.AppendFloat(s.scratch[:0], f, 64)
		s.emit(s.scratch)
	case KindString:
		str, _ := v.AsString()
		quoted := jsonwire.AppendQuote(s.scratch[:0], str.Bytes())
		s.scratch = quoted
		s.emit(quoted)
	case KindArray:
		arr, _ := v.AsArray()
		s.emit(openBracket)
		s.stack = append(s.stack, serFrame{arr: arr})
	case KindObject:
		obj, _ := v.AsObject()
		s.emit(openBrace)
		s.stack = append(s.stack, serFrame{isObject: true, obj: obj})
	}
	return nil
}
