// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

// Handler is the capability set a Parser drives as it recognizes
// structural events in its input. A DOM Builder is one implementation;
// applications may supply their own to avoid materializing a Value tree
// at all.
//
// Any method may return a non-nil error, in which case the Parser stops
// and reports that error to its caller.
//
// The *Part methods deliver a prefix of a string or object-member name
// when the Parser suspends partway through one (e.g. because the current
// WriteSome call ran out of input mid-string); the corresponding non-Part
// method is always called exactly once per token, with the remaining
// bytes not yet delivered by a Part call, to mark completion. Those are
// the whole token when no Part call preceded it, and may be empty when
// Part calls already delivered everything before the closing quote.
type Handler interface {
	OnDocumentBegin() error
	OnDocumentEnd() error

	OnObjectBegin() error
	OnObjectEnd() error

	OnArrayBegin() error
	OnArrayEnd() error

	OnKeyPart(p []byte) error
	OnKey(p []byte) error

	OnStringPart(p []byte) error
	OnString(p []byte) error

	OnInt64(v int64) error
	OnUint64(v uint64) error
	OnDouble(v float64) error
	OnBool(v bool) error
	OnNull() error
}
