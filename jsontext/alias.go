// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsontext mirrors the wire-level types of
// [github.com/arenajson/arenajson] under names that read naturally next
// to a transport or storage layer that only cares about bytes on the
// wire, not the document model. Everything here is a type alias or a
// thin forwarding wrapper; the implementation lives in the parent
// package.
package jsontext

import "github.com/arenajson/arenajson"

type Kind = arenajson.Kind

const (
	KindNull   = arenajson.KindNull
	KindBool   = arenajson.KindBool
	KindInt64  = arenajson.KindInt64
	KindUint64 = arenajson.KindUint64
	KindFloat  = arenajson.KindFloat64
	KindString = arenajson.KindString
	KindArray  = arenajson.KindArray
	KindObject = arenajson.KindObject
)

type ErrorCode = arenajson.ErrorCode

type SyntaxError = arenajson.SyntaxError

type DOMError = arenajson.DOMError

type Handler = arenajson.Handler

type ParseOptions = arenajson.ParseOptions

type SerializeOptions = arenajson.SerializeOptions

// Parser wraps [arenajson.Parser] under the name used by callers that
// think of it as a streaming text decoder rather than a DOM-adjacent
// event source.
type Parser struct {
	*arenajson.Parser
}

// NewParser returns a Parser that drives h.
func NewParser(h Handler, opts ParseOptions) *Parser {
	return &Parser{arenajson.NewParser(h, opts)}
}

// Serializer wraps [arenajson.Serializer] under the name used by callers
// that think of it as a streaming text encoder.
type Serializer struct {
	*arenajson.Serializer
}

// NewSerializer returns a Serializer that emits v.
func NewSerializer(v *arenajson.Value, opts SerializeOptions) *Serializer {
	return &Serializer{arenajson.NewSerializer(v, opts)}
}
