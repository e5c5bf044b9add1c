// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arenajson implements an in-memory JSON document model, an
// incremental byte-fed parser, and a pull-mode serializer, all built on
// top of a pluggable memory resource so that an entire parsed document
// tree can be reclaimed in one shot.
//
// # Terminology
//
// This package uses the term "parse" for the syntactic process of turning
// bytes into a sequence of structural events, and "build" for the process
// of a Builder turning those events into a Value tree. The two are
// deliberately separable: a Parser only ever emits events to whatever
// Handler it is given, and a Value tree is just one possible consumer.
//
//   - A JSON "object" is an ordered collection of unique name/value members;
//   - a JSON "array" is an ordered sequence of elements; and
//   - a JSON "value" is either a literal (null, false, or true), a string,
//     a number, an object, or an array.
//
// See RFC 8259 for the grammar this package parses and serializes.
//
// # Memory ownership
//
// Every Value, Array, Object, and String is backed by a resource.Handle.
// Containers allocated through the default handle behave like ordinary
// garbage-collected Go values; containers allocated through an
// arena-backed handle keep their children alive only as long as the
// arena itself, and are reclaimed in bulk when the arena is discarded.
package arenajson

// nonComparable can be embedded in a struct to prevent comparability,
// guarding against accidental use of == on types whose identity should
// not be observable.
type nonComparable [0]func()
