// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"math"
	"testing"

	"github.com/arenajson/arenajson/resource"
)

// serializeAll drains a Serializer into a single byte slice using a
// buffer much smaller than the document, to exercise the pull-mode
// Read contract across many partial calls.
func serializeAll(t *testing.T, v *Value) []byte {
	t.Helper()
	s := NewSerializer(v, SerializeOptions{})
	defer s.Close()
	var out []byte
	buf := make([]byte, 3)
	for {
		n, done, err := s.Read(buf)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		out = append(out, buf[:n]...)
		if done {
			return out
		}
		if n == 0 {
			t.Fatalf("Read returned 0 bytes without done")
		}
	}
}

func buildSampleValue(h resource.Handle) Value {
	root := NewObjectValue(h)
	obj, _ := root.AsObject()
	obj.Emplace("name", NewStringValue(h, "hello \"world\"\n"))
	obj.Emplace("count", NewInt64(-7))
	obj.Emplace("big", NewUint64(18446744073709551615))
	obj.Emplace("pi", NewFloat64(3.25))
	obj.Emplace("flag", NewBool(true))
	obj.Emplace("nothing", NullIn(h))
	arr := NewArrayValue(h)
	a, _ := arr.AsArray()
	a.PushBack(NewInt64(1))
	a.PushBack(NewInt64(2))
	a.PushBack(NewArrayValue(h))
	obj.Emplace("items", arr)
	return root
}

func TestSerializerEmptyContainers(t *testing.T) {
	h := resource.Heap()
	arr := NewArrayValue(h)
	if got := string(serializeAll(t, &arr)); got != "[]" {
		t.Fatalf("got %q, want %q", got, "[]")
	}
	obj := NewObjectValue(h)
	if got := string(serializeAll(t, &obj)); got != "{}" {
		t.Fatalf("got %q, want %q", got, "{}")
	}
}

func TestSerializerScalars(t *testing.T) {
	h := resource.Heap()
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewInt64(-42), "-42"},
		{NewUint64(18446744073709551615), "18446744073709551615"},
		{NewStringValue(h, "a\tb"), `"a\tb"`},
	}
	for _, tt := range tests {
		v := tt.v
		if got := string(serializeAll(t, &v)); got != tt.want {
			t.Fatalf("got %q, want %q", got, tt.want)
		}
	}
}

func TestSerializerRefusesNonFiniteDouble(t *testing.T) {
	v := NewFloat64(math.NaN())
	s := NewSerializer(&v, SerializeOptions{})
	defer s.Close()
	buf := make([]byte, 16)
	_, _, err := s.Read(buf)
	if err == nil {
		t.Fatalf("expected an error serializing NaN")
	}
	de, ok := err.(*DOMError)
	if !ok || de.Code != ErrNotNumber {
		t.Fatalf("got error %v, want ErrNotNumber", err)
	}
}

// TestRoundTrip exercises the round-trip property:
// parse(serialize(parse(D))) == parse(D).
func TestRoundTrip(t *testing.T) {
	h := resource.Heap()
	original := buildSampleValue(h)

	serialized := serializeAll(t, &original)
	reparsed := parseAllChunked(t, serialized, 0)

	if !valuesEqual(t, &original, reparsed) {
		t.Fatalf("round trip changed the document: got %s", serialized)
	}
}

// TestSerializeIdempotence exercises the idempotence property for a
// value containing no f64s: serialize(parse(serialize(V))) ==
// serialize(V).
func TestSerializeIdempotence(t *testing.T) {
	h := resource.Heap()
	root := NewObjectValue(h)
	obj, _ := root.AsObject()
	obj.Emplace("a", NewInt64(1))
	obj.Emplace("b", NewUint64(2))
	obj.Emplace("c", NewArrayValue(h))
	obj.Emplace("d", NewStringValue(h, "x"))

	first := serializeAll(t, &root)
	reparsed := parseAllChunked(t, first, 0)
	second := serializeAll(t, reparsed)

	if string(first) != string(second) {
		t.Fatalf("serialize was not idempotent:\n  first:  %s\n  second: %s", first, second)
	}
}

func TestSerializerEscapesRequiredCharsOnly(t *testing.T) {
	h := resource.Heap()
	v := NewStringValue(h, "slash/ and unicode: é DEL:\x7f")
	got := string(serializeAll(t, &v))
	want := `"slash/ and unicode: é DEL:` + "\x7f" + `"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
