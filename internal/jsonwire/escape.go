// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import "unicode/utf8"

// escapeCanonical is the escape table for canonical JSON string quoting:
// the minimal set of escapes RFC 8259 requires, nothing more.
var escapeCanonical = EscapeRunes{
	asciiCache: [...]int8{
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		00, 00, -1, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, -1, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
	},
}

// EscapeRunes reports whether a rune must be escaped. The only instance
// in use is escapeCanonical; this type exists to hold the per-byte
// lookup table.
type EscapeRunes struct {
	// asciiCache is a cache of whether an ASCII character must be escaped,
	// where 0 means not escaped and -1 escapes with the short sequence
	// (e.g., \n) or a \uXXXX sequence for other control characters.
	asciiCache [utf8.RuneSelf]int8
}

// IsCanonical reports whether this uses canonical escaping, which is the
// minimal amount of escaping to produce a valid JSON string. Always true;
// this package does not implement a non-canonical escaping mode.
func (e *EscapeRunes) IsCanonical() bool { return true }

// needEscapeASCII reports whether c must be escaped.
// It assumes c < utf8.RuneSelf.
func (e *EscapeRunes) needEscapeASCII(c byte) bool {
	return e.asciiCache[c] != 0
}
