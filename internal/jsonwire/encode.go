// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"math"
	"slices"
	"strconv"
	"unicode/utf8"
)

// truncateMaxUTF8 limits s to the maximum length of a single UTF-8 encoded
// rune, which avoids a wasted full-length UTF-8 validity scan by
// utf8.DecodeRuneInString when s is much longer than that.
func truncateMaxUTF8[Bytes ~[]byte | ~string](s Bytes) Bytes {
	if len(s) > utf8.UTFMax {
		return s[:utf8.UTFMax]
	}
	return s
}

// AppendQuote appends src to dst as a JSON string per RFC 8259, section 7.
// Invalid UTF-8 bytes are replaced with the Unicode replacement character.
// Only the escapes JSON requires are produced, which is also the canonical
// form (RFC 8785, section 3.2.2.2).
func AppendQuote[Bytes ~[]byte | ~string](dst []byte, src Bytes) []byte {
	var i, n int
	dst = slices.Grow(dst, len(`"`)+len(src)+len(`"`))
	dst = append(dst, '"')
	for uint(len(src)) > uint(n) {
		// Handle single-byte ASCII.
		if c := src[n]; c < utf8.RuneSelf {
			n++
			if escapeCanonical.needEscapeASCII(c) {
				dst = append(dst, src[i:n-1]...)
				dst = appendEscapedASCII(dst, c)
				i = n
			}
			continue
		}

		// Handle multi-byte Unicode.
		_, rn := utf8.DecodeRuneInString(string(truncateMaxUTF8(src[n:])))
		n += rn
		if rn == 1 { // must be utf8.RuneError since we already checked for single-byte ASCII
			dst = append(dst, src[i:n-rn]...)
			dst = append(dst, "�"...)
			i = n
		}
	}
	dst = append(dst, src[i:n]...)
	dst = append(dst, '"')
	return dst
}

func appendEscapedASCII(dst []byte, c byte) []byte {
	switch c {
	case '"', '\\':
		dst = append(dst, '\\', c)
	case '\b':
		dst = append(dst, "\\b"...)
	case '\f':
		dst = append(dst, "\\f"...)
	case '\n':
		dst = append(dst, "\\n"...)
	case '\r':
		dst = append(dst, "\\r"...)
	case '\t':
		dst = append(dst, "\\t"...)
	default:
		dst = appendEscapedUTF16(dst, uint16(c))
	}
	return dst
}

func appendEscapedUTF16(dst []byte, x uint16) []byte {
	const hex = "0123456789abcdef"
	return append(dst, '\\', 'u', hex[(x>>12)&0xf], hex[(x>>8)&0xf], hex[(x>>4)&0xf], hex[(x>>0)&0xf])
}

// AppendFloat appends src to dst as a JSON number per RFC 8259, section 6.
// It formats numbers similar to the ES6 number-to-string conversion,
// which always produces the shortest decimal representation that
// round-trips back to src.
//
// The output is identical to ECMA-262, 6th edition, section 7.1.12.1 and
// RFC 8785, section 3.2.2.3 for 64-bit floating-point numbers, except for
// -0, which is formatted as -0 instead of just 0.
func AppendFloat(dst []byte, src float64, bits int) []byte {
	if bits == 32 {
		src = float64(float32(src))
	}

	abs := math.Abs(src)
	fmt := byte('f')
	if abs != 0 {
		if bits == 64 && (float64(abs) < 1e-6 || float64(abs) >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmt = 'e'
		}
	}
	dst = strconv.AppendFloat(dst, src, fmt, -1, bits)
	if fmt == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}
