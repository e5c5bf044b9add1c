// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"math"
	"strconv"
)

// classifyNumber validates text against the JSON number grammar (RFC
// 8259) and classifies it per the promotion rule: integers that fit in
// int64 become KindInt64; non-negative integers that only fit in uint64
// become KindUint64; everything else (has a fraction or exponent, or
// overflows 64-bit integers) becomes KindFloat64.
func classifyNumber(text []byte) (kind Kind, i64 int64, u64 uint64, f64 float64, err error) {
	if len(text) == 0 {
		return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "empty number")
	}
	s := text
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) == 0 {
		return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "invalid number: bare '-'")
	}
	intEnd := 0
	for intEnd < len(s) && isDigit(s[intEnd]) {
		intEnd++
	}
	if intEnd == 0 {
		return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "invalid number: missing integer digits")
	}
	if s[0] == '0' && intEnd > 1 {
		return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "invalid number: leading zero")
	}
	rest := s[intEnd:]
	hasFrac := false
	hasExp := false
	if len(rest) > 0 && rest[0] == '.' {
		hasFrac = true
		j := 1
		for j < len(rest) && isDigit(rest[j]) {
			j++
		}
		if j == 1 {
			return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "invalid number: missing fraction digits")
		}
		rest = rest[j:]
	}
	if len(rest) > 0 && (rest[0] == 'e' || rest[0] == 'E') {
		hasExp = true
		j := 1
		if j < len(rest) && (rest[j] == '+' || rest[j] == '-') {
			j++
		}
		start := j
		for j < len(rest) && isDigit(rest[j]) {
			j++
		}
		if j == start {
			return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "invalid number: missing exponent digits")
		}
		rest = rest[j:]
	}
	if len(rest) != 0 {
		return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "invalid number: trailing garbage")
	}

	if !hasFrac && !hasExp {
		if neg {
			if n, perr := strconv.ParseInt(string(text), 10, 64); perr == nil {
				return KindInt64, n, 0, 0, nil
			}
			// Too negative for int64; fall through to double.
		} else {
			if n, perr := strconv.ParseInt(string(text), 10, 64); perr == nil {
				return KindInt64, n, 0, 0, nil
			}
			if n, perr := strconv.ParseUint(string(text), 10, 64); perr == nil {
				return KindUint64, 0, n, 0, nil
			}
			// Too large for uint64; fall through to double.
		}
	}

	f, perr := strconv.ParseFloat(string(text), 64)
	if perr != nil {
		if ne, ok := perr.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			// ParseFloat clamps to +/-Inf on overflow.
		} else {
			return 0, 0, 0, 0, newSyntaxError(ErrSyntax, 0, "invalid number")
		}
	}
	if math.IsInf(f, 0) {
		return 0, 0, 0, 0, newSyntaxError(ErrNumberTooLarge, 0, "number too large to represent as a double")
	}
	return KindFloat64, 0, 0, f, nil
}
