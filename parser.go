// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"unicode/utf16"
	"unicode/utf8"
)

// minDepthFloor is the implementation floor for MaxDepth: callers may
// raise the limit but never lower it past this value.
const minDepthFloor = 32

// defaultMaxDepth is used when ParseOptions.MaxDepth is zero.
const defaultMaxDepth = 32

// ParseOptions configures a Parser. The zero value is ready to use and
// applies defaultMaxDepth.
type ParseOptions struct {
	// MaxDepth bounds the nesting depth of objects and arrays. Zero means
	// defaultMaxDepth. Values below minDepthFloor are raised to it.
	MaxDepth int
}

func (o ParseOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	if o.MaxDepth < minDepthFloor {
		return minDepthFloor
	}
	return o.MaxDepth
}

// frameKind distinguishes the two kinds of nesting a Parser tracks.
type frameKind uint8

const (
	frameArray frameKind = iota
	frameObject
)

type frame struct {
	kind frameKind
}

// mode is the Parser's current scanning mode — the resumable equivalent
// of "where in the grammar we are," orthogonal to the nesting stack.
type mode uint8

const (
	modeValue       mode = iota // dispatch on the next value's leading byte
	modeArrayStart              // just saw '[': ']' or a value is legal
	modeArrayComma              // between array elements: ',' or ']'
	modeObjectStart             // just saw '{': '}' or a string key is legal
	modeObjectKey               // between object members: a string key is required
	modeObjectColon             // a key was read; ':' is required
	modeObjectComma             // between object members: ',' or '}'
	modeTopLevelDone            // the single top-level value is complete
	modeInString
	modeInNumber
	modeInLiteral
)

// litScan tracks matching progress against a fixed keyword ("true",
// "false", or "null").
type litScan struct {
	want string
	pos  int
}

// strScan holds the resumable state of an in-progress string or object
// key. Bytes already decoded since the last *_part (or the start of the
// string) live in buf; it is flushed and cleared whenever a *_part or
// final callback fires, so it never grows larger than one chunk's worth
// of undelivered output.
type strScan struct {
	isKey bool
	buf   []byte

	escaping bool
	uEscape  bool
	uDigits  int
	uValue   uint16

	haveHigh bool
	high     uint16

	utf8Need int
	utf8Len  int
	utf8Buf  [4]byte
}

func (s *strScan) reset(isKey bool) {
	s.isKey = isKey
	s.buf = s.buf[:0]
	s.escaping = false
	s.uEscape = false
	s.uDigits = 0
	s.uValue = 0
	s.haveHigh = false
	s.high = 0
	s.utf8Need = 0
	s.utf8Len = 0
}

// Parser is an incremental, resumable, byte-fed JSON scanner. It holds no
// call-stack recursion: all nesting state lives in an explicit stack, so
// it may suspend at the end of any WriteSome call — mid-token, mid-escape,
// mid-UTF-8 continuation byte, or at any structural boundary — and resume
// exactly where it left off on the next call.
//
// The zero value is not ready to use; construct one with NewParser.
type Parser struct {
	_ nonComparable

	opts    ParseOptions
	handler Handler

	stack []frame
	m     mode

	numBuf []byte
	numPB  *pooledBuffer
	lit    litScan
	str    strScan

	started bool
	offset  int64
	err     error
}

// NewParser constructs a Parser that drives h. Its number-scanning
// scratch buffer is drawn from the package's shared bufferPool rather
// than allocated fresh, which matters for callers that construct many
// short-lived Parsers (e.g. one per request).
func NewParser(h Handler, opts ParseOptions) *Parser {
	p := &Parser{}
	p.handler = h
	p.opts = opts
	p.numPB = getBuffer()
	p.numBuf = p.numPB.buf
	return p
}

// Close returns the Parser's scratch buffer to the shared pool. It is
// optional — a Parser that is simply dropped is collected normally —
// but calling it when a Parser is done helps keep the pool's buffers
// warm for the next one constructed.
func (p *Parser) Close() {
	if p.numPB == nil {
		return
	}
	p.numPB.buf = p.numBuf[:0]
	putBuffer(p.numPB)
	p.numPB = nil
	p.numBuf = nil
}

// Reset reconfigures p to start parsing a new document, driving the same
// or a new handler.
func (p *Parser) Reset(opts ParseOptions) {
	p.opts = opts
	p.stack = p.stack[:0]
	p.m = modeValue
	p.numBuf = p.numBuf[:0]
	p.str.buf = p.str.buf[:0]
	p.started = false
	p.offset = 0
	p.err = nil
}

// SetHandler assigns the handler that future events are delivered to.
func (p *Parser) SetHandler(h Handler) { p.handler = h }

// InputOffset reports the total number of bytes consumed so far.
func (p *Parser) InputOffset() int64 { return p.offset }

func (p *Parser) fail(code ErrorCode, str string) error {
	err := newSyntaxError(code, p.offset, str)
	p.err = err
	return err
}

// WriteSome feeds the next chunk of input to the parser. It returns the
// number of bytes consumed (which may be less than len(data) only if an
// error occurred) and a non-nil error if parsing failed. A nil error with
// n == len(data) means more input (or Finish) is expected.
func (p *Parser) WriteSome(data []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if !p.started {
		if err := p.handler.OnDocumentBegin(); err != nil {
			return 0, p.failHandler(err)
		}
		p.started = true
	}
	i, err := p.run(data, false)
	p.offset += int64(i)
	return i, err
}

// Finish signals end of input. It finalizes an in-progress number token,
// verifies the document is structurally complete (an unfinished literal
// or string is ErrIncomplete), and (if so) reports OnDocumentEnd.
func (p *Parser) Finish() error {
	if p.err != nil {
		return p.err
	}
	_, err := p.run(nil, true)
	if err != nil {
		return err
	}
	switch p.m {
	case modeTopLevelDone:
		if err := p.handler.OnDocumentEnd(); err != nil {
			return p.failHandler(err)
		}
		return nil
	default:
		return p.fail(ErrIncomplete, "unexpected end of input")
	}
}

func (p *Parser) failHandler(err error) error {
	p.err = err
	return err
}

// run is the core byte loop, shared by WriteSome (atEOF=false) and the
// tail call from Finish (atEOF=true, data is nil — used only to let
// modeInNumber notice end-of-input via the loop falling through
// immediately).
func (p *Parser) run(data []byte, atEOF bool) (i int, err error) {
	defer func() {
		// Stamp a scanning error with the absolute offset of the byte
		// that triggered it (the end of input, when called from Finish).
		if se, ok := err.(*SyntaxError); ok {
			se.Offset = p.offset + int64(i)
		}
	}()
	for i < len(data) {
		c := data[i]
		switch p.m {
		case modeValue, modeArrayStart, modeObjectStart:
			if isWS(c) {
				i++
				continue
			}
			if p.m == modeArrayStart && c == ']' {
				if err := p.closeArray(); err != nil {
					return i, err
				}
				i++
				continue
			}
			if p.m == modeObjectStart && c == '}' {
				if err := p.closeObject(); err != nil {
					return i, err
				}
				i++
				continue
			}
			if p.m == modeObjectStart {
				if c != '"' {
					return i, p.fail(ErrExpectedQuotes, "expected string for object member name")
				}
				p.str.reset(true)
				p.m = modeInString
				i++
				continue
			}
			n, err := p.startValue(c)
			if err != nil {
				return i, err
			}
			i += n
		case modeArrayComma:
			if isWS(c) {
				i++
				continue
			}
			switch c {
			case ']':
				if err := p.closeArray(); err != nil {
					return i, err
				}
			case ',':
				p.m = modeValue
			default:
				return i, p.fail(ErrExpectedComma, "expected ',' or ']' after array element")
			}
			i++
		case modeObjectComma:
			if isWS(c) {
				i++
				continue
			}
			switch c {
			case '}':
				if err := p.closeObject(); err != nil {
					return i, err
				}
			case ',':
				p.m = modeObjectKey
			default:
				return i, p.fail(ErrExpectedComma, "expected ',' or '}' after object member")
			}
			i++
		case modeObjectKey:
			if isWS(c) {
				i++
				continue
			}
			if c != '"' {
				return i, p.fail(ErrExpectedQuotes, "expected string for object member name")
			}
			p.str.reset(true)
			p.m = modeInString
			i++
		case modeObjectColon:
			if isWS(c) {
				i++
				continue
			}
			if c != ':' {
				return i, p.fail(ErrExpectedColon, "expected ':' after object member name")
			}
			p.m = modeValue
			i++
		case modeTopLevelDone:
			if isWS(c) {
				i++
				continue
			}
			return i, p.fail(ErrExtraData, "unexpected non-whitespace data after top-level value")
		case modeInString:
			n, err := p.scanStringByte(c)
			if err != nil {
				return i, err
			}
			i += n
		case modeInNumber:
			if isNumberByte(c) {
				p.numBuf = append(p.numBuf, c)
				i++
				continue
			}
			if err := p.finalizeNumber(); err != nil {
				return i, err
			}
			// c was not consumed as part of the number; reprocess it.
		case modeInLiteral:
			if err := p.scanLiteralByte(c); err != nil {
				return i, err
			}
			i++
		}
	}
	if atEOF {
		if p.m == modeInNumber {
			if err := p.finalizeNumber(); err != nil {
				return i, err
			}
		}
		return i, nil
	}
	// Suspending mid-string with undelivered bytes: flush them as a
	// *_part event so a caller feeding many small chunks never forces
	// the parser to buffer an entire large string in memory.
	if p.m == modeInString && len(p.str.buf) > 0 {
		if err := p.flushStringPart(); err != nil {
			return i, err
		}
	}
	return i, nil
}

// flushStringPart delivers the bytes of an in-progress string or key
// decoded since the last *_part (or the string's start) via the
// handler's *_part operation, then clears the buffer.
func (p *Parser) flushStringPart() error {
	s := &p.str
	part := s.buf
	s.buf = nil
	var err error
	if s.isKey {
		err = p.handler.OnKeyPart(part)
	} else {
		err = p.handler.OnStringPart(part)
	}
	if err != nil {
		return p.failHandler(err)
	}
	return nil
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNumberByte(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'-', '+', '.', 'e', 'E':
		return true
	default:
		return false
	}
}

// startValue begins parsing a JSON value from its leading byte c. It
// returns the number of input bytes to advance by (1, except when it
// kicks off literal/number scanning where the byte is also 1 but the
// mode transition carries the accumulation forward).
func (p *Parser) startValue(c byte) (int, error) {
	switch {
	case c == '"':
		p.str.reset(false)
		p.m = modeInString
		return 1, nil
	case c == '{':
		if len(p.stack) >= p.opts.maxDepth() {
			return 0, p.fail(ErrTooDeep, "maximum nesting depth exceeded")
		}
		p.stack = append(p.stack, frame{kind: frameObject})
		if err := p.handler.OnObjectBegin(); err != nil {
			return 0, p.failHandler(err)
		}
		p.m = modeObjectStart
		return 1, nil
	case c == '[':
		if len(p.stack) >= p.opts.maxDepth() {
			return 0, p.fail(ErrTooDeep, "maximum nesting depth exceeded")
		}
		p.stack = append(p.stack, frame{kind: frameArray})
		if err := p.handler.OnArrayBegin(); err != nil {
			return 0, p.failHandler(err)
		}
		p.m = modeArrayStart
		return 1, nil
	case c == 't':
		p.lit = litScan{want: "true", pos: 1}
		p.m = modeInLiteral
		return 1, nil
	case c == 'f':
		p.lit = litScan{want: "false", pos: 1}
		p.m = modeInLiteral
		return 1, nil
	case c == 'n':
		p.lit = litScan{want: "null", pos: 1}
		p.m = modeInLiteral
		return 1, nil
	case c == '-' || isDigit(c):
		p.numBuf = p.numBuf[:0]
		p.numBuf = append(p.numBuf, c)
		p.m = modeInNumber
		return 1, nil
	default:
		return 0, p.fail(ErrSyntax, "unexpected character at start of value")
	}
}

func (p *Parser) scanLiteralByte(c byte) error {
	want := p.lit.want[p.lit.pos]
	if c != want {
		return p.fail(ErrSyntax, "invalid literal")
	}
	p.lit.pos++
	if p.lit.pos < len(p.lit.want) {
		return nil
	}
	switch p.lit.want {
	case "true":
		if err := p.handler.OnBool(true); err != nil {
			return p.failHandler(err)
		}
	case "false":
		if err := p.handler.OnBool(false); err != nil {
			return p.failHandler(err)
		}
	case "null":
		if err := p.handler.OnNull(); err != nil {
			return p.failHandler(err)
		}
	}
	return p.completeValue()
}

// completeValue transitions out of having just finished a scalar or
// closed a container, based on what now sits atop the nesting stack.
func (p *Parser) completeValue() error {
	if len(p.stack) == 0 {
		p.m = modeTopLevelDone
		return nil
	}
	switch p.stack[len(p.stack)-1].kind {
	case frameArray:
		p.m = modeArrayComma
	case frameObject:
		p.m = modeObjectComma
	}
	return nil
}

func (p *Parser) closeArray() error {
	p.stack = p.stack[:len(p.stack)-1]
	if err := p.handler.OnArrayEnd(); err != nil {
		return p.failHandler(err)
	}
	return p.completeValue()
}

func (p *Parser) closeObject() error {
	p.stack = p.stack[:len(p.stack)-1]
	if err := p.handler.OnObjectEnd(); err != nil {
		return p.failHandler(err)
	}
	return p.completeValue()
}

func (p *Parser) finalizeNumber() error {
	text := p.numBuf
	kind, i64, u64, f64, err := classifyNumber(text)
	if err != nil {
		p.err = err
		return err
	}
	p.numBuf = p.numBuf[:0]
	switch kind {
	case KindInt64:
		err = p.handler.OnInt64(i64)
	case KindUint64:
		err = p.handler.OnUint64(u64)
	default:
		err = p.handler.OnDouble(f64)
	}
	if err != nil {
		return p.failHandler(err)
	}
	return p.completeValue()
}

// scanStringByte processes one byte of an in-progress string/key. It
// returns the number of bytes consumed from the caller's perspective
// (always 1, since strings are scanned byte-by-byte to support
// suspension at arbitrary points, including mid-escape and mid-UTF-8).
func (p *Parser) scanStringByte(c byte) (int, error) {
	s := &p.str

	if s.utf8Need > 0 {
		if c < 0x80 || c >= 0xC0 {
			return 0, p.fail(ErrSyntax, "invalid UTF-8 continuation byte")
		}
		s.utf8Buf[s.utf8Len] = c
		s.utf8Len++
		s.utf8Need--
		if s.utf8Need == 0 {
			if !utf8.Valid(s.utf8Buf[:s.utf8Len]) {
				return 0, p.fail(ErrSyntax, "invalid UTF-8 sequence")
			}
			s.buf = append(s.buf, s.utf8Buf[:s.utf8Len]...)
		}
		return 1, nil
	}

	if s.escaping {
		if s.uEscape {
			v, ok := hexVal(c)
			if !ok {
				return 0, p.fail(ErrExpectedHexDigit, "expected hex digit in \\u escape")
			}
			s.uValue = s.uValue<<4 | uint16(v)
			s.uDigits++
			if s.uDigits < 4 {
				return 1, nil
			}
			s.uEscape = false
			s.escaping = false
			if err := p.completeEscapedCodepoint(s.uValue); err != nil {
				return 0, err
			}
			return 1, nil
		}
		s.escaping = false
		switch c {
		case '"', '\\', '/':
			s.buf = append(s.buf, c)
		case 'b':
			s.buf = append(s.buf, '\b')
		case 'f':
			s.buf = append(s.buf, '\f')
		case 'n':
			s.buf = append(s.buf, '\n')
		case 'r':
			s.buf = append(s.buf, '\r')
		case 't':
			s.buf = append(s.buf, '\t')
		case 'u':
			s.escaping = true
			s.uEscape = true
			s.uDigits = 0
			s.uValue = 0
			return 1, nil
		default:
			return 0, p.fail(ErrIllegalEscapeChar, "illegal escape character")
		}
		if s.haveHigh {
			return 0, p.fail(ErrExpectedUTF16Escape, "high surrogate must be followed by a low surrogate escape")
		}
		return 1, nil
	}

	switch {
	case c == '\\':
		s.escaping = true
		return 1, nil
	case c == '"':
		if s.haveHigh {
			return 0, p.fail(ErrExpectedUTF16Escape, "high surrogate must be followed by a low surrogate escape")
		}
		final := s.buf
		s.buf = nil
		var err error
		if s.isKey {
			err = p.handler.OnKey(final)
		} else {
			err = p.handler.OnString(final)
		}
		if err != nil {
			return 0, p.failHandler(err)
		}
		if s.isKey {
			p.m = modeObjectColon
		} else if err := p.completeValue(); err != nil {
			return 0, err
		}
		return 1, nil
	case c < 0x20:
		return 0, p.fail(ErrIllegalControlChar, "illegal control character in string")
	case c < 0x80:
		s.buf = append(s.buf, c)
		return 1, nil
	case c >= 0xC0 && c < 0xE0:
		s.utf8Buf[0] = c
		s.utf8Len = 1
		s.utf8Need = 1
		return 1, nil
	case c >= 0xE0 && c < 0xF0:
		s.utf8Buf[0] = c
		s.utf8Len = 1
		s.utf8Need = 2
		return 1, nil
	case c >= 0xF0 && c < 0xF8:
		s.utf8Buf[0] = c
		s.utf8Len = 1
		s.utf8Need = 3
		return 1, nil
	default:
		return 0, p.fail(ErrSyntax, "invalid UTF-8 leading byte")
	}
}

// completeEscapedCodepoint handles a fully-read \uXXXX escape, including
// surrogate pairing.
func (p *Parser) completeEscapedCodepoint(v uint16) error {
	s := &p.str
	switch {
	case s.haveHigh:
		if v < 0xDC00 || v > 0xDFFF {
			return p.fail(ErrIllegalTrailingSurrogate, "expected low surrogate after high surrogate")
		}
		r := utf16.DecodeRune(rune(s.high), rune(v))
		s.buf = utf8.AppendRune(s.buf, r)
		s.haveHigh = false
		return nil
	case v >= 0xD800 && v <= 0xDBFF:
		s.haveHigh = true
		s.high = v
		return nil
	case v >= 0xDC00 && v <= 0xDFFF:
		return p.fail(ErrIllegalLeadingSurrogate, "unexpected low surrogate")
	default:
		s.buf = utf8.AppendRune(s.buf, rune(v))
		return nil
	}
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
