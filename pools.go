// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenajson

import (
	"math/bits"
	"sync"
)

// bufferPool is a pool of variable-length scratch buffers used by the
// Parser (for number-text accumulation) and the Serializer (for number
// formatting). It avoids https://golang.org/issue/23199 by locally
// tracking utilization statistics so that one oversized buffer does not
// get pinned on the heap forever by a stream of small later usages.
var bufferPool = sync.Pool{
	New: func() any { return new(pooledBuffer) },
}

type pooledBuffer struct {
	buf     []byte
	strikes int
	prevLen int
}

// getBuffer retrieves a buffer from the pool, where len(b.buf) is
// guaranteed to be zero and cap(b.buf) > 0.
func getBuffer() (b *pooledBuffer) {
	b = bufferPool.Get().(*pooledBuffer)
	if b.buf == nil {
		n := 1 << bits.Len(uint(b.prevLen|63))
		b.buf = make([]byte, 0, n)
	}
	return b
}

// putBuffer places the buffer back into the pool, where len(b.buf) is the
// actual amount of the buffer that was used. The strike-counter scheme
// below follows the rationale in golang.org/issue/27735: a buffer that
// shrinks repeatedly is probably not representative of steady-state
// usage and gets evicted rather than pinning a large allocation forever.
func putBuffer(b *pooledBuffer) {
	switch {
	case cap(b.buf) <= 4<<10:
		b.strikes = 0
	case cap(b.buf)/4 <= len(b.buf):
		b.strikes = 0
	case b.strikes < 4:
		b.strikes++
	default:
		b.strikes = 0
		b.prevLen = len(b.buf)
		b.buf = nil
	}
	b.buf = b.buf[:0]
	bufferPool.Put(b)
}
