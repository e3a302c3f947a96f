// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import "unsafe"

const (
	// allocAlign is the alignment payload requests are rounded up to.
	// Must be a power of 2. 4 matches blockHeader's own natural
	// alignment (two uint32 fields), so every block boundary the
	// allocator creates keeps the next header's fields aligned.
	allocAlign = 4

	freeBit  = uint32(1) << 31
	sizeMask = freeBit - 1

	// nullOffset marks the end of the block chain.
	nullOffset = ^uint32(0)
)

// blockHeader is the intrusive header immediately preceding every block's
// payload. It is packed into two uint32s so that headerSize stays a fixed
// 8 bytes on every platform: sizeFree carries the payload size in its low
// 31 bits and the free flag in the high bit, next carries the byte offset
// of the following block from the region base (nullOffset at the tail).
type blockHeader struct {
	sizeFree uint32
	next     uint32
}

var headerSize = roundup(int(unsafe.Sizeof(blockHeader{})), allocAlign)

// roundup rounds n up to the next multiple of m. m must be a power of 2.
func roundup(n, m int) int { return (n + m - 1) &^ (m - 1) }

func (h *blockHeader) size() int  { return int(h.sizeFree & sizeMask) }
func (h *blockHeader) free() bool { return h.sizeFree&freeBit != 0 }
func (h *blockHeader) setSize(n int) {
	h.sizeFree = h.sizeFree&freeBit | uint32(n)&sizeMask
}
func (h *blockHeader) setFree(v bool) {
	if v {
		h.sizeFree |= freeBit
	} else {
		h.sizeFree &^= freeBit
	}
}

// hasNext reports whether the block has a successor, returning its offset.
func (h *blockHeader) hasNext() (uint32, bool) {
	if h.next == nullOffset {
		return 0, false
	}
	return h.next, true
}

func (h *blockHeader) setNext(off uint32, ok bool) {
	if !ok {
		h.next = nullOffset
		return
	}
	h.next = off
}

// headerAt overlays a *blockHeader onto the region at byte offset off.
func (p *Pool) headerAt(off uint32) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(&p.region[off]))
}

// payload returns the payload slice owned by the block at offset off.
func (p *Pool) payload(off uint32) []byte {
	h := p.headerAt(off)
	start := int(off) + headerSize
	return p.region[start : start+h.size() : start+h.size()]
}

// payloadPointer returns the address of the first payload byte of the
// block at offset off.
func (p *Pool) payloadPointer(off uint32) unsafe.Pointer {
	return unsafe.Pointer(&p.region[int(off)+headerSize])
}

// offsetFromPointer recovers a block's header offset from a pointer
// previously returned to a caller as a payload address.
func (p *Pool) offsetFromPointer(ptr unsafe.Pointer) uint32 {
	base := uintptr(unsafe.Pointer(&p.region[0]))
	return uint32(uintptr(ptr)-base) - uint32(headerSize)
}
