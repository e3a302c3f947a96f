// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import "unsafe"

// Allocate reserves request bytes from the pool and returns a slice over
// the new block's payload. A request of zero is treated as the minimum
// payload. Allocate returns nil (not an error) when no free block is
// large enough or when the pool is not initialized; it never fails any
// other way.
func (p *Pool) Allocate(request int) []byte {
	ptr := p.UnsafeAllocate(request)
	if ptr == nil {
		return nil
	}
	off := p.offsetFromPointer(ptr)
	return p.payload(off)
}

// UnsafeAllocate is like Allocate but returns a raw pointer to the new
// block's payload instead of a slice.
func (p *Pool) UnsafeAllocate(request int) unsafe.Pointer {
	if p.st != initialized {
		return nil
	}
	if request < minPayload {
		request = minPayload
	}
	request = roundup(request, allocAlign)

	off, ok := p.firstFit(request)
	if !ok {
		return nil
	}

	p.split(off, request)
	h := p.headerAt(off)
	h.setFree(false)
	p.allocs++
	return p.payloadPointer(off)
}

// firstFit walks the chain in address order and returns the offset of the
// first free block whose payload can host request bytes.
func (p *Pool) firstFit(request int) (uint32, bool) {
	off := uint32(0)
	for {
		h := p.headerAt(off)
		if h.free() && h.size() >= request {
			return off, true
		}
		next, ok := h.hasNext()
		if !ok {
			return 0, false
		}
		off = next
	}
}

// split carves block off down to exactly request bytes of payload,
// creating a new free block from the remainder when the remainder is
// large enough to host its own header and a minimum payload. Otherwise
// the block is left at its original size; serving request bytes from an
// oversized block is preferable to an unaddressable remnant.
func (p *Pool) split(off uint32, request int) {
	h := p.headerAt(off)
	remainder := h.size() - request
	if remainder < headerSize+minPayload {
		return
	}

	newOff := off + uint32(headerSize+request)
	n := p.headerAt(newOff)
	n.setSize(remainder - headerSize)
	n.setFree(true)
	next, ok := h.hasNext()
	n.setNext(next, ok)

	h.setSize(request)
	h.setNext(newOff, true)
}
