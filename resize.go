// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"unsafe"

	"github.com/cznic/mathutil"
)

// Resize changes the size of the block backing b, trying in order: a
// shrink-in-place split, an in-place grow that absorbs a free successor,
// and finally a relocate-via-Allocate-and-copy. A nil b behaves as
// Allocate(newRequest); a newRequest of zero releases b and returns nil.
// If relocation is required and fails, Resize returns nil and leaves b
// untouched.
func (p *Pool) Resize(b []byte, newRequest int) []byte {
	if len(b) == 0 {
		return p.Allocate(newRequest)
	}
	if newRequest == 0 {
		p.Release(b)
		return nil
	}

	ptr := p.UnsafeResize(unsafe.Pointer(&b[0]), newRequest)
	if ptr == nil {
		return nil
	}
	off := p.offsetFromPointer(ptr)
	return p.payload(off)
}

// UnsafeResize is like Resize but takes and returns raw payload pointers.
func (p *Pool) UnsafeResize(ptr unsafe.Pointer, newRequest int) unsafe.Pointer {
	if ptr == nil {
		return p.UnsafeAllocate(newRequest)
	}
	if newRequest == 0 {
		p.UnsafeRelease(ptr)
		return nil
	}
	if p.st != initialized {
		return nil
	}

	newRequest = roundup(mathutil.Max(newRequest, minPayload), allocAlign)
	off := p.offsetFromPointer(ptr)
	h := p.headerAt(off)

	if newRequest <= h.size() {
		remainder := h.size() - newRequest
		p.split(off, newRequest)
		if remainder >= headerSize+minPayload {
			// split just created a free remnant at this offset; a free
			// successor here (the common post-allocate state) would
			// otherwise leave two adjacent free blocks.
			p.coalesce(off + uint32(headerSize+newRequest))
		}
		return ptr
	}

	if next, ok := h.hasNext(); ok {
		succ := p.headerAt(next)
		if succ.free() && h.size()+headerSize+succ.size() >= newRequest {
			h.setSize(h.size() + headerSize + succ.size())
			n, ok := succ.hasNext()
			h.setNext(n, ok)
			p.split(off, newRequest)
			return ptr
		}
	}

	newPtr := p.UnsafeAllocate(newRequest)
	if newPtr == nil {
		return nil
	}
	n := mathutil.Min(h.size(), newRequest)
	copy(p.payload(p.offsetFromPointer(newPtr))[:n], p.payload(off)[:n])
	p.UnsafeRelease(ptr)
	return newPtr
}
