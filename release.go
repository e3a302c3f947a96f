// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import "unsafe"

// Release returns a block previously returned by Allocate back to the
// pool. A nil slice is a no-op. Releasing an already-free block (a
// double release) is silently tolerated and leaves the chain unchanged.
func (p *Pool) Release(b []byte) {
	if len(b) == 0 {
		return
	}
	p.UnsafeRelease(unsafe.Pointer(&b[0]))
}

// UnsafeRelease is like Release but takes a raw payload pointer. A nil
// pointer is a no-op.
func (p *Pool) UnsafeRelease(ptr unsafe.Pointer) {
	if ptr == nil || p.st != initialized {
		return
	}

	off := p.offsetFromPointer(ptr)
	h := p.headerAt(off)
	if h.free() {
		return // double release: tolerated, no state change.
	}

	h.setFree(true)
	p.allocs--
	p.coalesce(off)
}

// coalesce merges the block at off with a free successor, then with a
// free predecessor, restoring the no-adjacent-free-blocks invariant.
// The predecessor is found by a forward walk from the head, trading the
// cost of a back-reference for structural simplicity.
func (p *Pool) coalesce(off uint32) {
	h := p.headerAt(off)
	if next, ok := h.hasNext(); ok {
		succ := p.headerAt(next)
		if succ.free() {
			h.setSize(h.size() + headerSize + succ.size())
			n, ok := succ.hasNext()
			h.setNext(n, ok)
		}
	}

	if predOff, ok := p.predecessorOf(off); ok {
		pred := p.headerAt(predOff)
		if pred.free() {
			h2 := p.headerAt(off)
			pred.setSize(pred.size() + headerSize + h2.size())
			n, ok := h2.hasNext()
			pred.setNext(n, ok)
		}
	}
}

// predecessorOf returns the offset of the block whose next offset is
// off, or false if off is the head block.
func (p *Pool) predecessorOf(off uint32) (uint32, bool) {
	if off == 0 {
		return 0, false
	}
	cur := uint32(0)
	for {
		h := p.headerAt(cur)
		next, ok := h.hasNext()
		if !ok {
			return 0, false
		}
		if next == off {
			return cur, true
		}
		cur = next
	}
}
