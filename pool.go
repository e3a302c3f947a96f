// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool implements a first-fit, intrusive-header, splitting and
// coalescing region allocator: a single contiguous byte region, reserved
// once from the host, is carved into a chain of variable-sized blocks and
// served back to callers without ever growing or remapping the region.
//
// Changelog
//
// 2024-05-11 Reworked from a segregated, size-class slab allocator into a
// single first-fit chain to match a fixed-capacity pool contract.
package pool

import "fmt"

// minPayload is the smallest payload capacity a block may carry. It is
// also the smallest split remainder the allocator will leave behind; any
// smaller remainder is left attached to the block being split.
const minPayload = 1

// state is the Pool's top-level lifecycle state.
type state int

const (
	uninitialized state = iota
	initialized
)

// Pool is a fixed-capacity byte-pool allocator. Its zero value is an
// uninitialized pool; call Initialize before using it.
//
// A Pool is not safe for concurrent use; callers sharing a Pool across
// goroutines must serialize access themselves.
type Pool struct {
	st       state
	region   []byte
	capacity int

	allocs int // outstanding Allocate calls, for Stats and tests.
}

// Stats reports bookkeeping counters useful for tests and diagnostics.
// It is not part of the allocator's correctness contract.
type Stats struct {
	Capacity     int
	Allocs       int
	FreeCapacity int
	BlockCount   int
}

// Initialize reserves a contiguous region of exactly capacity bytes from
// the host and installs a single free block covering it. It fails with
// ErrAlreadyInitialized if called twice without an intervening Teardown,
// with ErrCapacityTooSmall if capacity does not exceed one header plus one
// minimum payload, and with ErrHostAllocationFailed if the host refuses
// the region.
func (p *Pool) Initialize(capacity int) error {
	if p.st == initialized {
		return ErrAlreadyInitialized
	}
	if capacity <= headerSize+minPayload {
		return ErrCapacityTooSmall
	}

	region, err := mmapRegion(capacity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHostAllocationFailed, err)
	}

	p.region = region
	p.capacity = capacity
	p.allocs = 0

	root := p.headerAt(0)
	root.setSize(capacity - headerSize)
	root.setFree(true)
	root.setNext(0, false)

	p.st = initialized
	return nil
}

// Teardown releases the region back to the host and resets the Pool to
// its uninitialized zero value. Outstanding pointers become dangling;
// detecting that misuse is not attempted.
func (p *Pool) Teardown() error {
	if p.st != initialized {
		return nil
	}
	err := munmapRegion(p.region)
	*p = Pool{}
	return err
}

// Stats returns a snapshot of the Pool's bookkeeping counters. Calling it
// on an uninitialized Pool returns the zero Stats.
func (p *Pool) Stats() Stats {
	if p.st != initialized {
		return Stats{}
	}
	s := Stats{Capacity: p.capacity, Allocs: p.allocs}
	for off, ok := uint32(0), true; ok; {
		h := p.headerAt(off)
		s.BlockCount++
		if h.free() {
			s.FreeCapacity += h.size()
		}
		off, ok = h.hasNext()
	}
	return s
}

