// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.
// Modifications (c) 2024 routed through golang.org/x/sys/windows.

package pool

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// regionHandles tracks the file-mapping handle backing each mapped
// region's base address, so munmapRegion can release it in turn.
var regionHandles = map[uintptr]windows.Handle{}

// mmapRegion reserves size bytes of anonymous, zero-filled memory from
// the host via CreateFileMapping/MapViewOfFile.
func mmapRegion(size int) ([]byte, error) {
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, uint32(uint64(size)>>32), uint32(size), nil)
	if err != nil {
		return nil, err
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, err
	}

	regionHandles[addr] = h
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// munmapRegion releases a region previously obtained from mmapRegion.
func munmapRegion(b []byte) error {
	addr := uintptr(unsafe.Pointer(&b[0]))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		return err
	}

	h, ok := regionHandles[addr]
	if !ok {
		return nil // should be impossible; we would've errored above.
	}
	delete(regionHandles, addr)
	return windows.CloseHandle(h)
}
