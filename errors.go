// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import "errors"

var (
	// ErrAlreadyInitialized is returned by Initialize when called on a
	// Pool that is already Initialized.
	ErrAlreadyInitialized = errors.New("pool: already initialized")

	// ErrCapacityTooSmall is returned by Initialize when capacity does
	// not exceed one header plus one minimum payload.
	ErrCapacityTooSmall = errors.New("pool: capacity too small")

	// ErrHostAllocationFailed is returned by Initialize when the host
	// refuses to provide the requested region. It wraps the underlying
	// error.
	ErrHostAllocationFailed = errors.New("pool: host allocation failed")
)
