// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kvstore provides the persistent key-value port used by draft
// persistence.
package kvstore

import "errors"

// =============================================================================
// STORE PORT
// =============================================================================

// Store is the persistent key-value port the draft subsystem depends on.
//
// All operations are synchronous. Get reports absence through the bool
// rather than an error; malformed *values* are the caller's problem
// (the draft accessor parse-guards them). Set and Remove may fail when
// the underlying medium rejects the operation (quota, I/O error).
type Store interface {
	// Get returns the value stored under key, and whether it exists.
	Get(key string) (string, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error

	// Remove deletes the value under key. Removing a missing key is a no-op.
	Remove(key string) error
}

// ErrStoreClosed is returned by backends that hold resources (sqlite,
// watcher) when used after Close.
var ErrStoreClosed = errors.New("kvstore: store is closed")
