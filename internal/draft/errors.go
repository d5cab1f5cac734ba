// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

import "fmt"

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// ReadError reports a malformed or unparseable stored value. It is
// recovered inside the Accessor (logged, mapped to absent) and never
// reaches the UI.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("draft: failed to read %q: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a store mutation the underlying medium rejected
// (quota, I/O). Like ReadError it is logged and swallowed; the in-memory
// view stays on the previous state.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("draft: failed to write %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
