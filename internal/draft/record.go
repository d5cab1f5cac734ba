// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

import "time"

// =============================================================================
// STORED RECORD TYPES
// =============================================================================

// Record is the current in-progress draft for a storage key.
//
// Data is opaque to this package: whatever field shape the editor saved
// (content, topic, title, ...). The stored form merges Data with two
// bookkeeping fields, "_timestamp" and "_storageKey", which are stripped
// on read and never appear in Data.
type Record struct {
	// Data maps field names to the values the editor persisted.
	Data map[string]any

	// Timestamp is when the draft was last saved.
	Timestamp time.Time

	// StorageKey is the logical key this record was read from.
	StorageKey string
}

// HistoryEntry is a superseded draft retained for recovery. Entries are
// stored most-recent-first under "<storageKey>_history".
type HistoryEntry struct {
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// HasContent reports whether data holds at least one real value. A draft
// whose fields are all nil or empty strings is treated as absent, so an
// editor that saved an empty form never triggers a recovery prompt.
func HasContent(data map[string]any) bool {
	for _, v := range data {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return true
	}
	return false
}
