// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

import (
	"encoding/json"
	"time"

	"github.com/quillforge/quill-tui/internal/kvstore"
)

// =============================================================================
// WRITER (EDITOR SIDE)
// =============================================================================

// DefaultMaxStored caps how many history entries the writer keeps in the
// store. Reads only ever expose MaxHistory of them; the extra headroom
// absorbs a few deletes without immediately running the list dry.
const DefaultMaxStored = 20

// Writer is the editor-side counterpart of Accessor: it persists the
// current draft as the user types and appends superseded versions to
// history on explicit saves.
type Writer struct {
	store kvstore.Store
	log   Logger

	// MaxStored bounds the persisted history length.
	MaxStored int
}

// NewWriter creates a writer over store.
func NewWriter(store kvstore.Store, log Logger) *Writer {
	if log == nil {
		log = NopLogger{}
	}
	return &Writer{
		store:     store,
		log:       log,
		MaxStored: DefaultMaxStored,
	}
}

// SaveCurrent overwrites the current draft under key with data. The stored
// object is data merged with the "_timestamp" and "_storageKey"
// bookkeeping fields. Saving all-empty data removes the record instead,
// so abandoned empty forms never prompt for recovery.
func (w *Writer) SaveCurrent(key string, data map[string]any) error {
	if !HasContent(data) {
		if err := w.store.Remove(key); err != nil {
			werr := &WriteError{Key: key, Err: err}
			w.log.Warnf("draft: save current: %v", werr)
			return werr
		}
		return nil
	}

	merged := make(map[string]any, len(data)+2)
	for k, v := range data {
		merged[k] = v
	}
	merged[fieldTimestamp] = time.Now().UTC().Format(time.RFC3339Nano)
	merged[fieldStorageKey] = key

	raw, err := json.Marshal(merged)
	if err != nil {
		werr := &WriteError{Key: key, Err: err}
		w.log.Warnf("draft: save current: %v", werr)
		return werr
	}
	if err := w.store.Set(key, string(raw)); err != nil {
		werr := &WriteError{Key: key, Err: err}
		w.log.Warnf("draft: save current: %v", werr)
		return werr
	}
	return nil
}

// AppendHistory prepends a snapshot of data to key's history, keeping the
// stored list within MaxStored. Empty data is not worth a history slot.
func (w *Writer) AppendHistory(key string, data map[string]any) error {
	if !HasContent(data) {
		return nil
	}

	historyKey := key + HistorySuffix

	var entries []HistoryEntry
	if raw, ok := w.store.Get(historyKey); ok {
		// A corrupt history is dropped and restarted rather than blocking
		// new snapshots.
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			w.log.Warnf("draft: append history: %v", &ReadError{Key: historyKey, Err: err})
			entries = nil
		}
	}

	entry := HistoryEntry{Data: data, Timestamp: time.Now().UTC()}
	entries = append([]HistoryEntry{entry}, entries...)

	max := w.MaxStored
	if max <= 0 {
		max = DefaultMaxStored
	}
	if len(entries) > max {
		entries = entries[:max]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		werr := &WriteError{Key: historyKey, Err: err}
		w.log.Warnf("draft: append history: %v", werr)
		return werr
	}
	if err := w.store.Set(historyKey, string(raw)); err != nil {
		werr := &WriteError{Key: historyKey, Err: err}
		w.log.Warnf("draft: append history: %v", werr)
		return werr
	}
	return nil
}
