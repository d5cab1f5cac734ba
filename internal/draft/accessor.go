// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

import (
	"encoding/json"
	"time"

	"github.com/quillforge/quill-tui/internal/kvstore"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// MaxHistory is how many history entries are retained and exposed. Older
// entries may still sit in the store but are truncated on every read.
const MaxHistory = 5

// HistorySuffix is appended to a storage key to address its history list.
const HistorySuffix = "_history"

// Bookkeeping fields merged into the stored current-draft object.
const (
	fieldTimestamp  = "_timestamp"
	fieldStorageKey = "_storageKey"
)

// =============================================================================
// ACCESSOR
// =============================================================================

// Accessor reads and mutates draft records against an injected store.
//
// Every public method follows the no-throw-to-UI contract: internal reads
// and writes produce ReadError/WriteError values, and the public surface
// maps any error to the absent/unchanged case after logging it.
type Accessor struct {
	store kvstore.Store
	log   Logger
}

// NewAccessor creates an accessor over store. A nil logger means silent
// degradation with no diagnostics.
func NewAccessor(store kvstore.Store, log Logger) *Accessor {
	if log == nil {
		log = NopLogger{}
	}
	return &Accessor{store: store, log: log}
}

// =============================================================================
// READ PATH
// =============================================================================

// LoadCurrent returns the current draft under key, or ok=false when there
// is nothing to recover: no stored value, an unparseable one, or a record
// whose fields are all empty. Failures are logged, never returned.
func (a *Accessor) LoadCurrent(key string) (*Record, bool) {
	rec, err := a.readCurrent(key)
	if err != nil {
		a.log.Warnf("draft: load current: %v", err)
		return nil, false
	}
	if rec == nil {
		return nil, false
	}
	return rec, true
}

func (a *Accessor) readCurrent(key string) (*Record, error) {
	raw, ok := a.store.Get(key)
	if !ok {
		return nil, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &ReadError{Key: key, Err: err}
	}

	ts := parseTimestamp(fields[fieldTimestamp])
	delete(fields, fieldTimestamp)
	delete(fields, fieldStorageKey)

	if !HasContent(fields) {
		return nil, nil
	}

	return &Record{
		Data:       fields,
		Timestamp:  ts,
		StorageKey: key,
	}, nil
}

// LoadHistory returns up to MaxHistory prior versions of key, most recent
// first. A missing or unparseable history yields an empty slice.
func (a *Accessor) LoadHistory(key string) []HistoryEntry {
	entries, err := a.readHistory(key)
	if err != nil {
		a.log.Warnf("draft: load history: %v", err)
		return nil
	}
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}
	return entries
}

func (a *Accessor) readHistory(key string) ([]HistoryEntry, error) {
	historyKey := key + HistorySuffix

	raw, ok := a.store.Get(historyKey)
	if !ok {
		return nil, nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &ReadError{Key: historyKey, Err: err}
	}
	return entries, nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// DiscardCurrent removes the current draft under key. A store failure is
// logged and otherwise ignored; the worst case is being prompted again
// next session.
func (a *Accessor) DiscardCurrent(key string) {
	if err := a.store.Remove(key); err != nil {
		a.log.Warnf("draft: discard: %v", &WriteError{Key: key, Err: err})
	}
}

// DeleteHistoryEntry removes the entry at index from key's history and
// returns the updated view.
//
// The deletion operates on the truncated MaxHistory view, not the full
// stored array, so an entry hidden by truncation can never resurface
// after a delete. An out-of-range index (stale UI state from a re-render)
// is a no-op that returns the current view unchanged. A failed write-back
// also returns the unchanged view: stale but consistent.
func (a *Accessor) DeleteHistoryEntry(key string, index int) []HistoryEntry {
	view := a.LoadHistory(key)
	if index < 0 || index >= len(view) {
		return view
	}

	updated := make([]HistoryEntry, 0, len(view)-1)
	updated = append(updated, view[:index]...)
	updated = append(updated, view[index+1:]...)

	historyKey := key + HistorySuffix
	data, err := json.Marshal(updated)
	if err != nil {
		a.log.Warnf("draft: delete history entry: %v", &WriteError{Key: historyKey, Err: err})
		return view
	}
	if err := a.store.Set(historyKey, string(data)); err != nil {
		a.log.Warnf("draft: delete history entry: %v", &WriteError{Key: historyKey, Err: err})
		return view
	}

	return updated
}

// =============================================================================
// HELPERS
// =============================================================================

// parseTimestamp decodes the stored "_timestamp" field. A missing or
// malformed value degrades to the zero time; the record itself stays
// recoverable.
func parseTimestamp(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
