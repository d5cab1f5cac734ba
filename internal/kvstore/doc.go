// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kvstore provides the persistent key-value port used by draft
// persistence.
//
// The draft subsystem never talks to disk directly; it receives a Store
// as an injected capability so tests can substitute an in-memory fake.
//
// # Key Types
//
//   - Store: the get/set/remove port
//   - MemoryStore: map-backed store for tests and ephemeral sessions
//   - FileStore: one file per key, atomic writes
//   - SQLiteStore: single-table sqlite store
//   - Watcher: fsnotify-based change notification for FileStore dirs
//
// # Usage
//
// Open a file-backed store and hand it to the draft accessor:
//
//	store, err := kvstore.NewFileStore(dir)
//	acc := draft.NewAccessor(store, logger)
//
// # Storage Location
//
// The file backend defaults to ~/.quill/drafts/.
package kvstore
