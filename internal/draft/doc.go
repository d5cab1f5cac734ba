// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package draft implements draft persistence and recovery for quill.
//
// A draft is the in-progress content of a writing, keyed by a logical
// storage key. The editor persists the current draft as it changes and
// appends superseded versions to a bounded history; this package owns
// reading those records back, deciding whether anything is recoverable,
// and the lifecycle transitions (discard, per-entry delete) the recovery
// UI exposes.
//
// # Key Types
//
//   - Accessor: read/discard side used by the recovery overlay
//   - Writer: save side used by the editor
//   - Record / HistoryEntry: the decoded stored shapes
//
// # Failure Policy
//
// Store and parse failures never propagate to the UI. Every read maps a
// failure to "nothing to recover" and every failed mutation leaves the
// previous state visible; failures are reported only through the injected
// Logger.
package draft
