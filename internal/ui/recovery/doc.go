// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package recovery provides the draft recovery overlay.
//
// The overlay is mounted once, hydrates itself from the draft accessor,
// and renders nothing at all when there is neither a current draft nor
// history, so hosts can mount it unconditionally at startup. User intents
// (recover, discard, recover a prior version, delete a prior version,
// dismiss) are relayed to the host through the callbacks in Config.
//
// Storage failures never surface here: a draft that cannot be read simply
// does not appear.
package recovery
