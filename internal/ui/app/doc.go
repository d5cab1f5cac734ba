// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app assembles the quill TUI: the drafting editor, the draft
// recovery overlay shown at startup, and toast notifications.
//
// The model owns routing only. Persistence lives in internal/draft, and
// all key handling is delegated to whichever component has focus.
package app
