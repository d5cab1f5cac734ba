// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the quill TUI.

This package contains styled components built on top of the Bubble Tea
and Lip Gloss libraries, kept consistent with the quill design language.

# Components

Toast (toast.go) - Non-blocking notifications for draft lifecycle
feedback ("Draft recovered", "Snapshot saved"). A ToastManager owns the
visible stack, auto-dismisses entries, and is safe to feed from the
store watcher goroutine.

# Design Principles

All components:
  - Use the shared theme from the styles package
  - Pair every color-coded state with an ASCII indicator
  - Never steal focus from the editor
*/
package components
