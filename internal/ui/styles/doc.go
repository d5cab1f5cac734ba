// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the quill TUI.

This package defines the color palette and the Theme used by the editor,
the draft recovery overlay, and toasts. All colors use Lip Gloss
AdaptiveColor for automatic light/dark terminal detection.

# Color System (colors.go)

  - Purple - Primary accent, selections, overlay borders
  - Cyan - Brand color, key hints
  - Emerald - Success states
  - Amber - Warnings
  - Rose - Errors and destructive actions

Surfaces and text colors follow the same light/dark adaptive scheme.

# Theme (theme.go)

Theme bundles the pre-built lipgloss styles for every widget. Construct
one with NewTheme, which detects the terminal color profile and dark
background via termenv.

# Accessibility

StatusIndicators pairs every color-coded state with an ASCII shape
indicator so state is never conveyed by color alone.
*/
package styles
