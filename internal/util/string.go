// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the quill application.
package util

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// Counting runes instead of bytes prevents mid-character truncation that
// would corrupt UTF-8 strings.

// TruncateRunesNoEllipsis truncates a string to a maximum number of runes
// without appending an ellipsis. Display-width clamping (CJK, emoji) is
// handled by go-runewidth at the render layer instead.
func TruncateRunesNoEllipsis(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
