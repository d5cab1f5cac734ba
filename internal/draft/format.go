// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/quillforge/quill-tui/internal/util"
)

// =============================================================================
// RELATIVE AGE
// =============================================================================

// FormatRelativeAge renders how long ago t was, relative to now:
//
//	< 1 minute   "Just now"
//	< 60 minutes "N minutes ago"
//	< 24 hours   "N hours ago"
//	< 7 days     "N days ago"
//	otherwise    an absolute date ("Jan 2, 2006")
//
// Boundaries are inclusive on the lower side: exactly 60 minutes is
// "1 hour ago", not "60 minutes ago". A future t clamps to "Just now".
func FormatRelativeAge(t, now time.Time) string {
	age := now.Sub(t)

	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		mins := int(age.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case age < 24*time.Hour:
		hours := int(age.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case age < 7*24*time.Hour:
		days := int(age.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// =============================================================================
// PREVIEW TEXT
// =============================================================================

// PreviewFallback is shown when no preview field holds text.
const PreviewFallback = "Draft content"

// previewMaxRunes bounds the content preview length.
const previewMaxRunes = 100

// previewFields is the field-priority contract: callers rely on this
// order for predictable previews regardless of their field naming.
var previewFields = []string{"content", "topic", "title"}

// PreviewText derives a one-line preview from a draft's fields. The first
// non-empty field in priority order (content, topic, title) wins; content
// is truncated to 100 characters with an ellipsis. With no usable field
// the fixed fallback string is returned.
func PreviewText(data map[string]any) string {
	for i, field := range previewFields {
		s, ok := data[field].(string)
		if !ok || s == "" {
			continue
		}
		s = sanitizePreview(s)
		if s == "" {
			continue
		}
		// Only the content field is long-form enough to need truncation.
		if i == 0 && len([]rune(s)) > previewMaxRunes {
			s = util.TruncateRunesNoEllipsis(s, previewMaxRunes) + "..."
		}
		return s
	}
	return PreviewFallback
}

// sanitizePreview makes draft text safe for a single terminal line:
// NFC-normalized, newlines collapsed to spaces, other control runes
// dropped.
func sanitizePreview(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			space = true
		case unicode.IsControl(r):
			// dropped
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
