// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// RELATIVE AGE
// =============================================================================

func TestFormatRelativeAge(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"thirty seconds", 30 * time.Second, "Just now"},
		{"just under a minute", time.Minute - time.Second, "Just now"},
		{"exactly one minute", time.Minute, "1 minute ago"},
		{"five minutes", 5 * time.Minute, "5 minutes ago"},
		{"just under an hour", 59*time.Minute + 59*time.Second, "59 minutes ago"},
		{"exactly sixty minutes", 60 * time.Minute, "1 hour ago"},
		{"ninety minutes", 90 * time.Minute, "1 hour ago"},
		{"five hours", 5 * time.Hour, "5 hours ago"},
		{"exactly one day", 24 * time.Hour, "1 day ago"},
		{"three days", 3 * 24 * time.Hour, "3 days ago"},
		{"just under a week", 7*24*time.Hour - time.Minute, "6 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRelativeAge(now.Add(-tt.age), now)
			if got != tt.want {
				t.Errorf("FormatRelativeAge(now-%v) = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

func TestFormatRelativeAge_OldDraftsGetAbsoluteDate(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	stamp := now.Add(-10 * 24 * time.Hour)

	got := FormatRelativeAge(stamp, now)
	if got != "Aug 13, 2026" {
		t.Errorf("FormatRelativeAge(10 days) = %q, want %q", got, "Aug 13, 2026")
	}
}

func TestFormatRelativeAge_FutureTimestampClampsToJustNow(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	if got := FormatRelativeAge(now.Add(time.Hour), now); got != "Just now" {
		t.Errorf("Future timestamp = %q, want %q", got, "Just now")
	}
}

// =============================================================================
// PREVIEW TEXT
// =============================================================================

func TestPreviewText_FieldPriority(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{
			"content wins over everything",
			map[string]any{"content": "the speech", "topic": "t", "title": "x"},
			"the speech",
		},
		{
			"topic when content empty",
			map[string]any{"content": "", "topic": "climate", "title": "x"},
			"climate",
		},
		{
			"title when content and topic empty",
			map[string]any{"content": "", "topic": "", "title": "My Essay"},
			"My Essay",
		},
		{
			"fallback with no usable field",
			map[string]any{"author": "someone", "wordCount": 42},
			PreviewFallback,
		},
		{
			"fallback for empty data",
			map[string]any{},
			PreviewFallback,
		},
		{
			"non-string content is skipped",
			map[string]any{"content": 7, "topic": "numbers"},
			"numbers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviewText(tt.data); got != tt.want {
				t.Errorf("PreviewText(%v) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestPreviewText_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := PreviewText(map[string]any{"content": long})

	want := strings.Repeat("a", 100) + "..."
	if got != want {
		t.Errorf("Long content preview = %d chars %q..., want 100 chars plus ellipsis", len(got), got[:20])
	}

	// Exactly 100 characters needs no ellipsis.
	exact := strings.Repeat("b", 100)
	if got := PreviewText(map[string]any{"content": exact}); got != exact {
		t.Errorf("100-char content should pass through untouched")
	}
}

func TestPreviewText_CollapsesNewlines(t *testing.T) {
	got := PreviewText(map[string]any{"content": "first line\nsecond line\r\n\tthird"})
	if strings.ContainsAny(got, "\n\r\t") {
		t.Errorf("Preview contains control characters: %q", got)
	}
	if got != "first line second line third" {
		t.Errorf("Preview = %q, want collapsed single line", got)
	}
}
