// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the quill TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// RECOVERY OVERLAY STYLES
	// ==========================================================================

	OverlayBox     lipgloss.Style
	OverlayTitle   lipgloss.Style
	DraftPreview   lipgloss.Style
	DraftAge       lipgloss.Style
	HistoryHeading lipgloss.Style
	Item           lipgloss.Style
	ItemSelected   lipgloss.Style

	// ==========================================================================
	// EDITOR STYLES
	// ==========================================================================

	EditorFrame  lipgloss.Style
	EditorStatus lipgloss.Style

	// ==========================================================================
	// KEY HINT STYLES
	// ==========================================================================

	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// TOAST STYLES
	// ==========================================================================

	ToastStatus  lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// NewTheme creates a theme sized for the given terminal dimensions.
func NewTheme(width, height int) *Theme {
	profile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Width:        width,
		Height:       height,
	}

	t.OverlayBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Background(Surface).
		Padding(1, 2)

	t.OverlayTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.DraftPreview = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.DraftAge = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HistoryHeading = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Item = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		Padding(0, 1)

	t.EditorFrame = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(SurfaceBright)

	t.EditorStatus = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ToastStatus = toastStyle(Cyan)
	t.ToastSuccess = toastStyle(Emerald)
	t.ToastWarning = toastStyle(Amber)
	t.ToastError = toastStyle(Rose)

	return t
}

// SetSize updates the cached terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

func toastStyle(accent lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Foreground(accent).
		Padding(0, 1)
}
