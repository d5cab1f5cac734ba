// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the quill TUI.
//
// This file implements non-blocking toasts for draft lifecycle feedback
// ("Draft recovered", "Draft discarded"). Toasts render in the corner and
// auto-dismiss; they never steal focus from the editor.
package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillforge/quill-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind classifies a toast notification.
type ToastKind int

const (
	// ToastStatus is an informational toast (cyan)
	ToastStatus ToastKind = iota
	// ToastSuccess confirms an action (emerald)
	ToastSuccess
	// ToastWarning flags a caution state (amber)
	ToastWarning
	// ToastError reports a failure (rose)
	ToastError
)

// DefaultToastDuration is the auto-dismiss delay for status and success
// toasts.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration gives error toasts longer to be read.
const ErrorToastDuration = 8 * time.Second

// Toast is one notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the toast should be dismissed.
func (t Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// maxToasts bounds how many toasts are visible at once.
const maxToasts = 3

// ToastManager owns the active toast list. Safe for concurrent use: the
// store watcher goroutine may add toasts while the UI ticks them.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1}
}

// Add inserts a toast, newest first, trimming to the visible maximum.
func (m *ToastManager) Add(kind ToastKind, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := DefaultToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}

	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  d,
	}
	m.nextID++

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[:maxToasts]
	}
	return toast.ID
}

// Tick drops expired toasts and returns the survivors.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired() {
			active = append(active, t)
		}
	}
	m.toasts = active
	return append([]Toast(nil), m.toasts...)
}

// Active returns the non-expired toasts without dropping expired ones.
// Views render from this snapshot; only Tick mutates the stack.
func (m *ToastManager) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active []Toast
	for _, t := range m.toasts {
		if !t.IsExpired() {
			active = append(active, t)
		}
	}
	return active
}

// HasToasts reports whether anything is visible.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct{}

// ToastTickCmd schedules the next expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return ToastTickMsg{}
	})
}

// RenderToasts renders the active toasts as a right-aligned stack.
func RenderToasts(theme *styles.Theme, toasts []Toast) string {
	if len(toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		var style lipgloss.Style
		var indicator string
		switch t.Kind {
		case ToastSuccess:
			style, indicator = theme.ToastSuccess, styles.StatusIndicators.Success
		case ToastWarning:
			style, indicator = theme.ToastWarning, styles.StatusIndicators.Warning
		case ToastError:
			style, indicator = theme.ToastError, styles.StatusIndicators.Error
		default:
			style, indicator = theme.ToastStatus, styles.StatusIndicators.Info
		}
		lines = append(lines, style.Render(indicator+" "+t.Message))
	}
	return strings.Join(lines, "\n")
}
