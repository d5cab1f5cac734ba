// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor provides the drafting textarea for the quill TUI.
//
// The editor owns the write side of draft persistence: it autosaves the
// current draft as the user types and snapshots a history entry on
// explicit save (ctrl+s). The recovery overlay only ever reads what this
// component wrote.
package editor

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillforge/quill-tui/internal/draft"
	"github.com/quillforge/quill-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AutosaveInterval is the default flush interval for dirty content.
// Callers can override it per editor through New.
const AutosaveInterval = 2 * time.Second

// autosaveTickMsg drives the periodic flush.
type autosaveTickMsg time.Time

// SnapshotSavedMsg is emitted after ctrl+s stored a history snapshot, so
// the host can surface a toast.
type SnapshotSavedMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the drafting editor bound to one storage key.
type Model struct {
	textarea textarea.Model
	writer   *draft.Writer
	theme    *styles.Theme

	storageKey string
	title      string

	dirty     bool
	lastSaved time.Time
	interval  time.Duration

	width  int
	height int
}

// New creates an editor for storageKey. title is carried into the draft
// fields so previews can fall back to it. interval is the autosave
// cadence; zero or negative falls back to AutosaveInterval.
func New(storageKey, title string, w *draft.Writer, theme *styles.Theme, interval time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Start writing..."
	ta.ShowLineNumbers = false
	ta.Focus()

	if interval <= 0 {
		interval = AutosaveInterval
	}

	return Model{
		textarea:   ta,
		writer:     w,
		theme:      theme,
		storageKey: storageKey,
		title:      title,
		interval:   interval,
	}
}

// Init starts the cursor blink and the autosave loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.autosaveTick())
}

func (m Model) autosaveTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return autosaveTickMsg(t)
	})
}

// Data returns the draft fields this editor persists.
func (m Model) Data() map[string]any {
	return map[string]any{
		"title":   m.title,
		"content": m.textarea.Value(),
	}
}

// SetData replaces the editor content from recovered draft fields and
// persists the restored state so the slot reflects what is on screen.
func (m *Model) SetData(data map[string]any) {
	if s, ok := data["content"].(string); ok {
		m.textarea.SetValue(s)
	}
	if s, ok := data["title"].(string); ok && s != "" {
		m.title = s
	}
	m.flush()
}

// Value returns the current content text.
func (m Model) Value() string {
	return m.textarea.Value()
}

// SetSize resizes the textarea within the frame.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.textarea.SetWidth(width - 4)
	m.textarea.SetHeight(height - 4)
}

// Focus forwards focus to the textarea.
func (m *Model) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes focus and flushes any unsaved content, mirroring the
// web-editor habit of persisting on blur.
func (m *Model) Blur() {
	m.textarea.Blur()
	if m.dirty {
		m.flush()
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles typing, autosave ticks and the snapshot shortcut.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autosaveTickMsg:
		if m.dirty {
			m.flush()
		}
		return m, m.autosaveTick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			return m.snapshot()
		}
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if m.textarea.Value() != before {
		m.dirty = true
	}
	return m, cmd
}

// snapshot stores a history entry and flushes the current slot.
func (m Model) snapshot() (Model, tea.Cmd) {
	data := m.Data()
	if err := m.writer.AppendHistory(m.storageKey, data); err != nil {
		return m, nil
	}
	m.flush()
	return m, func() tea.Msg { return SnapshotSavedMsg{} }
}

// flush writes the current content to the draft slot. Write failures are
// already logged by the writer; the editor just stays dirty so the next
// tick retries.
func (m *Model) flush() {
	if err := m.writer.SaveCurrent(m.storageKey, m.Data()); err != nil {
		return
	}
	m.dirty = false
	m.lastSaved = time.Now()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the editor frame with a status line.
func (m Model) View() string {
	status := "Not saved yet"
	if !m.lastSaved.IsZero() {
		status = "Saved: " + draft.FormatRelativeAge(m.lastSaved, time.Now())
	}
	if m.dirty {
		status += " *"
	}

	frame := m.theme.EditorFrame.Render(m.textarea.View())
	return frame + "\n" + m.theme.EditorStatus.Render(status)
}
