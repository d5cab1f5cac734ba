// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recovery

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillforge/quill-tui/internal/draft"
	"github.com/quillforge/quill-tui/internal/ui/styles"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// DefaultTitle is the overlay heading when Config.Title is empty.
const DefaultTitle = "Recover Draft"

// Config is the caller-facing contract of the recovery overlay.
type Config struct {
	// StorageKey addresses the draft slot to present. Required.
	StorageKey string

	// Title is the overlay heading. Defaults to DefaultTitle.
	Title string

	// OnRecover receives the recovered draft's fields. Called for both the
	// current draft and history entries.
	OnRecover func(data map[string]any)

	// OnDiscard is called after the current draft was discarded.
	OnDiscard func()

	// OnClose is called whenever the overlay closes.
	OnClose func()
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the recovery overlay. Create it with New, which hydrates the
// view exactly once; every later mutation goes back through the accessor.
type Model struct {
	cfg   Config
	acc   *draft.Accessor
	theme *styles.Theme
	keys  KeyMap

	current *draft.Record
	history []draft.HistoryEntry

	cursor  int
	visible bool

	width  int
	height int

	// now is injectable for deterministic age labels in tests.
	now func() time.Time
}

// New mounts the overlay for cfg.StorageKey: it loads the current draft
// and history once and becomes visible only when either exists.
func New(cfg Config, acc *draft.Accessor, theme *styles.Theme) Model {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	m := Model{
		cfg:   cfg,
		acc:   acc,
		theme: theme,
		keys:  DefaultKeyMap(),
		now:   time.Now,
	}

	m.current, _ = acc.LoadCurrent(cfg.StorageKey)
	m.history = acc.LoadHistory(cfg.StorageKey)
	m.visible = m.current != nil || len(m.history) > 0

	return m
}

// Init implements tea.Model (no background work).
func (m Model) Init() tea.Cmd {
	return nil
}

// IsVisible reports whether the overlay has anything to show.
func (m Model) IsVisible() bool {
	return m.visible
}

// SetSize updates the cached viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles user intents while the overlay is visible. Recover,
// discard and dismiss close the overlay; deleting a history entry keeps
// it open with the refreshed list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.itemCount()-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Recover):
			return m.recoverSelected(), nil

		case key.Matches(msg, m.keys.Delete):
			return m.deleteSelected(), nil

		case key.Matches(msg, m.keys.Close):
			return m.close(), nil
		}
	}

	return m, nil
}

// recoverSelected relays the selected draft's fields to the host.
// Recovering does not remove anything from the store: the editor
// overwrites the slot on its next save, and only an explicit discard
// clears it.
func (m Model) recoverSelected() Model {
	if m.hasCurrent() && m.cursor == 0 {
		if m.cfg.OnRecover != nil {
			m.cfg.OnRecover(m.current.Data)
		}
		return m.close()
	}

	if idx := m.historyIndex(); idx >= 0 && idx < len(m.history) {
		if m.cfg.OnRecover != nil {
			m.cfg.OnRecover(m.history[idx].Data)
		}
		return m.close()
	}
	return m
}

// deleteSelected discards the current draft or deletes one history entry.
// Deleting an entry keeps the overlay open on the refreshed list.
func (m Model) deleteSelected() Model {
	if m.hasCurrent() && m.cursor == 0 {
		m.acc.DiscardCurrent(m.cfg.StorageKey)
		m.current = nil
		if m.cfg.OnDiscard != nil {
			m.cfg.OnDiscard()
		}
		return m.close()
	}

	idx := m.historyIndex()
	if idx < 0 || idx >= len(m.history) {
		return m
	}

	m.history = m.acc.DeleteHistoryEntry(m.cfg.StorageKey, idx)
	if m.cursor >= m.itemCount() {
		m.cursor = m.itemCount() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.itemCount() == 0 {
		// Nothing left to offer; hide without a close intent.
		m.visible = false
	}
	return m
}

// close hides the overlay and notifies the host.
func (m Model) close() Model {
	m.visible = false
	if m.cfg.OnClose != nil {
		m.cfg.OnClose()
	}
	return m
}

// =============================================================================
// SELECTION HELPERS
// =============================================================================

func (m Model) hasCurrent() bool {
	return m.current != nil
}

func (m Model) itemCount() int {
	n := len(m.history)
	if m.hasCurrent() {
		n++
	}
	return n
}

// historyIndex maps the cursor to an index into m.history, or -1 when
// the cursor sits on the current draft.
func (m Model) historyIndex() int {
	if m.hasCurrent() {
		return m.cursor - 1
	}
	return m.cursor
}
