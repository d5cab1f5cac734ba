// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillforge/quill-tui/internal/draft"
	"github.com/quillforge/quill-tui/internal/kvstore"
	"github.com/quillforge/quill-tui/internal/ui/components"
	"github.com/quillforge/quill-tui/internal/ui/editor"
	"github.com/quillforge/quill-tui/internal/ui/recovery"
	"github.com/quillforge/quill-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// StoreChangedMsg reports that another process wrote the given store key.
// The file watcher sends it through tea.Program.Send.
type StoreChangedMsg struct {
	Key string
}

// =============================================================================
// MODEL
// =============================================================================

// Config carries everything the app model needs from main.
type Config struct {
	StorageKey    string
	DocumentTitle string
	RecoveryTitle string

	// MaxStoredHistory bounds the persisted history length; zero keeps
	// the writer's default.
	MaxStoredHistory int

	// AutosaveInterval is the editor flush cadence; zero keeps the
	// editor's default.
	AutosaveInterval time.Duration
}

// intentSink collects overlay callbacks so the app model can react after
// delegating an Update. The overlay invokes callbacks synchronously, and
// the sink is shared by pointer across model copies.
type intentSink struct {
	recovered    map[string]any
	hasRecovered bool
	discarded    bool
	closed       bool
}

func (s *intentSink) reset() {
	s.recovered = nil
	s.hasRecovered = false
	s.discarded = false
	s.closed = false
}

// Model is the root quill model: the drafting editor with the recovery
// overlay shown on top at startup when a previous draft exists.
type Model struct {
	cfg   Config
	store kvstore.Store
	theme *styles.Theme

	editor   editor.Model
	recovery recovery.Model
	toasts   *components.ToastManager
	intents  *intentSink

	width  int
	height int
}

// New builds the app model. The recovery overlay hydrates immediately, so
// the first frame already shows the prompt when a draft survived.
func New(cfg Config, store kvstore.Store, logger draft.Logger) Model {
	theme := styles.NewTheme(80, 24)
	acc := draft.NewAccessor(store, logger)
	w := draft.NewWriter(store, logger)
	if cfg.MaxStoredHistory > 0 {
		w.MaxStored = cfg.MaxStoredHistory
	}

	sink := &intentSink{}
	ov := recovery.New(recovery.Config{
		StorageKey: cfg.StorageKey,
		Title:      cfg.RecoveryTitle,
		OnRecover: func(data map[string]any) {
			sink.recovered = data
			sink.hasRecovered = true
		},
		OnDiscard: func() { sink.discarded = true },
		OnClose:   func() { sink.closed = true },
	}, acc, theme)

	return Model{
		cfg:      cfg,
		store:    store,
		theme:    theme,
		editor:   editor.New(cfg.StorageKey, cfg.DocumentTitle, w, theme, cfg.AutosaveInterval),
		recovery: ov,
		toasts:   components.NewToastManager(),
		intents:  sink,
	}
}

// Init starts the editor loops and the toast ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), components.ToastTickCmd())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes input to the overlay while it is visible, otherwise to the
// editor.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.editor.SetSize(msg.Width, msg.Height)
		m.recovery.SetSize(msg.Width, msg.Height)
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case editor.SnapshotSavedMsg:
		m.toasts.Add(components.ToastSuccess, "Snapshot saved")
		return m, nil

	case StoreChangedMsg:
		if msg.Key == m.cfg.StorageKey || msg.Key == m.cfg.StorageKey+draft.HistorySuffix {
			m.toasts.Add(components.ToastWarning, "Draft changed outside this session")
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "ctrl+q" {
			// Flush before leaving so nothing typed is lost.
			m.editor.Blur()
			return m, tea.Quit
		}
	}

	if m.recovery.IsVisible() {
		var cmd tea.Cmd
		m.recovery, cmd = m.recovery.Update(msg)
		next, focusCmd := m.applyIntents()
		return next, tea.Batch(cmd, focusCmd)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// applyIntents reacts to overlay callbacks recorded during the last
// delegated Update. The returned command restarts the editor cursor
// blink when focus moves back to it.
func (m Model) applyIntents() (Model, tea.Cmd) {
	s := m.intents
	defer s.reset()

	var cmd tea.Cmd
	if s.hasRecovered {
		m.editor.SetData(s.recovered)
		m.toasts.Add(components.ToastSuccess, "Draft recovered")
	}
	if s.discarded {
		m.toasts.Add(components.ToastStatus, "Draft discarded")
	}
	if s.closed || !m.recovery.IsVisible() {
		cmd = m.editor.Focus()
	}
	return m, cmd
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the overlay while it has something to offer, otherwise the
// editor, with any active toasts stacked on top.
func (m Model) View() string {
	var body string
	if m.recovery.IsVisible() {
		body = m.recovery.View()
	} else {
		body = m.editor.View()
	}

	if toasts := components.RenderToasts(m.theme, m.toasts.Active()); toasts != "" {
		return lipgloss.JoinVertical(lipgloss.Right, toasts, body)
	}
	return body
}
