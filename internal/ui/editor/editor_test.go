// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillforge/quill-tui/internal/draft"
	"github.com/quillforge/quill-tui/internal/kvstore"
	"github.com/quillforge/quill-tui/internal/ui/styles"
)

const testKey = "writing_draft"

func newEditor(store kvstore.Store) Model {
	w := draft.NewWriter(store, nil)
	return New(testKey, "My Speech", w, styles.NewTheme(80, 24), 0)
}

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestEditor_AutosaveFlushesDirtyContent(t *testing.T) {
	store := kvstore.NewMemoryStore()
	m := newEditor(store)

	m = typeRunes(m, "hello")
	if !m.dirty {
		t.Fatal("Typing should mark the editor dirty")
	}

	m, _ = m.Update(autosaveTickMsg(time.Now()))
	if m.dirty {
		t.Error("Autosave tick should clear the dirty flag")
	}

	rec, ok := draft.NewAccessor(store, nil).LoadCurrent(testKey)
	if !ok {
		t.Fatal("Autosave should persist the current draft")
	}
	if rec.Data["content"] != "hello" {
		t.Errorf("content = %v, want %q", rec.Data["content"], "hello")
	}
	if rec.Data["title"] != "My Speech" {
		t.Errorf("title = %v, want %q", rec.Data["title"], "My Speech")
	}
}

func TestEditor_AutosaveSkipsWhenClean(t *testing.T) {
	store := kvstore.NewMemoryStore()
	m := newEditor(store)

	m, _ = m.Update(autosaveTickMsg(time.Now()))

	if _, ok := store.Get(testKey); ok {
		t.Error("Clean editor should not write on tick")
	}
}

func TestEditor_SnapshotAppendsHistory(t *testing.T) {
	store := kvstore.NewMemoryStore()
	m := newEditor(store)

	m = typeRunes(m, "version one")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("Snapshot should emit a command")
	}
	if _, ok := cmd().(SnapshotSavedMsg); !ok {
		t.Error("Snapshot command should produce SnapshotSavedMsg")
	}

	acc := draft.NewAccessor(store, nil)
	history := acc.LoadHistory(testKey)
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Data["content"] != "version one" {
		t.Errorf("history content = %v", history[0].Data["content"])
	}

	// The current slot is flushed as part of the snapshot.
	if _, ok := acc.LoadCurrent(testKey); !ok {
		t.Error("Snapshot should also flush the current slot")
	}
}

func TestEditor_SetDataRestoresRecoveredDraft(t *testing.T) {
	store := kvstore.NewMemoryStore()
	m := newEditor(store)

	m.SetData(map[string]any{"content": "restored text", "title": "Old Title"})

	if m.Value() != "restored text" {
		t.Errorf("Value = %q, want restored content", m.Value())
	}

	rec, ok := draft.NewAccessor(store, nil).LoadCurrent(testKey)
	if !ok {
		t.Fatal("SetData should persist the restored state")
	}
	if rec.Data["title"] != "Old Title" {
		t.Errorf("title = %v, want %q", rec.Data["title"], "Old Title")
	}
}

func TestEditor_AutosaveIntervalConfigurable(t *testing.T) {
	store := kvstore.NewMemoryStore()
	w := draft.NewWriter(store, nil)
	theme := styles.NewTheme(80, 24)

	m := New(testKey, "My Speech", w, theme, 7*time.Second)
	if m.interval != 7*time.Second {
		t.Errorf("interval = %v, want 7s", m.interval)
	}

	// Zero falls back to the default cadence.
	m = New(testKey, "My Speech", w, theme, 0)
	if m.interval != AutosaveInterval {
		t.Errorf("interval = %v, want default %v", m.interval, AutosaveInterval)
	}
}

func TestEditor_BlurFlushes(t *testing.T) {
	store := kvstore.NewMemoryStore()
	m := newEditor(store)

	m = typeRunes(m, "about to blur")
	m.Blur()

	if _, ok := store.Get(testKey); !ok {
		t.Error("Blur should flush unsaved content")
	}
}
