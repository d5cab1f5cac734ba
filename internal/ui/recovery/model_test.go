// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recovery

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/quillforge/quill-tui/internal/draft"
	"github.com/quillforge/quill-tui/internal/kvstore"
	"github.com/quillforge/quill-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const testKey = "speech_draft"

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

type callbacks struct {
	recovered []map[string]any
	discards  int
	closes    int
}

func (c *callbacks) config() Config {
	return Config{
		StorageKey: testKey,
		OnRecover:  func(data map[string]any) { c.recovered = append(c.recovered, data) },
		OnDiscard:  func() { c.discards++ },
		OnClose:    func() { c.closes++ },
	}
}

func storeWithCurrent(t *testing.T, content string) *kvstore.MemoryStore {
	t.Helper()
	store := kvstore.NewMemoryStore()
	raw := fmt.Sprintf(`{"content":%q,"_timestamp":"2026-08-23T11:59:00Z","_storageKey":%q}`, content, testKey)
	require.NoError(t, store.Set(testKey, raw))
	return store
}

func seedHistory(t *testing.T, store kvstore.Store, n int) {
	t.Helper()
	entries := make([]draft.HistoryEntry, n)
	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	for i := range entries {
		entries[i] = draft.HistoryEntry{
			Data:      map[string]any{"content": fmt.Sprintf("version %d", i)},
			Timestamp: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	raw, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, store.Set(testKey+draft.HistorySuffix, string(raw)))
}

func newModel(store kvstore.Store, cb *callbacks) Model {
	acc := draft.NewAccessor(store, nil)
	m := New(cb.config(), acc, styles.NewTheme(80, 24))
	m.now = func() time.Time { return time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC) }
	return m
}

// =============================================================================
// HYDRATION AND RENDER CONTRACT
// =============================================================================

func TestNew_EmptyStoreRendersNothing(t *testing.T) {
	cb := &callbacks{}
	m := newModel(kvstore.NewMemoryStore(), cb)

	require.False(t, m.IsVisible())
	require.Empty(t, m.View())
}

func TestNew_CurrentDraftShown(t *testing.T) {
	cb := &callbacks{}
	m := newModel(storeWithCurrent(t, "Hello world"), cb)

	require.True(t, m.IsVisible())
	view := m.View()
	require.Contains(t, view, "Recover Draft", "default title")
	require.Contains(t, view, "Hello world")
	require.Contains(t, view, "1 minute ago")
}

func TestNew_CustomTitle(t *testing.T) {
	cb := &callbacks{}
	cfg := cb.config()
	cfg.Title = "Restore Speech"

	acc := draft.NewAccessor(storeWithCurrent(t, "x"), nil)
	m := New(cfg, acc, styles.NewTheme(80, 24))

	require.Contains(t, m.View(), "Restore Speech")
}

func TestNew_HistoryTruncatedToFive(t *testing.T) {
	store := kvstore.NewMemoryStore()
	seedHistory(t, store, 7)

	cb := &callbacks{}
	m := newModel(store, cb)

	require.True(t, m.IsVisible())
	view := m.View()
	require.Contains(t, view, "Previous versions")
	require.Contains(t, view, "version 4")
	require.NotContains(t, view, "version 5")
	require.NotContains(t, view, "version 6")
}

// =============================================================================
// RECOVER
// =============================================================================

func TestRecoverCurrent_InvokesCallbackAndKeepsStoredDraft(t *testing.T) {
	store := storeWithCurrent(t, "Hello world")
	cb := &callbacks{}
	m := newModel(store, cb)

	m, _ = m.Update(keyMsg("enter"))

	require.Len(t, cb.recovered, 1)
	require.Equal(t, "Hello world", cb.recovered[0]["content"])
	require.False(t, m.IsVisible())
	require.Equal(t, 1, cb.closes)

	// Recovery alone does not clear the slot; only discard does.
	_, ok := store.Get(testKey)
	require.True(t, ok, "stored draft must survive recovery")
}

func TestRecoverFromHistory_DoesNotRemoveEntry(t *testing.T) {
	store := kvstore.NewMemoryStore()
	seedHistory(t, store, 3)
	cb := &callbacks{}
	m := newModel(store, cb)

	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("enter"))

	require.Len(t, cb.recovered, 1)
	require.Equal(t, "version 1", cb.recovered[0]["content"])
	require.False(t, m.IsVisible())

	// The entry stays in history for another session.
	acc := draft.NewAccessor(store, nil)
	require.Len(t, acc.LoadHistory(testKey), 3)
}

// =============================================================================
// DISCARD AND DELETE
// =============================================================================

func TestDiscardCurrent_RemovesFromStoreAndCloses(t *testing.T) {
	store := storeWithCurrent(t, "Hello world")
	cb := &callbacks{}
	m := newModel(store, cb)

	m, _ = m.Update(keyMsg("d"))

	require.False(t, m.IsVisible())
	require.Equal(t, 1, cb.discards)
	require.Equal(t, 1, cb.closes)
	require.Empty(t, cb.recovered)

	_, ok := store.Get(testKey)
	require.False(t, ok, "discard must remove the stored draft")

	acc := draft.NewAccessor(store, nil)
	_, present := acc.LoadCurrent(testKey)
	require.False(t, present)
}

func TestDeleteHistoryEntry_StaysOpen(t *testing.T) {
	store := kvstore.NewMemoryStore()
	seedHistory(t, store, 3)
	cb := &callbacks{}
	m := newModel(store, cb)

	// Move to the second entry and delete it.
	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("d"))

	require.True(t, m.IsVisible(), "deleting an entry must not close the overlay")
	require.Equal(t, 0, cb.closes)

	view := m.View()
	require.Contains(t, view, "version 0")
	require.NotContains(t, view, "version 1")
	require.Contains(t, view, "version 2")
}

func TestDeleteLastHistoryEntry_HidesOverlay(t *testing.T) {
	store := kvstore.NewMemoryStore()
	seedHistory(t, store, 1)
	cb := &callbacks{}
	m := newModel(store, cb)

	m, _ = m.Update(keyMsg("d"))

	require.False(t, m.IsVisible())
	require.Empty(t, m.View())
}

func TestDeleteWithCurrentAndSevenHistoryEntries(t *testing.T) {
	store := storeWithCurrent(t, "current text")
	seedHistory(t, store, 7)
	cb := &callbacks{}
	m := newModel(store, cb)

	// Cursor to history position 2 (three downs: past current, v0, v1).
	for i := 0; i < 3; i++ {
		m, _ = m.Update(keyMsg("down"))
	}
	m, _ = m.Update(keyMsg("d"))

	view := m.View()
	require.Contains(t, view, "current text")
	require.Contains(t, view, "version 0")
	require.Contains(t, view, "version 1")
	require.NotContains(t, view, "version 2")
	require.Contains(t, view, "version 3")
	require.Contains(t, view, "version 4")
	// Hidden entries do not resurface after the delete.
	require.NotContains(t, view, "version 5")
	require.NotContains(t, view, "version 6")
}

// =============================================================================
// DISMISS AND NAVIGATION
// =============================================================================

func TestClose_NoStoreMutation(t *testing.T) {
	store := storeWithCurrent(t, "keep me")
	cb := &callbacks{}
	m := newModel(store, cb)

	m, _ = m.Update(keyMsg("esc"))

	require.False(t, m.IsVisible())
	require.Equal(t, 1, cb.closes)
	require.Zero(t, cb.discards)

	_, ok := store.Get(testKey)
	require.True(t, ok)
}

func TestCursorClampsAtBounds(t *testing.T) {
	store := kvstore.NewMemoryStore()
	seedHistory(t, store, 2)
	cb := &callbacks{}
	m := newModel(store, cb)

	m, _ = m.Update(keyMsg("up")) // already at top
	require.Equal(t, 0, m.cursor)

	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyMsg("down"))
	}
	require.Equal(t, 1, m.cursor, "cursor must stop at the last item")
}

func TestHiddenOverlayIgnoresKeys(t *testing.T) {
	cb := &callbacks{}
	m := newModel(kvstore.NewMemoryStore(), cb)

	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(keyMsg("d"))

	require.Empty(t, cb.recovered)
	require.Zero(t, cb.discards)
	require.Zero(t, cb.closes)
}

func TestViewTruncatesLongPreviews(t *testing.T) {
	store := storeWithCurrent(t, strings.Repeat("long words ", 30))
	cb := &callbacks{}
	m := newModel(store, cb)
	m.SetSize(80, 24)

	view := m.View()
	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, len([]rune(stripANSI(line))), 80, "line overflows terminal: %q", line)
	}
}

// stripANSI removes CSI sequences so width assertions see display text.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
