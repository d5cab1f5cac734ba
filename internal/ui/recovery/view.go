// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recovery

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/quillforge/quill-tui/internal/draft"
)

// overlayWidth is the content width of the overlay box. Narrower
// terminals fall back to whatever fits.
const overlayWidth = 64

// View renders the overlay, or an empty string when there is nothing to
// recover (the render-nothing contract: hosts mount this unconditionally).
func (m Model) View() string {
	if !m.visible || m.itemCount() == 0 {
		return ""
	}

	contentWidth := overlayWidth
	if m.width > 0 && m.width-6 < contentWidth {
		contentWidth = m.width - 6
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	var sections []string
	sections = append(sections, m.theme.OverlayTitle.Render(m.cfg.Title))

	if m.hasCurrent() {
		sections = append(sections, m.renderItem(
			draft.PreviewText(m.current.Data),
			draft.FormatRelativeAge(m.current.Timestamp, m.now()),
			m.cursor == 0,
			contentWidth,
		))
	}

	if len(m.history) > 0 {
		sections = append(sections, m.theme.HistoryHeading.Render("Previous versions"))
		for i, entry := range m.history {
			idx := i
			if m.hasCurrent() {
				idx++
			}
			sections = append(sections, m.renderItem(
				draft.PreviewText(entry.Data),
				draft.FormatRelativeAge(entry.Timestamp, m.now()),
				m.cursor == idx,
				contentWidth,
			))
		}
	}

	sections = append(sections, m.renderHelp())

	box := m.theme.OverlayBox.Width(contentWidth + 4).Render(
		strings.Join(sections, "\n"),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// renderItem renders one selectable row: preview text plus an age label,
// truncated to the overlay's display width.
func (m Model) renderItem(preview, age string, selected bool, width int) string {
	// Truncate on display width so CJK and emoji do not overflow the box.
	plain := preview
	ageWidth := runewidth.StringWidth(age) + 2
	if runewidth.StringWidth(plain)+ageWidth > width {
		plain = runewidth.Truncate(plain, width-ageWidth-3, "...")
	}

	line := m.theme.DraftPreview.Render(plain) + "  " + m.theme.DraftAge.Render(age)

	if selected {
		return m.theme.ItemSelected.Render("> " + line)
	}
	return m.theme.Item.Render("  " + line)
}

// renderHelp renders the key hint line. The delete hint tracks whether
// the cursor is on the current draft (discard) or a history entry
// (delete).
func (m Model) renderHelp() string {
	deleteDesc := "delete entry"
	if m.hasCurrent() && m.cursor == 0 {
		deleteDesc = "discard"
	}

	hints := []struct{ key, desc string }{
		{"Enter", "recover"},
		{"d", deleteDesc},
		{"Esc", "dismiss"},
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = m.theme.ShortcutKey.Render(h.key) + " " + m.theme.ShortcutDesc.Render(h.desc)
	}
	return strings.Join(parts, m.theme.ShortcutDesc.Render(" · "))
}
