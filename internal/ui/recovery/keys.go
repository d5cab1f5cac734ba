// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recovery

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the recovery overlay.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Recover key.Binding
	Delete  key.Binding
	Close   key.Binding
}

// DefaultKeyMap returns the default bindings for the recovery overlay.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Recover: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "recover"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "discard/delete"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("Esc", "dismiss"),
		),
	}
}
