// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vaultui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings for the vault list and for modal steps.
type KeyMap struct {
	// List navigation.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// List actions. Open expands a vault or views an entry; Delete
	// removes the entry or vault under the cursor.
	Open     key.Binding
	Toggle   key.Binding
	NewEntry key.Binding
	NewVault key.Binding
	Delete   key.Binding
	Theme    key.Binding

	FilterActivate key.Binding
	FilterClear    key.Binding

	// Modal steps.
	Submit        key.Binding
	Cancel        key.Binding
	NextField     key.Binding
	PreviousField key.Binding
	Layout        key.Binding
	Generate      key.Binding
	ShowHide      key.Binding
	Copy          key.Binding

	Quit key.Binding
	// ForceQuit works everywhere, including while typing.
	ForceQuit key.Binding
}

// DefaultKeyMap has vim-style movement alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("C-u", "page up")),
	PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("C-d", "page down")),
	Home:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	End:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "l", "right", "h", "left"), key.WithHelp("space", "expand")),
	NewEntry: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
	NewVault: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new vault")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),

	FilterActivate: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	FilterClear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),

	Submit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	NextField:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PreviousField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-tab", "previous field")),
	Layout:        key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("C-t", "layout")),
	Generate:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("C-g", "generate")),
	ShowHide:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "show/hide")),
	Copy:          key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("C-y", "copy field")),

	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}
