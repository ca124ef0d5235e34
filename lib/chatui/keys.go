// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the chat TUI.
type KeyMap struct {
	// Navigation (context-sensitive: ticket list movement, thread
	// message selection, or auth form field movement depending on
	// current focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus cycling: ticket list -> thread -> composer -> list.
	FocusNext key.Binding

	// Ticket actions.
	NewTicket key.Binding // Open the new-ticket modal (list pane).
	Refresh   key.Binding // Force an immediate poll.

	// Moderation (thread pane).
	Flag key.Binding // Flag the selected message.

	// Moderator stats overlay.
	Stats     key.Binding
	StatsTab1 key.Binding
	StatsTab2 key.Binding
	StatsTab3 key.Binding

	// Dismiss the active overlay or back out of the thread.
	Cancel key.Binding

	// Logout drops the session and returns to the sign-in form.
	Logout key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys. Plain letters are safe because
// free-text input only happens inside the composer, the auth form,
// and modals, which capture all keystrokes while focused.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	NewTicket: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new ticket"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Flag: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "flag message"),
	),
	Stats: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stats"),
	),
	StatsTab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "my stats"),
	),
	StatsTab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "leaderboard"),
	),
	StatsTab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "system"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "sign out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
