// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file defines keyboard bindings for the chat screen. The composer
// keeps focus the whole time, so every binding is either a control
// chord or a key the text input does not consume.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the chat screen.
type KeyMap struct {
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Submit     key.Binding
	Complete   key.Binding
	Cancel     key.Binding
	NewThread  key.Binding
	Threads    key.Binding
	Attach     key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat screen.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete command"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "stop / dismiss"),
		),
		NewThread: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new conversation"),
		),
		Threads: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "conversation list"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "attach file"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last answer"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("C-q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Attach, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the full help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		// Conversation
		{k.NewThread, k.Threads, k.Attach, k.Copy},
		// Actions
		{k.Submit, k.Complete, k.Cancel, k.Help, k.Quit},
	}
}

// =============================================================================
// HELP TEXT DATA
// =============================================================================

// HelpItem is one row in the help overlay.
type HelpItem struct {
	Key  string
	Desc string
}

// HelpSection groups help items under a heading.
type HelpSection struct {
	Title string
	Items []HelpItem
}

// HelpSections returns the help overlay content. Slash commands are
// listed from the registry at render time; this covers the key chords.
func HelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Navigation",
			Items: []HelpItem{
				{"up/down", "Scroll transcript"},
				{"PgUp/PgDn", "Page transcript"},
			},
		},
		{
			Title: "Conversation",
			Items: []HelpItem{
				{"Enter", "Send message"},
				{"Tab", "Complete slash command"},
				{"Esc", "Stop streaming / dismiss"},
				{"C-n", "New conversation"},
				{"C-s", "Conversation list"},
				{"C-u", "Attach a file"},
				{"C-y", "Copy last answer"},
			},
		},
		{
			Title: "General",
			Items: []HelpItem{
				{"F1", "Toggle this help"},
				{"C-q", "Quit"},
			},
		},
	}
}
