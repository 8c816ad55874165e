// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat screen for the deepchat TUI.

The chat package implements the conversation view using the Bubble Tea
framework: a scrolling transcript viewport, a single-line composer with
slash command completion, file attachment with upload progress, and a
status bar reflecting the turn state.

# Key Components

## Model (model.go)

The Model struct is the Bubble Tea model for the chat screen:
  - Transcript viewport rendering the turn controller's messages
  - Composer input with slash command tab completion
  - File attach prompt and upload progress cards
  - Header and status bar reflecting agent, scenario and connection

## Turn Flow (input.go, commands.go)

Submitting input either dispatches a builtin slash command (handled
locally) or starts a turn. Turns run the blocking controller Send inside
a tea.Cmd goroutine; the screen repaints on a fixed render tick while
the turn streams, so no program reference is needed from the stream
callback.

## Rendering (view.go, render.go)

The transcript re-renders from the controller's message snapshot on
each tick. A content hash skips viewport updates when nothing changed,
keeping idle CPU flat during long thinking phases.

# Usage

The chat screen is a sub-model of the application root, not a program
of its own:

	screen := chat.New(chat.Options{Client: client, State: state})
	cmd := screen.Init()
	// root model forwards Update/View and handles
	// chat.ShowConversationsMsg and chat.LogoutRequestedMsg

Builtin commands that affect other screens (/threads, /logout, /quit)
surface as messages for the root model to act on.
*/
package chat
