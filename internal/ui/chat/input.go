// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file handles composer submission: builtin slash commands run
// locally, agent commands and plain text start a turn.
package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deepchat-tui/internal/commands"
	"github.com/jeranaias/deepchat-tui/internal/ui/components"
)

// =============================================================================
// SUBMIT
// =============================================================================

// submit handles Enter in the composer.
func (m *Model) submit() tea.Cmd {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return nil
	}

	m.completion.Clear()

	result := m.parser.Parse(input)
	if result.IsCommand {
		if result.Command == nil {
			m.errorBox.Show("Unknown command", "/"+result.Name+" is not a command. Type /help for the list.")
			return nil
		}
		if !result.Command.Agent {
			m.input.Reset()
			return m.runBuiltin(result)
		}
		// Agent commands flow through the controller, which parses the
		// routing token itself.
	}

	if m.controller.Busy() {
		m.errorBox.Show("Still replying", "Wait for the current reply to finish, or press esc to stop it.")
		return nil
	}
	if m.uploads.Pending() {
		m.errorBox.Show("Uploads in progress", "Wait for file uploads to finish before sending.")
		return nil
	}

	files := m.uploads.TakeCompleted()
	m.input.Reset()
	m.statusBar.SetStatus(components.StatusStreaming)
	m.notice = ""
	m.viewport.GotoBottom()

	return tea.Batch(m.sendTurnCmd(input, files), m.ensureTick())
}

// =============================================================================
// BUILTIN COMMANDS
// =============================================================================

// runBuiltin dispatches a builtin slash command.
func (m *Model) runBuiltin(result commands.ParseResult) tea.Cmd {
	switch result.Command.Name {
	case "help":
		m.showHelp = !m.showHelp
		return nil

	case "new":
		return m.startNewThread()

	case "threads":
		return func() tea.Msg { return ShowConversationsMsg{} }

	case "rename":
		if result.Rest == "" {
			m.errorBox.Show("Missing title", "Usage: /rename <title>")
			return nil
		}
		return m.renameConversationCmd(result.Rest)

	case "export":
		return m.exportCmd(result.Rest)

	case "copy":
		return m.copyLastAnswerCmd()

	case "attach":
		if result.Rest != "" {
			return tea.Batch(m.queueUploadCmd(result.Rest), m.ensureTick())
		}
		m.enterAttachMode()
		return m.attachInput.Focus()

	case "users":
		return func() tea.Msg { return ShowAdminMsg{} }

	case "logout":
		return func() tea.Msg { return LogoutRequestedMsg{} }

	case "quit":
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// startNewThread clears the transcript for a fresh conversation.
func (m *Model) startNewThread() tea.Cmd {
	if m.controller.Busy() {
		m.errorBox.Show("Still replying", "Stop the current reply before starting a new conversation.")
		return nil
	}
	m.controller.StartNewThread()
	m.conversationID = ""
	m.conversationTitle = ""
	m.statusBar.SetThread("", 0)
	m.render.ForceUpdate()
	m.refreshTranscript()
	return nil
}

// renameConversationCmd renames the backing conversation, when one
// exists. Threads without a conversation record only get the local
// label.
func (m *Model) renameConversationCmd(title string) tea.Cmd {
	if m.conversationID == "" {
		m.conversationTitle = title
		m.statusBar.SetThread(title, len(m.controller.Messages()))
		return nil
	}
	ctx := m.turnContext()
	client := m.client
	id := m.conversationID
	return func() tea.Msg {
		_, err := client.RenameConversation(ctx, id, title)
		return renameDoneMsg{Title: title, Err: err}
	}
}

// renameDoneMsg reports the result of /rename.
type renameDoneMsg struct {
	Title string
	Err   error
}

// =============================================================================
// ATTACH MODE
// =============================================================================

// enterAttachMode swaps the composer for the file path prompt.
func (m *Model) enterAttachMode() {
	m.attaching = true
	m.attachInput.Reset()
	m.input.Blur()
}

// exitAttachMode restores the composer.
func (m *Model) exitAttachMode() tea.Cmd {
	m.attaching = false
	m.attachInput.Blur()
	return m.input.Focus()
}

// submitAttach handles Enter in the attach prompt.
func (m *Model) submitAttach() tea.Cmd {
	path := strings.TrimSpace(m.attachInput.Value())
	restore := m.exitAttachMode()
	if path == "" {
		return restore
	}
	return tea.Batch(restore, m.queueUploadCmd(path), m.ensureTick())
}
