// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file defines the tea.Cmd constructors for the screen's async
// work. Turns block inside their command goroutine; the render tick
// keeps the screen painting while they run.
package chat

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deepchat-tui/internal/export"
	"github.com/jeranaias/deepchat-tui/internal/model"
)

// =============================================================================
// TURN COMMANDS
// =============================================================================

// sendTurnCmd runs one blocking turn. The controller appends the user
// message and streams the reply into the transcript; this command only
// reports when the turn is over.
func (m *Model) sendTurnCmd(input string, files []model.FileAttachment) tea.Cmd {
	ctx := m.turnContext()
	return func() tea.Msg {
		err := m.controller.Send(ctx, input, files)
		return TurnFinishedMsg{Err: err}
	}
}

// loadAgentsCmd fetches the backend's agent and skill lists.
func (m *Model) loadAgentsCmd() tea.Cmd {
	ctx := m.turnContext()
	client := m.client
	return func() tea.Msg {
		agents, err := client.Agents(ctx)
		if err != nil {
			return AgentsLoadedMsg{Err: err}
		}
		skills, err := client.Skills(ctx)
		if err != nil {
			// Agents alone are still useful.
			return AgentsLoadedMsg{Agents: agents}
		}
		return AgentsLoadedMsg{Agents: agents, Skills: skills}
	}
}

// attachThreadCmd loads an existing thread's history into the
// controller.
func (m *Model) attachThreadCmd(threadID string) tea.Cmd {
	ctx := m.turnContext()
	return func() tea.Msg {
		err := m.controller.AttachThread(ctx, threadID)
		return HistoryLoadedMsg{ThreadID: threadID, Err: err}
	}
}

// =============================================================================
// UPLOAD COMMANDS
// =============================================================================

// queueUploadCmd validates and starts a file upload. The transfer runs
// in the upload manager's own goroutine; progress renders per tick.
func (m *Model) queueUploadCmd(path string) tea.Cmd {
	ctx := m.turnContext()
	uploads := m.uploads
	return func() tea.Msg {
		_, err := uploads.AddFile(ctx, path)
		return UploadQueuedMsg{Filename: filepath.Base(path), Err: err}
	}
}

// =============================================================================
// CLIPBOARD AND EXPORT
// =============================================================================

// copyLastAnswerCmd copies the most recent assistant message to the
// system clipboard.
func (m *Model) copyLastAnswerCmd() tea.Cmd {
	msgs := m.controller.Messages()
	return func() tea.Msg {
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role == model.RoleAssistant && msgs[i].Content != "" {
				return CopyDoneMsg{Err: clipboard.WriteAll(msgs[i].Content)}
			}
		}
		return CopyDoneMsg{Err: fmt.Errorf("no answer to copy")}
	}
}

// exportCmd writes the transcript to a file. The extension picks the
// format; an empty path picks a timestamped markdown filename in the
// working directory.
func (m *Model) exportCmd(path string) tea.Cmd {
	t := &export.Transcript{
		Title:    m.conversationTitle,
		Agent:    m.controller.Agent(),
		Messages: m.controller.Messages(),
	}
	return func() tea.Msg {
		written, err := export.ToFile(t, path)
		return ExportDoneMsg{Path: written, Err: err}
	}
}
