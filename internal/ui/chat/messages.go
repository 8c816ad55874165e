// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file defines the Bubble Tea messages the chat screen produces
// and consumes. Messages for the root model (screen switches, logout)
// are exported; everything else stays inside the package.
package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deepchat-tui/internal/api"
)

// =============================================================================
// RENDER TICK
// =============================================================================

// renderInterval caps transcript repaints at roughly 30fps. The stream
// callback mutates the controller's messages from another goroutine;
// the tick pulls a fresh snapshot instead of pushing updates through
// the program.
const renderInterval = 33 * time.Millisecond

// RenderTickMsg drives transcript repaints while a turn is streaming
// or uploads are in flight.
type RenderTickMsg struct {
	Time time.Time
}

func renderTickCmd() tea.Cmd {
	return tea.Tick(renderInterval, func(t time.Time) tea.Msg {
		return RenderTickMsg{Time: t}
	})
}

// =============================================================================
// TURN MESSAGES
// =============================================================================

// TurnFinishedMsg reports the end of a turn. Err is nil for a clean
// finish and for a user cancel; the inline error marker in the
// transcript already covers stream failures, so Err is only used to
// update the status bar.
type TurnFinishedMsg struct {
	Err error
}

// AgentsLoadedMsg carries the backend's agent and skill lists.
type AgentsLoadedMsg struct {
	Agents []api.Agent
	Skills []api.Skill
	Err    error
}

// HistoryLoadedMsg reports the result of attaching to an existing
// thread.
type HistoryLoadedMsg struct {
	ThreadID string
	Err      error
}

// =============================================================================
// LOCAL ACTION RESULTS
// =============================================================================

// UploadQueuedMsg reports the result of queueing a file for upload.
// Validation failures (bad extension, oversized) surface here; transfer
// progress renders from the upload manager's state on each tick.
type UploadQueuedMsg struct {
	Filename string
	Err      error
}

// ExportDoneMsg reports the result of exporting the transcript.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// CopyDoneMsg reports the result of copying the last answer to the
// system clipboard.
type CopyDoneMsg struct {
	Err error
}

// =============================================================================
// ROOT MODEL MESSAGES
// =============================================================================

// ShowConversationsMsg asks the root model to switch to the
// conversation list screen.
type ShowConversationsMsg struct{}

// ShowAdminMsg asks the root model to open the user management screen.
type ShowAdminMsg struct{}

// LogoutRequestedMsg asks the root model to log out and return to the
// login screen.
type LogoutRequestedMsg struct{}
