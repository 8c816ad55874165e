// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file implements the Bubble Tea update loop for the chat screen.
package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	chatcore "github.com/jeranaias/deepchat-tui/internal/chat"
	"github.com/jeranaias/deepchat-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one Bubble Tea message.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RenderTickMsg:
		return m.handleRenderTick()

	case TurnFinishedMsg:
		return m.handleTurnFinished(msg)

	case AgentsLoadedMsg:
		return m.handleAgentsLoaded(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case UploadQueuedMsg:
		if msg.Err != nil {
			m.errorBox.Show("Attach failed", msg.Err.Error())
		} else {
			m.notice = "uploading " + msg.Filename
		}
		m.syncUploadCount()
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.errorBox.Show("Export failed", msg.Err.Error())
		} else {
			m.notice = "exported to " + msg.Path
		}
		return m, nil

	case CopyDoneMsg:
		if msg.Err != nil {
			m.errorBox.Show("Copy failed", msg.Err.Error())
		} else {
			m.notice = "copied last answer"
		}
		return m, nil

	case renameDoneMsg:
		if msg.Err != nil {
			m.errorBox.Show("Rename failed", msg.Err.Error())
			return m, nil
		}
		m.conversationTitle = msg.Title
		m.statusBar.SetThread(msg.Title, len(m.controller.Messages()))
		return m, nil

	case components.ErrorDismissMsg:
		var cmd tea.Cmd
		m.errorBox, cmd = m.errorBox.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// updateFocused forwards non-key messages to the focused text input so
// cursor blinking keeps working.
func (m *Model) updateFocused(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.attaching {
		m.attachInput, cmd = m.attachInput.Update(msg)
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	// The attach prompt captures everything except esc and enter.
	if m.attaching {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, m.exitAttachMode()
		case key.Matches(msg, m.keys.Submit):
			return m, m.submitAttach()
		}
		var cmd tea.Cmd
		m.attachInput, cmd = m.attachInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		return m.handleCancel()

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Complete):
		m.cycleCompletion()
		return m, nil

	case key.Matches(msg, m.keys.NewThread):
		return m, m.startNewThread()

	case key.Matches(msg, m.keys.Threads):
		return m, func() tea.Msg { return ShowConversationsMsg{} }

	case key.Matches(msg, m.keys.Attach):
		m.enterAttachMode()
		return m, m.attachInput.Focus()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastAnswerCmd()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Everything else goes to the composer. Any edit invalidates the
	// completion cycle.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.completion.Clear()
	return m, cmd
}

// handleCancel works through the esc targets in priority order: error
// box, help overlay, in-flight turn.
func (m *Model) handleCancel() (*Model, tea.Cmd) {
	if m.errorBox.Visible() {
		m.errorBox.Dismiss()
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.controller.Busy() {
		m.controller.Cancel()
		m.notice = "stopped"
		return m, nil
	}
	return m, nil
}

// =============================================================================
// TICK HANDLING
// =============================================================================

// ensureTick starts the render tick loop if it is not running.
func (m *Model) ensureTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return renderTickCmd()
}

func (m *Model) handleRenderTick() (*Model, tea.Cmd) {
	m.frame++
	m.refreshTranscript()
	m.syncUploadCount()
	m.syncStatus()

	if m.Busy() {
		return m, renderTickCmd()
	}

	// One final repaint already happened above; stop the loop.
	m.ticking = false
	return m, nil
}

// syncStatus derives the status bar state from the turn and scenario.
func (m *Model) syncStatus() {
	msgs := m.controller.Messages()
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		m.statusBar.SetScenario(last.Scenario)
		m.header.SetScenario(last.Scenario)
	}
	m.statusBar.SetThread(m.conversationTitle, len(msgs))

	if !m.controller.Busy() {
		if !m.statusBar.IsBusy() {
			return
		}
		m.statusBar.SetStatus(components.StatusReady)
		return
	}

	status := components.StatusStreaming
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		if last.Thinking != nil && last.Thinking.IsThinking {
			status = components.StatusThinking
		}
	}
	m.statusBar.SetStatus(status)
}

// syncUploadCount mirrors in-flight uploads onto the status bar.
func (m *Model) syncUploadCount() {
	n := 0
	for _, up := range m.uploads.Uploads() {
		if up.State == chatcore.UploadRunning {
			n++
		}
	}
	m.statusBar.SetUploadCount(n)
}

// =============================================================================
// ASYNC RESULT HANDLING
// =============================================================================

func (m *Model) handleTurnFinished(msg TurnFinishedMsg) (*Model, tea.Cmd) {
	m.render.ForceUpdate()
	m.refreshTranscript()

	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		m.errorBox.ShowWithSuggestions("Turn failed", msg.Err.Error(), []string{
			"Check the server connection",
			"Press esc to dismiss and try again",
		})
		return m, nil
	}

	m.statusBar.SetStatus(components.StatusReady)
	return m, nil
}

func (m *Model) handleAgentsLoaded(msg AgentsLoadedMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		// Agents are an enhancement; chat works without the list.
		m.notice = "agent list unavailable"
		return m, nil
	}
	m.agents = msg.Agents
	m.skills = msg.Skills
	m.registry.SetAgents(msg.Agents)
	return m, nil
}

func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		m.errorBox.Show("Load failed", fmt.Sprintf("could not load conversation: %v", msg.Err))
		return m, nil
	}
	m.render.ForceUpdate()
	m.refreshTranscript()
	m.viewport.GotoBottom()
	m.statusBar.SetThread(m.conversationTitle, len(m.controller.Messages()))
	return m, nil
}
