// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file wires slash command completion into the composer. Tab
// captures the candidate list once and cycles through it; any other
// edit clears the cycle and the popup.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/commands"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
	"github.com/jeranaias/deepchat-tui/internal/util"
)

// maxCompletionRows caps the popup height.
const maxCompletionRows = 6

// =============================================================================
// CYCLING
// =============================================================================

// cycleCompletion handles Tab in the composer: first press captures
// candidates for the current partial, repeats advance through them.
func (m *Model) cycleCompletion() {
	if !m.completion.Active {
		candidates := m.completer.Complete(m.input.Value())
		if len(candidates) == 0 {
			return
		}
		m.completion.Begin(candidates)
	}

	candidate, ok := m.completion.Next()
	if !ok {
		return
	}
	m.input.SetValue(candidate.Value)
	m.input.SetCursorPosition(len(candidate.Value))
}

// =============================================================================
// POPUP RENDERING
// =============================================================================

// completionView renders the candidate popup above the composer, or ""
// when there is nothing to show. While not cycling, the popup previews
// matches live as the user types a command token.
func (m *Model) completionView() string {
	var candidates []commands.Completion
	selected := -1

	if m.completion.Active {
		candidates = m.completion.Candidates
		selected = m.completion.Index
	} else {
		if _, ok := commands.PartialCommand(strings.TrimSpace(m.input.Value())); !ok {
			return ""
		}
		candidates = m.completer.Complete(strings.TrimSpace(m.input.Value()))
	}
	if len(candidates) == 0 {
		return ""
	}

	// Keep the selected row visible when the list is clipped.
	start := 0
	if selected >= maxCompletionRows {
		start = selected - maxCompletionRows + 1
	}
	end := start + maxCompletionRows
	if end > len(candidates) {
		end = len(candidates)
	}

	nameStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	selectedStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Background(styles.SelectionBg).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	width := m.width - 4
	if width < 24 {
		width = 24
	}

	var rows []string
	for i := start; i < end; i++ {
		c := candidates[i]
		name := util.PadRight(c.Display, 14)
		desc := util.TruncateWidth(c.Description, width-util.StringWidth(name)-4)

		if i == selected {
			rows = append(rows, selectedStyle.Render(" "+name+" ")+descStyle.Render(desc))
		} else {
			rows = append(rows, " "+nameStyle.Render(name)+" "+descStyle.Render(desc))
		}
	}

	if len(candidates) > end {
		rows = append(rows, descStyle.Render("   ..."))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayDim).
		Width(width)

	return box.Render(strings.Join(rows, "\n"))
}
