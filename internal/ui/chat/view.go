// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file renders the chat screen: header, transcript viewport,
// upload cards, composer (or attach prompt), status bar and overlays.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	chatcore "github.com/jeranaias/deepchat-tui/internal/chat"
	"github.com/jeranaias/deepchat-tui/internal/commands"
	"github.com/jeranaias/deepchat-tui/internal/ui/components"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the complete chat screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	if m.showHelp {
		return m.helpView()
	}

	var sections []string
	sections = append(sections, m.header.View())

	// Resize the viewport to whatever the chrome leaves, since upload
	// cards and the completion popup come and go.
	m.viewport.Height = m.transcriptHeight()
	sections = append(sections, m.viewport.View())

	if m.errorBox.Visible() {
		sections = append(sections, m.errorBox.View())
	}

	if cards := m.uploadCardsView(); cards != "" {
		sections = append(sections, cards)
	}

	if popup := m.completionView(); popup != "" {
		sections = append(sections, popup)
	}

	sections = append(sections, m.composerView())
	sections = append(sections, m.statusBar.View())

	return strings.Join(sections, "\n")
}

// composerView renders the input line, or the attach prompt while
// choosing a file, with the transient notice to its right.
func (m *Model) composerView() string {
	if m.attaching {
		prompt := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Amber).
			Padding(0, 1).
			Width(m.width - 2).
			Render(m.attachInput.View())
		return prompt
	}

	view := m.input.View()
	if m.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
		view += "\n" + noticeStyle.Render(" "+m.notice)
	}
	return view
}

// =============================================================================
// UPLOAD CARDS
// =============================================================================

// uploadCardsView renders a card per queued upload, newest last.
func (m *Model) uploadCardsView() string {
	uploads := m.uploads.Uploads()
	if len(uploads) == 0 {
		return ""
	}

	width := m.width - 2
	var cards []string
	for _, up := range uploads {
		card := components.NewUploadCard(m.theme)
		card.Filename = up.Filename
		card.Size = up.Size
		card.Sent = up.Sent
		card.Width = width

		switch up.State {
		case chatcore.UploadCompleted:
			card.Done = true
		case chatcore.UploadFailed:
			card.Failed = true
			if up.Err != nil {
				card.Err = up.Err.Error()
			}
		}
		cards = append(cards, card.View())
	}
	return strings.Join(cards, "\n")
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// helpView renders the full-screen help overlay: key chords first, then
// the slash commands currently in the registry.
func (m *Model) helpView() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)

	var b strings.Builder
	b.WriteString(titleStyle.Render("deepchat help") + "\n\n")

	for _, section := range HelpSections() {
		b.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, item := range section.Items {
			b.WriteString("  " + keyStyle.Render(padKey(item.Key)) + descStyle.Render(item.Desc) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Commands") + "\n")
	for _, cat := range commands.CategoryOrder() {
		for _, cmd := range m.registry.ByCategory()[cat] {
			b.WriteString("  " + keyStyle.Render(padKey(cmd.Usage)) + descStyle.Render(cmd.Description) + "\n")
		}
	}

	b.WriteString("\n" + descStyle.Render("press F1 or esc to close"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

func padKey(k string) string {
	const keyCol = 22
	if len(k) >= keyCol {
		return k + " "
	}
	return k + strings.Repeat(" ", keyCol-len(k))
}
