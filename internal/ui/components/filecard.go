// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the deepchat TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/model"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// FILE ATTACHMENT CARD
// =============================================================================

// FileCard renders a file attached to a message.
type FileCard struct {
	File  model.FileAttachment
	Width int
	theme *styles.Theme
}

// NewFileCard creates a file card for the given attachment.
func NewFileCard(file model.FileAttachment, theme *styles.Theme) *FileCard {
	return &FileCard{
		File:  file,
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the display width.
func (c *FileCard) SetWidth(width int) {
	c.Width = width
}

// View renders the file card.
func (c *FileCard) View() string {
	nameStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Bold(true)

	metaStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	name := c.File.Filename
	maxName := c.Width - 24
	if maxName < 12 {
		maxName = 12
	}
	if runeLen(name) > maxName {
		runes := []rune(name)
		name = string(runes[:maxName-3]) + "..."
	}

	line := nameStyle.Render(name)
	if c.File.Size > 0 {
		line += metaStyle.Render(" " + formatBytes(c.File.Size))
	}
	if c.File.Source == model.FileSourceAgent {
		badgeStyle := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true)
		line += badgeStyle.Render(" generated")
	}

	cardStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1)

	return cardStyle.Render(line)
}

// RenderFileCards renders attachments as a row of cards.
func RenderFileCards(files []model.FileAttachment, width int, theme *styles.Theme) string {
	if len(files) == 0 {
		return ""
	}

	var cards []string
	for _, file := range files {
		card := NewFileCard(file, theme)
		card.SetWidth(width)
		cards = append(cards, card.View())
	}

	return strings.Join(cards, "\n")
}

// =============================================================================
// UPLOAD PROGRESS CARD
// =============================================================================

// UploadCard renders an in-flight or finished upload in the composer
// area. It is deliberately decoupled from the upload manager: the caller
// passes plain state so the component stays a pure renderer.
type UploadCard struct {
	Filename string
	Size     int64
	Sent     int64
	Failed   bool
	Done     bool
	Err      string
	Width    int
	theme    *styles.Theme
}

// NewUploadCard creates an upload progress card.
func NewUploadCard(theme *styles.Theme) *UploadCard {
	return &UploadCard{
		Width: 80,
		theme: theme,
	}
}

// View renders the upload card.
func (c *UploadCard) View() string {
	nameStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Bold(true)

	name := c.Filename
	maxName := c.Width / 3
	if maxName < 12 {
		maxName = 12
	}
	if runeLen(name) > maxName {
		runes := []rune(name)
		name = string(runes[:maxName-3]) + "..."
	}

	var status string
	var borderColor lipgloss.AdaptiveColor

	switch {
	case c.Failed:
		errStyle := lipgloss.NewStyle().Foreground(styles.Rose)
		status = errStyle.Render(styles.StatusIndicators.Error + " " + c.Err)
		borderColor = styles.Rose
	case c.Done:
		okStyle := lipgloss.NewStyle().Foreground(styles.Emerald)
		status = okStyle.Render(styles.StatusIndicators.Success + " " + formatBytes(c.Size))
		borderColor = styles.Emerald
	default:
		percent := 0.0
		if c.Size > 0 {
			percent = float64(c.Sent) / float64(c.Size) * 100
		}
		barStyle := lipgloss.NewStyle().Foreground(styles.Amber)
		status = barStyle.Render(styles.RenderProgressBar(12, percent) + " " + fmtPercent(percent))
		borderColor = styles.Amber
	}

	cardStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return cardStyle.Render(nameStyle.Render(name) + " " + status)
}
