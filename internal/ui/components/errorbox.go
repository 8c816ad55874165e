// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the deepchat TUI.
package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BOX COMPONENT
// =============================================================================

// ErrorBox is a styled, dismissible error display.
type ErrorBox struct {
	title       string
	message     string
	suggestions []string

	dismissible bool
	autoDismiss time.Duration

	visible   bool
	createdAt time.Time

	width int
	theme *styles.Theme
}

// NewErrorBox creates a hidden error box.
func NewErrorBox(theme *styles.Theme) ErrorBox {
	return ErrorBox{
		dismissible: true,
		width:       80,
		theme:       theme,
	}
}

// Show displays an error with title and message.
func (e *ErrorBox) Show(title, message string) {
	e.title = title
	e.message = message
	e.suggestions = nil
	e.visible = true
	e.createdAt = time.Now()
}

// ShowWithSuggestions displays an error with recovery suggestions.
func (e *ErrorBox) ShowWithSuggestions(title, message string, suggestions []string) {
	e.Show(title, message)
	e.suggestions = suggestions
}

// Dismiss hides the error box.
func (e *ErrorBox) Dismiss() {
	e.visible = false
}

// Visible reports whether the box is showing.
func (e *ErrorBox) Visible() bool {
	return e.visible
}

// SetWidth sets the display width.
func (e *ErrorBox) SetWidth(width int) {
	e.width = width
}

// SetAutoDismiss hides the box automatically after the given duration.
func (e *ErrorBox) SetAutoDismiss(d time.Duration) {
	e.autoDismiss = d
}

// ErrorDismissMsg is emitted when an auto-dismiss timer fires.
type ErrorDismissMsg struct{}

// AutoDismissCmd returns a command that fires the dismiss timer, or nil
// when auto-dismiss is disabled.
func (e *ErrorBox) AutoDismissCmd() tea.Cmd {
	if e.autoDismiss <= 0 {
		return nil
	}
	d := e.autoDismiss
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ErrorDismissMsg{}
	})
}

// Update handles dismiss keys and timer messages.
func (e ErrorBox) Update(msg tea.Msg) (ErrorBox, tea.Cmd) {
	if !e.visible {
		return e, nil
	}

	switch msg := msg.(type) {
	case ErrorDismissMsg:
		e.visible = false
	case tea.KeyMsg:
		if e.dismissible && (msg.String() == "esc" || msg.String() == "enter") {
			e.visible = false
		}
	}

	return e, nil
}

// View renders the error box.
func (e ErrorBox) View() string {
	if !e.visible {
		return ""
	}

	innerWidth := e.width - 8
	if innerWidth < 20 {
		innerWidth = 20
	}

	var lines []string

	// ACCESSIBILITY: Error icon with high contrast color
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.ErrorHighContrast).
		Bold(true)
	title := e.title
	if title == "" {
		title = "Error"
	}
	lines = append(lines, titleStyle.Render(styles.StatusIndicators.Error+" "+title))

	if e.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
		lines = append(lines, msgStyle.Render(wordWrap(e.message, innerWidth)))
	}

	if len(e.suggestions) > 0 {
		lines = append(lines, "")
		hintStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		for _, suggestion := range e.suggestions {
			lines = append(lines, hintStyle.Render("  - "+suggestion))
		}
	}

	if e.dismissible {
		lines = append(lines, "")
		dismissStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		lines = append(lines, dismissStyle.Render("press esc to dismiss"))
	}

	content := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Rose).
		Padding(1, 2).
		MaxWidth(e.width - 2).
		Render(content)
}
