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
// PLANNER TODO LIST
// =============================================================================

// TodoList renders the planner's todo checklist for a planning turn. The
// list is replaced wholesale on each update, so this component is a pure
// function of the current todos.
type TodoList struct {
	Todos []model.Todo
	Width int
	theme *styles.Theme
}

// NewTodoList creates a todo list view.
func NewTodoList(todos []model.Todo, theme *styles.Theme) *TodoList {
	return &TodoList{
		Todos: todos,
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the display width.
func (tl *TodoList) SetWidth(width int) {
	tl.Width = width
}

// View renders the todo list.
func (tl *TodoList) View() string {
	if len(tl.Todos) == 0 {
		return ""
	}

	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)
	b.WriteString(headerStyle.Render("Plan"))

	done, total := tl.Progress()
	countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString(countStyle.Render(" " + toStr(done) + "/" + toStr(total)))

	maxWidth := tl.Width - 10
	if maxWidth < 20 {
		maxWidth = 20
	}

	for _, todo := range tl.Todos {
		b.WriteString("\n")
		b.WriteString(tl.renderTodo(todo, maxWidth))
	}

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Padding(0, 1).
		MaxWidth(tl.Width - 2)

	return boxStyle.Render(b.String())
}

// renderTodo renders a single checklist row.
// ACCESSIBILITY: checkbox shapes alongside colors for colorblind users.
func (tl *TodoList) renderTodo(todo model.Todo, maxWidth int) string {
	var checkbox string
	var style lipgloss.Style

	switch todo.Status {
	case model.TodoCompleted:
		checkbox = "[x]"
		style = lipgloss.NewStyle().Foreground(styles.Emerald).Strikethrough(true)
	case model.TodoInProgress:
		checkbox = "[>]"
		style = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	default:
		checkbox = "[ ]"
		style = lipgloss.NewStyle().Foreground(styles.TextMuted)
	}

	content := todo.Content
	if runeLen(content) > maxWidth {
		runes := []rune(content)
		content = string(runes[:maxWidth-3]) + "..."
	}

	checkStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	return checkStyle.Render(checkbox) + " " + style.Render(content)
}

// Progress returns the completed and total todo counts.
func (tl *TodoList) Progress() (done, total int) {
	for _, todo := range tl.Todos {
		if todo.Status == model.TodoCompleted {
			done++
		}
	}
	return done, len(tl.Todos)
}
