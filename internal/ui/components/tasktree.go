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
// SPAWNED TASK TREE
// =============================================================================

// TaskTree renders the spawned sub-agent tasks of a turn as an ASCII
// tree. Each task shows its status, sub-agent type, description, and
// duration, with its nested tool calls indented beneath it.
type TaskTree struct {
	Tasks        []*model.SpawnedTask
	Width        int
	SpinnerFrame string
	ShowTools    bool
	theme        *styles.Theme
}

// NewTaskTree creates a task tree for the given tasks.
func NewTaskTree(tasks []*model.SpawnedTask, theme *styles.Theme) *TaskTree {
	return &TaskTree{
		Tasks:     tasks,
		Width:     80,
		ShowTools: true,
		theme:     theme,
	}
}

// SetWidth sets the display width.
func (t *TaskTree) SetWidth(width int) {
	t.Width = width
}

// View renders the task tree.
func (t *TaskTree) View() string {
	if len(t.Tasks) == 0 {
		return ""
	}

	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)
	b.WriteString(headerStyle.Render("Tasks"))

	for i, task := range t.Tasks {
		isLast := i == len(t.Tasks)-1
		b.WriteString("\n")
		b.WriteString(t.renderTask(task, isLast))
	}

	treeStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Purple).
		BorderLeft(true).
		PaddingLeft(1).
		MaxWidth(t.Width - 2)

	return treeStyle.Render(b.String())
}

// renderTask renders one task line plus its nested tool calls.
func (t *TaskTree) renderTask(task *model.SpawnedTask, isLast bool) string {
	var b strings.Builder

	connectorStyle := lipgloss.NewStyle().Foreground(styles.OverlayDim)
	b.WriteString(connectorStyle.Render(styles.RenderTreeLine(isLast)))

	// Status icon
	icon, iconStyle := t.statusIcon(task.Status)
	b.WriteString(iconStyle.Render(icon))
	b.WriteString(" ")

	// Sub-agent type badge
	typeStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)
	b.WriteString(typeStyle.Render(task.SubagentType))

	// Description
	descStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	desc := task.Description
	maxDesc := t.Width - 24
	if maxDesc < 20 {
		maxDesc = 20
	}
	if runeLen(desc) > maxDesc {
		runes := []rune(desc)
		desc = string(runes[:maxDesc-3]) + "..."
	}
	if desc != "" {
		b.WriteString(" ")
		b.WriteString(descStyle.Render(desc))
	}

	// Duration for finished tasks
	if task.Status != model.TaskRunning && task.DurationMs > 0 {
		metaStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		b.WriteString(metaStyle.Render(" (" + formatDurationMs(task.DurationMs) + ")"))
	}

	// Nested tool calls
	if t.ShowTools {
		indent := "|  "
		if isLast {
			indent = "   "
		}
		for _, call := range task.ToolCalls {
			b.WriteString("\n")
			b.WriteString(connectorStyle.Render(indent))
			b.WriteString(t.renderNestedTool(call))
		}
	}

	return b.String()
}

// renderNestedTool renders a one-line summary of a task-scoped tool call.
func (t *TaskTree) renderNestedTool(call *model.ToolCall) string {
	var icon string
	var iconStyle lipgloss.Style

	switch call.Status {
	case model.ToolCallRunning:
		icon = t.SpinnerFrame
		if icon == "" {
			icon = styles.StatusIndicators.Active
		}
		iconStyle = lipgloss.NewStyle().Foreground(styles.WarningHighContrast)
	case model.ToolCallDone:
		icon = styles.StatusIndicators.Success
		iconStyle = lipgloss.NewStyle().Foreground(styles.SuccessHighContrast)
	default:
		icon = styles.StatusIndicators.Error
		iconStyle = lipgloss.NewStyle().Foreground(styles.ErrorHighContrast)
	}

	nameStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	return iconStyle.Render(icon) + " " + nameStyle.Render(call.Name)
}

// statusIcon returns the icon and style for a task status.
// ACCESSIBILITY: distinct shapes alongside colors for colorblind users.
func (t *TaskTree) statusIcon(status model.TaskStatus) (string, lipgloss.Style) {
	switch status {
	case model.TaskRunning:
		frame := t.SpinnerFrame
		if frame == "" {
			frame = styles.StatusIndicators.Active
		}
		return frame, lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case model.TaskSuccess:
		return styles.StatusIndicators.Success, lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case model.TaskError:
		return styles.StatusIndicators.Error, lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return "[?]", lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

// RunningCount returns how many tasks are still running.
func (t *TaskTree) RunningCount() int {
	count := 0
	for _, task := range t.Tasks {
		if task.Status == model.TaskRunning {
			count++
		}
	}
	return count
}
