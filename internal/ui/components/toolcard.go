// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the deepchat TUI.
package components

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/model"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// TOOL CALL CARD
// =============================================================================

// ToolCard renders a single tool invocation as a bordered card. Running
// calls get an amber border and spinner frame; finished calls collapse to
// a one-line summary with an output preview.
type ToolCard struct {
	Call         *model.ToolCall
	Width        int
	Expanded     bool
	SpinnerFrame string
	maxPreview   int
	maxExpanded  int
	theme        *styles.Theme
}

// NewToolCard creates a tool card for the given call.
func NewToolCard(call *model.ToolCall, theme *styles.Theme) *ToolCard {
	return &ToolCard{
		Call:        call,
		Width:       80,
		maxPreview:  3,
		maxExpanded: 50,
		theme:       theme,
	}
}

// SetWidth sets the display width.
func (c *ToolCard) SetWidth(width int) {
	c.Width = width
}

// Toggle expands or collapses the output.
func (c *ToolCard) Toggle() {
	c.Expanded = !c.Expanded
}

// View renders the tool card.
func (c *ToolCard) View() string {
	if c.Call == nil {
		return ""
	}

	var b strings.Builder

	// ACCESSIBILITY: Status icon with shape indicator for colorblind users
	var icon string
	var iconStyle lipgloss.Style
	var borderColor lipgloss.AdaptiveColor

	switch c.Call.Status {
	case model.ToolCallRunning:
		icon = c.SpinnerFrame
		if icon == "" {
			icon = styles.StatusIndicators.Active
		}
		iconStyle = lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
		borderColor = styles.Amber
	case model.ToolCallDone:
		icon = styles.StatusIndicators.Success
		iconStyle = lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
		borderColor = styles.SuccessHighContrast
	default:
		icon = styles.StatusIndicators.Error
		iconStyle = lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
		borderColor = styles.ErrorHighContrast
	}

	b.WriteString(iconStyle.Render(icon))
	b.WriteString(" ")

	nameStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)
	b.WriteString(nameStyle.Render(c.Call.Name))

	// Argument summary
	argSummary := c.buildArgSummary()
	if argSummary != "" {
		infoStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		b.WriteString(infoStyle.Render(" (" + argSummary + ")"))
	}

	// Output preview or full output
	if c.Call.IsTerminal() && c.Call.Output != "" {
		preview := c.outputLines()
		if preview != "" {
			outputStyle := lipgloss.NewStyle().
				Foreground(styles.TextSecondary).
				PaddingLeft(2)
			b.WriteString("\n")
			b.WriteString(outputStyle.Render(preview))
		}
	}

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderLeft(true).
		PaddingLeft(1).
		MaxWidth(c.Width - 2)

	return boxStyle.Render(b.String())
}

// buildArgSummary renders a compact "key=value" summary of the call
// arguments, keys sorted for stable output.
func (c *ToolCard) buildArgSummary() string {
	if len(c.Call.Args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(c.Call.Args))
	for k := range c.Call.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, k+"="+formatArgValue(c.Call.Args[k]))
	}

	summary := strings.Join(parts, ", ")
	maxLen := c.Width / 2
	if maxLen < 24 {
		maxLen = 24
	}
	if runeLen(summary) > maxLen {
		runes := []rune(summary)
		summary = string(runes[:maxLen-3]) + "..."
	}
	return summary
}

// outputLines returns the output truncated to the preview or expanded limit.
func (c *ToolCard) outputLines() string {
	maxLines := c.maxPreview
	if c.Expanded {
		maxLines = c.maxExpanded
	}

	lines := strings.Split(strings.TrimRight(c.Call.Output, "\n"), "\n")
	truncated := false
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}

	maxWidth := c.Width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}
	for i, line := range lines {
		if runeLen(line) > maxWidth {
			runes := []rune(line)
			lines[i] = string(runes[:maxWidth-3]) + "..."
		}
	}

	out := strings.Join(lines, "\n")
	if truncated {
		out += "\n... (" + toStr(len(strings.Split(c.Call.Output, "\n"))-maxLines) + " more lines)"
	}
	return out
}

// formatArgValue renders an argument value compactly.
func formatArgValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without decimals
		if val == float64(int64(val)) {
			return toStr(int(val))
		}
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(data)
}

// =============================================================================
// TOOL CARD LIST
// =============================================================================

// RenderToolCards renders a sequence of tool calls in arrival order.
func RenderToolCards(calls []*model.ToolCall, width int, spinnerFrame string, theme *styles.Theme) string {
	if len(calls) == 0 {
		return ""
	}

	var cards []string
	for _, call := range calls {
		card := NewToolCard(call, theme)
		card.SetWidth(width)
		card.SpinnerFrame = spinnerFrame
		cards = append(cards, card.View())
	}

	return strings.Join(cards, "\n")
}
