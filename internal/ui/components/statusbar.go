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

// ScenarioIcons maps display scenarios to status bar icons.
var ScenarioIcons = map[model.Scenario]string{
	model.ScenarioQuick:    ">",
	model.ScenarioAgent:    "@",
	model.ScenarioPlanning: "#",
}

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusStreaming
	StatusThinking
	StatusConnecting
	StatusError
	StatusIdle
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusStreaming:
		return "Streaming..."
	case StatusThinking:
		return "Thinking..."
	case StatusConnecting:
		return "Connecting..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusStreaming:
		return "~"
	case StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusConnecting:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	AgentName     string         // Selected agent character
	Scenario      model.Scenario // Current turn's display scenario
	ThreadTitle   string         // Active conversation title
	MessageCount  int            // Messages in the active conversation
	Status        Status         // Current status
	Connected     bool           // Whether the API session is live
	UploadCount   int            // In-flight file uploads
	Width         int            // Available width
	ShowShortcuts bool           // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		AgentName:     "",
		Scenario:      model.ScenarioQuick,
		Status:        StatusReady,
		Connected:     false,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetAgent updates the displayed agent character name
func (s *StatusBar) SetAgent(name string) {
	s.AgentName = name
}

// SetScenario updates the scenario badge
func (s *StatusBar) SetScenario(scenario model.Scenario) {
	s.Scenario = scenario
}

// SetThread updates the active conversation display
func (s *StatusBar) SetThread(title string, messageCount int) {
	s.ThreadTitle = title
	s.MessageCount = messageCount
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetConnected updates the connection indicator
func (s *StatusBar) SetConnected(connected bool) {
	s.Connected = connected
}

// SetUploadCount updates the in-flight upload counter
func (s *StatusBar) SetUploadCount(n int) {
	s.UploadCount = n
}

// IsBusy reports whether a turn is currently in flight.
func (s *StatusBar) IsBusy() bool {
	return s.Status == StatusStreaming || s.Status == StatusThinking || s.Status == StatusConnecting
}

// View renders the status bar
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [S|C] Status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	// Scenario indicator (single icon)
	icon, ok := ScenarioIcons[s.Scenario]
	if !ok {
		icon = "?"
	}
	parts = append(parts, s.theme.ScenarioStyle(s.Scenario.String()).Render(icon))

	// ACCESSIBILITY: Connection indicator with high contrast and shape
	if s.Connected {
		connStyle := lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
		parts = append(parts, connStyle.Render(styles.StatusIndicators.Success))
	} else {
		connStyle := lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
		parts = append(parts, connStyle.Render(styles.StatusIndicators.Error))
	}

	section := "[" + strings.Join(parts, "|") + "]"

	// Status
	statusStyle := s.getStatusStyle()
	statusText := statusStyle.Render(s.Status.Icon() + " " + s.Status.String())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := section + separator + statusText

	if s.UploadCount > 0 {
		uploadStyle := lipgloss.NewStyle().Foreground(styles.Amber)
		result += separator + uploadStyle.Render("^"+toStr(s.UploadCount))
	}

	// Apply background
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar
// Format: SCENARIO | agent | thread | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	// Scenario badge
	// ACCESSIBILITY: Icon plus text, never color alone
	icon, ok := ScenarioIcons[s.Scenario]
	if !ok {
		icon = "?"
	}
	badge := s.theme.ScenarioStyle(s.Scenario.String()).
		Render(icon + " " + strings.ToUpper(s.Scenario.String()))
	parts = append(parts, badge)

	// Agent name (truncated if needed)
	if s.AgentName != "" {
		agentName := s.AgentName
		// Use rune-based truncation to handle Unicode correctly
		agentRunes := []rune(agentName)
		if len(agentRunes) > 15 {
			agentName = string(agentRunes[:12]) + "..."
		}
		agentStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, agentStyle.Render(agentName))
	}

	// Thread title
	if s.ThreadTitle != "" {
		title := s.ThreadTitle
		titleRunes := []rune(title)
		if len(titleRunes) > 20 {
			title = string(titleRunes[:17]) + "..."
		}
		titleStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		parts = append(parts, titleStyle.Render(title))
	}

	// Uploads in flight
	if s.UploadCount > 0 {
		uploadStyle := lipgloss.NewStyle().Foreground(styles.Amber)
		parts = append(parts, uploadStyle.Render("^ "+toStr(s.UploadCount)+" uploading"))
	}

	// Status
	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	// Apply background
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals
// Format: agent | # PLANNING | thread (12 msgs)    conn    Status  shortcuts
func (s *StatusBar) viewWide() string {
	// Left section: agent, scenario, thread
	leftParts := []string{}

	if s.AgentName != "" {
		agentStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true)
		leftParts = append(leftParts, agentStyle.Render(s.AgentName))
	}

	icon, ok := ScenarioIcons[s.Scenario]
	if !ok {
		icon = "?"
	}
	badge := s.theme.ScenarioStyle(s.Scenario.String()).
		Render(icon + " " + strings.ToUpper(s.Scenario.String()))
	leftParts = append(leftParts, badge)

	if s.ThreadTitle != "" {
		threadText := s.ThreadTitle
		if s.MessageCount > 0 {
			threadText += " (" + fmtNumber(s.MessageCount) + " msgs)"
		}
		threadStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, threadStyle.Render(threadText))
	}

	if s.UploadCount > 0 {
		uploadStyle := lipgloss.NewStyle().Foreground(styles.Amber)
		leftParts = append(leftParts, uploadStyle.Render("^ "+toStr(s.UploadCount)+" uploading"))
	}

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Center section: connection state
	// ACCESSIBILITY: High contrast colors with shape indicators
	var centerSection string
	if s.Connected {
		centerSection = lipgloss.NewStyle().
			Foreground(styles.SuccessHighContrast).
			Bold(true).
			Render(styles.StatusIndicators.Success + " connected")
	} else {
		centerSection = lipgloss.NewStyle().
			Foreground(styles.ErrorHighContrast).
			Bold(true).
			Render(styles.StatusIndicators.Error + " offline")
	}

	// Right section: status and shortcuts
	rightParts := []string{}

	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)
	totalContent := leftWidth + centerWidth + rightWidth

	spacing := s.Width - totalContent - 4 // Account for padding
	if spacing < 4 {
		spacing = 4
	}

	leftSpace := strings.Repeat(" ", spacing/2)
	rightSpace := strings.Repeat(" ", spacing-spacing/2)

	result := leftSection + leftSpace + centerSection + rightSpace + rightSection

	// Apply styled border for wide view
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("^N") + descStyle.Render("new"),
		keyStyle.Render("^S") + descStyle.Render("threads"),
	}

	if s.IsBusy() {
		shortcuts = append(shortcuts, keyStyle.Render("Esc")+descStyle.Render("stop"))
	}

	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusStreaming, StatusThinking:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusConnecting:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	case StatusIdle:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
