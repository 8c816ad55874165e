// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the deepchat TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/model"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// THINKING BUBBLE COMPONENT
// =============================================================================

// ThinkingView renders the reasoning state of an assistant turn. While
// reasoning is in progress it shows an animated "Thinking..." line with
// elapsed time; once finalized it collapses to "Thought for Ns".
type ThinkingView struct {
	State        *model.ThinkingState
	Width        int
	ShowSteps    bool
	SpinnerFrame string
	theme        *styles.Theme

	// now is injectable for deterministic elapsed-time rendering in tests.
	now func() time.Time
}

// NewThinkingView creates a thinking view for the given state.
func NewThinkingView(state *model.ThinkingState, theme *styles.Theme) *ThinkingView {
	return &ThinkingView{
		State:     state,
		Width:     80,
		ShowSteps: true,
		theme:     theme,
		now:       time.Now,
	}
}

// SetWidth sets the display width.
func (v *ThinkingView) SetWidth(width int) {
	v.Width = width
}

// SetClock overrides the wall clock.
func (v *ThinkingView) SetClock(now func() time.Time) {
	v.now = now
}

// View renders the thinking bubble.
func (v *ThinkingView) View() string {
	if v.State == nil {
		return ""
	}

	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true)

	if v.State.IsThinking {
		frame := v.SpinnerFrame
		if frame == "" {
			frame = "..."
		}
		elapsed := v.now().Sub(v.State.StartTime)
		timeStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		b.WriteString(headerStyle.Render("Thinking" + frame))
		if elapsed >= time.Second {
			b.WriteString(timeStyle.Render(" (" + formatElapsed(elapsed) + ")"))
		}
	} else {
		b.WriteString(headerStyle.Render("Thought for " + toStr(v.State.DurationSeconds) + "s"))
	}

	if v.ShowSteps && len(v.State.Steps) > 0 {
		stepStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			PaddingLeft(2)

		maxStepWidth := v.Width - 8
		if maxStepWidth < 20 {
			maxStepWidth = 20
		}

		for _, step := range v.State.Steps {
			b.WriteString("\n")
			b.WriteString(stepStyle.Render(wordWrap(step, maxStepWidth)))
		}
	}

	bubbleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayDim).
		Padding(0, 1).
		MaxWidth(v.Width - 2)

	return bubbleStyle.Render(b.String())
}

// ViewCollapsed renders just the one-line summary without steps.
func (v *ThinkingView) ViewCollapsed() string {
	steps := v.ShowSteps
	v.ShowSteps = false
	out := v.View()
	v.ShowSteps = steps
	return out
}
