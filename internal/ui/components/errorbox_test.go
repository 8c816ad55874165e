// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the deepchat TUI.
package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BOX TESTS
// =============================================================================

func TestNewErrorBoxHidden(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)

	if box.Visible() {
		t.Error("new error box should start hidden")
	}
	if box.View() != "" {
		t.Error("hidden error box should render nothing")
	}
}

func TestErrorBoxShow(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)
	box.Show("Upload failed", "the server rejected the file")

	if !box.Visible() {
		t.Error("Show() should make the box visible")
	}

	view := box.View()
	if !strings.Contains(view, "Upload failed") {
		t.Error("View() should contain the title")
	}
	if !strings.Contains(view, "the server rejected the file") {
		t.Error("View() should contain the message")
	}
	if !strings.Contains(view, styles.StatusIndicators.Error) {
		t.Error("View() should show the error indicator")
	}
	if !strings.Contains(view, "press esc to dismiss") {
		t.Error("View() should show the dismiss hint")
	}
}

func TestErrorBoxDefaultTitle(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)
	box.Show("", "something broke")

	if !strings.Contains(box.View(), "Error") {
		t.Error("View() should fall back to a generic title")
	}
}

func TestErrorBoxSuggestions(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)
	box.ShowWithSuggestions("Connection lost", "stream ended early", []string{
		"Check your network connection",
		"Retry the message",
	})

	view := box.View()
	if !strings.Contains(view, "Check your network connection") {
		t.Error("View() should list suggestions")
	}
	if !strings.Contains(view, "Retry the message") {
		t.Error("View() should list every suggestion")
	}
}

func TestErrorBoxDismiss(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)
	box.Show("Error", "oops")

	box.Dismiss()
	if box.Visible() {
		t.Error("Dismiss() should hide the box")
	}
}

func TestErrorBoxDismissKey(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)
	box.Show("Error", "oops")

	box, _ = box.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if box.Visible() {
		t.Error("esc should dismiss the box")
	}
}

func TestErrorBoxDismissTimer(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)
	box.SetAutoDismiss(time.Second)
	box.Show("Error", "oops")

	if box.AutoDismissCmd() == nil {
		t.Error("AutoDismissCmd() should return a command when enabled")
	}

	box, _ = box.Update(ErrorDismissMsg{})
	if box.Visible() {
		t.Error("the dismiss timer message should hide the box")
	}
}

func TestErrorBoxNoAutoDismissByDefault(t *testing.T) {
	theme := styles.NewTheme()
	box := NewErrorBox(theme)
	box.Show("Error", "oops")

	if box.AutoDismissCmd() != nil {
		t.Error("AutoDismissCmd() should be nil when auto-dismiss is disabled")
	}
}
