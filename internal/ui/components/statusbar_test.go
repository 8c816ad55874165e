// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the deepchat TUI.
package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/deepchat-tui/internal/model"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusStreaming, "Streaming..."},
		{StatusThinking, "Thinking..."},
		{StatusConnecting, "Connecting..."},
		{StatusError, "Error"},
		{StatusIdle, "Idle"},
		{Status(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusIcon(t *testing.T) {
	if StatusReady.Icon() != styles.StatusIndicators.Success {
		t.Error("ready icon should be the success indicator")
	}
	if StatusError.Icon() != styles.StatusIndicators.Error {
		t.Error("error icon should be the error indicator")
	}
	if Status(99).Icon() != "?" {
		t.Error("unknown status icon should be ?")
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestNewStatusBar(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)

	if bar.Status != StatusReady {
		t.Error("new status bar should start ready")
	}
	if bar.Scenario != model.ScenarioQuick {
		t.Error("new status bar should start in the quick scenario")
	}
	if bar.Connected {
		t.Error("new status bar should start disconnected")
	}
	if !bar.ShowShortcuts {
		t.Error("new status bar should show shortcuts by default")
	}
}

func TestStatusBarSetters(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)

	bar.SetAgent("scout")
	bar.SetScenario(model.ScenarioPlanning)
	bar.SetThread("Trip planning", 7)
	bar.SetStatus(StatusStreaming)
	bar.SetConnected(true)
	bar.SetUploadCount(2)
	bar.SetWidth(120)

	if bar.AgentName != "scout" {
		t.Error("SetAgent should update the agent name")
	}
	if bar.Scenario != model.ScenarioPlanning {
		t.Error("SetScenario should update the scenario")
	}
	if bar.ThreadTitle != "Trip planning" || bar.MessageCount != 7 {
		t.Error("SetThread should update title and count")
	}
	if bar.Status != StatusStreaming {
		t.Error("SetStatus should update the status")
	}
	if !bar.Connected {
		t.Error("SetConnected should update the connection state")
	}
	if bar.UploadCount != 2 {
		t.Error("SetUploadCount should update the upload counter")
	}
	if bar.Width != 120 {
		t.Error("SetWidth should update the width")
	}
}

func TestStatusBarIsBusy(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)

	busy := []Status{StatusStreaming, StatusThinking, StatusConnecting}
	for _, st := range busy {
		bar.SetStatus(st)
		if !bar.IsBusy() {
			t.Errorf("IsBusy() should be true for %v", st)
		}
	}

	idle := []Status{StatusReady, StatusError, StatusIdle}
	for _, st := range idle {
		bar.SetStatus(st)
		if bar.IsBusy() {
			t.Errorf("IsBusy() should be false for %v", st)
		}
	}
}

func TestStatusBarViewNarrow(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(40)
	bar.SetScenario(model.ScenarioAgent)
	bar.SetConnected(true)

	view := bar.View()
	if !strings.Contains(view, "@") {
		t.Error("narrow view should show the scenario icon")
	}
	if !strings.Contains(view, "Ready") {
		t.Error("narrow view should show the status text")
	}
}

func TestStatusBarViewNarrowUploads(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(40)
	bar.SetUploadCount(3)

	if !strings.Contains(bar.View(), "^3") {
		t.Error("narrow view should show the upload counter")
	}
}

func TestStatusBarViewMedium(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(80)
	bar.SetScenario(model.ScenarioPlanning)
	bar.SetAgent("scout")
	bar.SetThread("Weekend trip", 3)

	view := bar.View()
	if !strings.Contains(view, "PLANNING") {
		t.Error("medium view should show the scenario badge text")
	}
	if !strings.Contains(view, "scout") {
		t.Error("medium view should show the agent name")
	}
	if !strings.Contains(view, "Weekend trip") {
		t.Error("medium view should show the thread title")
	}
}

func TestStatusBarViewMediumTruncatesAgent(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(80)
	bar.SetAgent("an-extremely-long-agent-name")

	view := bar.View()
	if strings.Contains(view, "an-extremely-long-agent-name") {
		t.Error("medium view should truncate long agent names")
	}
	if !strings.Contains(view, "...") {
		t.Error("truncated agent name should end with ...")
	}
}

func TestStatusBarViewWide(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(140)
	bar.SetAgent("scout")
	bar.SetScenario(model.ScenarioAgent)
	bar.SetThread("Research", 12)
	bar.SetConnected(true)

	view := bar.View()
	if !strings.Contains(view, "AGENT") {
		t.Error("wide view should show the scenario badge")
	}
	if !strings.Contains(view, "(12 msgs)") {
		t.Error("wide view should show the message count")
	}
	if !strings.Contains(view, "connected") {
		t.Error("wide view should show the connection state")
	}
	if !strings.Contains(view, "^N") {
		t.Error("wide view should show keyboard shortcuts")
	}
}

func TestStatusBarViewWideOffline(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(140)
	bar.SetConnected(false)

	if !strings.Contains(bar.View(), "offline") {
		t.Error("wide view should show offline when disconnected")
	}
}

func TestStatusBarStopShortcutWhenBusy(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(140)

	if strings.Contains(bar.View(), "stop") {
		t.Error("stop shortcut should be hidden while idle")
	}

	bar.SetStatus(StatusStreaming)
	if !strings.Contains(bar.View(), "stop") {
		t.Error("stop shortcut should show while a turn is in flight")
	}
}

func TestScenarioIcons(t *testing.T) {
	tests := []struct {
		scenario model.Scenario
		want     string
	}{
		{model.ScenarioQuick, ">"},
		{model.ScenarioAgent, "@"},
		{model.ScenarioPlanning, "#"},
	}

	for _, tt := range tests {
		if got := ScenarioIcons[tt.scenario]; got != tt.want {
			t.Errorf("ScenarioIcons[%v] = %q, want %q", tt.scenario, got, tt.want)
		}
	}
}
