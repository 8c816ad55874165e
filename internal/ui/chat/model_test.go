// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deepchat-tui/internal/api"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	client, err := api.NewClient("http://localhost:9")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	m := New(Options{Client: client})
	m.SetSize(100, 30)
	return m
}

// =============================================================================
// COMPLETION FLOW
// =============================================================================

func TestTabCompletesCommand(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/hel")

	m.cycleCompletion()

	if got := m.input.Value(); got != "/help" {
		t.Errorf("input = %q, want %q", got, "/help")
	}
}

func TestTabCyclesThroughCandidates(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/re")

	m.cycleCompletion()
	first := m.input.Value()
	m.cycleCompletion()
	second := m.input.Value()

	if first == second {
		t.Errorf("cycling did not advance: %q", first)
	}
	if !strings.HasPrefix(first, "/re") && !strings.Contains(first, "re") {
		t.Errorf("unexpected candidate %q", first)
	}
}

func TestTabWithNoMatchesLeavesInput(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/zzz")

	m.cycleCompletion()

	if got := m.input.Value(); got != "/zzz" {
		t.Errorf("input = %q, want unchanged", got)
	}
}

func TestCompletionPopupShowsWhileTypingCommand(t *testing.T) {
	m := testModel(t)

	m.input.SetValue("/ex")
	if m.completionView() == "" {
		t.Error("expected a popup for a partial command")
	}

	m.input.SetValue("plain text")
	if m.completionView() != "" {
		t.Error("no popup for plain text")
	}

	m.input.SetValue("/export notes.md")
	if m.completionView() != "" {
		t.Error("no popup once the command token is complete")
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmitEmptyIsNoop(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("   ")

	if cmd := m.submit(); cmd != nil {
		t.Error("blank input should not produce a command")
	}
}

func TestSubmitUnknownCommandShowsError(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/bogus")

	m.submit()

	if !m.errorBox.Visible() {
		t.Error("expected an error for an unknown command")
	}
}

func TestSubmitHelpTogglesOverlay(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/help")

	m.submit()

	if !m.showHelp {
		t.Error("expected the help overlay")
	}
	if m.input.Value() != "" {
		t.Error("composer should clear after a builtin")
	}
}

func TestSubmitQuit(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/quit")

	cmd := m.submit()

	if !m.quitting {
		t.Error("expected quitting state")
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit")
	}
}

func TestSubmitThreadsEmitsRootMessage(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/threads")

	cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(ShowConversationsMsg); !ok {
		t.Error("expected ShowConversationsMsg")
	}
}

func TestSubmitLogoutEmitsRootMessage(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/logout")

	cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(LogoutRequestedMsg); !ok {
		t.Error("expected LogoutRequestedMsg")
	}
}

func TestSubmitRenameWithoutTitleShowsUsage(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/rename")

	m.submit()

	if !m.errorBox.Visible() {
		t.Error("expected usage error")
	}
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func TestEscDismissesErrorFirst(t *testing.T) {
	m := testModel(t)
	m.errorBox.Show("Oops", "details")

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

	if m.errorBox.Visible() {
		t.Error("esc should dismiss the error box")
	}
}

func TestEscClosesHelp(t *testing.T) {
	m := testModel(t)
	m.showHelp = true

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestAttachModeCapturesInput(t *testing.T) {
	m := testModel(t)

	m.enterAttachMode()
	if !m.attaching {
		t.Fatal("expected attach mode")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.attaching {
		t.Error("esc should leave attach mode")
	}
}

func TestTypingClearsCompletionCycle(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("/re")
	m.cycleCompletion()
	if !m.completion.Active {
		t.Fatal("expected an active cycle")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	if m.completion.Active {
		t.Error("typing should clear the cycle")
	}
}

// =============================================================================
// TICK LOOP
// =============================================================================

func TestRenderTickStopsWhenIdle(t *testing.T) {
	m := testModel(t)
	m.ticking = true

	_, cmd := m.handleRenderTick()

	if cmd != nil {
		t.Error("tick loop should stop while idle")
	}
	if m.ticking {
		t.Error("ticking flag should clear")
	}
}

func TestEnsureTickIsIdempotent(t *testing.T) {
	m := testModel(t)

	if cmd := m.ensureTick(); cmd == nil {
		t.Fatal("first call should schedule a tick")
	}
	if cmd := m.ensureTick(); cmd != nil {
		t.Error("second call should not schedule another")
	}
}

// =============================================================================
// VIEW
// =============================================================================

func TestViewRendersChrome(t *testing.T) {
	m := testModel(t)

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
	if !strings.Contains(view, "No messages yet") {
		t.Error("expected the empty transcript placeholder")
	}
}

func TestHelpViewListsCommands(t *testing.T) {
	m := testModel(t)
	m.showHelp = true

	view := m.View()
	for _, want := range []string{"/help", "/new", "/export", "C-u"} {
		if !strings.Contains(view, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

