// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the deepchat TUI.
package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// SIDEBAR TESTS
// =============================================================================

func sidebarItems() []SidebarItem {
	return []SidebarItem{
		{ID: "c1", Title: "Trip planning", UpdatedAt: time.Now().Add(-2 * time.Minute)},
		{ID: "c2", Title: "Tax questions", UpdatedAt: time.Now().Add(-3 * time.Hour)},
		{ID: "c3", Title: "Recipe ideas", UpdatedAt: time.Now().Add(-2 * 24 * time.Hour)},
	}
}

func TestNewSidebar(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)

	if sb.Width != 32 {
		t.Errorf("Width = %d, want 32", sb.Width)
	}
	if sb.VisibleCount() != 0 {
		t.Error("new sidebar should be empty")
	}
}

func TestSidebarSetItems(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems(sidebarItems())

	if sb.VisibleCount() != 3 {
		t.Errorf("VisibleCount() = %d, want 3", sb.VisibleCount())
	}
	if item := sb.SelectedItem(); item == nil || item.ID != "c1" {
		t.Error("selection should start on the first item")
	}
}

func TestSidebarNavigation(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems(sidebarItems())

	sb.MoveDown()
	if item := sb.SelectedItem(); item == nil || item.ID != "c2" {
		t.Error("MoveDown should advance the selection")
	}

	sb.MoveDown()
	sb.MoveDown() // already at the bottom
	if item := sb.SelectedItem(); item == nil || item.ID != "c3" {
		t.Error("MoveDown should stop at the last row")
	}

	sb.MoveUp()
	sb.MoveUp()
	sb.MoveUp() // already at the top
	if item := sb.SelectedItem(); item == nil || item.ID != "c1" {
		t.Error("MoveUp should stop at the first row")
	}
}

func TestSidebarFilter(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems(sidebarItems())

	sb.SetQuery("trip")
	if sb.VisibleCount() != 1 {
		t.Errorf("VisibleCount() = %d, want 1", sb.VisibleCount())
	}
	if item := sb.SelectedItem(); item == nil || item.ID != "c1" {
		t.Error("filtering should keep only the matching conversation")
	}

	sb.SetQuery("")
	if sb.VisibleCount() != 3 {
		t.Error("clearing the query should restore all rows")
	}
}

func TestSidebarFilterNoMatches(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems(sidebarItems())

	sb.SetQuery("zzzzzz")
	if sb.VisibleCount() != 0 {
		t.Error("a nonsense query should match nothing")
	}
	if sb.SelectedItem() != nil {
		t.Error("SelectedItem() should be nil when nothing matches")
	}
	if !strings.Contains(sb.View(), "no matches") {
		t.Error("View() should show the no-matches state")
	}
}

func TestSidebarFilterClampsSelection(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems(sidebarItems())

	sb.MoveDown()
	sb.MoveDown()
	sb.SetQuery("trip")

	if item := sb.SelectedItem(); item == nil {
		t.Error("selection should clamp into the filtered range")
	}
}

func TestSidebarViewEmpty(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)

	view := sb.View()
	if !strings.Contains(view, "Conversations") {
		t.Error("View() should show the title")
	}
	if !strings.Contains(view, "no conversations") {
		t.Error("View() should show the empty state")
	}
}

func TestSidebarView(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems(sidebarItems())
	sb.SetSize(40, 20)

	view := sb.View()
	if !strings.Contains(view, "Trip planning") {
		t.Error("View() should render conversation titles")
	}
	if !strings.Contains(view, "> ") {
		t.Error("View() should mark the selected row")
	}
	if !strings.Contains(view, "2m") {
		t.Error("View() should show relative timestamps")
	}
}

func TestSidebarViewQueryRow(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems(sidebarItems())
	sb.SetQuery("tax")

	view := sb.View()
	if !strings.Contains(view, "/tax") {
		t.Error("View() should show the active query")
	}
	if !strings.Contains(view, "(1)") {
		t.Error("View() should show the filtered count in the title")
	}
}

func TestSidebarUntitled(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewSidebar(theme)
	sb.SetItems([]SidebarItem{{ID: "c1"}})

	if !strings.Contains(sb.View(), "Untitled") {
		t.Error("rows without a title should render as Untitled")
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "now"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{49 * time.Hour, "2d"},
	}

	for _, tt := range tests {
		got := relativeTime(time.Now().Add(-tt.ago))
		if got != tt.want {
			t.Errorf("relativeTime(%v ago) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
