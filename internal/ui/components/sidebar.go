// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the deepchat TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// SIDEBAR COMPONENT - Conversation list with fuzzy filtering
// =============================================================================

// SidebarItem is one conversation row in the sidebar.
type SidebarItem struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// Sidebar renders the conversation list with an optional filter query.
// Filtering uses fuzzy matching against conversation titles.
type Sidebar struct {
	Items    []SidebarItem
	Selected int
	Query    string
	Width    int
	Height   int
	theme    *styles.Theme

	// filtered holds indices into Items for the current query
	filtered []int
}

// NewSidebar creates a new Sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		Width:  32,
		Height: 20,
		theme:  theme,
	}
}

// SetItems replaces the conversation list and refreshes the filter.
func (s *Sidebar) SetItems(items []SidebarItem) {
	s.Items = items
	s.applyFilter()
	s.clampSelection()
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetQuery updates the filter query and refreshes the visible rows.
func (s *Sidebar) SetQuery(query string) {
	s.Query = query
	s.applyFilter()
	s.clampSelection()
}

// MoveUp moves the selection up one row.
func (s *Sidebar) MoveUp() {
	if s.Selected > 0 {
		s.Selected--
	}
}

// MoveDown moves the selection down one row.
func (s *Sidebar) MoveDown() {
	if s.Selected < len(s.filtered)-1 {
		s.Selected++
	}
}

// SelectedItem returns the currently selected conversation, or nil when
// the filtered list is empty.
func (s *Sidebar) SelectedItem() *SidebarItem {
	if s.Selected < 0 || s.Selected >= len(s.filtered) {
		return nil
	}
	return &s.Items[s.filtered[s.Selected]]
}

// VisibleCount returns the number of rows matching the current query.
func (s *Sidebar) VisibleCount() int {
	return len(s.filtered)
}

// applyFilter rebuilds the filtered index list for the current query.
func (s *Sidebar) applyFilter() {
	s.filtered = s.filtered[:0]

	if s.Query == "" {
		for i := range s.Items {
			s.filtered = append(s.filtered, i)
		}
		return
	}

	// Score and keep matches, best first
	type scored struct {
		index int
		score int
	}
	var matches []scored
	for i, item := range s.Items {
		if score, ok := FuzzyMatch(s.Query, item.Title); ok {
			matches = append(matches, scored{index: i, score: score})
		}
	}

	// Insertion sort by descending score, stable for equal scores
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].score > matches[j-1].score; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	for _, m := range matches {
		s.filtered = append(s.filtered, m.index)
	}
}

// clampSelection keeps the selection inside the filtered range.
func (s *Sidebar) clampSelection() {
	if s.Selected >= len(s.filtered) {
		s.Selected = len(s.filtered) - 1
	}
	if s.Selected < 0 {
		s.Selected = 0
	}
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	innerWidth := s.Width - 4
	if innerWidth < 12 {
		innerWidth = 12
	}

	var lines []string

	// Title row
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)
	title := "Conversations"
	if s.Query != "" {
		title += " (" + toStr(len(s.filtered)) + ")"
	}
	lines = append(lines, titleStyle.Render(title))

	// Filter query row
	if s.Query != "" {
		queryStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
		lines = append(lines, queryStyle.Render("/"+s.Query))
	}

	lines = append(lines, lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(strings.Repeat("-", innerWidth)))

	if len(s.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		if s.Query != "" {
			lines = append(lines, emptyStyle.Render("no matches"))
		} else {
			lines = append(lines, emptyStyle.Render("no conversations"))
		}
	}

	// Visible window around the selection
	maxRows := s.Height - len(lines) - 2
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if s.Selected >= maxRows {
		start = s.Selected - maxRows + 1
	}
	end := start + maxRows
	if end > len(s.filtered) {
		end = len(s.filtered)
	}

	for row := start; row < end; row++ {
		item := s.Items[s.filtered[row]]
		lines = append(lines, s.renderItem(item, row == s.Selected, innerWidth))
	}

	content := strings.Join(lines, "\n")

	return s.theme.Sidebar.
		Width(s.Width - 2).
		Height(s.Height).
		Render(content)
}

// renderItem renders one conversation row.
func (s *Sidebar) renderItem(item SidebarItem, selected bool, width int) string {
	title := item.Title
	if title == "" {
		title = "Untitled"
	}
	titleRunes := []rune(title)
	maxTitle := width - 2
	if maxTitle < 6 {
		maxTitle = 6
	}
	if len(titleRunes) > maxTitle {
		title = string(titleRunes[:maxTitle-3]) + "..."
	}

	meta := ""
	if !item.UpdatedAt.IsZero() {
		meta = relativeTime(item.UpdatedAt)
	}

	if selected {
		line := "> " + title
		if meta != "" {
			line += "  " + meta
		}
		return s.theme.ConversationItemSelected.Render(line)
	}

	line := "  " + s.theme.ConversationTitle.Render(title)
	if meta != "" {
		line += "  " + s.theme.ConversationMeta.Render(meta)
	}
	return line
}

// relativeTime formats a timestamp relative to now ("2m", "3h", "5d").
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return toStr(int(d.Minutes())) + "m"
	case d < 24*time.Hour:
		return toStr(int(d.Hours())) + "h"
	default:
		return toStr(int(d.Hours()/24)) + "d"
	}
}
