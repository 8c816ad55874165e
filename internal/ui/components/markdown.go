// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the deepchat TUI.
package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// MarkdownRenderer renders assistant markdown for terminal display.
// USABILITY: Renders markdown responses with syntax highlighting and
// formatting. The underlying glamour renderer is rebuilt only when the
// wrap width changes.
type MarkdownRenderer struct {
	mu       sync.Mutex
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer wrapping at the given width.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	mr := &MarkdownRenderer{}
	mr.SetWidth(width)
	return mr
}

// SetWidth changes the wrap width, rebuilding the renderer if needed.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()

	if width == mr.width && mr.renderer != nil {
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		mr.renderer = nil
		mr.width = width
		return
	}

	mr.renderer = renderer
	mr.width = width
}

// Render renders markdown content for terminal display. Returns the
// original content if rendering fails or the renderer is unavailable.
func (mr *MarkdownRenderer) Render(content string) string {
	mr.mu.Lock()
	renderer := mr.renderer
	mr.mu.Unlock()

	if renderer == nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	// Glamour pads output with leading/trailing blank lines; trim them so
	// bubbles stay compact.
	return strings.Trim(rendered, "\n")
}
