// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file implements transcript rendering and its repaint cache. The
// render tick fires ~30 times a second during a turn, but most ticks
// produce identical transcript text (long thinking phases, slow tool
// calls). The cache hashes the rendered content and skips the viewport
// update when nothing changed, keeping streaming CPU flat.
package chat

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// RENDER CACHE
// =============================================================================

// renderCache skips redundant viewport updates by hashing the rendered
// transcript. Only the update loop touches it, so no locking.
type renderCache struct {
	lastHash string
	force    bool
}

func newRenderCache() *renderCache {
	return &renderCache{force: true}
}

// ShouldUpdate reports whether the content differs from the last
// rendered transcript. A hash beats a string compare here because the
// previous content does not have to be retained.
func (rc *renderCache) ShouldUpdate(content string) bool {
	h := hashContent(content)
	if !rc.force && h == rc.lastHash {
		return false
	}
	rc.lastHash = h
	rc.force = false
	return true
}

// ForceUpdate makes the next ShouldUpdate return true regardless of
// content. Used after resizes, which change wrapping without changing
// the message data.
func (rc *renderCache) ForceUpdate() {
	rc.force = true
}

func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshTranscript re-renders the controller's message snapshot into
// the viewport. Sticks to the bottom while the user has not scrolled
// up, so streaming output stays in view.
func (m *Model) refreshTranscript() {
	m.transcript.SetMessages(m.controller.Messages())
	m.transcript.SpinnerFrame = m.spinnerFrame()

	content := m.transcript.View()
	if !m.render.ShouldUpdate(content) {
		return
	}

	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(content)
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// spinnerFrame returns the animation frame for streaming adornments,
// advanced once per render tick.
func (m *Model) spinnerFrame() string {
	frames := styles.BrailleSpinner.Frames
	return frames[m.frame%len(frames)]
}
