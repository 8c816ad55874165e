// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"math"
	"time"
)

// =============================================================================
// THINKING STATE
// =============================================================================

// ThinkingState tracks the reasoning-visibility lifecycle for one
// assistant message: the ordered reasoning steps, whether reasoning is
// still in progress, and how long it took once it stopped.
type ThinkingState struct {
	// Steps is the append-only ordered sequence of reasoning steps.
	Steps []string

	// IsThinking starts true and flips to false exactly once.
	IsThinking bool

	// StartTime is captured at creation and never changes.
	StartTime time.Time

	// DurationSeconds is computed once at the IsThinking->false
	// transition and is immutable thereafter.
	DurationSeconds int
}

// NewThinkingState creates a thinking state that starts in the thinking
// phase at the given time.
func NewThinkingState(now time.Time) *ThinkingState {
	return &ThinkingState{
		IsThinking: true,
		StartTime:  now,
	}
}

// AddStep appends a reasoning step.
func (t *ThinkingState) AddStep(content string) {
	t.Steps = append(t.Steps, content)
}

// Clone returns a copy with its own steps slice.
func (t *ThinkingState) Clone() *ThinkingState {
	c := *t
	if t.Steps != nil {
		c.Steps = append([]string(nil), t.Steps...)
	}
	return &c
}

// Finalize stops the thinking phase and freezes the duration. Calling it
// again is a no-op, so DurationSeconds is never recomputed no matter how
// many text deltas follow the first.
func (t *ThinkingState) Finalize(now time.Time) {
	if !t.IsThinking {
		return
	}
	t.IsThinking = false
	t.DurationSeconds = int(math.Round(now.Sub(t.StartTime).Seconds()))
}
