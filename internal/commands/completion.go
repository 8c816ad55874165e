// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command registry for the deepchat TUI.
//
// This file implements tab completion for slash commands. Matching is
// prefix-first with the exact prefix matches ranked before substring
// matches, so "/re" offers "/rename" and "/research" ahead of anything
// that merely contains "re".
package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMPLETION
// =============================================================================

// Completion is one completion candidate.
type Completion struct {
	// Value is the full replacement text, including the leading slash
	// and a trailing space for commands that take arguments.
	Value string

	// Display is the text shown in the popup row.
	Display string

	// Description is the command's one-line description.
	Description string
}

// Completer produces completion candidates for partially typed input.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer backed by the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns candidates for the current input, best match first.
// Only the command token completes; argument text returns nothing.
func (c *Completer) Complete(input string) []Completion {
	partial, ok := PartialCommand(input)
	if !ok {
		return nil
	}

	type scored struct {
		completion Completion
		rank       int
	}

	var matches []scored
	for _, cmd := range c.registry.All() {
		rank, matched := matchRank(partial, cmd.Name)
		if !matched {
			continue
		}

		value := "/" + cmd.Name
		if cmd.Agent || strings.Contains(cmd.Usage, "<") || strings.Contains(cmd.Usage, "[") {
			value += " "
		}
		matches = append(matches, scored{
			completion: Completion{
				Value:       value,
				Display:     "/" + cmd.Name,
				Description: cmd.Description,
			},
			rank: rank,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].completion.Display < matches[j].completion.Display
	})

	out := make([]Completion, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.completion)
	}
	return out
}

// matchRank ranks a candidate against the partial token: 0 for a prefix
// match, 1 for a substring match. An empty partial matches everything.
func matchRank(partial, name string) (rank int, matched bool) {
	if partial == "" {
		return 0, true
	}
	if strings.HasPrefix(name, partial) {
		return 0, true
	}
	if strings.Contains(name, partial) {
		return 1, true
	}
	return 0, false
}

// =============================================================================
// COMPLETION STATE
// =============================================================================

// CompletionState tracks tab-cycling through the current candidates.
// Repeated tabs advance the selection; any edit clears the state.
type CompletionState struct {
	Candidates []Completion
	Index      int
	Active     bool
}

// NewCompletionState creates an inactive completion state.
func NewCompletionState() *CompletionState {
	return &CompletionState{Index: -1}
}

// Begin activates the state with a fresh candidate list.
func (s *CompletionState) Begin(candidates []Completion) {
	s.Candidates = candidates
	s.Index = -1
	s.Active = len(candidates) > 0
}

// Next advances to the next candidate, wrapping, and returns it.
// Returns ok=false when there are no candidates.
func (s *CompletionState) Next() (Completion, bool) {
	if !s.Active || len(s.Candidates) == 0 {
		return Completion{}, false
	}
	s.Index = (s.Index + 1) % len(s.Candidates)
	return s.Candidates[s.Index], true
}

// Current returns the selected candidate, if any.
func (s *CompletionState) Current() (Completion, bool) {
	if !s.Active || s.Index < 0 || s.Index >= len(s.Candidates) {
		return Completion{}, false
	}
	return s.Candidates[s.Index], true
}

// Clear deactivates the state.
func (s *CompletionState) Clear() {
	s.Candidates = nil
	s.Index = -1
	s.Active = false
}
