// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
)

// =============================================================================
// FUZZY MATCHING
// =============================================================================

// Scoring weights. Consecutive runs and word starts matter most so
// that "wt" ranks "Weekend trip" above "what time is it".
const (
	fuzzyBaseScore    = 1
	fuzzyRunBonus     = 5
	fuzzyStartBonus   = 10
	fuzzyWordBonus    = 7
	fuzzyLengthFactor = 4
)

// FuzzyMatch reports whether every rune of query appears in order in
// target (case-insensitive), with a score for ranking. The sidebar
// filter uses it to match conversation titles as the user types.
func FuzzyMatch(query, target string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(target))
	if len(q) > len(t) {
		return 0, false
	}

	qi := 0
	prevHit := -2
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			continue
		}
		score += fuzzyBaseScore
		if ti == prevHit+1 {
			score += fuzzyRunBonus
		}
		if ti == 0 {
			score += fuzzyStartBonus
		}
		if wordStart(t, ti) {
			score += fuzzyWordBonus
		}
		prevHit = ti
		qi++
	}

	if qi < len(q) {
		return 0, false
	}
	// Shorter targets win ties: a match using most of the title is a
	// better match than the same runes scattered through a long one.
	return score - len(t)/fuzzyLengthFactor, true
}

// wordStart reports whether position i begins a word: the start of the
// string or right after a separator.
func wordStart(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	switch runes[i-1] {
	case ' ', '/', '-', '_':
		return true
	}
	return false
}
