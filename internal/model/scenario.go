// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// DISPLAY SCENARIO
// =============================================================================

// Scenario selects which display layer the UI renders for an assistant
// message: flat tool-call cards (quick), thinking bubble plus task tree
// (agent), or the full planning view with todos (planning).
//
// Scenarios form a total order quick < agent < planning and are only ever
// promoted, never demoted, for the lifetime of a message. Demoting
// mid-stream would make the UI flicker between layers, so once the richer
// layer is justified it stays.
type Scenario int

const (
	// ScenarioQuick shows top-level tool calls with no reasoning chrome.
	ScenarioQuick Scenario = iota

	// ScenarioAgent shows the thinking bubble and spawned-task tree.
	ScenarioAgent

	// ScenarioPlanning additionally shows the todo list. Planning is
	// absorbing: no later event moves a message back below it.
	ScenarioPlanning
)

// String returns the wire/display name of the scenario.
func (s Scenario) String() string {
	switch s {
	case ScenarioQuick:
		return "quick"
	case ScenarioAgent:
		return "agent"
	case ScenarioPlanning:
		return "planning"
	default:
		return "quick"
	}
}

// Promote returns the higher of s and candidate. This is the only way
// scenarios change, which makes the monotonicity invariant mechanical
// rather than something each event handler has to remember.
func (s Scenario) Promote(candidate Scenario) Scenario {
	if candidate > s {
		return candidate
	}
	return s
}
