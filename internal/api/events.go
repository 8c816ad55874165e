// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"

	"github.com/jeranaias/deepchat-tui/internal/model"
)

// =============================================================================
// EVENT NAMES
// =============================================================================

// Wire names for the closed set of streaming events the backend emits.
const (
	eventTextDelta      = "text_delta"
	eventToolCallStart  = "tool_call_start"
	eventToolCallResult = "tool_call_result"
	eventThinking       = "thinking"
	eventTodosUpdated   = "todos_updated"
	eventTaskSpawned    = "task_spawned"
	eventTaskCompleted  = "task_completed"
	eventError          = "error"
	eventDone           = "done"
)

// Thinking event subtypes. Planning and replanning force the planning
// display scenario; routing (and absent type) promote quick to agent only.
const (
	ThinkingPlanning   = "planning"
	ThinkingReplanning = "replanning"
	ThinkingRouting    = "routing"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

// Event is one decoded streaming event. The set of implementations is
// closed; the reducer switches exhaustively and ignores anything else,
// which also covers forward compatibility for event kinds added server
// side later (the decoder reports them as unknown).
type Event interface {
	// Name returns the wire name of the event.
	Name() string
}

// TextDelta carries a chunk of assistant answer text.
type TextDelta struct {
	Text string `json:"text"`
}

// ToolCallStart reports that a tool invocation began. TaskID associates
// the call with a spawned sub-agent task; when empty the call belongs to
// the message's top-level list.
type ToolCallStart struct {
	ID     string                 `json:"id"`
	TaskID string                 `json:"task_id,omitempty"`
	Tool   string                 `json:"name"`
	Args   map[string]interface{} `json:"args"`
}

// ToolCallResult reports the outcome of a previously started tool call.
type ToolCallResult struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id,omitempty"`
	Tool   string `json:"name"`
	Status string `json:"status"` // "success" or "error"
	Output string `json:"output"`
}

// Thinking carries one reasoning step, optionally typed.
type Thinking struct {
	Type    string `json:"type,omitempty"` // planning, replanning, routing
	Content string `json:"content"`
}

// TodosUpdated carries the complete todo list (full state, not a delta).
type TodosUpdated struct {
	Todos     []model.Todo `json:"todos"`
	Timestamp string       `json:"timestamp"`
}

// TaskSpawned reports that a sub-agent task was started.
type TaskSpawned struct {
	TaskID       string `json:"task_id"`
	SubagentType string `json:"subagent_type"`
	Description  string `json:"description"`
}

// TaskCompleted reports that a sub-agent task reached a terminal state.
type TaskCompleted struct {
	TaskID     string `json:"task_id"`
	DurationMs int64  `json:"duration_ms"`
	Status     string `json:"status"` // "success" or "error"
}

// ErrorEvent carries a server-reported error for the current turn.
type ErrorEvent struct {
	Message string `json:"message"`
}

// Done marks the normal end of a stream.
type Done struct{}

func (TextDelta) Name() string      { return eventTextDelta }
func (ToolCallStart) Name() string  { return eventToolCallStart }
func (ToolCallResult) Name() string { return eventToolCallResult }
func (Thinking) Name() string       { return eventThinking }
func (TodosUpdated) Name() string   { return eventTodosUpdated }
func (TaskSpawned) Name() string    { return eventTaskSpawned }
func (TaskCompleted) Name() string  { return eventTaskCompleted }
func (ErrorEvent) Name() string     { return eventError }
func (Done) Name() string           { return eventDone }

// =============================================================================
// DECODING
// =============================================================================

// DecodeEvent turns a raw (name, payload) frame into a typed event.
// Returns ok=false for unknown event names and for payloads that fail to
// unmarshal; both are dropped without surfacing an error so one bad frame
// never desynchronizes the stream.
func DecodeEvent(name string, data []byte) (Event, bool) {
	switch name {
	case eventTextDelta:
		var ev TextDelta
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventToolCallStart:
		var ev ToolCallStart
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventToolCallResult:
		var ev ToolCallResult
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventThinking:
		var ev Thinking
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventTodosUpdated:
		var ev TodosUpdated
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventTaskSpawned:
		var ev TaskSpawned
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventTaskCompleted:
		var ev TaskCompleted
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventError:
		var ev ErrorEvent
		if json.Unmarshal(data, &ev) != nil {
			return nil, false
		}
		return ev, true
	case eventDone:
		return Done{}, true
	default:
		// Unknown event kind: ignore for forward compatibility.
		return nil, false
	}
}
