// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/model"
)

// =============================================================================
// REDUCER
// =============================================================================

// Reducer folds decoded streaming events into an assistant message.
//
// Apply never fails and never panics: events that reference unknown tool
// calls or tasks are dropped, and a result for an already-finished call
// leaves it untouched. Content, tool-call lists and task lists only ever
// grow; the display scenario is only ever promoted.
type Reducer struct {
	// now is the clock used for thinking durations. Injectable for tests.
	now func() time.Time
}

// NewReducer creates a reducer using the real clock.
func NewReducer() *Reducer {
	return &Reducer{now: time.Now}
}

// NewReducerWithClock creates a reducer with an explicit clock.
func NewReducerWithClock(now func() time.Time) *Reducer {
	return &Reducer{now: now}
}

// Apply folds one event into the message. Returns true when the event
// terminated the turn (a done event).
func (r *Reducer) Apply(msg *model.Message, ev api.Event) bool {
	switch e := ev.(type) {
	case api.TextDelta:
		r.applyTextDelta(msg, e)
	case api.ToolCallStart:
		r.applyToolCallStart(msg, e)
	case api.ToolCallResult:
		r.applyToolCallResult(msg, e)
	case api.Thinking:
		r.applyThinking(msg, e)
	case api.TodosUpdated:
		msg.ReplaceTodos(e.Todos)
		msg.PromoteScenario(model.ScenarioPlanning)
	case api.TaskSpawned:
		r.applyTaskSpawned(msg, e)
	case api.TaskCompleted:
		if task := msg.FindTask(e.TaskID); task != nil {
			task.Complete(e.Status != "error", e.DurationMs)
		}
	case api.ErrorEvent:
		// An error marker is content only; the turn is still live until
		// done (or the controller's cleanup path) ends it.
		msg.AppendError(e.Message)
	case api.Done:
		r.finishThinking(msg)
		msg.IsStreaming = false
		return true
	}
	return false
}

// applyTextDelta appends answer text. The first delta ends the thinking
// phase: once the answer starts arriving the agent is no longer
// reasoning, even if thinking steps trickle in afterwards.
func (r *Reducer) applyTextDelta(msg *model.Message, e api.TextDelta) {
	msg.AppendContent(e.Text)
	r.finishThinking(msg)
}

// applyToolCallStart records a new running tool call, nested under its
// spawned task when the event names one that exists, otherwise at the
// message's top level.
func (r *Reducer) applyToolCallStart(msg *model.Message, e api.ToolCallStart) {
	tc := model.NewToolCall(e.ID, e.Tool, e.Args)
	if e.TaskID != "" {
		if task := msg.FindTask(e.TaskID); task != nil {
			task.AddToolCall(tc)
			return
		}
	}
	msg.AddToolCall(tc)
}

// applyToolCallResult finishes a previously started call. Lookup prefers
// the task named by the event, then the top level, then every task --
// results can arrive for calls that landed at the top level because
// their task_spawned frame was lost. A result with no matching call is
// dropped.
func (r *Reducer) applyToolCallResult(msg *model.Message, e api.ToolCallResult) {
	tc := r.lookupToolCall(msg, e)
	if tc == nil {
		return
	}
	tc.Finish(e.Status != "error", e.Output)
}

func (r *Reducer) lookupToolCall(msg *model.Message, e api.ToolCallResult) *model.ToolCall {
	if e.TaskID != "" {
		if task := msg.FindTask(e.TaskID); task != nil {
			if tc := task.FindToolCall(e.ID); tc != nil {
				return tc
			}
		}
	}
	if tc := msg.FindToolCall(e.ID); tc != nil {
		return tc
	}
	for _, task := range msg.SpawnedTasks {
		if tc := task.FindToolCall(e.ID); tc != nil {
			return tc
		}
	}
	return nil
}

// applyThinking appends one reasoning step. Planning and replanning
// steps force the planning scenario; any other step (routing, untyped)
// promotes at most to agent, so a quick turn that merely routes still
// escalates but a planning turn never de-escalates.
func (r *Reducer) applyThinking(msg *model.Message, e api.Thinking) {
	ts := msg.EnsureThinking(r.now())
	ts.AddStep(e.Content)

	switch e.Type {
	case api.ThinkingPlanning, api.ThinkingReplanning:
		msg.PromoteScenario(model.ScenarioPlanning)
	default:
		msg.PromoteScenario(model.ScenarioAgent)
	}
}

// applyTaskSpawned registers a sub-agent task. A duplicate task id is
// dropped rather than creating a second entry. Spawning promotes the
// scenario to agent only; the planning display is reserved for explicit
// planning signals (planning steps, todo updates).
func (r *Reducer) applyTaskSpawned(msg *model.Message, e api.TaskSpawned) {
	if msg.FindTask(e.TaskID) != nil {
		return
	}
	msg.AddTask(model.NewSpawnedTask(e.TaskID, e.SubagentType, e.Description))
	msg.PromoteScenario(model.ScenarioAgent)
}

// finishThinking freezes the thinking timer if the message has one.
func (r *Reducer) finishThinking(msg *model.Message) {
	if msg.Thinking != nil {
		msg.Thinking.Finalize(r.now())
	}
}
