// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TOOL CALL
// =============================================================================

// ToolCallStatus is the lifecycle state of a tool invocation.
type ToolCallStatus string

const (
	ToolCallRunning ToolCallStatus = "running"
	ToolCallDone    ToolCallStatus = "done"
	ToolCallError   ToolCallStatus = "error"
)

// ToolCall represents one tool invocation reported by the server.
// Name and Args are immutable once created; Status moves one way from
// running to done or error, and Output is set exactly once at that
// transition.
type ToolCall struct {
	ID     string
	Name   string
	Args   map[string]interface{}
	Status ToolCallStatus
	Output string
}

// NewToolCall creates a tool call in the running state.
func NewToolCall(id, name string, args map[string]interface{}) *ToolCall {
	return &ToolCall{
		ID:     id,
		Name:   name,
		Args:   args,
		Status: ToolCallRunning,
	}
}

// Finish transitions the call to a terminal status and records its output.
// A call that already reached a terminal status is left untouched.
func (tc *ToolCall) Finish(success bool, output string) {
	if tc.Status != ToolCallRunning {
		return
	}
	if success {
		tc.Status = ToolCallDone
	} else {
		tc.Status = ToolCallError
	}
	tc.Output = output
}

// IsTerminal reports whether the call has finished (either outcome).
func (tc *ToolCall) IsTerminal() bool {
	return tc.Status != ToolCallRunning
}

// Clone returns a copy of the call. Args is shared: it is immutable
// after decode, so the copy does not need its own map.
func (tc *ToolCall) Clone() *ToolCall {
	c := *tc
	return &c
}

// =============================================================================
// TODO ITEM
// =============================================================================

// TodoStatus is the lifecycle state of a planner todo item.
type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
)

// Todo is a single planner todo item. The server always sends the entire
// todo list, so there is no per-item mutation; lists are replaced
// wholesale.
type Todo struct {
	Content string     `json:"content"`
	Status  TodoStatus `json:"status"`
}

// =============================================================================
// SPAWNED TASK
// =============================================================================

// TaskStatus is the lifecycle state of a spawned sub-agent task.
type TaskStatus string

const (
	TaskRunning TaskStatus = "running"
	TaskSuccess TaskStatus = "success"
	TaskError   TaskStatus = "error"
)

// SpawnedTask is a sub-agent execution unit. It owns its own nested
// tool-call sequence with the same invariants as the message-level list.
type SpawnedTask struct {
	TaskID       string
	SubagentType string
	Description  string
	Status       TaskStatus
	DurationMs   int64
	ToolCalls    []*ToolCall
}

// NewSpawnedTask creates a task in the running state with no tool calls.
func NewSpawnedTask(taskID, subagentType, description string) *SpawnedTask {
	return &SpawnedTask{
		TaskID:       taskID,
		SubagentType: subagentType,
		Description:  description,
		Status:       TaskRunning,
	}
}

// Complete transitions the task to a terminal status and records its
// duration. A task that already completed is left untouched.
func (st *SpawnedTask) Complete(success bool, durationMs int64) {
	if st.Status != TaskRunning {
		return
	}
	if success {
		st.Status = TaskSuccess
	} else {
		st.Status = TaskError
	}
	st.DurationMs = durationMs
}

// AddToolCall appends a tool call to the task's nested list.
func (st *SpawnedTask) AddToolCall(tc *ToolCall) {
	st.ToolCalls = append(st.ToolCalls, tc)
}

// Clone returns a deep copy of the task, including its nested tool
// calls.
func (st *SpawnedTask) Clone() *SpawnedTask {
	c := *st
	if st.ToolCalls != nil {
		c.ToolCalls = make([]*ToolCall, len(st.ToolCalls))
		for i, tc := range st.ToolCalls {
			c.ToolCalls[i] = tc.Clone()
		}
	}
	return &c
}

// FindToolCall returns the nested tool call with the given id, or nil.
func (st *SpawnedTask) FindToolCall(id string) *ToolCall {
	for _, tc := range st.ToolCalls {
		if tc.ID == id {
			return tc
		}
	}
	return nil
}

// =============================================================================
// FILE ATTACHMENT
// =============================================================================

// FileSource identifies who produced an attached file.
type FileSource string

const (
	FileSourceUser  FileSource = "user"
	FileSourceAgent FileSource = "agent"
)

// FileAttachment is a file attached to a message, created once from
// either a user upload or a server-reported agent-produced file.
// Immutable after creation.
type FileAttachment struct {
	FileID      string     `json:"file_id"`
	Filename    string     `json:"filename"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type"`
	Source      FileSource `json:"source"`
	DownloadURL string     `json:"download_url"`
}
