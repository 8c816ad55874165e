// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents one turn's worth of content in a conversation.
//
// Content only ever grows; it is never truncated or reordered. ToolCalls
// and SpawnedTasks are append-only (entries mutate in place after
// creation). Todos are replaced wholesale on each update. Scenario is
// promoted monotonically via PromoteScenario.
type Message struct {
	// Identity
	ID        string
	Role      Role
	Timestamp time.Time

	// Content accumulates text deltas and inline error markers in
	// arrival order.
	Content string

	// Streaming detail, populated only for assistant messages.
	ToolCalls    []*ToolCall
	Thinking     *ThinkingState
	Todos        []Todo
	SpawnedTasks []*SpawnedTask
	Scenario     Scenario

	// Files attached to the message; immutable once set.
	Files []FileAttachment

	// IsStreaming is true while a turn is actively folding events into
	// this message.
	IsStreaming bool
}

// NewUserMessage creates a user message with optional file attachments.
func NewUserMessage(content string, files []FileAttachment) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Timestamp: time.Now(),
		Content:   content,
		Files:     files,
	}
}

// NewAssistantMessage creates the streaming assistant placeholder for a
// turn. The scenario starts at agent (not quick) because most non-trivial
// turns begin with reasoning, and an initial thinking state is attached
// so the UI can show the thinking bubble immediately.
func NewAssistantMessage(now time.Time) *Message {
	return &Message{
		ID:          generateID(),
		Role:        RoleAssistant,
		Timestamp:   now,
		Scenario:    ScenarioAgent,
		Thinking:    NewThinkingState(now),
		IsStreaming: true,
	}
}

// NewHistoryMessage creates a message reconstructed from a persisted turn
// record. History carries role and content only; tool-call and thinking
// detail is not reconstructed.
func NewHistoryMessage(role Role, content string) *Message {
	return &Message{
		ID:      generateID(),
		Role:    role,
		Content: content,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendContent appends streamed text to the content buffer.
func (m *Message) AppendContent(text string) {
	m.Content += text
}

// AppendError appends a visible inline error marker to the content. The
// marker format matches what the assistant markdown renderer expects.
func (m *Message) AppendError(message string) {
	m.Content += "\n\n**Error:** " + message
}

// PromoteScenario raises the display scenario, never lowering it.
func (m *Message) PromoteScenario(candidate Scenario) {
	m.Scenario = m.Scenario.Promote(candidate)
}

// AddToolCall appends a tool call to the message's top-level list.
func (m *Message) AddToolCall(tc *ToolCall) {
	m.ToolCalls = append(m.ToolCalls, tc)
}

// FindToolCall returns the top-level tool call with the given id, or nil.
func (m *Message) FindToolCall(id string) *ToolCall {
	for _, tc := range m.ToolCalls {
		if tc.ID == id {
			return tc
		}
	}
	return nil
}

// AddTask appends a spawned task.
func (m *Message) AddTask(task *SpawnedTask) {
	m.SpawnedTasks = append(m.SpawnedTasks, task)
}

// FindTask returns the spawned task with the given task id, or nil.
func (m *Message) FindTask(taskID string) *SpawnedTask {
	for _, st := range m.SpawnedTasks {
		if st.TaskID == taskID {
			return st
		}
	}
	return nil
}

// ReplaceTodos replaces the todo list wholesale. The server always sends
// full state, never a diff.
func (m *Message) ReplaceTodos(todos []Todo) {
	m.Todos = todos
}

// EnsureThinking returns the message's thinking state, creating it if
// reasoning begins for a message that did not start with one.
func (m *Message) EnsureThinking(now time.Time) *ThinkingState {
	if m.Thinking == nil {
		m.Thinking = NewThinkingState(now)
	}
	return m.Thinking
}

// Clone returns a deep copy of the message. The copy shares nothing
// mutable with the original, so a reader can hold it while the
// streaming reducer keeps folding events into the live message.
func (m *Message) Clone() *Message {
	c := *m
	if m.ToolCalls != nil {
		c.ToolCalls = make([]*ToolCall, len(m.ToolCalls))
		for i, tc := range m.ToolCalls {
			c.ToolCalls[i] = tc.Clone()
		}
	}
	if m.Thinking != nil {
		c.Thinking = m.Thinking.Clone()
	}
	if m.Todos != nil {
		c.Todos = append([]Todo(nil), m.Todos...)
	}
	if m.SpawnedTasks != nil {
		c.SpawnedTasks = make([]*SpawnedTask, len(m.SpawnedTasks))
		for i, st := range m.SpawnedTasks {
			c.SpawnedTasks[i] = st.Clone()
		}
	}
	if m.Files != nil {
		c.Files = append([]FileAttachment(nil), m.Files...)
	}
	return &c
}

// Preview returns a truncated single-line preview of the content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content, tool calls, or
// tasks to display.
func (m *Message) IsEmpty() bool {
	return m.Content == "" && len(m.ToolCalls) == 0 && len(m.SpawnedTasks) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
