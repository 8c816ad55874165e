// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/deepchat-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter dumps the transcript's view model. The output keeps
// every streaming detail (tool calls, thinking, todos, spawned tasks)
// so other tools can re-process a conversation.
type JSONExporter struct{}

type jsonTranscript struct {
	Title      string        `json:"title"`
	Agent      string        `json:"agent,omitempty"`
	ExportedAt time.Time     `json:"exported_at"`
	Messages   []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	ID           string                 `json:"id"`
	Role         model.Role             `json:"role"`
	Timestamp    time.Time              `json:"timestamp"`
	Content      string                 `json:"content"`
	Scenario     string                 `json:"scenario,omitempty"`
	ToolCalls    []*model.ToolCall      `json:"tool_calls,omitempty"`
	Thinking     *model.ThinkingState   `json:"thinking,omitempty"`
	Todos        []model.Todo           `json:"todos,omitempty"`
	SpawnedTasks []*model.SpawnedTask   `json:"spawned_tasks,omitempty"`
	Files        []model.FileAttachment `json:"files,omitempty"`
}

// Export converts the transcript to indented JSON.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}

	out := jsonTranscript{
		Title:      t.Title,
		Agent:      t.Agent,
		ExportedAt: time.Now().UTC(),
		Messages:   make([]jsonMessage, 0, len(t.Messages)),
	}
	for _, msg := range t.Messages {
		jm := jsonMessage{
			ID:           msg.ID,
			Role:         msg.Role,
			Timestamp:    msg.Timestamp,
			Content:      msg.Content,
			ToolCalls:    msg.ToolCalls,
			Thinking:     msg.Thinking,
			Todos:        msg.Todos,
			SpawnedTasks: msg.SpawnedTasks,
			Files:        msg.Files,
		}
		if msg.Role == model.RoleAssistant {
			jm.Scenario = msg.Scenario.String()
		}
		out.Messages = append(out.Messages, jm)
	}
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }
