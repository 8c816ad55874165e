// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/deepchat-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a transcript as a Markdown document with a
// metadata header, per-role sections, and tool call summaries.
type MarkdownExporter struct{}

// Export converts the transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	if len(t.Messages) == 0 {
		return nil, fmt.Errorf("transcript has no messages")
	}

	title := t.Title
	if title == "" {
		title = "Conversation"
	}

	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n")
	if t.Agent != "" {
		sb.WriteString("- **Agent**: " + t.Agent + "\n")
	}
	sb.WriteString(fmt.Sprintf("- **Messages**: %d\n", len(t.Messages)))
	sb.WriteString("- **Exported**: " + time.Now().Format("2006-01-02 15:04") + "\n\n")

	for _, msg := range t.Messages {
		sb.WriteString("## " + roleLabel(msg.Role))
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" <sub>" + msg.Timestamp.Format("15:04:05") + "</sub>")
		}
		sb.WriteString("\n\n")

		for _, f := range msg.Files {
			sb.WriteString("- attached: " + f.Filename + "\n")
		}
		if len(msg.Files) > 0 {
			sb.WriteString("\n")
		}

		if msg.Thinking != nil && msg.Thinking.DurationSeconds > 0 {
			sb.WriteString(fmt.Sprintf("*Thought for %.1fs*\n\n", float64(msg.Thinking.DurationSeconds)))
		}

		if msg.Content != "" {
			sb.WriteString(msg.Content + "\n\n")
		}

		for _, tc := range msg.ToolCalls {
			sb.WriteString(fmt.Sprintf("> tool %s (%s)\n\n", tc.Name, toolStatus(tc.Status)))
		}

		for _, todo := range msg.Todos {
			sb.WriteString("- " + todoCheckbox(todo.Status) + " " + todo.Content + "\n")
		}
		if len(msg.Todos) > 0 {
			sb.WriteString("\n")
		}

		for _, task := range msg.SpawnedTasks {
			sb.WriteString(fmt.Sprintf("> task %s: %s (%s)\n\n",
				task.SubagentType, task.Description, task.Status))
		}
	}
	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string { return ".md" }

func roleLabel(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "You"
	case model.RoleAssistant:
		return "Assistant"
	default:
		return string(role)
	}
}

func toolStatus(status model.ToolCallStatus) string {
	switch status {
	case model.ToolCallError:
		return "error"
	case model.ToolCallRunning:
		return "running"
	default:
		return "ok"
	}
}

func todoCheckbox(status model.TodoStatus) string {
	if status == model.TodoCompleted {
		return "[x]"
	}
	return "[ ]"
}
