// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the deepchat TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/model"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one message. User messages are compact
// right-leaning bubbles; assistant messages escalate through three
// layouts depending on the turn's scenario:
//
//	quick    - markdown content with any tool cards inline
//	agent    - thinking bubble, tool cards, and the spawned task tree
//	planning - everything agent shows plus the planner todo list
type MessageBubble struct {
	Message       *model.Message
	Width         int
	IsLatest      bool
	ShowTimestamp bool
	SpinnerFrame  string
	Markdown      *MarkdownRenderer
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleAssistant}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// SetIsLatest marks this as the latest message.
func (b *MessageBubble) SetIsLatest(latest bool) {
	b.IsLatest = latest
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		return b.renderGenericBubble()
	}
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrappedContent := wordWrap(content, maxContentWidth)

	contentWidth := minInt(maxLineWidth(wrappedContent)+4, b.Width-8)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth)

	bubble := bubbleStyle.Render(wrappedContent)

	// File attachments above the bubble
	if len(b.Message.Files) > 0 {
		cards := RenderFileCards(b.Message.Files, contentWidth, b.theme)
		bubble = lipgloss.JoinVertical(lipgloss.Left, cards, bubble)
	}

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render("you")

	if b.ShowTimestamp {
		if ts := b.renderTimestamp(); ts != "" {
			header += " " + ts
		}
	}

	// Right-align with left margin
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(
		lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Scenario-layered rendering
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	msg := b.Message
	var sections []string

	// Header: role + scenario badge + timestamp
	sections = append(sections, b.renderAssistantHeader())

	innerWidth := b.Width - 6
	if innerWidth < 24 {
		innerWidth = 24
	}

	// Thinking bubble for agent and planning turns
	if msg.Scenario >= model.ScenarioAgent && msg.Thinking != nil {
		if msg.Thinking.IsThinking || len(msg.Thinking.Steps) > 0 {
			tv := NewThinkingView(msg.Thinking, b.theme)
			tv.SetWidth(innerWidth)
			tv.SpinnerFrame = b.SpinnerFrame
			// Collapse steps once the turn has moved on to content
			tv.ShowSteps = msg.Thinking.IsThinking || msg.Content == ""
			sections = append(sections, tv.View())
		}
	}

	// Planner todo list, planning turns only
	if msg.Scenario == model.ScenarioPlanning && len(msg.Todos) > 0 {
		tl := NewTodoList(msg.Todos, b.theme)
		tl.SetWidth(innerWidth)
		sections = append(sections, tl.View())
	}

	// Top-level tool cards, flat for every scenario
	if len(msg.ToolCalls) > 0 {
		sections = append(sections, RenderToolCards(msg.ToolCalls, innerWidth, b.SpinnerFrame, b.theme))
	}

	// Spawned task tree
	if len(msg.SpawnedTasks) > 0 {
		tree := NewTaskTree(msg.SpawnedTasks, b.theme)
		tree.SetWidth(innerWidth)
		tree.SpinnerFrame = b.SpinnerFrame
		sections = append(sections, tree.View())
	}

	// Content body
	if body := b.renderAssistantContent(innerWidth); body != "" {
		sections = append(sections, body)
	}

	// Agent-produced files
	if len(msg.Files) > 0 {
		sections = append(sections, RenderFileCards(msg.Files, innerWidth, b.theme))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAssistantHeader renders "assistant [scenario] 12:34 PM".
func (b *MessageBubble) renderAssistantHeader() string {
	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	header := roleStyle.Render("assistant")

	scenario := b.Message.Scenario.String()
	if b.Message.Scenario > model.ScenarioQuick {
		badge := b.theme.ScenarioStyle(scenario).Render("[" + scenario + "]")
		header += " " + badge
	}

	if b.ShowTimestamp {
		if ts := b.renderTimestamp(); ts != "" {
			header += " " + ts
		}
	}

	return header
}

// renderAssistantContent renders the accumulated markdown content in a
// soft purple bubble. Streaming turns get a blinking cursor.
func (b *MessageBubble) renderAssistantContent(innerWidth int) string {
	content := b.Message.Content
	if content == "" && !b.Message.IsStreaming {
		return ""
	}

	maxContentWidth := innerWidth - 6
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	var rendered string
	if b.Markdown != nil && !b.Message.IsStreaming {
		// Full markdown pass once the turn settled
		b.Markdown.SetWidth(maxContentWidth)
		rendered = b.Markdown.Render(content)
	} else {
		// While streaming: cheap wrap with fenced-code styling only
		rendered = ParseCodeBlocks(wordWrap(content, maxContentWidth), maxContentWidth)
		if b.Message.IsStreaming {
			cursorStyle := lipgloss.NewStyle().
				Foreground(styles.Purple).
				Blink(true)
			rendered += cursorStyle.Render("_")
		}
	}

	contentWidth := minInt(maxLineWidth(rendered)+4, innerWidth)
	if contentWidth < 10 {
		contentWidth = 10
	}

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.AssistantBubbleBorder).
		Padding(0, 2).
		MaxWidth(innerWidth)

	return bubbleStyle.Render(rendered)
}

// ==========================================================================
// GENERIC BUBBLE - Fallback for unknown roles
// ==========================================================================

func (b *MessageBubble) renderGenericBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 10
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrappedContent := wordWrap(content, maxContentWidth)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 2)

	return bubbleStyle.Render(wrappedContent)
}

// ==========================================================================
// HELPER METHODS
// ==========================================================================

// renderTimestamp renders a dimmed timestamp.
func (b *MessageBubble) renderTimestamp() string {
	ts := b.Message.Timestamp
	if ts.IsZero() {
		return ""
	}

	timestampStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	now := time.Now()
	var formatted string

	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		formatted = formatTime(ts)
	} else {
		formatted = formatDate(ts) + ", " + formatTime(ts)
	}

	return timestampStyle.Render(formatted)
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the conversation transcript.
type MessageList struct {
	Messages       []*model.Message
	Width          int
	ShowTimestamps bool
	SpinnerFrame   string
	Markdown       *MarkdownRenderer
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		Markdown:       NewMarkdownRenderer(74),
		theme:          theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []*model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)

		return emptyStyle.Render("No messages yet. Start a conversation!")
	}

	var bubbles []string

	for i, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.SpinnerFrame = ml.SpinnerFrame
		bubble.Markdown = ml.Markdown
		bubble.SetIsLatest(i == len(ml.Messages)-1)

		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n\n")
}
