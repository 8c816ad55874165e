// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the deepchat TUI.

This package contains a collection of styled components built on top of the
Bubble Tea and Lip Gloss libraries. Each component is designed to be visually
polished and consistent with the deepchat design language.

# Core Components

## Input Components

InputArea (input.go) - Styled text input with character counter.
Sidebar (sidebar.go) - Conversation list with fuzzy filtering.

## Display Components

Header (header.go) - Application header with agent name and scenario badge.
StatusBar (statusbar.go) - Bottom status bar with connection state, uploads, and shortcuts.
MessageBubble (message.go) - Scenario-layered message bubbles for chat messages.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma.
MarkdownRenderer (markdown.go) - Glamour-backed markdown rendering for settled turns.

## Turn Structure

ThinkingView (thinking.go) - Reasoning bubble with elapsed time and step log.
ToolCard (toolcard.go) - Tool invocation cards with live status and output preview.
TaskTree (tasktree.go) - Spawned sub-agent tasks with nested tool calls.
TodoList (todolist.go) - Planner checklist for planning turns.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner with selectable styles.
FileCard / UploadCard (filecard.go) - File attachments and upload progress.
ErrorBox (errorbox.go) - Dismissible error display with suggestions.

# Key Types

## Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetAgent("scout")
	view := header.View()

## Bubble Tea Integration

Stateful components follow the Bubble Tea Model shape:

	type Component interface {
		Init() tea.Cmd
		Update(tea.Msg) (Component, tea.Cmd)
		View() string
	}

Pure render components (MessageBubble, ToolCard, TaskTree, TodoList) expose
only View() and are rebuilt from model state on every frame.

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() / fmtPercent() - Formatted counters and percentages
  - formatElapsed() / formatDurationMs() - Human-readable durations
  - formatBytes() - File size formatting
*/
package components
