// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the deepchat TUI.

This package defines the color palette, theme, and animation primitives used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for assistant messages and selections
  - Cyan - Brand color for info, commands, and user highlights
  - Emerald - Success states, completed tasks and todos
  - Amber - Warnings and the planning scenario accent
  - Rose - Errors and critical warnings

## Scenario Accents

Each assistant reply renders in one of three escalating layouts, marked by
an accent color:

	ScenarioQuickColor    - Direct answers (cyan)
	ScenarioAgentColor    - Tool-using turns (purple)
	ScenarioPlanningColor - Deep-research turns with todos (amber)

## Semantic Colors

Message bubbles, tool results, and UI elements use semantic color tokens:

	UserBubbleBg      - Background for user messages
	AssistantBubbleBg - Background for assistant messages
	ToolSuccessFg     - Text for successful tool results
	ToolErrorFg       - Text for failed tool results

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	accent := theme.ScenarioStyle("planning")

# Animation System (animations.go)

Pre-defined spinner styles:

	BrailleSpinner - Smooth 10-frame spinner
	DotsSpinner    - Classic three-dot animation (thinking indicator)
	LineSpinner    - Simple line rotation

RenderProgressBar draws upload progress bars and RenderTreeLine draws the
ASCII connectors for the spawned task tree.

# Usage Example

	import "github.com/jeranaias/deepchat-tui/internal/ui/styles"

	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)
*/
package styles
