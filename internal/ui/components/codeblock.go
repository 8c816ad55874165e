// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK
// =============================================================================

// CodeBlock renders one fenced code block from an assistant answer:
// chroma syntax highlighting, line numbers, a language badge, and a
// bordered container sized to the transcript width.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
}

// Render returns the styled block.
func (c CodeBlock) Render() string {
	code := strings.TrimSpace(c.Code)

	lang := c.Language
	if lang == "" {
		if lexer := lexers.Analyse(code); lexer != nil {
			lang = lexer.Config().Name
		}
	}

	numStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	var body []string
	for i, line := range strings.Split(highlight(code, lang), "\n") {
		// The line carries chroma's ANSI styling already; only the
		// number gets ours.
		body = append(body, numStyle.Render(strconv.Itoa(i+1))+line)
	}

	var header string
	if c.Language != "" {
		header = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true).
			Render(c.Language) + "\n"
	}

	width := c.MaxWidth - 4
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 2).
		MaxWidth(width).
		Render(header + strings.Join(body, "\n"))
}

// ParseCodeBlocks replaces ``` fences in markdown text with rendered
// code blocks, leaving the surrounding prose untouched. An unclosed
// fence at the end of a streaming message is rendered as if closed, so
// code stays highlighted while it is still arriving.
func ParseCodeBlocks(text string, maxWidth int) string {
	var out []string
	var code []string
	var lang string
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			if inFence {
				out = append(out, CodeBlock{Language: lang, Code: strings.Join(code, "\n"), MaxWidth: maxWidth}.Render())
				code, lang, inFence = nil, "", false
			} else {
				lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inFence = true
			}
		case inFence:
			code = append(code, line)
		default:
			out = append(out, line)
		}
	}
	if inFence && len(code) > 0 {
		out = append(out, CodeBlock{Language: lang, Code: strings.Join(code, "\n"), MaxWidth: maxWidth}.Render())
	}
	return strings.Join(out, "\n")
}

// highlight runs code through chroma for terminal output. Any failure
// falls back to the plain text; a transcript must never lose code over
// a highlighting problem.
func highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, it); err != nil {
		return code
	}
	return buf.String()
}
