// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command registry for the deepchat TUI.
//
// This file implements parsing of slash command input: recognizing
// commands, splitting the command name from its argument text, and
// extracting the partial token under the cursor for tab completion.
package commands

import (
	"strings"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is the outcome of parsing one line of input.
type ParseResult struct {
	// IsCommand is true when the input starts with "/" followed by a
	// command token. A bare "/" is not a command.
	IsCommand bool

	// Command is the resolved command, or nil for an unknown name.
	Command *Command

	// Name is the raw command token without the leading slash.
	Name string

	// Rest is the argument text after the command token, trimmed.
	Rest string
}

// =============================================================================
// PARSER
// =============================================================================

// Parser resolves slash command input against a registry.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser backed by the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse interprets one line of input. Non-command input returns a
// zero-value result with IsCommand false.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	if !IsCommand(input) {
		return ParseResult{}
	}

	name, rest, _ := strings.Cut(input[1:], " ")
	return ParseResult{
		IsCommand: true,
		Command:   p.registry.Get(name),
		Name:      strings.ToLower(name),
		Rest:      strings.TrimSpace(rest),
	}
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// IsCommand reports whether the input looks like a slash command. A
// bare "/" or "/ text" is not a command.
func IsCommand(input string) bool {
	input = strings.TrimSpace(input)
	if len(input) < 2 || input[0] != '/' {
		return false
	}
	return input[1] != ' '
}

// ExtractCommandName returns the command token of a slash command
// without the leading slash, or "" for non-command input.
func ExtractCommandName(input string) string {
	if !IsCommand(input) {
		return ""
	}
	name, _, _ := strings.Cut(strings.TrimSpace(input)[1:], " ")
	return strings.ToLower(name)
}

// PartialCommand returns the partial command token being typed, with
// the leading slash stripped, and ok=true while the cursor is still
// inside the command token. Once a space follows the token the command
// is complete and ok is false.
func PartialCommand(input string) (partial string, ok bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}
	if strings.ContainsRune(input, ' ') {
		return "", false
	}
	return strings.ToLower(input[1:]), true
}
