// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the slash command system for the deepchat
// TUI: a registry of built-in commands plus dynamically registered agent
// commands, a parser for "/name args" input, and tab completion.
//
// Built-in commands (help, new, threads, rename, export, copy, attach,
// logout, quit) are handled by the chat screen locally. Agent commands
// (for example "/research find papers on X") are registered from the
// server's agent list and route the remaining text to that agent as a
// chat message.
//
// Built-ins shadow agent commands of the same name.
package commands
