// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversations implements the conversation list screen for
// the deepchat TUI: a filterable sidebar over the backend's
// conversation index with create, rename and delete, plus selection
// handoff to the chat screen.
//
// The last-selected conversation persists in the local state store so
// the next session reopens where the user left off.
package conversations
