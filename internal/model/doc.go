// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures that accumulate over a chat
// turn: the message list, per-message tool calls, thinking state, todo
// list, and spawned sub-agent tasks.
//
// The structures in this package are plain state holders. All mutation
// during streaming goes through the reducer in internal/chat, which owns
// the single-writer guarantee. Methods here enforce the local invariants
// (one-way status transitions, monotonic scenario promotion, append-only
// content) so the reducer cannot violate them by accident.
package model
