// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns the conversation turn lifecycle: folding streamed
// events into the message model, driving send/cancel for a turn, and
// managing file uploads attached to outgoing messages.
//
// The reducer is a pure fold over decoded events; the controller wires
// it to the API client and enforces the one-turn-at-a-time rule. Both
// take an injectable clock so tests are deterministic.
package chat
