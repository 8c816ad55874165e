// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the Deep Research backend.
//
// It covers session authentication, conversation and user management,
// agent/skill discovery, thread creation and history, multipart file
// upload with progress reporting, and the streaming chat endpoint.
//
// The streaming layer (stream.go, events.go) decodes the backend's
// text/event-stream responses into a closed set of typed events. The
// parser tolerates arbitrary chunk boundaries and silently drops
// malformed frames; the fold logic that consumes the events lives in
// internal/chat.
package api
