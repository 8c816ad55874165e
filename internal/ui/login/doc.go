// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the login screen for the deepchat TUI: a
// two-field credential form that authenticates against the backend and
// hands the session to the root model via LoggedInMsg.
//
// The password field never echoes. Failed attempts keep the form
// filled except for the password, matching the web client's behavior.
package login
