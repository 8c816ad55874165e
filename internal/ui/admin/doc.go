// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin implements the user management screen for the deepchat
// TUI. Admin accounts can list users, create accounts, toggle
// active/disabled status and delete users; the backend rejects
// everything here for non-admin sessions and those errors surface
// inline.
package admin
