// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local client-side persistence for deepchat.
//
// Conversations themselves live on the server; this package only stores
// what belongs to this machine: small UI state in SQLite and the login
// session token encrypted at rest.
//
// # Key Types
//
//   - StateStore: SQLite-backed key/value state (selected conversation,
//     sidebar layout, last agent)
//   - SessionStore: encrypted persistence for the backend session token
//
// # Usage
//
// Persist and restore UI state:
//
//	st, err := storage.OpenDefaultStateStore()
//	st.SetSelectedConversation(conv.ID)
//	id := st.SelectedConversation()
//
// Persist the login session:
//
//	ss, err := storage.NewDefaultSessionStore()
//	err = ss.Save(client.SessionToken())
//	token, err := ss.Load()
//
// # Storage Location
//
// Everything is stored under ~/.deepchat/.
package storage
