// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local client-side persistence for deepchat:
// UI state that should survive restarts and the encrypted session token.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// STATE STORE
// =============================================================================

// Well-known state keys.
const (
	KeySelectedConversation = "selected_conversation_id"
	KeySidebarCollapsed     = "sidebar_collapsed"
	KeyLastAgent            = "last_agent"
)

// ErrStateNotFound is returned when a state key has no value.
var ErrStateNotFound = errors.New("state key not found")

// StateStore persists small client-side state in a local SQLite
// database (~/.deepchat/state.db): which conversation was open, sidebar
// layout, last agent selection. Losing it is harmless; everything that
// matters lives on the server.
type StateStore struct {
	db *sql.DB
}

// OpenStateStore opens (and if needed creates) the state database at
// the given path.
func OpenStateStore(path string) (*StateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state schema: %w", err)
	}

	return &StateStore{db: db}, nil
}

// OpenDefaultStateStore opens the state database in the deepchat config
// directory.
func OpenDefaultStateStore() (*StateStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	return OpenStateStore(filepath.Join(home, ".deepchat", "state.db"))
}

// Close closes the underlying database.
func (s *StateStore) Close() error {
	return s.db.Close()
}

// Get returns the value for a key, or ErrStateNotFound.
func (s *StateStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value for a key, replacing any previous value.
func (s *StateStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *StateStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}

// =============================================================================
// TYPED HELPERS
// =============================================================================

// SelectedConversation returns the conversation that was open when the
// client last ran, or "" if none was recorded.
func (s *StateStore) SelectedConversation() string {
	v, err := s.Get(KeySelectedConversation)
	if err != nil {
		return ""
	}
	return v
}

// SetSelectedConversation records the open conversation. An empty id
// clears the record.
func (s *StateStore) SetSelectedConversation(id string) error {
	if id == "" {
		return s.Delete(KeySelectedConversation)
	}
	return s.Set(KeySelectedConversation, id)
}

// SidebarCollapsed returns the persisted sidebar layout.
func (s *StateStore) SidebarCollapsed() bool {
	v, err := s.Get(KeySidebarCollapsed)
	if err != nil {
		return false
	}
	collapsed, _ := strconv.ParseBool(v)
	return collapsed
}

// SetSidebarCollapsed records the sidebar layout.
func (s *StateStore) SetSidebarCollapsed(collapsed bool) error {
	return s.Set(KeySidebarCollapsed, strconv.FormatBool(collapsed))
}

// LastAgent returns the persisted sticky agent selection.
func (s *StateStore) LastAgent() string {
	v, err := s.Get(KeyLastAgent)
	if err != nil {
		return ""
	}
	return v
}

// SetLastAgent records the sticky agent selection.
func (s *StateStore) SetLastAgent(agent string) error {
	if agent == "" {
		return s.Delete(KeyLastAgent)
	}
	return s.Set(KeyLastAgent, agent)
}
