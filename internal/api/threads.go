// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// THREADS
// =============================================================================

// threadCreateResponse is the thread creation response body.
type threadCreateResponse struct {
	ThreadID string `json:"thread_id"`
}

// CreateThread creates a new chat thread and returns its ID. Threads are
// created lazily on the first send of a session.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	var resp threadCreateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/threads", nil, &resp); err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	return resp.ThreadID, nil
}

// HistoryTurn is one persisted turn of a thread. History carries role
// and content only; streaming detail is not persisted.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// threadHistoryResponse is the history endpoint's envelope.
type threadHistoryResponse struct {
	Messages []HistoryTurn `json:"messages"`
}

// ThreadHistory returns the persisted turns of a thread, oldest first.
func (c *Client) ThreadHistory(ctx context.Context, threadID string) ([]HistoryTurn, error) {
	var resp threadHistoryResponse
	path := "/api/threads/" + url.PathEscape(threadID) + "/history"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to load thread history: %w", err)
	}
	return resp.Messages, nil
}

// =============================================================================
// AGENTS AND SKILLS
// =============================================================================

// Agent describes a registered agent the user can route a turn to with a
// slash command ("/research ...").
type Agent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DisplayName returns the agent name in title case for UI listings.
func (a Agent) DisplayName() string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(a.Name, "_", " "))
}

// Skill describes a registered skill.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Agents returns the backend's registered agents.
func (c *Client) Agents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	if err := c.doJSON(ctx, http.MethodGet, "/api/agents", nil, &agents); err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return agents, nil
}

// Skills returns the backend's registered skills.
func (c *Client) Skills(ctx context.Context) ([]Skill, error) {
	var skills []Skill
	if err := c.doJSON(ctx, http.MethodGet, "/api/skills", nil, &skills); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}
