// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// =============================================================================
// CONVERSATION TYPES
// =============================================================================

// ConversationSummary is the listing view of a conversation.
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Conversation is the full conversation record. ThreadID links the
// conversation to its chat thread for history loading and new turns.
type Conversation struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationList is the response of the list endpoint.
type ConversationList struct {
	Conversations []ConversationSummary `json:"conversations"`
	Total         int                   `json:"total"`
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// ListConversations returns the current user's conversations, most
// recently updated first.
func (c *Client) ListConversations(ctx context.Context, limit, offset int) (*ConversationList, error) {
	if limit <= 0 {
		limit = 50
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var list ConversationList
	if err := c.doJSON(ctx, http.MethodGet, "/api/conversations?"+params.Encode(), nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return &list, nil
}

// CreateConversation creates a conversation with the given title. An
// empty title gets the backend default.
func (c *Client) CreateConversation(ctx context.Context, title string) (*Conversation, error) {
	if title == "" {
		title = "New Conversation"
	}
	body := map[string]string{"title": title}

	var conv Conversation
	if err := c.doJSON(ctx, http.MethodPost, "/api/conversations", body, &conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}

// GetConversation fetches a conversation by ID.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	if err := c.doJSON(ctx, http.MethodGet, "/api/conversations/"+url.PathEscape(id), nil, &conv); err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

// RenameConversation updates a conversation's title.
func (c *Client) RenameConversation(ctx context.Context, id, title string) (*Conversation, error) {
	body := map[string]string{"title": title}

	var conv Conversation
	if err := c.doJSON(ctx, http.MethodPatch, "/api/conversations/"+url.PathEscape(id), body, &conv); err != nil {
		return nil, fmt.Errorf("failed to rename conversation: %w", err)
	}
	return &conv, nil
}

// DeleteConversation removes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/conversations/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
