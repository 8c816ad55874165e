// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// =============================================================================
// USER MANAGEMENT (ADMIN ONLY)
// =============================================================================

// UserCreate is the body for creating an account.
type UserCreate struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// userListResponse is the list endpoint's envelope.
type userListResponse struct {
	Users []UserInfo `json:"users"`
}

// ListUsers returns all accounts. Requires the admin role; non-admins
// get an error satisfying errors.Is(err, ErrForbidden).
func (c *Client) ListUsers(ctx context.Context) ([]UserInfo, error) {
	var resp userListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return resp.Users, nil
}

// CreateUser creates an account. Admin only.
func (c *Client) CreateUser(ctx context.Context, user UserCreate) (*UserInfo, error) {
	var created UserInfo
	if err := c.doJSON(ctx, http.MethodPost, "/api/users", user, &created); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(userID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// SetUserStatus enables or disables an account. Admin only.
func (c *Client) SetUserStatus(ctx context.Context, userID string, status UserStatus) (*UserInfo, error) {
	body := map[string]UserStatus{"status": status}

	var updated UserInfo
	if err := c.doJSON(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(userID)+"/status", body, &updated); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	return &updated, nil
}
