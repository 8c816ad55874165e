// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"time"
)

// =============================================================================
// AUTH TYPES
// =============================================================================

// UserRole is the authorization role of an account.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserStatus is the activation state of an account.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
)

// UserInfo describes an account as reported by the backend.
type UserInfo struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsAdmin reports whether the account has the admin role.
func (u *UserInfo) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// loginRequest is the body for the login endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the login endpoint's response body. The session
// itself arrives as a cookie and lands in the client's jar.
type loginResponse struct {
	User    UserInfo `json:"user"`
	Message string   `json:"message"`
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login authenticates with the backend. On success the session cookie is
// stored in the client's jar and the authenticated user is returned.
func (c *Client) Login(ctx context.Context, username, password string) (*UserInfo, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// CurrentUser returns the account for the current session. Returns an
// error satisfying errors.Is(err, ErrUnauthorized) when the session is
// missing or expired.
func (c *Client) CurrentUser(ctx context.Context) (*UserInfo, error) {
	var user UserInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
