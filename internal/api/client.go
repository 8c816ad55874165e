// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the backend client.
const (
	// DefaultTimeout is the default timeout for non-streaming requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps response bodies read into memory.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// defaultRequestsPerSecond throttles outbound requests so a
	// misbehaving view cannot hammer the backend.
	defaultRequestsPerSecond = 10
)

// SessionCookieName is the cookie the backend issues at login.
const SessionCookieName = "session"

// Error variables for common backend errors.
var (
	// ErrUnauthorized indicates the session is missing or expired.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrForbidden indicates the current user lacks the required role.
	ErrForbidden = errors.New("access denied")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
)

// APIError represents an error response from the backend. The backend
// reports failures as {"detail": "..."} with a non-2xx status.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// Is maps well-known statuses onto the sentinel errors so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Client is a client for the Deep Research backend. All requests share a
// cookie jar, so a successful Login authenticates every subsequent call.
type Client struct {
	baseURL string
	jar     *cookiejar.Jar
	limiter *rate.Limiter

	// httpClient serves request/response calls with a timeout.
	httpClient *http.Client

	// streamClient serves streaming requests; no timeout, lifetime is
	// controlled by the caller's context.
	streamClient *http.Client

	// onUnauthorized, when set, is invoked whenever any request comes
	// back 401. The UI uses it to drop to the login screen when the
	// session expires mid-flight.
	onUnauthorized func()
}

// NewClient creates a client for the given base URL (e.g.
// "https://chat.example.com"). The URL must parse; a trailing slash is
// trimmed.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &Client{
		baseURL: baseURL,
		jar:     jar,
		limiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultRequestsPerSecond),
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   DefaultTimeout,
		},
		streamClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			// No timeout for streaming, controlled via context.
		},
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetUnauthorizedHandler registers a callback invoked on any 401
// response. Pass nil to clear.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// SessionToken returns the current session cookie value, or empty if the
// client is not authenticated.
func (c *Client) SessionToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

// SetSessionToken installs a previously saved session cookie, letting a
// restart skip the login screen if the session is still valid.
func (c *Client) SetSessionToken(token string) {
	if token == "" {
		return
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	c.jar.SetCookies(u, []*http.Cookie{{
		Name:  SessionCookieName,
		Value: token,
		Path:  "/",
	}})
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// doJSON performs a request with an optional JSON body and decodes the
// JSON response into out (if out is non-nil). Non-2xx responses become
// *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFromResponse builds an *APIError from a non-2xx response and fires
// the unauthorized handler on 401.
func (c *Client) errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err == nil && len(data) > 0 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &detail) == nil && detail.Detail != "" {
			apiErr.Detail = detail.Detail
		}
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return apiErr
}
