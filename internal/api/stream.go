// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// =============================================================================
// SSE READER
// =============================================================================

// SSEReader parses Server-Sent Events from a stream.
//
// The backend frames events as:
//
//	event: <name>\n
//	data: <json>\n
//	\n
//
// The reader is tolerant by construction: blank lines and comment lines
// (": keepalive") are skipped, a data line with undecodable JSON drops
// the whole frame and resets, and a data line arriving without a
// preceding event line is ignored. Chunk boundaries in the underlying
// stream are invisible here because bufio reassembles lines.
type SSEReader struct {
	reader *bufio.Reader

	// currentEvent is the name from the most recent event line, consumed
	// by the next data line.
	currentEvent string
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		reader: bufio.NewReader(r),
	}
}

// Next reads the next complete frame and returns its event name and raw
// JSON payload. Returns io.EOF when the underlying stream ends; an
// incomplete trailing line is dropped, not flushed.
func (s *SSEReader) Next() (string, []byte, error) {
	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			// A partial line with no trailing newline is incomplete by
			// the framing convention and is dropped.
			if err == io.EOF {
				return "", nil, io.EOF
			}
			return "", nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Blank lines separate frames; comment lines are keepalives.
		if len(line) == 0 || line[0] == ':' {
			continue
		}

		if bytes.HasPrefix(line, []byte("event:")) {
			s.currentEvent = string(bytes.TrimSpace(line[len("event:"):]))
			continue
		}

		if bytes.HasPrefix(line, []byte("data:")) {
			// A data line is only meaningful after an event line.
			if s.currentEvent == "" {
				continue
			}
			name := s.currentEvent
			s.currentEvent = ""

			data := bytes.TrimSpace(line[len("data:"):])
			if !json.Valid(data) {
				// Malformed frame: drop it and keep decoding. The next
				// event line starts a fresh frame, so one bad payload
				// never desynchronizes the stream.
				continue
			}
			return name, data, nil
		}

		// Unknown field (id:, retry:, ...): ignore.
	}
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// ChatRequest is the body for the streaming chat endpoint.
type ChatRequest struct {
	ThreadID string   `json:"thread_id"`
	Message  string   `json:"message"`
	Agent    string   `json:"agent,omitempty"`
	Skill    string   `json:"skill,omitempty"`
	FileIDs  []string `json:"file_ids,omitempty"`
}

// EventCallback is invoked for each decoded event, in arrival order.
type EventCallback func(ev Event)

// StreamChat performs a streaming chat request and invokes the callback
// for every decoded event until the stream ends, the Done event arrives,
// or ctx is cancelled.
//
// A non-2xx initial response fails the whole call before any event is
// delivered. Events arriving after Done are not delivered. Malformed and
// unknown frames are dropped silently.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest, fn EventCallback) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	return c.processStream(ctx, resp.Body, fn)
}

// processStream reads frames until EOF, cancellation, or Done.
func (c *Client) processStream(ctx context.Context, body io.Reader, fn EventCallback) error {
	reader := NewSSEReader(body)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name, data, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			// A read error racing a cancel is reported as the
			// cancellation, which callers treat as a clean stop.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("stream read failed: %w", err)
		}

		ev, ok := DecodeEvent(name, data)
		if !ok {
			continue
		}

		fn(ev)

		// Done is the only normal terminal event; anything the server
		// sends after it is ignored by construction.
		if _, isDone := ev.(Done); isDone {
			return nil
		}
	}
}
