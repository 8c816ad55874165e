// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chunkedReader yields the underlying data in fixed-size chunks so tests
// can exercise arbitrary chunk boundaries, including mid-line splits.
type chunkedReader struct {
	data []byte
	pos  int
	size int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := r.size
	if n > len(p) {
		n = len(p)
	}
	if r.pos+n > len(r.data) {
		n = len(r.data) - r.pos
	}
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

// drainEvents reads every decodable event from the stream.
func drainEvents(t *testing.T, r io.Reader) []Event {
	t.Helper()
	reader := NewSSEReader(r)
	var events []Event
	for {
		name, data, err := reader.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if ev, ok := DecodeEvent(name, data); ok {
			events = append(events, ev)
		}
	}
}

// =============================================================================
// SSE READER TESTS
// =============================================================================

func TestSSEReaderBasicFrames(t *testing.T) {
	stream := "event: text_delta\n" +
		"data: {\"text\":\"Hello\"}\n" +
		"\n" +
		"event: done\n" +
		"data: {}\n" +
		"\n"

	events := drainEvents(t, strings.NewReader(stream))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	td, ok := events[0].(TextDelta)
	if !ok || td.Text != "Hello" {
		t.Errorf("events[0] = %#v", events[0])
	}
	if _, ok := events[1].(Done); !ok {
		t.Errorf("events[1] = %#v", events[1])
	}
}

func TestSSEReaderChunkSplitInvariant(t *testing.T) {
	// The decoded event sequence must be identical no matter where the
	// chunk boundaries fall, including mid-line and mid-JSON splits.
	stream := "event: text_delta\n" +
		"data: {\"text\":\"hi\"}\n" +
		"\n" +
		": keepalive\n" +
		"event: thinking\n" +
		"data: {\"type\":\"planning\",\"content\":\"step 1\"}\n" +
		"\n" +
		"event: done\n" +
		"data: {}\n" +
		"\n"

	want := drainEvents(t, strings.NewReader(stream))
	if len(want) != 3 {
		t.Fatalf("baseline decoded %d events, want 3", len(want))
	}

	for size := 1; size <= len(stream); size++ {
		got := drainEvents(t, &chunkedReader{data: []byte(stream), size: size})
		if len(got) != len(want) {
			t.Fatalf("chunk size %d: got %d events, want %d", size, len(got), len(want))
		}
		for i := range want {
			if fmt.Sprintf("%#v", got[i]) != fmt.Sprintf("%#v", want[i]) {
				t.Errorf("chunk size %d: event %d = %#v, want %#v", size, i, got[i], want[i])
			}
		}
	}
}

func TestSSEReaderMidLineSplit(t *testing.T) {
	// Two chunks splitting `data: {"text":"hi"}` mid-JSON must still
	// yield exactly one text_delta event.
	stream := "event: text_delta\ndata: {\"te" + "xt\":\"hi\"}\n\n"
	events := drainEvents(t, &chunkedReader{data: []byte(stream), size: 25})

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	td, ok := events[0].(TextDelta)
	if !ok || td.Text != "hi" {
		t.Errorf("event = %#v", events[0])
	}
}

func TestSSEReaderMalformedDataDropped(t *testing.T) {
	// Invalid JSON drops the frame without affecting later frames.
	stream := "event: text_delta\n" +
		"data: {not json\n" +
		"\n" +
		"event: text_delta\n" +
		"data: {\"text\":\"ok\"}\n" +
		"\n"

	events := drainEvents(t, strings.NewReader(stream))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if td := events[0].(TextDelta); td.Text != "ok" {
		t.Errorf("text = %q, want ok", td.Text)
	}
}

func TestSSEReaderDataWithoutEventIgnored(t *testing.T) {
	stream := "data: {\"text\":\"orphan\"}\n" +
		"\n" +
		"event: text_delta\n" +
		"data: {\"text\":\"ok\"}\n" +
		"\n"

	events := drainEvents(t, strings.NewReader(stream))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestSSEReaderCommentsAndBlanksIgnored(t *testing.T) {
	stream := ": ping\n" +
		"\n" +
		": ping\n" +
		"event: done\n" +
		"data: {}\n" +
		"\n"

	events := drainEvents(t, strings.NewReader(stream))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestSSEReaderIncompleteTrailingLineDropped(t *testing.T) {
	// No trailing newline on the data line: the frame is incomplete and
	// must be dropped, not flushed.
	stream := "event: text_delta\ndata: {\"text\":\"partial\"}"
	events := drainEvents(t, strings.NewReader(stream))
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestSSEReaderCRLFLines(t *testing.T) {
	stream := "event: text_delta\r\ndata: {\"text\":\"hi\"}\r\n\r\n"
	events := drainEvents(t, strings.NewReader(stream))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

// =============================================================================
// EVENT DECODING TESTS
// =============================================================================

func TestDecodeEventUnknownKind(t *testing.T) {
	if _, ok := DecodeEvent("shiny_new_event", []byte(`{}`)); ok {
		t.Error("unknown event kind should not decode")
	}
}

func TestDecodeEventAllKinds(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"text_delta", `{"text":"hi"}`},
		{"tool_call_start", `{"id":"c1","name":"query","args":{"sql":"select 1"}}`},
		{"tool_call_result", `{"id":"c1","name":"query","status":"success","output":"42"}`},
		{"thinking", `{"type":"planning","content":"step"}`},
		{"todos_updated", `{"todos":[{"content":"A","status":"pending"}],"timestamp":"2025-01-01T00:00:00Z"}`},
		{"task_spawned", `{"task_id":"t1","subagent_type":"sql","description":"query db"}`},
		{"task_completed", `{"task_id":"t1","duration_ms":500,"status":"success"}`},
		{"error", `{"message":"boom"}`},
		{"done", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := DecodeEvent(tt.name, []byte(tt.data))
			if !ok {
				t.Fatalf("DecodeEvent(%q) failed", tt.name)
			}
			if ev.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", ev.Name(), tt.name)
			}
		})
	}
}

func TestDecodeEventTaskAssociation(t *testing.T) {
	ev, ok := DecodeEvent("tool_call_start", []byte(`{"id":"c1","task_id":"t1","name":"query","args":{}}`))
	if !ok {
		t.Fatal("decode failed")
	}
	start := ev.(ToolCallStart)
	if start.TaskID != "t1" || start.Tool != "query" {
		t.Errorf("start = %#v", start)
	}
}

// =============================================================================
// STREAM CHAT TESTS
// =============================================================================

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestStreamChatDeliversEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "event: text_delta\ndata: {\"text\":\"Hello\"}\n\n")
		io.WriteString(w, "event: done\ndata: {}\n\n")
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	var events []Event
	err := c.StreamChat(context.Background(), ChatRequest{ThreadID: "th1", Message: "hi"}, func(ev Event) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}

func TestStreamChatStopsAfterDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "event: done\ndata: {}\n\n")
		// Anything after done must not be delivered.
		io.WriteString(w, "event: text_delta\ndata: {\"text\":\"late\"}\n\n")
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	var events []Event
	err := c.StreamChat(context.Background(), ChatRequest{ThreadID: "th1", Message: "hi"}, func(ev Event) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (done only)", len(events))
	}
	if _, ok := events[0].(Done); !ok {
		t.Errorf("events[0] = %#v, want Done", events[0])
	}
}

func TestStreamChatNon2xxFailsBeforeEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"detail":"upstream unavailable"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	delivered := 0
	err := c.StreamChat(context.Background(), ChatRequest{ThreadID: "th1", Message: "hi"}, func(ev Event) {
		delivered++
	})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Errorf("err = %v", err)
	}
	if delivered != 0 {
		t.Errorf("delivered %d events before failure, want 0", delivered)
	}
}

func TestStreamChatCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "event: text_delta\ndata: {\"text\":\"partial\"}\n\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	err := c.StreamChat(ctx, ChatRequest{ThreadID: "th1", Message: "hi"}, func(ev Event) {
		// Cancel after the first folded event; the loop must exit with
		// ctx.Err() without losing the already-delivered event.
		cancel()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
