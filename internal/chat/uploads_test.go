// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/model"
)

func newUploadServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"detail": "upload rejected"})
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart body: %v", err)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"file_id": "f1", "filename": header.Filename, "size": header.Size,
			"content_type": "text/csv", "download_url": "/api/files/f1/" + header.Filename,
		})
	}))
}

func newTestUploadManager(t *testing.T, srv *httptest.Server) *UploadManager {
	t.Helper()
	client, err := api.NewClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return NewUploadManager(client)
}

func waitUploadDone(t *testing.T, um *UploadManager) {
	t.Helper()
	waitFor(t, func() bool { return !um.Pending() }, "uploads to finish")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestUploadRejectsDisallowedType(t *testing.T) {
	um := NewUploadManager(nil)

	_, err := um.AddContent(context.Background(), "malware.exe", []byte("x"))
	if err == nil {
		t.Fatal("expected a validation error for .exe")
	}
	if !strings.Contains(err.Error(), "not allowed") {
		t.Errorf("error = %v", err)
	}
	if len(um.Uploads()) != 0 {
		t.Error("rejected file must not be tracked")
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	um := NewUploadManager(nil)

	big := make([]byte, MaxUploadSize+1)
	_, err := um.AddContent(context.Background(), "big.csv", big)
	if err == nil {
		t.Fatal("expected a size validation error")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("error = %v", err)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	um := NewUploadManager(nil)

	_, err := um.AddFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestUploadCompletes(t *testing.T) {
	srv := newUploadServer(t, http.StatusOK)
	defer srv.Close()

	um := newTestUploadManager(t, srv)

	path := filepath.Join(t.TempDir(), "report.csv")
	content := bytes.Repeat([]byte("row,1\n"), 100)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	up, err := um.AddFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	waitUploadDone(t, um)

	if up.State != UploadCompleted {
		t.Fatalf("state = %v (err=%v), want completed", up.State, up.Err)
	}
	if up.Sent != up.Size {
		t.Errorf("sent = %d, want %d", up.Sent, up.Size)
	}
	if up.Attachment == nil || up.Attachment.FileID != "f1" {
		t.Fatalf("attachment = %+v", up.Attachment)
	}
	if up.Attachment.Source != model.FileSourceUser {
		t.Errorf("source = %v, want user", up.Attachment.Source)
	}
}

func TestUploadFailure(t *testing.T) {
	srv := newUploadServer(t, http.StatusInternalServerError)
	defer srv.Close()

	um := newTestUploadManager(t, srv)

	up, err := um.AddContent(context.Background(), "report.csv", []byte("a,b\n"))
	if err != nil {
		t.Fatal(err)
	}
	waitUploadDone(t, um)

	if up.State != UploadFailed {
		t.Fatalf("state = %v, want error", up.State)
	}
	if up.Err == nil {
		t.Error("failed upload should record its error")
	}
	if up.Attachment != nil {
		t.Error("failed upload must not produce an attachment")
	}
}

func TestUploadParallel(t *testing.T) {
	srv := newUploadServer(t, http.StatusOK)
	defer srv.Close()

	um := newTestUploadManager(t, srv)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		name := string(rune('a'+i)) + ".csv"
		if _, err := um.AddContent(ctx, name, []byte("x,y\n")); err != nil {
			t.Fatal(err)
		}
	}
	waitUploadDone(t, um)

	ups := um.Uploads()
	if len(ups) != 5 {
		t.Fatalf("uploads = %d, want 5", len(ups))
	}
	for _, up := range ups {
		if up.State != UploadCompleted {
			t.Errorf("%s state = %v", up.Filename, up.State)
		}
	}
	// Order of tracking matches order of adding regardless of completion
	// order.
	if ups[0].Filename != "a.csv" || ups[4].Filename != "e.csv" {
		t.Errorf("order = %v ... %v", ups[0].Filename, ups[4].Filename)
	}
}

func TestUploadTakeCompleted(t *testing.T) {
	okSrv := newUploadServer(t, http.StatusOK)
	defer okSrv.Close()
	failSrv := newUploadServer(t, http.StatusInternalServerError)
	defer failSrv.Close()

	um := newTestUploadManager(t, okSrv)
	ctx := context.Background()

	if _, err := um.AddContent(ctx, "good.csv", []byte("x\n")); err != nil {
		t.Fatal(err)
	}
	waitUploadDone(t, um)

	umFail := newTestUploadManager(t, failSrv)
	if _, err := umFail.AddContent(ctx, "bad.csv", []byte("x\n")); err != nil {
		t.Fatal(err)
	}
	waitUploadDone(t, umFail)

	files := um.TakeCompleted()
	if len(files) != 1 || files[0].Filename != "good.csv" {
		t.Fatalf("files = %+v", files)
	}
	if len(um.Uploads()) != 0 {
		t.Error("taken uploads should be cleared")
	}

	if got := umFail.TakeCompleted(); len(got) != 0 {
		t.Errorf("failed upload leaked into attachments: %+v", got)
	}
	if len(umFail.Uploads()) != 1 {
		t.Error("failed upload should stay tracked for the user to see")
	}
}

func TestUploadRemove(t *testing.T) {
	srv := newUploadServer(t, http.StatusOK)
	defer srv.Close()

	um := newTestUploadManager(t, srv)
	up, err := um.AddContent(context.Background(), "detach.csv", []byte("x\n"))
	if err != nil {
		t.Fatal(err)
	}
	waitUploadDone(t, um)

	um.Remove(up.ID)
	if len(um.Uploads()) != 0 {
		t.Error("removed upload still tracked")
	}
}
