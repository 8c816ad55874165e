// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/model"
)

// =============================================================================
// UPLOAD CONSTANTS
// =============================================================================

// MaxUploadSize mirrors the backend's per-file limit. Oversized files
// are rejected locally before any network call.
const MaxUploadSize = 10 * 1024 * 1024

// allowedExtensions mirrors the backend's accepted file types.
var allowedExtensions = map[string]bool{
	".txt": true, ".md": true, ".json": true, ".csv": true,
	".pdf":  true,
	".doc":  true, ".docx": true,
	".ppt":  true, ".pptx": true,
	".xls":  true, ".xlsx": true,
}

// =============================================================================
// UPLOAD STATE
// =============================================================================

// UploadState is the per-file upload lifecycle.
type UploadState string

const (
	UploadRunning   UploadState = "uploading"
	UploadCompleted UploadState = "completed"
	UploadFailed    UploadState = "error"
)

// Upload tracks one in-flight or finished file upload. Fields other than
// State, Sent, Err and Attachment are fixed at creation.
type Upload struct {
	ID       string
	Filename string
	Size     int64
	State    UploadState

	// Sent is the number of bytes transferred so far.
	Sent int64

	// Err is set when State is UploadFailed.
	Err error

	// Attachment is set when State is UploadCompleted.
	Attachment *model.FileAttachment
}

// =============================================================================
// UPLOAD MANAGER
// =============================================================================

// UploadManager runs file uploads for the composer. Multiple files
// upload in parallel, each with its own state machine; the manager is
// independent of the chat stream and safe for concurrent use.
type UploadManager struct {
	client *api.Client
	notify func()

	mu      sync.Mutex
	order   []string
	uploads map[string]*Upload
}

// NewUploadManager creates a manager backed by the given API client.
func NewUploadManager(client *api.Client) *UploadManager {
	return &UploadManager{
		client:  client,
		uploads: make(map[string]*Upload),
	}
}

// SetNotify registers a hook invoked on every upload state or progress
// change so the UI can repaint.
func (um *UploadManager) SetNotify(fn func()) {
	um.notify = fn
}

// AddFile validates a local file and starts uploading it in the
// background. Validation failures (disallowed type, oversized, unreadable)
// are returned synchronously and nothing is enqueued.
func (um *UploadManager) AddFile(ctx context.Context, path string) (*Upload, error) {
	filename := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("file type %q is not allowed", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filename)
	}
	if info.Size() > MaxUploadSize {
		return nil, fmt.Errorf("file too large: maximum size is %dMB", MaxUploadSize/(1024*1024))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return um.start(ctx, filename, content), nil
}

// AddContent starts uploading in-memory content, applying the same
// validation as AddFile.
func (um *UploadManager) AddContent(ctx context.Context, filename string, content []byte) (*Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("file type %q is not allowed", ext)
	}
	if int64(len(content)) > MaxUploadSize {
		return nil, fmt.Errorf("file too large: maximum size is %dMB", MaxUploadSize/(1024*1024))
	}
	return um.start(ctx, filename, content), nil
}

func (um *UploadManager) start(ctx context.Context, filename string, content []byte) *Upload {
	up := &Upload{
		ID:       uuid.NewString(),
		Filename: filename,
		Size:     int64(len(content)),
		State:    UploadRunning,
	}

	um.mu.Lock()
	um.order = append(um.order, up.ID)
	um.uploads[up.ID] = up
	um.mu.Unlock()
	um.repaint()

	go um.run(ctx, up, content)
	return up
}

func (um *UploadManager) run(ctx context.Context, up *Upload, content []byte) {
	uploaded, err := um.client.UploadFile(ctx, up.Filename, bytes.NewReader(content), up.Size, func(sent, total int64) {
		um.mu.Lock()
		up.Sent = sent
		um.mu.Unlock()
		um.repaint()
	})

	um.mu.Lock()
	if err != nil {
		up.State = UploadFailed
		up.Err = err
	} else {
		up.State = UploadCompleted
		up.Sent = up.Size
		up.Attachment = &model.FileAttachment{
			FileID:      uploaded.FileID,
			Filename:    uploaded.Filename,
			Size:        uploaded.Size,
			ContentType: uploaded.ContentType,
			Source:      model.FileSourceUser,
			DownloadURL: uploaded.DownloadURL,
		}
	}
	um.mu.Unlock()
	um.repaint()
}

// Uploads returns all tracked uploads in the order they were added.
func (um *UploadManager) Uploads() []*Upload {
	um.mu.Lock()
	defer um.mu.Unlock()
	out := make([]*Upload, 0, len(um.order))
	for _, id := range um.order {
		out = append(out, um.uploads[id])
	}
	return out
}

// Remove drops an upload from tracking (e.g. the user detached the file
// before sending). The backend copy is left alone.
func (um *UploadManager) Remove(id string) {
	um.mu.Lock()
	defer um.mu.Unlock()
	delete(um.uploads, id)
	for i, v := range um.order {
		if v == id {
			um.order = append(um.order[:i], um.order[i+1:]...)
			break
		}
	}
}

// Pending reports whether any upload is still running.
func (um *UploadManager) Pending() bool {
	um.mu.Lock()
	defer um.mu.Unlock()
	for _, up := range um.uploads {
		if up.State == UploadRunning {
			return true
		}
	}
	return false
}

// TakeCompleted returns the attachments for every completed upload and
// clears them from tracking, ready to ride on the next send. Failed and
// still-running uploads stay tracked.
func (um *UploadManager) TakeCompleted() []model.FileAttachment {
	um.mu.Lock()
	defer um.mu.Unlock()

	var files []model.FileAttachment
	remaining := um.order[:0]
	for _, id := range um.order {
		up := um.uploads[id]
		if up.State == UploadCompleted {
			files = append(files, *up.Attachment)
			delete(um.uploads, id)
			continue
		}
		remaining = append(remaining, id)
	}
	um.order = remaining
	return files
}

func (um *UploadManager) repaint() {
	if um.notify != nil {
		um.notify()
	}
}
