// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// =============================================================================
// FILE UPLOAD
// =============================================================================

// UploadedFile is the storage backend's record of an uploaded file.
type UploadedFile struct {
	FileID      string `json:"file_id"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	DownloadURL string `json:"download_url"`
}

// ProgressFunc receives upload progress as bytes sent out of total.
type ProgressFunc func(sent, total int64)

// progressReader wraps a reader and reports cumulative bytes read.
type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.sent += int64(n)
		if pr.progress != nil {
			pr.progress(pr.sent, pr.total)
		}
	}
	return n, err
}

// UploadFile uploads a file via multipart form data. The progress
// callback, if non-nil, is invoked as the body is consumed by the
// transport. Uploads stream the multipart body through a pipe so large
// files are never held in memory whole.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader, size int64, progress ProgressFunc) (*UploadedFile, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, &progressReader{r: content, total: size, progress: progress}); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var uploaded UploadedFile
	if err := json.Unmarshal(data, &uploaded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &uploaded, nil
}

// =============================================================================
// FILE DOWNLOAD / PREVIEW
// =============================================================================

// FileContent fetches the raw bytes of an uploaded file for preview.
// Responses are capped at MaxResponseSize.
func (c *Client) FileContent(ctx context.Context, fileID string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/files/"+url.PathEscape(fileID)+"/content", nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", c.errorFromResponse(resp)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, MaxResponseSize)); err != nil {
		return nil, "", fmt.Errorf("failed to read file content: %w", err)
	}
	return buf.Bytes(), resp.Header.Get("Content-Type"), nil
}

// DownloadURL returns the absolute download URL for a file id reported
// by the backend (download_url fields are server-relative).
func (c *Client) DownloadURL(relative string) string {
	if relative == "" {
		return ""
	}
	u, err := url.Parse(relative)
	if err != nil || u.IsAbs() {
		return relative
	}
	return c.baseURL + relative
}
