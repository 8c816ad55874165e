// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/deepchat-tui/internal/model"
	"github.com/jeranaias/deepchat-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the exportable snapshot of a conversation.
type Transcript struct {
	Title    string
	Agent    string
	Messages []*model.Message
}

// =============================================================================
// EXPORTER INTERFACE
// =============================================================================

// Exporter renders a transcript to a target format.
type Exporter interface {
	// Export returns the formatted transcript.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the extension for the format (e.g. ".md").
	FileExtension() string
}

// ForPath picks an exporter from the path's extension. Unknown and
// missing extensions get Markdown.
func ForPath(path string) Exporter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JSONExporter{}
	default:
		return &MarkdownExporter{}
	}
}

// =============================================================================
// FILE EXPORT
// =============================================================================

// DefaultFilename returns a timestamped markdown filename for exports
// that did not name a path.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("deepchat-%s.md", now.Format("2006-01-02-150405"))
}

// ToFile renders the transcript and writes it atomically. Returns the
// path written.
func ToFile(t *Transcript, path string) (string, error) {
	if t == nil || len(t.Messages) == 0 {
		return "", fmt.Errorf("nothing to export")
	}
	if path == "" {
		path = DefaultFilename(time.Now())
	}

	e := ForPath(path)
	data, err := e.Export(t)
	if err != nil {
		return "", fmt.Errorf("format transcript: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
