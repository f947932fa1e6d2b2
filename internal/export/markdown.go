// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export converts chat transcripts to Markdown files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/enyst/fireside-chat/internal/config"
	"github.com/enyst/fireside-chat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// Markdown renders a transcript to Markdown. Each message becomes a
// heading with its role display name followed by the text verbatim;
// fenced code blocks in replies survive untouched.
func Markdown(msgs []model.Message) string {
	var sb strings.Builder

	sb.WriteString("# Fireside chat transcript\n\n")
	sb.WriteString(fmt.Sprintf("Exported: %s\n\n---\n\n", time.Now().Format("2006-01-02 15:04")))

	for _, msg := range msgs {
		sb.WriteString(fmt.Sprintf("### %s\n\n", msg.Role.DisplayName()))
		sb.WriteString(msg.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// Write renders the transcript and writes it to path, creating parent
// directories as needed.
func Write(msgs []model.Message, path string) error {
	if len(msgs) == 0 {
		return fmt.Errorf("transcript is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Markdown(msgs)), 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriteDefault writes the transcript to a timestamped file under the
// exports directory and returns its path.
func WriteDefault(msgs []model.Message) (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve export directory: %w", err)
	}
	path := filepath.Join(dir, "exports",
		"chat-"+time.Now().Format("20060102-150405")+".md")
	if err := Write(msgs, path); err != nil {
		return "", err
	}
	return path, nil
}
