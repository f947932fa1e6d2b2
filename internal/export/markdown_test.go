// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enyst/fireside-chat/internal/model"
)

func TestMarkdown(t *testing.T) {
	msgs := []model.Message{
		model.NewUserMessage("What is Go?"),
		model.NewModelMessage("A programming language.\n\n```go\nfunc main() {}\n```"),
	}

	got := Markdown(msgs)

	if !strings.Contains(got, "### You") {
		t.Error("export should label the user message")
	}
	if !strings.Contains(got, "### Model") {
		t.Error("export should label the model message")
	}
	if !strings.Contains(got, "```go\nfunc main() {}\n```") {
		t.Error("fenced code blocks should survive verbatim")
	}
}

func TestMarkdownPreservesOrder(t *testing.T) {
	msgs := []model.Message{
		model.NewUserMessage("first"),
		model.NewModelMessage("second"),
		model.NewUserMessage("third"),
	}

	got := Markdown(msgs)
	if strings.Index(got, "first") > strings.Index(got, "second") ||
		strings.Index(got, "second") > strings.Index(got, "third") {
		t.Error("messages should export in transcript order")
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.md")
	msgs := []model.Message{model.NewUserMessage("hello")}

	if err := Write(msgs, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Error("exported file should contain the message text")
	}
}

func TestWriteEmptyTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	if err := Write(nil, path); err == nil {
		t.Error("Write should reject an empty transcript")
	}
}
