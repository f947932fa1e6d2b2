// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot prompt command for the fireside CLI.
//
// Command: ask
//
// Examples:
//   fireside ask "What is a goroutine?"
//   fireside ask --id c1 "And a channel?"     Continue conversation c1
//   echo "prompt" | fireside ask              Read the prompt from stdin

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/enyst/fireside-chat/internal/api"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for TTY output. nil when
// initialization failed; output falls back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, returning the
// content unchanged when rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayReply writes a reply to stdout, with markdown rendering only
// when stdout is a TTY so piped output stays clean.
func displayReply(reply string, plain bool) {
	if plain || !IsStdoutTTY() {
		fmt.Println(reply)
		return
	}
	fmt.Print(renderMarkdown(reply))
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// RunAsk sends one prompt and prints the reply. The adopted conversation
// id goes to stderr so it can be reused with --id without polluting
// piped stdout.
func RunAsk(p *ArgParser) int {
	prompt := p.Rest()

	// Piped input becomes the prompt when no argument was given.
	if prompt == "" && !IsTTY() {
		data, err := io.ReadAll(os.Stdin)
		if err == nil {
			prompt = strings.TrimSpace(string(data))
		}
	}
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "fireside ask: no prompt given")
		return 2
	}

	client := newAPIClient(p)
	resp, err := client.Chat(context.Background(), prompt, p.Flag("id"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "fireside ask: "+askErrorText(err))
		return 1
	}

	displayReply(resp.Response, plainOutput(p))
	if IsStdoutTTY() {
		fmt.Fprintf(os.Stderr, "(conversation %s)\n", resp.ConversationID)
	}
	return 0
}

// askErrorText maps a backend error to its CLI rendering, mirroring the
// TUI's taxonomy: detail string, status fallback, or the raw error.
func askErrorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
