// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the fireside CLI.
//
// Command: chat
//
// A readline-style loop for terminals where the full TUI is unwanted
// (ssh sessions, minimal terminals). Conversation state matches the TUI:
// the backend's conversation id is adopted after the first exchange and
// carried across turns.
//
// Interactive commands:
//   /new          Start a new conversation
//   /history      List past conversations
//   /open <id>    Load a past conversation
//   /help         Show commands
//   /quit         Exit
//   Ctrl+D        Exit

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/enyst/fireside-chat/internal/api"
	"github.com/enyst/fireside-chat/internal/config"
	"github.com/enyst/fireside-chat/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Ember).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan)

	errStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput wraps liner with persistent input history under the config
// directory.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newREPLInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	r := &replInput{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	r.loadHistory()
	return r
}

func (r *replInput) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

func (r *replInput) saveHistory() {
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// read reads one line, appending non-blank input to history.
func (r *replInput) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *replInput) close() {
	r.saveHistory()
	r.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// RunChat runs the interactive REPL.
func RunChat(p *ArgParser) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "fireside chat: stdin is not a terminal (use 'fireside ask' for piped input)")
		return 2
	}

	client := newAPIClient(p)
	plain := plainOutput(p)
	input := newREPLInput()
	defer input.close()

	conversationID := p.Flag("id")

	fmt.Println(infoStyle.Render("fireside " + api.Version + " - /help for commands, /quit to exit"))
	if conversationID != "" {
		fmt.Println(infoStyle.Render("continuing conversation " + conversationID))
	}

	for {
		line, err := input.read(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			fmt.Println()
			return 0
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, newID := runREPLCommand(client, line, conversationID)
			conversationID = newID
			if done {
				return 0
			}
			continue
		}

		resp, err := client.Chat(context.Background(), line, conversationID)
		if err != nil {
			fmt.Println(errStyle.Render(askErrorText(err)))
			continue
		}

		conversationID = resp.ConversationID
		displayReply(resp.Response, plain)
	}
}

// runREPLCommand handles a slash command. It returns whether the REPL
// should exit and the (possibly updated) conversation id.
func runREPLCommand(client *api.Client, line, conversationID string) (bool, string) {
	fields := strings.Fields(line)

	switch fields[0] {
	case "/quit", "/q", "/exit":
		return true, conversationID

	case "/new", "/n":
		fmt.Println(infoStyle.Render("Started a new chat."))
		return false, ""

	case "/history", "/h":
		summaries, err := client.History(context.Background())
		if err != nil {
			fmt.Println(errStyle.Render("Couldn't load history: " + askErrorText(err)))
			return false, conversationID
		}
		if len(summaries) == 0 {
			fmt.Println(infoStyle.Render("No past conversations."))
			return false, conversationID
		}
		for _, s := range summaries {
			marker := "  "
			if s.ID == conversationID && conversationID != "" {
				marker = "* "
			}
			fmt.Printf("%s%s  %s  %s\n",
				marker,
				commandStyle.Render(s.ID),
				infoStyle.Render(s.LastModified),
				s.Summary)
		}
		return false, conversationID

	case "/open", "/o":
		if len(fields) < 2 {
			fmt.Println(errStyle.Render("usage: /open <id>"))
			return false, conversationID
		}
		id := fields[1]
		msgs, err := client.Conversation(context.Background(), id)
		if err != nil {
			if errors.Is(err, api.ErrConversationNotFound) {
				fmt.Println(errStyle.Render("Conversation not found."))
			} else {
				fmt.Println(errStyle.Render(askErrorText(err)))
			}
			// Mirror the TUI: the requested id stays current either way.
			return false, id
		}
		for _, msg := range msgs {
			fmt.Println(promptStyle.Render(msg.Role.DisplayName()+":") + " " + msg.Text)
		}
		return false, id

	case "/help":
		fmt.Println(infoStyle.Render(`Commands:
  /new          Start a new conversation
  /history      List past conversations
  /open <id>    Load a past conversation
  /quit         Exit`))
		return false, conversationID

	default:
		fmt.Println(errStyle.Render("Unknown command " + fields[0] + " (try /help)"))
		return false, conversationID
	}
}
