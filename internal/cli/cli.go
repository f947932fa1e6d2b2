// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Subcommand dispatch for the fireside CLI.
//
// Commands:
//   (none)    Launch the TUI
//   ask       One-shot prompt, reply on stdout
//   chat      Interactive REPL without the TUI
//   history   List past conversations
//   version   Print the version
//   help      Print usage

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/enyst/fireside-chat/internal/api"
	"github.com/enyst/fireside-chat/internal/config"
)

// =============================================================================
// DISPATCH
// =============================================================================

// Execute runs the subcommand named in argv (without the program name).
// It returns the process exit code and whether the caller should launch
// the TUI instead.
func Execute(argv []string) (int, bool) {
	p := NewArgParser(argv)

	switch p.Subcommand() {
	case "":
		return 0, true
	case "ask":
		return RunAsk(p), false
	case "chat":
		return RunChat(p), false
	case "history":
		return RunHistory(p), false
	case "version":
		fmt.Println("fireside " + api.Version)
		return 0, false
	case "help":
		PrintUsage(os.Stdout)
		return 0, false
	default:
		fmt.Fprintf(os.Stderr, "fireside: unknown command %q\n\n", p.Subcommand())
		PrintUsage(os.Stderr)
		return 2, false
	}
}

// PrintUsage writes the command overview.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `fireside - terminal client for the fireside chat backend

Usage:
  fireside                 Launch the TUI
  fireside ask <prompt>    Send one prompt, print the reply
  fireside chat            Interactive chat in the terminal
  fireside history         List past conversations
  fireside version         Print the version

Flags:
  --server URL    Backend base URL (default from config)
  --timeout SECS  Request timeout in seconds
  --plain         Disable colors and markdown rendering
  --id ID         Conversation id (ask: continue a conversation)
`)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// newAPIClient builds the backend client from config plus CLI overrides.
func newAPIClient(p *ArgParser) *api.Client {
	cfg := config.Global()

	serverURL := cfg.ServerURL
	if s := p.Flag("server"); s != "" {
		serverURL = s
	}

	timeout := cfg.Timeout()
	if t := p.Flag("timeout"); t != "" {
		if secs, err := time.ParseDuration(t + "s"); err == nil {
			timeout = secs
		}
	}

	return api.NewClient(serverURL).WithTimeout(timeout)
}

// plainOutput reports whether styling should be suppressed for this
// invocation.
func plainOutput(p *ArgParser) bool {
	return p.BoolFlag("plain") || config.Global().UI.PlainOutput || !ColorEnabled()
}
