// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - History listing command for the fireside CLI.
//
// Command: history
//
// Examples:
//   fireside history              List past conversations
//   fireside history --plain      No colors (also implied when piped)

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/enyst/fireside-chat/internal/model"
	"github.com/enyst/fireside-chat/internal/ui/styles"
	"github.com/enyst/fireside-chat/internal/util"
)

// RunHistory lists the past conversations, newest first as delivered by
// the backend.
func RunHistory(p *ArgParser) int {
	client := newAPIClient(p)

	summaries, err := client.History(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "fireside history: "+askErrorText(err))
		return 1
	}

	writeHistory(os.Stdout, summaries, plainOutput(p))
	return 0
}

// writeHistory renders the summary table. Split out for testing.
func writeHistory(w io.Writer, summaries []model.ConversationSummary, plain bool) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No past conversations.")
		return
	}

	idStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
	metaStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	idWidth := 0
	for _, s := range summaries {
		if w := util.StringWidth(s.ID); w > idWidth {
			idWidth = w
		}
	}

	summaryWidth := TerminalWidth() - idWidth - 20
	if summaryWidth < 20 {
		summaryWidth = 20
	}

	for _, s := range summaries {
		id := util.PadWidth(s.ID, idWidth)
		text := util.TruncateWidth(s.Summary, summaryWidth)
		if plain {
			fmt.Fprintf(w, "%s  %s  %s\n", id, s.LastModified, text)
			continue
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			idStyle.Render(id),
			metaStyle.Render(s.LastModified),
			text)
	}
}
