// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the fireside TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/enyst/fireside-chat/internal/model"
	"github.com/enyst/fireside-chat/internal/ui/styles"
	"github.com/enyst/fireside-chat/internal/util"
)

// =============================================================================
// HISTORY PANEL
// =============================================================================

// Placeholder text shown when the panel has no summaries to list.
const (
	emptyHistoryText  = "[No past conversations]"
	failedHistoryText = "[Couldn't load history]"
)

// HistoryPanel lists past conversation summaries. The panel re-renders
// from its summaries slice on every View call, so refreshing the list
// replaces the previous entries rather than appending to them.
type HistoryPanel struct {
	summaries []model.ConversationSummary
	cursor    int
	activeID  string
	focused   bool
	failed    bool

	width  int
	height int

	theme *styles.Theme
}

// NewHistoryPanel creates an empty history panel.
func NewHistoryPanel(theme *styles.Theme) HistoryPanel {
	return HistoryPanel{theme: theme}
}

// SetSummaries replaces the panel contents with a fresh list.
// The cursor is clamped so it stays on a valid entry.
func (p *HistoryPanel) SetSummaries(summaries []model.ConversationSummary) {
	p.summaries = summaries
	p.failed = false
	if p.cursor >= len(summaries) {
		p.cursor = len(summaries) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// SetFailed marks the last history fetch as failed. The panel shows a
// placeholder until the next successful SetSummaries call.
func (p *HistoryPanel) SetFailed() {
	p.summaries = nil
	p.failed = true
}

// SetActiveID highlights the conversation currently open in the transcript.
// An empty id clears the highlight (a brand-new unsaved conversation).
func (p *HistoryPanel) SetActiveID(id string) {
	p.activeID = id
}

// SetFocused toggles keyboard focus, which changes the border color.
func (p *HistoryPanel) SetFocused(focused bool) {
	p.focused = focused
}

// Focused reports whether the panel has keyboard focus.
func (p *HistoryPanel) Focused() bool {
	return p.focused
}

// SetSize updates the panel dimensions.
func (p *HistoryPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Len returns the number of listed summaries.
func (p *HistoryPanel) Len() int {
	return len(p.summaries)
}

// CursorUp moves the selection up one entry.
func (p *HistoryPanel) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// CursorDown moves the selection down one entry.
func (p *HistoryPanel) CursorDown() {
	if p.cursor < len(p.summaries)-1 {
		p.cursor++
	}
}

// Selected returns the summary under the cursor, or false when the
// panel is empty.
func (p *HistoryPanel) Selected() (model.ConversationSummary, bool) {
	if len(p.summaries) == 0 {
		return model.ConversationSummary{}, false
	}
	return p.summaries[p.cursor], true
}

// View renders the panel.
func (p HistoryPanel) View() string {
	innerWidth := p.width - 4 // border + padding
	if innerWidth < 10 {
		innerWidth = 10
	}

	var b strings.Builder
	b.WriteString(p.theme.HistoryTitle.Render("History"))
	b.WriteString("\n")

	switch {
	case p.failed:
		b.WriteString(p.theme.HistoryPlaceholder.Render(failedHistoryText))
	case len(p.summaries) == 0:
		b.WriteString(p.theme.HistoryPlaceholder.Render(emptyHistoryText))
	default:
		b.WriteString(p.renderEntries(innerWidth))
	}

	panel := p.theme.HistoryPanel
	if p.focused {
		panel = p.theme.HistoryPanelFocused
	}

	return panel.Width(p.width - 2).Render(b.String())
}

// renderEntries renders the summary rows, newest first as delivered
// by the server.
func (p HistoryPanel) renderEntries(width int) string {
	// Two lines per entry: summary + timestamp. Keep what fits.
	maxEntries := (p.height - 4) / 2
	if maxEntries < 1 {
		maxEntries = 1
	}

	// Keep the cursor visible by scrolling the window.
	start := 0
	if p.cursor >= maxEntries {
		start = p.cursor - maxEntries + 1
	}
	end := start + maxEntries
	if end > len(p.summaries) {
		end = len(p.summaries)
	}

	rows := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		s := p.summaries[i]

		style := p.theme.HistoryItem
		switch {
		case i == p.cursor && p.focused:
			style = p.theme.HistoryItemSelected
		case s.ID == p.activeID && p.activeID != "":
			style = p.theme.HistoryItemActive
		}

		label := util.TruncateWidth(s.Summary, width-2)
		rows = append(rows, style.Render(label))
		rows = append(rows, p.theme.HistoryMeta.Render("  "+s.LastModified))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
