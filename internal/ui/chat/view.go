// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the fireside TUI.
//
// This file contains the rendering logic: the transcript with role
// labels and highlighted code blocks, the history panel column, the
// input area, and the status bar.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/enyst/fireside-chat/internal/api"
	"github.com/enyst/fireside-chat/internal/model"
	"github.com/enyst/fireside-chat/internal/ui/components"
	"github.com/enyst/fireside-chat/internal/ui/styles"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat view.
// Layout: header (1) + [history | transcript] + input (3) + status (1).
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	input := m.renderInput()
	status := m.renderStatusBar()

	body := m.viewport.View()
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.historyPanel.View(), body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, status)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// syncViewport re-renders the transcript into the viewport and scrolls
// to the newest message. Rendering always starts from the transcript
// slice, so re-renders are idempotent.
func (m *Model) syncViewport() {
	msgs := m.transcript.Messages()
	if len(msgs) == 0 {
		m.viewport.SetContent(m.renderEmptyTranscript())
		return
	}

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg))
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}

// renderMessage renders one transcript entry with its role label.
// Message text is rendered literally; only fenced code blocks and
// backtick spans get markup treatment.
func (m Model) renderMessage(msg model.Message) string {
	label := m.theme.RoleLabel.Render(msg.Role.DisplayName() + ":")

	width := m.viewport.Width - 8
	if width < 20 {
		width = 20
	}

	text := components.ParseCodeBlocks(msg.Text, width)
	text = components.ParseInlineCode(text)

	bubble := m.theme.ModelBubble
	switch {
	case msg.IsError:
		bubble = m.theme.ErrorBubble
	case msg.Role == model.RoleUser:
		bubble = m.theme.UserBubble
	}

	return label + "\n" + bubble.MaxWidth(width).Render(text)
}

// renderEmptyTranscript renders the welcome hint shown before the first
// message.
func (m Model) renderEmptyTranscript() string {
	content := m.theme.WelcomeLogo.Render("fireside") + "\n" +
		m.theme.WelcomeVersion.Render("v"+api.Version) + "\n\n" +
		m.theme.WelcomeInfo.Render("Type a message and press Enter to start chatting.")

	return lipgloss.Place(
		m.viewport.Width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center,
		m.theme.WelcomeBox.Render(content),
	)
}

// =============================================================================
// CHROME
// =============================================================================

// renderHeader renders the one-line title bar.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("fireside")
	return m.theme.Header.Width(m.width).Render(title)
}

// renderInput renders the prompt input area.
func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

// renderStatusBar renders the bottom status line: busy indicator or
// transient status on the left, shortcut hints on the right.
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.session.Busy():
		left = m.spinner.View() + " " + m.theme.StatusBusy.Render(busyLabel(m.session.Phase()))
	case m.status != "":
		left = m.theme.StatusError.Render(m.status)
	default:
		left = m.theme.StatusBar.Render("Ready")
	}

	var hints []string
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		hints = append(hints,
			m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return m.theme.StatusBar.Width(m.width).Render(left)
	}

	return m.theme.StatusBar.Width(m.width).Render(
		left + strings.Repeat(" ", gap) + right)
}

// busyLabel maps a phase to its status bar text.
func busyLabel(p Phase) string {
	switch p {
	case PhaseSending:
		return "Waiting for reply..."
	case PhaseLoadingConversation:
		return "Loading conversation..."
	case PhaseLoadingHistory:
		return "Loading history..."
	default:
		return "Working..."
	}
}
