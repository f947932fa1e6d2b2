// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the fireside TUI.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/enyst/fireside-chat/internal/api"
	"github.com/enyst/fireside-chat/internal/export"
	"github.com/enyst/fireside-chat/internal/model"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// sendPromptCmd creates a command that posts the prompt and resolves into
// a ChatReplyMsg or ChatErrorMsg.
func sendPromptCmd(client *api.Client, prompt, conversationID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), prompt, conversationID)
		if err != nil {
			return ChatErrorMsg{Err: err}
		}
		return ChatReplyMsg{Reply: resp.Response, ConversationID: resp.ConversationID}
	}
}

// loadHistoryCmd creates a command that fetches the history summaries.
func loadHistoryCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		summaries, err := client.History(context.Background())
		if err != nil {
			return HistoryErrorMsg{Err: err}
		}
		return HistoryLoadedMsg{Summaries: summaries}
	}
}

// loadConversationCmd creates a command that fetches a past conversation.
func loadConversationCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := client.Conversation(context.Background(), id)
		if err != nil {
			return ConversationErrorMsg{
				ID:       id,
				Err:      err,
				NotFound: errors.Is(err, api.ErrConversationNotFound),
			}
		}
		return ConversationLoadedMsg{ID: id, Messages: msgs}
	}
}

// exportCmd creates a command that writes the transcript to a Markdown file.
func exportCmd(msgs []model.Message) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteDefault(msgs)
		return ExportedMsg{Path: path, Err: err}
	}
}

// clearStatusCmd expires the status line after a short delay.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChatReplyMsg:
		return m.handleChatReply(msg)

	case ChatErrorMsg:
		m.session.End()
		m.transcript.Append(model.NewErrorMessage(errorText(msg.Err)))
		m.syncViewport()
		m.input.Focus()
		return m, nil

	case HistoryLoadedMsg:
		m.session.End()
		m.historyPanel.SetSummaries(msg.Summaries)
		m.historyPanel.SetActiveID(m.session.ConversationID())
		return m, nil

	case HistoryErrorMsg:
		m.session.End()
		m.historyPanel.SetFailed()
		return m, nil

	case ConversationLoadedMsg:
		m.session.End()
		m.transcript.Replace(msg.Messages)
		m.historyPanel.SetActiveID(msg.ID)
		m.syncViewport()
		return m, nil

	case ConversationErrorMsg:
		m.session.End()
		if msg.NotFound {
			m.transcript.Append(model.NewErrorMessage("Conversation not found."))
		} else {
			m.transcript.Append(model.NewErrorMessage(errorText(msg.Err)))
		}
		m.syncViewport()
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.status = "Export failed: " + msg.Err.Error()
		} else {
			m.status = "Exported to " + msg.Path
		}
		return m, clearStatusCmd()

	case ClearStatusMsg:
		m.status = ""
		return m, nil

	case ConfigReloadedMsg:
		m.client = api.NewClient(msg.ServerURL).WithTimeout(msg.Timeout)
		m.status = "Configuration reloaded."
		return m, clearStatusCmd()

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateComponents(msg)
}

// handleKey routes key presses to the focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Focus):
		m.historyFocused = !m.historyFocused
		m.historyPanel.SetFocused(m.historyFocused)
		if m.historyFocused {
			m.input.Blur()
		} else {
			m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		return m.startNewChat()

	case key.Matches(msg, m.keyMap.Refresh):
		return m.refreshHistory()

	case key.Matches(msg, m.keyMap.Export):
		if m.transcript.Len() == 0 {
			m.status = "Nothing to export yet."
			return m, clearStatusCmd()
		}
		return m, exportCmd(m.transcript.Messages())
	}

	if m.historyFocused {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.sendPrompt()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	return m.updateComponents(msg)
}

// handleHistoryKey handles keys while the history panel has focus.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.historyPanel.CursorUp()
	case key.Matches(msg, m.keyMap.Down):
		m.historyPanel.CursorDown()
	case key.Matches(msg, m.keyMap.Submit):
		if sel, ok := m.historyPanel.Selected(); ok {
			return m.loadConversation(sel.ID)
		}
	}
	return m, nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// sendPrompt submits the input field as a new prompt. No-op when the
// input is blank or a call is in flight.
func (m Model) sendPrompt() (Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		return m, nil
	}
	if !m.session.Begin(PhaseSending) {
		return m.busyStatus()
	}

	m.transcript.Append(model.NewUserMessage(prompt))
	m.input.SetValue("")
	m.syncViewport()

	return m, tea.Batch(
		sendPromptCmd(m.client, prompt, m.session.ConversationID()),
		m.spinner.Tick,
	)
}

// handleChatReply appends the model reply, adopts the backend's
// conversation id, and refreshes the history list so a newly created
// conversation appears in the panel.
func (m Model) handleChatReply(msg ChatReplyMsg) (Model, tea.Cmd) {
	m.session.End()
	m.transcript.Append(model.NewModelMessage(msg.Reply))
	m.session.SetConversationID(msg.ConversationID)
	m.historyPanel.SetActiveID(msg.ConversationID)
	m.syncViewport()
	m.input.Focus()

	if m.session.Begin(PhaseLoadingHistory) {
		return m, loadHistoryCmd(m.client)
	}
	return m, nil
}

// loadConversation opens a past conversation from the history panel.
// The requested id is adopted before the fetch resolves, so a failed
// load still leaves the id current.
func (m Model) loadConversation(id string) (Model, tea.Cmd) {
	if !m.session.Begin(PhaseLoadingConversation) {
		return m.busyStatus()
	}

	m.transcript.Clear()
	m.session.SetConversationID(id)
	m.historyPanel.SetActiveID(id)
	m.syncViewport()

	return m, tea.Batch(
		loadConversationCmd(m.client, id),
		m.spinner.Tick,
	)
}

// refreshHistory re-fetches the summaries for the panel.
func (m Model) refreshHistory() (Model, tea.Cmd) {
	if !m.session.Begin(PhaseLoadingHistory) {
		return m.busyStatus()
	}
	return m, loadHistoryCmd(m.client)
}

// startNewChat resets to a blank conversation. Purely local.
func (m Model) startNewChat() (Model, tea.Cmd) {
	if m.session.Busy() {
		return m.busyStatus()
	}

	m.session.Reset()
	m.transcript.Replace([]model.Message{
		model.NewModelMessage("Started a new chat."),
	})
	m.historyPanel.SetActiveID("")
	m.input.SetValue("")
	m.historyFocused = false
	m.historyPanel.SetFocused(false)
	m.input.Focus()
	m.syncViewport()

	return m, nil
}

// busyStatus surfaces a visible signal instead of silently dropping the
// attempted operation.
func (m Model) busyStatus() (Model, tea.Cmd) {
	m.status = "Waiting for the current request to finish..."
	return m, clearStatusCmd()
}

// updateComponents forwards unhandled messages to the focused components.
func (m Model) updateComponents(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if !m.historyFocused {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// ERROR TEXT
// =============================================================================

// errorText maps a backend error to its transcript rendering. API errors
// already carry the detail string or the "HTTP error: <status>" fallback;
// transport failures get a generic prefix.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "Error: " + err.Error()
}
