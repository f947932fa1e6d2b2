// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the fireside TUI.
//
// This file defines the Bubble Tea message types used by the chat view.
// Each backend call resolves into exactly one of these messages; the
// Update loop translates them into transcript and panel mutations.
package chat

import (
	"time"

	"github.com/enyst/fireside-chat/internal/model"
)

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatReplyMsg delivers a successful reply from POST /api/chat.
// ConversationID is the backend's id for the conversation, which may
// differ from the one we sent when this was the first exchange.
type ChatReplyMsg struct {
	Reply          string
	ConversationID string
}

// ChatErrorMsg signals a failed send. The error is rendered into the
// transcript in place of the model reply.
type ChatErrorMsg struct {
	Err error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers the conversation summaries for the panel.
type HistoryLoadedMsg struct {
	Summaries []model.ConversationSummary
}

// HistoryErrorMsg signals that the history fetch failed. Non-fatal; the
// panel shows a placeholder.
type HistoryErrorMsg struct {
	Err error
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ConversationLoadedMsg delivers the full message list of a past
// conversation selected from the history panel.
type ConversationLoadedMsg struct {
	ID       string
	Messages []model.Message
}

// ConversationErrorMsg signals a failed conversation load. NotFound is
// set for a backend 404, which gets a dedicated transcript message.
type ConversationErrorMsg struct {
	ID       string
	Err      error
	NotFound bool
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// ClearStatusMsg expires the transient status line.
type ClearStatusMsg struct{}

// ExportedMsg reports the outcome of a transcript export.
type ExportedMsg struct {
	Path string
	Err  error
}

// ConfigReloadedMsg is sent by the config watcher when the config file
// changes on disk. The chat view rebuilds its backend client with the
// new server URL and timeout.
type ConfigReloadedMsg struct {
	ServerURL string
	Timeout   time.Duration
}
