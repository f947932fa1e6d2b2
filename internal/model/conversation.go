// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for messages and conversations.
package model

// =============================================================================
// CONVERSATION SUMMARY
// =============================================================================

// ConversationSummary is one entry of the history panel. All three fields
// are supplied wholesale by the backend; the client never derives or mutates
// them. LastModified is the backend's preformatted "YYYY-MM-DD HH:MM" string.
type ConversationSummary struct {
	ID           string `json:"id"`
	Summary      string `json:"summary"`
	LastModified string `json:"last_modified"`
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the locally rendered, insertion-ordered sequence of messages
// for the currently selected conversation. Messages are immutable once
// appended.
type Transcript struct {
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: make([]Message, 0, 16)}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Replace swaps the transcript contents for the given messages.
// Used when a past conversation is loaded from the backend.
func (t *Transcript) Replace(msgs []Message) {
	t.messages = make([]Message, len(msgs))
	copy(t.messages, msgs)
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.messages = t.messages[:0]
}

// Messages returns a copy of the transcript contents.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
