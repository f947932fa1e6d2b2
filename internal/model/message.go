// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for messages and conversations.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message. The backend knows exactly two
// roles; anything else in a history payload is rendered verbatim.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the transcript label for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleModel:
		return "Model"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation transcript.
// Role and Text are the only wire fields; ID and Timestamp are generated
// locally for rendering and never sent to the backend.
type Message struct {
	ID        string    `json:"-"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"-"`

	// IsError marks locally generated error messages. They render with the
	// model role label but error styling, and are never sent anywhere.
	IsError bool `json:"-"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) Message {
	return NewMessage(RoleUser, text)
}

// NewModelMessage creates a new model message.
func NewModelMessage(text string) Message {
	return NewMessage(RoleModel, text)
}

// NewErrorMessage creates a locally generated error message.
func NewErrorMessage(text string) Message {
	msg := NewMessage(RoleModel, text)
	msg.IsError = true
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Label returns the plain-text rendering of the message: the role label,
// a colon and space, then the literal text. Special characters in Text are
// not interpreted.
func (m Message) Label() string {
	return m.Role.DisplayName() + ": " + m.Text
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no text.
func (m Message) IsEmpty() bool {
	return len(m.Text) == 0
}
