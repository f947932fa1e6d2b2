// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the fireside TUI.
package chat

// =============================================================================
// CHAT PHASES
// =============================================================================

// Phase is the current activity of the chat view. At most one backend
// call is in flight at a time; any phase other than PhaseIdle rejects
// new operations.
type Phase int

const (
	PhaseIdle                Phase = iota // Ready for input
	PhaseSending                          // POST /api/chat in flight
	PhaseLoadingConversation              // GET /api/history/{id} in flight
	PhaseLoadingHistory                   // GET /api/history in flight
)

// String returns a short label for status display.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSending:
		return "sending"
	case PhaseLoadingConversation:
		return "loading conversation"
	case PhaseLoadingHistory:
		return "loading history"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// Session owns the chat view's guarded state: the current conversation id
// and the in-flight phase. Operations go through Begin/End so a second
// request while one is pending is rejected by early return, never queued.
// The type has no terminal dependencies so transitions are unit-testable.
type Session struct {
	phase          Phase
	conversationID string
}

// NewSession creates an idle session with no conversation selected.
func NewSession() *Session {
	return &Session{phase: PhaseIdle}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Busy reports whether a backend call is in flight.
func (s *Session) Busy() bool {
	return s.phase != PhaseIdle
}

// Begin attempts to enter the given phase. It returns false when a call
// is already in flight, leaving the session untouched.
func (s *Session) Begin(p Phase) bool {
	if s.phase != PhaseIdle || p == PhaseIdle {
		return false
	}
	s.phase = p
	return true
}

// End returns the session to idle. Safe to call when already idle.
func (s *Session) End() {
	s.phase = PhaseIdle
}

// ConversationID returns the current conversation id, "" when none.
func (s *Session) ConversationID() string {
	return s.conversationID
}

// SetConversationID adopts a conversation id, typically the one returned
// by the backend after the first exchange of a new conversation.
func (s *Session) SetConversationID(id string) {
	s.conversationID = id
}

// Reset clears the conversation id for a brand-new chat. The phase is
// left alone; callers check Busy before resetting.
func (s *Session) Reset() {
	s.conversationID = ""
}
