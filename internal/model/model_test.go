// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleModel, "Model"},
		{Role("system"), "system"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessageLabel(t *testing.T) {
	msg := NewUserMessage("hello")
	if got := msg.Label(); got != "You: hello" {
		t.Errorf("Label() = %q, want %q", got, "You: hello")
	}
}

func TestMessageLabelLiteralText(t *testing.T) {
	// Markup in the prompt is literal text, never interpreted.
	msg := NewUserMessage("<script>alert(1)</script>")
	want := "You: <script>alert(1)</script>"
	if got := msg.Label(); got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestNewMessageGeneratesID(t *testing.T) {
	a := NewUserMessage("a")
	b := NewUserMessage("b")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty message IDs")
	}
	if !strings.HasPrefix(a.ID, "msg_") {
		t.Errorf("ID should start with 'msg_', got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("expected unique message IDs")
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("HTTP error: 500")
	if msg.Role != RoleModel {
		t.Errorf("error message role = %q, want %q", msg.Role, RoleModel)
	}
	if !msg.IsError {
		t.Error("expected IsError to be set")
	}
}

func TestMessagePreview(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"short", "hi", 10, "hi"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"unicode", "héllo wörld", 8, "héllo..."},
		{"tiny", "hello", 2, "he"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewUserMessage(tc.text).Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tc.text, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestMessageWireFormat(t *testing.T) {
	// Only role and text cross the wire.
	data, err := json.Marshal(NewModelMessage("hi there"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(fields) != 2 {
		t.Errorf("wire message has %d fields, want 2: %s", len(fields), data)
	}
	if fields["role"] != "model" || fields["text"] != "hi there" {
		t.Errorf("unexpected wire message: %s", data)
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewUserMessage("first"))
	tr.Append(NewModelMessage("second"))
	tr.Append(NewUserMessage("third"))

	msgs := tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Len = %d, want 3", len(msgs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if msgs[i].Text != want {
			t.Errorf("messages[%d].Text = %q, want %q", i, msgs[i].Text, want)
		}
	}
}

func TestTranscriptReplaceAndClear(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewUserMessage("old"))

	tr.Replace([]Message{NewModelMessage("a"), NewModelMessage("b")})
	if tr.Len() != 2 {
		t.Fatalf("Len after Replace = %d, want 2", tr.Len())
	}

	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", tr.Len())
	}
	if _, ok := tr.Last(); ok {
		t.Error("Last() on empty transcript should report no message")
	}
}

func TestTranscriptMessagesIsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewUserMessage("original"))

	msgs := tr.Messages()
	msgs[0].Text = "mutated"

	if got := tr.Messages()[0].Text; got != "original" {
		t.Errorf("transcript mutated through returned slice: %q", got)
	}
}

// =============================================================================
// CONVERSATION SUMMARY TESTS
// =============================================================================

func TestConversationSummaryDecode(t *testing.T) {
	payload := `[{"id":"c1","summary":"Hello there","last_modified":"2025-04-01 12:30"}]`

	var got []ConversationSummary
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("decoded %d summaries, want 1", len(got))
	}
	if got[0].ID != "c1" || got[0].Summary != "Hello there" || got[0].LastModified != "2025-04-01 12:30" {
		t.Errorf("unexpected summary: %+v", got[0])
	}
}
