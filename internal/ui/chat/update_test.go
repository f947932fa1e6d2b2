// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/enyst/fireside-chat/internal/api"
	"github.com/enyst/fireside-chat/internal/model"
	"github.com/enyst/fireside-chat/internal/ui/styles"
)

func newTestModel(baseURL string) Model {
	return New(styles.NewTheme(), api.NewClient(baseURL))
}

// =============================================================================
// SEND PROMPT
// =============================================================================

func TestSendAppendsUserMessageThenReply(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.SetInputValue("hello")

	m, cmd := m.sendPrompt()
	if cmd == nil {
		t.Fatal("sendPrompt should return a command")
	}

	msgs := m.Transcript().Messages()
	if len(msgs) != 1 {
		t.Fatalf("transcript has %d messages after send, want 1", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Text != "hello" {
		t.Errorf("optimistic message = %s %q", msgs[0].Role, msgs[0].Text)
	}
	if msgs[0].Label() != "You: hello" {
		t.Errorf("Label() = %q, want %q", msgs[0].Label(), "You: hello")
	}
	if m.InputValue() != "" {
		t.Error("input should be cleared after send")
	}
	if m.Session().Phase() != PhaseSending {
		t.Errorf("phase = %v, want PhaseSending", m.Session().Phase())
	}

	m, _ = m.handleChatReply(ChatReplyMsg{Reply: "hi there", ConversationID: "c1"})

	msgs = m.Transcript().Messages()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d messages after reply, want 2", len(msgs))
	}
	if msgs[1].Role != model.RoleModel || msgs[1].Text != "hi there" {
		t.Errorf("reply message = %s %q", msgs[1].Role, msgs[1].Text)
	}
	if m.Session().ConversationID() != "c1" {
		t.Errorf("conversation id = %q, want c1", m.Session().ConversationID())
	}
}

func TestSendBlankInputIsNoop(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.SetInputValue("   ")

	m, cmd := m.sendPrompt()
	if cmd != nil {
		t.Error("blank input should not produce a command")
	}
	if m.Transcript().Len() != 0 {
		t.Error("blank input should not append a message")
	}
	if m.Session().Busy() {
		t.Error("blank input should not change phase")
	}
}

func TestSendWhileBusyIsRejected(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.Session().Begin(PhaseSending)
	m.SetInputValue("second prompt")

	m, _ = m.sendPrompt()

	if m.Transcript().Len() != 0 {
		t.Error("busy send should not append a message")
	}
	if m.InputValue() != "second prompt" {
		t.Error("busy send should leave the input untouched")
	}
	if m.Status() == "" {
		t.Error("busy send should surface a visible status")
	}
}

// =============================================================================
// SEND ERRORS
// =============================================================================

func TestSendErrorRendering(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "detail from body",
			err:  &api.Error{Status: 503, Detail: "Model is overloaded. Please try again later."},
			want: "Model is overloaded. Please try again later.",
		},
		{
			name: "status fallback without detail",
			err:  &api.Error{Status: 400},
			want: "HTTP error: 400",
		},
		{
			name: "transport failure",
			err:  errors.New("connection refused"),
			want: "Error: connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel("http://localhost:0")
			m.SetInputValue("hello")
			m, _ = m.sendPrompt()

			m, _ = m.Update(ChatErrorMsg{Err: tc.err})

			msgs := m.Transcript().Messages()
			if len(msgs) != 2 {
				t.Fatalf("transcript has %d messages, want user + error", len(msgs))
			}
			last := msgs[1]
			if !last.IsError || last.Role != model.RoleModel {
				t.Errorf("error message flags = role %s, IsError %v", last.Role, last.IsError)
			}
			if last.Text != tc.want {
				t.Errorf("error text = %q, want %q", last.Text, tc.want)
			}
			if m.Session().Busy() {
				t.Error("phase should clear after a failed send")
			}
		})
	}
}

// =============================================================================
// NEW CHAT
// =============================================================================

func TestStartNewChatResetsToPlaceholder(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.Session().SetConversationID("c1")
	m.Transcript().Append(model.NewUserMessage("old"))
	m.Transcript().Append(model.NewModelMessage("old reply"))
	m.SetInputValue("draft")

	m, cmd := m.startNewChat()
	if cmd != nil {
		t.Error("startNewChat should not contact the backend")
	}

	msgs := m.Transcript().Messages()
	if len(msgs) != 1 {
		t.Fatalf("transcript has %d messages, want exactly the placeholder", len(msgs))
	}
	if msgs[0].Text != "Started a new chat." || msgs[0].Role != model.RoleModel {
		t.Errorf("placeholder = %s %q", msgs[0].Role, msgs[0].Text)
	}
	if m.Session().ConversationID() != "" {
		t.Error("new chat should clear the conversation id")
	}
	if m.InputValue() != "" {
		t.Error("new chat should clear the input")
	}
}

func TestStartNewChatWhileBusyIsRejected(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.Session().Begin(PhaseSending)
	m.Session().SetConversationID("c1")
	m.Transcript().Append(model.NewUserMessage("pending"))

	m, _ = m.startNewChat()

	if m.Transcript().Len() != 1 {
		t.Error("busy new-chat should leave the transcript untouched")
	}
	if m.Session().ConversationID() != "c1" {
		t.Error("busy new-chat should keep the conversation id")
	}
}

// =============================================================================
// LOAD CONVERSATION
// =============================================================================

func TestLoadConversationSuccess(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.Transcript().Append(model.NewModelMessage("stale"))

	m, cmd := m.loadConversation("c2")
	if cmd == nil {
		t.Fatal("loadConversation should return a command")
	}
	if m.Session().Phase() != PhaseLoadingConversation {
		t.Errorf("phase = %v, want PhaseLoadingConversation", m.Session().Phase())
	}
	if m.Transcript().Len() != 0 {
		t.Error("transcript should be cleared before the fetch resolves")
	}
	if m.Session().ConversationID() != "c2" {
		t.Error("id should be adopted before the fetch resolves")
	}

	m, _ = m.Update(ConversationLoadedMsg{
		ID: "c2",
		Messages: []model.Message{
			model.NewUserMessage("past question"),
			model.NewModelMessage("past answer"),
		},
	})

	msgs := m.Transcript().Messages()
	if len(msgs) != 2 || msgs[0].Text != "past question" || msgs[1].Text != "past answer" {
		t.Errorf("loaded transcript = %v", msgs)
	}
	if m.Session().Busy() {
		t.Error("phase should clear after load")
	}
}

func TestLoadConversationNotFound(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m, _ = m.loadConversation("missing")

	m, _ = m.Update(ConversationErrorMsg{
		ID:       "missing",
		Err:      api.ErrConversationNotFound,
		NotFound: true,
	})

	msgs := m.Transcript().Messages()
	if len(msgs) != 1 {
		t.Fatalf("transcript has %d messages, want exactly one", len(msgs))
	}
	if msgs[0].Role != model.RoleModel || !strings.Contains(msgs[0].Text, "not found") {
		t.Errorf("not-found message = %s %q", msgs[0].Role, msgs[0].Text)
	}
	if m.Session().ConversationID() != "missing" {
		t.Error("requested id should stay current after a 404")
	}
	if m.Session().Busy() {
		t.Error("phase should clear after a failed load")
	}
}

func TestLoadConversationWhileBusyIsRejected(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.Session().Begin(PhaseSending)
	m.Session().SetConversationID("c1")

	m, cmd := m.loadConversation("c2")
	if cmd != nil {
		t.Error("busy load should not produce a command")
	}
	if m.Session().ConversationID() != "c1" {
		t.Error("busy load should not adopt the new id")
	}
}

// =============================================================================
// HISTORY PANEL
// =============================================================================

func TestHistoryLoadedReplacesPanel(t *testing.T) {
	m := newTestModel("http://localhost:0")
	summaries := []model.ConversationSummary{
		{ID: "c1", Summary: "First chat", LastModified: "2025-06-01 08:00"},
	}

	m, _ = m.Update(HistoryLoadedMsg{Summaries: summaries})
	if m.HistoryPanel().Len() != 1 {
		t.Errorf("panel has %d entries, want 1", m.HistoryPanel().Len())
	}

	// A second delivery of the same list is idempotent.
	m, _ = m.Update(HistoryLoadedMsg{Summaries: summaries})
	if m.HistoryPanel().Len() != 1 {
		t.Errorf("panel has %d entries after refresh, want 1", m.HistoryPanel().Len())
	}
}

func TestHistoryErrorShowsPlaceholder(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.Session().Begin(PhaseLoadingHistory)

	m, _ = m.Update(HistoryErrorMsg{Err: errors.New("boom")})

	if m.Session().Busy() {
		t.Error("history failure should clear the phase")
	}
	m.HistoryPanel().SetSize(40, 20)
	if !strings.Contains(m.HistoryPanel().View(), "[Couldn't load history]") {
		t.Error("panel should show the failure placeholder")
	}
}

// =============================================================================
// END-TO-END SCENARIO
// =============================================================================

// TestNewConversationAdoption walks the first exchange of a brand-new
// conversation: null id on the wire, "c1" adopted from the reply, then a
// history refresh listing the new conversation.
func TestNewConversationAdoption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/chat":
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"conversation_id":null`) {
				t.Errorf("first send should carry a null conversation_id, got %s", body)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"response":"Hello!","conversation_id":"c1"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/history":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":"c1","summary":"hello","last_modified":"2025-06-01 08:00"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	m := newTestModel(server.URL)
	m.SetInputValue("hello")
	m, _ = m.sendPrompt()

	// Resolve the send command synchronously.
	reply := sendPromptCmd(m.client, "hello", m.Session().ConversationID())()
	replyMsg, ok := reply.(ChatReplyMsg)
	if !ok {
		t.Fatalf("send resolved to %T: %v", reply, reply)
	}

	m, _ = m.Update(replyMsg)
	if m.Session().ConversationID() != "c1" {
		t.Fatalf("conversation id = %q, want c1", m.Session().ConversationID())
	}
	if m.Session().Phase() != PhaseLoadingHistory {
		t.Fatalf("phase = %v, want PhaseLoadingHistory (refresh)", m.Session().Phase())
	}

	// Resolve the history refresh.
	hist := loadHistoryCmd(m.client)()
	histMsg, ok := hist.(HistoryLoadedMsg)
	if !ok {
		t.Fatalf("history resolved to %T: %v", hist, hist)
	}

	m, _ = m.Update(histMsg)
	if m.Session().Busy() {
		t.Error("phase should be idle after the refresh")
	}
	if m.HistoryPanel().Len() != 1 {
		t.Errorf("panel has %d entries, want the new conversation", m.HistoryPanel().Len())
	}
}

// =============================================================================
// RENDERING
// =============================================================================

func TestViewRendersTextLiterally(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.handleResize(100, 30)
	m.Transcript().Append(model.NewUserMessage("<script>alert(1)</script>"))
	m.syncViewport()

	view := m.View()
	if !strings.Contains(view, "<script>alert(1)</script>") {
		t.Error("message text should render literally, never as markup")
	}
	if !strings.Contains(view, "You:") {
		t.Error("view should carry the role label")
	}
}

func TestViewBusyIndicator(t *testing.T) {
	m := newTestModel("http://localhost:0")
	m.handleResize(100, 30)
	m.Session().Begin(PhaseSending)

	if !strings.Contains(m.View(), "Waiting for reply") {
		t.Error("busy view should show the waiting indicator")
	}
}
