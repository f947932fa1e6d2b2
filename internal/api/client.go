// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the Fireside chat backend.
//
// The backend owns all conversation state. This client speaks three
// endpoints:
//
//	GET  /api/history       list conversation summaries
//	GET  /api/history/{id}  fetch the messages of a conversation
//	POST /api/chat          send a prompt, receive the model reply
//
// Every failure is terminal for the one user action that triggered it:
// there is no retry, no backoff, and no offline queue. Callers surface the
// returned error to the user and move on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/enyst/fireside-chat/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// Keeps a misbehaving backend from exhausting client memory.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

var userAgent = "fireside/" + Version

// Version is the client version reported in the User-Agent header.
// Overridden at build time.
var Version = "0.1.0"

// ErrConversationNotFound indicates the requested conversation id does not
// exist on the backend (HTTP 404 from the history endpoint).
var ErrConversationNotFound = errors.New("conversation not found")

// =============================================================================
// ERROR TYPE
// =============================================================================

// Error represents a non-2xx response from the backend. Detail carries the
// body's "detail" field when the backend sent a parseable JSON error body.
type Error struct {
	Status int
	Detail string
}

// Error implements the error interface. When the backend supplied a detail
// string it is shown verbatim; otherwise a generic status message is built.
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP error: %d", e.Status)
}

// errorBody is the JSON error payload the backend may attach to a
// non-2xx response.
type errorBody struct {
	Detail string `json:"detail"`
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the request body for the chat endpoint. ConversationID is
// null for the first message of a fresh conversation; the backend then
// assigns an id.
type ChatRequest struct {
	Prompt         string  `json:"prompt"`
	ConversationID *string `json:"conversation_id"`
}

// ChatResponse is the reply from the chat endpoint.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the Fireside backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithTimeout sets the request timeout. A zero duration disables the
// client-side timeout entirely, leaving hang behavior to the transport.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// History fetches the list of conversation summaries, newest first.
// The backend returns an empty array when there are no past conversations.
func (c *Client) History(ctx context.Context) ([]model.ConversationSummary, error) {
	body, err := c.get(ctx, "/api/history")
	if err != nil {
		return nil, err
	}

	var summaries []model.ConversationSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, fmt.Errorf("failed to parse history response: %w", err)
	}
	return summaries, nil
}

// Conversation fetches the messages of the conversation with the given id.
// A 404 maps to ErrConversationNotFound so callers can show the dedicated
// not-found message instead of the generic status error.
func (c *Client) Conversation(ctx context.Context, id string) ([]model.Message, error) {
	body, err := c.get(ctx, "/api/history/"+url.PathEscape(id))
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
		}
		return nil, err
	}

	var messages []model.Message
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse conversation response: %w", err)
	}
	return messages, nil
}

// Chat posts a prompt to the chat endpoint. conversationID is empty for a
// fresh conversation; the response carries the id the backend filed the
// exchange under, which may differ from the one sent.
func (c *Client) Chat(ctx context.Context, prompt, conversationID string) (*ChatResponse, error) {
	reqBody := ChatRequest{Prompt: prompt}
	if conversationID != "" {
		reqBody.ConversationID = &conversationID
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", err)
	}
	return &chatResp, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// get performs a GET against path and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return c.do(req)
}

// do executes the request and maps non-2xx responses to *Error.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newError(resp.StatusCode, body)
	}
	return body, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", int64(MaxResponseSize))
	}
	return body, nil
}

// newError builds an *Error from a non-2xx response, extracting the detail
// field when the body is a parseable JSON error payload.
func newError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return &Error{Status: status, Detail: eb.Detail}
	}
	return &Error{Status: status}
}
