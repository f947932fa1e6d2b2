// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the fireside TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/enyst/fireside-chat/internal/api"
	"github.com/enyst/fireside-chat/internal/model"
	"github.com/enyst/fireside-chat/internal/ui/components"
	"github.com/enyst/fireside-chat/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. It owns the transcript,
// the history panel, and the guarded session state; all backend calls go
// through commands that resolve into the message types in messages.go.
type Model struct {
	// State
	session    *Session
	transcript *model.Transcript

	// Backend
	client *api.Client

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// UI components
	viewport     viewport.Model
	input        textinput.Model
	spinner      spinner.Model
	historyPanel components.HistoryPanel

	// Key bindings
	keyMap KeyMap

	// Transient status line
	status string

	// True when the history panel has keyboard focus
	historyFocused bool
}

// New creates a new chat model.
func New(theme *styles.Theme, client *api.Client) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	// ASCII spinner for maximum terminal compatibility
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	return Model{
		session:      NewSession(),
		transcript:   model.NewTranscript(),
		client:       client,
		theme:        theme,
		viewport:     vp,
		input:        ti,
		spinner:      sp,
		historyPanel: components.NewHistoryPanel(theme),
		keyMap:       DefaultKeyMap(),
	}
}

// Init fetches the history list so the panel is populated on startup.
func (m Model) Init() tea.Cmd {
	m.session.Begin(PhaseLoadingHistory)
	return tea.Batch(textinput.Blink, loadHistoryCmd(m.client))
}

// =============================================================================
// ACCESSORS (exercised by tests)
// =============================================================================

// Session exposes the guarded session state.
func (m Model) Session() *Session {
	return m.session
}

// Transcript exposes the rendered message sequence.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// HistoryPanel exposes the history panel component.
func (m Model) HistoryPanel() *components.HistoryPanel {
	return &m.historyPanel
}

// Status returns the transient status line, "" when none.
func (m Model) Status() string {
	return m.status
}

// InputValue returns the current input field contents.
func (m Model) InputValue() string {
	return m.input.Value()
}

// SetInputValue replaces the input field contents.
func (m *Model) SetInputValue(s string) {
	m.input.SetValue(s)
}

// =============================================================================
// LAYOUT
// =============================================================================

// handleResize recomputes component dimensions from the window size.
// The history panel is hidden in narrow layouts.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	panelWidth := 0
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		panelWidth = historyPanelWidth
		if panelWidth > width/3 {
			panelWidth = width / 3
		}
	}
	m.historyPanel.SetSize(panelWidth, height-chromeHeight)

	m.viewport.Width = width - panelWidth
	m.viewport.Height = height - chromeHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = width - panelWidth - 6

	m.syncViewport()
}

// Fixed chrome: header (1) + input (3) + status bar (1).
const chromeHeight = 5

// historyPanelWidth is the default width of the history panel in wide
// layouts. Overridden by config at startup via SetHistoryPanelWidth.
var historyPanelWidth = 32

// SetHistoryPanelWidth overrides the panel width from config.
func SetHistoryPanelWidth(w int) {
	if w > 10 {
		historyPanelWidth = w
	}
}
