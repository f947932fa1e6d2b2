// fireside - A terminal client for the fireside chat backend.
//
// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/enyst/fireside-chat/internal/api"
	"github.com/enyst/fireside-chat/internal/cli"
	"github.com/enyst/fireside-chat/internal/config"
	"github.com/enyst/fireside-chat/internal/ui/chat"
	"github.com/enyst/fireside-chat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	api.Version = Version
}

func main() {
	code, launchTUI := cli.Execute(os.Args[1:])
	if !launchTUI {
		os.Exit(code)
	}
	runTUI()
}

// =============================================================================
// TUI
// =============================================================================

// appModel adapts the typed chat model to the tea.Model interface.
type appModel struct {
	chat chat.Model
}

func (a appModel) Init() tea.Cmd {
	return a.chat.Init()
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

func (a appModel) View() string {
	return a.chat.View()
}

func runTUI() {
	cfg := config.Global()

	theme := styles.NewTheme()
	client := api.NewClient(cfg.ServerURL).WithTimeout(cfg.Timeout())
	chat.SetHistoryPanelWidth(cfg.UI.HistoryPanelWidth)

	p := tea.NewProgram(
		appModel{chat: chat.New(theme, client)},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Pick up config edits while the TUI is running.
	watcher, err := config.NewWatcher(func(c *config.Config) {
		p.Send(chat.ConfigReloadedMsg{
			ServerURL: c.ServerURL,
			Timeout:   c.Timeout(),
		})
	})
	if err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running fireside: %v\n", err)
		os.Exit(1)
	}
}
