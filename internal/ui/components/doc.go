// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the fireside
// TUI: the history panel listing past conversations and the syntax
// highlighted code block renderer used in the transcript.
package components
