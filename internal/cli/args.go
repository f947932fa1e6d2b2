// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing for the fireside CLI.
//
// One parser handles every subcommand so flag handling stays consistent:
//   - Long flags: --flag value or --flag=value
//   - Boolean flags: --flag (no value)
//   - Positional arguments: everything else, in order

package cli

import "strings"

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser holds the parsed command line of one invocation.
type ArgParser struct {
	subcommand string
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser parses raw arguments (without the program name).
// The first positional argument becomes the subcommand.
func NewArgParser(raw []string) *ArgParser {
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if !strings.HasPrefix(arg, "-") {
			p.positional = append(p.positional, arg)
			i++
			continue
		}

		// --flag=value
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			name := strings.TrimLeft(parts[0], "-")
			switch parts[1] {
			case "true":
				p.boolFlags[name] = true
			case "false":
				p.boolFlags[name] = false
			default:
				p.flags[name] = parts[1]
			}
			i++
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") && flagTakesValue(name) {
			p.flags[name] = raw[i+1]
			i += 2
		} else {
			p.boolFlags[name] = true
			i++
		}
	}

	if len(p.positional) > 0 {
		p.subcommand = p.positional[0]
	}

	return p
}

// flagTakesValue distinguishes value flags from boolean flags so a
// positional argument after a boolean flag is not swallowed as its value.
func flagTakesValue(name string) bool {
	switch name {
	case "server", "s", "timeout", "id", "output", "o":
		return true
	}
	return false
}

// Subcommand returns the first positional argument, "" when absent.
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns a string flag value, "" when unset.
func (p *ArgParser) Flag(name string) string {
	return p.flags[name]
}

// BoolFlag reports whether a boolean flag was set.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[name]
}

// Positional returns the positional arguments after the subcommand.
func (p *ArgParser) Positional() []string {
	if len(p.positional) <= 1 {
		return nil
	}
	return p.positional[1:]
}

// Rest returns the positional arguments after the subcommand joined by
// spaces, for commands that take free text like ask.
func (p *ArgParser) Rest() string {
	return strings.Join(p.Positional(), " ")
}
