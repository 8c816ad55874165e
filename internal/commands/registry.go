// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command registry for the deepchat TUI.
package commands

import (
	"sort"
	"strings"
	"sync"

	"github.com/jeranaias/deepchat-tui/internal/api"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Category groups commands for help and completion display.
type Category string

const (
	CategoryConversation Category = "Conversation"
	CategoryAgents       Category = "Agents"
	CategorySession      Category = "Session"
	CategoryGeneral      Category = "General"
)

// Command describes one slash command. Agent commands route the rest of
// the input to a backend agent; builtin commands act locally.
type Command struct {
	Name        string
	Description string
	Usage       string
	Category    Category

	// Agent is true for commands registered from the backend's agent
	// list ("/research ..."). The command name is the agent name.
	Agent bool
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the available slash commands. Builtins are fixed;
// agent commands are replaced wholesale whenever the backend list is
// refreshed. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]*Command
	agents   map[string]*Command
}

// NewRegistry creates a registry with the builtin commands registered.
func NewRegistry() *Registry {
	r := &Registry{
		builtins: make(map[string]*Command),
		agents:   make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) registerBuiltins() {
	builtins := []*Command{
		{Name: "help", Description: "Show available commands", Usage: "/help", Category: CategoryGeneral},
		{Name: "new", Description: "Start a new conversation", Usage: "/new", Category: CategoryConversation},
		{Name: "threads", Description: "Open the conversation list", Usage: "/threads", Category: CategoryConversation},
		{Name: "rename", Description: "Rename the current conversation", Usage: "/rename <title>", Category: CategoryConversation},
		{Name: "export", Description: "Export the transcript to a file", Usage: "/export [path]", Category: CategoryConversation},
		{Name: "copy", Description: "Copy the last answer to the clipboard", Usage: "/copy", Category: CategoryConversation},
		{Name: "attach", Description: "Attach a file to the next message", Usage: "/attach <path>", Category: CategoryConversation},
		{Name: "users", Description: "Manage user accounts (admin)", Usage: "/users", Category: CategorySession},
		{Name: "logout", Description: "Log out and return to the login screen", Usage: "/logout", Category: CategorySession},
		{Name: "quit", Description: "Quit deepchat", Usage: "/quit", Category: CategoryGeneral},
	}
	for _, cmd := range builtins {
		r.builtins[cmd.Name] = cmd
	}
}

// SetAgents replaces the agent commands with the backend's current
// agent list.
func (r *Registry) SetAgents(agents []api.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.agents = make(map[string]*Command, len(agents))
	for _, agent := range agents {
		desc := agent.Description
		if desc == "" {
			desc = "Route this message to the " + agent.DisplayName() + " agent"
		}
		r.agents[agent.Name] = &Command{
			Name:        agent.Name,
			Description: desc,
			Usage:       "/" + agent.Name + " <message>",
			Category:    CategoryAgents,
			Agent:       true,
		}
	}
}

// Get returns the command with the given name, or nil. Builtins shadow
// agent commands with the same name.
func (r *Registry) Get(name string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.ToLower(name)
	if cmd, ok := r.builtins[name]; ok {
		return cmd
	}
	if cmd, ok := r.agents[name]; ok {
		return cmd
	}
	return nil
}

// All returns every registered command sorted by name.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Command, 0, len(r.builtins)+len(r.agents))
	for _, cmd := range r.builtins {
		out = append(out, cmd)
	}
	for name, cmd := range r.agents {
		if _, shadowed := r.builtins[name]; !shadowed {
			out = append(out, cmd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByCategory returns commands grouped by category, names sorted within
// each group.
func (r *Registry) ByCategory() map[Category][]*Command {
	grouped := make(map[Category][]*Command)
	for _, cmd := range r.All() {
		grouped[cmd.Category] = append(grouped[cmd.Category], cmd)
	}
	return grouped
}

// CategoryOrder returns the preferred display order for categories.
func CategoryOrder() []Category {
	return []Category{
		CategoryConversation,
		CategoryAgents,
		CategorySession,
		CategoryGeneral,
	}
}
