// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/jeranaias/deepchat-tui/internal/api"
)

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"help", "new", "threads", "rename", "export", "copy", "attach", "users", "logout", "quit"} {
		cmd := r.Get(name)
		if cmd == nil {
			t.Fatalf("builtin %q not registered", name)
		}
		if cmd.Agent {
			t.Errorf("builtin %q marked as agent command", name)
		}
		if cmd.Description == "" {
			t.Errorf("builtin %q has no description", name)
		}
	}

	if r.Get("research") != nil {
		t.Error("unknown command should return nil before SetAgents")
	}
}

func TestRegistryGetCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	if r.Get("HELP") == nil {
		t.Error("Get should be case-insensitive")
	}
}

func TestRegistrySetAgents(t *testing.T) {
	r := NewRegistry()
	r.SetAgents([]api.Agent{
		{Name: "research", Description: "Deep research on a topic"},
		{Name: "scout", Description: ""},
	})

	cmd := r.Get("research")
	if cmd == nil {
		t.Fatal("agent command not registered")
	}
	if !cmd.Agent {
		t.Error("agent command should have Agent set")
	}
	if cmd.Category != CategoryAgents {
		t.Errorf("category = %q, want %q", cmd.Category, CategoryAgents)
	}
	if cmd.Description != "Deep research on a topic" {
		t.Errorf("description = %q", cmd.Description)
	}

	// Agents with no description get a generated one.
	scout := r.Get("scout")
	if scout == nil {
		t.Fatal("scout not registered")
	}
	if scout.Description == "" {
		t.Error("agent without description should get a fallback")
	}
}

func TestRegistrySetAgentsReplaces(t *testing.T) {
	r := NewRegistry()
	r.SetAgents([]api.Agent{{Name: "research"}})
	r.SetAgents([]api.Agent{{Name: "scout"}})

	if r.Get("research") != nil {
		t.Error("old agent should be gone after refresh")
	}
	if r.Get("scout") == nil {
		t.Error("new agent should be registered")
	}
}

func TestRegistryBuiltinShadowsAgent(t *testing.T) {
	r := NewRegistry()
	r.SetAgents([]api.Agent{{Name: "help", Description: "an agent named help"}})

	cmd := r.Get("help")
	if cmd == nil {
		t.Fatal("help missing")
	}
	if cmd.Agent {
		t.Error("builtin should shadow the agent command")
	}

	// All must not list the shadowed agent twice.
	seen := 0
	for _, c := range r.All() {
		if c.Name == "help" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("help appears %d times in All, want 1", seen)
	}
}

func TestRegistryAllSorted(t *testing.T) {
	r := NewRegistry()
	r.SetAgents([]api.Agent{{Name: "zeta"}, {Name: "alpha"}})

	all := r.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("All not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}

func TestRegistryByCategory(t *testing.T) {
	r := NewRegistry()
	r.SetAgents([]api.Agent{{Name: "research"}})

	grouped := r.ByCategory()
	if len(grouped[CategoryAgents]) != 1 {
		t.Errorf("agents group has %d commands, want 1", len(grouped[CategoryAgents]))
	}
	if len(grouped[CategoryConversation]) == 0 {
		t.Error("conversation group empty")
	}
	for _, cat := range CategoryOrder() {
		if cat == CategorySession && len(grouped[cat]) == 0 {
			t.Error("session group empty")
		}
	}
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"/research find papers", true},
		{"  /help  ", true},
		{"/", false},
		{"/ spaced", false},
		{"help", false},
		{"", false},
		{"what is 1/2?", false},
	}
	for _, tt := range tests {
		if got := IsCommand(tt.input); got != tt.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	r := NewRegistry()
	r.SetAgents([]api.Agent{{Name: "research"}})
	p := NewParser(r)

	result := p.Parse("/research find recent papers")
	if !result.IsCommand {
		t.Fatal("expected a command")
	}
	if result.Command == nil || !result.Command.Agent {
		t.Error("expected a resolved agent command")
	}
	if result.Name != "research" {
		t.Errorf("name = %q", result.Name)
	}
	if result.Rest != "find recent papers" {
		t.Errorf("rest = %q", result.Rest)
	}
}

func TestParseBuiltinNoArgs(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/new")
	if !result.IsCommand || result.Command == nil {
		t.Fatal("expected the builtin to resolve")
	}
	if result.Rest != "" {
		t.Errorf("rest = %q, want empty", result.Rest)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/bogus stuff")
	if !result.IsCommand {
		t.Error("unknown commands still parse as commands")
	}
	if result.Command != nil {
		t.Error("unknown command should not resolve")
	}
	if result.Name != "bogus" {
		t.Errorf("name = %q", result.Name)
	}
}

func TestParsePlainText(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("hello there")
	if result.IsCommand {
		t.Error("plain text is not a command")
	}
}

func TestExtractCommandName(t *testing.T) {
	if got := ExtractCommandName("/Rename new title"); got != "rename" {
		t.Errorf("got %q, want %q", got, "rename")
	}
	if got := ExtractCommandName("not a command"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestPartialCommand(t *testing.T) {
	tests := []struct {
		input   string
		partial string
		ok      bool
	}{
		{"/", "", true},
		{"/re", "re", true},
		{"/RE", "re", true},
		{"/rename ", "", false},
		{"/rename title", "", false},
		{"hello", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		partial, ok := PartialCommand(tt.input)
		if partial != tt.partial || ok != tt.ok {
			t.Errorf("PartialCommand(%q) = (%q, %v), want (%q, %v)",
				tt.input, partial, ok, tt.partial, tt.ok)
		}
	}
}
