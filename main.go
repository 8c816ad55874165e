// deepchat TUI - a terminal client for the Deep Research assistant backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/config"
	"github.com/jeranaias/deepchat-tui/internal/storage"
	"github.com/jeranaias/deepchat-tui/internal/ui/admin"
	chatui "github.com/jeranaias/deepchat-tui/internal/ui/chat"
	"github.com/jeranaias/deepchat-tui/internal/ui/conversations"
	"github.com/jeranaias/deepchat-tui/internal/ui/login"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference so the API client's 401 handler and the
// config watcher can notify the running UI.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func main() {
	args := os.Args[1:]

	// Subcommands that run without the TUI.
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			fmt.Printf("deepchat-tui %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "login":
			exitOnError(runLogin(serverOverride(args[1:])))
			return
		case "logout":
			exitOnError(runLogout(serverOverride(args[1:])))
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	exitOnError(runTUI(serverOverride(args)))
}

func printUsage() {
	fmt.Println(`deepchat-tui - terminal client for the Deep Research assistant

Usage:
  deepchat-tui [--server URL]          start the chat interface
  deepchat-tui login [--server URL]    sign in and save the session
  deepchat-tui logout [--server URL]   clear the saved session
  deepchat-tui version                 print version information

Configuration lives in ~/.deepchat/config.toml; DEEPCHAT_* environment
variables override it.`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// serverOverride extracts --server from the argument list.
func serverOverride(args []string) string {
	for i, arg := range args {
		if arg == "--server" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--server="); ok {
			return v
		}
	}
	return ""
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads the config and builds the API client plus the session store.
func setup(server string) (*config.Config, *api.Client, *storage.SessionStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if server != "" {
		cfg.Server.URL = server
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	config.SetGlobal(cfg)

	client, err := api.NewClient(cfg.Server.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create api client: %w", err)
	}

	sessions, err := storage.NewDefaultSessionStore()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open session store: %w", err)
	}
	return cfg, client, sessions, nil
}

// restoreSession installs a saved session and validates it against the
// backend. Returns the authenticated user, or nil when a fresh login is
// needed.
func restoreSession(client *api.Client, sessions *storage.SessionStore) *api.UserInfo {
	token, err := sessions.Load()
	if err != nil || token == "" {
		return nil
	}
	client.SetSessionToken(token)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil
	}
	return user
}

// =============================================================================
// CLI LOGIN / LOGOUT
// =============================================================================

// runLogin signs in from the terminal and saves the session, so the
// TUI can start straight into the chat screen.
func runLogin(server string) error {
	cfg, client, sessions, err := setup(server)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("server: %s\n", cfg.Server.URL)
	fmt.Print("username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	fmt.Print("password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	user, err := client.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	if err := sessions.Save(client.SessionToken()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Printf("signed in as %s\n", user.Username)
	return nil
}

// runLogout clears the saved session, invalidating it server-side on a
// best effort basis.
func runLogout(server string) error {
	_, client, sessions, err := setup(server)
	if err != nil {
		return err
	}

	if token, err := sessions.Load(); err == nil && token != "" {
		client.SetSessionToken(token)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = client.Logout(ctx)
		cancel()
	}
	if err := sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

// =============================================================================
// TUI
// =============================================================================

func runTUI(server string) error {
	cfg, client, sessions, err := setup(server)
	if err != nil {
		return err
	}

	state, err := storage.OpenDefaultStateStore()
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer state.Close()

	user := restoreSession(client, sessions)

	app := newApp(cfg, client, sessions, state, user)

	// Expired sessions anywhere drop the UI back to the login screen.
	client.SetUnauthorizedHandler(func() {
		sendToProgram(sessionExpiredMsg{})
	})

	// Live config reload: agent routing changes apply to the next turn.
	if path, err := config.ConfigPath(); err == nil {
		if w, werr := config.NewWatcher(path, 500*time.Millisecond, func(next *config.Config) {
			config.SetGlobal(next)
			sendToProgram(configReloadedMsg{Config: next})
		}); werr == nil {
			if werr := w.Watch(); werr == nil {
				defer w.Close()
			}
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	programMu.Lock()
	programRef = p
	programMu.Unlock()

	_, err = p.Run()

	programMu.Lock()
	programRef = nil
	programMu.Unlock()
	return err
}

// =============================================================================
// ROOT MODEL
// =============================================================================

type screen int

const (
	screenLogin screen = iota
	screenChat
	screenConversations
	screenAdmin
)

// sessionExpiredMsg arrives from the client's 401 handler.
type sessionExpiredMsg struct{}

// configReloadedMsg arrives from the config watcher.
type configReloadedMsg struct {
	Config *config.Config
}

// loggedOutMsg reports that the logout request finished.
type loggedOutMsg struct{}

// app is the root Bubble Tea model switching between screens.
type app struct {
	cfg      *config.Config
	client   *api.Client
	sessions *storage.SessionStore
	state    *storage.StateStore

	login *login.Model
	chat  *chatui.Model
	convs *conversations.Model
	admin *admin.Model

	current screen
	user    *api.UserInfo

	width  int
	height int
}

func newApp(cfg *config.Config, client *api.Client, sessions *storage.SessionStore, state *storage.StateStore, user *api.UserInfo) *app {
	agent := cfg.Chat.DefaultAgent
	if last := state.LastAgent(); last != "" {
		agent = last
	}

	a := &app{
		cfg:      cfg,
		client:   client,
		sessions: sessions,
		state:    state,
		login:    login.New(client),
		chat:     chatui.New(chatui.Options{Client: client, State: state, Agent: agent}),
		convs:    conversations.New(client, state),
		admin:    admin.New(client),
		user:     user,
	}
	if user != nil {
		a.current = screenChat
	}
	return a
}

// Init starts the active screen.
func (a *app) Init() tea.Cmd {
	if a.current == screenChat {
		return a.chat.Init()
	}
	return a.login.Init()
}

// Update routes messages to the active screen and handles transitions.
func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.SetSize(msg.Width, msg.Height)
		a.chat.SetSize(msg.Width, msg.Height)
		a.convs.SetSize(msg.Width, msg.Height)
		a.admin.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Emergency exit works everywhere.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case login.LoggedInMsg:
		a.user = msg.User
		if a.cfg.Server.RememberSession {
			// Best effort; the session still works without the file.
			_ = a.sessions.Save(a.client.SessionToken())
		}
		a.current = screenChat
		return a, a.chat.Init()

	case chatui.ShowConversationsMsg:
		a.current = screenConversations
		return a, a.convs.Reload()

	case chatui.ShowAdminMsg:
		a.current = screenAdmin
		return a, a.admin.Init()

	case chatui.LogoutRequestedMsg:
		return a, a.logoutCmd()

	case sessionExpiredMsg:
		a.toLogin()
		return a, a.login.Init()

	case loggedOutMsg:
		a.toLogin()
		return a, a.login.Init()

	case configReloadedMsg:
		a.cfg = msg.Config
		if agent := msg.Config.Chat.DefaultAgent; agent != "" {
			a.chat.Controller().SetAgent(agent)
		}
		return a, nil

	case conversations.SelectedMsg:
		a.current = screenChat
		return a, a.chat.AttachConversation(msg.Conversation)

	case conversations.BackMsg:
		a.current = screenChat
		return a, nil

	case admin.BackMsg:
		a.current = screenChat
		return a, nil
	}

	var cmd tea.Cmd
	switch a.current {
	case screenLogin:
		a.login, cmd = a.login.Update(msg)
	case screenChat:
		a.chat, cmd = a.chat.Update(msg)
	case screenConversations:
		a.convs, cmd = a.convs.Update(msg)
	case screenAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

// View renders the active screen.
func (a *app) View() string {
	switch a.current {
	case screenChat:
		return a.chat.View()
	case screenConversations:
		return a.convs.View()
	case screenAdmin:
		return a.admin.View()
	default:
		return a.login.View()
	}
}

// toLogin resets auth state and swaps in a fresh login form.
func (a *app) toLogin() {
	a.user = nil
	a.login = login.New(a.client)
	a.login.SetSize(a.width, a.height)
	a.current = screenLogin
}

// logoutCmd invalidates the session and clears the saved token.
func (a *app) logoutCmd() tea.Cmd {
	client := a.client
	sessions := a.sessions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Logout(ctx)
		_ = sessions.Clear()
		return loggedOutMsg{}
	}
}
