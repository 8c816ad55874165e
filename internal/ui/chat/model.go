// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat screen for the deepchat TUI.
//
// This file defines the Model struct, construction and sizing. The
// update loop lives in update.go, rendering in view.go.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/api"
	chatcore "github.com/jeranaias/deepchat-tui/internal/chat"
	"github.com/jeranaias/deepchat-tui/internal/commands"
	"github.com/jeranaias/deepchat-tui/internal/storage"
	"github.com/jeranaias/deepchat-tui/internal/ui/components"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a new chat screen.
type Options struct {
	// Client is the deepchat API client. Required.
	Client *api.Client

	// State persists UI preferences across runs. Optional.
	State *storage.StateStore

	// Agent preselects the routing agent for new turns.
	Agent string

	// ConversationTitle labels the status bar. Empty means untitled.
	ConversationTitle string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	client     *api.Client
	controller *chatcore.Controller
	uploads    *chatcore.UploadManager
	state      *storage.StateStore

	registry  *commands.Registry
	parser    *commands.Parser
	completer *commands.Completer

	// Transcript display.
	viewport   viewport.Model
	transcript *components.MessageList
	render     *renderCache

	// Composer.
	input      *components.InputArea
	completion *commands.CompletionState

	// Attach prompt replaces the composer while choosing a file.
	attachInput textinput.Model
	attaching   bool

	// Chrome.
	header    *components.Header
	statusBar *components.StatusBar
	errorBox  components.ErrorBox
	notice    string

	agents []api.Agent
	skills []api.Skill

	conversationID    string
	conversationTitle string

	width  int
	height int
	ready  bool

	// ticking is true while the render tick loop is scheduled.
	ticking bool

	// frame indexes the spinner animation, advanced per tick.
	frame int

	showHelp bool
	quitting bool
}

// New creates the chat screen.
func New(opts Options) *Model {
	theme := styles.NewTheme()

	controller := chatcore.NewController(opts.Client)
	if opts.Agent != "" {
		controller.SetAgent(opts.Agent)
	}

	registry := commands.NewRegistry()

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	transcript := components.NewMessageList(theme)

	attach := textinput.New()
	attach.Placeholder = "path to file"
	attach.Prompt = "attach> "
	attach.PromptStyle = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	attach.CharLimit = 1024

	statusBar := components.NewStatusBar(theme)
	statusBar.SetConnected(true)
	if opts.Agent != "" {
		statusBar.SetAgent(opts.Agent)
	}

	header := components.NewHeader(theme)
	if opts.Agent != "" {
		header.SetAgent(opts.Agent)
	}

	errorBox := components.NewErrorBox(theme)

	m := &Model{
		theme:             theme,
		keys:              DefaultKeyMap(),
		client:            opts.Client,
		controller:        controller,
		uploads:           chatcore.NewUploadManager(opts.Client),
		state:             opts.State,
		registry:          registry,
		parser:            commands.NewParser(registry),
		completer:         commands.NewCompleter(registry),
		viewport:          vp,
		transcript:        transcript,
		render:            newRenderCache(),
		input:             components.NewInputArea(theme),
		completion:        commands.NewCompletionState(),
		attachInput:       attach,
		header:            header,
		statusBar:         statusBar,
		errorBox:          errorBox,
		conversationTitle: opts.ConversationTitle,
	}
	return m
}

// Init starts the screen: focus the composer and load the agent list.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		textinput.Blink,
		m.loadAgentsCmd(),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Controller exposes the turn controller, mainly for the root model to
// inspect thread state when switching screens.
func (m *Model) Controller() *chatcore.Controller {
	return m.controller
}

// Busy reports whether a turn is streaming or uploads are in flight.
func (m *Model) Busy() bool {
	return m.controller.Busy() || m.uploads.Pending()
}

// SetConversationTitle updates the status bar label.
func (m *Model) SetConversationTitle(title string) {
	m.conversationTitle = title
}

// AttachConversation switches the screen to an existing conversation's
// thread. The history load runs asynchronously; HistoryLoadedMsg
// reports the result.
func (m *Model) AttachConversation(conv api.Conversation) tea.Cmd {
	m.conversationID = conv.ID
	m.conversationTitle = conv.Title
	return m.attachThreadCmd(conv.ThreadID)
}

// =============================================================================
// SIZING
// =============================================================================

// SetSize lays out the screen for the given terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.errorBox.SetWidth(width)
	m.input.SetWidth(width - 2)
	m.attachInput.Width = width - 12

	contentWidth := width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}
	m.transcript.SetWidth(contentWidth)

	m.viewport.Width = width
	m.viewport.Height = m.transcriptHeight()
	m.render.ForceUpdate()
	m.refreshTranscript()

	m.ready = true
}

// transcriptHeight returns the rows left for the viewport after the
// chrome around it.
func (m *Model) transcriptHeight() int {
	// Header, composer block and status bar.
	h := m.height - lipgloss.Height(m.header.View()) - m.composerHeight() - 1
	if h < 3 {
		h = 3
	}
	return h
}

// composerHeight returns the rows the composer block occupies,
// including upload cards and the completion popup.
func (m *Model) composerHeight() int {
	h := lipgloss.Height(m.input.View())
	if cards := m.uploadCardsView(); cards != "" {
		h += lipgloss.Height(cards)
	}
	if popup := m.completionView(); popup != "" {
		h += lipgloss.Height(popup)
	}
	if m.errorBox.Visible() {
		h += lipgloss.Height(m.errorBox.View())
	}
	return h
}

// =============================================================================
// BACKGROUND CONTEXT
// =============================================================================

// turnContext is the context turns and uploads run under. Cancellation
// is handled through the controller, not the context, so background is
// correct here.
func (m *Model) turnContext() context.Context {
	return context.Background()
}
