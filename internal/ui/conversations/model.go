// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversations

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/storage"
	"github.com/jeranaias/deepchat-tui/internal/ui/components"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// listPageSize caps one fetch; the backend pages beyond it.
const listPageSize = 100

// =============================================================================
// MESSAGES
// =============================================================================

// SelectedMsg tells the root model to open a conversation in the chat
// screen.
type SelectedMsg struct {
	Conversation api.Conversation
}

// BackMsg tells the root model to return to the chat screen without a
// selection.
type BackMsg struct{}

// listLoadedMsg carries one page of the conversation index.
type listLoadedMsg struct {
	Items []api.ConversationSummary
	Err   error
}

// conversationReadyMsg carries the full record for a selection.
type conversationReadyMsg struct {
	Conversation *api.Conversation
	Err          error
}

// mutationDoneMsg reports create/rename/delete results; the list
// reloads after a successful mutation.
type mutationDoneMsg struct {
	Err error
}

// =============================================================================
// PROMPT MODES
// =============================================================================

type promptKind int

const (
	promptNone promptKind = iota
	promptFilter
	promptCreate
	promptRename
	promptDelete
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation list screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	state  *storage.StateStore

	sidebar *components.Sidebar
	spinner components.Spinner

	prompt     promptKind
	promptText textinput.Model

	items   []api.ConversationSummary
	loading bool
	errMsg  string

	width  int
	height int
}

// New creates the conversation list screen.
func New(client *api.Client, state *storage.StateStore) *Model {
	theme := styles.NewTheme()

	prompt := textinput.New()
	prompt.CharLimit = 128

	sp := components.NewConnectingSpinner()
	sp.SetMessage("Loading conversations")

	return &Model{
		theme:      theme,
		client:     client,
		state:      state,
		sidebar:    components.NewSidebar(theme),
		spinner:    sp,
		promptText: prompt,
	}
}

// Init loads the first page.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Start(), m.loadListCmd())
}

// SetSize lays out the screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.sidebar.SetSize(width-4, height-6)
	m.promptText.Width = width - 16
}

// Reload refetches the list, for the root model to call when returning
// to this screen.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Start(), m.loadListCmd())
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) loadListCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		list, err := client.ListConversations(context.Background(), listPageSize, 0)
		if err != nil {
			return listLoadedMsg{Err: err}
		}
		return listLoadedMsg{Items: list.Conversations}
	}
}

func (m *Model) openCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		conv, err := client.GetConversation(context.Background(), id)
		return conversationReadyMsg{Conversation: conv, Err: err}
	}
}

func (m *Model) createCmd(title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		conv, err := client.CreateConversation(context.Background(), title)
		if err != nil {
			return mutationDoneMsg{Err: err}
		}
		// Open the new conversation straight away.
		return conversationReadyMsg{Conversation: conv}
	}
}

func (m *Model) renameCmd(id, title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.RenameConversation(context.Background(), id, title)
		return mutationDoneMsg{Err: err}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return mutationDoneMsg{Err: client.DeleteConversation(context.Background(), id)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one Bubble Tea message.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case listLoadedMsg:
		m.loading = false
		m.spinner.Stop()
		if msg.Err != nil {
			m.errMsg = "could not load conversations: " + msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.Items
		m.syncSidebar()
		m.restoreSelection()
		return m, nil

	case conversationReadyMsg:
		if msg.Err != nil {
			m.errMsg = "could not open conversation: " + msg.Err.Error()
			return m, nil
		}
		conv := *msg.Conversation
		if m.state != nil {
			// Selection memory is best effort.
			_ = m.state.SetSelectedConversation(conv.ID)
		}
		return m, func() tea.Msg { return SelectedMsg{Conversation: conv} }

	case mutationDoneMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		return m, m.Reload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "esc", "ctrl+s":
		return m, func() tea.Msg { return BackMsg{} }

	case "up", "k":
		m.sidebar.MoveUp()
		return m, nil

	case "down", "j":
		m.sidebar.MoveDown()
		return m, nil

	case "enter":
		if item := m.sidebar.SelectedItem(); item != nil {
			return m, m.openCmd(item.ID)
		}
		return m, nil

	case "/":
		m.openPrompt(promptFilter, m.sidebar.Query)
		return m, m.promptText.Focus()

	case "n":
		m.openPrompt(promptCreate, "")
		return m, m.promptText.Focus()

	case "r":
		if item := m.sidebar.SelectedItem(); item != nil {
			m.openPrompt(promptRename, item.Title)
			return m, m.promptText.Focus()
		}
		return m, nil

	case "d":
		if item := m.sidebar.SelectedItem(); item != nil {
			m.openPrompt(promptDelete, "")
			return m, nil
		}
		return m, nil

	case "R":
		return m, m.Reload()
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	// Delete confirmation is y/n, not a text prompt.
	if m.prompt == promptDelete {
		switch msg.String() {
		case "y", "Y":
			m.prompt = promptNone
			if item := m.sidebar.SelectedItem(); item != nil {
				return m, m.deleteCmd(item.ID)
			}
			return m, nil
		case "n", "N", "esc":
			m.prompt = promptNone
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		if m.prompt == promptFilter {
			m.sidebar.SetQuery("")
		}
		m.closePrompt()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.promptText.Value())
		kind := m.prompt
		m.closePrompt()
		switch kind {
		case promptCreate:
			if text == "" {
				return m, nil
			}
			return m, m.createCmd(text)
		case promptRename:
			item := m.sidebar.SelectedItem()
			if item == nil || text == "" {
				return m, nil
			}
			return m, m.renameCmd(item.ID, text)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.promptText, cmd = m.promptText.Update(msg)
	if m.prompt == promptFilter {
		// Live filtering as the query changes.
		m.sidebar.SetQuery(m.promptText.Value())
	}
	return m, cmd
}

// =============================================================================
// STATE HELPERS
// =============================================================================

func (m *Model) openPrompt(kind promptKind, initial string) {
	m.prompt = kind
	m.promptText.SetValue(initial)
	m.promptText.CursorEnd()
	switch kind {
	case promptFilter:
		m.promptText.Prompt = "filter> "
	case promptCreate:
		m.promptText.Prompt = "title> "
	case promptRename:
		m.promptText.Prompt = "rename> "
	}
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptText.Blur()
	m.promptText.Reset()
}

// syncSidebar rebuilds the sidebar rows from the loaded page.
func (m *Model) syncSidebar() {
	items := make([]components.SidebarItem, 0, len(m.items))
	for _, c := range m.items {
		items = append(items, components.SidebarItem{
			ID:        c.ID,
			Title:     c.Title,
			UpdatedAt: c.UpdatedAt,
		})
	}
	m.sidebar.SetItems(items)
}

// restoreSelection moves the cursor to the conversation the user had
// open last session.
func (m *Model) restoreSelection() {
	if m.state == nil {
		return
	}
	last := m.state.SelectedConversation()
	if last == "" {
		return
	}
	for i, c := range m.items {
		if c.ID == last {
			m.sidebar.Selected = i
			return
		}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the conversation list screen.
func (m *Model) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("deepchat conversations") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + "\n")
	case m.errMsg != "":
		b.WriteString(errStyle.Render(styles.StatusIndicators.Error+" "+m.errMsg) + "\n\n")
		b.WriteString(m.sidebar.View())
	default:
		b.WriteString(m.sidebar.View())
	}

	b.WriteString("\n")
	if m.prompt == promptDelete {
		if item := m.sidebar.SelectedItem(); item != nil {
			b.WriteString(errStyle.Render(fmt.Sprintf("delete %q? y/n", item.Title)))
		}
	} else if m.prompt != promptNone {
		b.WriteString(m.promptText.View())
	} else {
		b.WriteString(hintStyle.Render("enter open | n new | r rename | d delete | / filter | esc back"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
