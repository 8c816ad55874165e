// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// BackMsg tells the root model to return to the chat screen.
type BackMsg struct{}

// usersLoadedMsg carries the account list.
type usersLoadedMsg struct {
	Users []api.UserInfo
	Err   error
}

// mutationDoneMsg reports create/delete/status results; the list
// reloads after success.
type mutationDoneMsg struct {
	Err error
}

// =============================================================================
// PROMPTS
// =============================================================================

type promptKind int

const (
	promptNone promptKind = iota
	promptCreate
	promptDelete
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the user management screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	table table.Model
	users []api.UserInfo

	prompt     promptKind
	promptText textinput.Model

	loading bool
	errMsg  string
	notice  string

	width  int
	height int
}

// New creates the admin screen.
func New(client *api.Client) *Model {
	columns := []table.Column{
		{Title: "Username", Width: 24},
		{Title: "Role", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "Created", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	// High contrast selection, matching the sidebar.
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Foreground(styles.Cyan).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.OverlayDim).
		BorderBottom(true)
	ts.Selected = ts.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.SelectionBg).
		Bold(true)
	t.SetStyles(ts)

	prompt := textinput.New()
	prompt.CharLimit = 256

	return &Model{
		theme:      styles.NewTheme(),
		client:     client,
		table:      t,
		promptText: prompt,
	}
}

// Init loads the account list.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.loadUsersCmd()
}

// SetSize lays out the screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	h := height - 8
	if h < 4 {
		h = 4
	}
	m.table.SetHeight(h)
	m.promptText.Width = width - 16
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) loadUsersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		return usersLoadedMsg{Users: users, Err: err}
	}
}

func (m *Model) createUserCmd(user api.UserCreate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateUser(context.Background(), user)
		return mutationDoneMsg{Err: err}
	}
}

func (m *Model) deleteUserCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return mutationDoneMsg{Err: client.DeleteUser(context.Background(), id)}
	}
}

func (m *Model) toggleStatusCmd(user api.UserInfo) tea.Cmd {
	client := m.client
	next := api.UserDisabled
	if user.Status == api.UserDisabled {
		next = api.UserActive
	}
	return func() tea.Msg {
		_, err := client.SetUserStatus(context.Background(), user.ID, next)
		return mutationDoneMsg{Err: err}
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

	case usersLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = userErrorText(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		m.users = msg.Users
		m.syncTable()
		return m, nil

	case mutationDoneMsg:
		if msg.Err != nil {
			m.errMsg = userErrorText(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		m.loading = true
		return m, m.loadUsersCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return BackMsg{} }

	case "n":
		m.prompt = promptCreate
		m.promptText.Prompt = "new user> "
		m.promptText.Placeholder = "username password [admin]"
		m.promptText.Reset()
		return m, m.promptText.Focus()

	case "d":
		if m.selectedUser() != nil {
			m.prompt = promptDelete
		}
		return m, nil

	case "t":
		if user := m.selectedUser(); user != nil {
			return m, m.toggleStatusCmd(*user)
		}
		return m, nil

	case "R":
		m.loading = true
		return m, m.loadUsersCmd()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.prompt == promptDelete {
		switch msg.String() {
		case "y", "Y":
			m.prompt = promptNone
			if user := m.selectedUser(); user != nil {
				return m, m.deleteUserCmd(user.ID)
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
		m.prompt = promptNone
		m.promptText.Blur()
		return m, nil

	case "enter":
		line := strings.TrimSpace(m.promptText.Value())
		m.prompt = promptNone
		m.promptText.Blur()

		user, err := parseCreateLine(line)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		return m, m.createUserCmd(user)
	}

	var cmd tea.Cmd
	m.promptText, cmd = m.promptText.Update(msg)
	return m, cmd
}

// =============================================================================
// HELPERS
// =============================================================================

// parseCreateLine parses "username password [admin]" into a create
// request.
func parseCreateLine(line string) (api.UserCreate, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return api.UserCreate{}, errUsage
	}

	user := api.UserCreate{
		Username: fields[0],
		Password: fields[1],
		Role:     api.RoleUser,
	}
	if len(fields) >= 3 {
		if fields[2] != "admin" {
			return api.UserCreate{}, errUsage
		}
		user.Role = api.RoleAdmin
	}
	return user, nil
}

var errUsage = usageError("usage: username password [admin]")

type usageError string

func (e usageError) Error() string { return string(e) }

// selectedUser returns the account under the cursor.
func (m *Model) selectedUser() *api.UserInfo {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.users) {
		return nil
	}
	return &m.users[idx]
}

// syncTable rebuilds the rows from the account list.
func (m *Model) syncTable() {
	rows := make([]table.Row, 0, len(m.users))
	for _, u := range m.users {
		created := ""
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, table.Row{u.Username, string(u.Role), string(u.Status), created})
	}
	m.table.SetRows(rows)
}

// userErrorText keeps permission failures readable.
func userErrorText(err error) string {
	if errors.Is(err, api.ErrForbidden) {
		return "admin role required"
	}
	return err.Error()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the user management screen.
func (m *Model) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("deepchat users") + "\n\n")

	if m.loading {
		b.WriteString(hintStyle.Render("loading...") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(styles.StatusIndicators.Error+" "+m.errMsg) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.prompt == promptDelete:
		if user := m.selectedUser(); user != nil {
			b.WriteString(errStyle.Render("delete " + user.Username + "? y/n"))
		}
	case m.prompt == promptCreate:
		b.WriteString(m.promptText.View())
	default:
		b.WriteString(hintStyle.Render("n new | t toggle status | d delete | R reload | esc back"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
