// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/ui/components"
	"github.com/jeranaias/deepchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// LoggedInMsg reports a successful login to the root model.
type LoggedInMsg struct {
	User *api.UserInfo
}

// loginResultMsg is the internal outcome of one login attempt.
type loginResultMsg struct {
	User *api.UserInfo
	Err  error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

// Model is the Bubble Tea model for the login screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	inputs [fieldCount]textinput.Model
	focus  int

	spinner    components.Spinner
	submitting bool
	errMsg     string

	width  int
	height int
}

// New creates the login screen.
func New(client *api.Client) *Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "  "
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	sp := components.NewConnectingSpinner()
	sp.SetMessage("Signing in")

	m := &Model{
		theme:   styles.NewTheme(),
		client:  client,
		spinner: sp,
	}
	m.inputs[fieldUsername] = username
	m.inputs[fieldPassword] = password
	return m
}

// Init focuses the username field.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputs[fieldUsername].Focus(), textinput.Blink)
}

// SetSize records the terminal dimensions for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
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

	case loginResultMsg:
		m.submitting = false
		m.spinner.Stop()
		if msg.Err != nil {
			m.errMsg = loginErrorText(msg.Err)
			m.inputs[fieldPassword].Reset()
			return m, m.setFocus(fieldPassword)
		}
		return m, func() tea.Msg { return LoggedInMsg{User: msg.User} }

	case tea.KeyMsg:
		if m.submitting {
			// Ignore typing while the attempt is in flight.
			return m, nil
		}
		switch msg.String() {
		case "enter":
			if m.focus == fieldUsername {
				return m, m.setFocus(fieldPassword)
			}
			return m, m.submit()
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "esc":
			m.errMsg = ""
			return m, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.submitting {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// setFocus moves focus to the given field.
func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// submit starts a login attempt.
func (m *Model) submit() tea.Cmd {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()

	if username == "" || password == "" {
		m.errMsg = "username and password are required"
		return nil
	}

	m.submitting = true
	m.errMsg = ""

	client := m.client
	return tea.Batch(
		m.spinner.Start(),
		func() tea.Msg {
			user, err := client.Login(context.Background(), username, password)
			return loginResultMsg{User: user, Err: err}
		},
	)
}

// loginErrorText maps API failures to a short form message.
func loginErrorText(err error) string {
	if errors.Is(err, api.ErrUnauthorized) {
		return "invalid username or password"
	}
	return "login failed: " + err.Error()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the centered login form.
func (m *Model) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	errStyle := lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("deepchat") + "\n\n")
	b.WriteString(labelStyle.Render("Username") + "\n")
	b.WriteString(m.inputs[fieldUsername].View() + "\n\n")
	b.WriteString(labelStyle.Render("Password") + "\n")
	b.WriteString(m.inputs[fieldPassword].View() + "\n\n")

	switch {
	case m.submitting:
		b.WriteString(m.spinner.View() + "\n")
	case m.errMsg != "":
		b.WriteString(errStyle.Render(styles.StatusIndicators.Error+" "+m.errMsg) + "\n")
	default:
		b.WriteString(hintStyle.Render("enter to sign in") + "\n")
	}

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 3).
		Width(44).
		Render(b.String())

	if m.width == 0 || m.height == 0 {
		return form
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
