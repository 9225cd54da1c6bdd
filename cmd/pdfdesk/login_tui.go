package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// View states
type viewState int

const (
	usernameView viewState = iota
	passwordView
)

// Strings
const (
	txtUsernamePlaceholder = "username"
	txtPasswordPlaceholder = "••••••••"
	txtUsernamePrompt      = "Enter your username"
	txtPasswordPrompt      = "Enter the password for %s"
	txtLoggingIn           = "Logging in..."
	txtMissingUsername     = "Username is required"
	txtMissingPassword     = "Password is required"
	txtHelp                = "Press 'Enter' to submit. 'Esc' to go back/quit. 'Ctrl+C' to quit."
)

var errLoginCancelled = errors.New("login cancelled by user")

// Styles
var (
	focusedStyle     = green
	helpStyle        = gray
	errorTextStyle   = red
	errorHeaderStyle = red.Bold(true)
	spinnerStyle     = cyan
	placeholderStyle = gray
	titleStyle       = heading
)

type LoginTUIOpts struct {
	Username     string
	ServerURL    string
	StateDir     string
	ConfigPath   string
	LoginHandler func(username, password string) error
}

type loginModel struct {
	opts *LoginTUIOpts

	usernameInput textinput.Model
	passwordInput textinput.Model
	spinner       spinner.Model

	currentView viewState
	isLoading   bool
	loggedIn    bool

	errorMessage string
	message      string

	submittedUsername string
}

type loginProcessedMsg struct{ err error }

func newLoginModel(opts *LoginTUIOpts) loginModel {
	username := textinput.New()
	username.Placeholder = txtUsernamePlaceholder
	username.CharLimit = 64
	username.Width = 64
	username.PromptStyle = focusedStyle
	username.TextStyle = focusedStyle
	username.PlaceholderStyle = placeholderStyle

	password := textinput.New()
	password.Placeholder = txtPasswordPlaceholder
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 32
	password.PromptStyle = focusedStyle
	password.TextStyle = focusedStyle
	password.PlaceholderStyle = placeholderStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := loginModel{
		opts:          opts,
		usernameInput: username,
		passwordInput: password,
		spinner:       s,
	}

	// a username given on the command line skips straight to the password
	if u := strings.TrimSpace(opts.Username); u != "" {
		m.submittedUsername = u
		m.currentView = passwordView
		m.passwordInput.Focus()
	} else {
		m.usernameInput.Focus()
	}

	return m
}

func (m loginModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			return m.handleEscapeKey()
		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			if m.currentView == usernameView {
				return m.submitUsername()
			}
			return m.submitPassword()
		}

		if m.usernameInput.Focused() {
			m.errorMessage = ""
			m.usernameInput, cmd = m.usernameInput.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.passwordInput.Focused() {
			m.errorMessage = ""
			m.passwordInput, cmd = m.passwordInput.Update(msg)
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case loginProcessedMsg:
		return m.handleLoginMsg(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m loginModel) handleEscapeKey() (tea.Model, tea.Cmd) {
	if m.currentView == passwordView {
		m.currentView = usernameView
		m.passwordInput.Reset()
		m.passwordInput.Blur()
		m.usernameInput.SetValue(m.submittedUsername)
		m.errorMessage = ""
		return m, m.usernameInput.Focus()
	}

	return m, tea.Quit
}

func (m loginModel) submitUsername() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.usernameInput.Value())
	if username == "" {
		m.errorMessage = txtMissingUsername
		return m, nil
	}

	m.errorMessage = ""
	m.submittedUsername = username
	m.currentView = passwordView
	m.usernameInput.Blur()
	return m, m.passwordInput.Focus()
}

func (m loginModel) submitPassword() (tea.Model, tea.Cmd) {
	password := m.passwordInput.Value()
	if password == "" {
		m.errorMessage = txtMissingPassword
		return m, nil
	}

	m.errorMessage = ""
	m.isLoading = true
	m.message = txtLoggingIn
	m.passwordInput.Blur()

	username := m.submittedUsername
	return m, func() tea.Msg {
		return loginProcessedMsg{err: m.opts.LoginHandler(username, password)}
	}
}

func (m loginModel) handleLoginMsg(msg loginProcessedMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false

	if msg.err != nil {
		m.errorMessage = fmt.Sprintf("%s %s", errorHeaderStyle.Render("ERROR:"), userMessage(msg.err))
		m.passwordInput.Reset()
		return m, m.passwordInput.Focus()
	}

	m.loggedIn = true
	return m, tea.Quit
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("PDFDesk"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Server  "), green.Render(m.opts.ServerURL)))
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("State   "), green.Render(m.opts.StateDir)))
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Config  "), green.Render(m.opts.ConfigPath)))
	b.WriteString("\n")

	switch m.currentView {
	case usernameView:
		b.WriteString(txtUsernamePrompt)
		b.WriteString("\n\n")
		b.WriteString(m.usernameInput.View())
	case passwordView:
		b.WriteString(fmt.Sprintf(txtPasswordPrompt, green.Render(m.submittedUsername)))
		b.WriteString("\n\n")
		b.WriteString(m.passwordInput.View())
	}

	if m.isLoading {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
	}

	if m.errorMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(errorTextStyle.Render(m.errorMessage))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(txtHelp))
	b.WriteString("\n")
	return b.String()
}

// RunLoginTUI runs the login form until the handler succeeds or the user quits.
func RunLoginTUI(opts LoginTUIOpts) error {
	final, err := tea.NewProgram(newLoginModel(&opts)).Run()
	if err != nil {
		return fmt.Errorf("login form: %w", err)
	}

	if fm, ok := final.(loginModel); ok && fm.loggedIn {
		return nil
	}
	return errLoginCancelled
}
