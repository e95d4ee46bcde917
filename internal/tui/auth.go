package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phravins/genstudio/assets"
	"github.com/phravins/genstudio/internal/account"
)

type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

func (m Mode) String() string {
	if m == ModeSignup {
		return "Create account"
	}
	return "Sign in"
}

// Authenticator is what the form submits to.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (account.UserProfile, error)
	Signup(ctx context.Context, email, name, password string) (account.UserProfile, error)
}

const (
	fieldEmail = iota
	fieldName
	fieldPassword
)

var fieldLabels = [...]string{"Email", "Name", "Password"}

type authResultMsg struct {
	user account.UserProfile
	err  error
}

// AuthedMsg is emitted once the form signed someone in.
type AuthedMsg struct {
	User account.UserProfile
}

type AuthModel struct {
	auth    Authenticator
	mode    Mode
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	busy    bool
	err     string

	done bool
	user account.UserProfile
}

func NewAuthModel(auth Authenticator, mode Mode, email string) AuthModel {
	inputs := make([]textinput.Model, len(fieldLabels))
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = "> "
		inputs[i] = ti
	}
	inputs[fieldEmail].Placeholder = "you@example.com"
	inputs[fieldEmail].SetValue(email)
	inputs[fieldName].Placeholder = "Your name"
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPink)

	m := AuthModel{auth: auth, mode: mode, inputs: inputs, spinner: s}
	if email != "" {
		m.focus = len(m.fields()) - 1
	}
	m.inputs[m.fields()[m.focus]].Focus()
	return m
}

// fields lists the visible inputs for the current mode.
func (m AuthModel) fields() []int {
	if m.mode == ModeSignup {
		return []int{fieldEmail, fieldName, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m AuthModel) Done() (account.UserProfile, bool) {
	return m.user, m.done
}

func (m AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = authErrorText(msg.err)
			return m, nil
		}
		m.err = ""
		m.done, m.user = true, msg.user
		user := msg.user
		return m, func() tea.Msg { return AuthedMsg{User: user} }

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		case "ctrl+r":
			if m.mode == ModeLogin {
				m.mode = ModeSignup
			} else {
				m.mode = ModeLogin
			}
			m.err = ""
			cmd := m.setFocus(0)
			return m, cmd
		case "tab", "down":
			cmd := m.setFocus((m.focus + 1) % len(m.fields()))
			return m, cmd
		case "shift+tab", "up":
			n := len(m.fields())
			cmd := m.setFocus((m.focus + n - 1) % n)
			return m, cmd
		case "enter":
			if m.focus < len(m.fields())-1 {
				cmd := m.setFocus(m.focus + 1)
				return m, cmd
			}
			return m.submit()
		}
	}

	idx := m.fields()[m.focus]
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m *AuthModel) setFocus(i int) tea.Cmd {
	for _, idx := range []int{fieldEmail, fieldName, fieldPassword} {
		m.inputs[idx].Blur()
	}
	m.focus = i
	return m.inputs[m.fields()[i]].Focus()
}

func (m AuthModel) value(field int) string {
	return m.inputs[field].Value()
}

func (m AuthModel) submit() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.value(fieldEmail))
	password := m.value(fieldPassword)
	name := strings.TrimSpace(m.value(fieldName))

	if email == "" || password == "" || (m.mode == ModeSignup && name == "") {
		m.err = "Please fill in every field"
		return m, nil
	}

	m.busy, m.err = true, ""
	auth, mode := m.auth, m.mode
	call := func() tea.Msg {
		var (
			u   account.UserProfile
			err error
		)
		if mode == ModeSignup {
			u, err = auth.Signup(context.Background(), email, name, password)
		} else {
			u, err = auth.Login(context.Background(), email, password)
		}
		return authResultMsg{user: u, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, call)
}

func authErrorText(err error) string {
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, account.ErrEmailAlreadyInUse):
		return "An account with this email already exists"
	case errors.Is(err, account.ErrInvalidInput):
		return strings.TrimPrefix(err.Error(), account.ErrInvalidInput.Error()+": ")
	default:
		return "Something went wrong, please try again"
	}
}

func (m AuthModel) View() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(assets.Banner()) + "\n\n")
	b.WriteString(titleStyle.Render(m.mode.String()) + "\n\n")

	for i, idx := range m.fields() {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[idx]) + "\n")
		b.WriteString(m.inputs[idx].View() + "\n\n")
	}

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + loadingStyle.Render(" "+busyText(m.mode)) + "\n")
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}

	other := "create an account"
	if m.mode == ModeSignup {
		other = "sign in instead"
	}
	b.WriteString("\n" + subtleStyle.Render("enter: submit · tab: next field · ctrl+r: "+other+" · esc: back"))
	return WizardCardStyle.Render(b.String())
}

func busyText(mode Mode) string {
	if mode == ModeSignup {
		return "Creating account..."
	}
	return "Signing in..."
}
