package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phravins/genstudio/internal/notify"
	"github.com/phravins/genstudio/internal/templates"
)

// Global States
const (
	StateLoading = iota
	StateAuth
	StateDashboard
)

type BackMsg struct{}

type sessionReadyMsg struct{}

// ToastMsg carries a session toast into the program.
type ToastMsg struct {
	OK   bool
	Text string
}

type RootModel struct {
	state  int
	width  int
	height int

	session Session
	gen     Generator
	catalog *templates.Catalog
	toasts  <-chan ToastMsg
	toast   *ToastMsg
	spinner spinner.Model

	auth      AuthModel
	dashboard DashboardModel
}

// NewRootModel starts on a loading screen while the stored session is restored.
func NewRootModel(s Session, gen Generator, catalog *templates.Catalog, toasts <-chan ToastMsg) RootModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle
	return RootModel{state: StateLoading, session: s, gen: gen, catalog: catalog, toasts: toasts, spinner: sp}
}

func (m RootModel) Init() tea.Cmd {
	s := m.session
	restore := func() tea.Msg {
		s.Init(context.Background())
		return sessionReadyMsg{}
	}
	return tea.Batch(m.waitToast(), m.spinner.Tick, restore)
}

func (m RootModel) waitToast() tea.Cmd {
	if m.toasts == nil {
		return nil
	}
	ch := m.toasts
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return t
	}
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ToastMsg:
		m.toast = &msg
		return m, m.waitToast()

	case sessionReadyMsg:
		if _, ok := m.session.CurrentUser(); ok {
			return m.Update(AuthedMsg{})
		}
		m.state = StateAuth
		m.auth = NewAuthModel(m.session, ModeLogin, "")
		return m, m.auth.Init()

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case AuthedMsg:
		m.state = StateDashboard
		m.dashboard = NewDashboardModel(m.session, m.gen, m.catalog)
		newM, cmd := m.dashboard.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.dashboard = newM.(DashboardModel)
		return m, tea.Batch(cmd, m.dashboard.Init())

	case LoggedOutMsg:
		m.state = StateAuth
		m.auth = NewAuthModel(m.session, ModeLogin, "")
		return m, m.auth.Init()

	case BackMsg:
		return m, tea.Quit
	}

	switch m.state {
	case StateAuth:
		newM, newCmd := m.auth.Update(msg)
		m.auth = newM.(AuthModel)
		cmds = append(cmds, newCmd)
	case StateDashboard:
		newM, newCmd := m.dashboard.Update(msg)
		m.dashboard = newM.(DashboardModel)
		cmds = append(cmds, newCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	var body string
	switch m.state {
	case StateLoading:
		body = m.spinner.View() + loadingStyle.Render(" Restoring session...")
	case StateAuth:
		body = m.auth.View()
	case StateDashboard:
		body = m.dashboard.View()
	default:
		body = "Unknown State"
	}
	if m.toast != nil {
		style := successBoxStyle
		if !m.toast.OK {
			style = errorBoxStyle
		}
		body = lipgloss.JoinVertical(lipgloss.Left, body, style.Render(m.toast.Text))
	}
	return AppBorderStyle.Render(body)
}

// ToastChannel returns a notifier feeding a channel the root model listens on.
// Toasts are dropped when nobody keeps up.
func ToastChannel() (notify.Notifier, <-chan ToastMsg) {
	ch := make(chan ToastMsg, 16)
	n := notify.Func(func(ok bool, text string) {
		select {
		case ch <- ToastMsg{OK: ok, Text: text}:
		default:
		}
	})
	return n, ch
}

func RunRoot(s Session, gen Generator, catalog *templates.Catalog, toasts <-chan ToastMsg) error {
	p := tea.NewProgram(NewRootModel(s, gen, catalog, toasts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running genstudio: %w", err)
	}
	return nil
}
