package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phravins/genstudio/internal/account"
	"github.com/phravins/genstudio/internal/project"
	"github.com/phravins/genstudio/internal/templates"
)

// Session is the part of the session manager the dashboard reads and drives.
type Session interface {
	Authenticator
	Init(ctx context.Context)
	CurrentUser() (account.UserProfile, bool)
	CheckQuota() account.Quota
	Logout(ctx context.Context) error
}

type Generator interface {
	Generate(ctx context.Context, req project.Request) (project.Result, error)
}

type templateItem struct {
	t templates.Template
}

func (i templateItem) Title() string       { return i.t.Name }
func (i templateItem) Description() string { return fmt.Sprintf("[%s] %s", i.t.Stack, i.t.Description) }
func (i templateItem) FilterValue() string { return i.t.Name + " " + i.t.Stack + " " + i.t.Category }

type generatedMsg struct {
	res project.Result
	err error
}

// LoggedOutMsg returns the root to the sign-in form.
type LoggedOutMsg struct{}

type DashboardModel struct {
	session Session
	gen     Generator
	list    list.Model
	spinner spinner.Model
	busy    bool

	status    string
	statusErr bool
	width     int
	height    int
}

func NewDashboardModel(s Session, gen Generator, catalog *templates.Catalog) DashboardModel {
	var items []list.Item
	for _, t := range catalog.List() {
		items = append(items, templateItem{t: t})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(colorPink).BorderForeground(colorPink)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(colorPurple).BorderForeground(colorPink)

	l := list.New(items, delegate, 60, 16)
	l.Title = "Templates"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPink)

	return DashboardModel{session: s, gen: gen, list: l, spinner: sp}
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-8, 20), max(msg.Height-12, 6))
		return m, nil

	case generatedMsg:
		m.busy = false
		if msg.err != nil {
			m.status, m.statusErr = generateErrorText(msg.err), true
			return m, nil
		}
		m.status = fmt.Sprintf("Created %s (%d files) · %s left", msg.res.Path, msg.res.Files, msg.res.Quota)
		m.statusErr = false
		return m, nil

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
		if m.busy || m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			return m.generate(false)
		case "z":
			return m.generate(true)
		case "o":
			s := m.session
			return m, func() tea.Msg {
				_ = s.Logout(context.Background())
				return LoggedOutMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m DashboardModel) generate(archive bool) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(templateItem)
	if !ok {
		return m, nil
	}
	m.busy, m.status = true, ""
	gen, name := m.gen, item.t.Name
	call := func() tea.Msg {
		res, err := gen.Generate(context.Background(), project.Request{Template: name, Archive: archive})
		return generatedMsg{res: res, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, call)
}

func generateErrorText(err error) string {
	switch {
	case errors.Is(err, account.ErrQuotaExceeded):
		return "No generations left. Upgrade to Pro for unlimited projects."
	case errors.Is(err, account.ErrNotAuthenticated):
		return "Please sign in first"
	default:
		return err.Error()
	}
}

func (m DashboardModel) header() string {
	u, ok := m.session.CurrentUser()
	if !ok {
		return subtleStyle.Render("Not signed in")
	}
	badge := badgeFreeStyle.Render(strings.ToUpper(string(u.SubscriptionTier)))
	if !u.IsFree() {
		badge = badgeProStyle.Render(strings.ToUpper(string(u.SubscriptionTier)))
	}
	q := m.session.CheckQuota()
	return lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render(u.Name), "  ", badge, "  ",
		subtleStyle.Render(fmt.Sprintf("generations left: %s · created: %d", q, u.ProjectsGenerated)),
	)
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n\n")
	b.WriteString(m.list.View() + "\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + loadingStyle.Render(" Generating...") + "\n")
	case m.status != "" && m.statusErr:
		b.WriteString(errorBoxStyle.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString(successBoxStyle.Render(m.status) + "\n")
	}
	b.WriteString(subtleStyle.Render("enter: generate · z: download zip · /: filter · o: sign out · q: quit"))
	return b.String()
}
