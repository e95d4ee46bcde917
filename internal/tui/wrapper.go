package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phravins/genstudio/internal/account"
)

// ErrCancelled is returned when the user leaves a form without submitting.
var ErrCancelled = errors.New("cancelled")

// StandaloneWrapper wraps a model to handle BackMsg/Quit
// This allows models designed for nested use to work standalone (Quitting on BackMsg)
type StandaloneWrapper struct {
	model tea.Model
}

func Wrap(m tea.Model) StandaloneWrapper {
	return StandaloneWrapper{model: m}
}

func (m StandaloneWrapper) Init() tea.Cmd {
	return m.model.Init()
}

func (m StandaloneWrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case BackMsg, AuthedMsg:
		return m, tea.Quit
	}

	newModel, cmd := m.model.Update(msg)
	m.model = newModel
	return m, cmd
}

func (m StandaloneWrapper) View() string {
	return m.model.View()
}

// RunAuthForm shows the sign-in or sign-up form inline and returns the signed-in profile.
func RunAuthForm(auth Authenticator, mode Mode, email string) (account.UserProfile, error) {
	final, err := tea.NewProgram(Wrap(NewAuthModel(auth, mode, email))).Run()
	if err != nil {
		return account.UserProfile{}, err
	}
	if w, ok := final.(StandaloneWrapper); ok {
		if am, ok := w.model.(AuthModel); ok {
			if u, done := am.Done(); done {
				return u, nil
			}
		}
	}
	return account.UserProfile{}, ErrCancelled
}
