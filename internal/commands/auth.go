package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/assets"
	"github.com/phravins/genstudio/internal/account"
	"github.com/phravins/genstudio/internal/app"
	"github.com/phravins/genstudio/internal/tui"
)

var errNeedsTerminal = errors.New("missing flags: pass --email and --password, or run in a terminal")

// runForm shows the auth form with toasts held until it closes.
func (e *env) runForm(a *app.App, mode tui.Mode, email string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNeedsTerminal
	}
	e.gate.Hold()
	defer e.gate.Release()
	_, err := tui.RunAuthForm(a.Session, mode, email)
	return err
}

func newLoginCmd(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Example: `  genstudio login
  genstudio login --email demo@example.com --password password123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			if email == "" || password == "" {
				return e.runForm(a, tui.ModeLogin, email)
			}
			_, err = a.Session.Login(ctx(cmd), email, password)
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newSignupCmd(e *env) *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a free account with 3 generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			if email == "" || password == "" || name == "" {
				return e.runForm(a, tui.ModeSignup, email)
			}
			_, err = a.Session.Signup(ctx(cmd), email, name, password)
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			return a.Session.Logout(ctx(cmd))
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			u, ok := a.Session.CurrentUser()
			if !ok {
				return renderMarkdown(cmd.OutOrStdout(), assets.SignedOutHelp())
			}
			return renderMarkdown(cmd.OutOrStdout(), profileMarkdown(u, a.Session.CheckQuota()))
		},
	}
}

func profileMarkdown(u account.UserProfile, q account.Quota) string {
	plan := string(u.SubscriptionTier)
	if p, ok := account.PlanFor(u.SubscriptionTier); ok {
		plan = p.Name
	}
	status := "active"
	if !u.SubscriptionActive {
		status = "inactive"
	}
	return fmt.Sprintf(`# %s

- **Email:** %s
- **Plan:** %s (%s)
- **Generations left:** %s
- **Projects generated:** %d
- **Account id:** %s
`, u.Name, u.Email, plan, status, q, u.ProjectsGenerated, u.ID)
}
