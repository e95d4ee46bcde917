package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/account"
	"github.com/phravins/genstudio/internal/history"
)

func newHistoryCmd(e *env) *cobra.Command {
	var all bool
	var prune int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List generated projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if prune < 0 {
				return fmt.Errorf("%w: --prune must not be negative", account.ErrInvalidInput)
			}
			if prune > 0 {
				n, err := a.History.DeleteOld(prune)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d entries older than %d days\n", n, prune)
				return nil
			}

			var entries []history.Entry
			if all {
				entries, err = a.History.Load()
			} else {
				u, ok := a.Session.CurrentUser()
				if !ok {
					return account.ErrNotAuthenticated
				}
				entries, err = a.History.ForUser(u.ID)
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No projects generated yet")
				return nil
			}
			for _, en := range entries {
				fmt.Fprintf(out, "%s  %-24s %-20s %s\n", en.CreatedAt.Format("2006-01-02 15:04"), en.Name, en.Template, en.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include every account")
	cmd.Flags().IntVar(&prune, "prune", 0, "delete entries older than this many days")
	return cmd
}
