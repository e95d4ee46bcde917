package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/account"
)

func newQuotaCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show how many generations are left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			u, ok := a.Session.CurrentUser()
			if !ok {
				return account.ErrNotAuthenticated
			}
			q := a.Session.CheckQuota()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan: %s\n", u.SubscriptionTier)
			fmt.Fprintf(out, "Remaining generations: %s\n", q)
			fmt.Fprintf(out, "Projects generated: %d\n", u.ProjectsGenerated)
			if !q.CanGenerate {
				fmt.Fprintln(out, "You are out of generations. Run 'genstudio pricing' to see the plans.")
			}
			return nil
		},
	}
}

func newPointsCmd(e *env) *cobra.Command {
	points := &cobra.Command{
		Use:   "points",
		Short: "Manage the point balance of the signed-in account",
	}
	points.AddCommand(&cobra.Command{
		Use:   "set <n>",
		Short: "Replace the point balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", account.ErrInvalidInput, args[0])
			}
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			if !a.Session.IsAuthenticated() {
				return account.ErrNotAuthenticated
			}
			if err := a.Session.UpdatePoints(ctx(cmd), n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Points set to %d\n", n)
			return nil
		},
	})
	return points
}
