package commands

import (
	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/tui"
)

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.openApp(cmd, true)
			if err != nil {
				return err
			}
			toasts, ch := tui.ToastChannel()
			prev := e.gate.Swap(toasts)
			defer e.gate.Swap(prev)
			return tui.RunRoot(a.Session, a.Projects, a.Catalog, ch)
		},
	}
}
