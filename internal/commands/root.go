// Package commands holds the genstudio cobra command tree.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/app"
	"github.com/phravins/genstudio/internal/config"
	"github.com/phravins/genstudio/internal/notify"
)

// env is shared by every command of one tree.
type env struct {
	configPath string
	verbose    bool
	hashCost   int

	gate *notify.Gate
	app  *app.App
}

// open loads the config and wires the app on first use.
func (e *env) open(cmd *cobra.Command) (*app.App, error) {
	return e.openApp(cmd, false)
}

func (e *env) openApp(cmd *cobra.Command, deferInit bool) (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	cfg, err := config.LoadConfig(e.configPath)
	if err != nil {
		return nil, err
	}

	e.gate = notify.NewGate(notify.NewConsole(cmd.OutOrStdout()))
	opts := app.Options{Notifier: e.gate, HashCost: e.hashCost, DeferInit: deferInit}
	if e.verbose {
		opts.Verbose = cmd.ErrOrStderr()
	}
	a, err := app.New(ctx(cmd), cfg, opts)
	if err != nil {
		return nil, err
	}
	e.app = a
	return a, nil
}

func (e *env) close() {
	if e.app != nil {
		e.app.Close()
		e.app = nil
	}
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

// Execute runs the command line in args. No arguments opens the TUI.
func Execute(c context.Context, args []string) error {
	e := &env{}
	defer e.close()

	root := newRoot(e)
	if len(args) == 0 {
		args = []string{"tui"}
	}
	root.SetArgs(args)
	return root.ExecuteContext(c)
}

func newRoot(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:     "genstudio",
		Version: config.Version,
		Short:   "Generate starter projects from templates",
		Long: `GenStudio scaffolds starter projects from a catalog of templates.
- Sign in or create an account
- Free accounts get 3 generations, Pro and Team are unlimited
- Projects are written to a folder or downloaded as a zip`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default ~/.genstudio.yaml)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "mirror the log to stderr")

	root.AddCommand(
		newLoginCmd(e),
		newSignupCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newQuotaCmd(e),
		newPointsCmd(e),
		newGenerateCmd(e),
		newTemplatesCmd(e),
		newPricingCmd(),
		newHistoryCmd(e),
		newConfigCmd(e),
		newTUICmd(e),
	)
	return root
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
