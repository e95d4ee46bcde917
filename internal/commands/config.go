package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/config"
)

func newConfigCmd(e *env) *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Read and change settings",
	}
	cfg.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key in the config file",
		Long:  "Known keys: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadConfig(e.configPath); err != nil {
				return err
			}
			if err := config.SaveConfig(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (saved to %s)\n", args[0], args[1], config.Path())
			return nil
		},
	})
	cfg.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadConfig(e.configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.GetString(args[0]))
			return nil
		},
	})
	return cfg
}
