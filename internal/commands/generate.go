package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/project"
	"github.com/phravins/genstudio/pkg/utils"
)

func newGenerateCmd(e *env) *cobra.Command {
	var dir string
	var zip, git, reveal bool
	cmd := &cobra.Command{
		Use:     "generate <template> [name]",
		Aliases: []string{"gen", "new"},
		Short:   "Generate a project from a template",
		Example: `  genstudio generate "Go REST API" orders-api
  genstudio generate fastapi --zip`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}

			tplName := args[0]
			if _, ok := a.Catalog.Get(tplName); !ok {
				// Accept a fuzzy query when it has a clear best match.
				if hits := a.Catalog.Search(tplName); len(hits) > 0 {
					tplName = hits[0].Name
				}
			}
			req := project.Request{Template: tplName, ParentDir: dir, Archive: zip, InitGit: git}
			if len(args) > 1 {
				req.Name = args[1]
			}

			res, err := a.Projects.Generate(ctx(cmd), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s from %q (%d files)\n", res.Path, res.Template.Name, res.Files)
			if !zip {
				if res.Template.InstallCmd != "" {
					fmt.Fprintf(out, "  cd %s && %s\n", res.Path, res.Template.InstallCmd)
				}
				if res.Template.RunCmd != "" {
					fmt.Fprintf(out, "  %s\n", res.Template.RunCmd)
				}
			}
			fmt.Fprintf(out, "Generations left: %s\n", res.Quota)

			if reveal {
				target := res.Path
				if zip {
					target = filepath.Dir(res.Path)
				}
				if err := utils.OpenPath(target); err != nil {
					a.Logger.Warn().Err(err).Str("path", target).Msg("could not open project")
					fmt.Fprintf(out, "Could not open %s: %v\n", target, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "parent directory (default: workspace)")
	cmd.Flags().BoolVar(&zip, "zip", false, "write a zip archive instead of a folder")
	cmd.Flags().BoolVar(&git, "git", false, "run git init in the new project")
	cmd.Flags().BoolVar(&reveal, "open", false, "open the result in the file manager")
	return cmd
}
