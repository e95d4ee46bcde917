package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/project"
	"github.com/phravins/genstudio/internal/templates"
)

func newTemplatesCmd(e *env) *cobra.Command {
	tpl := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Browse the template catalog",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			items := a.Catalog.List()
			if category != "" {
				items = a.Catalog.Filter(category)
				if len(items) == 0 {
					return fmt.Errorf("no templates in category %q (have: %s)", category, strings.Join(categories(a.Catalog), ", "))
				}
			}
			printTemplates(cmd, items)
			return nil
		},
	}
	list.Flags().StringVarP(&category, "category", "c", "", "only show one category (api, cli, web)")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search templates by name, stack or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			hits := a.Catalog.Search(args[0])
			if len(hits) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No templates match %q\n", args[0])
				return nil
			}
			printTemplates(cmd, hits)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <template>",
		Short: "Print the files a template generates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			t, ok := a.Catalog.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", project.ErrTemplateNotFound, args[0])
			}
			files, err := project.Render(t, "my-project")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s · %s · %s\n%s\n", t.Name, t.Stack, t.Category, t.Description)
			for _, f := range files {
				fmt.Fprintf(out, "\n── %s ──\n%s\n", f.Path, highlightFile(out, f.Path, string(f.Content)))
			}
			return nil
		},
	}

	tpl.AddCommand(list, search, show)
	return tpl
}

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")).Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func printTemplates(cmd *cobra.Command, items []templates.Template) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))).
		Headers("NAME", "STACK", "CATEGORY", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, tpl := range items {
		t.Row(tpl.Name, tpl.Stack, tpl.Category, tpl.Description)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
}

func categories(c *templates.Catalog) []string {
	cats := c.Categories()
	sort.Strings(cats)
	return cats
}
