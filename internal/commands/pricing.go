package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phravins/genstudio/internal/account"
)

func newPricingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pricing",
		Short: "Compare the Free, Pro and Team plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderMarkdown(cmd.OutOrStdout(), pricingMarkdown(account.Plans))
		},
	}
}

func pricingMarkdown(plans []account.Plan) string {
	var b strings.Builder
	b.WriteString("# Plans\n\n| Plan | Price | Generations |\n|---|---|---|\n")
	for _, p := range plans {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Name, price(p.PriceCents), p.Allowance)
	}
	for _, p := range plans {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n\n", p.Name, p.Description)
		for _, f := range p.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	return b.String()
}

func price(cents int) string {
	if cents == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%d/month", cents/100)
}
