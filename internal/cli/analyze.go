package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/deps"
)

// analyzeCommand creates the analyze command for the aggregate report.
func (c *CLI) analyzeCommand() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the aggregate dependency report",
		Long: `Print the aggregate dependency report for the local catalog.

Every dependency line of every node is normalized and classified; the
report shows how nodes partition into with/without dependencies, the most
declared base names, and any embedded pip flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadSet()
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			agg := deps.Compile(set)
			prog.done(fmt.Sprintf("Compiled %d dependency lines", agg.TotalActive))

			fmt.Println(renderSummary(agg, len(set), topN))
			printNextStep("Inspect one dependency", "depscope ask")
			return nil
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "t", 25, "number of dependencies to list (0 for all)")

	return cmd
}
