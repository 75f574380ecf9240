package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/attrs"
	"github.com/matzehuels/depscope/pkg/registry"
)

// attrsCommand creates the attrs command for attaching external statistics.
func (c *CLI) attrsCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "attrs",
		Short: "Attach external CSV statistics to nodes",
		Long: `Attach external CSV statistics to nodes.

Feeds are configured in config.toml; each feed is a CSV whose rows name a
repository URL and a file path. Rows are matched to nodes by normalized
repository URL, with an optional fuzzy fallback on the repository name.
Matched rows become per-node attributes queryable alongside dependencies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(c.Config.Feeds) == 0 {
				printWarning("No feeds configured")
				printDetail("Add [[feeds]] entries to %s", configPath())
				return nil
			}

			set, err := c.loadSet()
			if err != nil {
				return err
			}

			results, err := attrs.Load(set, c.Config.Feeds, c.Logger)
			if err != nil {
				return err
			}

			t := newTable("Feed", "Rows", "Kept", "Matched", "Fuzzy", "Ambiguous")
			for _, r := range results {
				t.Row(
					r.Feed,
					strconv.Itoa(r.Rows),
					strconv.Itoa(r.Kept),
					strconv.Itoa(r.Matched),
					strconv.Itoa(r.FuzzyHits),
					strconv.Itoa(r.Ambiguous),
				)
			}
			fmt.Println(t.Render())

			printAttributeCoverage(set)

			if save {
				path := c.dataPath()
				if err := registry.Save(set, path); err != nil {
					return fmt.Errorf("save catalog: %w", err)
				}
				printSuccess("Attributes saved into the catalog")
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "persist the attached attributes into the catalog")

	return cmd
}

func printAttributeCoverage(set registry.Set) {
	names := attrs.AttributeNames(set)
	if len(names) == 0 {
		return
	}
	for _, name := range names {
		covered := 0
		for _, node := range set {
			if attrs.StatCount(node, name) > 0 {
				covered++
			}
		}
		printDetail("%-20s on %d/%d nodes", name, covered, len(set))
	}
}
