package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/registry"
	"github.com/matzehuels/depscope/pkg/render/depgraph"
)

const defaultGraphTopN = 50

type graphParams struct {
	topN     int
	minUsage int
	output   string
	dotOnly  bool
}

// graphCommand creates the graph command for rendering the usage graph.
func (c *CLI) graphCommand() *cobra.Command {
	params := graphParams{}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the dependency usage graph",
		Long: `Render the dependency usage graph as SVG (or raw DOT).

Each of the most downloaded nodes is connected to the dependencies it
declares; dependency vertices carry their usage count. Use --min-usage to
hide rarely declared dependencies and keep the graph readable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadSet()
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), set, params)
		},
	}

	cmd.Flags().IntVarP(&params.topN, "top", "t", defaultGraphTopN, "limit to the N most downloaded nodes (0 for all)")
	cmd.Flags().IntVar(&params.minUsage, "min-usage", 0, "hide dependencies declared by fewer nodes")
	cmd.Flags().StringVarP(&params.output, "output", "o", "depgraph.svg", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&params.dotOnly, "dot", false, "write raw DOT instead of SVG")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, set registry.Set, params graphParams) error {
	dot := depgraph.ToDOT(set, depgraph.Options{
		TopN:     params.topN,
		MinUsage: params.minUsage,
	})

	if params.dotOnly || strings.HasSuffix(params.output, ".dot") {
		if err := os.WriteFile(params.output, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write DOT: %w", err)
		}
		printSuccess("Graph written")
		printFile(params.output)
		return nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()
	svg, err := depgraph.RenderSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Graph rendering failed")
		return err
	}
	spinner.Stop()
	loggerFromContext(ctx).Debug("graph rendered", "nodes", params.topN, "bytes", len(svg))

	if err := os.WriteFile(params.output, svg, 0o644); err != nil {
		return fmt.Errorf("write SVG: %w", err)
	}
	printSuccess("Graph rendered")
	printFile(params.output)
	return nil
}
