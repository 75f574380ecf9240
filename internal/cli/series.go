package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/series"
)

// seriesCommand creates the series command for the cumulative dependency curve.
func (c *CLI) seriesCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Export the cumulative dependency curve",
		Long: `Export the cumulative dependency curve.

Nodes are ordered by download count; each row records how many distinct
dependencies have been seen once that node and every more popular one are
included. The curve shows how quickly the dependency pool saturates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadSet()
			if err != nil {
				return err
			}

			points := series.Cumulative(set)
			c.Logger.Debug("series computed", "points", len(points))

			out := cmd.OutOrStdout()
			var file *os.File
			if output != "" {
				file, err = os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				out = file
			}

			switch strings.ToLower(format) {
			case "csv":
				err = series.WriteCSV(out, points)
			case "json":
				err = series.WriteJSON(out, points)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}

			if output != "" {
				printSuccess("Series exported with %d points", len(points))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or json")

	return cmd
}
