package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/registry"
)

// updateCommand creates the update command for refreshing the local catalog.
func (c *CLI) updateCommand() *cobra.Command {
	var (
		noCache bool
		refresh bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download the node catalog and store it locally",
		Long: `Download the node catalog from the registry and store it locally.

The catalog is written as JSON to the data path (see 'depscope --help' for
the default location). Subsequent analyze and ask runs read this file, so
update is the only command that needs network access.

Page responses are cached; use --refresh to bypass the cache and force a
full re-download.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = c.dataPath()
			}
			return c.runUpdate(cmd.Context(), path, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the catalog to this path instead of the default")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses")

	return cmd
}

func (c *CLI) runUpdate(ctx context.Context, path string, noCache, refresh bool) error {
	client, err := c.newRegistryClient(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize registry client: %w", err)
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Fetching node catalog...")
	spinner.Start()

	set, err := client.FetchAll(ctx, refresh)
	if err != nil {
		spinner.StopWithError("Catalog download failed")
		return fmt.Errorf("fetch catalog: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Fetched %d nodes", len(set)))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := registry.Save(set, path); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	printSuccess("Catalog updated with %d nodes", len(set))
	printFile(path)
	printNextStep("Analyze it", "depscope analyze")
	return nil
}

// loadSet reads the local catalog, with a friendly hint when it's missing.
func (c *CLI) loadSet() (registry.Set, error) {
	path := c.dataPath()
	set, err := registry.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			printWarning("No local catalog at %s", path)
			printNextStep("Download one", "depscope update")
		}
		return nil, err
	}
	c.Logger.Debug("catalog loaded", "path", path, "nodes", len(set))
	return set, nil
}
