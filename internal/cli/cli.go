// Package cli implements the depscope command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/buildinfo"
	"github.com/matzehuels/depscope/pkg/cache"
	"github.com/matzehuels/depscope/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "depscope"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configFile string
	nodesFile  string
}

// New creates a new CLI instance with a default logger and config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "depscope",
		Short:        "Depscope analyzes dependency declarations across a package registry",
		Long:         `Depscope fetches package metadata from a registry, normalizes the raw dependency strings each package declares, and answers questions about them: which dependencies are most common, who depends on a given package and at which versions, and how the dependency pool grows with popularity.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile
			if path == "" {
				path = configPath()
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/depscope/config.toml)")
	root.PersistentFlags().StringVar(&c.nodesFile, "nodes", "", "node catalog file (default is the config dir's nodes.json)")

	// Register all subcommands
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.askCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.seriesCommand())
	root.AddCommand(c.attrsCommand())
	root.AddCommand(c.snapshotsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Registry Client Factory
// =============================================================================

// newRegistryClient wires config, cache, and logger into a registry client.
func (c *CLI) newRegistryClient(ctx context.Context, noCache bool) (*registry.Client, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	opts := registry.Options{
		BaseURL:  c.Config.Registry.URL,
		PageSize: c.Config.Registry.PageSize,
		Workers:  c.Config.Registry.Workers,
		CacheTTL: time.Duration(c.Config.Registry.CacheTTLHours) * time.Hour,
	}
	return registry.NewClient(store, opts, c.Logger), nil
}

// newCache picks the response-cache backend: null when caching is off,
// Redis when the config names an address, otherwise the XDG file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		return cache.NewRedisCache(ctx, addr, c.Config.Cache.Prefix)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/depscope/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/depscope/).
func configDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", appName)
}

func configPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// dataPath returns the location of the node snapshot file. The --nodes flag
// wins over the config override.
func (c *CLI) dataPath() string {
	if c.nodesFile != "" {
		return c.nodesFile
	}
	if c.Config.DataPath != "" {
		return c.Config.DataPath
	}
	return filepath.Join(configDir(), "nodes.json")
}
