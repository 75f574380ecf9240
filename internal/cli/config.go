package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depscope/pkg/attrs"
	"github.com/matzehuels/depscope/pkg/errors"
)

// Config is the on-disk configuration, read from config.toml in the config
// directory. Every field has a working default so the file is optional.
type Config struct {
	// DataPath overrides where the node snapshot is stored.
	DataPath string `toml:"data_path"`

	Registry RegistryConfig `toml:"registry"`

	Cache CacheConfig `toml:"cache"`

	// Feeds are external CSV statistics to attach to nodes, keyed by
	// repository URL. See the attrs command.
	Feeds []attrs.Feed `toml:"feeds"`
}

// RegistryConfig configures the registry API client.
type RegistryConfig struct {
	URL           string `toml:"url"`
	PageSize      int    `toml:"page_size"`
	Workers       int    `toml:"workers"`
	CacheTTLHours int    `toml:"cache_ttl_hours"`
}

// CacheConfig selects the response-cache backend. The default is a file
// cache under the XDG cache dir; setting redis_addr switches to a shared
// Redis cache instead.
type CacheConfig struct {
	RedisAddr string `toml:"redis_addr"`
	Prefix    string `toml:"prefix"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:           "https://api.comfy.org",
			PageSize:      100,
			Workers:       10,
			CacheTTLHours: 6,
		},
		Cache: CacheConfig{
			Prefix: "depscope:",
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config file")
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config file")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Registry.PageSize < 0 || c.Registry.Workers < 0 || c.Registry.CacheTTLHours < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "registry settings must not be negative")
	}
	for _, f := range c.Feeds {
		if f.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "feed entries need a name")
		}
		if f.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "feed entries need a path")
		}
	}
	return nil
}
