package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/halfplane/modgroup/pkg/cache"
)

// Config holds settings read from the optional TOML config file, overridden
// by command-line flags.
type Config struct {
	// CacheBackend selects "file", "redis" or "none". Default "file".
	CacheBackend string `toml:"cache_backend"`
	// CacheDir is the file cache root. Default: os.UserCacheDir()/modgroup.
	CacheDir string `toml:"cache_dir"`
	// RedisURL names the redis instance for the redis backend.
	RedisURL string `toml:"redis_url"`
	// Prec is the default pullback precision in bits. Default 53.
	Prec uint `toml:"prec"`
}

func defaultConfig() Config {
	return Config{CacheBackend: "file", Prec: 53}
}

// loadConfig reads the TOML file at path when it exists; a missing file at
// the default location is not an error, a missing explicit path is.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = "file"
	}
	if cfg.Prec == 0 {
		cfg.Prec = 53
	}
	return cfg, nil
}

// defaultConfigPath is ~/.config/modgroup/config.toml (or the platform
// equivalent); empty when no user config directory exists.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "modgroup", "config.toml")
}

// openCache constructs the configured cache backend.
func (c Config) openCache(ctx context.Context) (cache.Cache, error) {
	switch c.CacheBackend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		if c.RedisURL == "" {
			return nil, fmt.Errorf("redis cache backend needs redis_url")
		}
		return cache.NewRedisCache(ctx, c.RedisURL)
	case "file", "":
		dir := c.CacheDir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(base, "modgroup")
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
}
