// Package config loads the optional tagmesh configuration file.
//
// The file lives at $XDG_CONFIG_HOME/tagmesh/config.toml (falling back
// to ~/.config/tagmesh/config.toml) and is TOML:
//
//	[cache]
//	backend = "file"       # file | redis | none
//	redis_addr = "localhost:6379"
//
//	[serve]
//	addr = ":8750"
//
//	[render]
//	format = "svg"
//	detailed = false
//	show_assignments = false
//
// A missing file yields defaults; command-line flags override file values.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tagmesh/tagmesh/pkg/errors"
)

// appName is used for the config and cache directory names.
const appName = "tagmesh"

// Cache backends.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the full configuration tree.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Format          string `toml:"format"`
	Detailed        bool   `toml:"detailed"`
	ShowAssignments bool   `toml:"show_assignments"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: CacheBackendFile, RedisAddr: "localhost:6379"},
		Serve:  ServeConfig{Addr: ":8750"},
		Render: RenderConfig{Format: "svg"},
	}
}

// Load reads the configuration file at path, layered over defaults.
// A missing file is not an error and yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault loads the configuration from the standard location.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		// No resolvable home directory: run on defaults.
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the standard config file location using the XDG
// convention.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the artifact cache directory using the XDG convention.
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Render.Format {
	case "svg", "png", "dot", "json":
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown render format %q", c.Render.Format)
	}
	return nil
}
