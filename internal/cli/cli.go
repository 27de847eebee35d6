// Package cli implements the tagmesh command-line interface.
//
// This package provides commands for building tag graphs from directory
// trees, querying tag assignments, rendering graphs as visualizations,
// serving them over HTTP, and managing the render artifact cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Scan a directory tree and write the tag graph as JSON
//   - query: Look up tags for a path, or entities carrying a tag
//   - render: Generate DOT, SVG, or PNG visualizations
//   - serve: Expose the graph over a read-only HTTP API
//   - tui: Browse tags interactively in the terminal
//   - cache: Manage the render artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tagmesh/tagmesh/internal/config"
	"github.com/tagmesh/tagmesh/pkg/buildinfo"
	"github.com/tagmesh/tagmesh/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tagmesh"

// redisDialTimeout bounds the initial Redis connection check.
const redisDialTimeout = 3 * time.Second

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
	Config config.Config
}

// New creates a new CLI instance with a default logger and the
// configuration loaded from the standard location.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.LoadDefault()
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warnf("config: %v (using defaults)", err)
		c.Config = config.Default()
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tagmesh builds a graph of files, directories, and their tags",
		Long:         `Tagmesh scans a directory tree for .tags files and assembles the files, directories, and tags it finds into a single graph that can be queried, rendered, or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache creates the artifact cache selected by the configuration.
// Errors degrade to a null cache so rendering still works without one.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	switch c.Config.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache()
	case config.CacheBackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
		if err != nil {
			c.Logger.Warnf("redis cache unavailable: %v (caching disabled)", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		dir, err := config.CacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warnf("file cache unavailable: %v (caching disabled)", err)
			return cache.NewNullCache()
		}
		return fc
	}
}
