// Package cli implements the gridtext command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/buildinfo"
	"github.com/matzehuels/gridtext/pkg/cache"
	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gridtext"

	// defaultAddr is where `gridtext serve` listens.
	defaultAddr = "localhost:8080"
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

	// Persistent flags.
	configPath string
	noCache    bool
	redisAddr  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gridtext finds text clusters on a sparse character canvas",
		Long:         `gridtext segments text positioned on a 2-D character grid into blocks, groups the blocks into clusters and arranges the clusters into a two-level hierarchy of frames for rendering and labeling.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gridtext/config.toml)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")
	pf.StringVar(&c.redisAddr, "redis", "", "use the Redis cache at this address")

	// Register all subcommands
	root.AddCommand(c.blocksCommand())
	root.AddCommand(c.clustersCommand())
	root.AddCommand(c.framesCommand())
	root.AddCommand(c.labelsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads --config, or the default config file when present.
func (c *CLI) loadConfig() (pipeline.Config, error) {
	if c.configPath != "" {
		return pipeline.LoadConfig(c.configPath)
	}
	return pipeline.LoadDefaultConfig()
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg pipeline.Config) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache picks the backend: disabled, Redis (flag wins over config) or
// the file cache.
func (c *CLI) newCache(ctx context.Context, cfg pipeline.CacheConfig) (cache.Cache, error) {
	if c.noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		cfg.Addr = c.redisAddr
	}
	if cfg.Addr != "" {
		if cfg.Prefix == "" {
			cfg.Prefix = appName + ":"
		}
		rc, err := cache.NewRedisCache(ctx, cfg.RedisConfig)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", cfg.Addr)
		}
		return rc, nil
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gridtext/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
