package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridtext/pkg/cache"
	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
)

// Config is the on-disk TOML configuration.
//
//	[clustering]
//	max_vertical_gap = 4
//
//	[hierarchy]
//	merge_distance = 10
//
//	[render]
//	formats = ["svg", "txt"]
//
//	[cache]
//	redis_addr = "localhost:6379"
type Config struct {
	Clustering cluster.Conditions `toml:"clustering"`
	Hierarchy  hierarchy.Config   `toml:"hierarchy"`
	Render     RenderConfig       `toml:"render"`
	Cache      CacheConfig        `toml:"cache"`
}

// RenderConfig holds rendering and labeling defaults.
type RenderConfig struct {
	Formats       []string `toml:"formats"`
	Detailed      bool     `toml:"detailed"`
	Labels        bool     `toml:"labels"`
	Summarizer    string   `toml:"summarizer"`
	HeadlineWords int      `toml:"headline_words"`
	GapThreshold  int      `toml:"gap_threshold"`
	Zoom          float64  `toml:"zoom"`
}

// CacheConfig selects the cache backend. A non-empty RedisConfig.Addr
// selects Redis over the file cache.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
	cache.RedisConfig
}

// DefaultConfig mirrors [DefaultOptions].
func DefaultConfig() Config {
	o := DefaultOptions()
	return Config{
		Clustering: o.Hierarchy.Clustering,
		Hierarchy:  o.Hierarchy,
		Render: RenderConfig{
			Summarizer:    o.Summarizer,
			HeadlineWords: o.HeadlineWords,
			GapThreshold:  o.GapThreshold,
			Zoom:          o.Zoom,
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/gridtext/config.toml (or the
// platform equivalent).
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gridtext", "config.toml"), nil
}

// LoadConfig reads a TOML config file over [DefaultConfig]. Keys the file
// sets but this package does not know are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	// [clustering] is the canonical home of the conditions; it wins over a
	// nested [hierarchy.clustering] table.
	if md.IsDefined("clustering") || !md.IsDefined("hierarchy", "clustering") {
		cfg.Hierarchy.Clustering = cfg.Clustering
	} else {
		cfg.Clustering = cfg.Hierarchy.Clustering
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefaultConfig loads the config at [DefaultConfigPath] if it exists and
// returns [DefaultConfig] otherwise.
func LoadDefaultConfig() (Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Clustering.Validate(); err != nil {
		return err
	}
	if err := c.Hierarchy.Validate(); err != nil {
		return err
	}
	if c.Render.Summarizer != "" {
		if err := ValidateSummarizer(c.Render.Summarizer); err != nil {
			return err
		}
	}
	for _, f := range c.Render.Formats {
		if err := ValidateFormat(strings.ToLower(f)); err != nil {
			return err
		}
	}
	return nil
}

// Options converts the config into pipeline options.
func (c Config) Options() Options {
	o := DefaultOptions()
	o.Hierarchy = c.Hierarchy
	o.Hierarchy.Clustering = c.Clustering
	o.GapThreshold = c.Render.GapThreshold
	if c.Render.Zoom != 0 {
		o.Zoom = c.Render.Zoom
	}
	o.Labels = c.Render.Labels
	if c.Render.Summarizer != "" {
		o.Summarizer = c.Render.Summarizer
	}
	if c.Render.HeadlineWords > 0 {
		o.HeadlineWords = c.Render.HeadlineWords
	}
	o.Formats = append([]string(nil), c.Render.Formats...)
	o.Detailed = c.Render.Detailed
	return o
}
