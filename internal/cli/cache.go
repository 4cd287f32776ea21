package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the active cache backend and its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cc, err := c.newCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer cc.Close()

			switch b := cc.(type) {
			case *cache.FileCache:
				entries, size, err := b.Stats()
				if err != nil {
					return fmt.Errorf("read cache: %w", err)
				}
				printKeyValue("Backend", "file")
				printKeyValue("Directory", b.Dir())
				printKeyValue("Entries", strconv.Itoa(entries))
				printKeyValue("Size", formatBytes(size))
			case *cache.RedisCache:
				printKeyValue("Backend", "redis")
				addr := cfg.Cache.Addr
				if c.redisAddr != "" {
					addr = c.redisAddr
				}
				printKeyValue("Address", addr)
			default:
				printKeyValue("Backend", "disabled")
			}
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cc, err := c.newCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer cc.Close()

			switch b := cc.(type) {
			case *cache.FileCache:
				entries, _, err := b.Stats()
				if err != nil {
					return fmt.Errorf("read cache: %w", err)
				}
				if entries == 0 {
					printInfo("Cache is empty")
					return nil
				}
				if err := b.Clear(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				printSuccess("Cleared %d cached entries", entries)
				printDetail("Directory: %s", b.Dir())
			case *cache.RedisCache:
				n, err := b.Clear(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
			default:
				printWarning("Caching is disabled; nothing to clear")
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
