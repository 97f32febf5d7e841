package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/microviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. With --redis it
// clears the server's shared cache instead of the local directory.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached models and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL != "" {
				rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{URL: redisURL})
				if err != nil {
					return err
				}
				defer rc.Close()
				n, err := rc.Clear(cmd.Context(), redisPrefix)
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
				return nil
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis", "", "clear the shared Redis cache at this URL")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
