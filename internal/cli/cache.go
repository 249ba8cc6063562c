package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/httputil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact and download caches",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove cached documents, previews and downloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ch, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			artifacts := 0
			if cl, ok := ch.(cache.Clearer); ok {
				if artifacts, err = cl.Clear(ctx); err != nil {
					return fmt.Errorf("clear artifacts: %w", err)
				}
			}

			downloads := 0
			if dir, err := c.downloadDir(); err == nil {
				rc, err := httputil.NewResponseCache(dir, 0)
				if err != nil {
					return err
				}
				if downloads, err = rc.Clear(); err != nil {
					return fmt.Errorf("clear downloads: %w", err)
				}
			}

			if artifacts+downloads == 0 {
				printInfo(c.stdout, "Cache is empty")
				return nil
			}
			printSuccess(c.stdout, "Cleared %d cached entries", artifacts+downloads)
			printDetail(c.stdout, "%d documents and previews, %d downloads", artifacts, downloads)
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
			dir, err := c.Config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.stdout, dir)
			return nil
		},
	}
}
