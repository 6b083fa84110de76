package cli

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eips-wg/preprocessor/cache"
)

func newCacheCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the shared download cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dir KEY",
			Short: "Print (and create) the cache directory for KEY",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCache(cmd, func(c *cache.Cache) error {
					dir, err := c.Dir(args[0])
					if err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "%s\n", dir)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "repo URL COMMIT",
			Short: "Check out COMMIT of the repository at URL and print its path",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCache(cmd, func(c *cache.Cache) error {
					dir, err := c.Repo(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "%s\n", dir)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show what the cache holds",
			Long: `Show every cache entry with its size and last use. Entries are never removed
automatically; delete the cache directory to reclaim space.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withCache(cmd, func(c *cache.Cache) error {
					return printStats(cmd, c)
				})
			},
		},
	)
	return cmd
}

func (a *app) withCache(cmd *cobra.Command, fn func(*cache.Cache) error) (err error) {
	c, err := a.openCache(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

func printStats(cmd *cobra.Command, c *cache.Cache) error {
	stats, err := c.Stats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	printf(out, "%s %s\n", bold.Sprint("Cache:"), stats.Root)
	printf(out, "%s %d entries, %s\n", bold.Sprint("Usage:"), len(stats.Entries), humanize.Bytes(uint64(stats.TotalSize)))

	for _, e := range stats.Entries {
		size, err := c.EntrySize(e)
		if err != nil {
			return err
		}
		printf(out, "  %s  %8s  %s  %s\n",
			e.Dir[:12],
			humanize.Bytes(uint64(size)),
			faint.Sprintf("used %s", humanize.Time(e.LastAccess)),
			printableKey(e.Key),
		)
	}
	return nil
}

// printableKey renders the NUL separator of repository keys visibly.
func printableKey(key string) string {
	return strings.ReplaceAll(key, "\x00", "␀")
}
