package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/excalidocker/excalidocker/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the remote manifest cache",
		Long: `Remote manifests are cached for 24 hours so repeated conversions of the same
URL do not download it again. Pass --no-cache to convert or graph to bypass it.`,
	}

	cmd.AddCommand(c.cacheListCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ok, err := openCache()
			if err != nil || !ok {
				return err
			}
			entries, err := store.Entries()
			if err != nil {
				return fmt.Errorf("list cache: %w", err)
			}
			if len(entries) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			writeCacheEntries(cmd.OutOrStdout(), entries, time.Now())
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var expired bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ok, err := openCache()
			if err != nil || !ok {
				return err
			}

			remove, what := store.Clear, "cached"
			if expired {
				remove, what = store.Prune, "expired"
			}
			count, err := remove()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Removed %s", plural(count, what+" manifest"))
			printDetail("Directory: %s", store.Dir())
			return nil
		},
	}
	cmd.Flags().BoolVar(&expired, "expired", false, "only remove entries past their TTL")
	return cmd
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// openCache opens the cache directory without creating it. ok is false when
// nothing has been cached yet.
func openCache() (store *cache.FileCache, ok bool, err error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, false, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil, false, nil
	}
	store, err = cache.NewFileCache(dir)
	if err != nil {
		return nil, false, fmt.Errorf("open cache: %w", err)
	}
	return store, true, nil
}

// writeCacheEntries prints one line per entry: URL, size and how long it
// stays fresh.
func writeCacheEntries(w io.Writer, entries []cache.Entry, now time.Time) {
	for _, e := range entries {
		url := strings.TrimPrefix(e.Key, cache.ManifestPrefix)
		var status string
		switch {
		case e.Expired:
			status = "expired"
		case e.ExpiresAt.IsZero():
			status = "no expiry"
		default:
			status = "fresh for " + e.ExpiresAt.Sub(now).Round(time.Minute).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", url, plural(e.Size, "byte"), status)
	}
}
