// Package cli implements the excalidocker command-line interface.
//
// The root command converts a compose manifest into an Excalidraw file.
// Subcommands export the dependency graph, manage the remote manifest cache
// and generate shell completions. All commands accept --verbose (-v) for
// debug logging; logs go to stderr so JSON on stdout stays clean.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/excalidocker/excalidocker/pkg/buildinfo"
	"github.com/excalidocker/excalidocker/pkg/cache"
	"github.com/excalidocker/excalidocker/pkg/pipeline"
	"github.com/excalidocker/excalidocker/pkg/source"
)

// appName is the application name used for directories and display.
const appName = "excalidocker"

// Log levels accepted by [New].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.convertCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		if c.Logger.GetLevel() <= LogDebug {
			traceHooks{logger: c.Logger}.register()
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}
	root.SetVersionTemplate(buildinfo.Template())

	graph := c.graphCommand()
	completeFlags(root, graph)

	root.AddCommand(graph)
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	reader := source.NewReader(
		source.WithCache(store, cache.DefaultManifestTTL),
		source.WithLogger(c.Logger),
	)
	return pipeline.NewRunner(reader, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/excalidocker/).
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
