package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/excalidocker/excalidocker/pkg/config"
	errs "github.com/excalidocker/excalidocker/pkg/errors"
	"github.com/excalidocker/excalidocker/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	input          string
	output         string
	format         string // dot or svg
	detailed       bool   // container ids and parent counts in labels
	noCache        bool
	configPath     string // node colour, corners and direction
	configRequired bool
}

// graphCommand creates the graph command, which exports the depends_on
// graph as Graphviz DOT or SVG.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the service dependency graph as DOT or SVG",
		Long: `Export the depends_on graph of a compose file.

DOT output can be post-processed with any Graphviz tool; SVG is rendered
in-process. Dependencies on services missing from the file are drawn dashed.
Unlike the diagram conversion, dependency cycles are drawn, not rejected.
Node colour, corners and direction follow the style configuration.`,
		Example: `  excalidocker graph -i docker-compose.yaml
  excalidocker graph -i docker-compose.yaml -f svg -o deps.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configRequired = cmd.Flags().Changed("config-path")
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input-path", "i", "", "compose file path or URL")
	cmd.Flags().StringVarP(&opts.output, "output-path", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatDOT, "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show container ids and dependency counts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use the remote manifest cache")
	cmd.Flags().StringVarP(&opts.configPath, "config-path", "c", config.DefaultPath, "style configuration file (yaml, yml or toml)")
	_ = cmd.MarkFlagRequired("input-path")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, stdout io.Writer, opts graphOpts) error {
	cfg, _, err := config.Load(opts.configPath, opts.configRequired)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spin := fetchSpinner(ctx, opts.input)
	data, err := runner.RenderGraph(ctx, pipeline.GraphOptions{
		Options:  pipeline.Options{Input: opts.input, Config: cfg, Logger: loggerFromContext(ctx)},
		Format:   opts.format,
		Detailed: opts.detailed,
	})
	if err != nil {
		spin.fail("Export failed")
		return err
	}
	spin.stop()

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeFileWrite, err, "failed to write '%s'", opts.output)
	}
	printSuccess("Dependency graph exported")
	printFile(opts.output)
	return nil
}
