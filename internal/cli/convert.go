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

// convertOpts holds the command-line flags of the root command.
type convertOpts struct {
	input            string // compose file path or URL
	output           string // .excalidraw path; stdout when empty
	skipDependencies bool   // omit depends_on connectors
	configPath       string // style configuration file
	configRequired   bool   // configPath was given explicitly
	showConfig       bool   // print the effective configuration and exit
	configFormat     string // yaml or toml, for showConfig
	seed             uint64 // element id seed, 0 for random
	indent           bool   // pretty-print JSON
	noCache          bool   // bypass the remote manifest cache
}

// convertCommand creates the root command, which converts a compose file
// into an Excalidraw diagram.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "excalidocker",
		Short: "Convert docker-compose files into Excalidraw diagrams",
		Long: `excalidocker converts a docker-compose file into an Excalidraw diagram.

Every service becomes a rectangle, every published port an ellipse linked to
its container, and every depends_on entry a dashed arrow to the service it
depends on. The input may be a local .yaml/.yml file or an http(s) URL;
GitHub file links are fetched from raw.githubusercontent.com.`,
		Example: `  excalidocker -i docker-compose.yaml -o diagram.excalidraw
  excalidocker -i https://github.com/org/repo/blob/main/docker-compose.yml > diagram.excalidraw
  excalidocker -C --show-config-format toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configRequired = cmd.Flags().Changed("config-path")
			return c.runConvert(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input-path", "i", "", "compose file path or URL")
	cmd.Flags().StringVarP(&opts.output, "output-path", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&opts.skipDependencies, "skip-dependencies", "s", false, "do not draw depends_on connections")
	cmd.Flags().StringVarP(&opts.configPath, "config-path", "c", config.DefaultPath, "style configuration file (yaml, yml or toml)")
	cmd.Flags().BoolVarP(&opts.showConfig, "show-config", "C", false, "print the effective configuration and exit")
	cmd.Flags().StringVar(&opts.configFormat, "show-config-format", config.FormatYAML, "format for --show-config: yaml or toml")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for element ids (0 = random)")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "pretty-print the JSON output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use the remote manifest cache")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, stdout io.Writer, opts convertOpts) error {
	logger := loggerFromContext(ctx)

	cfg, found, err := config.Load(opts.configPath, opts.configRequired)
	if err != nil {
		return err
	}
	if !found {
		logger.Debug("configuration file not found, using defaults", "path", opts.configPath)
	}

	if opts.showConfig {
		data, err := config.Encode(cfg, opts.configFormat)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if opts.input == "" {
		return errs.New(errs.ErrCodeInvalidInput, "an input file is required (use --input-path)")
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(logger)
	spin := fetchSpinner(ctx, opts.input)

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:            opts.input,
		Config:           cfg,
		SkipDependencies: opts.skipDependencies,
		Seed:             opts.seed,
		Indent:           opts.indent,
		Logger:           logger,
	})
	if err != nil {
		spin.fail("Conversion failed")
		return err
	}
	spin.stop()
	prog.done(fmt.Sprintf("Generated %d elements", result.Stats.Elements))

	if opts.output == "" {
		_, err := fmt.Fprintln(stdout, string(result.JSON))
		return err
	}

	if err := os.WriteFile(opts.output, result.JSON, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeFileWrite, err, "failed to write '%s'", opts.output)
	}

	configName := opts.configPath
	if !found {
		configName += " (not found, defaults used)"
	}
	printSuccess("Excalidraw file generated")
	printKeyValue("Config", configName)
	printKeyValue("Input", opts.input)
	printFile(opts.output)
	printStats(result.Stats)
	return nil
}
