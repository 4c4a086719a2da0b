package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/excalidocker/excalidocker/pkg/compose"
	"github.com/excalidocker/excalidocker/pkg/dag"
	"github.com/excalidocker/excalidocker/pkg/diagram"
	errs "github.com/excalidocker/excalidocker/pkg/errors"
	"github.com/excalidocker/excalidocker/pkg/excalidraw"
	"github.com/excalidocker/excalidocker/pkg/observability"
	"github.com/excalidocker/excalidocker/pkg/source"
)

// Runner executes the pipeline. It holds no per-run state, so one Runner
// may serve several runs.
type Runner struct {
	Reader *source.Reader
	Logger *log.Logger
}

// NewRunner creates a runner. A nil reader reads without caching; a nil
// logger uses the charmbracelet default.
func NewRunner(reader *source.Reader, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if reader == nil {
		reader = source.NewReader(source.WithLogger(logger))
	}
	return &Runner{Reader: reader, Logger: logger}
}

// Execute runs read → parse → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	opts.Logger.Debug("element ids", "seed", opts.Seed)
	result := &Result{Seed: opts.Seed}

	// Stage 1: Read
	var data []byte
	var err error
	result.Stats.ReadTime, err = stage(ctx, observability.StageRead, opts.Input, func() error {
		data, err = r.Read(ctx, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Stage 2: Parse
	result.Stats.ParseTime, err = stage(ctx, observability.StageParse, opts.Input, func() error {
		result.Manifest, result.Graph, result.Order, err = r.Parse(data, opts.Input)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.Edges = result.Graph.EdgeCount()

	opts.Logger.Info("parsed manifest",
		"services", result.Graph.NodeCount(),
		"dependencies", result.Graph.EdgeCount(),
		"ports", result.Manifest.PortCount(),
		"networks", len(result.Manifest.Networks),
		"duration", result.Stats.ParseTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Layout
	result.Stats.LayoutTime, err = stage(ctx, observability.StageLayout, opts.Input, func() error {
		builderOpts := []diagram.Option{
			diagram.WithConfig(opts.Config),
			diagram.WithIDs(diagram.NewRandomIDs(opts.Seed)),
			diagram.WithLogger(opts.Logger),
		}
		if opts.SkipDependencies {
			builderOpts = append(builderOpts, diagram.WithoutConnections())
		}
		doc, stats := diagram.NewBuilder(builderOpts...).Build(result.Manifest.Services, result.Order)
		if err := diagram.Validate(doc); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "inconsistent diagram for '%s'", opts.Input)
		}
		result.Document = doc
		result.Stats.Stats = stats
		return nil
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("computed layout",
		"mode", opts.Config.Alignment.Mode,
		"elements", result.Stats.Elements,
		"connectors", result.Stats.Connectors,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	result.Stats.RenderTime, err = stage(ctx, observability.StageRender, opts.Input, func() error {
		result.JSON, err = excalidraw.RenderJSON(result.Document, excalidraw.WithIndent(opts.Indent))
		if err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "failed to serialize diagram")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("rendered document", "bytes", len(result.JSON), "duration", result.Stats.RenderTime)
	return result, nil
}

// stage runs fn between the stage hooks and returns how long it took.
func stage(ctx context.Context, s observability.Stage, input string, fn func() error) (time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, s, input)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	hooks.OnStageComplete(ctx, s, input, elapsed, err)
	return elapsed, err
}

// Read returns the manifest bytes for opts.
func (r *Runner) Read(ctx context.Context, opts Options) ([]byte, error) {
	if opts.Manifest != nil {
		return opts.Manifest, nil
	}
	return r.Reader.Read(ctx, opts.Input)
}

// Parse walks the manifest and resolves the placement order. input names
// the manifest in error messages.
func (r *Runner) Parse(data []byte, input string) (*compose.Manifest, *dag.Graph, []string, error) {
	manifest, g, err := parseGraph(data, input)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, e := range g.Dangling() {
		r.Logger.Warn("service depends on an unknown service", "service", e.Child, "depends_on", e.Parent)
	}

	order, err := g.Order()
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			return nil, nil, nil, errs.Wrap(errs.ErrCodeDependencyCycle, err,
				"services in '%s' depend on each other", input)
		}
		return nil, nil, nil, errs.Wrap(errs.ErrCodeInternal, err, "failed to order services")
	}
	return manifest, g, order, nil
}

func parseGraph(data []byte, input string) (*compose.Manifest, *dag.Graph, error) {
	manifest, err := compose.Parse(data)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidManifest, err,
			"failed to parse provided docker-compose '%s'", input)
	}
	g, err := dag.FromServices(manifest.Services)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidManifest, err,
			"failed to parse provided docker-compose '%s'", input)
	}
	return manifest, g, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
