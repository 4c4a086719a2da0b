package pipeline

import (
	"context"

	"github.com/excalidocker/excalidocker/pkg/config"
	errs "github.com/excalidocker/excalidocker/pkg/errors"
	"github.com/excalidocker/excalidocker/pkg/layout"
	"github.com/excalidocker/excalidocker/pkg/render/nodelink"
)

// GraphOptions configures a dependency graph export.
type GraphOptions struct {
	Options
	Format   string // dot or svg
	Detailed bool
}

// RenderGraph reads and parses the manifest and renders its depends_on
// graph. Unlike [Runner.Execute] it does not fail on cycles; the graph is
// exactly what the manifest declares. Node colour, corners and direction
// follow opts.Config so the graph matches the Excalidraw diagram.
func (r *Runner) RenderGraph(ctx context.Context, opts GraphOptions) ([]byte, error) {
	if err := ValidateGraphFormat(opts.Format); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "unsupported graph format")
	}
	r.applyLogger(&opts.Options)
	opts.SetDefaults()

	data, err := r.Read(ctx, opts.Options)
	if err != nil {
		return nil, err
	}
	_, g, err := parseGraph(data, opts.Input)
	if err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(g, nodelink.Options{
		Detailed:    opts.Detailed,
		LeftToRight: layout.ParseMode(opts.Config.Alignment.Mode) == layout.Horizontal,
		Fill:        config.ResolveColor(opts.Config.Services.BackgroundColor),
		Sharp:       opts.Config.Services.Edge != config.EdgeRound,
	})
	opts.Logger.Debug("generated DOT", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "failed to render dependency graph")
	}
	return svg, nil
}
