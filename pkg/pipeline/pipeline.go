// Package pipeline runs the compose to Excalidraw conversion end to end.
//
// The pipeline has four stages:
//
//  1. Read: load manifest bytes from a local path or URL
//  2. Parse: walk the manifest and resolve the dependency order
//  3. Layout: place services, ports and connectors
//  4. Render: serialize the Excalidraw document as JSON
//
// The CLI drives it through a [Runner]:
//
//	runner := pipeline.NewRunner(source.NewReader(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "docker-compose.yaml",
//	    Config: cfg,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.JSON)
//
// Stages can also be run on their own: [Runner.Read], [Runner.Parse] and
// [Runner.RenderGraph] (DOT or SVG export of the dependency graph).
package pipeline

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/excalidocker/excalidocker/pkg/compose"
	"github.com/excalidocker/excalidocker/pkg/config"
	"github.com/excalidocker/excalidocker/pkg/dag"
	"github.com/excalidocker/excalidocker/pkg/diagram"
	"github.com/excalidocker/excalidocker/pkg/excalidraw"
)

// Dependency graph formats.
const (
	FormatDOT = "dot" // dependency graph source
	FormatSVG = "svg" // dependency graph image
)

// ValidGraphFormats is the set of formats accepted by [Runner.RenderGraph].
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidateGraphFormat checks that format is a dependency graph format.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// Options configures a pipeline run.
type Options struct {
	// Input is a local .yaml/.yml path or an http(s) URL.
	Input string
	// Manifest, when set, is used instead of reading Input. Input is then
	// only used in messages.
	Manifest []byte

	// Config is the effective style configuration. The zero value means
	// [config.Default].
	Config config.Config
	// SkipDependencies omits the depends_on connectors.
	SkipDependencies bool
	// Seed makes element ids reproducible. Zero picks a random seed.
	Seed uint64
	// Indent pretty-prints the JSON output.
	Indent bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// SetDefaults fills in unset options.
func (o *Options) SetDefaults() {
	if o.Config == (config.Config{}) {
		o.Config = config.Default()
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Manifest is the parsed compose file.
	Manifest *compose.Manifest

	// Graph is the depends_on graph.
	Graph *dag.Graph

	// Order lists the service names in placement order.
	Order []string

	// Document is the assembled diagram.
	Document *excalidraw.Document

	// JSON is the serialized Document.
	JSON []byte

	// Seed is the id seed that was used.
	Seed uint64

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	diagram.Stats
	Edges      int
	ReadTime   time.Duration
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}
