// Package pkg provides the libraries behind excalidocker, which turns a
// docker-compose manifest into an Excalidraw diagram.
//
// # Overview
//
// Every service becomes a rectangle, every published port an ellipse hanging
// off it, and every depends_on entry an arrow from the dependent service to
// the one it depends on. The result opens directly in excalidraw.com.
//
// # Architecture
//
// The data flow through excalidocker:
//
//	compose file or URL
//	         ↓
//	    [source] package (read from disk or download, cached)
//	         ↓
//	    [compose] package (parse services, ports, depends_on)
//	         ↓
//	    [dag] package (dependency graph + placement order)
//	         ↓
//	    [diagram] package (place elements using [layout] geometry)
//	         ↓
//	    [excalidraw] package (JSON document)
//
// [pipeline] runs these stages for the CLI. The graph command takes a side
// road through [render/nodelink], which draws the same dependency graph with
// Graphviz.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input: "docker-compose.yaml",
//	    Seed:  42,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.JSON)
//
// Without the pipeline:
//
//	m, _ := compose.Parse(data)
//	g, _ := dag.FromServices(m.Services)
//	order, _ := g.Order()
//	doc, stats := diagram.NewBuilder().Build(m.Services, order)
//	out, _ := excalidraw.RenderJSON(doc, excalidraw.WithIndent(true))
//
// # Main Packages
//
// [config] - Style options (font, colors, fill, edges, alignment) loaded from
// YAML or TOML with EXCALIDOCKER_* environment overrides.
//
// [layout] - Pure geometry: container widths, port offsets, connector paths
// for the stepped, horizontal and vertical alignment modes.
//
// [cache] - File cache for downloaded manifests, plus the retry helper.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hooks for pipeline stages, cache and HTTP events.
//
// [buildinfo] - Version information stamped at build time.
//
// [source]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/source
// [compose]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/compose
// [dag]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/dag
// [diagram]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/layout
// [excalidraw]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/excalidraw
// [pipeline]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/pipeline
// [render/nodelink]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/render/nodelink
// [config]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/config
// [cache]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/cache
// [errors]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/errors
// [observability]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/excalidocker/excalidocker/pkg/buildinfo
package pkg
