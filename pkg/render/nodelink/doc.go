// Package nodelink exports the service dependency graph as a node-link
// diagram.
//
// [ToDOT] produces Graphviz DOT source with one box per service and one
// edge per depends_on reference, pointing from the dependent service to the
// service it needs. References to services missing from the manifest are
// drawn as dashed grey nodes so they stay visible:
//
//	g, _ := dag.FromServices(services)
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; no external binary is needed.
package nodelink
