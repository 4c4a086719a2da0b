package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/excalidocker/excalidocker/pkg/dag"
)

// DefaultFill is the node colour when [Options.Fill] is empty.
const DefaultFill = "#b2f2bb"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the container id and the parent count to node labels.
	Detailed bool

	// LeftToRight lays the graph out horizontally instead of top to bottom.
	LeftToRight bool

	// Fill is the node background colour, a hex code.
	Fill string

	// Sharp draws square node corners.
	Sharp bool
}

// ToDOT converts a dependency graph to Graphviz DOT. Nodes and edges are
// written in graph insertion order so the output is stable. Parents that
// are not services are drawn as dashed grey nodes.
func ToDOT(g *dag.Graph, opts Options) string {
	rankdir, fill, style := "TB", opts.Fill, "rounded,filled"
	if opts.LeftToRight {
		rankdir = "LR"
	}
	if fill == "" {
		fill = DefaultFill
	}
	if opts.Sharp {
		style = "filled"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph compose {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n  ranksep=0.5;\n  nodesep=0.3;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=%q, fillcolor=%q, fontsize=18, margin=\"0.2,0.1\"];\n\n", style, fill)

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Name, fmtLabel(g, n, opts.Detailed))
	}

	dangling := g.Dangling()
	drawn := make(map[string]bool)
	for _, e := range dangling {
		if !drawn[e.Parent] {
			drawn[e.Parent] = true
			fmt.Fprintf(&buf, "  %q [label=%q, style=%q, fillcolor=lightgrey];\n", e.Parent, e.Parent, style+",dashed")
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Child, e.Parent)
	}
	for _, e := range dangling {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", e.Child, e.Parent)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *dag.Graph, n *dag.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	parts := []string{n.Name}
	if n.ID != "" {
		parts = append(parts, n.ID)
	}
	parts = append(parts, fmt.Sprintf("depends on: %d", len(g.Parents(n.Name))))
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one whose viewBox
// starts at the origin and whose size matches it, so the image scales.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
