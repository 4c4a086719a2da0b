// Package diagram turns ordered compose services into Excalidraw elements.
//
// [Builder.Build] runs three passes over the services:
//
//  1. Place (dependency order): each service gets an anchor point and a
//     pending rectangle; its ports become ellipses, labels and port arrows
//     bound to the rectangle. The cursor then advances per the alignment mode.
//  2. Connect (manifest order): every depends_on reference becomes a dashed
//     arrow from the child rectangle to the parent rectangle. Both rectangles
//     record the arrow as a bound element.
//  3. Finalize (placement order): pending rectangles become rectangle
//     elements followed by their name labels.
//
// Rectangles stay pending until the end because connectors discovered in
// the second pass still add bound elements to them.
package diagram

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/excalidocker/excalidocker/pkg/compose"
	"github.com/excalidocker/excalidocker/pkg/config"
	"github.com/excalidocker/excalidocker/pkg/excalidraw"
	"github.com/excalidocker/excalidocker/pkg/layout"
)

// Element id prefixes.
const (
	ellipsePrefix   = "ellipse_"
	portArrowPrefix = "port_arrow_"
	connectorPrefix = "connecting_arrow_"
	containerGroup  = "container_group_"
)

// Stats counts what a build emitted.
type Stats struct {
	Services   int // rectangles (one name label each)
	Ports      int // ellipses and host port labels (one each)
	PortLabels int // container port labels, for ports whose sides differ
	PortArrows int
	Connectors int // depends_on arrows
	Dangling   int // depends_on references to unknown services
	Elements   int // total emitted
}

// Option configures a [Builder].
type Option func(*Builder)

// WithIDs sets the id generator. The default is seeded with 0.
func WithIDs(g IDGenerator) Option { return func(b *Builder) { b.ids = g } }

// WithConfig sets the style configuration.
func WithConfig(cfg config.Config) Option { return func(b *Builder) { b.cfg = cfg } }

// WithoutConnections suppresses depends_on arrows regardless of the
// configuration.
func WithoutConnections() Option { return func(b *Builder) { b.skipConnections = true } }

// WithLogger sets the logger for placement diagnostics.
func WithLogger(l *log.Logger) Option { return func(b *Builder) { b.logger = l } }

// Builder lays out services and collects the resulting elements.
// A Builder may be reused; each Build call starts from the origin.
type Builder struct {
	ids             IDGenerator
	cfg             config.Config
	skipConnections bool
	logger          *log.Logger
	scale           int
}

// NewBuilder creates a Builder with the default configuration.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		ids:    NewRandomIDs(0),
		cfg:    config.Default(),
		logger: log.New(io.Discard),
		scale:  layout.GridSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// pendingRect is a service rectangle that still collects bound elements.
type pendingRect struct {
	id     string
	name   string
	x, y   int
	width  int
	height int
	groups []string
	bound  []excalidraw.BoundElement
}

// build holds the state of one Build call.
type build struct {
	*Builder
	mode     layout.Mode
	elements []excalidraw.Element
	rects    []pendingRect  // arena in placement order
	index    map[string]int // service name -> rects index
	points   map[string]layout.Point
	stats    Stats
}

// Build lays out services in the given order and returns the document.
// order must list service names (see dag.Graph.Order); names without a
// matching service are skipped, as are services missing from order.
func (b *Builder) Build(services []compose.Service, order []string) (*excalidraw.Document, Stats) {
	s := &build{
		Builder: b,
		mode:    layout.ParseMode(b.cfg.Alignment.Mode),
		index:   make(map[string]int, len(services)),
		points:  make(map[string]layout.Point, len(services)),
	}

	byName := make(map[string]*compose.Service, len(services))
	for i := range services {
		byName[services[i].Name] = &services[i]
	}

	x, y := 0, 0
	for _, name := range order {
		svc, ok := byName[name]
		if !ok {
			b.logger.Warn("ordered service not found in manifest", "service", name)
			continue
		}
		if _, placed := s.index[name]; placed {
			continue
		}
		width := s.place(svc, x, y)
		dx, dy := layout.Advance(s.mode, width, b.scale)
		x, y = x+dx, y+dy
	}

	if b.skipConnections || !b.cfg.Connections.Visible {
		b.logger.Debug("dependency connections disabled")
	} else {
		for i := range services {
			s.connect(&services[i])
		}
	}

	s.finalize()
	s.stats.Elements = len(s.elements)
	return excalidraw.NewDocument(s.elements, excalidraw.WithGridSize(b.scale)), s.stats
}

func (s *build) place(svc *compose.Service, x, y int) int {
	font := s.cfg.Font
	width := layout.ContainerWidthFor(svc.Name, s.scale, font.Size)
	s.points[svc.Name] = layout.Point{Name: svc.Name, X: x, Y: y}

	rect := pendingRect{
		id:     svc.ID,
		name:   svc.Name,
		x:      x,
		y:      y,
		width:  width,
		height: layout.ContainerHeight,
		groups: []string{containerGroup + s.ids.Next()},
	}

	portShape := excalidraw.Shape{
		Background: config.ResolveColor(s.cfg.Ports.BackgroundColor),
		Fill:       s.cfg.Ports.Fill,
	}
	arrowX, arrowY := layout.HostPortArrowOffset(s.mode, layout.ContainerHeight, layout.ContainerWidth, width)

	for i, port := range svc.Ports {
		px, py := layout.PortOffset(s.mode, width, s.scale, i)
		portX, portY := x+px, y+py
		host, container := layout.SplitPort(port)
		portGroup := []string{fmt.Sprintf("group_%s_hostport_%d_text", svc.Name, i)}

		ellipseID := ellipsePrefix + s.ids.Next()
		arrowID := portArrowPrefix + s.ids.Next()

		if host != container {
			lx, ly := layout.ContainerPortLabelOffset(s.mode, layout.ContainerHeight, layout.ContainerWidth, i)
			s.elements = append(s.elements,
				excalidraw.Text(x+lx, y+ly, container, rect.groups, font.Size, font.Family))
			s.stats.PortLabels++
		}

		s.elements = append(s.elements,
			excalidraw.Ellipse(ellipseID, portX, portY, layout.PortDiameter, layout.PortDiameter,
				portGroup, []excalidraw.BoundElement{excalidraw.ArrowRef(arrowID)}, portShape),
			excalidraw.Text(portX+layout.PortLabelOffset[0], portY+layout.PortLabelOffset[1],
				host, portGroup, font.Size, font.Family),
			excalidraw.Arrow(arrowID, x+arrowX, y+arrowY, layout.PortArrowWidth, layout.PortArrowHeight,
				layout.HostPortArrowPoints(s.mode, i), excalidraw.StrokeSolid, excalidraw.SharpEdge,
				excalidraw.BindTo(svc.ID), excalidraw.BindTo(ellipseID)),
		)
		rect.bound = append(rect.bound, excalidraw.ArrowRef(arrowID))
		s.stats.Ports++
		s.stats.PortArrows++
	}

	s.index[svc.Name] = len(s.rects)
	s.rects = append(s.rects, rect)
	s.stats.Services++

	s.logger.Debug("placed service", "service", svc.Name, "x", x, "y", y, "width", width, "ports", len(svc.Ports))
	return width
}

func (s *build) connect(svc *compose.Service) {
	child, ok := s.points[svc.Name]
	if !ok {
		return
	}

	var parents []layout.Point
	for _, name := range svc.DependsOn {
		p, ok := s.points[name]
		if !ok {
			s.logger.Warn("skipping dependency on unknown service", "service", svc.Name, "depends_on", name)
			s.stats.Dangling++
			continue
		}
		if slices.ContainsFunc(parents, func(q layout.Point) bool { return q.Name == name }) {
			continue
		}
		parents = append(parents, p)
	}
	layout.SortParents(parents)

	yMargin := layout.MarginsFor(s.mode).Y
	childIdx := s.index[svc.Name]
	for i, parent := range parents {
		parentIdx := s.index[parent.Name]
		margin := layout.ConnectorMargin(s.scale, i)
		ox, oy := layout.ConnectorOffset(s.mode, margin)
		points := layout.ConnectorPoints(s.mode, child, parent,
			layout.ContainerHeight, layout.ContainerWidth, margin, s.scale, i)

		id := connectorPrefix + s.ids.Next()
		s.elements = append(s.elements, excalidraw.Arrow(id, child.X+ox, child.Y+oy, 0, yMargin,
			points, excalidraw.StrokeDashed, s.cfg.Connections.Edge,
			excalidraw.BindTo(s.rects[childIdx].id), excalidraw.BindTo(s.rects[parentIdx].id)))

		ref := excalidraw.ArrowRef(id)
		s.rects[parentIdx].bound = append(s.rects[parentIdx].bound, ref)
		s.rects[childIdx].bound = append(s.rects[childIdx].bound, ref)
		s.stats.Connectors++
	}
}

func (s *build) finalize() {
	shape := excalidraw.Shape{
		Background: config.ResolveColor(s.cfg.Services.BackgroundColor),
		Fill:       s.cfg.Services.Fill,
		Edge:       s.cfg.Services.Edge,
	}
	font := s.cfg.Font
	for _, r := range s.rects {
		s.elements = append(s.elements,
			excalidraw.Rectangle(r.id, r.x, r.y, r.width, r.height, r.groups, r.bound, shape),
			excalidraw.Text(r.x+s.scale, r.y+s.scale, r.name, r.groups, font.Size, font.Family),
		)
	}
}
