package diagram

import (
	"slices"
	"strings"
	"testing"

	"github.com/excalidocker/excalidocker/pkg/compose"
	"github.com/excalidocker/excalidocker/pkg/config"
	"github.com/excalidocker/excalidocker/pkg/excalidraw"
	"github.com/excalidocker/excalidocker/pkg/layout"
)

func services() []compose.Service {
	return []compose.Service{
		{ID: "container_1", Name: "web", Ports: []string{"80:80", "8443:443"}, DependsOn: []string{"api"}},
		{ID: "container_2", Name: "api", Ports: []string{"8080:3000"}, DependsOn: []string{"db", "cache"}},
		{ID: "container_3", Name: "db", Ports: []string{"5432:5432"}},
		{ID: "container_4", Name: "cache"},
	}
}

var order = []string{"db", "cache", "api", "web"}

func TestBuildCounts(t *testing.T) {
	doc, stats := NewBuilder(WithIDs(NewSequenceIDs())).Build(services(), order)

	// 2 per service, 4 per port minus ports with equal sides, 1 per connector.
	want := 2*4 + 4*4 - 2 + 3
	if len(doc.Elements) != want {
		t.Errorf("len(Elements) = %d, want %d", len(doc.Elements), want)
	}
	if stats.Elements != want {
		t.Errorf("stats.Elements = %d, want %d", stats.Elements, want)
	}
	if stats.Services != 4 || stats.Ports != 4 || stats.PortLabels != 2 || stats.Connectors != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if got := doc.Count(excalidraw.TypeRectangle); got != 4 {
		t.Errorf("rectangles = %d, want 4", got)
	}
	if got := doc.Count(excalidraw.TypeEllipse); got != 4 {
		t.Errorf("ellipses = %d, want 4", got)
	}
	if got := doc.Count(excalidraw.TypeArrow); got != 7 {
		t.Errorf("arrows = %d, want 7", got)
	}
	if doc.AppState.GridSize != layout.GridSize {
		t.Errorf("GridSize = %d", doc.AppState.GridSize)
	}
}

func TestBuildBindingsConsistent(t *testing.T) {
	for _, mode := range []string{config.ModeStepped, config.ModeHorizontal, config.ModeVertical} {
		cfg := config.Default()
		cfg.Alignment.Mode = mode
		doc, _ := NewBuilder(WithConfig(cfg)).Build(services(), order)
		if err := Validate(doc); err != nil {
			t.Errorf("%s: Validate() = %v", mode, err)
		}
	}
}

func TestBuildFirstServiceAtOrigin(t *testing.T) {
	doc, _ := NewBuilder(WithIDs(NewSequenceIDs())).Build(services(), order)

	db, ok := doc.Find("container_3")
	if !ok {
		t.Fatal("rectangle container_3 not found")
	}
	if db.X != 0 || db.Y != 0 {
		t.Errorf("db at (%d,%d), want origin", db.X, db.Y)
	}
	if db.Height != layout.ContainerHeight || db.Width != layout.ContainerWidthFor("db", layout.GridSize, 20) {
		t.Errorf("db size = %dx%d", db.Width, db.Height)
	}
	if db.BackgroundColor != "#b2f2bb" || db.FillStyle != "hachure" {
		t.Errorf("db style = %s/%s", db.BackgroundColor, db.FillStyle)
	}

	// stepped: the second service starts right of and below the first
	cache, _ := doc.Find("container_4")
	wantX := db.Width + layout.Margin
	if cache.X != wantX || cache.Y != layout.Margin {
		t.Errorf("cache at (%d,%d), want (%d,%d)", cache.X, cache.Y, wantX, layout.Margin)
	}

	ellipse, ok := doc.Find("ellipse_0000002")
	if !ok {
		t.Fatal("first port ellipse not found")
	}
	if ellipse.X != 0 || ellipse.Y != 8*layout.GridSize {
		t.Errorf("ellipse at (%d,%d)", ellipse.X, ellipse.Y)
	}
	if ellipse.BackgroundColor != "#a5d8ff" {
		t.Errorf("ellipse background = %s", ellipse.BackgroundColor)
	}
}

func TestBuildElementOrder(t *testing.T) {
	svcs := []compose.Service{
		{ID: "container_1", Name: "web", Ports: []string{"8080:80"}},
	}
	doc, _ := NewBuilder(WithIDs(NewSequenceIDs())).Build(svcs, []string{"web"})

	want := []excalidraw.Type{
		excalidraw.TypeText, // container port label
		excalidraw.TypeEllipse,
		excalidraw.TypeText, // host port label
		excalidraw.TypeArrow,
		excalidraw.TypeRectangle,
		excalidraw.TypeText, // service name
	}
	if len(doc.Elements) != len(want) {
		t.Fatalf("len(Elements) = %d, want %d", len(doc.Elements), len(want))
	}
	for i, e := range doc.Elements {
		if e.Type != want[i] {
			t.Errorf("Elements[%d].Type = %s, want %s", i, e.Type, want[i])
		}
	}
	if doc.Elements[0].Text != "80" || doc.Elements[2].Text != "8080" || doc.Elements[5].Text != "web" {
		t.Errorf("labels = %q %q %q", doc.Elements[0].Text, doc.Elements[2].Text, doc.Elements[5].Text)
	}

	arrow := doc.Elements[3]
	if arrow.StartBinding.ElementID != "container_1" || arrow.EndBinding.ElementID != doc.Elements[1].ID {
		t.Errorf("port arrow binds %s -> %s", arrow.StartBinding.ElementID, arrow.EndBinding.ElementID)
	}
}

func TestBuildConnectors(t *testing.T) {
	doc, _ := NewBuilder(WithIDs(NewSequenceIDs())).Build(services(), order)

	var connectors []excalidraw.Element
	for _, e := range doc.Elements {
		if strings.HasPrefix(e.ID, connectorPrefix) {
			connectors = append(connectors, e)
		}
	}
	if len(connectors) != 3 {
		t.Fatalf("connectors = %d, want 3", len(connectors))
	}

	for _, c := range connectors {
		if c.StrokeStyle != excalidraw.StrokeDashed {
			t.Errorf("%s stroke = %s, want dashed", c.ID, c.StrokeStyle)
		}
		if c.Width != 0 || c.Height != layout.MarginsFor(layout.Stepped).Y {
			t.Errorf("%s size = %dx%d", c.ID, c.Width, c.Height)
		}
	}

	// api depends on db and cache; cache sits further right so it comes first
	first, second := connectors[1], connectors[2]
	if first.EndBinding.ElementID != "container_4" || second.EndBinding.ElementID != "container_3" {
		t.Errorf("api parents = %s, %s", first.EndBinding.ElementID, second.EndBinding.ElementID)
	}
	if first.StartBinding.ElementID != "container_2" {
		t.Errorf("api connector starts at %s", first.StartBinding.ElementID)
	}

	api, _ := doc.Find("container_2")
	refs := 0
	for _, b := range api.BoundElements {
		if strings.HasPrefix(b.ID, connectorPrefix) {
			refs++
		}
	}
	// two outgoing, one incoming from web
	if refs != 3 {
		t.Errorf("api connector refs = %d, want 3", refs)
	}
}

func TestBuildConnectionsToggle(t *testing.T) {
	cfg := config.Default()
	cfg.Connections.Visible = false

	tests := []struct {
		name string
		opts []Option
	}{
		{"config", []Option{WithConfig(cfg)}},
		{"option", []Option{WithoutConnections()}},
	}
	visible, _ := NewBuilder().Build(services(), order)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, stats := NewBuilder(tt.opts...).Build(services(), order)
			for _, typ := range []excalidraw.Type{excalidraw.TypeRectangle, excalidraw.TypeEllipse, excalidraw.TypeText} {
				if got, want := doc.Count(typ), visible.Count(typ); got != want {
					t.Errorf("%s count = %d, want %d as with connections", typ, got, want)
				}
			}
			if got, want := shapeSummary(doc), shapeSummary(visible); !slices.Equal(got, want) {
				t.Errorf("rectangles and labels = %q, want %q", got, want)
			}
			for _, e := range doc.Elements {
				if e.Type != excalidraw.TypeRectangle {
					continue
				}
				for _, ref := range e.BoundElements {
					if strings.HasPrefix(ref.ID, connectorPrefix) {
						t.Errorf("rectangle %s references connector %s", e.ID, ref.ID)
					}
				}
			}
			if stats.Connectors != 0 {
				t.Errorf("Connectors = %d, want 0", stats.Connectors)
			}
			if got := doc.Count(excalidraw.TypeArrow); got != 4 {
				t.Errorf("arrows = %d, want 4 port arrows", got)
			}
			if err := Validate(doc); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

// shapeSummary lists rectangle ids and label texts in document order.
func shapeSummary(doc *excalidraw.Document) []string {
	var out []string
	for _, e := range doc.Elements {
		switch e.Type {
		case excalidraw.TypeRectangle:
			out = append(out, "rect "+e.ID)
		case excalidraw.TypeText:
			out = append(out, "text "+e.Text)
		}
	}
	return out
}

func TestBuildDanglingAndDuplicateParents(t *testing.T) {
	svcs := []compose.Service{
		{ID: "container_1", Name: "web", DependsOn: []string{"db", "db", "ghost"}},
		{ID: "container_2", Name: "db"},
	}
	doc, stats := NewBuilder().Build(svcs, []string{"db", "web"})
	if stats.Connectors != 1 {
		t.Errorf("Connectors = %d, want 1", stats.Connectors)
	}
	if stats.Dangling != 1 {
		t.Errorf("Dangling = %d, want 1", stats.Dangling)
	}
	if err := Validate(doc); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, _ := NewBuilder(WithIDs(NewRandomIDs(42))).Build(services(), order)
	b, _ := NewBuilder(WithIDs(NewRandomIDs(42))).Build(services(), order)

	ja, err := excalidraw.RenderJSON(a)
	if err != nil {
		t.Fatal(err)
	}
	jb, err := excalidraw.RenderJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(ja) != string(jb) {
		t.Error("same seed produced different documents")
	}
}

func TestBuildEmpty(t *testing.T) {
	doc, stats := NewBuilder().Build(nil, nil)
	if len(doc.Elements) != 0 || stats.Elements != 0 {
		t.Errorf("empty build produced %d elements", len(doc.Elements))
	}
}

func TestIDs(t *testing.T) {
	seq := NewSequenceIDs()
	if got := seq.Next(); got != "0000001" {
		t.Errorf("first sequence id = %q", got)
	}
	if got := seq.Next(); got != "0000002" {
		t.Errorf("second sequence id = %q", got)
	}

	rnd := NewRandomIDs(7)
	seen := make(map[string]bool)
	for range 100 {
		id := rnd.Next()
		if len(id) != IDLength {
			t.Fatalf("id %q has length %d", id, len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune(alphanumeric, r) {
				t.Fatalf("id %q contains %q", id, r)
			}
		}
		seen[id] = true
	}
	if len(seen) < 99 {
		t.Errorf("only %d distinct ids out of 100", len(seen))
	}
}
