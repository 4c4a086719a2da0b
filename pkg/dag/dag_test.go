package dag

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/excalidocker/excalidocker/pkg/compose"
)

func build(t *testing.T, nodes ...Node) *Graph {
	t.Helper()
	g := New()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%q) error: %v", n.Name, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{Name: ""}); !errors.Is(err, ErrInvalidNodeName) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeName", err)
	}
	if err := g.AddNode(Node{Name: "web"}); err != nil {
		t.Fatalf("AddNode(web) error: %v", err)
	}
	if err := g.AddNode(Node{Name: "web"}); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("AddNode(web) twice = %v, want ErrDuplicateNode", err)
	}
}

func TestAddNodeDropsRepeatedParents(t *testing.T) {
	g := build(t, Node{Name: "db"}, Node{Name: "web", Parents: []string{"db", "db"}})

	if got := g.Parents("web"); !slices.Equal(got, []string{"db"}) {
		t.Errorf("Parents(web) = %v, want [db]", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestQueries(t *testing.T) {
	g := build(t,
		Node{Name: "web", ID: "container_1", Parents: []string{"api", "cache"}},
		Node{Name: "api", ID: "container_2", Parents: []string{"db"}},
		Node{Name: "db", ID: "container_3"},
		Node{Name: "worker", ID: "container_4", Parents: []string{"db"}},
	)

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}

	var names []string
	for _, n := range g.Nodes() {
		names = append(names, n.Name)
	}
	if !slices.Equal(names, []string{"web", "api", "db", "worker"}) {
		t.Errorf("Nodes() = %v, want insertion order", names)
	}

	if got := g.Children("db"); !slices.Equal(got, []string{"api", "worker"}) {
		t.Errorf("Children(db) = %v", got)
	}
	if got := g.Parents("missing"); got != nil {
		t.Errorf("Parents(missing) = %v, want nil", got)
	}

	n, ok := g.Node("api")
	if !ok || n.ID != "container_2" {
		t.Errorf("Node(api) = %+v, %v", n, ok)
	}

	wantEdges := []Edge{{"web", "api"}, {"api", "db"}, {"worker", "db"}}
	if got := g.Edges(); !slices.Equal(got, wantEdges) {
		t.Errorf("Edges() = %v, want %v", got, wantEdges)
	}
	if got := g.Dangling(); !slices.Equal(got, []Edge{{"web", "cache"}}) {
		t.Errorf("Dangling() = %v", got)
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  []string
	}{
		{
			name:  "empty",
			nodes: nil,
			want:  []string{},
		},
		{
			name:  "independent keeps manifest order",
			nodes: []Node{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			want:  []string{"a", "b", "c"},
		},
		{
			name: "chain",
			nodes: []Node{
				{Name: "web", Parents: []string{"api"}},
				{Name: "api", Parents: []string{"db"}},
				{Name: "db"},
			},
			want: []string{"db", "api", "web"},
		},
		{
			name: "diamond visits shared parent once",
			nodes: []Node{
				{Name: "app", Parents: []string{"left", "right"}},
				{Name: "left", Parents: []string{"base"}},
				{Name: "right", Parents: []string{"base"}},
				{Name: "base"},
			},
			want: []string{"base", "left", "right", "app"},
		},
		{
			name: "dangling parent skipped",
			nodes: []Node{
				{Name: "web", Parents: []string{"ghost", "db"}},
				{Name: "db"},
			},
			want: []string{"db", "web"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.nodes...)
			got, err := g.Order()
			if err != nil {
				t.Fatalf("Order() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Order() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderParentsFirst(t *testing.T) {
	nodes := []Node{
		{Name: "e", Parents: []string{"d", "b"}},
		{Name: "d", Parents: []string{"c"}},
		{Name: "c", Parents: []string{"a", "b"}},
		{Name: "b", Parents: []string{"a"}},
		{Name: "a"},
		{Name: "f", Parents: []string{"e", "a"}},
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 50 {
		shuffled := slices.Clone(nodes)
		if i > 0 {
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		}
		g := build(t, shuffled...)

		order, err := g.Order()
		if err != nil {
			t.Fatalf("Order() error: %v", err)
		}
		if len(order) != g.NodeCount() {
			t.Fatalf("Order() returned %d names, want %d", len(order), g.NodeCount())
		}

		pos := make(map[string]int)
		for i, name := range order {
			if _, dup := pos[name]; dup {
				t.Fatalf("Order() lists %q twice", name)
			}
			pos[name] = i
		}
		for _, e := range g.Edges() {
			if pos[e.Parent] > pos[e.Child] {
				t.Errorf("%s placed before its parent %s: %v", e.Child, e.Parent, order)
			}
		}
	}
}

func TestOrderCycle(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  []string
	}{
		{
			name:  "self",
			nodes: []Node{{Name: "a", Parents: []string{"a"}}},
			want:  []string{"a", "a"},
		},
		{
			name: "pair",
			nodes: []Node{
				{Name: "a", Parents: []string{"b"}},
				{Name: "b", Parents: []string{"a"}},
			},
			want: []string{"a", "b", "a"},
		},
		{
			name: "triangle behind a tail",
			nodes: []Node{
				{Name: "web", Parents: []string{"a"}},
				{Name: "a", Parents: []string{"b"}},
				{Name: "b", Parents: []string{"c"}},
				{Name: "c", Parents: []string{"a"}},
			},
			want: []string{"a", "b", "c", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.nodes...).Order()
			if !errors.Is(err, ErrDependencyCycle) {
				t.Fatalf("Order() error = %v, want ErrDependencyCycle", err)
			}
			var ce *CycleError
			if !errors.As(err, &ce) {
				t.Fatalf("Order() error %T is not *CycleError", err)
			}
			if !slices.Equal(ce.Path, tt.want) {
				t.Errorf("Path = %v, want %v", ce.Path, tt.want)
			}
		})
	}
}

func TestFromServices(t *testing.T) {
	services := []compose.Service{
		{ID: "container_1", Name: "web", DependsOn: []string{"db"}},
		{ID: "container_2", Name: "db"},
	}

	g, err := FromServices(services)
	if err != nil {
		t.Fatalf("FromServices() error: %v", err)
	}
	n, ok := g.Node("web")
	if !ok || n.ID != "container_1" || !slices.Equal(n.Parents, []string{"db"}) {
		t.Errorf("Node(web) = %+v", n)
	}

	if _, err := FromServices(append(services, compose.Service{Name: "db"})); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("FromServices(duplicate) = %v, want ErrDuplicateNode", err)
	}
}
