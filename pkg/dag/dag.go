package dag

import (
	"errors"
	"slices"

	"github.com/excalidocker/excalidocker/pkg/compose"
)

var (
	// ErrInvalidNodeName is returned by [Graph.AddNode] when the node name is
	// empty.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same name already exists in the graph.
	ErrDuplicateNode = errors.New("duplicate node name")
)

// Node is a service together with the names of the services it depends on.
type Node struct {
	Name    string   // Service name (manifest key)
	ID      string   // Service identifier (container_<n>)
	Parents []string // depends_on entries in declared order, without duplicates
}

// Edge is a depends_on reference from a dependent service to its parent.
type Edge struct {
	Child  string
	Parent string
}

// Graph is the depends_on graph of a manifest.
//
// The zero value is not usable - use [New] to create a valid Graph instance.
type Graph struct {
	nodes    map[string]*Node
	order    []string            // insertion order
	children map[string][]string // parent name -> dependent names
	edges    int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
	}
}

// FromServices builds the graph of a parsed manifest. Nodes are added in
// manifest order.
func FromServices(services []compose.Service) (*Graph, error) {
	g := New()
	for _, svc := range services {
		if err := g.AddNode(Node{Name: svc.Name, ID: svc.ID, Parents: svc.DependsOn}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddNode adds a node to the graph. Repeated parent names are dropped.
// Returns ErrInvalidNodeName if the name is empty, or ErrDuplicateNode if a
// node with the same name already exists.
func (g *Graph) AddNode(n Node) error {
	if n.Name == "" {
		return ErrInvalidNodeName
	}
	if _, exists := g.nodes[n.Name]; exists {
		return ErrDuplicateNode
	}

	parents := make([]string, 0, len(n.Parents))
	for _, p := range n.Parents {
		if !slices.Contains(parents, p) {
			parents = append(parents, p)
		}
	}
	n.Parents = parents

	node := &n
	g.nodes[n.Name] = node
	g.order = append(g.order, n.Name)
	for _, p := range parents {
		g.children[p] = append(g.children[p], n.Name)
	}
	g.edges += len(parents)
	return nil
}

// Node returns the node with the given name and true, or nil and false if
// not found.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		nodes = append(nodes, g.nodes[name])
	}
	return nodes
}

// Parents returns the names of the services the node depends on, including
// dangling ones. Returns nil if the node doesn't exist.
func (g *Graph) Parents(name string) []string {
	if n, ok := g.nodes[name]; ok {
		return n.Parents
	}
	return nil
}

// Children returns the names of the services that depend on name, in
// insertion order. The returned slice should not be modified.
func (g *Graph) Children(name string) []string { return g.children[name] }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of depends_on references, dangling ones
// included.
func (g *Graph) EdgeCount() int { return g.edges }

// Edges returns the references whose parent is a node of the graph, ordered
// by child insertion order and then by declared parent order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, name := range g.order {
		for _, p := range g.nodes[name].Parents {
			if _, ok := g.nodes[p]; ok {
				edges = append(edges, Edge{Child: name, Parent: p})
			}
		}
	}
	return edges
}

// Dangling returns the references whose parent is not a node of the graph.
func (g *Graph) Dangling() []Edge {
	var dangling []Edge
	for _, name := range g.order {
		for _, p := range g.nodes[name].Parents {
			if _, ok := g.nodes[p]; !ok {
				dangling = append(dangling, Edge{Child: name, Parent: p})
			}
		}
	}
	return dangling
}
