package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDependencyCycle is wrapped by [*CycleError].
var ErrDependencyCycle = errors.New("dependency cycle")

// CycleError reports a depends_on cycle. Path starts and ends with the same
// service, e.g. [api db api].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDependencyCycle, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrDependencyCycle }

// Order returns all node names so that every service comes after the
// services it depends on. Nodes are visited in insertion order and dangling
// parents are skipped. A cycle yields a *CycleError.
func (g *Graph) Order() ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	order := make([]string, 0, len(g.nodes))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		color[name] = gray
		stack = append(stack, name)
		for _, p := range g.nodes[name].Parents {
			if _, ok := g.nodes[p]; !ok {
				continue
			}
			switch color[p] {
			case white:
				if err := visit(p); err != nil {
					return err
				}
			case gray:
				return &CycleError{Path: cyclePath(stack, p)}
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		order = append(order, name)
		return nil
	}

	for _, name := range g.order {
		if color[name] == white {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// cyclePath returns the part of the DFS stack that starts at the revisited
// node, closed by that node.
func cyclePath(stack []string, revisited string) []string {
	for i, name := range stack {
		if name == revisited {
			path := append([]string(nil), stack[i:]...)
			return append(path, revisited)
		}
	}
	return []string{revisited, revisited}
}
