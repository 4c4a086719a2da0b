// Package compose turns a docker-compose manifest into the service model used
// by the diagram layout.
//
// Only the parts of the compose format that end up on the diagram are kept:
// service names, ports (as the raw strings the user wrote), depends_on and a
// handful of informational fields. Nothing is validated beyond the shape
// needed to walk the tree.
package compose

import "fmt"

// Manifest is the parsed form of a compose file.
type Manifest struct {
	// Services in the order they appear in the file.
	Services []Service
	// Networks declared at the top level (informational only).
	Networks []string
}

// Service is one entry of the 'services' mapping.
type Service struct {
	ID          string            // container_<n>, n counts from 1 in file order
	Name        string            // key in the services mapping
	Image       string
	Command     string
	Environment map[string]string
	Ports       []string // raw "host:container" strings
	Volumes     []string
	DependsOn   []string
	Networks    []string
}

// ServiceID returns the identifier for the n-th service (1-based).
func ServiceID(n int) string {
	return fmt.Sprintf("container_%d", n)
}

// PortCount returns the total number of declared ports across all services.
func (m *Manifest) PortCount() int {
	n := 0
	for _, s := range m.Services {
		n += len(s.Ports)
	}
	return n
}
