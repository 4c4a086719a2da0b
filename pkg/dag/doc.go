// Package dag resolves the order in which compose services are placed on
// the canvas.
//
// A [Graph] holds one [Node] per service. A node's parents are the services
// named in its depends_on list, so every edge points from a dependent
// (child) to the service it waits for (parent). Parents that are not part of
// the graph are kept as dangling references: they are reported by
// [Graph.Dangling] and ignored by [Graph.Order] and [Graph.Edges].
//
// # Ordering
//
// [Graph.Order] returns every service exactly once, each one after all of its
// parents. The walk is a depth-first post-order that starts from the nodes in
// insertion order, so the result is deterministic for a given manifest:
//
//	g, _ := dag.FromServices(manifest.Services)
//	order, err := g.Order()
//	// web depends_on api, api depends_on db  =>  [db api web]
//
// Cycles in depends_on are reported with a [*CycleError] that wraps
// [ErrDependencyCycle] and carries the offending path.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
