package dag_test

import (
	"fmt"

	"github.com/excalidocker/excalidocker/pkg/dag"
)

func ExampleGraph_Order() {
	g := dag.New()
	_ = g.AddNode(dag.Node{Name: "web", Parents: []string{"api"}})
	_ = g.AddNode(dag.Node{Name: "api", Parents: []string{"db", "cache"}})
	_ = g.AddNode(dag.Node{Name: "db"})
	_ = g.AddNode(dag.Node{Name: "cache"})

	order, _ := g.Order()
	fmt.Println(order)
	// Output: [db cache api web]
}

func ExampleCycleError() {
	g := dag.New()
	_ = g.AddNode(dag.Node{Name: "api", Parents: []string{"db"}})
	_ = g.AddNode(dag.Node{Name: "db", Parents: []string{"api"}})

	_, err := g.Order()
	fmt.Println(err)
	// Output: dependency cycle: api -> db -> api
}
