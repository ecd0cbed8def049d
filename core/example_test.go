package core_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fcgraph/core"
)

// ExampleNewCallGraph builds a tiny call graph; a repeated call collapses
// onto the existing edge.
func ExampleNewCallGraph() {
	g := core.NewCallGraph()
	g.AddEdge("main", "init")
	g.AddEdge("main", "run")
	g.AddEdge("run", "run") // recursion
	_, err := g.AddEdge("main", "run")

	fmt.Println(g.Vertices())
	fmt.Println(g.EdgeCount(), errors.Is(err, core.ErrMultiEdgeNotAllowed))

	in, out, _ := g.Degree("run")
	fmt.Println(in, out)
	// Output:
	// [init main run]
	// 3 true
	// 2 1
}
