package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/fcgraph/bfs"
	"github.com/katalvlaran/fcgraph/core"
)

// ExampleBFS walks a small call graph from its entry point.
func ExampleBFS() {
	g := core.NewCallGraph()
	g.AddEdge("main", "parse")
	g.AddEdge("main", "run")
	g.AddEdge("run", "exec")

	res, _ := bfs.BFS(g, "main")
	fmt.Println(res.Order)
	fmt.Println(res.Depth["exec"])
	// Output:
	// [main parse run exec]
	// 2
}

// ExampleDiameterRadius measures the undirected projection of a call chain.
func ExampleDiameterRadius() {
	g := core.NewCallGraph()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	d, r, _ := bfs.DiameterRadius(g.Undirected())
	fmt.Println(d, r)
	// Output:
	// 2 1
}
