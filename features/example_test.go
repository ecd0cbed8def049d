package features_test

import (
	"fmt"

	"github.com/katalvlaran/fcgraph/core"
	"github.com/katalvlaran/fcgraph/features"
)

// ExampleExtractor_Extract shows a two-component call graph: path metrics
// fall back to their default and the outcome says why.
func ExampleExtractor_Extract() {
	g := core.NewCallGraph()
	g.AddEdge("main", "init")
	g.AddEdge("worker", "exec")

	v := features.NewExtractor().Extract(g)
	fmt.Println(v.Get(features.NumNodes), v.Get(features.NumEdges))
	fmt.Printf("%.4f\n", v.Get(features.Density))
	fmt.Println(v.Get(features.NumWeaklyConnected), v.Get(features.NumStronglyConnected))
	fmt.Println(v.Get(features.Diameter), v.Outcome(features.Diameter).Reason)
	// Output:
	// 4 2
	// 0.1667
	// 2 4
	// 0 disconnected
}
