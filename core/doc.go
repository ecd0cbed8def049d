// Package core provides a thread-safe in-memory Graph used to hold one
// function-call graph per ingested sample.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Parallel edges / multi-graphs (WithMultiEdges)
//   - Self-loops (WithLoops)
//   - Successor and predecessor indices: succ[from][to], pred[to][from]
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …) with Edge.Seq
//     preserving insertion order
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//
// Call graphs are built with NewCallGraph(): directed, loops allowed, and
// parallel edges rejected with ErrMultiEdgeNotAllowed so that a repeated
// call line collapses onto the existing edge.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error            // O(1), idempotent
//	HasVertex(id string) bool             // O(1)
//	Vertices() []string                   // O(V·log V), sorted
//	VertexCount() int                     // O(1)
//
//	// Edge lifecycle
//	AddEdge(from, to string) (string, error) // O(1)
//	HasEdge(from, to string) bool            // O(1)
//	Edges() []*Edge                          // O(E·log E), insertion order
//	EdgeCount() int                          // O(1)
//
//	// Neighborhoods
//	Successors(id string) ([]string, error)   // unique, sorted
//	Predecessors(id string) ([]string, error) // unique, sorted
//	NeighborIDs(id string) ([]string, error)  // successors (directed) or neighbors (undirected)
//	Degree(id string) (in, out int, err error)
//
//	// Views
//	Undirected() *Graph                       // O(V+E) projection
//
// Errors are strict sentinels checked with errors.Is.
package core
