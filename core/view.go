// File: view.go
// Role: Non-mutating graph views.
// Determinism:
//   - Vertices keep their insertion Index; edges are copied in Seq order.
// Concurrency:
//   - Read locks on source; result is a fresh graph instance.

package core

// Undirected returns the undirected projection of g: same vertices (in the
// same insertion order), one undirected edge per unordered pair {u,v} that is
// joined by at least one edge in g, and self-loops preserved once.
// The input graph is not mutated; an undirected g is projected too (copy).
//
// Complexity: O(V + E log E).
func (g *Graph) Undirected() *Graph {
	out := NewGraph(WithDirected(false), WithLoops())

	g.muVert.RLock()
	order := make([]string, len(g.order))
	copy(order, g.order)
	g.muVert.RUnlock()

	for _, id := range order {
		_ = out.AddVertex(id) // ids are non-empty by construction
	}
	for _, e := range g.Edges() {
		if out.HasEdge(e.From, e.To) {
			continue
		}
		_, _ = out.AddEdge(e.From, e.To) // cannot fail: pair checked above, loops allowed
	}

	return out
}

// Reverse returns a copy of g with every edge direction flipped.
// For undirected graphs the result is an equivalent copy.
//
// Complexity: O(V + E log E).
func (g *Graph) Reverse() *Graph {
	g.muVert.RLock()
	opts := []GraphOption{WithDirected(g.directed)}
	if g.allowLoops {
		opts = append(opts, WithLoops())
	}
	if g.allowMulti {
		opts = append(opts, WithMultiEdges())
	}
	order := make([]string, len(g.order))
	copy(order, g.order)
	g.muVert.RUnlock()

	out := NewGraph(opts...)
	for _, id := range order {
		_ = out.AddVertex(id)
	}
	for _, e := range g.Edges() {
		_, _ = out.AddEdge(e.To, e.From)
	}

	return out
}
