// File: methods_adjacent.go
// Role: Neighborhood APIs (Successors, Predecessors, NeighborIDs) and adjacency helpers.
// Determinism:
//   - All ID slices are unique and sorted lex asc.
// Concurrency:
//   - Read operations hold muVert then muEdgeAdj read locks.
//   - Helpers are called only under the muEdgeAdj write lock by mutating code.

package core

import "sort"

// Successors returns the unique IDs v with an edge id→v, sorted ascending.
// A self-loop makes id its own successor.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(d log d).
func (g *Graph) Successors(id string) ([]string, error) {
	return g.bucketKeys(id, false)
}

// Predecessors returns the unique IDs u with an edge u→id, sorted ascending.
// For undirected graphs this equals Successors(id).
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(d log d).
func (g *Graph) Predecessors(id string) ([]string, error) {
	return g.bucketKeys(id, true)
}

// NeighborIDs returns the IDs reachable over one edge from id under the
// graph's orientation: successors for directed graphs, incident neighbors
// for undirected graphs. Traversals (bfs) use this as their expansion step.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	return g.bucketKeys(id, false)
}

// AdjacencyList returns a snapshot id → sorted successor IDs for every vertex.
// The returned slices are independent of graph storage.
// Complexity: O(V + E log E).
func (g *Graph) AdjacencyList() map[string][]string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make(map[string][]string, len(g.vertices))
	for id := range g.vertices {
		out[id] = sortedKeys(g.succ[id])
	}

	return out
}

func (g *Graph) bucketKeys(id string, reverse bool) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}
	if reverse {
		return sortedKeys(g.pred[id]), nil
	}

	return sortedKeys(g.succ[id]), nil
}

// ensureBuckets creates the succ/pred maps for id. Caller holds muEdgeAdj.
func ensureBuckets(g *Graph, id string) {
	if g.succ[id] == nil {
		g.succ[id] = make(map[string][]string)
	}
	if g.pred[id] == nil {
		g.pred[id] = make(map[string][]string)
	}
}

// link records eid under succ[from][to] and pred[to][from]. Caller holds muEdgeAdj.
func link(g *Graph, from, to, eid string) {
	ensureBuckets(g, from)
	ensureBuckets(g, to)
	g.succ[from][to] = append(g.succ[from][to], eid)
	g.pred[to][from] = append(g.pred[to][from], eid)
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k, ids := range m {
		if len(ids) > 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	return out
}
