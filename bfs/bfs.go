// Package bfs implements breadth-first search on core.Graph and the
// whole-graph distance measures built on it (connectivity, eccentricity,
// diameter, radius).
//
// Each traversal supports:
//   - context cancellation,
//   - a depth limit,
//   - neighbor filtering,
//   - forward (successor) or reverse (predecessor) expansion,
//   - a visit hook that can abort the walk.
//
// Complexity: O(V + E) time, O(V) memory per traversal.
package bfs

import (
	"fmt"

	"github.com/katalvlaran/fcgraph/core"
)

// BFS performs a breadth-first traversal on g starting from startID.
// Vertices are dequeued in FIFO order; neighbors are expanded in sorted ID
// order so results are deterministic.
//
// Returns:
//   - *BFSResult with Order, Depth, Parent.
//   - ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation on bad input.
//   - ctx.Err() on cancellation, or an error from OnVisit.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w := &walker{
		g:     g,
		opts:  o,
		queue: []string{startID},
		res: &BFSResult{
			Order:  make([]string, 0, g.VertexCount()),
			Depth:  map[string]int{startID: 0},
			Parent: make(map[string]string),
		},
	}
	if err := w.loop(); err != nil {
		return nil, err
	}

	return w.res, nil
}

type walker struct {
	g     *core.Graph
	opts  BFSOptions
	queue []string
	res   *BFSResult
}

func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		curr := w.queue[head]
		depth := w.res.Depth[curr]
		w.res.Order = append(w.res.Order, curr)
		if err := w.opts.OnVisit(curr, depth); err != nil {
			return fmt.Errorf("bfs: OnVisit %q: %w", curr, err)
		}
		if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
			continue
		}

		next, err := w.expand(curr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNeighbors, err)
		}
		for _, nb := range next {
			if _, seen := w.res.Depth[nb]; seen {
				continue
			}
			if !w.opts.FilterNeighbor(curr, nb) {
				continue
			}
			w.res.Depth[nb] = depth + 1
			w.res.Parent[nb] = curr
			w.queue = append(w.queue, nb)
		}
	}

	return nil
}

func (w *walker) expand(id string) ([]string, error) {
	if w.opts.Reverse {
		return w.g.Predecessors(id)
	}

	return w.g.NeighborIDs(id)
}

// Connected reports whether every vertex of g is reachable from the first
// inserted vertex when following g's orientation. For a directed graph pass
// g.Undirected() to test weak connectivity.
// An empty graph is reported as not connected.
func Connected(g *core.Graph) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	ids := g.Vertices()
	if len(ids) == 0 {
		return false, nil
	}
	res, err := BFS(g, ids[0])
	if err != nil {
		return false, err
	}

	return len(res.Order) == len(ids), nil
}

// Eccentricity returns, for every vertex, the greatest BFS distance to any
// other vertex. It fails with ErrDisconnected if some vertex cannot reach
// all others, mirroring the usual definition on connected graphs.
//
// Complexity: O(V·(V+E)).
func Eccentricity(g *core.Graph, opts ...Option) (map[string]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	ids := g.Vertices()
	if len(ids) == 0 {
		return nil, ErrEmptyGraph
	}

	ecc := make(map[string]int, len(ids))
	for _, id := range ids {
		res, err := BFS(g, id, opts...)
		if err != nil {
			return nil, err
		}
		if len(res.Order) != len(ids) {
			return nil, fmt.Errorf("%w: %q reaches %d of %d vertices",
				ErrDisconnected, id, len(res.Order), len(ids))
		}
		ecc[id] = res.MaxDepth()
	}

	return ecc, nil
}

// DiameterRadius returns the maximum and minimum eccentricity of g.
// Errors from Eccentricity are propagated unchanged.
func DiameterRadius(g *core.Graph, opts ...Option) (diameter, radius int, err error) {
	ecc, err := Eccentricity(g, opts...)
	if err != nil {
		return 0, 0, err
	}
	first := true
	for _, e := range ecc {
		if first {
			diameter, radius, first = e, e, false
			continue
		}
		if e > diameter {
			diameter = e
		}
		if e < radius {
			radius = e
		}
	}

	return diameter, radius, nil
}
