// File: dfs.go
// Role: depth-first traversal (single source or forest) over core.Graph.
// Determinism:
//   - Neighbors are expanded in sorted ID order; forest roots are taken in
//     sorted ID order.
// Complexity:
//   - Time O(V + E), memory O(V).

package dfs

import (
	"fmt"

	"github.com/katalvlaran/fcgraph/core"
)

// DFS performs depth-first search on graph g. With WithFullTraversal it
// covers all components; otherwise it starts only from startID.
// Traversal uses an explicit stack, so deep call chains do not grow the
// goroutine stack.
func DFS(g *core.Graph, startID string, opts ...Option) (*DFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if !o.FullTraversal && !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	vertices := g.Vertices()
	res := &DFSResult{
		Order:   make([]string, 0, len(vertices)),
		Parent:  make(map[string]string, len(vertices)),
		Tree:    make(map[string]int, len(vertices)),
		visited: make(map[string]bool, len(vertices)),
	}

	roots := []string{startID}
	if o.FullTraversal {
		roots = vertices
	}
	for _, r := range roots {
		if res.visited[r] {
			continue
		}
		res.Roots = append(res.Roots, r)
		if err := walk(g, r, o, res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

type frame struct {
	id   string
	next []string
}

func walk(g *core.Graph, root string, o DFSOptions, res *DFSResult) error {
	enter := func(id string) (*frame, error) {
		res.visited[id] = true
		res.Tree[id] = len(res.Roots) - 1
		if o.OnVisit != nil {
			if err := o.OnVisit(id); err != nil {
				return nil, fmt.Errorf("dfs: OnVisit hook for %q: %w", id, err)
			}
		}
		nbs, err := g.NeighborIDs(id)
		if err != nil {
			return nil, fmt.Errorf("dfs: NeighborIDs(%q): %w", id, err)
		}

		return &frame{id: id, next: nbs}, nil
	}

	top, err := enter(root)
	if err != nil {
		return err
	}
	stack := []*frame{top}
	for len(stack) > 0 {
		select {
		case <-o.Ctx.Done():
			return o.Ctx.Err()
		default:
		}

		f := stack[len(stack)-1]
		if len(f.next) == 0 {
			stack = stack[:len(stack)-1]
			if o.OnExit != nil {
				if err = o.OnExit(f.id); err != nil {
					return fmt.Errorf("dfs: OnExit hook for %q: %w", f.id, err)
				}
			}
			res.Order = append(res.Order, f.id)
			continue
		}

		nid := f.next[0]
		f.next = f.next[1:]
		if res.visited[nid] {
			continue
		}
		res.Parent[nid] = f.id
		child, err := enter(nid)
		if err != nil {
			return err
		}
		stack = append(stack, child)
	}

	return nil
}
