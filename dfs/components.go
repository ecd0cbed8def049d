// File: components.go
// Role: weakly and strongly connected component decomposition.
// Determinism:
//   - Members of each component are sorted; components are ordered by their
//     smallest member ID.

package dfs

import (
	"sort"

	"github.com/katalvlaran/fcgraph/core"
)

// WeaklyConnectedComponents partitions g into components ignoring edge
// direction. For an undirected graph these are the ordinary connected
// components. An empty graph has zero components.
//
// Complexity: O(V + E).
func WeaklyConnectedComponents(g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	u := g
	if g.Directed() {
		u = g.Undirected()
	}

	res, err := DFS(u, "", WithFullTraversal())
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(res.Roots))
	for _, id := range u.Vertices() {
		t := res.Tree[id]
		out[t] = append(out[t], id)
	}

	return normalize(out), nil
}

// StronglyConnectedComponents returns the SCCs of a directed graph using an
// iterative form of Tarjan's algorithm. Every vertex belongs to exactly one
// component; an isolated vertex forms a singleton.
//
// Complexity: O(V + E).
func StronglyConnectedComponents(g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	var (
		ids     = g.Vertices()
		index   = make(map[string]int, len(ids))
		low     = make(map[string]int, len(ids))
		onStack = make(map[string]bool, len(ids))
		stack   []string
		counter int
		out     [][]string
	)

	for _, root := range ids {
		if _, seen := index[root]; seen {
			continue
		}

		index[root], low[root] = counter, counter
		counter++
		stack = append(stack, root)
		onStack[root] = true
		succ, err := g.Successors(root)
		if err != nil {
			return nil, err
		}
		call := []*frame{{id: root, next: succ}}

		for len(call) > 0 {
			f := call[len(call)-1]
			if len(f.next) > 0 {
				w := f.next[0]
				f.next = f.next[1:]
				if _, seen := index[w]; !seen {
					index[w], low[w] = counter, counter
					counter++
					stack = append(stack, w)
					onStack[w] = true
					ws, err := g.Successors(w)
					if err != nil {
						return nil, err
					}
					call = append(call, &frame{id: w, next: ws})
				} else if onStack[w] && index[w] < low[f.id] {
					low[f.id] = index[w]
				}
				continue
			}

			call = call[:len(call)-1]
			if len(call) > 0 {
				parent := call[len(call)-1].id
				if low[f.id] < low[parent] {
					low[parent] = low[f.id]
				}
			}
			if low[f.id] != index[f.id] {
				continue
			}
			var scc []string
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				scc = append(scc, top)
				if top == f.id {
					break
				}
			}
			out = append(out, scc)
		}
	}

	return normalize(out), nil
}

func normalize(comps [][]string) [][]string {
	for _, c := range comps {
		sort.Strings(c)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })

	return comps
}
