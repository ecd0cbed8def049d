// File: paths.go
// Role: shortest-path based measures (betweenness, closeness).
// Complexity:
//   - O(V·(V+E)) time, O(V+E) memory, one BFS per source.

package centrality

// Betweenness returns normalised betweenness centrality per vertex.
// For n ≤ 2 the raw pair-dependency sums are returned unscaled (they are 0).
func Betweenness(s *Snapshot) ([]float64, error) {
	if s == nil {
		return nil, ErrGraphNil
	}
	n := s.N()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	cb := make([]float64, n)
	var (
		stack = make([]int, 0, n)
		queue = make([]int, 0, n)
		dist  = make([]int, n)
		sigma = make([]float64, n)
		delta = make([]float64, n)
		preds = make([][]int, n)
	)
	for src := 0; src < n; src++ {
		for i := 0; i < n; i++ {
			dist[i] = -1
			sigma[i] = 0
			delta[i] = 0
			preds[i] = preds[i][:0]
		}
		stack, queue = stack[:0], queue[:0]
		dist[src], sigma[src] = 0, 1
		queue = append(queue, src)

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			stack = append(stack, v)
			for _, w := range s.Out[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		for k := len(stack) - 1; k >= 0; k-- {
			w := stack[k]
			coeff := (1 + delta[w]) / sigma[w]
			for _, v := range preds[w] {
				delta[v] += sigma[v] * coeff
			}
			if w != src {
				cb[w] += delta[w]
			}
		}
	}

	if n > 2 {
		scale := 1 / (float64(n-1) * float64(n-2))
		for i := range cb {
			cb[i] *= scale
		}
	}

	return cb, nil
}

// Closeness returns closeness centrality per vertex computed from incoming
// shortest paths: for vertex u with r-1 vertices able to reach it at total
// distance d, closeness is ((r-1)/d)·((r-1)/(n-1)). Vertices nobody reaches
// score 0.
func Closeness(s *Snapshot) ([]float64, error) {
	if s == nil {
		return nil, ErrGraphNil
	}
	n := s.N()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	cc := make([]float64, n)
	dist := make([]int, n)
	queue := make([]int, 0, n)
	for u := 0; u < n; u++ {
		for i := range dist {
			dist[i] = -1
		}
		dist[u] = 0
		queue = append(queue[:0], u)
		total := 0
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			total += dist[v]
			for _, w := range s.In[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
			}
		}
		reached := len(queue) - 1
		if total > 0 && n > 1 {
			cc[u] = float64(reached) / float64(total)
			cc[u] *= float64(reached) / float64(n-1)
		}
	}

	return cc, nil
}
