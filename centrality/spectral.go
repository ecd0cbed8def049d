// File: spectral.go
// Role: power-iteration measures (eigenvector centrality, PageRank).
// Determinism:
//   - Fixed uniform start vector and index-order accumulation.

package centrality

import (
	"fmt"
	"math"
)

const (
	eigenMaxIter    = 1000
	pageRankMaxIter = 100
)

// Eigenvector returns eigenvector centrality per vertex: the fixed point of
// x ← (I + Aᵀ)x / ‖(I + Aᵀ)x‖₂ started from the uniform vector, where a
// vertex gains score from its callers. The shift by I keeps the iteration
// stable on bipartite structure.
//
// Defaults: MaxIter 1000, Tol 1e-6.
// Errors: ErrEmptyGraph, ErrNoConvergence, ErrOptionViolation.
func Eigenvector(s *Snapshot, opts ...Option) ([]float64, error) {
	if s == nil {
		return nil, ErrGraphNil
	}
	o, err := resolve(eigenMaxIter, opts)
	if err != nil {
		return nil, err
	}
	n := s.N()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / float64(n)
	}
	last := make([]float64, n)
	for iter := 0; iter < o.MaxIter; iter++ {
		copy(last, x)
		for v := 0; v < n; v++ {
			for _, w := range s.Out[v] {
				x[w] += last[v]
			}
		}
		norm := 0.0
		for _, z := range x {
			norm += z * z
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		diff := 0.0
		for i := range x {
			x[i] /= norm
			diff += math.Abs(x[i] - last[i])
		}
		if diff < float64(n)*o.Tol {
			return x, nil
		}
	}

	return nil, fmt.Errorf("Eigenvector: %d iterations: %w", o.MaxIter, ErrNoConvergence)
}

// PageRank returns the PageRank vector with uniform teleport and uniform
// redistribution of dangling-vertex mass. A self-loop counts toward the
// out-degree of its vertex.
//
// Defaults: Alpha 0.85, MaxIter 100, Tol 1e-6.
// Errors: ErrEmptyGraph, ErrNoConvergence, ErrOptionViolation.
func PageRank(s *Snapshot, opts ...Option) ([]float64, error) {
	if s == nil {
		return nil, ErrGraphNil
	}
	o, err := resolve(pageRankMaxIter, opts)
	if err != nil {
		return nil, err
	}
	n := s.N()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	inv := 1 / float64(n)
	x := make([]float64, n)
	for i := range x {
		x[i] = inv
	}
	next := make([]float64, n)
	for iter := 0; iter < o.MaxIter; iter++ {
		dangling := 0.0
		for v := 0; v < n; v++ {
			if len(s.Out[v]) == 0 {
				dangling += x[v]
			}
		}
		base := o.Alpha*dangling*inv + (1-o.Alpha)*inv
		for i := range next {
			next[i] = base
		}
		for v := 0; v < n; v++ {
			if d := len(s.Out[v]); d > 0 {
				share := o.Alpha * x[v] / float64(d)
				for _, w := range s.Out[v] {
					next[w] += share
				}
			}
		}
		diff := 0.0
		for i := range x {
			diff += math.Abs(next[i] - x[i])
		}
		x, next = next, x
		if diff < float64(n)*o.Tol {
			return x, nil
		}
	}

	return nil, fmt.Errorf("PageRank: %d iterations: %w", o.MaxIter, ErrNoConvergence)
}
