// Package centrality computes per-vertex centrality and local structure
// measures on directed call graphs.
//
// All routines work on a Snapshot: an integer-indexed, read-only copy of a
// core.Graph's adjacency. Building the snapshot once and running every
// measure on it avoids repeated map lookups in the inner loops.
//
// Semantics follow the common directed-graph definitions:
//   - Betweenness: Brandes' algorithm, normalised by 1/((n-1)(n-2)) for n > 2.
//   - Closeness: distances *to* each vertex, scaled by the reachable fraction
//     (Wasserman–Faust), so partially reachable vertices are not inflated.
//   - Eigenvector: power iteration of x ← (I + Aᵀ)x with L2 normalisation.
//   - PageRank: damping 0.85 with uniform teleport and dangling mass.
//   - Clustering: directed triangles over total degree (Fagiolo).
//   - TriadCensus: Batagelj–Mrvar census of the 16 directed triad types.
//
// Iterative routines return ErrNoConvergence when the tolerance is not met
// within the iteration budget. Callers decide how to degrade.
package centrality

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fcgraph/core"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned when a nil graph or snapshot is supplied.
	ErrGraphNil = errors.New("centrality: graph is nil")

	// ErrEmptyGraph is returned by measures that are undefined on zero vertices.
	ErrEmptyGraph = errors.New("centrality: graph has no vertices")

	// ErrNoConvergence is returned when a power iteration exhausts MaxIter.
	ErrNoConvergence = errors.New("centrality: power iteration did not converge")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("centrality: invalid option supplied")
)

// Snapshot is an immutable, index-based view of a directed graph.
// Out[i] and In[i] are sorted, duplicate-free neighbor indices; a self-loop
// on i appears in both Out[i] and In[i].
type Snapshot struct {
	IDs []string
	Out [][]int
	In  [][]int
}

// FromGraph snapshots g. Vertices are indexed in sorted ID order.
// An undirected g is read as a directed graph with both orientations.
//
// Complexity: O(V + E log E).
func FromGraph(g *core.Graph) (*Snapshot, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	ids := g.Vertices()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	s := &Snapshot{IDs: ids, Out: make([][]int, len(ids)), In: make([][]int, len(ids))}
	for i, id := range ids {
		succ, err := g.Successors(id)
		if err != nil {
			return nil, fmt.Errorf("centrality: Successors(%q): %w", id, err)
		}
		pred, err := g.Predecessors(id)
		if err != nil {
			return nil, fmt.Errorf("centrality: Predecessors(%q): %w", id, err)
		}
		s.Out[i] = indices(succ, index)
		s.In[i] = indices(pred, index)
	}

	return s, nil
}

// indices maps sorted IDs to their indices; since index order follows ID
// order the result is sorted too.
func indices(ids []string, index map[string]int) []int {
	out := make([]int, len(ids))
	for k, id := range ids {
		out[k] = index[id]
	}

	return out
}

// N returns the vertex count.
func (s *Snapshot) N() int { return len(s.IDs) }

// Option configures the iterative measures.
type Option func(*Options)

// Options holds iteration parameters for Eigenvector and PageRank.
type Options struct {
	// MaxIter bounds the number of power-iteration steps.
	MaxIter int
	// Tol is the per-vertex L1 tolerance; iteration stops when the total
	// change falls below N*Tol.
	Tol float64
	// Alpha is the PageRank damping factor.
	Alpha float64

	err error
}

func defaultOptions(maxIter int) Options {
	return Options{MaxIter: maxIter, Tol: 1e-6, Alpha: 0.85}
}

// WithMaxIter overrides the iteration budget (must be > 0).
func WithMaxIter(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxIter must be > 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIter = n
	}
}

// WithTolerance overrides the convergence tolerance (must be > 0).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) {
			o.err = fmt.Errorf("%w: tolerance must be > 0 (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tol = tol
	}
}

// WithAlpha overrides the PageRank damping factor (0 < alpha < 1).
func WithAlpha(alpha float64) Option {
	return func(o *Options) {
		if !(alpha > 0 && alpha < 1) {
			o.err = fmt.Errorf("%w: alpha must be in (0,1) (%g)", ErrOptionViolation, alpha)
			return
		}
		o.Alpha = alpha
	}
}

func resolve(maxIter int, opts []Option) (Options, error) {
	o := defaultOptions(maxIter)
	for _, fn := range opts {
		fn(&o)
	}

	return o, o.err
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}
