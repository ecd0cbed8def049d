// File: regressor.go
// Role: second-order regression tree for gradient boosting.
// Split gain and leaf weights follow the usual Newton step:
//   gain = G_L²/(H_L+λ) + G_R²/(H_R+λ) - G²/(H+λ) - γ
//   w    = -G/(H+λ) · LeafScale

package tree

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fcgraph/matrix"
)

// RegressorConfig controls growth of a Regressor.
type RegressorConfig struct {
	MaxDepth       int     // must be >= 1
	Lambda         float64 // L2 penalty on leaf weights
	Gamma          float64 // minimum gain for a split
	MinChildWeight float64 // minimum hessian sum per child
	MinSamplesLeaf int
	// UnitHessianSplit scores splits as least squares on the negative
	// gradient (hessian treated as 1); leaves still use the real hessian.
	UnitHessianSplit bool
	// LeafScale multiplies every leaf weight (learning rate, class factor).
	LeafScale float64
}

func (c RegressorConfig) validate() error {
	if c.MaxDepth < 1 || c.Lambda < 0 || c.Gamma < 0 || c.MinChildWeight < 0 ||
		c.MinSamplesLeaf < 1 || !(c.LeafScale > 0) {
		return fmt.Errorf("%w: %+v", ErrBadConfig, c)
	}

	return nil
}

// Regressor is a fitted second-order regression tree.
type Regressor struct {
	nodes  []node
	weight []float64
}

type newtonBuilder struct {
	X    *matrix.Dense
	g, h []float64
	cfg  RegressorConfig
	out  *Regressor
}

// FitRegressor grows a tree on rows idx of X against per-row gradients g
// and hessians h (both indexed like X's rows).
func FitRegressor(X *matrix.Dense, g, h []float64, idx []int, cfg RegressorConfig) (*Regressor, error) {
	if err := checkSamples(X, idx, len(g)); err != nil {
		return nil, err
	}
	if len(h) != len(g) {
		return nil, fmt.Errorf("%w: %d hessians for %d gradients", ErrShape, len(h), len(g))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := &newtonBuilder{X: X, g: g, h: h, cfg: cfg, out: &Regressor{}}
	b.grow(idx, 0)

	return b.out, nil
}

// Predict returns the leaf weight reached by row.
func (r *Regressor) Predict(row []float64) float64 { return r.weight[walk(r.nodes, row)] }

// Leaves returns the number of leaves.
func (r *Regressor) Leaves() int {
	n := 0
	for _, nd := range r.nodes {
		if nd.feature == leafNode {
			n++
		}
	}

	return n
}

// Depth returns the depth of the deepest leaf.
func (r *Regressor) Depth() int { return depth(r.nodes, 0) }

func (b *newtonBuilder) sums(idx []int) (G, H, S float64) {
	for _, s := range idx {
		G += b.g[s]
		H += b.h[s]
	}

	return G, H, float64(len(idx))
}

func (b *newtonBuilder) leaf(G, H float64) float64 {
	den := H + b.cfg.Lambda
	if den < 1e-12 {
		return 0
	}

	return -G / den * b.cfg.LeafScale
}

func (b *newtonBuilder) score(G, H float64) float64 {
	den := H + b.cfg.Lambda
	if den < 1e-12 {
		return 0
	}

	return G * G / den
}

func (b *newtonBuilder) grow(idx []int, d int) int {
	G, H, S := b.sums(idx)
	id := len(b.out.nodes)
	b.out.nodes = append(b.out.nodes, node{feature: leafNode})
	b.out.weight = append(b.out.weight, b.leaf(G, H))

	if d >= b.cfg.MaxDepth || len(idx) < 2*b.cfg.MinSamplesLeaf {
		return id
	}
	splitH := H
	if b.cfg.UnitHessianSplit {
		splitH = S
	}

	f, thr, ok := b.bestSplit(idx, G, splitH)
	if !ok {
		return id
	}
	var left, right []int
	for _, s := range idx {
		if b.X.Row(s)[f] <= thr {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	l := b.grow(left, d+1)
	r := b.grow(right, d+1)
	b.out.nodes[id] = node{feature: f, threshold: thr, left: l, right: r}

	return id
}

func (b *newtonBuilder) bestSplit(idx []int, G, H float64) (feature int, threshold float64, ok bool) {
	parent := b.score(G, H)
	best := b.cfg.Gamma
	if best == 0 {
		best = 1e-12
	}
	for f := 0; f < b.X.Cols(); f++ {
		ord, vals := sortedBy(b.X, idx, f)
		var gl, hl, hlReal float64
		for i := 0; i < len(ord)-1; i++ {
			s := ord[i]
			gl += b.g[s]
			hlReal += b.h[s]
			if b.cfg.UnitHessianSplit {
				hl++
			} else {
				hl = hlReal
			}
			if vals[i] == vals[i+1] {
				continue
			}
			nl := i + 1
			if nl < b.cfg.MinSamplesLeaf || len(ord)-nl < b.cfg.MinSamplesLeaf {
				continue
			}
			if !b.cfg.UnitHessianSplit {
				if hlReal < b.cfg.MinChildWeight || (H-hlReal) < b.cfg.MinChildWeight {
					continue
				}
			}
			gain := b.score(gl, hl) + b.score(G-gl, H-hl) - parent
			if gain > best && !math.IsNaN(gain) {
				best, feature, ok = gain, f, true
				threshold = midpoint(vals[i], vals[i+1])
			}
		}
	}

	return feature, threshold, ok
}
