// File: classifier.go
// Role: CART classification tree with gini impurity and per-node feature sampling.

package tree

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/fcgraph/matrix"
)

// ClassifierConfig controls tree growth. Zero values mean "unbounded" for
// MaxDepth and "all features" for MaxFeatures.
type ClassifierConfig struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	// MaxFeatures features are drawn per node; if none of them yields a
	// valid split the remaining features are tried as well.
	MaxFeatures int
}

// DefaultClassifierConfig returns unbounded depth, MinSamplesSplit 2 and
// MinSamplesLeaf 1 over all features.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{MinSamplesSplit: 2, MinSamplesLeaf: 1}
}

func (c ClassifierConfig) validate() error {
	if c.MaxDepth < 0 || c.MinSamplesSplit < 2 || c.MinSamplesLeaf < 1 || c.MaxFeatures < 0 {
		return fmt.Errorf("%w: %+v", ErrBadConfig, c)
	}

	return nil
}

// Classifier is a fitted classification tree.
type Classifier struct {
	nodes   []node
	proba   [][]float64 // per node; only leaves are read
	classes int
}

type cartBuilder struct {
	X       *matrix.Dense
	y       []int
	classes int
	cfg     ClassifierConfig
	rng     *rand.Rand
	out     *Classifier
}

// FitClassifier grows a tree on the rows of X listed in idx (repeats
// allowed). Labels y[i] must lie in [0,classes). rng drives feature
// sampling and may be nil when cfg.MaxFeatures is 0.
func FitClassifier(X *matrix.Dense, y []int, idx []int, classes int, cfg ClassifierConfig, rng *rand.Rand) (*Classifier, error) {
	if err := checkSamples(X, idx, len(y)); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if classes < 1 {
		return nil, fmt.Errorf("%w: classes=%d", ErrBadConfig, classes)
	}
	for _, s := range idx {
		if y[s] < 0 || y[s] >= classes {
			return nil, fmt.Errorf("%w: label %d outside [0,%d)", ErrShape, y[s], classes)
		}
	}
	if cfg.MaxFeatures > 0 && cfg.MaxFeatures < X.Cols() && rng == nil {
		return nil, fmt.Errorf("%w: feature sampling needs a rand source", ErrBadConfig)
	}

	b := &cartBuilder{X: X, y: y, classes: classes, cfg: cfg, rng: rng, out: &Classifier{classes: classes}}
	b.grow(idx, 0)

	return b.out, nil
}

// Classes returns the number of classes the tree was fitted for.
func (c *Classifier) Classes() int { return c.classes }

// Depth returns the depth of the deepest leaf.
func (c *Classifier) Depth() int { return depth(c.nodes, 0) }

// Leaves returns the number of leaves.
func (c *Classifier) Leaves() int {
	n := 0
	for _, nd := range c.nodes {
		if nd.feature == leafNode {
			n++
		}
	}

	return n
}

// PredictProba returns the class distribution of the leaf reached by row.
// The returned slice is shared; callers must not modify it.
func (c *Classifier) PredictProba(row []float64) []float64 {
	return c.proba[walk(c.nodes, row)]
}

func (b *cartBuilder) counts(idx []int) []float64 {
	cnt := make([]float64, b.classes)
	for _, s := range idx {
		cnt[b.y[s]]++
	}

	return cnt
}

// grow appends the subtree over idx and returns its node index.
func (b *cartBuilder) grow(idx []int, d int) int {
	cnt := b.counts(idx)
	id := len(b.out.nodes)
	b.out.nodes = append(b.out.nodes, node{feature: leafNode})
	dist := make([]float64, b.classes)
	for k, c := range cnt {
		dist[k] = c / float64(len(idx))
	}
	b.out.proba = append(b.out.proba, dist)

	if gini(cnt, float64(len(idx))) == 0 ||
		len(idx) < b.cfg.MinSamplesSplit ||
		(b.cfg.MaxDepth > 0 && d >= b.cfg.MaxDepth) {
		return id
	}

	f, thr, ok := b.bestSplit(idx, cnt)
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

func (b *cartBuilder) bestSplit(idx []int, parent []float64) (feature int, threshold float64, ok bool) {
	p := b.X.Cols()
	order := make([]int, p)
	for i := range order {
		order[i] = i
	}
	budget := p
	if b.cfg.MaxFeatures > 0 && b.cfg.MaxFeatures < p {
		b.rng.Shuffle(p, func(i, j int) { order[i], order[j] = order[j], order[i] })
		budget = b.cfg.MaxFeatures
	}

	n := float64(len(idx))
	best := gini(parent, n)
	minLeaf := b.cfg.MinSamplesLeaf
	for tried, f := range order {
		if tried >= budget && ok {
			break
		}
		ord, vals := sortedBy(b.X, idx, f)
		left := make([]float64, b.classes)
		right := append([]float64(nil), parent...)
		for i := 0; i < len(ord)-1; i++ {
			k := b.y[ord[i]]
			left[k]++
			right[k]--
			if vals[i] == vals[i+1] {
				continue
			}
			nl := i + 1
			nr := len(ord) - nl
			if nl < minLeaf || nr < minLeaf {
				continue
			}
			imp := (float64(nl)*gini(left, float64(nl)) + float64(nr)*gini(right, float64(nr))) / n
			if imp < best-1e-12 {
				best, feature, ok = imp, f, true
				threshold = midpoint(vals[i], vals[i+1])
			}
		}
	}

	return feature, threshold, ok
}

func gini(cnt []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	s := 1.0
	for _, c := range cnt {
		q := c / n
		s -= q * q
	}
	if s < 1e-15 {
		return 0
	}

	return s
}

func depth(nodes []node, i int) int {
	if nodes[i].feature == leafNode {
		return 0
	}

	return 1 + max(depth(nodes, nodes[i].left), depth(nodes, nodes[i].right))
}
