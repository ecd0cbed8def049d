// Package tree provides the axis-aligned decision trees used by the
// ensemble: a gini-split classification tree (Classifier) for bagging and a
// second-order regression tree (Regressor) fitted on gradient/hessian pairs
// for boosting.
//
// Trees are stored as flat node slices; a sample goes left when its feature
// value is <= the node threshold. Thresholds are midpoints between adjacent
// distinct training values. Both fitters take a sample index slice so that
// bootstrap replicates (repeated indices) and CV folds share one matrix.
package tree

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/fcgraph/matrix"
)

// Sentinel errors.
var (
	// ErrNoSamples is returned when the sample index set is empty.
	ErrNoSamples = errors.New("tree: no samples")

	// ErrShape is returned when targets do not line up with the matrix.
	ErrShape = errors.New("tree: shape mismatch")

	// ErrBadConfig is returned for out-of-range configuration values.
	ErrBadConfig = errors.New("tree: invalid configuration")
)

const leafNode = -1

type node struct {
	feature     int // leafNode for leaves
	threshold   float64
	left, right int
}

// walk returns the index of the leaf reached by row.
func walk(nodes []node, row []float64) int {
	i := 0
	for nodes[i].feature != leafNode {
		if row[nodes[i].feature] <= nodes[i].threshold {
			i = nodes[i].left
		} else {
			i = nodes[i].right
		}
	}

	return i
}

// sortedBy returns a copy of idx ordered by column f of X.
func sortedBy(X *matrix.Dense, idx []int, f int) ([]int, []float64) {
	ord := make([]int, len(idx))
	copy(ord, idx)
	sort.SliceStable(ord, func(a, b int) bool { return X.Row(ord[a])[f] < X.Row(ord[b])[f] })
	vals := make([]float64, len(ord))
	for i, s := range ord {
		vals[i] = X.Row(s)[f]
	}

	return ord, vals
}

func checkSamples(X *matrix.Dense, idx []int, targets int) error {
	if X == nil {
		return fmt.Errorf("%w: nil matrix", ErrShape)
	}
	if len(idx) == 0 {
		return ErrNoSamples
	}
	if targets != X.Rows() {
		return fmt.Errorf("%w: %d targets for %d rows", ErrShape, targets, X.Rows())
	}
	for _, s := range idx {
		if s < 0 || s >= X.Rows() {
			return fmt.Errorf("%w: sample %d outside [0,%d)", ErrShape, s, X.Rows())
		}
	}

	return nil
}

// midpoint returns a threshold in [lo, hi) between two adjacent distinct
// values; rounding may otherwise land it on hi.
func midpoint(lo, hi float64) float64 {
	m := lo + (hi-lo)/2
	if m >= hi {
		return lo
	}

	return m
}
