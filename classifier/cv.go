// File: cv.go
// Role: stratified k-fold splitting, macro-F1 scoring and the fold runner.

package classifier

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fcgraph/matrix"
)

// CVScore summarises cross-validated macro-F1 for one model.
type CVScore struct {
	Mean float64
	Std  float64
	// Folds holds the per-fold scores in fold order.
	Folds []float64
	// Sentinel marks a placeholder 1.0 recorded when there were too few
	// samples to cross-validate.
	Sentinel bool
}

// SentinelScore is recorded when cross-validation is skipped.
func SentinelScore() CVScore { return CVScore{Mean: 1, Sentinel: true} }

// StratifiedKFold assigns each sample a fold in [0,k) such that every
// fold's class mix follows the overall one. Per-class member order is
// shuffled with seed; fold sizes per class are allocated by striding the
// label-sorted sample list. k must be in [2, len(y)].
func StratifiedKFold(y []int, k int, seed int64) ([][]int, error) {
	n := len(y)
	if k < 2 || k > n {
		return nil, fmt.Errorf("%w: %d folds for %d samples", ErrBadConfig, k, n)
	}

	byClass := make(map[int][]int)
	for i, c := range y {
		byClass[c] = append(byClass[c], i)
	}
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	// allocation[f][c]: number of class-c samples in fold f
	sortedY := append([]int(nil), y...)
	sort.Ints(sortedY)
	alloc := make([]map[int]int, k)
	for f := range alloc {
		alloc[f] = make(map[int]int)
		for i := f; i < n; i += k {
			alloc[f][sortedY[i]]++
		}
	}

	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)
	for _, c := range classes {
		members := byClass[c]
		rng.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		pos := 0
		for f := 0; f < k; f++ {
			cnt := alloc[f][c]
			folds[f] = append(folds[f], members[pos:pos+cnt]...)
			pos += cnt
		}
	}
	for _, fold := range folds {
		sort.Ints(fold)
	}

	return folds, nil
}

// MacroF1 averages per-class F1 over every label present in truth or pred.
// A class with no predicted or no true members scores 0.
func MacroF1(truth, pred []int) float64 {
	if len(truth) == 0 || len(truth) != len(pred) {
		return 0
	}
	tp := make(map[int]float64)
	fp := make(map[int]float64)
	fn := make(map[int]float64)
	labels := make(map[int]struct{})
	for i := range truth {
		labels[truth[i]] = struct{}{}
		labels[pred[i]] = struct{}{}
		if truth[i] == pred[i] {
			tp[truth[i]]++
		} else {
			fp[pred[i]]++
			fn[truth[i]]++
		}
	}

	var sum float64
	for c := range labels {
		den := 2*tp[c] + fp[c] + fn[c]
		if den > 0 {
			sum += 2 * tp[c] / den
		}
	}

	return sum / float64(len(labels))
}

// CrossValidate scores learner with stratified k-fold CV on X/y. Folds run
// concurrently, bounded by workers.
func CrossValidate(ctx context.Context, learner Learner, X *matrix.Dense, y []int, classes, k int, seed int64, workers int) (CVScore, error) {
	folds, err := StratifiedKFold(y, k, seed)
	if err != nil {
		return CVScore{}, err
	}

	scores := make([]float64, k)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for f := range folds {
		g.Go(func() error {
			test := folds[f]
			train := make([]int, 0, len(y)-len(test))
			for o, fold := range folds {
				if o != f {
					train = append(train, fold...)
				}
			}
			sort.Ints(train)

			m, err := learner.Fit(ctx, X, y, train, classes)
			if err != nil {
				return fmt.Errorf("%s fold %d: %w", learner.Name(), f, err)
			}
			truth := make([]int, len(test))
			pred := make([]int, len(test))
			for i, s := range test {
				truth[i] = y[s]
				pred[i] = argmax(m.PredictProba(X.Row(s)))
			}
			scores[f] = MacroF1(truth, pred)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CVScore{}, err
	}

	mean, std := matrix.MeanStd(scores)

	return CVScore{Mean: mean, Std: std, Folds: scores}, nil
}

// argmax returns the first index of the largest value.
func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}

	return best
}
