// File: forest.go
// Role: bagged decision forest. Trees are grown concurrently, each from its
// own seed, so the fitted forest does not depend on scheduling.

package classifier

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fcgraph/matrix"
	"github.com/katalvlaran/fcgraph/tree"
)

// RandomForest grows Trees bootstrap-sampled CART trees with per-node
// feature sampling and averages their leaf distributions.
type RandomForest struct {
	Trees   int
	Seed    int64
	Workers int
	Config  ForestConfig
}

// NewRandomForest builds the forest learner described by cfg.
func NewRandomForest(cfg Config) *RandomForest {
	return &RandomForest{Trees: cfg.Estimators, Seed: cfg.Seed, Workers: cfg.workers(), Config: cfg.Forest}
}

// Name implements Learner.
func (f *RandomForest) Name() string { return RandomForestName }

// Fit implements Learner.
func (f *RandomForest) Fit(ctx context.Context, X *matrix.Dense, y []int, idx []int, classes int) (Model, error) {
	if len(idx) == 0 {
		return nil, ErrNoSamples
	}
	mf, err := maxFeatures(f.Config.MaxFeatures, X.Cols())
	if err != nil {
		return nil, err
	}
	tcfg := tree.ClassifierConfig{
		MaxDepth:        f.Config.MaxDepth,
		MinSamplesSplit: max(2, f.Config.MinSamplesSplit),
		MinSamplesLeaf:  max(1, f.Config.MinSamplesLeaf),
		MaxFeatures:     mf,
	}

	trees := make([]*tree.Classifier, f.Trees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, f.Workers))
	for i := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(f.Seed + int64(i)))
			boot := make([]int, len(idx))
			for k := range boot {
				boot[k] = idx[rng.Intn(len(idx))]
			}
			t, err := tree.FitClassifier(X, y, boot, classes, tcfg, rng)
			if err != nil {
				return err
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &forestModel{trees: trees, classes: classes}, nil
}

type forestModel struct {
	trees   []*tree.Classifier
	classes int
}

func (m *forestModel) PredictProba(row []float64) []float64 {
	out := make([]float64, m.classes)
	for _, t := range m.trees {
		for k, p := range t.PredictProba(row) {
			out[k] += p
		}
	}
	inv := 1.0 / float64(len(m.trees))
	for k := range out {
		out[k] *= inv
	}

	return out
}
