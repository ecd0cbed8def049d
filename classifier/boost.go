// File: boost.go
// Role: multiclass gradient boosting on softmax log-loss. Two flavours share
// the round loop:
//   - GradientBoosting: log-prior start, least-squares splits on the
//     residuals, Newton leaves scaled by lr·(K-1)/K.
//   - XGBoost: constant base margin, regularised second-order splits
//     (lambda, gamma, min_child_weight), leaves scaled by eta.
// The K trees of one round are independent and are fitted concurrently.

package classifier

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fcgraph/matrix"
	"github.com/katalvlaran/fcgraph/tree"
)

// float32 machine epsilon; clips prior probabilities before the log.
const priorEps = 1.1920929e-07

// Booster fits Rounds rounds of K regression trees.
type Booster struct {
	name    string
	Rounds  int
	Workers int
	Tree    tree.RegressorConfig
	// hessian returns the per-sample second derivative for probability p.
	hessian func(p float64) float64
	// init returns the starting margins for the class frequencies.
	init func(freq []float64) []float64
}

// NewGradientBoosting builds the sequentially boosted learner.
func NewGradientBoosting(cfg Config) *Booster {
	return &Booster{
		name:    GradientBoostingName,
		Rounds:  cfg.Estimators,
		Workers: cfg.workers(),
		Tree: tree.RegressorConfig{
			MaxDepth:         cfg.GBM.MaxDepth,
			MinSamplesLeaf:   1,
			UnitHessianSplit: true,
			LeafScale:        cfg.GBM.LearningRate,
		},
		hessian: func(p float64) float64 { return p * (1 - p) },
		init: func(freq []float64) []float64 {
			out := make([]float64, len(freq))
			for k, f := range freq {
				out[k] = math.Log(math.Min(math.Max(f, priorEps), 1-priorEps))
			}
			return out
		},
	}
}

// NewXGBoost builds the regularised second-order booster.
func NewXGBoost(cfg Config) *Booster {
	base := cfg.XGB.BaseScore
	return &Booster{
		name:    XGBoostName,
		Rounds:  cfg.Estimators,
		Workers: cfg.workers(),
		Tree: tree.RegressorConfig{
			MaxDepth:       cfg.XGB.MaxDepth,
			Lambda:         cfg.XGB.Lambda,
			Gamma:          cfg.XGB.Gamma,
			MinChildWeight: cfg.XGB.MinChildWeight,
			MinSamplesLeaf: 1,
			LeafScale:      cfg.XGB.Eta,
		},
		hessian: func(p float64) float64 { return math.Max(2*p*(1-p), 1e-16) },
		init: func(freq []float64) []float64 {
			out := make([]float64, len(freq))
			for k := range out {
				out[k] = base
			}
			return out
		},
	}
}

// Name implements Learner.
func (b *Booster) Name() string { return b.name }

// Fit implements Learner.
func (b *Booster) Fit(ctx context.Context, X *matrix.Dense, y []int, idx []int, classes int) (Model, error) {
	if len(idx) == 0 {
		return nil, ErrNoSamples
	}
	tcfg := b.Tree
	if b.name == GradientBoostingName && classes > 1 {
		tcfg.LeafScale *= float64(classes-1) / float64(classes)
	}

	freq := make([]float64, classes)
	for _, s := range idx {
		freq[y[s]]++
	}
	for k := range freq {
		freq[k] /= float64(len(idx))
	}
	model := &boostModel{init: b.init(freq), rounds: make([][]*tree.Regressor, 0, b.Rounds)}

	n := X.Rows()
	margin := make([][]float64, n)
	for _, s := range idx {
		margin[s] = append([]float64(nil), model.init...)
	}
	grad := make([][]float64, classes)
	hess := make([][]float64, classes)
	for k := range grad {
		grad[k] = make([]float64, n)
		hess[k] = make([]float64, n)
	}

	for r := 0; r < b.Rounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, s := range idx {
			p := softmax(margin[s])
			for k := 0; k < classes; k++ {
				target := 0.0
				if y[s] == k {
					target = 1
				}
				grad[k][s] = p[k] - target
				hess[k][s] = b.hessian(p[k])
			}
		}

		round := make([]*tree.Regressor, classes)
		var g errgroup.Group
		g.SetLimit(max(1, b.Workers))
		for k := 0; k < classes; k++ {
			g.Go(func() error {
				t, err := tree.FitRegressor(X, grad[k], hess[k], idx, tcfg)
				if err != nil {
					return err
				}
				round[k] = t
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		model.rounds = append(model.rounds, round)

		for _, s := range idx {
			row := X.Row(s)
			for k, t := range round {
				margin[s][k] += t.Predict(row)
			}
		}
	}

	return model, nil
}

type boostModel struct {
	init   []float64
	rounds [][]*tree.Regressor
}

func (m *boostModel) PredictProba(row []float64) []float64 {
	f := append([]float64(nil), m.init...)
	for _, round := range m.rounds {
		for k, t := range round {
			f[k] += t.Predict(row)
		}
	}

	return softmax(f)
}

// softmax returns a fresh probability vector for margins f.
func softmax(f []float64) []float64 {
	out := make([]float64, len(f))
	hi := math.Inf(-1)
	for _, v := range f {
		hi = math.Max(hi, v)
	}
	var sum float64
	for k, v := range f {
		out[k] = math.Exp(v - hi)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}

	return out
}
