// File: ensemble.go
// Role: Ensemble state machine (unfitted → fitted), training orchestration
// and probability-averaging prediction.

package classifier

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/fcgraph/features"
	"github.com/katalvlaran/fcgraph/matrix"
)

// Ensemble is a set of fitted models plus the preprocessing they share.
type Ensemble struct {
	cfg      Config
	log      *zap.Logger
	learners []Learner

	mu     sync.RWMutex
	fitted bool
	schema *features.Schema
	codec  *LabelCodec
	scaler *Scaler
	names  []string
	models []Model
	scores map[string]CVScore
	best   string
}

// NewEnsemble returns an unfitted ensemble of RandomForest,
// GradientBoosting and XGBoost learners configured from cfg.
func NewEnsemble(cfg Config, opts ...Option) *Ensemble {
	e := &Ensemble{
		cfg: cfg,
		log: zap.NewNop(),
		learners: []Learner{
			NewRandomForest(cfg),
			NewGradientBoosting(cfg),
			NewXGBoost(cfg),
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Fitted reports whether Fit has succeeded.
func (e *Ensemble) Fitted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.fitted
}

// Fit trains every learner on X and y and returns each model's CV score.
// All models are kept regardless of score. A failed Fit leaves the
// ensemble unfitted. Cross-validation uses k = min(MaxFolds, samples),
// lowered further to the size of the largest class, so k can be smaller
// than min(MaxFolds, samples); below 2 folds a sentinel score is recorded.
func (e *Ensemble) Fit(X *features.Matrix, y []string) (map[string]CVScore, error) {
	return e.FitContext(context.Background(), X, y)
}

// FitContext is Fit with cancellation: ctx is checked between models and
// by the parallel tree and fold workers.
func (e *Ensemble) FitContext(ctx context.Context, X *features.Matrix, y []string) (map[string]CVScore, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fitted {
		return nil, ErrAlreadyFitted
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkLearners(e.learners); err != nil {
		return nil, err
	}
	if X == nil || X.Rows() == 0 {
		return nil, ErrNoSamples
	}
	if X.Rows() != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrLabelCount, X.Rows(), len(y))
	}

	codec, err := NewLabelCodec(y)
	if err != nil {
		return nil, err
	}
	yi, err := codec.Encode(y)
	if err != nil {
		return nil, err
	}
	scaler, err := FitScaler(X.Dense())
	if err != nil {
		return nil, fmt.Errorf("classifier: fit scaler: %w", err)
	}
	Xs, err := scaler.Transform(X.Dense())
	if err != nil {
		return nil, fmt.Errorf("classifier: scale: %w", err)
	}

	idx := make([]int, len(yi))
	for i := range idx {
		idx[i] = i
	}
	k := e.folds(yi, codec.Len())

	names := make([]string, 0, len(e.learners))
	models := make([]Model, 0, len(e.learners))
	scores := make(map[string]CVScore, len(e.learners))
	for _, l := range e.learners {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := l.Name()
		log := e.log.With(zap.String("model", name))
		log.Info("training model", zap.Int("samples", len(yi)), zap.Int("classes", codec.Len()))

		var (
			m     Model
			score CVScore
		)
		if codec.Len() == 1 {
			m, score = constantModel{}, SentinelScore()
		} else {
			if k < 2 {
				score = SentinelScore()
			} else if score, err = CrossValidate(ctx, l, Xs, yi, codec.Len(), k, e.cfg.Seed, e.cfg.workers()); err != nil {
				return nil, fmt.Errorf("classifier: cross-validate %s: %w", name, err)
			}
			if m, err = l.Fit(ctx, Xs, yi, idx, codec.Len()); err != nil {
				return nil, fmt.Errorf("classifier: fit %s: %w", name, err)
			}
		}

		if score.Sentinel {
			log.Warn("too few samples for cross-validation; recorded placeholder score",
				zap.Float64("cv_f1", score.Mean))
		} else {
			log.Info("model trained", zap.Int("folds", len(score.Folds)),
				zap.Float64("cv_f1", score.Mean), zap.Float64("cv_f1_std", score.Std))
		}
		names = append(names, name)
		models = append(models, m)
		scores[name] = score
	}

	best := ""
	for _, n := range names {
		if best == "" || scores[n].Mean > scores[best].Mean {
			best = n
		}
	}
	e.log.Info("best model", zap.String("model", best), zap.Float64("cv_f1", scores[best].Mean))

	e.fitted = true
	e.schema = X.Schema()
	e.codec, e.scaler = codec, scaler
	e.names, e.models, e.scores, e.best = names, models, scores, best

	out := make(map[string]CVScore, len(scores))
	for n, s := range scores {
		out[n] = s
	}

	return out, nil
}

// checkLearners requires at least one learner and unique names, since
// scores and models are keyed by name.
func checkLearners(ls []Learner) error {
	if len(ls) == 0 {
		return fmt.Errorf("%w: no learners", ErrBadConfig)
	}
	seen := make(map[string]bool, len(ls))
	for _, l := range ls {
		if l == nil {
			return fmt.Errorf("%w: nil learner", ErrBadConfig)
		}
		if seen[l.Name()] {
			return fmt.Errorf("%w: duplicate learner %q", ErrBadConfig, l.Name())
		}
		seen[l.Name()] = true
	}

	return nil
}

// folds picks k = min(MaxFolds, samples), further capped by the largest
// class so that stratification is possible. A result below 2 means CV is
// skipped.
func (e *Ensemble) folds(y []int, classes int) int {
	k := min(e.cfg.MaxFolds, len(y))
	counts := make([]int, classes)
	for _, c := range y {
		counts[c]++
	}
	largest, smallest := 0, len(y)
	for _, c := range counts {
		largest = max(largest, c)
		smallest = min(smallest, c)
	}
	if largest < k {
		e.log.Warn("reducing folds to the largest class size", zap.Int("folds", k), zap.Int("largest_class", largest))
		k = largest
	}
	if k >= 2 && smallest < k {
		e.log.Warn("smallest class has fewer members than folds", zap.Int("folds", k), zap.Int("smallest_class", smallest))
	}

	return k
}

// Predict labels every row of X by averaging the models' class
// probabilities and taking the first maximum.
func (e *Ensemble) Predict(X *features.Matrix) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.fitted {
		return nil, ErrNotFitted
	}
	if X == nil || !e.schema.Equal(X.Schema()) {
		return nil, ErrSchemaMismatch
	}
	Xs, err := e.scaler.Transform(X.Dense())
	if err != nil {
		return nil, fmt.Errorf("classifier: scale: %w", err)
	}

	out := make([]string, Xs.Rows())
	for i := range out {
		p := e.proba(Xs.Row(i))
		if out[i], err = e.codec.Decode(argmax(p)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// PredictProba returns the averaged class probabilities per row, columns
// ordered like Classes.
func (e *Ensemble) PredictProba(X *features.Matrix) (*matrix.Dense, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.fitted {
		return nil, ErrNotFitted
	}
	if X == nil || !e.schema.Equal(X.Schema()) {
		return nil, ErrSchemaMismatch
	}
	Xs, err := e.scaler.Transform(X.Dense())
	if err != nil {
		return nil, fmt.Errorf("classifier: scale: %w", err)
	}
	rows := make([][]float64, Xs.Rows())
	for i := range rows {
		rows[i] = e.proba(Xs.Row(i))
	}

	return matrix.NewDenseFromRows(e.codec.Len(), rows)
}

func (e *Ensemble) proba(row []float64) []float64 {
	avg := make([]float64, e.codec.Len())
	for _, m := range e.models {
		for k, p := range m.PredictProba(row) {
			avg[k] += p
		}
	}
	inv := 1.0 / float64(len(e.models))
	for k := range avg {
		avg[k] *= inv
	}

	return avg
}

// Best returns the name and score of the highest-scoring model; the first
// trained wins ties. It is diagnostic only.
func (e *Ensemble) Best() (string, CVScore, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.fitted {
		return "", CVScore{}, ErrNotFitted
	}

	return e.best, e.scores[e.best], nil
}

// Classes returns the training labels in id order.
func (e *Ensemble) Classes() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.fitted {
		return nil, ErrNotFitted
	}

	return e.codec.Classes(), nil
}

// Models returns the fitted model names in training order.
func (e *Ensemble) Models() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]string(nil), e.names...)
}

// constantModel predicts the only class seen in training.
type constantModel struct{}

func (constantModel) PredictProba([]float64) []float64 { return []float64{1} }
