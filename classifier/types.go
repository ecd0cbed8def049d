// Package classifier trains and applies the three-model tree ensemble that
// assigns a family label to a feature vector.
//
// An Ensemble owns its label codec, feature scaler and fitted models. It
// moves once from unfitted to fitted; Predict on an unfitted ensemble and a
// second Fit are errors. Prediction averages the class probabilities of a
// bagged forest, a gradient-boosted ensemble and a regularised
// (XGBoost-style) booster with equal weight. Cross-validated macro-F1 per
// model is reported for diagnostics only.
//
// Training may use several goroutines (trees of a forest, classes of a
// boosting round, CV folds); a fitted Ensemble is read-only and safe for
// concurrent Predict calls.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/fcgraph/matrix"
)

// Sentinel errors.
var (
	// ErrNotFitted is returned by Predict and Best before Fit succeeded.
	ErrNotFitted = errors.New("classifier: ensemble is not fitted")

	// ErrAlreadyFitted is returned by a second Fit call.
	ErrAlreadyFitted = errors.New("classifier: ensemble is already fitted")

	// ErrSchemaMismatch is returned when the prediction matrix uses another
	// feature schema than training.
	ErrSchemaMismatch = errors.New("classifier: feature schema differs from training")

	// ErrNoSamples is returned when there is nothing to train on.
	ErrNoSamples = errors.New("classifier: no training samples")

	// ErrLabelCount is returned when labels and matrix rows differ in number.
	ErrLabelCount = errors.New("classifier: label count does not match rows")

	// ErrUnknownLabel is returned when encoding a label the codec never saw.
	ErrUnknownLabel = errors.New("classifier: unknown label")

	// ErrBadConfig is returned for invalid hyper-parameters.
	ErrBadConfig = errors.New("classifier: invalid configuration")
)

// Model names, in training order.
const (
	RandomForestName     = "random_forest"
	GradientBoostingName = "gradient_boosting"
	XGBoostName          = "xgboost"
)

// Learner trains a Model on the rows idx of X with integer labels y in
// [0,classes).
type Learner interface {
	Name() string
	Fit(ctx context.Context, X *matrix.Dense, y []int, idx []int, classes int) (Model, error)
}

// Model is a fitted probabilistic classifier.
type Model interface {
	// PredictProba returns a fresh slice of class probabilities for row.
	PredictProba(row []float64) []float64
}

// Config holds ensemble hyper-parameters. The yaml and validate tags are
// consumed by package config.
type Config struct {
	// Estimators is the number of trees (forest) or boosting rounds.
	Estimators int   `yaml:"estimators" validate:"gte=1"`
	Seed       int64 `yaml:"seed"`
	// MaxFolds caps k in stratified k-fold cross-validation.
	MaxFolds int `yaml:"max_folds" validate:"gte=2"`
	// Workers bounds training goroutines; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" validate:"gte=0"`

	Forest ForestConfig `yaml:"forest"`
	GBM    GBMConfig    `yaml:"gbm"`
	XGB    XGBConfig    `yaml:"xgb"`
}

// ForestConfig tunes RandomForest trees.
type ForestConfig struct {
	MaxDepth        int    `yaml:"max_depth" validate:"gte=0"`
	MinSamplesSplit int    `yaml:"min_samples_split" validate:"gte=2"`
	MinSamplesLeaf  int    `yaml:"min_samples_leaf" validate:"gte=1"`
	MaxFeatures     string `yaml:"max_features" validate:"oneof=sqrt log2 all"`
}

// GBMConfig tunes GradientBoosting.
type GBMConfig struct {
	LearningRate float64 `yaml:"learning_rate" validate:"gt=0,lte=1"`
	MaxDepth     int     `yaml:"max_depth" validate:"gte=1"`
}

// XGBConfig tunes the regularised booster.
type XGBConfig struct {
	Eta            float64 `yaml:"eta" validate:"gt=0,lte=1"`
	MaxDepth       int     `yaml:"max_depth" validate:"gte=1"`
	Lambda         float64 `yaml:"lambda" validate:"gte=0"`
	Gamma          float64 `yaml:"gamma" validate:"gte=0"`
	MinChildWeight float64 `yaml:"min_child_weight" validate:"gte=0"`
	BaseScore      float64 `yaml:"base_score"`
}

// DefaultConfig mirrors the reference settings: 200 estimators, seed 42,
// up to 5 folds; forest with sqrt features; GBM lr 0.1 depth 3; booster
// eta 0.3 depth 6 lambda 1 min_child_weight 1 base score 0.5.
func DefaultConfig() Config {
	return Config{
		Estimators: 200,
		Seed:       42,
		MaxFolds:   5,
		Forest:     ForestConfig{MinSamplesSplit: 2, MinSamplesLeaf: 1, MaxFeatures: "sqrt"},
		GBM:        GBMConfig{LearningRate: 0.1, MaxDepth: 3},
		XGB:        XGBConfig{Eta: 0.3, MaxDepth: 6, Lambda: 1, MinChildWeight: 1, BaseScore: 0.5},
	}
}

// Validate checks the rules the learners rely on.
func (c Config) Validate() error {
	switch {
	case c.Estimators < 1:
		return fmt.Errorf("%w: estimators=%d", ErrBadConfig, c.Estimators)
	case c.MaxFolds < 2:
		return fmt.Errorf("%w: max_folds=%d", ErrBadConfig, c.MaxFolds)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers=%d", ErrBadConfig, c.Workers)
	case !(c.GBM.LearningRate > 0) || c.GBM.MaxDepth < 1:
		return fmt.Errorf("%w: gbm %+v", ErrBadConfig, c.GBM)
	case !(c.XGB.Eta > 0) || c.XGB.MaxDepth < 1 || c.XGB.Lambda < 0:
		return fmt.Errorf("%w: xgb %+v", ErrBadConfig, c.XGB)
	}
	if _, err := maxFeatures(c.Forest.MaxFeatures, 1); err != nil {
		return err
	}

	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// maxFeatures resolves a feature-sampling rule against p columns.
func maxFeatures(rule string, p int) (int, error) {
	switch rule {
	case "sqrt", "":
		return max(1, int(math.Sqrt(float64(p)))), nil
	case "log2":
		return max(1, int(math.Log2(float64(p)))), nil
	case "all":
		return p, nil
	}

	return 0, fmt.Errorf("%w: max_features %q", ErrBadConfig, rule)
}

// Option configures an Ensemble.
type Option func(*Ensemble)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Ensemble) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLearners replaces the three default learners.
func WithLearners(ls ...Learner) Option {
	return func(e *Ensemble) { e.learners = ls }
}
