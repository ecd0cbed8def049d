// Package pipeline drives one classification run: parse and label the
// training corpus, extract features, fit the ensemble, then parse, extract
// and predict the test corpus and write one label per line.
//
// A run either writes a complete predictions file or leaves the output path
// untouched; the file is staged next to its destination and renamed into
// place.
package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/fcgraph/classifier"
	"github.com/katalvlaran/fcgraph/config"
	"github.com/katalvlaran/fcgraph/core"
	"github.com/katalvlaran/fcgraph/features"
	"github.com/katalvlaran/fcgraph/ingest"
	"github.com/katalvlaran/fcgraph/labels"
	"github.com/katalvlaran/fcgraph/metrics"
)

// Stage names used for timing metrics.
const (
	StageTrainIngest  = "train_ingest"
	StageLabels       = "labels"
	StageTrainExtract = "train_extract"
	StageFit          = "fit"
	StageTestIngest   = "test_ingest"
	StageTestExtract  = "test_extract"
	StagePredict      = "predict"
	StageWrite        = "write"
)

var (
	// ErrNoTrainingData is returned when no graph/label pair survives
	// alignment.
	ErrNoTrainingData = errors.New("pipeline: no training samples")

	// ErrMissingPath is returned when a required entry of Paths is empty.
	ErrMissingPath = errors.New("pipeline: missing path")
)

// Paths names the run's inputs and output.
type Paths struct {
	TrainData   string
	TrainLabels string
	TestData    string
	Output      string
}

func (p Paths) validate() error {
	for name, v := range map[string]string{
		"train data":   p.TrainData,
		"train labels": p.TrainLabels,
		"test data":    p.TestData,
		"output":       p.Output,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s", ErrMissingPath, name)
		}
	}

	return nil
}

// Pipeline runs classification jobs with a fixed configuration. It holds no
// per-run state, so Run may be called repeatedly.
type Pipeline struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *metrics.Collector
	newID   func() uuid.UUID
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the base logger; every run adds a run_id field to it.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records run metrics in c. Without it a fresh collector is
// created for each Run.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pipeline) { p.metrics = c }
}

// WithRunID replaces the run ID generator.
func WithRunID(fn func() uuid.UUID) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// New returns a Pipeline for cfg.
func New(cfg config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, log: zap.NewNop(), newID: uuid.New}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run executes one job. Count mismatches between training graphs and labels
// are reported in Report.Mismatch, never as an error.
func (p *Pipeline) Run(ctx context.Context, paths Paths) (*Report, error) {
	if err := paths.validate(); err != nil {
		return nil, err
	}
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	rep := &Report{RunID: p.newID(), Output: paths.Output}
	log := p.log.With(zap.String("run_id", rep.RunID.String()))
	col := p.metrics
	if col == nil {
		col = metrics.NewCollector()
	}
	r := &run{ctx: ctx, log: log, metrics: col}

	in := ingest.New(append(p.cfg.IngestOptions(), ingest.WithLogger(log))...)

	var (
		train []*core.Graph
		ys    []string
		err   error
	)
	if err = r.stage(StageTrainIngest, func() error {
		train, rep.TrainIngest, err = in.Parse(paths.TrainData)
		if err != nil {
			return fmt.Errorf("pipeline: parse training corpus: %w", err)
		}
		col.ObserveIngest("train", rep.TrainIngest)
		return nil
	}); err != nil {
		return nil, err
	}

	if err = r.stage(StageLabels, func() error {
		ys, err = labels.LoadAndLog(paths.TrainLabels, log)
		return err
	}); err != nil {
		return nil, err
	}

	train, ys, rep.Mismatch = align(train, ys)
	if rep.Mismatch != nil {
		log.Warn("graph and label counts differ; truncating to the shorter",
			zap.Int("graphs", rep.Mismatch.Graphs),
			zap.Int("labels", rep.Mismatch.Labels),
			zap.Int("used", rep.Mismatch.Used))
		col.LabelMismatch.Inc()
	}
	if len(train) == 0 {
		return nil, ErrNoTrainingData
	}
	rep.TrainGraphs = len(train)

	ex := features.NewExtractor(features.WithLogger(log))
	var X *features.Matrix
	if err = r.stage(StageTrainExtract, func() error {
		X, err = ex.ExtractAll(train)
		return err
	}); err != nil {
		return nil, err
	}
	rep.Features = X.Cols()
	col.ObserveDefaults(X.Defaults())

	ens := classifier.NewEnsemble(p.cfg.Classifier, classifier.WithLogger(log))
	if err = r.stage(StageFit, func() error {
		rep.Scores, err = ens.FitContext(ctx, X, ys)
		return err
	}); err != nil {
		return nil, err
	}
	col.ObserveCV(rep.Scores)
	rep.Models = ens.Models()
	rep.Classes, _ = ens.Classes()
	rep.Best, _, _ = ens.Best()

	var test []*core.Graph
	if err = r.stage(StageTestIngest, func() error {
		test, rep.TestIngest, err = in.Parse(paths.TestData)
		if err != nil {
			return fmt.Errorf("pipeline: parse test corpus: %w", err)
		}
		col.ObserveIngest("test", rep.TestIngest)
		return nil
	}); err != nil {
		return nil, err
	}
	rep.TestGraphs = len(test)

	var T *features.Matrix
	if err = r.stage(StageTestExtract, func() error {
		T, err = ex.ExtractAll(test)
		return err
	}); err != nil {
		return nil, err
	}
	col.ObserveDefaults(T.Defaults())

	var preds []string
	if err = r.stage(StagePredict, func() error {
		preds, err = ens.Predict(T)
		return err
	}); err != nil {
		return nil, err
	}

	if err = r.stage(StageWrite, func() error {
		return WritePredictions(paths.Output, preds)
	}); err != nil {
		return nil, err
	}
	rep.Predictions = len(preds)
	col.Predictions.Add(float64(len(preds)))
	log.Info("predictions written", zap.String("path", paths.Output), zap.Int("predictions", len(preds)))

	if p.cfg.Metrics.Textfile != "" {
		if err := col.WriteTextfile(p.cfg.Metrics.Textfile); err != nil {
			log.Warn("could not write metrics textfile",
				zap.String("path", p.cfg.Metrics.Textfile), zap.Error(err))
		}
	}

	rep.Duration = time.Since(start)
	log.Info("run finished", zap.Object("report", rep))

	return rep, nil
}

// run carries one Run's context, logger and collector through its stages.
type run struct {
	ctx     context.Context
	log     *zap.Logger
	metrics *metrics.Collector
}

// stage runs fn unless ctx is done and records its duration.
func (r *run) stage(name string, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("pipeline: %s: %w", name, err)
	}
	t := time.Now()
	err := fn()
	d := time.Since(t)
	r.metrics.ObserveStage(name, d)
	r.log.Debug("stage done", zap.String("stage", name), zap.Duration("took", d), zap.Bool("ok", err == nil))

	return err
}

// align truncates graphs and labels to the shorter of the two.
func align(graphs []*core.Graph, ys []string) ([]*core.Graph, []string, *Mismatch) {
	if len(graphs) == len(ys) {
		return graphs, ys, nil
	}
	n := min(len(graphs), len(ys))

	return graphs[:n], ys[:n], &Mismatch{Graphs: len(graphs), Labels: len(ys), Used: n}
}

// WritePredictions writes one label per line to path. The file is written
// to a temporary sibling first and renamed, so path never holds a partial
// result.
func WritePredictions(path string, preds []string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("pipeline: stage predictions: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, p := range preds {
		if _, err = w.WriteString(p); err != nil {
			return fmt.Errorf("pipeline: write predictions: %w", err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("pipeline: write predictions: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("pipeline: write predictions: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("pipeline: chmod predictions: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("pipeline: sync predictions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("pipeline: close predictions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("pipeline: publish predictions: %w", err)
	}

	return nil
}
