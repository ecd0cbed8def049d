package pipeline

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/fcgraph/classifier"
	"github.com/katalvlaran/fcgraph/ingest"
)

// Mismatch describes a training corpus whose graph and label counts differ.
type Mismatch struct {
	Graphs int
	Labels int
	// Used is the number of aligned pairs trained on.
	Used int
}

// Report summarises a completed run.
type Report struct {
	RunID uuid.UUID

	TrainIngest *ingest.Report
	TestIngest  *ingest.Report
	Mismatch    *Mismatch

	TrainGraphs int
	TestGraphs  int
	Features    int
	Classes     []string
	Models      []string
	Scores      map[string]classifier.CVScore
	// Best is the model with the highest CV score. Diagnostic only:
	// predictions average every model.
	Best string

	Predictions int
	Output      string
	Duration    time.Duration
}

// MarshalLogObject lets a Report be logged with zap.Object.
func (r *Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("run_id", r.RunID.String())
	enc.AddInt("train_graphs", r.TrainGraphs)
	enc.AddInt("test_graphs", r.TestGraphs)
	enc.AddInt("features", r.Features)
	enc.AddInt("classes", len(r.Classes))
	enc.AddString("best", r.Best)
	enc.AddInt("predictions", r.Predictions)
	enc.AddString("output", r.Output)
	enc.AddDuration("duration", r.Duration)
	if r.Mismatch != nil {
		enc.AddInt("mismatch_graphs", r.Mismatch.Graphs)
		enc.AddInt("mismatch_labels", r.Mismatch.Labels)
	}
	names := make([]string, 0, len(r.Scores))
	for n := range r.Scores {
		names = append(names, n)
	}
	sort.Strings(names)

	return enc.AddObject("cv_f1", zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
		for _, n := range names {
			oe.AddFloat64(n, r.Scores[n].Mean)
		}
		return nil
	}))
}
