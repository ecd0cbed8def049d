// Package metrics records per-run pipeline counters in a private Prometheus
// registry and can export them in the text exposition format (for the node
// exporter textfile collector).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/fcgraph/classifier"
	"github.com/katalvlaran/fcgraph/features"
	"github.com/katalvlaran/fcgraph/ingest"
)

// Namespace prefixes every metric name.
const Namespace = "fcg"

// Collector holds the pipeline metrics.
type Collector struct {
	registry *prometheus.Registry

	GraphsParsed   *prometheus.CounterVec
	LinesSkipped   *prometheus.CounterVec
	Fallbacks      *prometheus.CounterVec
	FeatureDefault *prometheus.CounterVec
	CVScore        *prometheus.GaugeVec
	CVScoreStd     *prometheus.GaugeVec
	LabelMismatch  prometheus.Counter
	Predictions    prometheus.Counter
	StageDuration  *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry, so several runs
// (or tests) never collide on registration.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		GraphsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "graphs_parsed_total",
			Help:      "Graphs recovered from a corpus file.",
		}, []string{"corpus"}),
		LinesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "lines_skipped_total",
			Help:      "Non-empty lines that did not parse as an edge.",
		}, []string{"corpus"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "segmentation_fallbacks_total",
			Help:      "Corpus files re-segmented after the boundary parse collapsed.",
		}, []string{"corpus", "strategy"}),
		FeatureDefault: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "feature_defaults_total",
			Help:      "Graph metrics replaced by their default value.",
		}, []string{"metric", "reason"}),
		CVScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "cv_f1_macro",
			Help:      "Mean cross-validated macro-F1 per model.",
		}, []string{"model", "sentinel"}),
		CVScoreStd: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "cv_f1_macro_std",
			Help:      "Standard deviation of fold macro-F1 per model.",
		}, []string{"model"}),
		LabelMismatch: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "label_mismatch_total",
			Help:      "Training runs whose graph and label counts differed.",
		}),
		Predictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "predictions_total",
			Help:      "Labels written to the predictions file.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time per pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"stage"}),
	}
	c.registry.MustRegister(
		c.GraphsParsed, c.LinesSkipped, c.Fallbacks, c.FeatureDefault,
		c.CVScore, c.CVScoreStd, c.LabelMismatch, c.Predictions, c.StageDuration,
	)

	return c
}

// Registry exposes the private registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveIngest records one parsed corpus.
func (c *Collector) ObserveIngest(corpus string, rep *ingest.Report) {
	if rep == nil {
		return
	}
	c.GraphsParsed.WithLabelValues(corpus).Add(float64(rep.Graphs))
	c.LinesSkipped.WithLabelValues(corpus).Add(float64(rep.SkippedLines))
	if rep.Fallback {
		c.Fallbacks.WithLabelValues(corpus, string(rep.Strategy)).Inc()
	}
}

// ObserveDefaults adds a batch's defaulted metrics.
func (c *Collector) ObserveDefaults(stats features.DefaultStats) {
	for metric, byReason := range stats.Counts {
		for reason, n := range byReason {
			c.FeatureDefault.WithLabelValues(metric, reason.String()).Add(float64(n))
		}
	}
}

// ObserveCV sets the CV gauges.
func (c *Collector) ObserveCV(scores map[string]classifier.CVScore) {
	for model, s := range scores {
		sentinel := "false"
		if s.Sentinel {
			sentinel = "true"
		}
		c.CVScore.WithLabelValues(model, sentinel).Set(s.Mean)
		c.CVScoreStd.WithLabelValues(model).Set(s.Std)
	}
}

// ObserveStage records how long a stage took.
func (c *Collector) ObserveStage(stage string, d time.Duration) {
	c.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteTextfile atomically writes every metric to path.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
