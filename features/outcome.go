// File: outcome.go
// Role: per-metric result type and aggregated default accounting.
// Concurrency:
//   - DefaultStats is a value; Extractor guards its running copy with a mutex.

package features

import (
	"fmt"
	"sort"

	"go.uber.org/zap/zapcore"
)

// Reason explains why a metric holds its default value.
type Reason int

const (
	DefaultNone          Reason = iota // computed normally
	DefaultEmpty                       // too few vertices for the metric to be defined
	DefaultDisconnected                // undirected projection is not connected
	DefaultNonConvergent               // power iteration exhausted its budget
	DefaultFailed                      // unexpected internal error
)

var reasonNames = [...]string{"none", "empty", "disconnected", "non_convergent", "failed"}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("Reason(%d)", int(r))
	}

	return reasonNames[r]
}

// Outcome is a metric value together with how it was obtained.
type Outcome struct {
	Value  float64
	Reason Reason
}

// OK wraps a computed value.
func OK(v float64) Outcome { return Outcome{Value: v} }

// Defaulted returns the zero default with reason r.
func Defaulted(r Reason) Outcome { return Outcome{Reason: r} }

// Defaulted reports whether the value is a substituted default.
func (o Outcome) Defaulted() bool { return o.Reason != DefaultNone }

// DefaultStats counts defaulted metrics over a batch of graphs.
type DefaultStats struct {
	// Graphs is the number of graphs observed.
	Graphs int
	// Counts maps metric key → reason → number of graphs.
	Counts map[string]map[Reason]int
}

func (s *DefaultStats) record(metric string, r Reason) {
	if r == DefaultNone {
		return
	}
	if s.Counts == nil {
		s.Counts = make(map[string]map[Reason]int)
	}
	m := s.Counts[metric]
	if m == nil {
		m = make(map[Reason]int)
		s.Counts[metric] = m
	}
	m[r]++
}

// Defaulted returns how many graphs had metric defaulted for any reason.
func (s DefaultStats) Defaulted(metric string) int {
	n := 0
	for _, c := range s.Counts[metric] {
		n += c
	}

	return n
}

// Total returns the number of defaulted (graph, metric) pairs.
func (s DefaultStats) Total() int {
	n := 0
	for m := range s.Counts {
		n += s.Defaulted(m)
	}

	return n
}

// Saturated returns the metrics, sorted, that defaulted for every graph.
func (s DefaultStats) Saturated() []string {
	if s.Graphs == 0 {
		return nil
	}
	var out []string
	for m := range s.Counts {
		if s.Defaulted(m) == s.Graphs {
			out = append(out, m)
		}
	}
	sort.Strings(out)

	return out
}

// Merge adds o into a copy of s.
func (s DefaultStats) Merge(o DefaultStats) DefaultStats {
	out := s.clone()
	out.Graphs += o.Graphs
	for m, byReason := range o.Counts {
		for r, c := range byReason {
			for i := 0; i < c; i++ {
				out.record(m, r)
			}
		}
	}

	return out
}

func (s DefaultStats) clone() DefaultStats {
	out := DefaultStats{Graphs: s.Graphs}
	for m, byReason := range s.Counts {
		for r, c := range byReason {
			if out.Counts == nil {
				out.Counts = make(map[string]map[Reason]int)
			}
			if out.Counts[m] == nil {
				out.Counts[m] = make(map[Reason]int)
			}
			out.Counts[m][r] = c
		}
	}

	return out
}

// MarshalLogObject logs the graph count and, per metric, the number of
// defaulted graphs.
func (s DefaultStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("graphs", s.Graphs)
	keys := make([]string, 0, len(s.Counts))
	for m := range s.Counts {
		keys = append(keys, m)
	}
	sort.Strings(keys)
	for _, m := range keys {
		enc.AddInt(m, s.Defaulted(m))
	}

	return nil
}
