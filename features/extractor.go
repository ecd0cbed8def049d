// File: extractor.go
// Role: Extractor computes the 21 graph metrics and aggregates default outcomes.
// Concurrency:
//   - Extract may be called from several goroutines; the running
//     DefaultStats is guarded by a mutex.

package features

import (
	"errors"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/fcgraph/bfs"
	"github.com/katalvlaran/fcgraph/centrality"
	"github.com/katalvlaran/fcgraph/core"
	"github.com/katalvlaran/fcgraph/dfs"
)

const progressEvery = 100

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithEigenvectorOptions passes iteration options to the eigenvector solver.
func WithEigenvectorOptions(opts ...centrality.Option) Option {
	return func(e *Extractor) { e.eigOpts = append(e.eigOpts, opts...) }
}

// WithPageRankOptions passes iteration options to the PageRank solver.
func WithPageRankOptions(opts ...centrality.Option) Option {
	return func(e *Extractor) { e.prOpts = append(e.prOpts, opts...) }
}

// Extractor maps call graphs onto DefaultSchema vectors.
type Extractor struct {
	schema  *Schema
	log     *zap.Logger
	eigOpts []centrality.Option
	prOpts  []centrality.Option

	mu    sync.Mutex
	stats DefaultStats
}

// NewExtractor returns an Extractor with a no-op logger and default solver
// budgets (1000 eigenvector steps, 100 PageRank steps).
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{schema: DefaultSchema(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Schema returns the schema of every produced vector.
func (e *Extractor) Schema() *Schema { return e.schema }

// Stats returns the default accounting accumulated since construction.
func (e *Extractor) Stats() DefaultStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stats.clone()
}

// Extract computes all features of g. It never fails: metrics that cannot
// be computed hold 0 and carry their Reason in the vector's outcomes. A nil
// graph is treated as empty.
func (e *Extractor) Extract(g *core.Graph) Vector {
	if g == nil {
		g = core.NewCallGraph()
	}
	out := make([]Outcome, e.schema.Len())
	set := func(key string, o Outcome) {
		i, _ := e.schema.Index(key)
		out[i] = o
	}

	n := g.VertexCount()
	e.topology(g, set)
	var s *centrality.Snapshot
	var snapErr error
	if n > 0 {
		s, snapErr = centrality.FromGraph(g)
	}
	e.centralities(g, s, snapErr, set)
	e.structure(g, s, snapErr, set)

	v := Vector{schema: e.schema, values: make([]float64, len(out)), outcomes: out}
	batch := DefaultStats{Graphs: 1}
	for i, o := range out {
		v.values[i] = o.Value
		batch.record(e.schema.keys[i], o.Reason)
	}

	e.mu.Lock()
	e.stats = e.stats.Merge(batch)
	e.mu.Unlock()

	return v
}

// ExtractAll extracts every graph in order and stacks the vectors into a
// matrix whose Defaults cover exactly this batch.
func (e *Extractor) ExtractAll(graphs []*core.Graph) (*Matrix, error) {
	vectors := make([]Vector, len(graphs))
	batch := DefaultStats{Graphs: len(graphs)}
	for i, g := range graphs {
		vectors[i] = e.Extract(g)
		for j, o := range vectors[i].outcomes {
			batch.record(e.schema.keys[j], o.Reason)
		}
		if (i+1)%progressEvery == 0 {
			e.log.Debug("extracted features", zap.Int("done", i+1), zap.Int("total", len(graphs)))
		}
	}

	m, err := NewMatrix(e.schema, vectors)
	if err != nil {
		return nil, err
	}
	m.defaults = batch

	e.log.Info("feature extraction finished",
		zap.Int("graphs", len(graphs)),
		zap.Object("defaults", batch))
	if sat := batch.Saturated(); len(sat) > 0 {
		e.log.Warn("metrics defaulted for every graph", zap.Strings("metrics", sat))
	}

	return m, nil
}

// topology fills counts, density and the degree summaries. Degree counts a
// self-loop once on each side.
func (e *Extractor) topology(g *core.Graph, set func(string, Outcome)) {
	ids := g.Vertices()
	n, m := len(ids), g.EdgeCount()
	set(NumNodes, OK(float64(n)))
	set(NumEdges, OK(float64(m)))

	if n > 1 {
		set(Density, OK(float64(m)/float64(n*(n-1))))
	} else {
		set(Density, Defaulted(DefaultEmpty))
	}
	if n == 0 {
		return
	}

	total := make([]float64, n)
	var sumIn, sumOut float64
	maxIn, maxOut := 0, 0
	for i, id := range ids {
		in, out, err := g.Degree(id)
		if err != nil {
			e.log.Debug("degree lookup failed", zap.String("vertex", id), zap.Error(err))
			continue
		}
		total[i] = float64(in + out)
		sumIn += float64(in)
		sumOut += float64(out)
		maxIn = max(maxIn, in)
		maxOut = max(maxOut, out)
	}

	mean, std := 0.0, 0.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range total {
		mean += d
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	mean /= float64(n)
	for _, d := range total {
		std += (d - mean) * (d - mean)
	}
	std = math.Sqrt(std / float64(n))

	set(AvgDegree, OK(mean))
	set(MaxDegree, OK(hi))
	set(MinDegree, OK(lo))
	set(DegreeStd, OK(std))
	set(AvgInDegree, OK(sumIn/float64(n)))
	set(AvgOutDegree, OK(sumOut/float64(n)))
	set(MaxInDegree, OK(float64(maxIn)))
	set(MaxOutDegree, OK(float64(maxOut)))
}

// centralities fills the four centrality means. Graphs with fewer than two
// vertices default every one of them.
func (e *Extractor) centralities(g *core.Graph, s *centrality.Snapshot, snapErr error, set func(string, Outcome)) {
	keys := []string{CentralityBetweenness, CentralityCloseness, CentralityEigenvector, CentralityPageRank}
	if snapErr != nil {
		for _, k := range keys {
			set(k, e.fail(k, snapErr))
		}
		return
	}
	if s == nil || s.N() < 2 {
		for _, k := range keys {
			set(k, Defaulted(DefaultEmpty))
		}
		return
	}

	set(CentralityBetweenness, e.mean(CentralityBetweenness, func() ([]float64, error) {
		return centrality.Betweenness(s)
	}))

	if ok, cerr := bfs.Connected(g.Undirected()); cerr != nil {
		set(CentralityCloseness, e.fail(CentralityCloseness, cerr))
	} else if !ok {
		set(CentralityCloseness, Defaulted(DefaultDisconnected))
	} else {
		set(CentralityCloseness, e.mean(CentralityCloseness, func() ([]float64, error) {
			return centrality.Closeness(s)
		}))
	}

	set(CentralityEigenvector, e.mean(CentralityEigenvector, func() ([]float64, error) {
		return centrality.Eigenvector(s, e.eigOpts...)
	}))
	set(CentralityPageRank, e.mean(CentralityPageRank, func() ([]float64, error) {
		return centrality.PageRank(s, e.prOpts...)
	}))
}

// structure fills clustering, component counts, diameter/radius and the
// triadic transitivity count.
func (e *Extractor) structure(g *core.Graph, s *centrality.Snapshot, snapErr error, set func(string, Outcome)) {
	if s == nil && snapErr == nil {
		for _, k := range []string{ClusteringCoefficient, Diameter, Radius, TriadicTransitivity} {
			set(k, Defaulted(DefaultEmpty))
		}
		return
	}

	if snapErr != nil {
		set(ClusteringCoefficient, e.fail(ClusteringCoefficient, snapErr))
	} else {
		set(ClusteringCoefficient, e.mean(ClusteringCoefficient, func() ([]float64, error) {
			return centrality.Clustering(s)
		}))
	}

	if wcc, werr := dfs.WeaklyConnectedComponents(g); werr == nil {
		set(NumWeaklyConnected, OK(float64(len(wcc))))
	} else {
		set(NumWeaklyConnected, e.fail(NumWeaklyConnected, werr))
	}
	if scc, serr := dfs.StronglyConnectedComponents(g); serr == nil {
		set(NumStronglyConnected, OK(float64(len(scc))))
	} else {
		set(NumStronglyConnected, e.fail(NumStronglyConnected, serr))
	}

	diam, rad, err := bfs.DiameterRadius(g.Undirected())
	switch {
	case err == nil:
		set(Diameter, OK(float64(diam)))
		set(Radius, OK(float64(rad)))
	case errors.Is(err, bfs.ErrDisconnected):
		set(Diameter, Defaulted(DefaultDisconnected))
		set(Radius, Defaulted(DefaultDisconnected))
	default:
		set(Diameter, e.fail(Diameter, err))
		set(Radius, e.fail(Radius, err))
	}

	if snapErr != nil {
		set(TriadicTransitivity, e.fail(TriadicTransitivity, snapErr))
		return
	}
	if s.N() <= 2 {
		set(TriadicTransitivity, Defaulted(DefaultEmpty))
		return
	}
	census, err := centrality.TriadCensus(s)
	if err != nil {
		set(TriadicTransitivity, e.fail(TriadicTransitivity, err))
		return
	}
	set(TriadicTransitivity, OK(float64(census.SumContaining("3"))))
}

// mean runs a per-vertex measure and averages it, translating solver errors
// into default reasons.
func (e *Extractor) mean(key string, measure func() ([]float64, error)) Outcome {
	xs, err := measure()
	switch {
	case err == nil:
		return OK(centrality.Mean(xs))
	case errors.Is(err, centrality.ErrNoConvergence):
		e.log.Debug("metric did not converge", zap.String("metric", key))
		return Defaulted(DefaultNonConvergent)
	case errors.Is(err, centrality.ErrEmptyGraph):
		return Defaulted(DefaultEmpty)
	default:
		return e.fail(key, err)
	}
}

func (e *Extractor) fail(key string, err error) Outcome {
	e.log.Debug("metric failed", zap.String("metric", key), zap.Error(err))

	return Defaulted(DefaultFailed)
}
