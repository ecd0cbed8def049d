package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/fcgraph/builder"
	"github.com/katalvlaran/fcgraph/centrality"
	"github.com/katalvlaran/fcgraph/core"
	"github.com/katalvlaran/fcgraph/features"
)

const eps = 1e-9

func TestDefaultSchema(t *testing.T) {
	s := features.DefaultSchema()
	require.Equal(t, 21, s.Len())
	keys := s.Keys()
	assert.Equal(t, features.NumNodes, keys[0])
	assert.Equal(t, features.MaxOutDegree, keys[10])
	assert.Equal(t, features.CentralityBetweenness, keys[11])
	assert.Equal(t, features.TriadicTransitivity, keys[20])
	assert.Same(t, s, features.DefaultSchema())

	keys[0] = "mutated"
	assert.Equal(t, features.NumNodes, s.Keys()[0], "Keys must return a copy")
}

func TestNewSchema_Rejects(t *testing.T) {
	_, err := features.NewSchema("a", "")
	assert.ErrorIs(t, err, features.ErrEmptyKey)
	_, err = features.NewSchema("a", "b", "a")
	assert.ErrorIs(t, err, features.ErrDuplicateKey)

	s, err := features.NewSchema("a", "b")
	require.NoError(t, err)
	assert.False(t, s.Equal(features.DefaultSchema()))
	other, _ := features.NewSchema("a", "b")
	assert.True(t, s.Equal(other))
}

func TestExtract_ThreeCycle(t *testing.T) {
	v := features.NewExtractor().Extract(builder.MustCallGraph(nil, builder.Cycle(3)))
	want := map[string]float64{
		features.NumNodes:              3,
		features.NumEdges:              3,
		features.Density:               0.5,
		features.AvgDegree:             2,
		features.MaxDegree:             2,
		features.MinDegree:             2,
		features.DegreeStd:             0,
		features.AvgInDegree:           1,
		features.AvgOutDegree:          1,
		features.MaxInDegree:           1,
		features.MaxOutDegree:          1,
		features.CentralityBetweenness: 0.5,
		features.CentralityCloseness:   2.0 / 3.0,
		features.CentralityEigenvector: 0.5773502691896258,
		features.CentralityPageRank:    1.0 / 3.0,
		features.ClusteringCoefficient: 0.5,
		features.NumWeaklyConnected:    1,
		features.NumStronglyConnected:  1,
		features.Diameter:              1,
		features.Radius:                1,
		features.TriadicTransitivity:   1,
	}
	for k, w := range want {
		assert.InDelta(t, w, v.Get(k), 1e-6, k)
		assert.False(t, v.Outcome(k).Defaulted(), k)
	}
	assert.Len(t, v.Values(), 21)
}

func TestExtract_EmptyAndSingleVertex(t *testing.T) {
	ex := features.NewExtractor()

	empty := ex.Extract(core.NewCallGraph())
	for _, x := range empty.Values() {
		assert.Zero(t, x)
	}
	assert.Equal(t, features.DefaultEmpty, empty.Outcome(features.Density).Reason)
	assert.Equal(t, features.DefaultEmpty, empty.Outcome(features.CentralityPageRank).Reason)
	assert.Equal(t, features.DefaultEmpty, empty.Outcome(features.Diameter).Reason)

	nilGraph := ex.Extract(nil)
	assert.Equal(t, empty.Values(), nilGraph.Values())

	g := core.NewCallGraph()
	_, err := g.AddEdge("1", "1")
	require.NoError(t, err)
	one := ex.Extract(g)
	assert.InDelta(t, 1, one.Get(features.NumNodes), eps)
	assert.InDelta(t, 1, one.Get(features.NumEdges), eps)
	assert.InDelta(t, 2, one.Get(features.AvgDegree), eps, "a self-loop counts on both sides")
	for _, k := range []string{
		features.Density, features.Diameter, features.Radius,
		features.CentralityBetweenness, features.CentralityCloseness,
		features.CentralityEigenvector, features.CentralityPageRank,
	} {
		assert.Zero(t, one.Get(k), k)
	}
	assert.Equal(t, features.DefaultEmpty, one.Outcome(features.CentralityEigenvector).Reason)
	assert.InDelta(t, 1, one.Get(features.NumStronglyConnected), eps)
}

func TestExtract_Disconnected(t *testing.T) {
	g := core.NewCallGraph()
	_, _ = g.AddEdge("a", "b")
	_, _ = g.AddEdge("c", "d")

	v := features.NewExtractor().Extract(g)
	assert.Equal(t, features.DefaultDisconnected, v.Outcome(features.CentralityCloseness).Reason)
	assert.Equal(t, features.DefaultDisconnected, v.Outcome(features.Diameter).Reason)
	assert.Equal(t, features.DefaultDisconnected, v.Outcome(features.Radius).Reason)
	assert.InDelta(t, 2, v.Get(features.NumWeaklyConnected), eps)
	assert.InDelta(t, 4, v.Get(features.NumStronglyConnected), eps)
	assert.Zero(t, v.Get(features.TriadicTransitivity))
	assert.False(t, v.Outcome(features.TriadicTransitivity).Defaulted())
}

func TestExtract_NonConvergent(t *testing.T) {
	ex := features.NewExtractor(features.WithEigenvectorOptions(centrality.WithMaxIter(10)))
	v := ex.Extract(builder.MustCallGraph(nil, builder.Path(3)))
	assert.Equal(t, features.DefaultNonConvergent, v.Outcome(features.CentralityEigenvector).Reason)
	assert.Zero(t, v.Get(features.CentralityEigenvector))
	assert.False(t, v.Outcome(features.CentralityPageRank).Defaulted())

	st := ex.Stats()
	assert.Equal(t, 1, st.Graphs)
	assert.Equal(t, 1, st.Counts[features.CentralityEigenvector][features.DefaultNonConvergent])
}

func TestExtractAll_MatrixAndDefaults(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	ex := features.NewExtractor(features.WithLogger(zap.New(obs)))

	graphs := []*core.Graph{
		builder.MustCallGraph(nil, builder.Cycle(3)),
		builder.MustCallGraph(nil, builder.Complete(4)),
	}
	m, err := ex.ExtractAll(graphs)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 21, m.Cols())
	assert.True(t, m.Schema().Equal(features.DefaultSchema()))

	row := m.Dense().Row(1)
	assert.InDelta(t, 4, row[0], eps)
	assert.InDelta(t, 12, row[1], eps)

	d := m.Defaults()
	assert.Equal(t, 2, d.Graphs)
	assert.Zero(t, d.Total(), "both graphs are strongly connected with three or more vertices")
	assert.Equal(t, 1, logs.FilterMessage("feature extraction finished").Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestExtractAll_WarnsOnSaturatedMetric(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	ex := features.NewExtractor(features.WithLogger(zap.New(obs)))

	m, err := ex.ExtractAll([]*core.Graph{core.NewCallGraph(), core.NewCallGraph()})
	require.NoError(t, err)
	d := m.Defaults()
	assert.Equal(t, 2, d.Defaulted(features.Density))
	assert.Contains(t, d.Saturated(), features.Density)

	warns := logs.FilterMessage("metrics defaulted for every graph").All()
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].ContextMap()["metrics"], features.Density)
}

func TestExtractAll_Empty(t *testing.T) {
	m, err := features.NewExtractor().ExtractAll(nil)
	require.NoError(t, err)
	assert.Zero(t, m.Rows())
	assert.Equal(t, 21, m.Cols())
}

func TestMatrix_SchemaMismatchAndHead(t *testing.T) {
	other, err := features.NewSchema("x")
	require.NoError(t, err)
	vx, err := features.NewVector(other, []float64{1})
	require.NoError(t, err)
	_, err = features.NewMatrix(features.DefaultSchema(), []features.Vector{vx})
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)

	_, err = features.NewVector(other, []float64{1, 2})
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)

	ex := features.NewExtractor()
	m, err := ex.ExtractAll([]*core.Graph{
		builder.MustCallGraph(nil, builder.Path(2)),
		builder.MustCallGraph(nil, builder.Path(5)),
	})
	require.NoError(t, err)
	h, err := m.Head(1)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Rows())
	assert.InDelta(t, 2, h.Dense().Row(0)[0], eps)
	_, err = m.Head(3)
	assert.Error(t, err)
}

func TestDefaultStats_Merge(t *testing.T) {
	a := features.DefaultStats{Graphs: 1, Counts: map[string]map[features.Reason]int{
		features.Density: {features.DefaultEmpty: 1},
	}}
	b := features.DefaultStats{Graphs: 2, Counts: map[string]map[features.Reason]int{
		features.Density:  {features.DefaultEmpty: 1},
		features.Diameter: {features.DefaultDisconnected: 2},
	}}
	m := a.Merge(b)
	assert.Equal(t, 3, m.Graphs)
	assert.Equal(t, 2, m.Defaulted(features.Density))
	assert.Equal(t, 4, m.Total())
	assert.Equal(t, 1, a.Defaulted(features.Density), "Merge must not modify the receiver")
	assert.Equal(t, "non_convergent", features.DefaultNonConvergent.String())
}
