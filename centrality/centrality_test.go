package centrality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fcgraph/builder"
	"github.com/katalvlaran/fcgraph/centrality"
	"github.com/katalvlaran/fcgraph/core"
)

const eps = 1e-9

func snap(t *testing.T, g *core.Graph) *centrality.Snapshot {
	t.Helper()
	s, err := centrality.FromGraph(g)
	require.NoError(t, err)

	return s
}

func threeCycle(t *testing.T) *centrality.Snapshot {
	return snap(t, builder.MustCallGraph(nil, builder.Cycle(3)))
}

func TestFromGraph(t *testing.T) {
	_, err := centrality.FromGraph(nil)
	assert.ErrorIs(t, err, centrality.ErrGraphNil)

	g := core.NewCallGraph()
	_, _ = g.AddEdge("b", "a")
	_, _ = g.AddEdge("a", "a")
	s := snap(t, g)
	assert.Equal(t, []string{"a", "b"}, s.IDs)
	assert.Equal(t, []int{0}, s.Out[0])
	assert.Equal(t, []int{0, 1}, s.In[0])
}

func TestBetweenness(t *testing.T) {
	s := snap(t, builder.MustCallGraph(nil, builder.Path(3)))
	bc, err := centrality.Betweenness(s)
	require.NoError(t, err)
	// only "1" sits on the 0→2 path; scale 1/((3-1)(3-2))
	assert.InDeltaSlice(t, []float64{0, 0.5, 0}, bc, eps)

	star := snap(t, builder.MustCallGraph(nil, builder.Star(5)))
	bc, err = centrality.Betweenness(star)
	require.NoError(t, err)
	assert.InDelta(t, 0, centrality.Mean(bc), eps, "a hub with outgoing calls only lies on no path")

	_, err = centrality.Betweenness(snap(t, core.NewCallGraph()))
	assert.ErrorIs(t, err, centrality.ErrEmptyGraph)
}

func TestCloseness(t *testing.T) {
	cc, err := centrality.Closeness(threeCycle(t))
	require.NoError(t, err)
	for _, c := range cc {
		assert.InDelta(t, 2.0/3.0, c, eps)
	}

	// 0→1→2: vertex 2 is reached by both (distances 1,2), vertex 0 by none
	cc, err = centrality.Closeness(snap(t, builder.MustCallGraph(nil, builder.Path(3))))
	require.NoError(t, err)
	assert.InDelta(t, 0, cc[0], eps)
	assert.InDelta(t, 0.5, cc[1], eps)
	assert.InDelta(t, 2.0/3.0, cc[2], eps)
}

func TestEigenvector(t *testing.T) {
	ev, err := centrality.Eigenvector(threeCycle(t))
	require.NoError(t, err)
	for _, x := range ev {
		assert.InDelta(t, 0.5773502691896258, x, 1e-9)
	}

	// acyclic chains drift toward the sink and need hundreds of steps
	_, err = centrality.Eigenvector(snap(t, builder.MustCallGraph(nil, builder.Path(3))), centrality.WithMaxIter(10))
	assert.ErrorIs(t, err, centrality.ErrNoConvergence)

	_, err = centrality.Eigenvector(threeCycle(t), centrality.WithMaxIter(0))
	assert.ErrorIs(t, err, centrality.ErrOptionViolation)
}

func TestPageRank(t *testing.T) {
	pr, err := centrality.PageRank(threeCycle(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, pr, 1e-6)

	g := builder.MustCallGraph([]builder.BuilderOption{builder.WithSeed(3)}, builder.CallTree(40, 0.3))
	pr, err = centrality.PageRank(snap(t, g))
	require.NoError(t, err)
	sum := 0.0
	for _, p := range pr {
		sum += p
	}
	assert.InDelta(t, 1, sum, 1e-6)

	_, err = centrality.PageRank(threeCycle(t), centrality.WithAlpha(1))
	assert.ErrorIs(t, err, centrality.ErrOptionViolation)
	_, err = centrality.PageRank(snap(t, g), centrality.WithMaxIter(1))
	assert.ErrorIs(t, err, centrality.ErrNoConvergence)
}

func TestClustering(t *testing.T) {
	cl, err := centrality.Clustering(threeCycle(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, cl, eps)

	full, err := centrality.Clustering(snap(t, builder.MustCallGraph(nil, builder.Complete(4))))
	require.NoError(t, err)
	for _, c := range full {
		assert.InDelta(t, 1, c, eps)
	}

	path, err := centrality.Clustering(snap(t, builder.MustCallGraph(nil, builder.Path(4))))
	require.NoError(t, err)
	assert.InDelta(t, 0, centrality.Mean(path), eps)
}

func TestTriadCensus(t *testing.T) {
	c, err := centrality.TriadCensus(threeCycle(t))
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Get("030C"))
	assert.EqualValues(t, 1, c.SumContaining("3"))

	g := builder.MustCallGraph(nil, builder.Cycle(3))
	require.NoError(t, g.AddVertex("iso"))
	c, err = centrality.TriadCensus(snap(t, g))
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Get("030C"))
	assert.EqualValues(t, 3, c.Get("012"))
	assert.EqualValues(t, 0, c.Get("003"))

	k4, err := centrality.TriadCensus(snap(t, builder.MustCallGraph(nil, builder.Complete(4))))
	require.NoError(t, err)
	assert.EqualValues(t, 4, k4.Get("300"))

	empty := core.NewCallGraph()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, empty.AddVertex(id))
	}
	c, err = centrality.TriadCensus(snap(t, empty))
	require.NoError(t, err)
	assert.EqualValues(t, 10, c.Get("003"))
}

// TestTriadCensus_TotalsRandom checks that the census partitions all C(n,3)
// triples on a random graph with reciprocal edges and self-loops.
func TestTriadCensus_TotalsRandom(t *testing.T) {
	g := builder.MustCallGraph([]builder.BuilderOption{builder.WithSeed(11)}, builder.RandomSparse(25, 0.15))
	c, err := centrality.TriadCensus(snap(t, g))
	require.NoError(t, err)

	var total int64
	for _, k := range c {
		assert.GreaterOrEqual(t, k, int64(0))
		total += k
	}
	assert.EqualValues(t, 25*24*23/6, total)
}
