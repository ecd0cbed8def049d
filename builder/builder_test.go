// SPDX-License-Identifier: MIT
package builder_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fcgraph/builder"
	"github.com/katalvlaran/fcgraph/core"
)

func TestBuildGraph_Topologies(t *testing.T) {
	tests := []struct {
		name         string
		con          builder.Constructor
		wantV, wantE int
	}{
		{"cycle", builder.Cycle(5), 5, 5},
		{"path", builder.Path(4), 4, 3},
		{"single", builder.Path(1), 1, 0},
		{"star", builder.Star(6), 6, 5},
		{"complete directed", builder.Complete(4), 4, 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.BuildGraph(nil, nil, tc.con)
			require.NoError(t, err)
			assert.True(t, g.Directed())
			assert.Equal(t, tc.wantV, g.VertexCount())
			assert.Equal(t, tc.wantE, g.EdgeCount())
		})
	}

	u, err := builder.BuildGraph([]core.GraphOption{core.WithDirected(false)}, nil, builder.Complete(4))
	require.NoError(t, err)
	assert.Equal(t, 6, u.EdgeCount())
}

func TestBuildGraph_Errors(t *testing.T) {
	_, err := builder.BuildGraph(nil, nil, builder.Cycle(2))
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)

	_, err = builder.BuildGraph(nil, nil, builder.RandomSparse(5, 1.5))
	assert.ErrorIs(t, err, builder.ErrInvalidProbability)

	_, err = builder.BuildGraph(nil, nil, builder.RandomSparse(5, 0.5))
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)

	_, err = builder.BuildGraph(nil, nil, nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)

	assert.Panics(t, func() { builder.WithIDScheme(nil) })
}

func TestRandomSparse_Deterministic(t *testing.T) {
	opts := []builder.BuilderOption{builder.WithSeed(7)}
	a, err := builder.BuildGraph(nil, opts, builder.RandomSparse(30, 0.1))
	require.NoError(t, err)
	b, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(7)}, builder.RandomSparse(30, 0.1))
	require.NoError(t, err)

	assert.Equal(t, a.AdjacencyList(), b.AdjacencyList())

	full, err := builder.BuildGraph(nil, nil, builder.RandomSparse(3, 1))
	require.NoError(t, err)
	assert.Equal(t, 9, full.EdgeCount(), "call graphs allow self-loops")
}

func TestCallTree(t *testing.T) {
	g := builder.MustCallGraph([]builder.BuilderOption{builder.WithSeed(1), builder.WithPrefix("sub_")},
		builder.CallTree(50, 0))
	assert.Equal(t, 50, g.VertexCount())
	assert.Equal(t, 49, g.EdgeCount())

	in, _, err := g.Degree("sub_0")
	require.NoError(t, err)
	assert.Zero(t, in, "entry point has no callers")

	withBack := builder.MustCallGraph([]builder.BuilderOption{builder.WithSeed(1)}, builder.CallTree(50, 1))
	assert.Greater(t, withBack.EdgeCount(), 49)
}

func TestWriteEdgeList(t *testing.T) {
	g1 := builder.MustCallGraph(nil, builder.Cycle(3))
	g2 := builder.MustCallGraph([]builder.BuilderOption{builder.WithPrefix("f")}, builder.Path(2))

	var buf bytes.Buffer
	require.NoError(t, builder.WriteEdgeList(&buf, g1, g2))
	assert.Equal(t, "# graph 0\n0 1\n1 2\n2 0\n# graph 1\nf0 f1\n", buf.String())
}
