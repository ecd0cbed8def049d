package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fcgraph/bfs"
	"github.com/katalvlaran/fcgraph/core"
)

func chain(t *testing.T, pairs ...[2]string) *core.Graph {
	t.Helper()
	g := core.NewCallGraph()
	for _, p := range pairs {
		_, err := g.AddEdge(p[0], p[1])
		require.NoError(t, err)
	}

	return g
}

func TestBFS_InvalidInput(t *testing.T) {
	_, err := bfs.BFS(nil, "A")
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	g := chain(t, [2]string{"A", "B"})
	_, err = bfs.BFS(g, "Z")
	assert.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	_, err = bfs.BFS(g, "A", bfs.WithMaxDepth(-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_OrderAndDepth(t *testing.T) {
	g := chain(t,
		[2]string{"main", "b"}, [2]string{"main", "a"},
		[2]string{"a", "c"}, [2]string{"b", "c"}, [2]string{"c", "c"},
	)

	res, err := bfs.BFS(g, "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "a", "b", "c"}, res.Order)
	assert.Equal(t, 2, res.Depth["c"])
	assert.Equal(t, "a", res.Parent["c"], "first discovered parent wins")
	assert.Equal(t, 2, res.MaxDepth())

	path, err := res.PathTo("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "a", "c"}, path)
	_, err = res.PathTo("nowhere")
	assert.Error(t, err)
}

func TestBFS_ReverseFollowsCallers(t *testing.T) {
	g := chain(t, [2]string{"A", "B"}, [2]string{"B", "C"})

	fwd, err := bfs.BFS(g, "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, fwd.Order)

	rev, err := bfs.BFS(g, "C", bfs.WithReverse())
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, rev.Order)
	assert.Equal(t, 2, rev.Depth["A"])
}

func TestBFS_MaxDepthAndFilter(t *testing.T) {
	g := chain(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"A", "D"})

	res, err := bfs.BFS(g, "A", bfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B", "D"}, res.Order)

	res, err = bfs.BFS(g, "A", bfs.WithFilterNeighbor(func(_, nb string) bool { return nb != "B" }))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D"}, res.Order)
}

func TestBFS_HooksAndCancel(t *testing.T) {
	g := chain(t, [2]string{"A", "B"}, [2]string{"B", "C"})

	stop := errors.New("stop")
	_, err := bfs.BFS(g, "A", bfs.WithOnVisit(func(id string, _ int) error {
		if id == "B" {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(g, "A", bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConnected(t *testing.T) {
	g := chain(t, [2]string{"A", "B"}, [2]string{"C", "B"})

	ok, err := bfs.Connected(g)
	require.NoError(t, err)
	assert.False(t, ok, "C is not reachable from A along call direction")

	ok, err = bfs.Connected(g.Undirected())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = bfs.Connected(core.NewCallGraph())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiameterRadius(t *testing.T) {
	// path A-B-C-D: diameter 3, radius 2
	g := chain(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"})

	d, r, err := bfs.DiameterRadius(g.Undirected())
	require.NoError(t, err)
	assert.Equal(t, 3, d)
	assert.Equal(t, 2, r)

	_, _, err = bfs.DiameterRadius(g)
	assert.ErrorIs(t, err, bfs.ErrDisconnected)

	_, _, err = bfs.DiameterRadius(core.NewCallGraph())
	assert.ErrorIs(t, err, bfs.ErrEmptyGraph)

	single := core.NewCallGraph()
	require.NoError(t, single.AddVertex("solo"))
	d, r, err = bfs.DiameterRadius(single)
	require.NoError(t, err)
	assert.Zero(t, d)
	assert.Zero(t, r)
}
