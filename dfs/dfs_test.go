package dfs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fcgraph/core"
	"github.com/katalvlaran/fcgraph/dfs"
)

func build(t *testing.T, pairs ...string) *core.Graph {
	t.Helper()
	g := core.NewCallGraph()
	for i := 0; i+1 < len(pairs); i += 2 {
		_, err := g.AddEdge(pairs[i], pairs[i+1])
		require.NoError(t, err)
	}

	return g
}

func TestDFS_Errors(t *testing.T) {
	_, err := dfs.DFS(nil, "A")
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	_, err = dfs.DFS(build(t, "A", "B"), "Z")
	assert.ErrorIs(t, err, dfs.ErrStartVertexNotFound)

	_, err = dfs.StronglyConnectedComponents(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
	_, err = dfs.WeaklyConnectedComponents(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestDFS_PostOrder(t *testing.T) {
	g := build(t, "A", "B", "B", "C", "A", "D")

	res, err := dfs.DFS(g, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "D", "A"}, res.Order)
	assert.Equal(t, "B", res.Parent["C"])
	assert.Equal(t, []string{"A"}, res.Roots)
	assert.True(t, res.Visited("D"))
}

func TestDFS_FullTraversalForest(t *testing.T) {
	g := build(t, "B", "A", "C", "D")

	res, err := dfs.DFS(g, "", dfs.WithFullTraversal())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Roots)
	assert.Len(t, res.Order, 4)
	assert.Equal(t, 2, res.Tree["D"])
}

func TestDFS_HooksAndCancel(t *testing.T) {
	g := build(t, "A", "B", "B", "C")

	var visits, exits []string
	_, err := dfs.DFS(g, "A",
		dfs.WithOnVisit(func(id string) error { visits = append(visits, id); return nil }),
		dfs.WithOnExit(func(id string) error { exits = append(exits, id); return nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, visits)
	assert.Equal(t, []string{"C", "B", "A"}, exits)

	boom := errors.New("boom")
	_, err = dfs.DFS(g, "A", dfs.WithOnExit(func(string) error { return boom }))
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dfs.DFS(g, "A", dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStronglyConnectedComponents(t *testing.T) {
	// {A,B,C} cycle, D->E one-way, F isolated, G self-loop
	g := build(t, "A", "B", "B", "C", "C", "A", "C", "D", "D", "E", "G", "G")
	require.NoError(t, g.AddVertex("F"))

	sccs, err := dfs.StronglyConnectedComponents(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"D"}, {"E"}, {"F"}, {"G"}}, sccs)
}

func TestWeaklyConnectedComponents(t *testing.T) {
	g := build(t, "A", "B", "C", "B", "X", "Y")
	require.NoError(t, g.AddVertex("Z"))

	wccs, err := dfs.WeaklyConnectedComponents(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"X", "Y"}, {"Z"}}, wccs)

	empty, err := dfs.WeaklyConnectedComponents(core.NewCallGraph())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStronglyConnected_LongChain(t *testing.T) {
	g := core.NewCallGraph()
	const n = 20000
	for i := 0; i < n; i++ {
		_, err := g.AddEdge(fmt.Sprintf("f%05d", i), fmt.Sprintf("f%05d", i+1))
		require.NoError(t, err)
	}
	_, err := g.AddEdge(fmt.Sprintf("f%05d", n), "f00000")
	require.NoError(t, err)

	sccs, err := dfs.StronglyConnectedComponents(g)
	require.NoError(t, err)
	require.Len(t, sccs, 1)
	assert.Len(t, sccs[0], n+1)
}
