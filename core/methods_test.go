// SPDX-License-Identifier: MIT
// Package core_test verifies core.Graph method-level contracts.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fcgraph/core"
)

func TestGraph_AddVertex(t *testing.T) {
	g := core.NewGraph()

	assert.ErrorIs(t, g.AddVertex(""), core.ErrEmptyVertexID)
	require.NoError(t, g.AddVertex("B"))
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("B")) // idempotent

	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, []string{"A", "B"}, g.Vertices())
	assert.True(t, g.HasVertex("A"))
	assert.False(t, g.HasVertex(""))

	v, err := g.Vertex("B")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index, "insertion index survives sorting")

	_, err = g.Vertex("missing")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestGraph_AddEdge_Constraints(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))

	_, err := g.AddEdge("", "B")
	assert.ErrorIs(t, err, core.ErrEmptyVertexID)

	_, err = g.AddEdge("A", "A")
	assert.ErrorIs(t, err, core.ErrLoopNotAllowed)

	_, err = g.AddEdge("A", "B")
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B")
	assert.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)

	// opposite direction is a distinct directed pair
	_, err = g.AddEdge("B", "A")
	require.NoError(t, err)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestGraph_MultiEdgesAndLoops(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops())
	for i := 0; i < 3; i++ {
		_, err := g.AddEdge("X", "X")
		require.NoError(t, err)
	}
	_, err := g.AddEdge("X", "Y")
	require.NoError(t, err)

	in, out, err := g.Degree("X")
	require.NoError(t, err)
	assert.Equal(t, 3, in)
	assert.Equal(t, 4, out)
	assert.Equal(t, 3, g.Stats().LoopCount)
}

func TestGraph_EdgesInsertionOrder(t *testing.T) {
	g := core.NewCallGraph()
	// more than nine edges so lexicographic ID order ("e10" < "e2") would differ
	pairs := [][2]string{
		{"1", "2"}, {"2", "3"}, {"3", "4"}, {"4", "5"}, {"5", "6"},
		{"6", "7"}, {"7", "8"}, {"8", "9"}, {"9", "10"}, {"10", "11"}, {"11", "1"},
	}
	for _, p := range pairs {
		_, err := g.AddEdge(p[0], p[1])
		require.NoError(t, err)
	}

	edges := g.Edges()
	require.Len(t, edges, len(pairs))
	for i, e := range edges {
		assert.Equal(t, pairs[i][0], e.From)
		assert.Equal(t, pairs[i][1], e.To)
		assert.Equal(t, uint64(i+1), e.Seq)
	}

	got, err := g.GetEdge("e10")
	require.NoError(t, err)
	assert.Equal(t, "10", got.From)
	_, err = g.GetEdge("e99")
	assert.ErrorIs(t, err, core.ErrEdgeNotFound)
}

func TestGraph_SuccessorsPredecessors(t *testing.T) {
	g := core.NewCallGraph()
	for _, p := range [][2]string{{"main", "a"}, {"main", "b"}, {"a", "b"}, {"b", "b"}} {
		_, err := g.AddEdge(p[0], p[1])
		require.NoError(t, err)
	}

	succ, err := g.Successors("main")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, succ)

	pred, err := g.Predecessors("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "main"}, pred)

	in, out, err := g.Degree("b")
	require.NoError(t, err)
	assert.Equal(t, 3, in)
	assert.Equal(t, 1, out)

	assert.True(t, g.HasEdge("main", "a"))
	assert.False(t, g.HasEdge("a", "main"))

	_, err = g.Successors("nope")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
	_, _, err = g.Degree("")
	assert.ErrorIs(t, err, core.ErrEmptyVertexID)
}

func TestGraph_UndirectedProjection(t *testing.T) {
	g := core.NewCallGraph()
	for _, p := range [][2]string{{"A", "B"}, {"B", "A"}, {"B", "C"}, {"C", "C"}} {
		_, err := g.AddEdge(p[0], p[1])
		require.NoError(t, err)
	}
	require.NoError(t, g.AddVertex("D"))

	u := g.Undirected()
	assert.False(t, u.Directed())
	assert.Equal(t, 4, u.VertexCount())
	assert.Equal(t, 3, u.EdgeCount(), "A-B collapses, B-C and loop C kept")
	assert.True(t, u.HasEdge("C", "B"))

	_, _, err := u.Degree("D")
	require.NoError(t, err)
	in, out, err := u.Degree("C")
	require.NoError(t, err)
	assert.Equal(t, 3, in, "one edge end from B plus two from the loop")
	assert.Equal(t, in, out)

	// source untouched
	assert.Equal(t, 4, g.EdgeCount())
	assert.True(t, g.Directed())
}

func TestGraph_Reverse(t *testing.T) {
	g := core.NewCallGraph()
	_, _ = g.AddEdge("A", "B")
	_, _ = g.AddEdge("B", "C")

	r := g.Reverse()
	assert.True(t, r.HasEdge("B", "A"))
	assert.True(t, r.HasEdge("C", "B"))
	assert.False(t, r.HasEdge("A", "B"))
	assert.Equal(t, g.Vertices(), r.Vertices())
}

func TestGraph_AdjacencyList(t *testing.T) {
	g := core.NewCallGraph()
	_, _ = g.AddEdge("A", "C")
	_, _ = g.AddEdge("A", "B")
	require.NoError(t, g.AddVertex("Z"))

	adj := g.AdjacencyList()
	assert.Equal(t, []string{"B", "C"}, adj["A"])
	assert.Empty(t, adj["Z"])
	assert.Len(t, adj, 4)
}
