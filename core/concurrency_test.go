// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fcgraph/core"
)

// TestConcurrentAddEdge ensures that concurrent AddEdge calls
// are safe and every successor appears exactly once.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewCallGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)

	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := g.AddEdge("X", fmt.Sprintf("V%d", id))
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	succ, err := g.Successors("X")
	require.NoError(t, err)
	require.Len(t, succ, num)
	require.Equal(t, num, g.EdgeCount())
}

// TestConcurrentReadersAndProjection runs degree queries and projections
// concurrently with writers; the race detector is the real assertion here.
func TestConcurrentReadersAndProjection(t *testing.T) {
	g := core.NewCallGraph()
	require.NoError(t, g.AddVertex("root"))

	const writers, readers = 50, 50
	var wg sync.WaitGroup
	wg.Add(writers + readers)

	for i := 0; i < writers; i++ {
		go func(id int) {
			defer wg.Done()
			_, _ = g.AddEdge("root", fmt.Sprintf("f%d", id))
		}(i)
	}
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			_, _, err := g.Degree("root")
			require.NoError(t, err)
			_ = g.Undirected()
		}()
	}
	wg.Wait()

	_, out, err := g.Degree("root")
	require.NoError(t, err)
	require.Equal(t, writers, out)
}
