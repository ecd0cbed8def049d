// SPDX-License-Identifier: MIT
// Package: fcgraph/builder
//
// topology.go - fixed-shape constructors.
//
// Every constructor adds its vertices via cfg.idFn in ascending index order
// before emitting edges, so isolated vertices are kept and insertion order
// is stable. On a directed graph edges point from lower to higher index
// except where noted.

package builder

import (
	"fmt"

	"github.com/katalvlaran/fcgraph/core"
)

func addVertices(method string, g *core.Graph, cfg builderConfig, n int) error {
	for i := 0; i < n; i++ {
		if err := g.AddVertex(cfg.idFn(i)); err != nil {
			return builderErrorf(method, fmt.Sprintf("AddVertex(%d)", i), err)
		}
	}

	return nil
}

func addEdge(method string, g *core.Graph, cfg builderConfig, i, j int) error {
	u, v := cfg.idFn(i), cfg.idFn(j)
	if _, err := g.AddEdge(u, v); err != nil {
		return builderErrorf(method, fmt.Sprintf("AddEdge(%s→%s)", u, v), err)
	}

	return nil
}

// Cycle builds C_n with edges i → (i+1)%n (n ≥ 3).
func Cycle(n int) Constructor {
	const method = "Cycle"
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 3 {
			return builderErrorf(method, fmt.Sprintf("n=%d < 3", n), ErrTooFewVertices)
		}
		if err := addVertices(method, g, cfg, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := addEdge(method, g, cfg, i, (i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}

// Path builds P_n with edges i → i+1 (n ≥ 1; a single vertex has no edges).
func Path(n int) Constructor {
	const method = "Path"
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return builderErrorf(method, fmt.Sprintf("n=%d < 1", n), ErrTooFewVertices)
		}
		if err := addVertices(method, g, cfg, n); err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err := addEdge(method, g, cfg, i, i+1); err != nil {
				return err
			}
		}

		return nil
	}
}

// Star builds a hub (index 0) calling n-1 leaves (n ≥ 2).
func Star(n int) Constructor {
	const method = "Star"
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 2 {
			return builderErrorf(method, fmt.Sprintf("n=%d < 2", n), ErrTooFewVertices)
		}
		if err := addVertices(method, g, cfg, n); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := addEdge(method, g, cfg, 0, i); err != nil {
				return err
			}
		}

		return nil
	}
}

// Complete builds K_n. On a directed graph both orientations of every pair
// are emitted (i→j for all i≠j, in i asc, j asc order).
func Complete(n int) Constructor {
	const method = "Complete"
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return builderErrorf(method, fmt.Sprintf("n=%d < 1", n), ErrTooFewVertices)
		}
		if err := addVertices(method, g, cfg, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			start := 0
			if !g.Directed() {
				start = i + 1
			}
			for j := start; j < n; j++ {
				if i == j {
					continue
				}
				if err := addEdge(method, g, cfg, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
