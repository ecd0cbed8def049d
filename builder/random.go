// SPDX-License-Identifier: MIT
// Package: fcgraph/builder
//
// random.go - stochastic constructors.
//
// Determinism:
//   • Trials run in a fixed order (i asc, j asc), so a fixed seed yields a
//     fixed graph.

package builder

import (
	"fmt"

	"github.com/katalvlaran/fcgraph/core"
)

// RandomSparse samples an Erdős–Rényi-like graph over n vertices, including
// each admissible ordered pair (i,j) with probability p. Self-loops are
// sampled only when the graph allows them.
//
// Contract:
//   - n ≥ 1, 0 ≤ p ≤ 1.
//   - cfg.rng is required when 0 < p < 1.
func RandomSparse(n int, p float64) Constructor {
	const method = "RandomSparse"
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return builderErrorf(method, fmt.Sprintf("n=%d < 1", n), ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return builderErrorf(method, fmt.Sprintf("p=%.6f", p), ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return builderErrorf(method, "rng", ErrNeedRandSource)
		}
		if err := addVertices(method, g, cfg, n); err != nil {
			return err
		}

		loops, directed := g.Looped(), g.Directed()
		for i := 0; i < n; i++ {
			start := 0
			if !directed {
				start = i
			}
			for j := start; j < n; j++ {
				if i == j && !loops {
					continue
				}
				take := p == 1
				if cfg.rng != nil {
					take = cfg.rng.Float64() < p
				}
				if !take {
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

// CallTree samples a rooted call hierarchy: vertex 0 is the entry point and
// each vertex i > 0 is called by a uniformly chosen earlier vertex. With
// probability back each vertex also gets one extra call edge to a random
// vertex (recursion or a shared helper), which can close cycles.
//
// Contract:
//   - n ≥ 1, 0 ≤ back ≤ 1, cfg.rng required for n > 1.
func CallTree(n int, back float64) Constructor {
	const method = "CallTree"
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return builderErrorf(method, fmt.Sprintf("n=%d < 1", n), ErrTooFewVertices)
		}
		if back < 0 || back > 1 {
			return builderErrorf(method, fmt.Sprintf("back=%.6f", back), ErrInvalidProbability)
		}
		if cfg.rng == nil && n > 1 {
			return builderErrorf(method, "rng", ErrNeedRandSource)
		}
		if err := addVertices(method, g, cfg, n); err != nil {
			return err
		}

		for i := 1; i < n; i++ {
			if err := addEdge(method, g, cfg, cfg.rng.Intn(i), i); err != nil {
				return err
			}
		}
		if back == 0 {
			return nil
		}
		for i := 0; i < n; i++ {
			if cfg.rng.Float64() >= back {
				continue
			}
			j := cfg.rng.Intn(n)
			if g.HasEdge(cfg.idFn(i), cfg.idFn(j)) || (i == j && !g.Looped()) {
				continue
			}
			if err := addEdge(method, g, cfg, i, j); err != nil {
				return err
			}
		}

		return nil
	}
}
