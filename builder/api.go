// SPDX-License-Identifier: MIT
// Package: fcgraph/builder
//
// api.go - public entry-points for deterministic call-graph fixtures.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.
//   - Safety: never panic at runtime; return sentinel errors from constructors.
//
// Fixtures feed feature-extraction tests, classifier tests and benchmarks, and
// WriteEdgeList renders them in the line-oriented format the ingestor reads.

package builder

import (
	"fmt"
	"io"

	"github.com/katalvlaran/fcgraph/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors validate parameters early and return sentinel
// errors.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// A nil gopts yields a call graph (directed, self-loops allowed).
//
// Errors:
//   - Wraps constructor errors via %w; callers branch with errors.Is against
//     builder sentinels (ErrTooFewVertices, ErrInvalidProbability, ...).
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	var g *core.Graph
	if gopts == nil {
		g = core.NewCallGraph()
	} else {
		g = core.NewGraph(gopts...)
	}
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// MustCallGraph is BuildGraph for test fixtures with fixed parameters:
// it builds a call graph and panics on constructor errors.
func MustCallGraph(bopts []BuilderOption, cons ...Constructor) *core.Graph {
	g, err := BuildGraph(nil, bopts, cons...)
	if err != nil {
		panic(err)
	}

	return g
}

// WriteEdgeList renders graphs as one block per graph: a "# graph <i>"
// boundary line followed by one "u v" line per edge in insertion order.
// Isolated vertices cannot be expressed in this format and are dropped.
func WriteEdgeList(w io.Writer, graphs ...*core.Graph) error {
	for i, g := range graphs {
		if g == nil {
			return fmt.Errorf("WriteEdgeList: graph %d: %w", i, ErrConstructFailed)
		}
		if _, err := fmt.Fprintf(w, "# graph %d\n", i); err != nil {
			return fmt.Errorf("WriteEdgeList: %w", err)
		}
		for _, e := range g.Edges() {
			if _, err := fmt.Fprintf(w, "%s %s\n", e.From, e.To); err != nil {
				return fmt.Errorf("WriteEdgeList: %w", err)
			}
		}
	}

	return nil
}
