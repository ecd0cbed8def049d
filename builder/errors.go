// SPDX-License-Identifier: MIT
// Package: fcgraph/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context using builderErrorf / %w.

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewVertices indicates that a size parameter is smaller than the
// minimum for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor requires a
// *rand.Rand in the resolved builderConfig (WithSeed/WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a constructor could not finish without
// breaking core invariants.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf returns an error of the form "<method>: <msg>: <err>".
func builderErrorf(method, msg string, err error) error {
	return fmt.Errorf("%s: %s: %w", method, msg, err)
}
