// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics and z-score standardization over Dense.
//
// Determinism:
//   - Fixed i→j traversal; results are bit-stable for a given input.

package matrix

import "math"

// ColumnMeans returns Σ_i X[i,j] / r for every column. A zero-row matrix
// yields all-zero means.
// Complexity: O(r*c).
func ColumnMeans(X *Dense) ([]float64, error) {
	if X == nil {
		return nil, matrixErrorf("ColumnMeans", ErrNilMatrix)
	}
	means := make([]float64, X.c)
	if X.r == 0 {
		return means, nil
	}
	for i := 0; i < X.r; i++ {
		base := i * X.c
		for j := 0; j < X.c; j++ {
			means[j] += X.data[base+j]
		}
	}
	inv := 1.0 / float64(X.r)
	for j := range means {
		means[j] *= inv
	}

	return means, nil
}

// ColumnStds returns the population standard deviation (divisor r) of
// every column around the supplied means.
// Complexity: O(r*c).
func ColumnStds(X *Dense, means []float64) ([]float64, error) {
	if X == nil {
		return nil, matrixErrorf("ColumnStds", ErrNilMatrix)
	}
	if len(means) != X.c {
		return nil, matrixErrorf("ColumnStds", ErrDimensionMismatch)
	}
	stds := make([]float64, X.c)
	if X.r == 0 {
		return stds, nil
	}
	for i := 0; i < X.r; i++ {
		base := i * X.c
		for j := 0; j < X.c; j++ {
			d := X.data[base+j] - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / float64(X.r))
	}

	return stds, nil
}

// Standardize returns a copy of X with (x - mean[j]) / scale[j] applied per
// column. A zero scale is treated as 1 so constant columns become zero
// rather than NaN.
func Standardize(X *Dense, means, scales []float64) (*Dense, error) {
	if X == nil {
		return nil, matrixErrorf("Standardize", ErrNilMatrix)
	}
	if len(means) != X.c || len(scales) != X.c {
		return nil, matrixErrorf("Standardize", ErrDimensionMismatch)
	}
	out := &Dense{r: X.r, c: X.c, data: make([]float64, len(X.data))}
	for i := 0; i < X.r; i++ {
		base := i * X.c
		for j := 0; j < X.c; j++ {
			s := scales[j]
			if s == 0 {
				s = 1
			}
			out.data[base+j] = (X.data[base+j] - means[j]) / s
		}
	}

	return out, nil
}

// MeanStd returns the arithmetic mean and population standard deviation
// of xs. An empty slice yields (0, 0).
func MeanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		std += d * d
	}

	return mean, math.Sqrt(std / float64(len(xs)))
}
