// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fcgraph/matrix"
)

func TestNewDense_Shapes(t *testing.T) {
	_, err := matrix.NewDense(2, 0)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.NewDense(-1, 3)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	empty, err := matrix.NewDense(0, 21)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows())
	assert.Equal(t, 21, empty.Cols())
}

func TestDense_AtSetClone(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 7.5))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)

	c := m.Clone()
	require.NoError(t, c.Set(1, 2, 0))
	v, _ = m.At(1, 2)
	assert.Equal(t, 7.5, v, "clone is independent")
	assert.Equal(t, []float64{0, 0, 7.5}, m.Row(1))
}

func TestNewDenseFromRows(t *testing.T) {
	_, err := matrix.NewDenseFromRows(2, [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewDenseFromRows(2, [][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err := matrix.NewDenseFromRows(2, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	sub, err := m.SelectRows([]int{2, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, sub.Row(0))
	assert.Equal(t, []float64{1, 2}, sub.Row(1))
	assert.Equal(t, 3, sub.Rows())

	_, err = m.SelectRows([]int{3})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestColumnStatsAndStandardize(t *testing.T) {
	m, err := matrix.NewDenseFromRows(2, [][]float64{{1, 5}, {3, 5}})
	require.NoError(t, err)

	means, err := matrix.ColumnMeans(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, means)

	stds, err := matrix.ColumnStds(m, means)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, stds)

	z, err := matrix.Standardize(m, means, stds)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0}, z.Row(0))
	assert.Equal(t, []float64{1, 0}, z.Row(1), "constant column maps to zero")

	_, err = matrix.Standardize(m, means[:1], stds)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.ColumnMeans(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMeanStd(t *testing.T) {
	mean, std := matrix.MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 2.0, std)

	mean, std = matrix.MeanStd(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)
}
