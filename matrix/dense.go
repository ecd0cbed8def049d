// SPDX-License-Identifier: MIT
// Package matrix provides the numeric containers used by feature extraction
// and model training. Dense is a row-major float64 matrix that stores its
// elements in a flat slice; rows are sample vectors, columns are features.
//
// Zero-row matrices are valid (an empty design matrix keeps its column
// count); zero-column matrices are not.
package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is the read/write surface shared by containers in this package.
// All methods are O(1) except Clone (O(r*c)).
type Matrix interface {
	Rows() int
	Cols() int
	// At returns ErrOutOfRange for invalid indices.
	At(i, j int) (float64, error)
	// Set returns ErrOutOfRange for invalid indices.
	Set(i, j int, v float64) error
	Clone() Matrix
}

// Dense is a row-major matrix of float64 values.
type Dense struct {
	r, c int
	data []float64
}

var _ Matrix = (*Dense)(nil)

// NewDense creates an r×c Dense matrix initialized to zeros.
// r may be zero; c must be positive.
// Complexity: O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols <= 0 {
		return nil, matrixErrorf("NewDense", ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFromRows copies rows into a new matrix with cols columns.
// Every row must have exactly cols finite values.
func NewDenseFromRows(cols int, rows [][]float64) (*Dense, error) {
	d, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix.NewDenseFromRows: row %d has %d values, want %d: %w",
				i, len(row), cols, ErrBadShape)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("matrix.NewDenseFromRows: (%d,%d): %w", i, j, ErrNaNInf)
			}
		}
		copy(d.data[i*cols:(i+1)*cols], row)
	}

	return d, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(op string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("Dense.%s(%d,%d): %w", op, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns a view of row i. The slice aliases the matrix storage and
// must not be modified by callers that do not own the matrix.
// Panics if i is out of range, like slice indexing.
func (m *Dense) Row(i int) []float64 {
	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// Clone returns a deep copy of the Dense matrix.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// SelectRows returns a new matrix holding the rows at idx, in that order.
// Indices may repeat (bootstrap samples).
func (m *Dense) SelectRows(idx []int) (*Dense, error) {
	out := &Dense{r: len(idx), c: m.c, data: make([]float64, len(idx)*m.c)}
	for k, i := range idx {
		if i < 0 || i >= m.r {
			return nil, fmt.Errorf("Dense.SelectRows(%d): %w", i, ErrOutOfRange)
		}
		copy(out.data[k*m.c:(k+1)*m.c], m.Row(i))
	}

	return out, nil
}

// String implements fmt.Stringer for debugging.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
