// File: vector.go
// Role: schema-bound feature vectors and the design matrix built from them.

package features

import (
	"fmt"

	"github.com/katalvlaran/fcgraph/matrix"
)

// Vector is one graph's features in schema order.
type Vector struct {
	schema *Schema
	values []float64
	// outcomes mirrors values; nil for keys that cannot default.
	outcomes []Outcome
}

// NewVector binds values to schema. len(values) must equal schema.Len().
func NewVector(schema *Schema, values []float64) (Vector, error) {
	if schema == nil || len(values) != schema.Len() {
		return Vector{}, fmt.Errorf("%w: %d values for schema", ErrSchemaMismatch, len(values))
	}
	cp := make([]float64, len(values))
	copy(cp, values)

	return Vector{schema: schema, values: cp}, nil
}

// Schema returns the vector's schema.
func (v Vector) Schema() *Schema { return v.schema }

// Values returns a copy of the values in schema order.
func (v Vector) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)

	return out
}

// Get returns the value of key, or 0 when the schema lacks it.
func (v Vector) Get(key string) float64 {
	if i, ok := v.schema.Index(key); ok {
		return v.values[i]
	}

	return 0
}

// Outcome returns how key was obtained. Keys that never default report
// DefaultNone.
func (v Vector) Outcome(key string) Outcome {
	i, ok := v.schema.Index(key)
	if !ok {
		return Defaulted(DefaultFailed)
	}
	if v.outcomes == nil {
		return OK(v.values[i])
	}

	return v.outcomes[i]
}

// Matrix is a design matrix: one row per graph, one column per schema key.
type Matrix struct {
	schema   *Schema
	dense    *matrix.Dense
	defaults DefaultStats
}

// NewMatrix stacks vectors that all use schema. Zero vectors give a
// zero-row matrix with schema.Len() columns.
func NewMatrix(schema *Schema, vectors []Vector) (*Matrix, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrSchemaMismatch)
	}
	rows := make([][]float64, len(vectors))
	for i, v := range vectors {
		if !schema.Equal(v.schema) {
			return nil, fmt.Errorf("%w: row %d", ErrSchemaMismatch, i)
		}
		rows[i] = v.values
	}
	d, err := matrix.NewDenseFromRows(schema.Len(), rows)
	if err != nil {
		return nil, fmt.Errorf("features: build matrix: %w", err)
	}

	return &Matrix{schema: schema, dense: d}, nil
}

// NewMatrixFromDense wraps an existing dense matrix; its column count must
// match schema.
func NewMatrixFromDense(schema *Schema, d *matrix.Dense) (*Matrix, error) {
	if schema == nil || d == nil || d.Cols() != schema.Len() {
		return nil, fmt.Errorf("%w: dense columns do not match schema", ErrSchemaMismatch)
	}

	return &Matrix{schema: schema, dense: d}, nil
}

// Schema returns the column schema.
func (m *Matrix) Schema() *Schema { return m.schema }

// Rows returns the number of samples.
func (m *Matrix) Rows() int { return m.dense.Rows() }

// Cols returns the number of features.
func (m *Matrix) Cols() int { return m.dense.Cols() }

// Dense exposes the backing matrix. Callers must not mutate it.
func (m *Matrix) Dense() *matrix.Dense { return m.dense }

// Defaults returns the default accounting of the batch that built m.
func (m *Matrix) Defaults() DefaultStats { return m.defaults.clone() }

// Head returns a matrix over the first n rows, sharing nothing with m.
func (m *Matrix) Head(n int) (*Matrix, error) {
	if n < 0 || n > m.Rows() {
		return nil, fmt.Errorf("features: Head(%d) of %d rows: %w", n, m.Rows(), matrix.ErrOutOfRange)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	d, err := m.dense.SelectRows(idx)
	if err != nil {
		return nil, err
	}

	return &Matrix{schema: m.schema, dense: d, defaults: m.defaults.clone()}, nil
}
