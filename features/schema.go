// Package features turns call graphs into fixed-schema numeric vectors.
//
// Every graph yields the same ordered key set (see DefaultSchema). A metric
// that cannot be computed (empty graph, disconnected projection, power
// iteration that does not converge, internal failure) falls back to 0 and
// records why as an Outcome; the Extractor tallies those outcomes in
// DefaultStats so degraded batches stay visible in aggregate.
package features

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrEmptyKey is returned when a schema key is empty.
	ErrEmptyKey = errors.New("features: empty schema key")

	// ErrDuplicateKey is returned when a schema repeats a key.
	ErrDuplicateKey = errors.New("features: duplicate schema key")

	// ErrSchemaMismatch is returned when vectors or matrices of different
	// schemas are combined.
	ErrSchemaMismatch = errors.New("features: schema mismatch")
)

// Feature keys, in schema order.
const (
	NumNodes              = "num_nodes"
	NumEdges              = "num_edges"
	Density               = "density"
	AvgDegree             = "avg_degree"
	MaxDegree             = "max_degree"
	MinDegree             = "min_degree"
	DegreeStd             = "degree_std"
	AvgInDegree           = "avg_in_degree"
	AvgOutDegree          = "avg_out_degree"
	MaxInDegree           = "max_in_degree"
	MaxOutDegree          = "max_out_degree"
	CentralityBetweenness = "centrality_betweenness"
	CentralityCloseness   = "centrality_closeness"
	CentralityEigenvector = "centrality_eigenvector"
	CentralityPageRank    = "centrality_pagerank"
	ClusteringCoefficient = "clustering_coefficient"
	NumWeaklyConnected    = "num_weakly_connected"
	NumStronglyConnected  = "num_strongly_connected"
	Diameter              = "diameter"
	Radius                = "radius"
	TriadicTransitivity   = "triadic_transitivity"
)

var defaultKeys = []string{
	NumNodes, NumEdges, Density,
	AvgDegree, MaxDegree, MinDegree, DegreeStd,
	AvgInDegree, AvgOutDegree, MaxInDegree, MaxOutDegree,
	CentralityBetweenness, CentralityCloseness, CentralityEigenvector, CentralityPageRank,
	ClusteringCoefficient, NumWeaklyConnected, NumStronglyConnected,
	Diameter, Radius, TriadicTransitivity,
}

var defaultSchema = mustSchema(defaultKeys...)

// Schema is an immutable, ordered list of unique feature keys.
type Schema struct {
	keys  []string
	index map[string]int
}

// NewSchema validates keys and returns a Schema preserving their order.
func NewSchema(keys ...string) (*Schema, error) {
	s := &Schema{keys: make([]string, len(keys)), index: make(map[string]int, len(keys))}
	for i, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyKey, i)
		}
		if _, dup := s.index[k]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k)
		}
		s.keys[i] = k
		s.index[k] = i
	}

	return s, nil
}

func mustSchema(keys ...string) *Schema {
	s, err := NewSchema(keys...)
	if err != nil {
		panic(err)
	}

	return s
}

// DefaultSchema returns the 21-key schema produced by Extractor.
// The same pointer is returned on every call.
func DefaultSchema() *Schema { return defaultSchema }

// Keys returns a copy of the ordered keys.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)

	return out
}

// Len returns the number of keys.
func (s *Schema) Len() int { return len(s.keys) }

// Index returns the column of key.
func (s *Schema) Index(key string) (int, bool) {
	i, ok := s.index[key]

	return i, ok
}

// Equal reports whether both schemas list the same keys in the same order.
func (s *Schema) Equal(o *Schema) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || len(s.keys) != len(o.keys) {
		return false
	}
	for i := range s.keys {
		if s.keys[i] != o.keys[i] {
			return false
		}
	}

	return true
}
