// File: codec.go
// Role: label codec and feature scaler, the two preprocessing steps fitted
// once and reused unchanged at prediction time.

package classifier

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/fcgraph/matrix"
)

// LabelCodec maps label strings onto dense ids 0..K-1 in sorted label order.
type LabelCodec struct {
	classes []string
	ids     map[string]int
}

// NewLabelCodec fits a codec on labels. Empty strings are valid labels.
func NewLabelCodec(labels []string) (*LabelCodec, error) {
	if len(labels) == 0 {
		return nil, ErrNoSamples
	}
	ids := make(map[string]int)
	for _, l := range labels {
		ids[l] = 0
	}
	classes := make([]string, 0, len(ids))
	for l := range ids {
		classes = append(classes, l)
	}
	sort.Strings(classes)
	for i, l := range classes {
		ids[l] = i
	}

	return &LabelCodec{classes: classes, ids: ids}, nil
}

// Classes returns a copy of the sorted class labels.
func (c *LabelCodec) Classes() []string {
	out := make([]string, len(c.classes))
	copy(out, c.classes)

	return out
}

// Len returns the number of classes.
func (c *LabelCodec) Len() int { return len(c.classes) }

// Encode maps labels onto ids.
func (c *LabelCodec) Encode(labels []string) ([]int, error) {
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := c.ids[l]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, l)
		}
		out[i] = id
	}

	return out, nil
}

// Decode maps an id back onto its label.
func (c *LabelCodec) Decode(id int) (string, error) {
	if id < 0 || id >= len(c.classes) {
		return "", fmt.Errorf("%w: id %d", ErrUnknownLabel, id)
	}

	return c.classes[id], nil
}

// Scaler standardises columns to zero mean and unit population variance.
// Constant columns are centred only.
type Scaler struct {
	means, scales []float64
}

// FitScaler learns column statistics from X.
func FitScaler(X *matrix.Dense) (*Scaler, error) {
	means, err := matrix.ColumnMeans(X)
	if err != nil {
		return nil, err
	}
	stds, err := matrix.ColumnStds(X, means)
	if err != nil {
		return nil, err
	}

	return &Scaler{means: means, scales: stds}, nil
}

// Transform applies the stored statistics to X, returning a new matrix.
func (s *Scaler) Transform(X *matrix.Dense) (*matrix.Dense, error) {
	return matrix.Standardize(X, s.means, s.scales)
}
