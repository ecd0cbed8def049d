// Package labels loads per-graph family labels.
//
// A label file holds one label per line, aligned by position with the graphs
// of a training corpus. Lines are whitespace-trimmed and kept verbatim,
// blank ones included; alignment with the corpus is checked by the caller.
package labels

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrNotFound is returned when the label file does not exist.
// Errors carrying it also match fs.ErrNotExist.
var ErrNotFound = errors.New("labels: label file not found")

// Load reads the label file at path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("labels: open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read returns one trimmed label per line of r.
func Read(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		out = append(out, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("labels: scan: %w", err)
	}

	return out, nil
}

// Count is one entry of a label distribution.
type Count struct {
	Label string
	N     int
}

// Distribution tallies labels, most frequent first; ties are ordered by
// label.
func Distribution(labels []string) []Count {
	tally := make(map[string]int)
	for _, l := range labels {
		tally[l]++
	}
	out := make([]Count, 0, len(tally))
	for l, n := range tally {
		out = append(out, Count{Label: l, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Label < out[j].Label
	})

	return out
}

// Dist adapts a distribution for zap.Array.
type Dist []Count

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (d Dist) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, c := range d {
		c := c
		if err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
			oe.AddString("label", c.Label)
			oe.AddInt("n", c.N)
			return nil
		})); err != nil {
			return err
		}
	}

	return nil
}

// LoadAndLog is Load followed by an info line with the label count and
// distribution.
func LoadAndLog(path string, log *zap.Logger) ([]string, error) {
	ls, err := Load(path)
	if err != nil {
		return nil, err
	}
	log.Info("loaded labels",
		zap.String("path", path),
		zap.Int("labels", len(ls)),
		zap.Array("distribution", Dist(Distribution(ls))))

	return ls, nil
}
