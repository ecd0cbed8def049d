// File: ingest.go
// Role: Ingestor, the file/reader entry points and the auto fallback chain.
// Concurrency:
//   - An Ingestor is immutable after New and safe for concurrent use.

package ingest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/fcgraph/core"
)

const (
	defaultSeparator   = "---"
	defaultRecoveryMin = 100
	progressEvery      = 100
)

// Ingestor parses corpus files into call graphs.
type Ingestor struct {
	strategy    Strategy
	expected    int
	separator   string
	recoveryMin int
	log         *zap.Logger
	err         error
}

// New returns an Ingestor using StrategyAuto, separator "---", a recovery
// threshold of 100 lines and a no-op logger unless overridden by opts.
// Invalid options are reported by the first Parse call.
func New(opts ...Option) *Ingestor {
	in := &Ingestor{
		strategy:    StrategyAuto,
		separator:   defaultSeparator,
		recoveryMin: defaultRecoveryMin,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.err == nil {
		if _, err := ParseStrategy(string(in.strategy)); err != nil {
			in.err = err
		} else if in.strategy == StrategyFixedChunk && in.expected == 0 {
			in.err = ErrExpectedGraphs
		}
	}

	return in
}

// Parse reads the corpus at path and returns its graphs in file order.
//
// Errors:
//   - ErrNotFound (also matching fs.ErrNotExist) when path does not exist.
//   - Option errors recorded by New.
//   - Other read errors, wrapped.
//
// Malformed content never produces an error.
func (in *Ingestor) Parse(path string) ([]*core.Graph, *Report, error) {
	if in.err != nil {
		return nil, nil, in.err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}

	graphs, rep := in.parseContent(string(data), in.log.With(zap.String("path", path)))

	return graphs, rep, nil
}

// ParseReader is Parse over an already-open stream.
func (in *Ingestor) ParseReader(r io.Reader) ([]*core.Graph, *Report, error) {
	recs, rep, err := in.ParseRecords(r)
	if err != nil {
		return nil, nil, err
	}

	return materialize(recs, in.log), rep, nil
}

// ParseRecords returns the segmented records without building graphs, with
// every parsed edge kept in file order.
func (in *Ingestor) ParseRecords(r io.Reader) ([]Record, *Report, error) {
	if in.err != nil {
		return nil, nil, in.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: read: %w", err)
	}
	recs, rep := in.segment(normalize(string(data)), in.log)

	return recs, rep, nil
}

func (in *Ingestor) parseContent(content string, log *zap.Logger) ([]*core.Graph, *Report) {
	recs, rep := in.segment(normalize(content), log)

	return materialize(recs, log), rep
}

// segment runs the configured strategy and logs a per-file summary.
func (in *Ingestor) segment(content string, log *zap.Logger) ([]Record, *Report) {
	rep := &Report{Lines: countLines(content)}

	var seg Segmentation
	if in.strategy == StrategyAuto {
		seg, rep.Strategy, rep.Fallback = in.auto(content, rep.Lines, log)
	} else {
		s := in.segmenter(in.strategy)
		seg, rep.Strategy = s.Segment(content), s.Strategy()
	}

	rep.Graphs = len(seg.Records)
	rep.Sections = seg.Sections
	rep.SkippedLines = seg.Skipped
	for _, r := range seg.Records {
		rep.Edges += len(r.Edges)
	}
	log.Info("parsed corpus", zap.Object("report", rep))

	return seg.Records, rep
}

// auto runs the boundary parse and, when it collapses more than
// recoveryMin lines into one record, tries blank-line, separator and
// (with an expected count) fixed-chunk segmentation in that order. The first
// segmenter producing more than one section wins. If none does, the boundary
// result stands.
func (in *Ingestor) auto(content string, lines int, log *zap.Logger) (Segmentation, Strategy, bool) {
	primary := BoundarySegmenter{}.Segment(content)
	if len(primary.Records) != 1 || lines <= in.recoveryMin {
		return primary, StrategyBoundary, false
	}

	chain := []Segmenter{BlankLineSegmenter{}, SeparatorSegmenter{Token: in.separator}}
	if in.expected > 0 {
		chain = append(chain, FixedChunkSegmenter{Expected: in.expected})
	}
	log.Warn("boundary parse found a single graph; re-segmenting",
		zap.Int("lines", lines), zap.Int("candidates", len(chain)))

	for _, s := range chain {
		seg := s.Segment(content)
		if seg.Sections > 1 {
			log.Warn("segmentation fallback applied",
				zap.String("strategy", string(s.Strategy())),
				zap.Int("sections", seg.Sections),
				zap.Int("graphs", len(seg.Records)))
			return seg, s.Strategy(), true
		}
	}
	log.Warn("no fallback segmentation found more than one section; keeping boundary parse")

	return primary, StrategyBoundary, false
}

func (in *Ingestor) segmenter(s Strategy) Segmenter {
	switch s {
	case StrategyBlankLine:
		return BlankLineSegmenter{}
	case StrategySeparator:
		return SeparatorSegmenter{Token: in.separator}
	case StrategyFixedChunk:
		return FixedChunkSegmenter{Expected: in.expected}
	default:
		return BoundarySegmenter{}
	}
}

func materialize(recs []Record, log *zap.Logger) []*core.Graph {
	graphs := make([]*core.Graph, len(recs))
	for i, r := range recs {
		graphs[i] = r.Graph()
		if (i+1)%progressEvery == 0 {
			log.Debug("materialized graphs", zap.Int("count", i+1), zap.Int("total", len(recs)))
		}
	}

	return graphs
}

// normalize converts CRLF and lone CR line endings to "\n".
func normalize(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\r", "\n")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}

	return n
}
