// Package ingest turns weakly-delimited call-graph corpus files into
// directed graphs.
//
// A corpus is a text file holding many graphs. Records are normally
// separated by boundary lines ("#...", "graph...", "Graph...", "t #...",
// "% ..."), and each non-boundary line may encode one edge in one of four
// notations:
//
//	1 2               two numeric tokens
//	e 4 5 weight=0.3  edge record; trailing tokens ignored
//	main -> init      arrow
//	main,init         comma or tab separated
//
// Lines that match none of these are skipped and counted, never reported as
// errors. When a boundary parse collapses a large file into a single graph,
// StrategyAuto re-segments the content with an announced fallback chain
// (blank lines, then a separator token, then fixed-size chunks when the
// expected graph count is configured).
package ingest

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/fcgraph/core"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when the corpus file does not exist.
	// Errors carrying it also match fs.ErrNotExist.
	ErrNotFound = errors.New("ingest: corpus file not found")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
	ErrUnknownStrategy = errors.New("ingest: unknown segmentation strategy")

	// ErrExpectedGraphs is returned when fixed-chunk segmentation is selected
	// without a positive expected graph count.
	ErrExpectedGraphs = errors.New("ingest: fixed-chunk segmentation needs expected graph count > 0")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("ingest: invalid option supplied")
)

// Edge is one parsed call edge, caller first.
type Edge struct {
	From, To string
}

// LineKind classifies a corpus line.
type LineKind int

const (
	LineEmpty     LineKind = iota // blank after trimming
	LineBoundary                  // record separator
	LineNumeric                   // "1 2"
	LineEdge                      // "e 1 2 ..."
	LineArrow                     // "a -> b"
	LineDelimited                 // "a,b" or "a\tb"
	LineSkipped                   // no rule matched
)

var lineKindNames = [...]string{"empty", "boundary", "numeric", "edge", "arrow", "delimited", "skipped"}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineKindNames) {
		return fmt.Sprintf("LineKind(%d)", int(k))
	}

	return lineKindNames[k]
}

// HasEdge reports whether lines of this kind carry an edge.
func (k LineKind) HasEdge() bool {
	return k >= LineNumeric && k <= LineDelimited
}

// Strategy names a segmentation strategy.
type Strategy string

const (
	StrategyAuto       Strategy = "auto"
	StrategyBoundary   Strategy = "boundary"
	StrategyBlankLine  Strategy = "blank-line"
	StrategySeparator  Strategy = "separator"
	StrategyFixedChunk Strategy = "fixed-chunk"
)

// ParseStrategy maps a configuration string onto a Strategy.
// Matching is case-insensitive; "" means StrategyAuto.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyBoundary, StrategyBlankLine, StrategySeparator, StrategyFixedChunk:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Record is one segmented graph before materialization: its edges in file
// order, duplicates included.
type Record struct {
	Edges []Edge
}

// Graph materializes the record as a call graph. Repeated edges collapse
// onto the first occurrence, so EdgeCount may be below len(r.Edges).
func (r Record) Graph() *core.Graph {
	g := core.NewCallGraph()
	for _, e := range r.Edges {
		// the only possible failure is a repeated pair
		_, _ = g.AddEdge(e.From, e.To)
	}

	return g
}

// Report summarises one Parse call.
type Report struct {
	// Lines counts physical lines in the input, blank ones included.
	Lines int
	// Graphs is the number of records returned.
	Graphs int
	// Edges counts parsed edge lines across all returned records.
	Edges int
	// SkippedLines counts non-empty, non-boundary lines that yielded no edge.
	SkippedLines int
	// Sections is the number of candidate sections the final strategy produced,
	// including ones later dropped for having no edges.
	Sections int
	// Strategy is the segmenter whose output was returned.
	Strategy Strategy
	// Fallback is true when StrategyAuto replaced the boundary parse.
	Fallback bool
}

// MarshalLogObject lets a Report be logged with zap.Object.
func (r *Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("lines", r.Lines)
	enc.AddInt("graphs", r.Graphs)
	enc.AddInt("edges", r.Edges)
	enc.AddInt("skipped_lines", r.SkippedLines)
	enc.AddInt("sections", r.Sections)
	enc.AddString("strategy", string(r.Strategy))
	enc.AddBool("fallback", r.Fallback)

	return nil
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithStrategy selects the segmentation strategy (default StrategyAuto).
func WithStrategy(s Strategy) Option {
	return func(in *Ingestor) { in.strategy = s }
}

// WithExpectedGraphs sets the expected record count used by fixed-chunk
// segmentation. Zero disables fixed-chunk in the auto fallback chain.
func WithExpectedGraphs(n int) Option {
	return func(in *Ingestor) {
		if n < 0 {
			in.err = fmt.Errorf("%w: expected graphs cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		in.expected = n
	}
}

// WithSeparator sets the literal token used by separator segmentation
// (default "---").
func WithSeparator(sep string) Option {
	return func(in *Ingestor) {
		if sep == "" {
			in.err = fmt.Errorf("%w: empty separator", ErrOptionViolation)
			return
		}
		in.separator = sep
	}
}

// WithRecoveryMinLines sets how many input lines a single-graph boundary
// parse must exceed before auto recovery kicks in (default 100).
func WithRecoveryMinLines(n int) Option {
	return func(in *Ingestor) {
		if n < 0 {
			in.err = fmt.Errorf("%w: recovery threshold cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		in.recoveryMin = n
	}
}

// WithLogger routes parse summaries and fallback warnings to l.
func WithLogger(l *zap.Logger) Option {
	return func(in *Ingestor) {
		if l != nil {
			in.log = l
		}
	}
}
