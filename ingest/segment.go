// File: segment.go
// Role: segmentation strategies that split corpus content into records.
// Contract:
//   - Segment never fails; unparseable lines are counted in Skipped.
//   - Records with zero edges are dropped but still counted in Sections.

package ingest

import "strings"

// Segmenter splits normalised corpus content ("\n" line endings) into
// records.
type Segmenter interface {
	Strategy() Strategy
	Segment(content string) Segmentation
}

// Segmentation is the output of one Segmenter run.
type Segmentation struct {
	Records  []Record
	Sections int
	Skipped  int
}

// BoundarySegmenter closes a record at every boundary line and parses the
// lines in between with ParseLine.
type BoundarySegmenter struct{}

// Strategy implements Segmenter.
func (BoundarySegmenter) Strategy() Strategy { return StrategyBoundary }

// Segment implements Segmenter.
func (BoundarySegmenter) Segment(content string) Segmentation {
	var (
		out Segmentation
		cur []Edge
	)
	flush := func() {
		if len(cur) > 0 {
			out.Records = append(out.Records, Record{Edges: cur})
			out.Sections++
			cur = nil
		}
	}
	for _, line := range strings.Split(content, "\n") {
		e, kind := ParseLine(line)
		switch {
		case kind == LineBoundary:
			flush()
		case kind.HasEdge():
			cur = append(cur, e)
		case kind == LineSkipped:
			out.Skipped++
		}
	}
	flush()

	return out
}

// BlankLineSegmenter treats every empty line pair ("\n\n") as a record
// separator.
type BlankLineSegmenter struct{}

// Strategy implements Segmenter.
func (BlankLineSegmenter) Strategy() Strategy { return StrategyBlankLine }

// Segment implements Segmenter.
func (BlankLineSegmenter) Segment(content string) Segmentation {
	return looseSections(strings.Split(content, "\n\n"))
}

// SeparatorSegmenter splits on a literal token such as "---".
type SeparatorSegmenter struct {
	Token string
}

// Strategy implements Segmenter.
func (SeparatorSegmenter) Strategy() Strategy { return StrategySeparator }

// Segment implements Segmenter.
func (s SeparatorSegmenter) Segment(content string) Segmentation {
	return looseSections(strings.Split(content, s.Token))
}

// FixedChunkSegmenter cuts the trimmed line sequence into chunks of
// max(1, lines/Expected) lines. The number of records it returns can differ
// from Expected: the last chunk may be short and edgeless chunks are dropped.
type FixedChunkSegmenter struct {
	Expected int
}

// Strategy implements Segmenter.
func (FixedChunkSegmenter) Strategy() Strategy { return StrategyFixedChunk }

// Segment implements Segmenter.
func (s FixedChunkSegmenter) Segment(content string) Segmentation {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	size := 1
	if s.Expected > 0 && len(lines)/s.Expected > 1 {
		size = len(lines) / s.Expected
	}
	sections := make([]string, 0, len(lines)/size+1)
	for i := 0; i < len(lines); i += size {
		end := i + size
		if end > len(lines) {
			end = len(lines)
		}
		sections = append(sections, strings.Join(lines[i:end], "\n"))
	}

	return looseSections(sections)
}

func looseSections(sections []string) Segmentation {
	out := Segmentation{Sections: len(sections)}
	for _, sec := range sections {
		var rec Record
		for _, line := range strings.Split(strings.TrimSpace(sec), "\n") {
			e, kind := looseEdge(line)
			switch {
			case kind.HasEdge():
				rec.Edges = append(rec.Edges, e)
			case kind == LineSkipped:
				out.Skipped++
			}
		}
		if len(rec.Edges) > 0 {
			out.Records = append(out.Records, rec)
		}
	}

	return out
}
