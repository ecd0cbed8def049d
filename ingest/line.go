// File: line.go
// Role: per-line classification and edge tokenization.
// Determinism:
//   - Pure functions of the input line.

package ingest

import "strings"

var boundaryPrefixes = []string{"#", "graph", "Graph", "t #", "% "}

// IsBoundary reports whether a trimmed line closes the current record.
func IsBoundary(line string) bool {
	for _, p := range boundaryPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}

	return false
}

// ParseLine classifies one corpus line and extracts its edge, if any.
// Surrounding whitespace is ignored. Rules are tried in priority order and a
// rule that does not apply hands the line to the next one:
//
//  1. a line containing a space whose first two fields are all ASCII digits,
//     unless it starts with "v " or "e ";
//  2. "e " records with at least three fields: fields 1 and 2; a shorter
//     "e " record is skipped;
//  3. lines containing "->": the arrow becomes whitespace, first two fields;
//  4. lines containing ',' or '\t': both become whitespace, first two fields.
//
// The returned Edge is zero unless kind.HasEdge().
func ParseLine(line string) (Edge, LineKind) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Edge{}, LineEmpty
	}
	if IsBoundary(line) {
		return Edge{}, LineBoundary
	}

	if strings.Contains(line, " ") && !strings.HasPrefix(line, "v ") && !strings.HasPrefix(line, "e ") {
		if f := strings.Fields(line); len(f) >= 2 && isDigits(f[0]) && isDigits(f[1]) {
			return Edge{From: f[0], To: f[1]}, LineNumeric
		}
	}
	if strings.HasPrefix(line, "e ") {
		if f := strings.Fields(line); len(f) >= 3 {
			return Edge{From: f[1], To: f[2]}, LineEdge
		}
		return Edge{}, LineSkipped
	}
	if strings.Contains(line, "->") {
		if e, ok := firstTwo(strings.ReplaceAll(line, "->", " ")); ok {
			return e, LineArrow
		}
	}
	if strings.ContainsAny(line, ",\t") {
		if e, ok := firstTwo(delimReplacer.Replace(line)); ok {
			return e, LineDelimited
		}
	}

	return Edge{}, LineSkipped
}

var (
	delimReplacer = strings.NewReplacer(",", " ", "\t", " ")
	looseReplacer = strings.NewReplacer("->", " ", ",", " ")
)

// looseEdge is the tokenizer used inside re-segmented chunks: comment and
// empty lines are ignored, arrows and commas become whitespace and any line
// with two fields is an edge.
func looseEdge(line string) (Edge, LineKind) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Edge{}, LineEmpty
	}
	if strings.HasPrefix(line, "#") {
		return Edge{}, LineBoundary
	}
	if e, ok := firstTwo(looseReplacer.Replace(line)); ok {
		return e, LineDelimited
	}

	return Edge{}, LineSkipped
}

func firstTwo(s string) (Edge, bool) {
	f := strings.Fields(s)
	if len(f) < 2 {
		return Edge{}, false
	}

	return Edge{From: f[0], To: f[1]}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
