// Package fcgraph classifies malware samples by family from their function
// call graphs.
//
// A run reads a training corpus (many call graphs in one weakly delimited
// text file), its line-aligned family labels and a test corpus, then writes
// one predicted family per test graph.
//
//	ingest/     corpus segmentation and edge-line parsing
//	labels/     label file loading and distribution
//	core/       thread-safe directed Graph holding one call graph
//	bfs/, dfs/  reachability, eccentricity and component discovery
//	centrality/ betweenness, closeness, eigenvector, PageRank, clustering, triads
//	features/   the fixed 21-column feature schema and extractor
//	matrix/     dense row-major matrices and column statistics
//	tree/       CART and second-order regression trees
//	classifier/ random forest and two boosters, CV scoring, the ensemble
//	pipeline/   end-to-end run with atomic predictions output
//	config/, logging/, metrics/  YAML+env settings, zap, Prometheus textfile
//	builder/    deterministic graph fixtures for tests and benchmarks
//
// Degenerate graphs never abort a run: every metric that cannot be computed
// (empty graph, disconnected projection, eigenvector non-convergence) takes
// a documented default and is counted per reason.
//
// Quick start:
//
//	go run ./cmd/fcgclassify -train train.data -labels train.label -test test.data -out predictions.txt
package fcgraph
