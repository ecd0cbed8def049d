package features_test

import (
	"testing"

	"github.com/katalvlaran/fcgraph/builder"
	"github.com/katalvlaran/fcgraph/core"
	"github.com/katalvlaran/fcgraph/features"
)

// benchmarkExtract runs Extract on one sampled call hierarchy of n functions.
func benchmarkExtract(b *testing.B, n int) {
	g := builder.MustCallGraph([]builder.BuilderOption{builder.WithSeed(7)}, builder.CallTree(n, 0.1))
	ex := features.NewExtractor()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ex.Extract(g)
	}
}

func BenchmarkExtract_Small(b *testing.B)  { benchmarkExtract(b, 50) }
func BenchmarkExtract_Medium(b *testing.B) { benchmarkExtract(b, 300) }

// BenchmarkExtractAll covers a 100-graph batch of mixed sizes.
func BenchmarkExtractAll(b *testing.B) {
	graphs := make([]*core.Graph, 100)
	for i := range graphs {
		graphs[i] = builder.MustCallGraph([]builder.BuilderOption{builder.WithSeed(int64(i))}, builder.CallTree(20+i, 0.05))
	}
	ex := features.NewExtractor()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ex.ExtractAll(graphs); err != nil {
			b.Fatalf("ExtractAll: %v", err)
		}
	}
}
