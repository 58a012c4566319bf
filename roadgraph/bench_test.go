package roadgraph_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

// lattice lays a street every step rows and columns over an n×n map, with a
// deterministic mix of road levels.
func lattice(n, step int) *grid.World {
	rng := rand.New(rand.NewSource(42))
	w := grid.MustNew(n, n, 42)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x%step == 0 || y%step == 0 {
				w.SetRoad(x, y, 1+rng.Intn(3))
			}
		}
	}
	return w
}

// BenchmarkBuild measures graph compilation on a 256×256 street lattice.
// Complexity: O(W×H)
func BenchmarkBuild(b *testing.B) {
	w := lattice(256, 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = roadgraph.Build(w)
	}
}

// BenchmarkAggregateFlow measures folding per-tile flow onto the lattice graph.
// Complexity: O(W×H)
func BenchmarkAggregateFlow(b *testing.B) {
	w := lattice(256, 4)
	g := roadgraph.Build(w)
	rng := rand.New(rand.NewSource(42))
	flow := make([]uint32, w.Len())
	for i := range flow {
		flow[i] = uint32(rng.Intn(120))
	}
	cfg := roadgraph.DefaultFlowConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = roadgraph.AggregateFlow(w, g, flow, cfg)
	}
}
