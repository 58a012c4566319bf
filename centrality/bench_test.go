package centrality_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

func latticeGraph(n, step int) (*grid.World, *roadgraph.Graph) {
	rng := rand.New(rand.NewSource(42))
	w := grid.MustNew(n, n, 42)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x%step == 0 || y%step == 0 {
				w.SetRoad(x, y, 1+rng.Intn(3))
			}
		}
	}
	return w, roadgraph.Build(w)
}

// BenchmarkCompute_AllSources measures exact Brandes centrality on a 64×64
// street lattice (256 junctions).
// Complexity: O(V×E×log V)
func BenchmarkCompute_AllSources(b *testing.B) {
	w, g := latticeGraph(64, 4)
	cfg := centrality.DefaultConfig()
	cfg.Weight = centrality.WeightTravelTime

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = centrality.Compute(g, w, cfg)
	}
}

// BenchmarkCompute_Sampled measures 32 sampled sources on a 256×256 lattice.
// Complexity: O(k×E×log V)
func BenchmarkCompute_Sampled(b *testing.B) {
	w, g := latticeGraph(256, 4)
	cfg := centrality.DefaultConfig()
	cfg.MaxSources = 32

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = centrality.Compute(g, w, cfg)
	}
}
