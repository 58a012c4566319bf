package flowfield_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/roadnet/flowfield"
	"github.com/katalvlaran/roadnet/grid"
)

// BenchmarkBuild measures a multi-source travel-time field on a 256×256
// street lattice with 64 random road sources.
// Complexity: O(W×H×log(W×H))
func BenchmarkBuild(b *testing.B) {
	const n, step = 256, 4
	rng := rand.New(rand.NewSource(42))
	w := grid.MustNew(n, n, 42)
	var roads []int
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x%step == 0 || y%step == 0 {
				w.SetRoad(x, y, 1+rng.Intn(3))
				roads = append(roads, w.Index(x, y))
			}
		}
	}
	sources := make([]int, 64)
	for i := range sources {
		sources[i] = roads[rng.Intn(len(roads))]
	}
	cfg := flowfield.Config{ComputeOwner: true, Metric: flowfield.MetricTravelTime}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = flowfield.Build(w, sources, cfg)
	}
}
