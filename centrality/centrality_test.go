package centrality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

func star() (*grid.World, *roadgraph.Graph) {
	w := grid.MustParseLayout([]string{
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
	}, 1)
	return w, roadgraph.Build(w)
}

func TestCompute_Star(t *testing.T) {
	w, g := star()
	r := Compute(g, w, DefaultConfig())

	require.Equal(t, 5, r.Nodes)
	require.Equal(t, 5, r.SourcesUsed)
	const center = 2
	for i := 0; i < 5; i++ {
		if i == center {
			assert.InDelta(t, 6.0, r.NodeBetweenness[i], 1e-9)
			assert.InDelta(t, 1.0, r.NodeBetweennessNorm[i], 1e-9)
			continue
		}
		assert.Zero(t, r.NodeBetweenness[i], "leaf %d", i)
	}
	for ei := range g.Edges {
		assert.InDelta(t, 4.0, r.EdgeBetweenness[ei], 1e-9, "edge %d", ei)
		assert.InDelta(t, 0.4, r.EdgeBetweennessNorm[ei], 1e-9, "edge %d", ei)
	}

	assert.InDelta(t, 0.5, r.NodeCloseness[center], 1e-9)
	assert.InDelta(t, 2.0, r.NodeHarmonicCloseness[center], 1e-9)
	assert.InDelta(t, 4.0/14.0, r.NodeCloseness[0], 1e-9)
	assert.InDelta(t, 1.25, r.NodeHarmonicCloseness[0], 1e-9)
}

func TestCompute_Directed(t *testing.T) {
	w, g := star()
	cfg := DefaultConfig()
	cfg.Undirected = false
	r := Compute(g, w, cfg)
	assert.InDelta(t, 12.0, r.NodeBetweenness[2], 1e-9)
	assert.InDelta(t, 1.0, r.NodeBetweennessNorm[2], 1e-9)
}

func TestCompute_SquareSplitsPaths(t *testing.T) {
	w := grid.MustParseLayout([]string{
		"###",
		"#.#",
		"###",
	}, 1)
	g := roadgraph.Build(w)
	r := Compute(g, w, DefaultConfig())

	for i := range g.Nodes {
		assert.InDelta(t, 0.5, r.NodeBetweenness[i], 1e-9, "node %d", i)
		assert.InDelta(t, 1.0/6.0, r.NodeBetweennessNorm[i], 1e-9, "node %d", i)
	}
}

func TestCompute_TravelTimeWeights(t *testing.T) {
	w, g := star()
	cfg := DefaultConfig()
	cfg.Weight = WeightTravelTime
	r := Compute(g, w, cfg)
	assert.InDelta(t, 6.0, r.NodeBetweenness[2], 1e-9)
	assert.InDelta(t, 0.0005, r.NodeCloseness[2], 1e-12, "4 leaves at 2000 milli each")

	r = Compute(g, nil, cfg)
	assert.InDelta(t, 0.0005, r.NodeCloseness[2], 1e-12, "falls back to 1000 per step")
}

func TestCompute_Sampling(t *testing.T) {
	w, g := star()
	cfg := DefaultConfig()
	cfg.MaxSources = 2
	r := Compute(g, w, cfg)

	assert.Equal(t, 2, r.SourcesUsed)
	assert.Nil(t, r.NodeCloseness)
	assert.Nil(t, r.NodeHarmonicCloseness)
	assert.Len(t, r.NodeBetweenness, 5)

	again := Compute(g, w, cfg)
	assert.Equal(t, r, again, "sampling is deterministic")

	assert.Equal(t, []int{0, 1, 2, 3}, pickSources(4, 0))
	picked := pickSources(10, 3)
	assert.Len(t, picked, 3)
	assert.IsIncreasing(t, picked)
}

func TestCompute_Degenerate(t *testing.T) {
	r := Compute(nil, nil, DefaultConfig())
	assert.Zero(t, r.Nodes)

	g := roadgraph.Build(grid.MustParseLayout([]string{"#.#"}, 1))
	r = Compute(g, nil, DefaultConfig())
	assert.Equal(t, 2, r.Nodes)
	assert.Zero(t, r.Edges)
	assert.Nil(t, r.NodeBetweenness)
}
