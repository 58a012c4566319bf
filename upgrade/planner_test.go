package upgrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

func uniformFlow(w *grid.World, v uint32) []uint32 {
	flow := make([]uint32, w.Len())
	for i := range flow {
		if w.Tile(i).Overlay == grid.Road {
			flow[i] = v
		}
	}
	return flow
}

func line() (*grid.World, *roadgraph.Graph) {
	w := grid.MustParseLayout([]string{"######"}, 5)
	return w, roadgraph.Build(w)
}

func TestPlanUpgrades_LineScenario(t *testing.T) {
	w, g := line()
	plan := PlanUpgrades(w, g, uniformFlow(w, 60), DefaultConfig())

	require.Len(t, plan.Edges, 1)
	assert.Equal(t, EdgeUpgrade{
		EdgeIndex: 0, A: 0, B: 1, TargetLevel: 2,
		Cost: 8, TimeSaved: 25680, ExcessReduced: 88, TileCount: 4,
	}, plan.Edges[0], "the avenue beats the highway on benefit per cost")
	assert.Equal(t, 8, plan.TotalCost)
	assert.Equal(t, uint64(88), plan.TotalExcessReduced)
	assert.Equal(t, []uint8{0, 2, 2, 2, 2, 0}, plan.TileTargetLevel)
	assert.Equal(t, 6, plan.W)
	assert.Equal(t, 1, plan.H)

	before := grid.HashWorld(w)
	require.NoError(t, Apply(w, plan))
	var levels []uint8
	for _, tile := range w.Tiles() {
		levels = append(levels, tile.Level)
	}
	assert.Equal(t, []uint8{1, 2, 2, 2, 2, 1}, levels)
	assert.NotEqual(t, before, grid.HashWorld(w))
}

func TestPlanUpgrades_Objectives(t *testing.T) {
	w, g := line()
	flow := uniformFlow(w, 60)

	cfg := DefaultConfig()
	cfg.Objective = Time
	plan := PlanUpgrades(w, g, flow, cfg)
	require.Len(t, plan.Edges, 1)
	assert.Equal(t, 2, plan.Edges[0].TargetLevel)
	assert.Equal(t, uint64(25680), plan.TotalTimeSaved)

	cfg.Objective = Hybrid
	cfg.HybridTimeWeight = 0
	plan = PlanUpgrades(w, g, flow, cfg)
	require.Len(t, plan.Edges, 1)
	assert.Equal(t, uint64(88), plan.TotalExcessReduced)

	cfg = DefaultConfig()
	cfg.MaxTargetLevel = 3
	cfg.Objective = Congestion
	flow = uniformFlow(w, 100)
	plan = PlanUpgrades(w, g, flow, cfg)
	require.Len(t, plan.Edges, 1)
	// level 2: 4×(72-50)=88 for 8; level 3: 4×(72-28)=176 for 20.
	assert.Equal(t, 2, plan.Edges[0].TargetLevel)
}

func TestPlanUpgrades_Budget(t *testing.T) {
	w, g := line()
	flow := uniformFlow(w, 60)
	for _, tc := range []struct {
		budget int
		edges  int
	}{
		{budget: -1, edges: 1},
		{budget: 0, edges: 0},
		{budget: 7, edges: 0},
		{budget: 8, edges: 1},
	} {
		cfg := DefaultConfig()
		cfg.Budget = tc.budget
		plan := PlanUpgrades(w, g, flow, cfg)
		assert.Len(t, plan.Edges, tc.edges, "budget %d", tc.budget)
		assert.LessOrEqual(t, plan.TotalCost, max(tc.budget, 8), "budget %d", tc.budget)
	}
}

func TestPlanUpgrades_Filters(t *testing.T) {
	w, g := line()

	plan := PlanUpgrades(w, g, uniformFlow(w, 20), DefaultConfig())
	assert.Empty(t, plan.Edges, "under capacity")

	cfg := DefaultConfig()
	cfg.MinUtilConsider = 0
	plan = PlanUpgrades(w, g, uniformFlow(w, 20), cfg)
	assert.Empty(t, plan.Edges, "no excess to remove")

	plan = PlanUpgrades(w, g, []uint32{1, 2}, DefaultConfig())
	assert.Empty(t, plan.Edges)
	assert.Len(t, plan.TileTargetLevel, 6)
}

func TestPlanUpgrades_ShortEdgeUsesEndpoints(t *testing.T) {
	w := grid.MustParseLayout([]string{"##"}, 1)
	g := roadgraph.Build(w)
	plan := PlanUpgrades(w, g, uniformFlow(w, 60), DefaultConfig())
	require.Len(t, plan.Edges, 1)
	assert.Equal(t, 2, plan.Edges[0].TileCount)
	assert.Equal(t, 4, plan.TotalCost)
}

func TestPlanUpgrades_SharedTilesAreChargedOnce(t *testing.T) {
	w := grid.MustParseLayout([]string{
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
	}, 1)
	g := roadgraph.Build(w)
	cfg := DefaultConfig()
	cfg.UpgradeEndpoints = true
	plan := PlanUpgrades(w, g, uniformFlow(w, 60), cfg)

	require.Len(t, plan.Edges, 4)
	assert.Equal(t, 6, plan.Edges[0].Cost, "first edge pays for the junction")
	for _, e := range plan.Edges[1:] {
		assert.Equal(t, 4, e.Cost)
		assert.Equal(t, uint64(44), e.ExcessReduced)
	}
	assert.Equal(t, 18, plan.TotalCost)
	assert.Equal(t, uint64(198), plan.TotalExcessReduced)
}

func TestApply(t *testing.T) {
	w, g := line()
	plan := PlanUpgrades(w, g, uniformFlow(w, 60), DefaultConfig())

	other := grid.MustParseLayout([]string{"#####"}, 5)
	err := Apply(other, plan)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	require.ErrorIs(t, Apply(nil, plan), ErrDimensionMismatch)

	w.SetRoad(2, 0, 3)
	require.NoError(t, Apply(w, plan))
	assert.Equal(t, uint8(3), w.At(2, 0).Level, "never downgrades")
	assert.Equal(t, uint8(2), w.At(1, 0).Level)
}

func TestObjective_String(t *testing.T) {
	assert.Equal(t, "hybrid", Hybrid.String())
	b, err := Time.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "time", string(b))
}
