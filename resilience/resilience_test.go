package resilience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/pathfind"
	"github.com/katalvlaran/roadnet/roadgraph"
)

func build(rows ...string) (*grid.World, *roadgraph.Graph) {
	w := grid.MustParseLayout(rows, 3)
	return w, roadgraph.Build(w)
}

// edgeBetween returns the id of the edge joining nodes a and b, or -1.
func edgeBetween(g *roadgraph.Graph, a, b int) int {
	for i, e := range g.Edges {
		if (e.A == a && e.B == b) || (e.A == b && e.B == a) {
			return i
		}
	}
	return -1
}

func TestCompute_Tree(t *testing.T) {
	_, g := build(
		"#####",
		"..#..",
		"..###",
	)
	require.Len(t, g.Nodes, 5)
	require.Len(t, g.Edges, 4)

	r := Compute(g)
	assert.Equal(t, []int{0, 1, 2, 3}, r.BridgeEdges, "every tree edge is a bridge")
	assert.Equal(t, []int{1, 3}, r.ArticulationNodes, "junction and corner")
	assert.Equal(t, []int{5}, r.ComponentSize)
	for ei := range g.Edges {
		assert.Equal(t, 5, r.BridgeSubtreeNodes[ei]+r.BridgeOtherNodes[ei], "edge %d", ei)
	}
}

func TestCompute_RingWithSpur(t *testing.T) {
	_, g := build(
		"###..",
		"#.###",
		"###..",
	)
	require.Len(t, g.Nodes, 6)
	spur := edgeBetween(g, 2, 3)
	require.GreaterOrEqual(t, spur, 0)

	r := Compute(g)
	assert.Equal(t, []int{spur}, r.BridgeEdges)
	assert.Equal(t, []int{2}, r.ArticulationNodes)
	assert.Equal(t, 1, r.BridgeSubtreeNodes[spur])
	assert.Equal(t, 5, r.BridgeOtherNodes[spur])

	cut, ok := BridgeCut(g, spur)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 4, 5}, cut.SideA)
	assert.Equal(t, []int{3}, cut.SideB)

	_, ok = BridgeCut(g, edgeBetween(g, 0, 1))
	assert.False(t, ok, "ring edges do not cut")
	_, ok = BridgeCut(g, 99)
	assert.False(t, ok)

	assert.Equal(t, 2, EdgeConnectivity(g, 0, 5))
	assert.Equal(t, 1, EdgeConnectivity(g, 0, 3))
	assert.Zero(t, EdgeConnectivity(g, 0, 0))
	assert.Zero(t, EdgeConnectivity(g, 0, 42))
}

func TestCompute_Components(t *testing.T) {
	_, g := build("##.##")
	r := Compute(g)
	assert.Equal(t, []int{2, 2}, r.ComponentSize)
	assert.Equal(t, []int{0, 0, 1, 1}, r.NodeComponent)
	assert.Empty(t, r.ArticulationNodes)
	assert.Zero(t, EdgeConnectivity(g, 0, 2))

	assert.Empty(t, Compute(&roadgraph.Graph{}).BridgeEdges)
	assert.Empty(t, Compute(nil).ComponentSize)
}

func TestBlockedMovesForEdge(t *testing.T) {
	_, g := build(
		"###..",
		"#.###",
		"###..",
	)
	spur := edgeBetween(g, 2, 3)
	got := BlockedMovesForEdge(g, spur, 5)
	assert.Equal(t, []uint64{
		pathfind.MoveKey(7, 8),
		pathfind.MoveKey(8, 7),
		pathfind.MoveKey(8, 9),
		pathfind.MoveKey(9, 8),
	}, got)
	assert.Nil(t, BlockedMovesForEdge(g, -1, 5))
	assert.Nil(t, BlockedMovesForEdge(g, spur, 0))
}

func TestSuggestBypasses(t *testing.T) {
	w, g := build(
		"#####",
		".....",
		".....",
	)
	r := Compute(g)
	require.Equal(t, []int{0}, r.BridgeEdges)

	got := SuggestBypasses(w, g, r, DefaultBypassConfig(), nil)
	require.Len(t, got, 1)
	b := got[0]
	assert.Equal(t, 0, b.BridgeEdge)
	assert.Equal(t, 1, b.CutSize)
	assert.Equal(t, 5, b.NewTiles)
	assert.Equal(t, 5, b.PrimaryCost)
	assert.Equal(t, 5, b.MoneyCost)
	assert.Equal(t, 6, b.Steps)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, b.Path[0])
	assert.Equal(t, grid.Point{X: 4, Y: 0}, b.Path[len(b.Path)-1])

	cfg := DefaultBypassConfig()
	cfg.MaxPrimaryCost = 3
	assert.Empty(t, SuggestBypasses(w, g, r, cfg, nil), "too expensive")
	cfg.Top = 0
	assert.Empty(t, SuggestBypasses(w, g, r, cfg, nil))
}

func TestSampleSide(t *testing.T) {
	_, g := build(
		"#.#.#.#",
		".......",
		"#.#.#.#",
	)
	side := []int{0, 1, 2, 3, 4, 5, 6, 7}
	pts := sampleSide(g, side, 5, 3, 77)
	require.Len(t, pts, 3)
	assert.Equal(t, g.Nodes[5].Pos, pts[0])
	assert.Equal(t, pts, sampleSide(g, side, 5, 3, 77), "deterministic")
	assert.Len(t, sampleSide(g, side, -1, 100, 1), 8)
}
