package roadgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/grid"
)

func TestApproxDiameter_Straight(t *testing.T) {
	g := Build(grid.MustParseLayout([]string{"#####"}, 1))
	d := ApproxDiameter(g)

	assert.Equal(t, 4, d.Distance)
	assert.Equal(t, 1, d.A)
	assert.Equal(t, 0, d.B)
	assert.Equal(t, []int{1, 0}, d.NodePath)
	assert.Equal(t, []int{0}, d.EdgePath)

	pts, ok := ExpandNodePath(g, d.NodePath)
	require.True(t, ok)
	require.Len(t, pts, 5)
	assert.Equal(t, grid.Point{X: 4, Y: 0}, pts[0])
	assert.Equal(t, grid.Point{X: 0, Y: 0}, pts[4])
}

func TestApproxDiameter_LShape(t *testing.T) {
	g := Build(grid.MustParseLayout([]string{
		"#..",
		"###",
	}, 1))
	d := ApproxDiameter(g)

	assert.Equal(t, 3, d.Distance)
	assert.Equal(t, []int{2, 1, 0}, d.NodePath)
	assert.Equal(t, []int{1, 0}, d.EdgePath)

	pts, ok := ExpandNodePath(g, d.NodePath)
	require.True(t, ok)
	assert.Equal(t, []grid.Point{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}, pts)
}

func TestApproxDiameter_Degenerate(t *testing.T) {
	assert.Equal(t, Diameter{}, ApproxDiameter(&Graph{}))

	g := Build(grid.MustParseLayout([]string{"#.#"}, 1))
	d := ApproxDiameter(g)
	assert.Equal(t, 0, d.Distance)
	assert.Equal(t, []int{0}, d.NodePath)
}

func TestExpandNodePath_Invalid(t *testing.T) {
	g := Build(grid.MustParseLayout([]string{"#####"}, 1))
	_, ok := ExpandNodePath(g, []int{0, 7})
	assert.False(t, ok, "unknown node")
	_, ok = ExpandNodePath(g, []int{0, 0})
	assert.False(t, ok, "no edge joins a node to itself here")
	_, ok = ExpandNodePath(g, nil)
	assert.False(t, ok)
}

func TestComputeMetrics(t *testing.T) {
	plus := Build(grid.MustParseLayout([]string{
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
	}, 1))
	m := ComputeMetrics(plus, true)
	assert.Equal(t, 5, m.Nodes)
	assert.Equal(t, 4, m.Edges)
	assert.Equal(t, uint64(8), m.TotalEdgeLength)
	assert.Equal(t, 1, m.Components)
	assert.Equal(t, 5, m.LargestComponentNodes)
	assert.Equal(t, 4, m.LargestComponentEdges)
	assert.InDelta(t, 1.6, m.AvgDegree, 1e-9)
	assert.InDelta(t, 2.0, m.AvgEdgeLength, 1e-9)
	assert.Equal(t, 4, m.ApproxDiameter)

	split := Build(grid.MustParseLayout([]string{"#.###"}, 1))
	m = ComputeMetrics(split, false)
	assert.Equal(t, 3, m.Nodes)
	assert.Equal(t, 2, m.Components)
	assert.Equal(t, 1, m.IsolatedNodes)
	assert.Equal(t, 2, m.LargestComponentNodes)
	assert.Equal(t, 1, m.LargestComponentEdges)
	assert.Zero(t, m.ApproxDiameter)
}

func TestBuildIndexAndWeights(t *testing.T) {
	w := grid.MustParseLayout([]string{"###2"}, 1)
	g := Build(w)
	idx := BuildIndex(w, g)

	assert.Equal(t, 0, idx.NodeAt(0, 0))
	assert.Equal(t, 1, idx.NodeAt(3, 0))
	assert.Equal(t, -1, idx.NodeAt(1, 0))
	e, off := idx.EdgeAt(2, 0)
	assert.Equal(t, 0, e)
	assert.Equal(t, 2, off)
	e, _ = idx.EdgeAt(0, 0)
	assert.Equal(t, -1, e, "node tiles are not edge interiors")

	wt := BuildWeights(w, g)
	require.Len(t, wt.Edge, 1)
	assert.Equal(t, 3, wt.Edge[0].Steps)
	assert.Equal(t, 2893, wt.Edge[0].CostABMilli)
	assert.Equal(t, 3000, wt.Edge[0].CostBAMilli)
}
