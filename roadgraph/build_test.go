package roadgraph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/grid"
)

func TestBuild_Plus(t *testing.T) {
	w := grid.MustParseLayout([]string{
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
	}, 1)
	g := Build(w)

	require.Len(t, g.Nodes, 5)
	require.Len(t, g.Edges, 4)
	require.Equal(t, grid.Point{X: 2, Y: 2}, g.Nodes[2].Pos, "centre is the third node in row-major order")
	require.Len(t, g.Nodes[2].Edges, 4)
	for i, e := range g.Edges {
		require.Equal(t, 2, e.Length, "edge %d", i)
		require.Len(t, e.Tiles, 3, "edge %d", i)
	}
	require.Equal(t, Edge{A: 0, B: 2, Length: 2, Tiles: []grid.Point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}}, g.Edges[0])
}

func TestBuild_LShape(t *testing.T) {
	w := grid.MustParseLayout([]string{
		"#..",
		"###",
	}, 1)
	g := Build(w)

	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 2)
	require.Equal(t, 1, g.Edges[0].Length)
	require.Equal(t, 2, g.Edges[1].Length)
	require.Equal(t, grid.Point{X: 0, Y: 1}, g.Nodes[1].Pos, "corner must be a node")
}

func TestBuild_Straight(t *testing.T) {
	for n := 2; n <= 7; n++ {
		w := grid.MustNew(n, 1, 0)
		for x := 0; x < n; x++ {
			w.SetRoad(x, 0, 1)
		}
		g := Build(w)
		require.Len(t, g.Nodes, 2, "n=%d", n)
		require.Len(t, g.Edges, 1, "n=%d", n)
		require.Equal(t, n-1, g.Edges[0].Length, "n=%d", n)
	}
}

func TestBuild_RingAndEmpty(t *testing.T) {
	w := grid.MustParseLayout([]string{
		"###",
		"#.#",
		"###",
	}, 1)
	g := Build(w)
	require.Len(t, g.Nodes, 4)
	require.Len(t, g.Edges, 4)
	_, comps := Components(g)
	require.Equal(t, 1, comps)

	empty := Build(grid.MustParseLayout([]string{"...", "..."}, 1))
	require.True(t, empty.Empty())
	require.Empty(t, empty.Edges)
}

// TestBuild_CoverageProperty checks on random road masks that every road tile
// is exactly one node or the interior of exactly one edge, and that every edge
// is a 4-connected chain between its endpoint nodes.
func TestBuild_CoverageProperty(t *testing.T) {
	const width, height = 6, 5
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("roads covered exactly once", prop.ForAll(
		func(roads []bool) bool {
			w := grid.MustNew(width, height, 9)
			for i, r := range roads {
				if r {
					x, y := w.Coordinate(i)
					w.SetRoad(x, y, 1)
				}
			}
			g := Build(w)

			covered := make([]int, w.Len())
			for _, n := range g.Nodes {
				covered[w.Index(n.Pos.X, n.Pos.Y)]++
			}
			for _, e := range g.Edges {
				if e.Length != len(e.Tiles)-1 || len(e.Tiles) < 2 {
					return false
				}
				if e.Tiles[0] != g.Nodes[e.A].Pos || e.Tiles[len(e.Tiles)-1] != g.Nodes[e.B].Pos {
					return false
				}
				for i, p := range e.Tiles {
					if !w.IsRoad(p.X, p.Y) {
						return false
					}
					if i == 0 {
						continue
					}
					if i < len(e.Tiles)-1 {
						covered[w.Index(p.X, p.Y)]++
					}
					q := e.Tiles[i-1]
					if abs(p.X-q.X)+abs(p.Y-q.Y) != 1 {
						return false
					}
				}
			}
			for i, r := range roads {
				if r != (covered[i] == 1) || covered[i] > 1 {
					return false
				}
			}
			again := Build(w)
			return len(again.Nodes) == len(g.Nodes) && len(again.Edges) == len(g.Edges)
		},
		gen.SliceOfN(width*height, gen.Bool()),
	))

	properties.TestingRun(t)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
