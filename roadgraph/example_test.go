package roadgraph_test

import (
	"fmt"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Build
////////////////////////////////////////////////////////////////////////////////

// ExampleBuild compiles a plus-shaped crossing into a graph.
// Scenario:
//
//   - Four arms of length two meet at the centre tile (2,2).
//   - Arm ends are dead ends, the centre is a junction: five nodes.
//   - Each arm becomes one edge of length 2.
//
// Complexity: O(W×H), Memory: O(W×H)
func ExampleBuild() {
	w := grid.MustParseLayout([]string{
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
	}, 1)
	g := roadgraph.Build(w)

	fmt.Printf("nodes=%d edges=%d\n", len(g.Nodes), len(g.Edges))
	e := g.Edges[0]
	fmt.Printf("edge 0: %d -- %d, length %d, tiles %v\n", e.A, e.B, e.Length, e.Tiles)

	m := roadgraph.ComputeMetrics(g, true)
	fmt.Printf("components=%d totalLength=%d approxDiameter=%d\n",
		m.Components, m.TotalEdgeLength, m.ApproxDiameter)

	// Output:
	// nodes=5 edges=4
	// edge 0: 0 -- 2, length 2, tiles [{2 0} {2 1} {2 2}]
	// components=1 totalLength=8 approxDiameter=4
}
