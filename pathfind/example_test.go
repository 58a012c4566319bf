package pathfind_test

import (
	"fmt"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/pathfind"
)

////////////////////////////////////////////////////////////////////////////////
// Example: RoadBuildPath
////////////////////////////////////////////////////////////////////////////////

// ExampleRoadBuildPath plans a new street across an empty 4×4 map.
// Scenario:
//
//   - Every tile is free land and costs 1 to build.
//   - Every monotone staircase from (0,0) to (3,3) costs 7.
//   - The search prefers the fewest turns among them: a single bend.
//
// Complexity: O(W×H×log(W×H)), Memory: O(W×H)
func ExampleRoadBuildPath() {
	w := grid.MustNew(4, 4, 3)
	path, cost, ok := pathfind.RoadBuildPath(w,
		grid.Point{X: 0, Y: 0}, grid.Point{X: 3, Y: 3}, pathfind.DefaultBuildConfig())

	bends := 0
	for i := 2; i < len(path); i++ {
		dx0, dy0 := path[i-1].X-path[i-2].X, path[i-1].Y-path[i-2].Y
		dx1, dy1 := path[i].X-path[i-1].X, path[i].Y-path[i-1].Y
		if dx0 != dx1 || dy0 != dy1 {
			bends++
		}
	}
	fmt.Printf("found=%v cost=%d tiles=%d turns=%d\n", ok, cost, len(path), bends)

	// Output:
	// found=true cost=7 tiles=7 turns=1
}
