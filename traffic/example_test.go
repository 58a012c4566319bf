package traffic_test

import (
	"fmt"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/traffic"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Compute
////////////////////////////////////////////////////////////////////////////////

// ExampleCompute routes forty commuters down a single street.
// Scenario:
//
//   - Residential R at (0,0), commercial C at (4,0), street in between.
//   - Every commuter takes the only route, so each road tile carries 40.
//   - A street tile holds 28, so all three tiles are congested by 12.
//
// Complexity: O(W×H×log(W×H)) per routing pass, Memory: O(W×H)
func ExampleCompute() {
	w := grid.MustParseLayout([]string{"R###C"}, 7)
	w.SetOccupants(0, 0, 40)

	cfg := traffic.DefaultConfig()
	cfg.RequireOutsideConnection = false
	r := traffic.Compute(w, cfg, 1)

	fmt.Printf("commuters=%d reachable=%d\n", r.TotalCommuters, r.ReachableCommuters)
	fmt.Printf("maxTraffic=%d congestedTiles=%d congestion=%.2f\n",
		r.MaxTraffic, r.CongestedRoadTiles, r.Congestion)

	// Output:
	// commuters=40 reachable=40
	// maxTraffic=40 congestedTiles=3 congestion=0.30
}
