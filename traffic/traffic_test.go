package traffic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/flowfield"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/zoneaccess"
)

// layout parses rows and sets every residential tile to occupants.
func layout(t *testing.T, rows []string, occupants uint16) *grid.World {
	t.Helper()
	w, err := grid.ParseLayout(rows, 7)
	require.NoError(t, err)
	for i, tile := range w.Tiles() {
		if tile.Overlay == grid.Residential {
			x, y := w.Coordinate(i)
			w.SetOccupants(x, y, occupants)
		}
	}
	return w
}

func freeFlow() Config {
	cfg := DefaultConfig()
	cfg.RequireOutsideConnection = false
	return cfg
}

func TestCompute_PrefersFasterRoads(t *testing.T) {
	w := layout(t, []string{
		".###.",
		"R2.#C",
		".222.",
	}, 10)
	r := Compute(w, freeFlow(), 1)

	require.Equal(t, 10, r.TotalCommuters)
	require.Equal(t, 10, r.ReachableCommuters)
	require.Equal(t, uint16(10), r.RoadTraffic[w.Index(2, 2)], "avenue route carries the flow")
	require.Equal(t, uint16(0), r.RoadTraffic[w.Index(2, 0)])
	require.Equal(t, uint16(10), r.RoadTraffic[w.Index(1, 1)])
	require.Equal(t, uint16(10), r.RoadTraffic[w.Index(3, 1)])
	require.InDelta(t, 4.0, r.AvgCommute, 1e-9)
	require.InDelta(t, 3.572, r.AvgCommuteTime, 1e-9)
	require.False(t, r.UsedCongestionAwareRouting)
	require.Equal(t, 1, r.RoutingPasses)
}

func TestCompute_CongestionMetric(t *testing.T) {
	w := layout(t, []string{"R###C"}, 40)
	r := Compute(w, freeFlow(), 1)

	require.Equal(t, 40, r.MaxTraffic)
	require.Equal(t, 3, r.CongestedRoadTiles)
	require.InDelta(t, 12.0/40.0, r.Congestion, 1e-9)
	require.InDelta(t, 2.0, r.P95Commute, 1e-9)
}

func TestCompute_CongestionAwareSplit(t *testing.T) {
	rows := []string{
		".###.",
		"R#.#C",
		".###.",
	}
	top, bottom := 2, 2+2*5

	w := layout(t, rows, 40)
	free := Compute(w, freeFlow(), 1)
	require.Equal(t, uint16(40), free.RoadTraffic[top])
	require.Equal(t, uint16(0), free.RoadTraffic[bottom])

	cfg := freeFlow()
	cfg.CongestionAwareRouting = true
	cfg.CongestionIterations = 4
	r := Compute(w, cfg, 1)
	require.True(t, r.UsedCongestionAwareRouting)
	require.Equal(t, 4, r.RoutingPasses)
	require.Equal(t, uint16(20), r.RoadTraffic[top])
	require.Equal(t, uint16(20), r.RoadTraffic[bottom])
	require.Equal(t, 40, r.ReachableCommuters)
}

func TestCompute_CongestionAwareSplitEveryMetric(t *testing.T) {
	w := layout(t, []string{
		".###.",
		"R#.#C",
		".###.",
	}, 40)
	top, bottom := 2, 2+2*5

	for _, m := range []flowfield.Metric{flowfield.MetricHops, flowfield.MetricTravelTime, flowfield.MetricSteps} {
		t.Run(m.String(), func(t *testing.T) {
			cfg := freeFlow()
			cfg.Metric = m
			cfg.CongestionAwareRouting = true
			cfg.CongestionIterations = 4
			r := Compute(w, cfg, 1)
			require.True(t, r.UsedCongestionAwareRouting)
			require.Equal(t, uint16(20), r.RoadTraffic[top])
			require.Equal(t, uint16(20), r.RoadTraffic[bottom])
		})
	}
}

func TestCompute_Unreachable(t *testing.T) {
	w := layout(t, []string{
		"R#....",
		".#.#C.",
		"......",
	}, 8)
	r := Compute(w, DefaultConfig(), 1)

	require.Equal(t, 8, r.TotalCommuters)
	require.Equal(t, 8, r.UnreachableCommuters)
	require.Zero(t, r.ReachableCommuters)
	require.Zero(t, r.MaxTraffic)
}

func TestCompute_ZoneAccessOptionIsHonoured(t *testing.T) {
	w := layout(t, []string{"R###C"}, 5)
	stale := zoneaccess.Build(w, nil)
	for i := range stale.RoadIdx {
		stale.RoadIdx[i] = -1
	}
	r := Compute(w, freeFlow(), 1, WithZoneAccess(stale))
	require.Zero(t, r.TotalCommuters)

	require.Equal(t, 5, Compute(w, freeFlow(), 1).TotalCommuters)
}

func TestCompute_NoCommuters(t *testing.T) {
	w := layout(t, []string{"R###C"}, 5)
	r := Compute(w, freeFlow(), 0)
	require.Zero(t, r.TotalCommuters)
	require.Len(t, r.RoadTraffic, w.Len())
}

func TestCommuters_Dither(t *testing.T) {
	for x := 0; x < 8; x++ {
		c := Commuters(3, 0.5, x, 2, 99)
		require.Contains(t, []int{1, 2}, c)
		require.Equal(t, c, Commuters(3, 0.5, x, 2, 99), "deterministic")
	}
	require.Equal(t, 4, Commuters(4, 1, 0, 0, 0))
	require.Equal(t, 0, Commuters(0, 0.7, 1, 1, 1))
}

func TestSatAddU16(t *testing.T) {
	require.Equal(t, uint16(65535), SatAddU16(65530, 10))
	require.Equal(t, uint16(12), SatAddU16(2, 10))
}
