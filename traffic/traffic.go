package traffic

import (
	"math"
	"sort"

	"github.com/katalvlaran/roadnet/flowfield"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/pathfind"
	"github.com/katalvlaran/roadnet/zoneaccess"
)

// maxExtraCostMilli bounds the congestion penalty of one tile.
const maxExtraCostMilli = 200000

// origin is a residence's access road and its commuter count.
type origin struct {
	road, commuters int
}

// sample is one (value, weight) observation for weighted percentiles.
type sample struct {
	value, weight int
}

// SatAddU16 adds v to cur, saturating at 65535.
func SatAddU16(cur uint16, v uint32) uint16 {
	s := uint32(cur) + v
	if s > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(s)
}

// Commuters returns how many of occupants commute at the given share:
// floor(occupants×share) plus one more when a hash of (x, y, seed) falls
// below the fractional part. The result never exceeds occupants.
func Commuters(occupants uint16, share float32, x, y int, seed uint64) int {
	desired := float32(occupants) * share
	c := int(math.Floor(float64(desired)))
	frac := desired - float32(c)
	if frac > 0 && c < int(occupants) {
		h := grid.Hash32(grid.SeedMix32(seed) ^ uint32(x)*73856093 ^ uint32(y)*19349663)
		u := float32(h&0xFFFFFF) / 16777216.0
		if u < frac {
			c++
		}
	}

	return min(max(c, 0), int(occupants))
}

// Compute assigns commuters over the road tiles of w. employedShare (clamped
// to [0,1]) is the fraction of residents who commute.
//
// Steps:
//  1. Resolve the outside-connection mask and zone access (options first).
//  2. Job sources: every road next to a reachable commercial/industrial tile,
//     or its propagated access road for interior tiles.
//  3. Origins: each residential tile with occupants and access.
//  4. One pass (free-flow, cfg.Metric) or clamp(iterations, 2, 16) penalised
//     passes ranked by travel time.
//  5. Percentiles and the congestion metric.
func Compute(w *grid.World, cfg Config, employedShare float32, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var r Result
	if w == nil || w.Len() == 0 {
		return r
	}
	n := w.Len()
	r.RoadTraffic = make([]uint16, n)
	employedShare = min(max(employedShare, 0), 1)
	if employedShare <= 0 {
		return r
	}

	// 1) Masks.
	var roadToEdge []uint8
	if cfg.RequireOutsideConnection {
		if len(o.roadToEdge) == n {
			roadToEdge = o.roadToEdge
		} else {
			roadToEdge = pathfind.RoadsConnectedToEdge(w)
		}
	}
	za := o.zoneAccess
	if !za.Usable(w.Width(), w.Height()) {
		za = zoneaccess.Build(w, roadToEdge)
	}

	// 2) Job sources and 3) origins.
	sources := jobSources(w, cfg, roadToEdge, za)
	origins := make([]origin, 0, n/16)
	for idx := 0; idx < n; idx++ {
		t := w.Tile(idx)
		if t.Overlay != grid.Residential || t.Occupants == 0 || za.RoadIdx[idx] < 0 {
			continue
		}
		x, y := w.Coordinate(idx)
		road := za.RoadIdx[idx]
		if p, ok := pathfind.PickAdjacentRoadTile(w, roadToEdge, x, y); ok {
			road = w.Index(p.X, p.Y)
		}
		c := Commuters(t.Occupants, employedShare, x, y, w.Seed())
		if c <= 0 {
			continue
		}
		origins = append(origins, origin{road: road, commuters: c})
		r.TotalCommuters += c
	}
	if r.TotalCommuters == 0 {
		return r
	}
	if len(sources) == 0 {
		r.UnreachableCommuters = r.TotalCommuters
		return r
	}

	// 4) Passes.
	useCongestion := cfg.CongestionAwareRouting && cfg.CongestionIterations > 1 &&
		cfg.CongestionAlpha > 0 && cfg.CongestionBeta > 0
	passes := 1
	if useCongestion {
		passes = min(max(cfg.CongestionIterations, 2), 16)
	}
	r.UsedCongestionAwareRouting = useCongestion
	r.RoutingPasses = passes

	// Penalties only bite on the travel-time key; Metric applies to free flow.
	fcfg := flowfield.Config{RequireOutsideConnection: cfg.RequireOutsideConnection, Metric: cfg.Metric}
	if useCongestion {
		fcfg.Metric = flowfield.MetricTravelTime
	}
	load := make([]uint32, n)
	var steps, times []sample
	var sumSteps, sumCost float64
	for pass := 0; pass < passes; pass++ {
		fopts := []flowfield.Option{flowfield.WithRoadToEdge(roadToEdge)}
		if useCongestion {
			fopts = append(fopts, flowfield.WithExtraCostMilli(CongestionExtraCostMilli(w, cfg, load)))
		}
		field := flowfield.Build(w, sources, fcfg, fopts...)

		for _, og := range origins {
			chunk := og.commuters*(pass+1)/passes - og.commuters*pass/passes
			if chunk <= 0 {
				continue
			}
			if !field.Reached(og.road) {
				r.UnreachableCommuters += chunk
				continue
			}
			d, c := field.Dist[og.road], field.Cost[og.road]
			r.ReachableCommuters += chunk
			sumSteps += float64(d) * float64(chunk)
			sumCost += float64(c) * float64(chunk)
			steps = append(steps, sample{d, chunk})
			times = append(times, sample{c, chunk})
			for _, ti := range field.Trace(og.road) {
				r.RoadTraffic[ti] = SatAddU16(r.RoadTraffic[ti], uint32(chunk))
				load[ti] += uint32(chunk)
			}
		}
	}

	// 5) Aggregates.
	for _, v := range r.RoadTraffic {
		r.MaxTraffic = max(r.MaxTraffic, int(v))
	}
	if r.ReachableCommuters > 0 {
		reach := float64(r.ReachableCommuters)
		r.AvgCommute = sumSteps / reach
		r.AvgCommuteTime = sumCost / reach / 1000
		r.P95Commute = float64(percentile95(steps, r.ReachableCommuters))
		r.P95CommuteTime = float64(percentile95(times, r.ReachableCommuters)) / 1000
	}
	r.Congestion, r.CongestedRoadTiles = congestion(w, cfg, r.RoadTraffic)

	return r
}

// jobSources lists job access roads in row-major job order, deduplicated.
func jobSources(w *grid.World, cfg Config, roadToEdge []uint8, za *zoneaccess.Map) []int {
	n := w.Len()
	isSource := make([]bool, n)
	var sources []int
	add := func(idx int) {
		if !isSource[idx] {
			isSource[idx] = true
			sources = append(sources, idx)
		}
	}
	for idx := 0; idx < n; idx++ {
		ov := w.Tile(idx).Overlay
		if (ov != grid.Commercial || !cfg.IncludeCommercialJobs) && (ov != grid.Industrial || !cfg.IncludeIndustrialJobs) {
			continue
		}
		access := za.RoadIdx[idx]
		if access < 0 {
			continue
		}
		x, y := w.Coordinate(idx)
		adjacent := false
		for _, d := range grid.Conn4 {
			rx, ry := x+d[0], y+d[1]
			if !w.IsRoad(rx, ry) {
				continue
			}
			ri := w.Index(rx, ry)
			if cfg.RequireOutsideConnection && (len(roadToEdge) != n || roadToEdge[ri] == 0) {
				continue
			}
			add(ri)
			adjacent = true
		}
		if !adjacent {
			add(access)
		}
	}

	return sources
}

// CongestionExtraCostMilli returns the per-tile entry penalty for the given
// load: round(baseTime × α × min(load/cap, clamp)^β), capped at 200000.
// cap = max(1, capacity(level) × CongestionCapacityScale).
func CongestionExtraCostMilli(w *grid.World, cfg Config, load []uint32) []int {
	n := w.Len()
	out := make([]int, n)
	if len(load) != n {
		return out
	}
	alpha, beta := max(cfg.CongestionAlpha, 0), max(cfg.CongestionBeta, 0)
	if alpha <= 0 || beta <= 0 {
		return out
	}
	capScale := max(cfg.CongestionCapacityScale, 0.01)
	ratioClamp := min(max(cfg.CongestionRatioClamp, 0.5), 10)
	base := cfg
	base.RoadTileCapacity = max(1, cfg.RoadTileCapacity)

	for i, v := range load {
		if v == 0 {
			continue
		}
		t := w.Tile(i)
		if t.Overlay != grid.Road {
			continue
		}
		capacity := max(1, float64(max(1, base.capacity(int(t.Level))))*capScale)
		ratio := min(float64(v)/capacity, ratioClamp)
		mult := alpha * math.Pow(ratio, beta)
		if mult <= 0 {
			continue
		}
		extra := int(math.Round(float64(grid.TileTravelTimeMilli(t)) * mult))
		out[i] = min(max(extra, 0), maxExtraCostMilli)
	}

	return out
}

// percentile95 returns the weighted 95th percentile of samples.
func percentile95(samples []sample, total int) int {
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].value < samples[j].value })
	target := int(math.Ceil(float64(total) * 0.95))
	acc, p := 0, 0
	for _, s := range samples {
		acc += s.weight
		p = s.value
		if acc >= target {
			break
		}
	}

	return p
}

// congestion returns excess/total traffic and the number of tiles over
// capacity. A non-positive capacity treats all traffic as excess.
func congestion(w *grid.World, cfg Config, traffic []uint16) (float64, int) {
	var total, over uint64
	tiles := 0
	for i, v := range traffic {
		if v == 0 {
			continue
		}
		total += uint64(v)
		capacity := 0
		if cfg.RoadTileCapacity > 0 {
			capacity = max(0, cfg.capacity(int(w.Tile(i).Level)))
		}
		if int(v) > capacity {
			over += uint64(int(v) - capacity)
			tiles++
		}
	}
	if total == 0 {
		return 0, tiles
	}

	return min(max(float64(over)/float64(total), 0), 1), tiles
}
