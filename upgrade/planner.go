package upgrade

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

// evaluation is the incremental cost and benefit of one upgrade.
type evaluation struct {
	cost          int
	timeSaved     uint64
	excessReduced uint64
}

type candidate struct {
	edge, a, b, level int
	ratio, benefit    float64
	cost              int
	tiles             []grid.Point
}

// planner carries the per-call constants.
type planner struct {
	w       *grid.World
	flow    []uint32
	cfg     Config
	baseCap int
}

func (p *planner) capacity(level int) int {
	if !p.cfg.UseRoadLevelCapacity {
		return p.baseCap
	}
	return max(1, grid.RoadCapacityForLevel(p.baseCap, grid.ClampRoadLevel(level)))
}

func travelTime(t *grid.Tile, level int) int {
	if t.Terrain == grid.Water {
		return grid.RoadBridgeTravelTimeMilliForLevel(level)
	}
	return grid.RoadTravelTimeMilliForLevel(level)
}

func (p *planner) flowAt(idx int) int {
	return int(min(p.flow[idx], math.MaxInt32))
}

// evaluate prices raising tiles to target. planned, when non-nil, overrides
// the current level of already planned tiles.
func (p *planner) evaluate(tiles []grid.Point, target int, planned []uint8) evaluation {
	var r evaluation
	target = grid.ClampRoadLevel(target)
	width := p.w.Width()
	for _, pt := range tiles {
		if !p.w.InBounds(pt.X, pt.Y) {
			continue
		}
		t := p.w.At(pt.X, pt.Y)
		if t.Overlay != grid.Road {
			continue
		}
		idx := pt.Y*width + pt.X
		base := grid.ClampRoadLevel(int(t.Level))
		if planned != nil && planned[idx] != 0 {
			base = max(base, grid.ClampRoadLevel(int(planned[idx])))
		}
		if base >= target {
			continue
		}
		r.cost += grid.RoadPlacementCost(base, target, true, t.Terrain == grid.Water)

		v := p.flowAt(idx)
		oldExcess := max(0, v-p.capacity(base))
		newExcess := max(0, v-p.capacity(target))
		r.excessReduced += uint64(max(0, oldExcess-newExcess))
		if dt := travelTime(t, base) - travelTime(t, target); dt > 0 && v > 0 {
			r.timeSaved += uint64(v) * uint64(dt)
		}
	}

	return r
}

func (p *planner) benefit(e evaluation) float64 {
	switch p.cfg.Objective {
	case Time:
		return float64(e.timeSaved)
	case Hybrid:
		return p.cfg.HybridExcessWeight*float64(e.excessReduced) + p.cfg.HybridTimeWeight*float64(e.timeSaved)
	}
	return float64(e.excessReduced)
}

// utilisation is flow/capacity of a road tile at its current level.
func (p *planner) utilisation(pt grid.Point) float64 {
	if !p.w.InBounds(pt.X, pt.Y) || !p.w.IsRoad(pt.X, pt.Y) {
		return 0
	}
	v := min(p.flow[p.w.Index(pt.X, pt.Y)], 1_000_000)
	return float64(v) / float64(p.capacity(int(p.w.At(pt.X, pt.Y).Level)))
}

// candidateTiles returns the interior of e, or all of it when endpoints are
// enabled or there is no interior.
func (p *planner) candidateTiles(e roadgraph.Edge) []grid.Point {
	if p.cfg.UpgradeEndpoints || len(e.Tiles) <= 2 {
		return e.Tiles
	}
	return e.Tiles[1 : len(e.Tiles)-1]
}

// PlanUpgrades selects road upgrades for g over the per-tile flow map
// (row-major, one entry per tile). A flow map of the wrong size, or an empty
// world, yields an empty plan.
func PlanUpgrades(w *grid.World, g *roadgraph.Graph, flow []uint32, cfg Config) (plan Plan) {
	start := time.Now()
	plan.Config = cfg
	defer func() { plan.Runtime = time.Since(start) }()
	if w == nil || w.Len() == 0 {
		return plan
	}
	plan.W, plan.H = w.Width(), w.Height()
	plan.TileTargetLevel = make([]uint8, w.Len())
	if len(flow) != w.Len() || g == nil {
		return plan
	}
	p := &planner{w: w, flow: flow, cfg: cfg, baseCap: max(1, cfg.BaseTileCapacity)}
	maxLevel := grid.ClampRoadLevel(cfg.MaxTargetLevel)

	// 1) Candidates.
	var cands []candidate
	for ei, e := range g.Edges {
		tiles := p.candidateTiles(e)
		if len(tiles) == 0 {
			continue
		}
		busiest := 0.0
		for _, pt := range tiles {
			busiest = max(busiest, p.utilisation(pt))
		}
		if cfg.MinUtilConsider > 0 && busiest < cfg.MinUtilConsider {
			continue
		}
		for lvl := 2; lvl <= maxLevel; lvl++ {
			ev := p.evaluate(tiles, lvl, nil)
			if ev.cost <= 0 {
				continue
			}
			b := p.benefit(ev)
			if b <= 0 {
				continue
			}
			cands = append(cands, candidate{
				edge: ei, a: e.A, b: e.B, level: lvl,
				ratio: b / float64(max(1, ev.cost)), benefit: b, cost: ev.cost,
				tiles: tiles,
			})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.ratio != b.ratio {
			return a.ratio > b.ratio
		}
		if a.benefit != b.benefit {
			return a.benefit > b.benefit
		}
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		if a.edge != b.edge {
			return a.edge < b.edge
		}
		return a.level < b.level
	})

	// 2) Greedy selection.
	chosen := make([]bool, len(g.Edges))
	for _, c := range cands {
		if chosen[c.edge] {
			continue
		}
		inc := p.evaluate(c.tiles, c.level, plan.TileTargetLevel)
		if inc.cost <= 0 || p.benefit(inc) <= 0 {
			continue
		}
		if cfg.Budget >= 0 && plan.TotalCost+inc.cost > cfg.Budget {
			continue
		}
		chosen[c.edge] = true
		plan.TotalCost += inc.cost
		plan.TotalTimeSaved += inc.timeSaved
		plan.TotalExcessReduced += inc.excessReduced
		for _, pt := range c.tiles {
			if w.InBounds(pt.X, pt.Y) {
				idx := w.Index(pt.X, pt.Y)
				plan.TileTargetLevel[idx] = max(plan.TileTargetLevel[idx], uint8(c.level))
			}
		}
		plan.Edges = append(plan.Edges, EdgeUpgrade{
			EdgeIndex: c.edge, A: c.a, B: c.b, TargetLevel: c.level,
			Cost: inc.cost, TimeSaved: inc.timeSaved, ExcessReduced: inc.excessReduced,
			TileCount: len(c.tiles),
		})
	}
	sort.Slice(plan.Edges, func(i, j int) bool {
		if plan.Edges[i].EdgeIndex != plan.Edges[j].EdgeIndex {
			return plan.Edges[i].EdgeIndex < plan.Edges[j].EdgeIndex
		}
		return plan.Edges[i].TargetLevel < plan.Edges[j].TargetLevel
	})

	return plan
}

// Apply raises every road tile with a planned level to at least that level
// and recomputes the road masks. Non-road tiles are left alone and no tile
// is ever downgraded.
func Apply(w *grid.World, plan Plan) error {
	if w == nil {
		return fmt.Errorf("%w: nil world", ErrDimensionMismatch)
	}
	if plan.W != w.Width() || plan.H != w.Height() || len(plan.TileTargetLevel) != w.Len() {
		return fmt.Errorf("%w: plan %dx%d (%d tiles), world %dx%d",
			ErrDimensionMismatch, plan.W, plan.H, len(plan.TileTargetLevel), w.Width(), w.Height())
	}
	for idx, target := range plan.TileTargetLevel {
		if target == 0 {
			continue
		}
		x, y := w.Coordinate(idx)
		t := w.At(x, y)
		if t.Overlay != grid.Road {
			continue
		}
		level := max(grid.ClampRoadLevel(int(t.Level)), grid.ClampRoadLevel(int(target)))
		t.Level = uint8(level)
	}
	w.RecomputeRoadMasks()

	return nil
}
