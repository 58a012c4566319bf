package pathfind

import (
	"container/heap"
	"slices"

	"github.com/katalvlaran/roadnet/grid"
)

// buildSearch carries the cost model of one build query.
type buildSearch struct {
	w       *grid.World
	cfg     BuildConfig
	level   int
	blocked []uint64
}

func newBuildSearch(w *grid.World, cfg BuildConfig) *buildSearch {
	s := &buildSearch{w: w, cfg: cfg, level: grid.ClampRoadLevel(cfg.TargetLevel)}
	if len(cfg.Blocked) > 0 {
		s.blocked = slices.Clone(cfg.Blocked)
		slices.Sort(s.blocked)
		s.blocked = slices.Compact(s.blocked)
	}

	return s
}

// buildable: inside the grid, overlay None or Road, and land unless bridges
// are allowed. The planner never bulldozes.
func (s *buildSearch) buildable(x, y int) bool {
	if !s.w.InBounds(x, y) {
		return false
	}
	t := s.w.At(x, y)
	if !s.cfg.AllowBridges && t.Terrain == grid.Water {
		return false
	}

	return t.Overlay == grid.None || t.Overlay == grid.Road
}

// tileCost is the primary cost of including (x,y) in the plan.
func (s *buildSearch) tileCost(x, y int) int {
	if !s.w.InBounds(x, y) {
		return inf
	}
	t := s.w.At(x, y)
	if s.cfg.CostModel == CostNewTiles {
		if t.Overlay == grid.Road {
			return 0
		}
		return 1
	}
	bridge := t.Terrain == grid.Water
	if t.Overlay == grid.Road {
		return grid.RoadPlacementCost(int(t.Level), s.level, true, bridge)
	}

	return grid.RoadPlacementCost(1, s.level, false, bridge)
}

// slope is the rounded height penalty of moving from (x0,y0) to (x1,y1).
func (s *buildSearch) slope(x0, y0, x1, y1 int) int {
	if s.cfg.SlopeCost <= 0 || !s.w.InBounds(x0, y0) || !s.w.InBounds(x1, y1) {
		return 0
	}
	from, to := s.w.At(x0, y0), s.w.At(x1, y1)
	if !s.cfg.SlopeOnRoads && to.Overlay == grid.Road {
		return 0
	}
	dh := to.Height - from.Height
	if dh < 0 {
		dh = -dh
	}
	pen := int(dh*float32(s.cfg.SlopeCost) + 0.5)

	return min(max(pen, 0), inf/8)
}

func (s *buildSearch) isBlocked(from, to int) bool {
	if len(s.blocked) == 0 {
		return false
	}
	_, found := slices.BinarySearch(s.blocked, MoveKey(from, to))

	return found
}

// primaryCost re-prices a finished path: every tile plus every move's slope.
func (s *buildSearch) primaryCost(path []grid.Point) int {
	cost := 0
	for i, p := range path {
		if c := s.tileCost(p.X, p.Y); c < inf {
			cost += c
		}
		if i > 0 {
			q := path[i-1]
			cost += s.slope(q.X, q.Y, p.X, p.Y)
		}
	}

	return cost
}

func (s *buildSearch) overBudget(cost int) bool {
	return s.cfg.MaxPrimaryCost >= 0 && cost > s.cfg.MaxPrimaryCost
}

// RoadBuildPath returns the cheapest tile route to build between start and
// goal under cfg. cost is the primary cost, including the start tile.
// See RoadBuildPathBetweenSets for the search order.
func RoadBuildPath(w *grid.World, start, goal grid.Point, cfg BuildConfig) ([]grid.Point, int, bool) {
	return RoadBuildPathBetweenSets(w, []grid.Point{start}, []grid.Point{goal}, cfg)
}

// RoadBuildPathBetweenSets returns the cheapest route to build from any start
// to any goal.
//
// Steps:
//  1. Drop unbuildable tiles, sort and dedupe both sets.
//  2. If a start is also a goal, return the cheapest such tile alone
//     (lowest index on ties).
//  3. Multi-source Dijkstra over (tile, incoming direction) states ranked by
//     (cost, steps, turns, variation, state). Blocked moves are skipped and
//     states above MaxPrimaryCost pruned.
//  4. Rebuild the path from the first goal state popped and re-price it.
func RoadBuildPathBetweenSets(w *grid.World, starts, goals []grid.Point, cfg BuildConfig) ([]grid.Point, int, bool) {
	if w == nil || w.Len() == 0 {
		return nil, 0, false
	}
	s := newBuildSearch(w, cfg)

	// 1) Normalise sets.
	collect := func(ps []grid.Point) []int {
		var out []int
		for _, p := range ps {
			if s.buildable(p.X, p.Y) {
				out = append(out, w.Index(p.X, p.Y))
			}
		}
		slices.Sort(out)
		return slices.Compact(out)
	}
	startIdx, goalIdx := collect(starts), collect(goals)
	if len(startIdx) == 0 || len(goalIdx) == 0 {
		return nil, 0, false
	}
	isGoal := make([]bool, w.Len())
	for _, g := range goalIdx {
		isGoal[g] = true
	}

	// 2) Trivial overlap.
	bestIdx, bestCost := -1, inf
	for _, si := range startIdx {
		if !isGoal[si] {
			continue
		}
		x, y := w.Coordinate(si)
		if c := s.tileCost(x, y); c < bestCost {
			bestIdx, bestCost = si, c
		}
	}
	if bestIdx >= 0 {
		path := []grid.Point{w.PointOf(bestIdx)}
		cost := s.primaryCost(path)
		if s.overBudget(cost) {
			return nil, 0, false
		}
		return path, cost, true
	}

	// 3) Dijkstra over states.
	ns := w.Len() * dirCount
	bestC := make([]int, ns)
	bestS := make([]int, ns)
	bestT := make([]int, ns)
	cameFrom := make([]int, ns)
	for i := 0; i < ns; i++ {
		bestC[i], bestS[i], bestT[i], cameFrom[i] = inf, inf, inf, -1
	}
	better := func(c, st, tu, state int) bool {
		if c != bestC[state] {
			return c < bestC[state]
		}
		if st != bestS[state] {
			return st < bestS[state]
		}
		return tu < bestT[state]
	}
	tie := func(idx int) int { return int(w.Tile(idx).Variation) }

	var open keyPQ
	for _, si := range startIdx {
		x, y := w.Coordinate(si)
		c := s.tileCost(x, y)
		if c >= inf || s.overBudget(c) {
			continue
		}
		state := si*dirCount + dirNone
		if better(c, 0, 0, state) {
			bestC[state], bestS[state], bestT[state] = c, 0, 0
			heap.Push(&open, keyItem{key: [4]int{c, 0, 0, tie(si)}, id: state})
		}
	}

	found := -1
	for open.Len() > 0 {
		cur := heap.Pop(&open).(keyItem)
		c, st, tu := cur.key[0], cur.key[1], cur.key[2]
		if c != bestC[cur.id] || st != bestS[cur.id] || tu != bestT[cur.id] {
			continue
		}
		if s.overBudget(c) {
			continue
		}
		tile, dir := cur.id/dirCount, cur.id%dirCount
		if isGoal[tile] {
			found = cur.id
			break
		}
		cx, cy := w.Coordinate(tile)
		for d, off := range searchDirs {
			nx, ny := cx+off[0], cy+off[1]
			if !s.buildable(nx, ny) {
				continue
			}
			nt := w.Index(nx, ny)
			if s.isBlocked(tile, nt) {
				continue
			}
			step := s.tileCost(nx, ny)
			if step >= inf {
				continue
			}
			nc := c + step + s.slope(cx, cy, nx, ny)
			if s.overBudget(nc) {
				continue
			}
			nst := st + 1
			ntu := tu
			if dir != dirNone && d != dir {
				ntu++
			}
			state := nt*dirCount + d
			if better(nc, nst, ntu, state) {
				bestC[state], bestS[state], bestT[state] = nc, nst, ntu
				cameFrom[state] = cur.id
				heap.Push(&open, keyItem{key: [4]int{nc, nst, ntu, tie(nt)}, id: state})
			}
		}
	}
	if found < 0 {
		return nil, 0, false
	}

	// 4) Rebuild and re-price.
	var path []grid.Point
	for st := found; st != -1; st = cameFrom[st] {
		path = append(path, w.PointOf(st/dirCount))
	}
	slices.Reverse(path)
	cost := s.primaryCost(path)
	if s.overBudget(cost) {
		return nil, 0, false
	}

	return path, cost, true
}
