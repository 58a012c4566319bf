package goods

import (
	"container/heap"
	"math"
	"sort"

	"github.com/katalvlaran/roadnet/flowfield"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/pathfind"
	"github.com/katalvlaran/roadnet/traffic"
	"github.com/katalvlaran/roadnet/zoneaccess"
)

const inf = int(^uint(0)>>1) / 4

// IndustrialSupply is the base output of an industrial tile.
func IndustrialSupply(level int) int { return 12 * min(max(level, 0), 3) }

// CommercialDemand is the base consumption of a commercial tile.
func CommercialDemand(level int) int { return 8 * min(max(level, 0), 3) }

type producer struct {
	road, supply, remaining int
}

type consumer struct {
	x, y, road, demand int
	dist, cost, owner  int
}

// solver carries the per-call state of Compute.
type solver struct {
	w          *grid.World
	cfg        Config
	n          int
	roadToEdge []uint8
	za         *zoneaccess.Map
	out        *Result
	dbg        *Debug

	producers []producer
	byRoad    []int // road idx → producer index, -1 otherwise
	prodField *flowfield.Field
	edgeField *flowfield.Field
	nearest   nearestSearch
}

func (s *solver) traversable(idx int) bool {
	if idx < 0 || idx >= s.n || s.w.Tile(idx).Overlay != grid.Road {
		return false
	}
	if s.cfg.RequireOutsideConnection && s.roadToEdge[idx] == 0 {
		return false
	}
	return true
}

// accessRoad prefers a directly adjacent road over the propagated one.
func (s *solver) accessRoad(idx int) int {
	x, y := s.w.Coordinate(idx)
	if p, ok := pathfind.PickAdjacentRoadTile(s.w, s.roadToEdge, x, y); ok {
		return s.w.Index(p.X, p.Y)
	}
	return s.za.RoadIdx[idx]
}

func (s *solver) addTraffic(tiles []int, amount int) {
	for _, t := range tiles {
		s.out.RoadGoodsTraffic[t] = traffic.SatAddU16(s.out.RoadGoodsTraffic[t], uint32(amount))
	}
}

func scaled(base int, scale float64) int {
	return max(0, int(math.Round(float64(base)*scale)))
}

// Compute runs the goods flow model on w.
//
// Steps:
//  1. Outside-connection mask and zone access (options first).
//  2. Producers: supply merged per access road, in road index order.
//  3. Producer field (travel time, with owners) and edge field.
//  4. Consumers sorted by (field cost, dist, y, x); each is served by its
//     owner, then next-nearest producers with stock, then imports.
//  5. Exports of the remaining supply.
func Compute(w *grid.World, cfg Config, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	out := Result{Satisfaction: 1}
	if w == nil || w.Len() == 0 {
		return out
	}
	n := w.Len()
	out.RoadGoodsTraffic = make([]uint16, n)
	out.CommercialFill = make([]uint8, n)
	for i := range out.CommercialFill {
		out.CommercialFill[i] = 255
	}
	s := &solver{w: w, cfg: cfg, n: n, out: &out, dbg: o.debug}
	if s.dbg != nil {
		s.dbg.reset()
		defer s.dbg.finish()
	}

	// 1) Masks.
	if cfg.RequireOutsideConnection {
		if len(o.roadToEdge) == n {
			s.roadToEdge = o.roadToEdge
		} else {
			s.roadToEdge = pathfind.RoadsConnectedToEdge(w)
		}
	}
	s.za = o.zoneAccess
	if !s.za.Usable(w.Width(), w.Height()) {
		s.za = zoneaccess.Build(w, s.roadToEdge)
	}

	// 2) Producers.
	supplyPerRoad := make([]int, n)
	for idx := 0; idx < n; idx++ {
		t := w.Tile(idx)
		if t.Overlay != grid.Industrial || t.Level == 0 || s.za.RoadIdx[idx] < 0 {
			continue
		}
		road := s.accessRoad(idx)
		if !s.traversable(road) {
			continue
		}
		supply := scaled(IndustrialSupply(int(t.Level)), cfg.SupplyScale)
		if supply <= 0 {
			continue
		}
		supplyPerRoad[road] += supply
		out.GoodsProduced += supply
	}
	s.byRoad = make([]int, n)
	var roads []int
	for idx := 0; idx < n; idx++ {
		s.byRoad[idx] = -1
		if supplyPerRoad[idx] > 0 {
			s.byRoad[idx] = len(s.producers)
			s.producers = append(s.producers, producer{road: idx, supply: supplyPerRoad[idx], remaining: supplyPerRoad[idx]})
			roads = append(roads, idx)
		}
	}

	// 3) Fields.
	fopt := flowfield.WithRoadToEdge(s.roadToEdge)
	s.prodField = flowfield.Build(w, roads, flowfield.Config{
		RequireOutsideConnection: cfg.RequireOutsideConnection,
		ComputeOwner:             true,
		Metric:                   flowfield.MetricTravelTime,
	}, fopt)
	if cfg.AllowImports || cfg.AllowExports {
		s.edgeField = flowfield.Build(w, s.edgeRoads(), flowfield.Config{
			RequireOutsideConnection: cfg.RequireOutsideConnection,
			Metric:                   flowfield.MetricTravelTime,
		}, fopt)
	}
	s.nearest = newNearestSearch(n)

	// 4) Consumers.
	consumers := s.collectConsumers()
	for _, c := range consumers {
		s.serve(c)
	}

	// 5) Exports.
	if cfg.AllowExports && s.edgeField != nil {
		for _, p := range s.producers {
			if p.remaining <= 0 || !s.edgeField.Reached(p.road) {
				continue
			}
			route := s.edgeField.Trace(p.road)
			out.GoodsExported += p.remaining
			s.addTraffic(route, p.remaining)
			s.dbg.add(Export, p.road, route[len(route)-1], p.remaining, s.edgeField.Dist[p.road], s.edgeField.Cost[p.road])
		}
	}

	if out.GoodsDemand > 0 {
		out.Satisfaction = min(max(float64(out.GoodsDelivered)/float64(out.GoodsDemand), 0), 1)
	}
	for _, v := range out.RoadGoodsTraffic {
		out.MaxRoadGoodsTraffic = max(out.MaxRoadGoodsTraffic, int(v))
	}

	return out
}

// edgeRoads lists traversable border roads: top and bottom rows, then the
// left and right columns.
func (s *solver) edgeRoads() []int {
	width, height := s.w.Width(), s.w.Height()
	var out []int
	push := func(x, y int) {
		if i := s.w.Index(x, y); s.traversable(i) {
			out = append(out, i)
		}
	}
	for x := 0; x < width; x++ {
		push(x, 0)
		if height > 1 {
			push(x, height-1)
		}
	}
	for y := 1; y < height-1; y++ {
		push(0, y)
		if width > 1 {
			push(width-1, y)
		}
	}

	return out
}

func (s *solver) collectConsumers() []consumer {
	var cs []consumer
	for idx := 0; idx < s.n; idx++ {
		t := s.w.Tile(idx)
		if t.Overlay != grid.Commercial || t.Level == 0 || s.za.RoadIdx[idx] < 0 {
			continue
		}
		demand := scaled(CommercialDemand(int(t.Level)), s.cfg.DemandScale)
		if demand <= 0 {
			continue
		}
		road := s.accessRoad(idx)
		if !s.traversable(road) {
			continue
		}
		x, y := s.w.Coordinate(idx)
		c := consumer{x: x, y: y, road: road, demand: demand, dist: -1, cost: -1, owner: -1}
		if len(s.producers) > 0 && s.prodField.Reached(road) {
			c.dist, c.cost, c.owner = s.prodField.Dist[road], s.prodField.Cost[road], s.prodField.Owner[road]
		}
		cs = append(cs, c)
		s.out.GoodsDemand += demand
	}

	key := func(v int) int {
		if v < 0 {
			return inf
		}
		return v
	}
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if key(a.cost) != key(b.cost) {
			return key(a.cost) < key(b.cost)
		}
		if key(a.dist) != key(b.dist) {
			return key(a.dist) < key(b.dist)
		}
		if a.y != b.y {
			return a.y < b.y
		}
		return a.x < b.x
	})

	return cs
}

// serve delivers to one consumer and records its fill level.
func (s *solver) serve(c consumer) {
	remaining, delivered := c.demand, 0

	// 1) Owner producer.
	if c.owner >= 0 && c.owner < len(s.producers) {
		p := &s.producers[c.owner]
		if give := min(p.remaining, remaining); give > 0 {
			p.remaining -= give
			remaining -= give
			delivered += give
			s.addTraffic(s.prodField.Trace(c.road), give)
			s.dbg.add(Local, p.road, c.road, give, c.dist, c.cost)
		}
	}

	// 2) Next-nearest producers with stock.
	for remaining > 0 && len(s.producers) > 0 {
		pi, route, steps, cost := s.nearest.find(s, c.road)
		if pi < 0 {
			break
		}
		p := &s.producers[pi]
		give := min(p.remaining, remaining)
		p.remaining -= give
		remaining -= give
		delivered += give
		s.addTraffic(route, give)
		s.dbg.add(Local, p.road, c.road, give, steps, cost)
	}

	// 3) Imports.
	if remaining > 0 && s.cfg.AllowImports && s.edgeField != nil && s.edgeField.Reached(c.road) {
		route := s.edgeField.Trace(c.road)
		s.out.GoodsImported += remaining
		delivered += remaining
		s.addTraffic(route, remaining)
		s.dbg.add(Import, route[len(route)-1], c.road, remaining, s.edgeField.Dist[c.road], s.edgeField.Cost[c.road])
		remaining = 0
	}

	s.out.UnreachableDemand += remaining
	s.out.GoodsDelivered += delivered
	ratio := min(max(float64(delivered)/float64(c.demand), 0), 1)
	s.out.CommercialFill[s.w.Index(c.x, c.y)] = uint8(math.Round(ratio * 255))
}

// searchItem is keyed (cost, steps, idx).
type searchItem struct {
	cost, steps, idx int
}

type searchPQ []searchItem

func (pq searchPQ) Len() int { return len(pq) }
func (pq searchPQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	if pq[i].steps != pq[j].steps {
		return pq[i].steps < pq[j].steps
	}
	return pq[i].idx < pq[j].idx
}
func (pq searchPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *searchPQ) Push(x interface{}) { *pq = append(*pq, x.(searchItem)) }
func (pq *searchPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

// nearestSearch is a reusable Dijkstra from a consumer road to the closest
// producer that still has stock. Only touched entries are reset between runs.
type nearestSearch struct {
	cost, steps, parent []int
	touched             []int
}

func newNearestSearch(n int) nearestSearch {
	ns := nearestSearch{cost: make([]int, n), steps: make([]int, n), parent: make([]int, n)}
	for i := 0; i < n; i++ {
		ns.cost[i], ns.steps[i], ns.parent[i] = inf, inf, -1
	}
	return ns
}

func (ns *nearestSearch) reset() {
	for _, i := range ns.touched {
		ns.cost[i], ns.steps[i], ns.parent[i] = inf, inf, -1
	}
	ns.touched = ns.touched[:0]
}

// find returns the producer index, the route tiles from that producer back
// to start, and the route's steps and cost. pi is -1 when none is reachable.
func (ns *nearestSearch) find(s *solver, start int) (pi int, route []int, steps, cost int) {
	if !s.traversable(start) {
		return -1, nil, 0, 0
	}
	ns.reset()
	ns.cost[start], ns.steps[start] = 0, 0
	ns.touched = append(ns.touched, start)
	pq := searchPQ{{idx: start}}

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(searchItem)
		u := cur.idx
		if cur.cost != ns.cost[u] || cur.steps != ns.steps[u] {
			continue
		}
		if p := s.byRoad[u]; p >= 0 && s.producers[p].remaining > 0 {
			for t := u; t != -1; t = ns.parent[t] {
				route = append(route, t)
			}
			return p, route, cur.steps, cur.cost
		}
		ux, uy := s.w.Coordinate(u)
		for _, d := range grid.Conn4 {
			nx, ny := ux+d[0], uy+d[1]
			if !s.w.InBounds(nx, ny) {
				continue
			}
			v := s.w.Index(nx, ny)
			if !s.traversable(v) {
				continue
			}
			nc := cur.cost + grid.TileTravelTimeMilli(s.w.Tile(v))
			nst := cur.steps + 1
			improve := nc < ns.cost[v] ||
				(nc == ns.cost[v] && nst < ns.steps[v]) ||
				(nc == ns.cost[v] && nst == ns.steps[v] && (ns.parent[v] < 0 || u < ns.parent[v]))
			if !improve || v == start {
				continue
			}
			if ns.cost[v] == inf {
				ns.touched = append(ns.touched, v)
			}
			ns.cost[v], ns.steps[v], ns.parent[v] = nc, nst, u
			heap.Push(&pq, searchItem{cost: nc, steps: nst, idx: v})
		}
	}

	return -1, nil, 0, 0
}
