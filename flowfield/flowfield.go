package flowfield

import (
	"container/heap"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/pathfind"
)

const inf = int(^uint(0)>>1) / 4

// item is a heap entry keyed (primary, secondary, owner, idx).
type item struct {
	primary, secondary, owner, idx int
}

type itemPQ []item

func (pq itemPQ) Len() int { return len(pq) }
func (pq itemPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.primary != b.primary {
		return a.primary < b.primary
	}
	if a.secondary != b.secondary {
		return a.secondary < b.secondary
	}
	if a.owner != b.owner {
		return a.owner < b.owner
	}
	return a.idx < b.idx
}
func (pq itemPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *itemPQ) Push(x interface{}) { *pq = append(*pq, x.(item)) }
func (pq *itemPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

// runner carries the per-call state of Build.
type runner struct {
	w          *grid.World
	cfg        Config
	n          int
	roadToEdge []uint8
	blocked    []uint8
	extra      []int
	out        *Field
}

// traversable reports whether idx is an open road tile inside the allowed network.
func (r *runner) traversable(idx int) bool {
	if idx < 0 || idx >= r.n {
		return false
	}
	if r.w.Tile(idx).Overlay != grid.Road {
		return false
	}
	if r.blocked != nil && r.blocked[idx] != 0 {
		return false
	}
	if r.cfg.RequireOutsideConnection && (r.roadToEdge == nil || r.roadToEdge[idx] == 0) {
		return false
	}

	return true
}

// enterCost is the milli-step cost of stepping onto idx.
func (r *runner) enterCost(idx int) int {
	c := grid.TileTravelTimeMilli(r.w.Tile(idx))
	if r.extra != nil {
		c += max(0, r.extra[idx])
	}

	return c
}

// Build computes a flow field from the road tiles listed in sources
// (row-major indices). Sources that are not traversable are skipped; their
// position in sources still defines the owner id of the others.
func Build(w *grid.World, sources []int, cfg Config, opts ...Option) *Field {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	out := &Field{}
	if w == nil || w.Len() == 0 {
		return out
	}
	n := w.Len()
	out.W, out.H = w.Width(), w.Height()
	out.Dist = filled(n, -1)
	out.Cost = filled(n, -1)
	out.Parent = filled(n, -1)
	if cfg.ComputeOwner {
		out.Owner = filled(n, -1)
	}

	r := &runner{w: w, cfg: cfg, n: n, out: out}
	// 1) Masks of the right size only.
	if cfg.RequireOutsideConnection {
		if len(o.roadToEdge) == n {
			r.roadToEdge = o.roadToEdge
		} else {
			r.roadToEdge = pathfind.RoadsConnectedToEdge(w)
		}
	}
	if len(o.blocked) == n {
		r.blocked = o.blocked
	}
	if len(o.extraCost) == n {
		r.extra = o.extraCost
	}
	var initial []int
	if len(o.initialCost) == len(sources) {
		initial = o.initialCost
	}
	if len(sources) == 0 {
		return out
	}

	// 2) Search.
	if cfg.Metric == MetricHops {
		r.bfs(sources, initial)
	} else {
		r.dijkstra(sources, initial)
	}

	return out
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func initialCost(initial []int, si int) int {
	if initial == nil {
		return 0
	}
	return max(0, initial[si])
}

// bfs: first discovery wins; Cost accumulates along the BFS tree.
func (r *runner) bfs(sources, initial []int) {
	out := r.out
	queue := make([]int, 0, len(sources))
	for si, s := range sources {
		if !r.traversable(s) || out.Dist[s] == 0 {
			continue
		}
		out.Dist[s] = 0
		out.Cost[s] = initialCost(initial, si)
		if out.Owner != nil {
			out.Owner[s] = si
		}
		queue = append(queue, s)
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		ux, uy := r.w.Coordinate(u)
		for _, d := range grid.Conn4 {
			nx, ny := ux+d[0], uy+d[1]
			if !r.w.InBounds(nx, ny) {
				continue
			}
			v := r.w.Index(nx, ny)
			if !r.traversable(v) || out.Dist[v] != -1 {
				continue
			}
			out.Dist[v] = out.Dist[u] + 1
			out.Cost[v] = out.Cost[u] + r.enterCost(v)
			out.Parent[v] = u
			if out.Owner != nil {
				out.Owner[v] = out.Owner[u]
			}
			queue = append(queue, v)
		}
	}
}

// dijkstra runs the weighted search; keys are (cost, steps) for
// MetricTravelTime and (steps, cost) for MetricSteps.
func (r *runner) dijkstra(sources, initial []int) {
	out := r.out
	bestCost := filled(r.n, inf)
	bestSteps := filled(r.n, inf)
	byTime := r.cfg.Metric != MetricSteps
	keys := func(cost, steps int) (int, int) {
		if byTime {
			return cost, steps
		}
		return steps, cost
	}
	ownerOf := func(idx int) int {
		if out.Owner == nil {
			return 0
		}
		return out.Owner[idx]
	}

	// better applies the improvement rule: primary, secondary, owner, parent.
	better := func(v, cost, steps, owner, parent int) bool {
		p, s := keys(cost, steps)
		bp, bs := keys(bestCost[v], bestSteps[v])
		if p != bp {
			return p < bp
		}
		if s != bs {
			return s < bs
		}
		if out.Owner != nil && out.Owner[v] != owner {
			return out.Owner[v] < 0 || owner < out.Owner[v]
		}
		return out.Parent[v] >= 0 && parent >= 0 && parent < out.Parent[v]
	}

	var pq itemPQ
	for si, s := range sources {
		if !r.traversable(s) {
			continue
		}
		c := initialCost(initial, si)
		if bestCost[s] != inf && !better(s, c, 0, si, -1) {
			continue
		}
		bestCost[s], bestSteps[s] = c, 0
		out.Parent[s] = -1
		owner := 0
		if out.Owner != nil {
			out.Owner[s] = si
			owner = si
		}
		p, sec := keys(c, 0)
		heap.Push(&pq, item{primary: p, secondary: sec, owner: owner, idx: s})
	}

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(item)
		u := cur.idx
		if p, s := keys(bestCost[u], bestSteps[u]); p != cur.primary || s != cur.secondary || ownerOf(u) != cur.owner {
			continue
		}
		ux, uy := r.w.Coordinate(u)
		for _, d := range grid.Conn4 {
			nx, ny := ux+d[0], uy+d[1]
			if !r.w.InBounds(nx, ny) {
				continue
			}
			v := r.w.Index(nx, ny)
			if !r.traversable(v) {
				continue
			}
			nc := bestCost[u] + r.enterCost(v)
			ns := bestSteps[u] + 1
			owner := ownerOf(u)
			if bestCost[v] != inf && !better(v, nc, ns, owner, u) {
				continue
			}
			bestCost[v], bestSteps[v] = nc, ns
			out.Parent[v] = u
			if out.Owner != nil {
				out.Owner[v] = owner
			}
			p, s := keys(nc, ns)
			heap.Push(&pq, item{primary: p, secondary: s, owner: owner, idx: v})
		}
	}

	for i := 0; i < r.n; i++ {
		if bestCost[i] == inf {
			continue
		}
		out.Dist[i] = bestSteps[i]
		out.Cost[i] = bestCost[i]
	}
}
