package resilience

import "github.com/katalvlaran/roadnet/roadgraph"

// arc is one residual arc; arcs 2k and 2k+1 are each other's reverse.
type arc struct {
	to, capacity int
}

// network is a residual graph over node ids.
type network struct {
	arcs  []arc
	out   [][]int // node → arc ids
	level []int
	iter  []int
}

// newUnitNetwork gives every non-loop road edge capacity 1 in each direction.
// An undirected unit edge is one arc pair whose halves serve as each
// other's residual.
func newUnitNetwork(g *roadgraph.Graph) *network {
	n := len(g.Nodes)
	nw := &network{out: make([][]int, n), level: make([]int, n), iter: make([]int, n)}
	for _, e := range g.Edges {
		if e.A == e.B || e.A < 0 || e.B < 0 || e.A >= n || e.B >= n {
			continue
		}
		id := len(nw.arcs)
		nw.arcs = append(nw.arcs, arc{to: e.B, capacity: 1}, arc{to: e.A, capacity: 1})
		nw.out[e.A] = append(nw.out[e.A], id)
		nw.out[e.B] = append(nw.out[e.B], id+1)
	}

	return nw
}

// buildLevels runs the BFS of one Dinic phase and reports whether sink is
// reachable in the residual graph.
func (nw *network) buildLevels(source, sink int) bool {
	for i := range nw.level {
		nw.level[i] = -1
		nw.iter[i] = 0
	}
	nw.level[source] = 0
	queue := []int{source}
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, id := range nw.out[u] {
			a := nw.arcs[id]
			if a.capacity > 0 && nw.level[a.to] < 0 {
				nw.level[a.to] = nw.level[u] + 1
				queue = append(queue, a.to)
			}
		}
	}

	return nw.level[sink] >= 0
}

// push sends up to available units from u to sink along the level graph and
// returns the amount sent.
func (nw *network) push(u, sink, available int) int {
	if u == sink {
		return available
	}
	for ; nw.iter[u] < len(nw.out[u]); nw.iter[u]++ {
		id := nw.out[u][nw.iter[u]]
		a := nw.arcs[id]
		if a.capacity <= 0 || nw.level[a.to] != nw.level[u]+1 {
			continue
		}
		if pushed := nw.push(a.to, sink, min(available, a.capacity)); pushed > 0 {
			nw.arcs[id].capacity -= pushed
			nw.arcs[id^1].capacity += pushed
			return pushed
		}
	}

	return 0
}

// EdgeConnectivity returns the number of edge-disjoint routes between nodes
// a and b, i.e. how many road edges must fail before they are cut apart.
// It is 0 for unknown nodes or a == b.
//
// Steps:
//  1. Unit residual network from the road edges (self-loops dropped).
//  2. Dinic phases: BFS levels, then blocking flow by DFS pushes.
//  3. The max-flow value is the answer.
func EdgeConnectivity(g *roadgraph.Graph, a, b int) int {
	if g.Empty() || a == b || a < 0 || b < 0 || a >= len(g.Nodes) || b >= len(g.Nodes) {
		return 0
	}
	nw := newUnitNetwork(g)
	total := 0
	for nw.buildLevels(a, b) {
		for {
			pushed := nw.push(a, b, len(nw.arcs))
			if pushed == 0 {
				break
			}
			total += pushed
		}
	}

	return total
}
