package roadgraph

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/roadnet/grid"
)

// sweep holds one single-source Dijkstra result over edge lengths.
type sweep struct {
	dist       []int
	parent     []int
	parentEdge []int
}

// distItem is a heap entry; stale entries are skipped on pop.
type distItem struct {
	node, dist int
}

// distPQ orders by (dist, node) so equal distances settle in id order.
type distPQ []distItem

func (pq distPQ) Len() int { return len(pq) }
func (pq distPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node < pq[j].node
}
func (pq distPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *distPQ) Push(x interface{}) { *pq = append(*pq, x.(distItem)) }
func (pq *distPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

// shortest runs Dijkstra from src weighted by max(0, Edge.Length).
// Unreachable nodes keep math.MaxInt.
func shortest(g *Graph, src int) sweep {
	n := len(g.Nodes)
	s := sweep{dist: make([]int, n), parent: make([]int, n), parentEdge: make([]int, n)}
	for i := 0; i < n; i++ {
		s.dist[i] = math.MaxInt
		s.parent[i] = -1
		s.parentEdge[i] = -1
	}
	s.dist[src] = 0
	pq := distPQ{{node: src}}
	for pq.Len() > 0 {
		it := heap.Pop(&pq).(distItem)
		if it.dist != s.dist[it.node] {
			continue
		}
		u := it.node
		for _, ei := range g.Nodes[u].Edges {
			e := g.Edges[ei]
			v := e.Other(u)
			if v < 0 || v >= n {
				continue
			}
			nd := it.dist + max(0, e.Length)
			if nd < s.dist[v] {
				s.dist[v] = nd
				s.parent[v] = u
				s.parentEdge[v] = ei
				heap.Push(&pq, distItem{node: v, dist: nd})
			}
		}
	}

	return s
}

// farthest returns the first node with the strictly greatest finite distance.
func (s sweep) farthest() int {
	best, bestDist := -1, -1
	for i, d := range s.dist {
		if d != math.MaxInt && d > bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// ApproxDiameter estimates the graph diameter by double sweep: Dijkstra from
// the first node with any edge to the farthest node a, then from a to the
// farthest node b. The result carries the a→b node and edge paths.
//
// Edge cases:
//   - Empty graph: zero Diameter with nil paths.
//   - No edges: A == B == 0, Distance 0, NodePath [0].
//
// Complexity: O((V + E) log V).
func ApproxDiameter(g *Graph) Diameter {
	if g.Empty() {
		return Diameter{}
	}

	// 1) Start from the first node that has an edge.
	start := 0
	for i, n := range g.Nodes {
		if len(n.Edges) > 0 {
			start = i
			break
		}
	}

	// 2) First sweep.
	a := shortest(g, start).farthest()
	if a < 0 {
		return Diameter{A: start, B: start, NodePath: []int{start}}
	}

	// 3) Second sweep from a.
	s := shortest(g, a)
	b := s.farthest()
	if b < 0 {
		return Diameter{A: a, B: a, NodePath: []int{a}}
	}
	d := Diameter{A: a, B: b, Distance: s.dist[b]}

	// 4) Walk parents b→a, then reverse.
	nodes := []int{b}
	var edges []int
	for cur := b; cur != a; {
		p := s.parent[cur]
		if p < 0 {
			d.NodePath = []int{a, b}
			return d
		}
		edges = append(edges, s.parentEdge[cur])
		nodes = append(nodes, p)
		cur = p
	}
	reverseInts(nodes)
	reverseInts(edges)
	d.NodePath = nodes
	d.EdgePath = edges

	return d
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// ExpandNodePath converts a node path into a tile polyline. For every
// consecutive node pair the first incident edge joining them is used, oriented
// along the walk. It returns false on an unknown node or a missing edge.
// Complexity: O(Σ deg + Σ|edge tiles|).
func ExpandNodePath(g *Graph, nodePath []int) ([]grid.Point, bool) {
	if g.Empty() || len(nodePath) == 0 {
		return nil, false
	}
	for _, n := range nodePath {
		if n < 0 || n >= len(g.Nodes) {
			return nil, false
		}
	}

	out := []grid.Point{g.Nodes[nodePath[0]].Pos}
	for i := 0; i+1 < len(nodePath); i++ {
		na, nb := nodePath[i], nodePath[i+1]
		ei := -1
		for _, cand := range g.Nodes[na].Edges {
			e := g.Edges[cand]
			if (e.A == na && e.B == nb) || (e.A == nb && e.B == na) {
				ei = cand
				break
			}
		}
		if ei < 0 {
			return nil, false
		}
		out = appendOriented(out, g.Edges[ei].Tiles, g.Nodes[na].Pos)
	}

	return out, true
}

// appendOriented appends seg[1:] to out, reversing seg first when it ends at
// from.
func appendOriented(out, seg []grid.Point, from grid.Point) []grid.Point {
	if len(seg) == 0 {
		return out
	}
	if seg[0] == from {
		return append(out, seg[1:]...)
	}
	for i := len(seg) - 2; i >= 0; i-- {
		out = append(out, seg[i])
	}

	return out
}
