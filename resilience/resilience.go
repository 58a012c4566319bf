package resilience

import (
	"slices"

	"github.com/katalvlaran/roadnet/pathfind"
	"github.com/katalvlaran/roadnet/roadgraph"
)

// Result flags bridges and articulation nodes of a graph.
type Result struct {
	IsArticulationNode []bool `json:"-"`
	IsBridgeEdge       []bool `json:"-"`

	// BridgeSubtreeNodes is the DFS child side of each bridge and
	// BridgeOtherNodes the rest of its component; both 0 for other edges.
	BridgeSubtreeNodes []int `json:"-"`
	BridgeOtherNodes   []int `json:"-"`

	NodeComponent []int `json:"-"`
	ComponentSize []int `json:"componentSize"`

	ArticulationNodes []int `json:"articulationNodes"`
	BridgeEdges       []int `json:"bridgeEdges"`
}

// frame is one suspended DFS call: node u and the next incidence to scan.
type frame struct {
	u, it int
}

// Compute finds bridges and articulation nodes of g, treating every edge as
// undirected.
//
// Steps:
//  1. Iterative DFS from each unvisited node assigns disc/low times.
//  2. On finishing u: low[p] = min(low[p], low[u]); the parent edge is a
//     bridge if low[u] > disc[p]; non-root p is a cut node if
//     low[u] >= disc[p]; a root is a cut node with more than one child.
//  3. Bridge side sizes come from DFS subtree sizes.
func Compute(g *roadgraph.Graph) Result {
	var out Result
	if g == nil {
		return out
	}
	n, m := len(g.Nodes), len(g.Edges)
	out.IsArticulationNode = make([]bool, n)
	out.IsBridgeEdge = make([]bool, m)
	out.BridgeSubtreeNodes = make([]int, m)
	out.BridgeOtherNodes = make([]int, m)
	out.NodeComponent = make([]int, n)
	for i := range out.NodeComponent {
		out.NodeComponent[i] = -1
	}
	if n == 0 {
		return out
	}

	disc := make([]int, n)
	low := make([]int, n)
	parent := make([]int, n)
	parentEdge := make([]int, n)
	children := make([]int, n)
	subtree := make([]int, n)
	for i := range disc {
		disc[i], parent[i], parentEdge[i] = -1, -1, -1
	}
	clock := 0
	var stack []frame

	// 1) DFS forest.
	for root := 0; root < n; root++ {
		if disc[root] != -1 {
			continue
		}
		comp := len(out.ComponentSize)
		out.ComponentSize = append(out.ComponentSize, 1)
		disc[root], low[root] = clock, clock
		clock++
		subtree[root] = 1
		out.NodeComponent[root] = comp
		stack = append(stack[:0], frame{u: root})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			u := f.u
			inc := g.Nodes[u].Edges
			if f.it < len(inc) {
				ei := inc[f.it]
				f.it++
				if ei < 0 || ei >= m {
					continue
				}
				v := g.Edges[ei].Other(u)
				if v < 0 || v >= n {
					continue
				}
				if disc[v] == -1 {
					parent[v], parentEdge[v] = u, ei
					children[u]++
					disc[v], low[v] = clock, clock
					clock++
					subtree[v] = 1
					out.NodeComponent[v] = comp
					out.ComponentSize[comp]++
					stack = append(stack, frame{u: v})
				} else if ei != parentEdge[u] {
					low[u] = min(low[u], disc[v])
				}
				continue
			}

			// 2) u is finished.
			stack = stack[:len(stack)-1]
			p := parent[u]
			if p == -1 {
				if children[u] > 1 {
					out.IsArticulationNode[u] = true
				}
				continue
			}
			subtree[p] += subtree[u]
			low[p] = min(low[p], low[u])
			if low[u] > disc[p] {
				out.IsBridgeEdge[parentEdge[u]] = true
				out.BridgeSubtreeNodes[parentEdge[u]] = subtree[u]
			}
			if parent[p] != -1 && low[u] >= disc[p] {
				out.IsArticulationNode[p] = true
			}
		}
	}

	// 3) Other side sizes and the id lists.
	for ei, e := range g.Edges {
		if !out.IsBridgeEdge[ei] {
			continue
		}
		size := out.ComponentSize[out.NodeComponent[e.A]]
		out.BridgeOtherNodes[ei] = max(0, size-out.BridgeSubtreeNodes[ei])
		out.BridgeEdges = append(out.BridgeEdges, ei)
	}
	for i, cut := range out.IsArticulationNode {
		if cut {
			out.ArticulationNodes = append(out.ArticulationNodes, i)
		}
	}

	return out
}

// Cut is the node partition left by removing one edge.
type Cut struct {
	SideA []int `json:"sideA"` // reachable from Edge.A
	SideB []int `json:"sideB"` // reachable from Edge.B
}

// BridgeCut removes edge from g and returns both sides in ascending node
// order. It returns false for an unknown edge or when the endpoints stay
// connected.
func BridgeCut(g *roadgraph.Graph, edge int) (Cut, bool) {
	if g.Empty() || edge < 0 || edge >= len(g.Edges) {
		return Cut{}, false
	}
	e := g.Edges[edge]
	n := len(g.Nodes)
	if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
		return Cut{}, false
	}

	reach := func(start int) []bool {
		seen := make([]bool, n)
		seen[start] = true
		queue := []int{start}
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			for _, ei := range g.Nodes[u].Edges {
				if ei == edge || ei < 0 || ei >= len(g.Edges) {
					continue
				}
				v := g.Edges[ei].Other(u)
				if v < 0 || v >= n || seen[v] {
					continue
				}
				seen[v] = true
				queue = append(queue, v)
			}
		}
		return seen
	}

	seenA := reach(e.A)
	if seenA[e.B] {
		return Cut{}, false
	}
	seenB := reach(e.B)
	var cut Cut
	for i := 0; i < n; i++ {
		if seenA[i] {
			cut.SideA = append(cut.SideA, i)
		}
		if seenB[i] {
			cut.SideB = append(cut.SideB, i)
		}
	}

	return cut, len(cut.SideA) > 0 && len(cut.SideB) > 0
}

// BlockedMovesForEdge lists every directed tile move along edge, in both
// directions, as sorted unique pathfind.MoveKey values for a grid of the
// given width. Feed it to pathfind.BuildConfig.Blocked to forbid the edge.
func BlockedMovesForEdge(g *roadgraph.Graph, edge, width int) []uint64 {
	if g == nil || edge < 0 || edge >= len(g.Edges) || width <= 0 {
		return nil
	}
	tiles := g.Edges[edge].Tiles
	if len(tiles) < 2 {
		return nil
	}
	out := make([]uint64, 0, 2*(len(tiles)-1))
	for i := 0; i+1 < len(tiles); i++ {
		a := tiles[i].Y*width + tiles[i].X
		b := tiles[i+1].Y*width + tiles[i+1].X
		out = append(out, pathfind.MoveKey(a, b), pathfind.MoveKey(b, a))
	}
	slices.Sort(out)

	return slices.Compact(out)
}
