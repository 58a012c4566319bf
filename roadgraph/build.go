package roadgraph

import "github.com/katalvlaran/roadnet/grid"

// isStraight reports whether a degree-2 road tile continues straight
// (N+S or E+W) rather than turning.
func isStraight(w *grid.World, x, y int) bool {
	n, s := w.IsRoad(x, y-1), w.IsRoad(x, y+1)
	e, wst := w.IsRoad(x+1, y), w.IsRoad(x-1, y)

	return (n && s && !e && !wst) || (e && wst && !n && !s)
}

// isNode reports whether the road tile at (x,y) becomes a graph vertex:
// any degree other than 2, or a degree-2 corner.
func isNode(w *grid.World, x, y int) bool {
	if !w.IsRoad(x, y) {
		return false
	}
	if w.RoadDegree(x, y) != 2 {
		return true
	}

	return !isStraight(w, x, y)
}

// builder carries the per-call state of Build.
type builder struct {
	w      *grid.World
	g      *Graph
	nodeID []int // tile index → node id, -1 when not a node
}

// Build compiles the road tiles of w into a Graph.
//
// Steps:
//  1. Row-major scan: every dead end, corner and junction becomes a node.
//  2. From each node (ascending id) and each direction N, E, S, W, walk the
//     chain of straight tiles to the next node; keep the edge only when the
//     walk started at the lower id so every chain is emitted once.
//  3. Any road tile still uncovered belongs to a node-less loop; the lowest
//     such tile becomes a node and the loop a self-loop edge.
//
// Complexity: O(W×H) time and memory.
func Build(w *grid.World) *Graph {
	g := &Graph{}
	if w == nil || w.Len() == 0 {
		return g
	}
	b := &builder{w: w, g: g, nodeID: make([]int, w.Len())}
	for i := range b.nodeID {
		b.nodeID[i] = -1
	}

	// 1) Nodes.
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			if isNode(w, x, y) {
				b.addNode(x, y)
			}
		}
	}

	// 2) Edges.
	for a := 0; a < len(g.Nodes); a++ {
		b.traceFrom(a, false)
	}

	// 3) Canonical break point for loops without a vertex.
	covered := b.coverage()
	for idx, t := range w.Tiles() {
		if t.Overlay != grid.Road || covered[idx] {
			continue
		}
		x, y := w.Coordinate(idx)
		a := b.addNode(x, y)
		b.traceFrom(a, true)
		covered = b.coverage()
	}

	return g
}

func (b *builder) addNode(x, y int) int {
	id := len(b.g.Nodes)
	b.g.Nodes = append(b.g.Nodes, Node{Pos: grid.Point{X: x, Y: y}})
	b.nodeID[b.w.Index(x, y)] = id

	return id
}

// traceFrom walks every direction out of node a. With loops set, the first
// chain that returns to a is recorded as a self-loop and the walk stops.
func (b *builder) traceFrom(a int, loops bool) {
	p := b.g.Nodes[a].Pos
	for _, d := range grid.Conn4 {
		nx, ny := p.X+d[0], p.Y+d[1]
		if !b.w.IsRoad(nx, ny) {
			continue
		}
		tiles, end, ok := b.trace(p, grid.Point{X: nx, Y: ny})
		if !ok {
			continue
		}
		switch {
		case end == a && loops:
			b.addEdge(a, a, tiles)
			return
		case end == a:
			continue
		case a < end:
			b.addEdge(a, end, tiles)
		}
	}
}

func (b *builder) addEdge(a, end int, tiles []grid.Point) {
	ei := len(b.g.Edges)
	b.g.Edges = append(b.g.Edges, Edge{A: a, B: end, Length: len(tiles) - 1, Tiles: tiles})
	b.g.Nodes[a].Edges = append(b.g.Nodes[a].Edges, ei)
	if end != a {
		b.g.Nodes[end].Edges = append(b.g.Nodes[end].Edges, ei)
	}
}

// trace follows straight tiles from start through first until it reaches a
// node. It fails when the chain forks or leaves the road network.
func (b *builder) trace(start, first grid.Point) ([]grid.Point, int, bool) {
	tiles := []grid.Point{start}
	prev, cur := start, first
	maxSteps := b.w.Len() + 8
	for step := 0; step < maxSteps; step++ {
		if !b.w.IsRoad(cur.X, cur.Y) {
			return nil, -1, false
		}
		tiles = append(tiles, cur)
		if id := b.nodeID[b.w.Index(cur.X, cur.Y)]; id != -1 {
			return tiles, id, true
		}

		var next grid.Point
		choices := 0
		for _, d := range grid.Conn4 {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if !b.w.IsRoad(nx, ny) || (nx == prev.X && ny == prev.Y) {
				continue
			}
			next = grid.Point{X: nx, Y: ny}
			choices++
		}
		if choices != 1 {
			return nil, -1, false
		}
		prev, cur = cur, next
	}

	return nil, -1, false
}

// coverage marks node tiles and interior edge tiles.
func (b *builder) coverage() []bool {
	covered := make([]bool, b.w.Len())
	for _, n := range b.g.Nodes {
		covered[b.w.Index(n.Pos.X, n.Pos.Y)] = true
	}
	for _, e := range b.g.Edges {
		for _, p := range e.Tiles {
			covered[b.w.Index(p.X, p.Y)] = true
		}
	}

	return covered
}
