package roadroute

import (
	"errors"
	"fmt"
	"math"

	"github.com/LdDl/ch"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

// ErrNilInput is returned by NewRouter for a nil world or graph.
var ErrNilInput = errors.New("roadroute: nil world or graph")

// Route is one answered query.
type Route struct {
	Tiles     []grid.Point `json:"tiles"`
	Nodes     []int        `json:"nodes"` // graph nodes visited, in order
	Steps     int          `json:"steps"`
	CostMilli int          `json:"costMilli"`
}

// Router holds a prepared contraction hierarchy for one world snapshot.
// Rebuild it after the road network changes.
type Router struct {
	w       *grid.World
	g       *roadgraph.Graph
	index   *roadgraph.Index
	weights *roadgraph.Weights

	hierarchy  ch.Graph
	contracted bool
	// best holds the cheapest edge id per directed node pair.
	best map[[2]int]int
}

// NewRouter prepares the hierarchy for g over w.
func NewRouter(w *grid.World, g *roadgraph.Graph) (*Router, error) {
	if w == nil || g == nil {
		return nil, ErrNilInput
	}
	r := &Router{
		w:       w,
		g:       g,
		index:   roadgraph.BuildIndex(w, g),
		weights: roadgraph.BuildWeights(w, g),
		best:    make(map[[2]int]int),
	}

	// 1) Cheapest edge per direction; self-loops never shorten a route.
	for ei, e := range g.Edges {
		if e.A == e.B {
			continue
		}
		r.keep(e.A, e.B, ei)
		r.keep(e.B, e.A, ei)
	}
	if len(r.best) == 0 {
		return r, nil
	}

	// 2) Vertices, then arcs in edge order.
	for ni := range g.Nodes {
		if err := r.hierarchy.CreateVertex(int64(ni)); err != nil {
			return nil, fmt.Errorf("roadroute: vertex %d: %w", ni, err)
		}
	}
	for ei, e := range g.Edges {
		if e.A == e.B {
			continue
		}
		if r.best[[2]int{e.A, e.B}] == ei {
			if err := r.hierarchy.AddEdge(int64(e.A), int64(e.B), float64(r.cost(ei, e.A))); err != nil {
				return nil, fmt.Errorf("roadroute: edge %d: %w", ei, err)
			}
		}
		if r.best[[2]int{e.B, e.A}] == ei {
			if err := r.hierarchy.AddEdge(int64(e.B), int64(e.A), float64(r.cost(ei, e.B))); err != nil {
				return nil, fmt.Errorf("roadroute: edge %d: %w", ei, err)
			}
		}
	}
	r.hierarchy.PrepareContractionHierarchies()
	r.contracted = true

	return r, nil
}

// cost is the time to traverse edge ei leaving from node.
func (r *Router) cost(ei, from int) int {
	ew := r.weights.Edge[ei]
	if r.g.Edges[ei].A == from {
		return max(1, ew.CostABMilli)
	}
	return max(1, ew.CostBAMilli)
}

func (r *Router) keep(from, to, ei int) {
	k := [2]int{from, to}
	if cur, ok := r.best[k]; !ok || r.cost(ei, from) < r.cost(cur, from) {
		r.best[k] = ei
	}
}

// access is one way to enter or leave the node graph from a tile.
type access struct {
	node  int
	tiles []grid.Point // tile to node for starts, node to tile for goals
	cost  int
}

// tilesCost sums entry times of pts[1:].
func (r *Router) tilesCost(pts []grid.Point) int {
	return roadgraph.TilesCostMilli(r.w, pts)
}

// accesses lists the nodes reachable from p without passing another node.
// When toNode is false the tile lists run node to p.
func (r *Router) accesses(p grid.Point, toNode bool) []access {
	if n := r.index.NodeAt(p.X, p.Y); n >= 0 {
		return []access{{node: n, tiles: []grid.Point{p}}}
	}
	ei, off := r.index.EdgeAt(p.X, p.Y)
	if ei < 0 {
		return nil
	}
	e := r.g.Edges[ei]
	towardA := reversed(e.Tiles[:off+1]) // p … A
	towardB := clone(e.Tiles[off:])      // p … B
	out := make([]access, 0, 2)
	for _, a := range []struct {
		node  int
		tiles []grid.Point
	}{{e.A, towardA}, {e.B, towardB}} {
		tiles := a.tiles
		if !toNode {
			tiles = reversed(tiles)
		}
		out = append(out, access{node: a.node, tiles: tiles, cost: r.tilesCost(tiles)})
	}

	return out
}

// Route finds the cheapest road route from start to goal. It returns false
// when either end is not on the network or no route exists.
func (r *Router) Route(start, goal grid.Point) (Route, bool) {
	if !r.w.IsRoad(start.X, start.Y) || !r.w.IsRoad(goal.X, goal.Y) {
		return Route{}, false
	}
	if start == goal {
		return Route{Tiles: []grid.Point{start}}, true
	}

	best, found := Route{}, false
	consider := func(rt Route) {
		if !found || rt.CostMilli < best.CostMilli || (rt.CostMilli == best.CostMilli && rt.Steps < best.Steps) {
			best, found = rt, true
		}
	}

	// 1) Direct walk when both ends lie on the same edge.
	se, so := r.index.EdgeAt(start.X, start.Y)
	ge, gOff := r.index.EdgeAt(goal.X, goal.Y)
	if se >= 0 && se == ge {
		var tiles []grid.Point
		if so < gOff {
			tiles = clone(r.g.Edges[se].Tiles[so : gOff+1])
		} else {
			tiles = reversed(r.g.Edges[se].Tiles[gOff : so+1])
		}
		consider(Route{Tiles: tiles, Steps: len(tiles) - 1, CostMilli: r.tilesCost(tiles)})
	}

	// 2) Every start access × goal access through the hierarchy.
	for _, s := range r.accesses(start, true) {
		for _, g := range r.accesses(goal, false) {
			if rt, ok := r.join(s, g); ok {
				consider(rt)
			}
		}
	}

	return best, found
}

// join links a start access and a goal access through the node graph.
func (r *Router) join(s, g access) (Route, bool) {
	nodes := []int{s.node}
	between := 0
	if s.node != g.node {
		if !r.contracted {
			return Route{}, false
		}
		c, path := r.hierarchy.ShortestPath(int64(s.node), int64(g.node))
		if c < 0 || len(path) < 2 {
			return Route{}, false
		}
		between = int(math.Round(c))
		nodes = nodes[:0]
		for _, v := range path {
			nodes = append(nodes, int(v))
		}
	}

	tiles := clone(s.tiles)
	for i := 0; i+1 < len(nodes); i++ {
		ei, ok := r.best[[2]int{nodes[i], nodes[i+1]}]
		if !ok {
			return Route{}, false
		}
		seg := r.g.Edges[ei].Tiles
		if r.g.Edges[ei].A != nodes[i] {
			seg = reversed(seg)
		}
		tiles = append(tiles, seg[1:]...)
	}
	tiles = append(tiles, g.tiles[1:]...)

	return Route{
		Tiles:     tiles,
		Nodes:     nodes,
		Steps:     len(tiles) - 1,
		CostMilli: s.cost + between + g.cost,
	}, true
}

func clone(pts []grid.Point) []grid.Point {
	return append([]grid.Point(nil), pts...)
}

func reversed(pts []grid.Point) []grid.Point {
	out := make([]grid.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}

	return out
}
