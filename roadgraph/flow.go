package roadgraph

import (
	"math"

	"github.com/katalvlaran/roadnet/grid"
)

// FlowConfig is the capacity model used by AggregateFlow.
type FlowConfig struct {
	// BaseTileCapacity is the street capacity of one tile.
	BaseTileCapacity int `json:"baseTileCapacity"`
	// UseRoadLevelCapacity scales BaseTileCapacity by road class.
	UseRoadLevelCapacity bool `json:"useRoadLevelCapacity"`
}

// DefaultFlowConfig matches the traffic defaults: 28 vehicles per street
// tile, scaled by road class.
func DefaultFlowConfig() FlowConfig {
	return FlowConfig{BaseTileCapacity: 28, UseRoadLevelCapacity: true}
}

// TileCapacity is the capacity of (x,y) under cfg: 0 off-road, otherwise at
// least 1.
func (cfg FlowConfig) TileCapacity(w *grid.World, x, y int) int {
	if !w.IsRoad(x, y) {
		return 0
	}
	base := max(0, cfg.BaseTileCapacity)
	if !cfg.UseRoadLevelCapacity {
		return max(1, base)
	}

	return max(1, grid.RoadCapacityForLevel(base, int(w.At(x, y).Level)))
}

// TileFlow sums the flow of a set of tiles against their capacity.
type TileFlow struct {
	SumFlow        uint64  `json:"sumFlow"`
	MaxFlow        int     `json:"maxFlow"`
	SumCapacity    uint64  `json:"sumCapacity"`
	MinCapacity    int     `json:"minCapacity"`
	MaxCapacity    int     `json:"maxCapacity"`
	SumUtil        float64 `json:"sumUtil"`
	MaxUtil        float64 `json:"maxUtil"`
	CongestedTiles int     `json:"congestedTiles"` // flow > capacity
	ExcessFlow     uint64  `json:"excessFlow"`     // Σ max(0, flow-capacity)

	seen bool
}

func (s *TileFlow) add(v, capacity int) {
	s.SumFlow += uint64(max(0, v))
	s.MaxFlow = max(s.MaxFlow, v)
	s.SumCapacity += uint64(max(0, capacity))
	if !s.seen || capacity < s.MinCapacity {
		s.MinCapacity = capacity
	}
	s.MaxCapacity = max(s.MaxCapacity, capacity)
	s.seen = true
	if capacity <= 0 {
		return
	}
	u := float64(v) / float64(capacity)
	s.SumUtil += u
	s.MaxUtil = max(s.MaxUtil, u)
	if v > capacity {
		s.CongestedTiles++
		s.ExcessFlow += uint64(v - capacity)
	}
}

// NodeFlow is the flow on a node tile plus a summary of its incident edges.
type NodeFlow struct {
	Pos      grid.Point `json:"pos"`
	Degree   int        `json:"degree"`
	Flow     int        `json:"flow"`
	Capacity int        `json:"capacity"`
	Util     float64    `json:"util"`

	// IncidentSumFlow adds the interior flow of incident edges; node tiles
	// are not counted twice.
	IncidentSumFlow uint64 `json:"incidentSumFlow"`
	// IncidentMaxUtil is the highest interior utilisation of an incident
	// edge, or its whole-edge utilisation when it has no interior.
	IncidentMaxUtil float64 `json:"incidentMaxUtil"`
}

// EdgeFlow aggregates an edge over all its tiles and over interior tiles
// only (endpoints excluded).
type EdgeFlow struct {
	A             int      `json:"a"`
	B             int      `json:"b"`
	Length        int      `json:"length"`
	TileCount     int      `json:"tileCount"`
	InteriorTiles int      `json:"interiorTiles"`
	All           TileFlow `json:"all"`
	Interior      TileFlow `json:"interior"`
}

// FlowStats is parallel to Graph.Nodes and Graph.Edges.
type FlowStats struct {
	W, H   int
	Config FlowConfig
	Nodes  []NodeFlow
	Edges  []EdgeFlow
}

// AggregateFlow folds a per-tile flow map (row-major, vehicles) onto g.
// A flow map of the wrong size counts as zero flow; capacities are still
// reported.
func AggregateFlow(w *grid.World, g *Graph, flow []uint32, cfg FlowConfig) FlowStats {
	out := FlowStats{Config: cfg}
	if w == nil || w.Len() == 0 || g == nil {
		return out
	}
	out.W, out.H = w.Width(), w.Height()
	hasFlow := len(flow) == w.Len()
	flowAt := func(x, y int) int {
		if !hasFlow {
			return 0
		}
		return int(min(flow[w.Index(x, y)], math.MaxInt32))
	}

	// 1) Node tiles.
	out.Nodes = make([]NodeFlow, len(g.Nodes))
	for i, n := range g.Nodes {
		nf := NodeFlow{Pos: n.Pos, Degree: len(n.Edges)}
		if w.InBounds(n.Pos.X, n.Pos.Y) && hasFlow {
			nf.Flow = flowAt(n.Pos.X, n.Pos.Y)
			nf.Capacity = cfg.TileCapacity(w, n.Pos.X, n.Pos.Y)
			if nf.Capacity > 0 {
				nf.Util = float64(nf.Flow) / float64(nf.Capacity)
			}
		}
		out.Nodes[i] = nf
	}

	// 2) Edge tiles, split into all and interior.
	out.Edges = make([]EdgeFlow, len(g.Edges))
	for i, e := range g.Edges {
		ef := EdgeFlow{A: e.A, B: e.B, Length: e.Length, TileCount: len(e.Tiles), InteriorTiles: max(0, len(e.Tiles)-2)}
		for k, p := range e.Tiles {
			if !w.InBounds(p.X, p.Y) {
				continue
			}
			v, capacity := flowAt(p.X, p.Y), cfg.TileCapacity(w, p.X, p.Y)
			ef.All.add(v, capacity)
			if k > 0 && k+1 < len(e.Tiles) {
				ef.Interior.add(v, capacity)
			}
		}
		out.Edges[i] = ef
	}

	// 3) Incident summaries.
	for i, n := range g.Nodes {
		nf := &out.Nodes[i]
		for _, ei := range n.Edges {
			if ei < 0 || ei >= len(out.Edges) {
				continue
			}
			ef := out.Edges[ei]
			nf.IncidentSumFlow += ef.Interior.SumFlow
			u := ef.All.MaxUtil
			if ef.InteriorTiles > 0 {
				u = ef.Interior.MaxUtil
			}
			nf.IncidentMaxUtil = max(nf.IncidentMaxUtil, u)
		}
	}

	return out
}
