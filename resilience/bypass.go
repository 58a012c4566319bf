package resilience

import (
	"sort"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/pathfind"
	"github.com/katalvlaran/roadnet/roadgraph"
)

// BypassConfig controls SuggestBypasses.
type BypassConfig struct {
	Top             int  `json:"top"` // bridges to try; 0 disables
	MoneyObjective  bool `json:"moneyObjective"`
	TargetLevel     int  `json:"targetLevel"`
	AllowBridges    bool `json:"allowBridges"`
	MaxPrimaryCost  int  `json:"maxPrimaryCost"` // 0 = no limit
	MaxNodesPerSide int  `json:"maxNodesPerSide"`
	RankByTraffic   bool `json:"rankByTraffic"`
}

// DefaultBypassConfig tries the five most critical bridges with a money
// objective at street level.
func DefaultBypassConfig() BypassConfig {
	return BypassConfig{
		Top:             5,
		MoneyObjective:  true,
		TargetLevel:     1,
		MaxNodesPerSide: 256,
		RankByTraffic:   true,
	}
}

// Bypass is one suggested road that reconnects both sides of a bridge.
type Bypass struct {
	BridgeEdge  int          `json:"bridgeEdge"`
	CutSize     int          `json:"cutSize"` // nodes on the smaller side
	PrimaryCost int          `json:"primaryCost"`
	MoneyCost   int          `json:"moneyCost"`
	NewTiles    int          `json:"newTiles"`
	Steps       int          `json:"steps"`
	TargetLevel int          `json:"targetLevel"`
	Path        []grid.Point `json:"path"`
}

// CountNewRoadTiles counts path tiles that are not roads yet.
func CountNewRoadTiles(w *grid.World, path []grid.Point) int {
	out := 0
	for _, p := range path {
		if w.InBounds(p.X, p.Y) && !w.IsRoad(p.X, p.Y) {
			out++
		}
	}

	return out
}

// EstimateMoneyCost prices building path at targetLevel.
func EstimateMoneyCost(w *grid.World, path []grid.Point, targetLevel int) int {
	targetLevel = grid.ClampRoadLevel(targetLevel)
	out := 0
	for _, p := range path {
		if !w.InBounds(p.X, p.Y) {
			continue
		}
		t := w.At(p.X, p.Y)
		bridge := t.Terrain == grid.Water
		if t.Overlay == grid.Road {
			out += grid.RoadPlacementCost(grid.ClampRoadLevel(int(t.Level)), targetLevel, true, bridge)
		} else {
			out += grid.RoadPlacementCost(1, targetLevel, false, bridge)
		}
	}

	return out
}

type rankedBridge struct {
	edge, cut int
	score     float64
}

// SuggestBypasses proposes new roads around the most critical bridges of g.
//
// Bridges are ranked by the smaller cut side, or, when roadTraffic matches
// the grid and RankByTraffic is set, by the busiest tile on the bridge (cut
// size breaks ties). For each of the top bridges a multi-source build search
// runs from the smaller side's nodes to the other side's with every move
// along the bridge blocked. Sides larger than MaxNodesPerSide are sampled
// deterministically from the world seed.
func SuggestBypasses(w *grid.World, g *roadgraph.Graph, res Result, cfg BypassConfig, roadTraffic []uint16) []Bypass {
	if w == nil || g.Empty() || len(g.Edges) == 0 || cfg.Top <= 0 || len(res.BridgeEdges) == 0 {
		return nil
	}
	withTraffic := cfg.RankByTraffic && len(roadTraffic) == w.Len()

	// 1) Rank bridges.
	ranked := make([]rankedBridge, 0, len(res.BridgeEdges))
	for _, ei := range res.BridgeEdges {
		if ei < 0 || ei >= len(g.Edges) {
			continue
		}
		cut := min(res.BridgeSubtreeNodes[ei], res.BridgeOtherNodes[ei])
		score := float64(cut)
		if withTraffic {
			busiest := 0
			for _, p := range g.Edges[ei].Tiles {
				if w.InBounds(p.X, p.Y) {
					busiest = max(busiest, int(roadTraffic[w.Index(p.X, p.Y)]))
				}
			}
			score = float64(busiest) + float64(cut)*0.001
		}
		ranked = append(ranked, rankedBridge{edge: ei, cut: cut, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.cut != b.cut {
			return a.cut > b.cut
		}
		return a.edge < b.edge
	})
	if len(ranked) > cfg.Top {
		ranked = ranked[:cfg.Top]
	}

	pcfg := pathfind.DefaultBuildConfig()
	pcfg.TargetLevel = grid.ClampRoadLevel(cfg.TargetLevel)
	pcfg.AllowBridges = cfg.AllowBridges
	if cfg.MoneyObjective {
		pcfg.CostModel = pathfind.CostMoney
	}
	if cfg.MaxPrimaryCost > 0 {
		pcfg.MaxPrimaryCost = cfg.MaxPrimaryCost
	}

	// 2) One search per bridge.
	var out []Bypass
	for _, rb := range ranked {
		cut, ok := BridgeCut(g, rb.edge)
		if !ok {
			continue
		}
		e := g.Edges[rb.edge]
		startSide, goalSide, mustS, mustG := cut.SideA, cut.SideB, e.A, e.B
		if len(cut.SideB) < len(cut.SideA) {
			startSide, goalSide, mustS, mustG = cut.SideB, cut.SideA, e.B, e.A
		}
		seed := w.Seed() ^ uint64(rb.edge)*0xD6E8FEB86659FD93
		starts := sampleSide(g, startSide, mustS, cfg.MaxNodesPerSide, seed^0xA5A5A5A5A5A5A5A5)
		goals := sampleSide(g, goalSide, mustG, cfg.MaxNodesPerSide, seed^0x5A5A5A5A5A5A5A5A)
		if len(starts) == 0 || len(goals) == 0 {
			continue
		}

		pcfg.Blocked = BlockedMovesForEdge(g, rb.edge, w.Width())
		path, cost, found := pathfind.RoadBuildPathBetweenSets(w, starts, goals, pcfg)
		if !found || len(path) < 2 {
			continue
		}
		out = append(out, Bypass{
			BridgeEdge:  rb.edge,
			CutSize:     rb.cut,
			PrimaryCost: cost,
			MoneyCost:   EstimateMoneyCost(w, path, pcfg.TargetLevel),
			NewTiles:    CountNewRoadTiles(w, path),
			Steps:       len(path) - 1,
			TargetLevel: pcfg.TargetLevel,
			Path:        path,
		})
	}

	return out
}

// sampleSide returns the positions of side's nodes, must first. Above limit
// nodes, the lowest SplitMix64 keys win.
func sampleSide(g *roadgraph.Graph, side []int, must, limit int, seed uint64) []grid.Point {
	if len(side) == 0 {
		return nil
	}
	limit = max(1, limit)
	var out []grid.Point
	if must >= 0 && must < len(g.Nodes) {
		out = append(out, g.Nodes[must].Pos)
	}
	if len(side) <= limit {
		for _, ni := range side {
			if ni != must {
				out = append(out, g.Nodes[ni].Pos)
			}
		}
		return out
	}

	type keyed struct {
		key  uint64
		node int
	}
	keys := make([]keyed, 0, len(side))
	st := seed
	for _, ni := range side {
		if ni == must {
			continue
		}
		st ^= uint64(uint32(ni)) + 0x9E3779B97F4A7C15
		keys = append(keys, keyed{key: grid.SplitMix64(&st), node: ni})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].key != keys[j].key {
			return keys[i].key < keys[j].key
		}
		return keys[i].node < keys[j].node
	})
	for i := 0; i < len(keys) && len(out) < limit; i++ {
		out = append(out, g.Nodes[keys[i].node].Pos)
	}

	return out
}
