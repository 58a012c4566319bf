package export

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/upgrade"
)

// planFormatVersion is bumped on incompatible plan document changes.
const planFormatVersion = 1

type xy struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type planEdgeDoc struct {
	upgrade.EdgeUpgrade
	APos  *xy      `json:"aPos,omitempty"`
	BPos  *xy      `json:"bPos,omitempty"`
	Tiles [][2]int `json:"tiles,omitempty"`
}

type tileUpgradeDoc struct {
	X  int `json:"x"`
	Y  int `json:"y"`
	To int `json:"to"`
}

type planDoc struct {
	Version            int              `json:"version"`
	W                  int              `json:"w"`
	H                  int              `json:"h"`
	Config             upgrade.Config   `json:"config"`
	RuntimeSec         float64          `json:"runtimeSec"`
	TotalCost          int              `json:"totalCost"`
	TotalTimeSaved     uint64           `json:"totalTimeSaved"`
	TotalExcessReduced uint64           `json:"totalExcessReduced"`
	Edges              []planEdgeDoc    `json:"edges"`
	TileUpgrades       []tileUpgradeDoc `json:"tileUpgrades,omitempty"`
}

// WritePlanJSON writes plan as indented JSON. With g, each edge carries its
// endpoint positions and, when cfg.IncludeEdgeTiles is set, its tiles.
// Planned tile levels are listed as tileUpgrades.
func WritePlanJSON(w io.Writer, plan upgrade.Plan, g *roadgraph.Graph, cfg Config) error {
	doc := planDoc{
		Version:            planFormatVersion,
		W:                  plan.W,
		H:                  plan.H,
		Config:             plan.Config,
		RuntimeSec:         plan.Runtime.Seconds(),
		TotalCost:          plan.TotalCost,
		TotalTimeSaved:     plan.TotalTimeSaved,
		TotalExcessReduced: plan.TotalExcessReduced,
		Edges:              make([]planEdgeDoc, 0, len(plan.Edges)),
	}
	for _, e := range plan.Edges {
		ed := planEdgeDoc{EdgeUpgrade: e}
		if g != nil && e.EdgeIndex >= 0 && e.EdgeIndex < len(g.Edges) {
			if e.A >= 0 && e.A < len(g.Nodes) {
				ed.APos = &xy{g.Nodes[e.A].Pos.X, g.Nodes[e.A].Pos.Y}
			}
			if e.B >= 0 && e.B < len(g.Nodes) {
				ed.BPos = &xy{g.Nodes[e.B].Pos.X, g.Nodes[e.B].Pos.Y}
			}
			if cfg.IncludeEdgeTiles {
				for _, p := range g.Edges[e.EdgeIndex].Tiles {
					ed.Tiles = append(ed.Tiles, [2]int{p.X, p.Y})
				}
			}
		}
		doc.Edges = append(doc.Edges, ed)
	}
	if plan.W > 0 {
		for idx, lvl := range plan.TileTargetLevel {
			if lvl != 0 {
				doc.TileUpgrades = append(doc.TileUpgrades, tileUpgradeDoc{X: idx % plan.W, Y: idx / plan.W, To: int(lvl)})
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "export: write plan JSON")
	}

	return nil
}
