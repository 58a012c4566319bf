package upgrade

import (
	"errors"
	"time"
)

// ErrDimensionMismatch is returned by Apply for a plan of another grid size.
var ErrDimensionMismatch = errors.New("upgrade: plan dimensions do not match the world")

// Objective selects the benefit the planner maximises per unit of cost.
type Objective int

const (
	// Congestion maximises the reduction of per-tile excess flow.
	Congestion Objective = iota
	// Time maximises flow-weighted travel time saved (milli-steps).
	Time
	// Hybrid mixes both with HybridExcessWeight and HybridTimeWeight.
	Hybrid
)

// String returns "congestion", "time" or "hybrid".
func (o Objective) String() string {
	switch o {
	case Time:
		return "time"
	case Hybrid:
		return "hybrid"
	}
	return "congestion"
}

// MarshalText encodes the objective by name.
func (o Objective) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Config controls PlanUpgrades.
type Config struct {
	BaseTileCapacity     int  `json:"baseTileCapacity"`
	UseRoadLevelCapacity bool `json:"useRoadLevelCapacity"`
	// UpgradeEndpoints includes node tiles. Edges without interior tiles
	// always use their endpoints.
	UpgradeEndpoints bool `json:"upgradeEndpoints"`
	MaxTargetLevel   int  `json:"maxTargetLevel"`
	// MinUtilConsider skips edges whose busiest tile is below this
	// flow/capacity ratio (0 = consider all).
	MinUtilConsider float64 `json:"minUtilConsider"`

	Objective          Objective `json:"objective"`
	HybridExcessWeight float64   `json:"hybridExcessWeight"`
	HybridTimeWeight   float64   `json:"hybridTimeWeight"`

	// Budget caps the total cost: -1 unlimited, 0 selects nothing.
	Budget int `json:"budget"`
}

// DefaultConfig plans congestion relief with no budget cap.
func DefaultConfig() Config {
	return Config{
		BaseTileCapacity:     28,
		UseRoadLevelCapacity: true,
		MaxTargetLevel:       3,
		MinUtilConsider:      1,
		Objective:            Congestion,
		HybridExcessWeight:   1,
		HybridTimeWeight:     1,
		Budget:               -1,
	}
}

// EdgeUpgrade is one accepted upgrade. Cost and benefits are incremental
// over the upgrades accepted before it.
type EdgeUpgrade struct {
	EdgeIndex     int    `json:"edge"`
	A             int    `json:"a"`
	B             int    `json:"b"`
	TargetLevel   int    `json:"targetLevel"`
	Cost          int    `json:"cost"`
	TimeSaved     uint64 `json:"timeSaved"`
	ExcessReduced uint64 `json:"excessReduced"`
	TileCount     int    `json:"tileCount"`
}

// Plan is the outcome of PlanUpgrades. Edges are sorted by (edge, level).
type Plan struct {
	W, H   int
	Config Config

	Edges              []EdgeUpgrade
	TotalCost          int
	TotalTimeSaved     uint64
	TotalExcessReduced uint64

	// TileTargetLevel is the planned level per tile, 0 = unchanged.
	TileTargetLevel []uint8
	Runtime         time.Duration
}
