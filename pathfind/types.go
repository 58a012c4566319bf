package pathfind

// CostModel selects the primary cost of a build search.
type CostModel int

const (
	// CostNewTiles counts tiles that are not already roads.
	CostNewTiles CostModel = iota
	// CostMoney prices every tile with grid.RoadPlacementCost at the target level.
	CostMoney
)

// String returns the model name.
func (m CostModel) String() string {
	if m == CostMoney {
		return "money"
	}
	return "newTiles"
}

// BuildConfig controls RoadBuildPath and RoadBuildPathBetweenSets.
type BuildConfig struct {
	CostModel    CostModel
	TargetLevel  int  // road class priced under CostMoney
	AllowBridges bool // water tiles become buildable bridge tiles
	// SlopeCost is the penalty per 1.0 of height difference per move (0 = off).
	// Moves onto existing roads are exempt unless SlopeOnRoads is set.
	SlopeCost    int
	SlopeOnRoads bool
	// Blocked lists directed moves (MoveKey) the search must never take.
	Blocked []uint64
	// MaxPrimaryCost aborts candidates above this cost (-1 = unlimited).
	MaxPrimaryCost int
}

// DefaultBuildConfig returns a new-tiles search at street level, land only,
// with no slope penalty and no cost ceiling.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		CostModel:      CostNewTiles,
		TargetLevel:    1,
		MaxPrimaryCost: -1,
	}
}

// MoveKey packs a directed move between two row-major tile indices.
func MoveKey(from, to int) uint64 {
	return uint64(uint32(from))<<32 | uint64(uint32(to))
}

// searchDirs is the neighbour order of the searches: E, W, S, N.
var searchDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

const (
	inf      = int(^uint(0)>>1) / 4
	dirNone  = 4
	dirCount = 5
)
