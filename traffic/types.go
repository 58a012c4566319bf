package traffic

import (
	"github.com/katalvlaran/roadnet/flowfield"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/zoneaccess"
)

// Config controls Compute.
type Config struct {
	// RequireOutsideConnection restricts routing to roads reaching the map edge.
	RequireOutsideConnection bool `json:"requireOutsideConnection"`
	// RoadTileCapacity is the street capacity used by the congestion metric.
	RoadTileCapacity int `json:"roadTileCapacity"`
	// UseRoadLevelCapacity scales capacity by road class (x1, x1.8, x2.6).
	UseRoadLevelCapacity bool `json:"useRoadLevelCapacity"`

	IncludeCommercialJobs bool `json:"includeCommercialJobs"`
	IncludeIndustrialJobs bool `json:"includeIndustrialJobs"`

	// Metric ranks free-flow routes; MetricTravelTime and MetricSteps both
	// prefer faster roads among otherwise equal routes. Congestion-aware
	// passes always rank by travel time.
	Metric flowfield.Metric `json:"metric"`

	CongestionAwareRouting  bool    `json:"congestionAwareRouting"`
	CongestionIterations    int     `json:"congestionIterations"`
	CongestionAlpha         float64 `json:"congestionAlpha"`
	CongestionBeta          float64 `json:"congestionBeta"`
	CongestionCapacityScale float64 `json:"congestionCapacityScale"`
	CongestionRatioClamp    float64 `json:"congestionRatioClamp"`
}

// DefaultConfig returns the free-flow defaults with BPR-style congestion
// parameters ready for opt-in.
func DefaultConfig() Config {
	return Config{
		RequireOutsideConnection: true,
		RoadTileCapacity:         28,
		UseRoadLevelCapacity:     true,
		IncludeCommercialJobs:    true,
		IncludeIndustrialJobs:    true,
		Metric:                   flowfield.MetricTravelTime,
		CongestionIterations:     4,
		CongestionAlpha:          0.15,
		CongestionBeta:           4.0,
		CongestionCapacityScale:  1.0,
		CongestionRatioClamp:     3.0,
	}
}

// capacity is the per-tile capacity for a road of the given level.
func (c Config) capacity(level int) int {
	if c.UseRoadLevelCapacity {
		return grid.RoadCapacityForLevel(c.RoadTileCapacity, level)
	}
	return c.RoadTileCapacity
}

// Result is the outcome of Compute. RoadTraffic is row-major, saturating at 65535.
type Result struct {
	RoadTraffic []uint16 `json:"-"`

	TotalCommuters       int `json:"totalCommuters"`
	ReachableCommuters   int `json:"reachableCommuters"`
	UnreachableCommuters int `json:"unreachableCommuters"`

	AvgCommute     float64 `json:"avgCommute"`     // steps
	P95Commute     float64 `json:"p95Commute"`     // steps
	AvgCommuteTime float64 `json:"avgCommuteTime"` // street-step equivalents
	P95CommuteTime float64 `json:"p95CommuteTime"`

	MaxTraffic         int     `json:"maxTraffic"`
	CongestedRoadTiles int     `json:"congestedRoadTiles"`
	Congestion         float64 `json:"congestion"` // excess / total traffic, 0..1

	UsedCongestionAwareRouting bool `json:"usedCongestionAwareRouting"`
	RoutingPasses              int  `json:"routingPasses"`
}

type options struct {
	roadToEdge []uint8
	zoneAccess *zoneaccess.Map
}

// Option customises Compute.
type Option func(*options)

// WithRoadToEdge reuses a precomputed outside-connection mask.
func WithRoadToEdge(mask []uint8) Option {
	return func(o *options) { o.roadToEdge = mask }
}

// WithZoneAccess reuses a precomputed zone access map. It is honoured as
// given, even when stale.
func WithZoneAccess(m *zoneaccess.Map) Option {
	return func(o *options) { o.zoneAccess = m }
}
