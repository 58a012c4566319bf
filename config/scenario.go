package config

import (
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/export"
	"github.com/katalvlaran/roadnet/flowfield"
	"github.com/katalvlaran/roadnet/goods"
	"github.com/katalvlaran/roadnet/osmimport"
	"github.com/katalvlaran/roadnet/resilience"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/traffic"
	"github.com/katalvlaran/roadnet/upgrade"
)

// Scenario is one engine run.
type Scenario struct {
	Name string `yaml:"name" validate:"max=128"`
	Seed uint64 `yaml:"seed"`

	// Layout rows use the grid glyphs; ignored when OSM is set.
	Layout []string    `yaml:"layout"`
	OSM    *OSMSection `yaml:"osm"`

	// EmployedShare is the fraction of residents who commute.
	EmployedShare float64 `yaml:"employedShare" validate:"gte=0,lte=1"`

	Zones      ZoneSection       `yaml:"zones"`
	Traffic    TrafficSection    `yaml:"traffic"`
	Goods      GoodsSection      `yaml:"goods"`
	Centrality CentralitySection `yaml:"centrality"`
	Bypass     BypassSection     `yaml:"bypass"`
	Upgrade    UpgradeSection    `yaml:"upgrade"`
	Export     ExportSection     `yaml:"export"`
}

// OSMSection imports the world from an OSM XML extract.
type OSMSection struct {
	Path             string `yaml:"path" validate:"required"`
	osmimport.Config `yaml:",inline"`
}

// UnmarshalYAML starts from osmimport.DefaultConfig.
func (s *OSMSection) UnmarshalYAML(n *yaml.Node) error {
	type plain OSMSection
	p := plain{Config: osmimport.DefaultConfig()}
	if err := n.Decode(&p); err != nil {
		return err
	}
	*s = OSMSection(p)

	return nil
}

// ZoneSection seeds zone tiles after the world is built.
type ZoneSection struct {
	// Level of every zone tile; 0 keeps the parsed level.
	Level                int    `yaml:"level" validate:"gte=0,lte=3"`
	ResidentialOccupants uint16 `yaml:"residentialOccupants"`
	JobOccupants         uint16 `yaml:"jobOccupants"`
	// Tiles override single tiles after the zone defaults.
	Tiles []TileSection `yaml:"tiles" validate:"dive"`
}

// TileSection overrides one tile.
type TileSection struct {
	X         int     `yaml:"x" validate:"gte=0"`
	Y         int     `yaml:"y" validate:"gte=0"`
	Level     int     `yaml:"level" validate:"gte=0,lte=3"`
	Occupants *uint16 `yaml:"occupants"`
}

// TrafficSection mirrors traffic.Config.
type TrafficSection struct {
	RequireOutsideConnection bool   `yaml:"requireOutsideConnection"`
	RoadTileCapacity         int    `yaml:"roadTileCapacity" validate:"gte=1"`
	UseRoadLevelCapacity     bool   `yaml:"useRoadLevelCapacity"`
	IncludeCommercialJobs    bool   `yaml:"includeCommercialJobs"`
	IncludeIndustrialJobs    bool   `yaml:"includeIndustrialJobs"`
	Metric                   string `yaml:"metric" validate:"oneof=hops travelTime steps"`

	CongestionAwareRouting  bool    `yaml:"congestionAwareRouting"`
	CongestionIterations    int     `yaml:"congestionIterations" validate:"gte=1,lte=16"`
	CongestionAlpha         float64 `yaml:"congestionAlpha" validate:"gte=0"`
	CongestionBeta          float64 `yaml:"congestionBeta" validate:"gte=0,lte=16"`
	CongestionCapacityScale float64 `yaml:"congestionCapacityScale" validate:"gt=0"`
	CongestionRatioClamp    float64 `yaml:"congestionRatioClamp" validate:"gte=1"`
}

// GoodsSection mirrors goods.Config.
type GoodsSection struct {
	RequireOutsideConnection bool    `yaml:"requireOutsideConnection"`
	AllowImports             bool    `yaml:"allowImports"`
	AllowExports             bool    `yaml:"allowExports"`
	SupplyScale              float64 `yaml:"supplyScale" validate:"gte=0"`
	DemandScale              float64 `yaml:"demandScale" validate:"gte=0"`
}

// CentralitySection mirrors centrality.Config.
type CentralitySection struct {
	Weight                  string `yaml:"weight" validate:"oneof=steps time"`
	MaxSources              int    `yaml:"maxSources" validate:"gte=0"`
	ScaleSampleToFull       bool   `yaml:"scaleSampleToFull"`
	Undirected              bool   `yaml:"undirected"`
	NormalizeBetweenness    bool   `yaml:"normalizeBetweenness"`
	ClosenessComponentScale bool   `yaml:"closenessComponentScale"`
}

// BypassSection mirrors resilience.BypassConfig.
type BypassSection struct {
	Top             int  `yaml:"top" validate:"gte=0"`
	MoneyObjective  bool `yaml:"moneyObjective"`
	TargetLevel     int  `yaml:"targetLevel" validate:"gte=1,lte=3"`
	AllowBridges    bool `yaml:"allowBridges"`
	MaxPrimaryCost  int  `yaml:"maxPrimaryCost" validate:"gte=0"`
	MaxNodesPerSide int  `yaml:"maxNodesPerSide" validate:"gte=1"`
	RankByTraffic   bool `yaml:"rankByTraffic"`
}

// UpgradeSection mirrors upgrade.Config.
type UpgradeSection struct {
	BaseTileCapacity     int     `yaml:"baseTileCapacity" validate:"gte=1"`
	UseRoadLevelCapacity bool    `yaml:"useRoadLevelCapacity"`
	UpgradeEndpoints     bool    `yaml:"upgradeEndpoints"`
	MaxTargetLevel       int     `yaml:"maxTargetLevel" validate:"gte=1,lte=3"`
	MinUtilConsider      float64 `yaml:"minUtilConsider" validate:"gte=0"`
	Objective            string  `yaml:"objective" validate:"oneof=congestion time hybrid"`
	HybridExcessWeight   float64 `yaml:"hybridExcessWeight" validate:"gte=0"`
	HybridTimeWeight     float64 `yaml:"hybridTimeWeight" validate:"gte=0"`
	// Budget: -1 unlimited, 0 plans nothing.
	Budget int `yaml:"budget" validate:"gte=-1"`
	// Apply writes the plan back into the world after planning.
	Apply bool `yaml:"apply"`
}

// ExportSection selects the files written by cmd/roadnet.
type ExportSection struct {
	export.Config `yaml:",inline"`
	Formats       []string `yaml:"formats" validate:"dive,oneof=json dot csv geojson od plan"`
	// Compress appends ".sz" and writes snappy streams.
	Compress    bool `yaml:"compress"`
	TopOD       int  `yaml:"topOD" validate:"gte=0"`
	MinODAmount int  `yaml:"minODAmount" validate:"gte=0"`
}

// Default returns a scenario with every section at its stage defaults.
func Default() *Scenario {
	tc := traffic.DefaultConfig()
	gc := goods.DefaultConfig()
	cc := centrality.DefaultConfig()
	bc := resilience.DefaultBypassConfig()
	uc := upgrade.DefaultConfig()

	return &Scenario{
		Name:          "scenario",
		Seed:          1,
		EmployedShare: 1,
		Zones:         ZoneSection{ResidentialOccupants: 10, JobOccupants: 10},
		Traffic: TrafficSection{
			RequireOutsideConnection: tc.RequireOutsideConnection,
			RoadTileCapacity:         tc.RoadTileCapacity,
			UseRoadLevelCapacity:     tc.UseRoadLevelCapacity,
			IncludeCommercialJobs:    tc.IncludeCommercialJobs,
			IncludeIndustrialJobs:    tc.IncludeIndustrialJobs,
			Metric:                   tc.Metric.String(),
			CongestionAwareRouting:   tc.CongestionAwareRouting,
			CongestionIterations:     tc.CongestionIterations,
			CongestionAlpha:          tc.CongestionAlpha,
			CongestionBeta:           tc.CongestionBeta,
			CongestionCapacityScale:  tc.CongestionCapacityScale,
			CongestionRatioClamp:     tc.CongestionRatioClamp,
		},
		Goods: GoodsSection(gc),
		Centrality: CentralitySection{
			Weight:                  cc.Weight.String(),
			MaxSources:              cc.MaxSources,
			ScaleSampleToFull:       cc.ScaleSampleToFull,
			Undirected:              cc.Undirected,
			NormalizeBetweenness:    cc.NormalizeBetweenness,
			ClosenessComponentScale: cc.ClosenessComponentScale,
		},
		Bypass: BypassSection(bc),
		Upgrade: UpgradeSection{
			BaseTileCapacity:     uc.BaseTileCapacity,
			UseRoadLevelCapacity: uc.UseRoadLevelCapacity,
			UpgradeEndpoints:     uc.UpgradeEndpoints,
			MaxTargetLevel:       uc.MaxTargetLevel,
			MinUtilConsider:      uc.MinUtilConsider,
			Objective:            uc.Objective.String(),
			HybridExcessWeight:   uc.HybridExcessWeight,
			HybridTimeWeight:     uc.HybridTimeWeight,
			Budget:               uc.Budget,
		},
		Export: ExportSection{
			Config:  export.DefaultConfig(),
			Formats: []string{"json", "geojson", "plan"},
			TopOD:   200,
		},
	}
}

// TrafficConfig converts the traffic section.
func (s *Scenario) TrafficConfig() traffic.Config {
	t := s.Traffic
	return traffic.Config{
		RequireOutsideConnection: t.RequireOutsideConnection,
		RoadTileCapacity:         t.RoadTileCapacity,
		UseRoadLevelCapacity:     t.UseRoadLevelCapacity,
		IncludeCommercialJobs:    t.IncludeCommercialJobs,
		IncludeIndustrialJobs:    t.IncludeIndustrialJobs,
		Metric:                   parseMetric(t.Metric),
		CongestionAwareRouting:   t.CongestionAwareRouting,
		CongestionIterations:     t.CongestionIterations,
		CongestionAlpha:          t.CongestionAlpha,
		CongestionBeta:           t.CongestionBeta,
		CongestionCapacityScale:  t.CongestionCapacityScale,
		CongestionRatioClamp:     t.CongestionRatioClamp,
	}
}

// FlowConfig is the edge capacity model, shared with the traffic section.
func (s *Scenario) FlowConfig() roadgraph.FlowConfig {
	return roadgraph.FlowConfig{
		BaseTileCapacity:     s.Traffic.RoadTileCapacity,
		UseRoadLevelCapacity: s.Traffic.UseRoadLevelCapacity,
	}
}

// GoodsConfig converts the goods section.
func (s *Scenario) GoodsConfig() goods.Config { return goods.Config(s.Goods) }

// CentralityConfig converts the centrality section.
func (s *Scenario) CentralityConfig() centrality.Config {
	c := s.Centrality
	w := centrality.WeightSteps
	if c.Weight == "time" {
		w = centrality.WeightTravelTime
	}
	return centrality.Config{
		Weight:                  w,
		MaxSources:              c.MaxSources,
		ScaleSampleToFull:       c.ScaleSampleToFull,
		Undirected:              c.Undirected,
		NormalizeBetweenness:    c.NormalizeBetweenness,
		ClosenessComponentScale: c.ClosenessComponentScale,
	}
}

// BypassConfig converts the bypass section.
func (s *Scenario) BypassConfig() resilience.BypassConfig { return resilience.BypassConfig(s.Bypass) }

// UpgradeConfig converts the upgrade section.
func (s *Scenario) UpgradeConfig() upgrade.Config {
	u := s.Upgrade
	obj := upgrade.Congestion
	switch u.Objective {
	case "time":
		obj = upgrade.Time
	case "hybrid":
		obj = upgrade.Hybrid
	}
	return upgrade.Config{
		BaseTileCapacity:     u.BaseTileCapacity,
		UseRoadLevelCapacity: u.UseRoadLevelCapacity,
		UpgradeEndpoints:     u.UpgradeEndpoints,
		MaxTargetLevel:       u.MaxTargetLevel,
		MinUtilConsider:      u.MinUtilConsider,
		Objective:            obj,
		HybridExcessWeight:   u.HybridExcessWeight,
		HybridTimeWeight:     u.HybridTimeWeight,
		Budget:               u.Budget,
	}
}

func parseMetric(s string) flowfield.Metric {
	switch s {
	case "hops":
		return flowfield.MetricHops
	case "steps":
		return flowfield.MetricSteps
	}
	return flowfield.MetricTravelTime
}
