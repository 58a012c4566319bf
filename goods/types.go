package goods

import "github.com/katalvlaran/roadnet/zoneaccess"

// Config controls Compute.
type Config struct {
	RequireOutsideConnection bool    `json:"requireOutsideConnection"`
	AllowImports             bool    `json:"allowImports"`
	AllowExports             bool    `json:"allowExports"`
	SupplyScale              float64 `json:"supplyScale"`
	DemandScale              float64 `json:"demandScale"`
}

// DefaultConfig enables trade through the map edge at unit scale.
func DefaultConfig() Config {
	return Config{
		RequireOutsideConnection: true,
		AllowImports:             true,
		AllowExports:             true,
		SupplyScale:              1,
		DemandScale:              1,
	}
}

// Result is the outcome of Compute. Slices are row-major.
type Result struct {
	RoadGoodsTraffic []uint16 `json:"-"`
	// CommercialFill is delivered/demand mapped to 0..255 on commercial
	// tiles and 255 elsewhere.
	CommercialFill []uint8 `json:"-"`

	GoodsProduced     int `json:"goodsProduced"`
	GoodsDemand       int `json:"goodsDemand"`
	GoodsDelivered    int `json:"goodsDelivered"`
	GoodsImported     int `json:"goodsImported"`
	GoodsExported     int `json:"goodsExported"`
	UnreachableDemand int `json:"unreachableDemand"`

	// Satisfaction is delivered/demand in [0,1]; 1 when there is no demand.
	Satisfaction        float64 `json:"satisfaction"`
	MaxRoadGoodsTraffic int     `json:"maxRoadGoodsTraffic"`
}

type options struct {
	roadToEdge []uint8
	zoneAccess *zoneaccess.Map
	debug      *Debug
}

// Option customises Compute.
type Option func(*options)

// WithRoadToEdge reuses a precomputed outside-connection mask.
func WithRoadToEdge(mask []uint8) Option {
	return func(o *options) { o.roadToEdge = mask }
}

// WithZoneAccess reuses a precomputed zone access map of matching size.
func WithZoneAccess(m *zoneaccess.Map) Option {
	return func(o *options) { o.zoneAccess = m }
}

// WithDebug collects origin-destination edges into d. d is reset first.
func WithDebug(d *Debug) Option {
	return func(o *options) { o.debug = d }
}
