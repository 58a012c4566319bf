package osmimport

import "github.com/pkg/errors"

var (
	// ErrNoBounds is returned when the extract has neither bounds nor nodes.
	ErrNoBounds = errors.New("osmimport: no bounds in OSM data")
	// ErrZeroArea is returned for degenerate bounds.
	ErrZeroArea = errors.New("osmimport: OSM bounds have zero area")
	// ErrWorldTooSmall is returned when the padding leaves no room to draw.
	ErrWorldTooSmall = errors.New("osmimport: world too small for padding")
	// ErrTooLarge is returned when an auto-sized world exceeds MaxAutoSize.
	ErrTooLarge = errors.New("osmimport: auto-sized world too large")
)

// MaxAutoSize caps each side of an auto-sized world.
const MaxAutoSize = 4096

// Config controls projection and rasterisation.
type Config struct {
	// Width and Height fix the size of a new world; <= 0 derives it from
	// the bounds and MetersPerTile.
	Width  int `yaml:"width" validate:"gte=0,lte=4096"`
	Height int `yaml:"height" validate:"gte=0,lte=4096"`
	// MetersPerTile is the auto-sizing resolution.
	MetersPerTile float64 `yaml:"metersPerTile" validate:"gt=0"`
	// Padding in tiles around the projected bounds.
	Padding int `yaml:"padding" validate:"gte=0"`
	// PreferBoundsTag uses <bounds> over the node extent when present.
	PreferBoundsTag bool `yaml:"preferBoundsTag"`

	// FixedRadius >= 0 thickens every road by that Manhattan radius.
	FixedRadius int `yaml:"fixedRadius" validate:"gte=-1"`
	// ThickenByClass uses radius level-1 when FixedRadius < 0.
	ThickenByClass bool `yaml:"thickenByClass"`

	ImportRoads    bool `yaml:"importRoads"`
	ImportWater    bool `yaml:"importWater"`
	WaterwayRadius int  `yaml:"waterwayRadius" validate:"gte=0"`
}

// DefaultConfig imports roads only, 20 m per tile, 2 tiles of padding,
// thickened by class.
func DefaultConfig() Config {
	return Config{
		MetersPerTile:   20,
		Padding:         2,
		PreferBoundsTag: true,
		FixedRadius:     -1,
		ThickenByClass:  true,
		ImportRoads:     true,
		WaterwayRadius:  1,
	}
}

// Bounds is a lat/lon rectangle in degrees.
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// Stats summarises an import.
type Stats struct {
	NodesParsed         int
	WaysParsed          int
	HighwayWaysImported int
	WaterWaysImported   int
	RoadTiles           int
	WaterTiles          int
	Bounds              Bounds
	Width, Height       int
}
