package grid

import "errors"

// Sentinel errors for grid construction.
var (
	// ErrEmptyLayout indicates the layout has no rows or no columns.
	ErrEmptyLayout = errors.New("grid: layout must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all layout rows must have the same length")
	// ErrUnknownGlyph indicates a layout character with no tile mapping.
	ErrUnknownGlyph = errors.New("grid: unknown layout glyph")
	// ErrBadDimensions indicates a non-positive width or height.
	ErrBadDimensions = errors.New("grid: width and height must be positive")
)

// Terrain is the ground kind of a tile.
type Terrain uint8

const (
	// Water blocks land paths; roads on water are bridges.
	Water Terrain = iota
	// Sand is buildable land.
	Sand
	// Grass is buildable land (default).
	Grass
)

// String returns the terrain name.
func (t Terrain) String() string {
	switch t {
	case Water:
		return "water"
	case Sand:
		return "sand"
	case Grass:
		return "grass"
	}
	return "unknown"
}

// Overlay is what has been built on a tile.
type Overlay uint8

const (
	None Overlay = iota
	Road
	Residential
	Commercial
	Industrial
	Park
)

// String returns the overlay name.
func (o Overlay) String() string {
	switch o {
	case None:
		return "none"
	case Road:
		return "road"
	case Residential:
		return "residential"
	case Commercial:
		return "commercial"
	case Industrial:
		return "industrial"
	case Park:
		return "park"
	}
	return "unknown"
}

// IsZone reports whether o is one of the residential, commercial or industrial zones.
func (o Overlay) IsZone() bool {
	return o == Residential || o == Commercial || o == Industrial
}

// RoadMaskBits is the part of Tile.Variation reserved for the road mask.
const RoadMaskBits uint8 = 0x0F

// Tile is a single grid cell.
type Tile struct {
	Terrain   Terrain
	Overlay   Overlay
	Height    float32
	Variation uint8  // low 4 bits: road mask when Overlay == Road
	Level     uint8  // road class or zone density, 1..3
	Occupants uint16 // residents or workers
	District  uint8
}

// RoadMask returns the 4-bit neighbour mask stored in the variation byte.
func (t Tile) RoadMask() uint8 { return t.Variation & RoadMaskBits }

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Conn4 holds the 4-neighbour offsets in N, E, S, W order.
// The order doubles as the deterministic expansion order of every BFS in roadnet.
var Conn4 = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// World is the tile arena. It is not safe for concurrent mutation.
type World struct {
	width, height int
	seed          uint64
	tiles         []Tile
}
