package grid

import "fmt"

// New allocates a width×height world of grass tiles at level 1.
// The upper four variation bits of each tile are seeded from (x, y, seed)
// so tie-breaking on variation is stable for a given seed.
// Returns ErrBadDimensions when width or height is not positive.
// Complexity: O(W×H).
func New(width, height int, seed uint64) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	w := &World{
		width:  width,
		height: height,
		seed:   seed,
		tiles:  make([]Tile, width*height),
	}
	seed32 := SeedMix32(seed)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			w.tiles[y*width+x] = Tile{
				Terrain:   Grass,
				Overlay:   None,
				Level:     1,
				Variation: uint8(HashCoords32(x, y, seed32) & 0xF0),
			}
		}
	}

	return w, nil
}

// MustNew is New for fixed, known-good dimensions. It panics on error.
func MustNew(width, height int, seed uint64) *World {
	w, err := New(width, height, seed)
	if err != nil {
		panic(err)
	}

	return w
}

// Width returns the number of columns.
func (w *World) Width() int { return w.width }

// Height returns the number of rows.
func (w *World) Height() int { return w.height }

// Seed returns the world seed.
func (w *World) Seed() uint64 { return w.seed }

// Len returns Width*Height.
func (w *World) Len() int { return len(w.tiles) }

// InBounds reports whether (x,y) lies within the grid.
// Complexity: O(1).
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// Index maps (x,y) to its row-major index y*Width + x.
// Complexity: O(1).
func (w *World) Index(x, y int) int {
	return y*w.width + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (w *World) Coordinate(idx int) (x, y int) {
	return idx % w.width, idx / w.width
}

// PointOf converts a row-major index to a Point.
func (w *World) PointOf(idx int) Point {
	return Point{X: idx % w.width, Y: idx / w.width}
}

// IsEdge reports whether (x,y) sits on the outer border of the map.
func (w *World) IsEdge(x, y int) bool {
	return x == 0 || y == 0 || x == w.width-1 || y == w.height-1
}

// At returns a pointer into the arena. The caller must check InBounds first.
func (w *World) At(x, y int) *Tile {
	return &w.tiles[y*w.width+x]
}

// Tile returns a copy of the tile at idx.
func (w *World) Tile(idx int) Tile {
	return w.tiles[idx]
}

// Tiles exposes the backing arena in row-major order.
func (w *World) Tiles() []Tile {
	return w.tiles
}

// IsRoad reports whether (x,y) is in bounds and carries a road.
func (w *World) IsRoad(x, y int) bool {
	return w.InBounds(x, y) && w.tiles[y*w.width+x].Overlay == Road
}

// Clone returns an independent deep copy.
func (w *World) Clone() *World {
	c := &World{width: w.width, height: w.height, seed: w.seed, tiles: make([]Tile, len(w.tiles))}
	copy(c.tiles, w.tiles)

	return c
}

// SetTerrain changes the terrain kind of a tile.
func (w *World) SetTerrain(x, y int, t Terrain) {
	if !w.InBounds(x, y) {
		return
	}
	w.At(x, y).Terrain = t
}

// SetRoad places (or re-levels) a road and refreshes the masks around it.
func (w *World) SetRoad(x, y, level int) {
	if !w.InBounds(x, y) {
		return
	}
	t := w.At(x, y)
	t.Overlay = Road
	t.Level = uint8(ClampRoadLevel(level))
	t.Occupants = 0
	w.UpdateRoadMasksAround(x, y)
}

// SetOverlay places an overlay with the given level (clamped to 1..3).
// Switching a tile into or out of Road refreshes neighbour masks.
func (w *World) SetOverlay(x, y int, ov Overlay, level int) {
	if !w.InBounds(x, y) {
		return
	}
	t := w.At(x, y)
	wasRoad := t.Overlay == Road
	t.Overlay = ov
	t.Level = uint8(ClampRoadLevel(level))
	if ov == Road || ov == None || ov == Park {
		t.Occupants = 0
	}
	if wasRoad && ov != Road {
		t.Variation &^= RoadMaskBits
	}
	if wasRoad || ov == Road {
		w.UpdateRoadMasksAround(x, y)
	}
}

// SetOccupants sets the residents or workers of a zone tile.
func (w *World) SetOccupants(x, y int, n uint16) {
	if !w.InBounds(x, y) {
		return
	}
	w.At(x, y).Occupants = n
}

// Clear removes whatever overlay is on (x,y).
func (w *World) Clear(x, y int) {
	w.SetOverlay(x, y, None, 1)
}
