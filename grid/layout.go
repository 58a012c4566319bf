package grid

import "fmt"

// Layout glyphs understood by ParseLayout.
//
//	.  grass, no overlay        ~  water            s  sand
//	#  street (level 1)         1  street           2  avenue     3  highway
//	=  street bridge on water   R  residential      C  commercial
//	I  industrial               P  park
const (
	GlyphGrass       = '.'
	GlyphWater       = '~'
	GlyphSand        = 's'
	GlyphRoad        = '#'
	GlyphBridge      = '='
	GlyphResidential = 'R'
	GlyphCommercial  = 'C'
	GlyphIndustrial  = 'I'
	GlyphPark        = 'P'
)

// ParseLayout builds a World from rows of glyphs, one byte per tile.
// Zones are placed at level 1 with no occupants; masks are computed once at the end.
// Complexity: O(W×H).
func ParseLayout(rows []string, seed uint64) (*World, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLayout
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonRectangular, y, len(row), width)
		}
	}

	w, err := New(width, len(rows), seed)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x := 0; x < width; x++ {
			t := w.At(x, y)
			switch c := row[x]; c {
			case GlyphGrass:
			case GlyphWater:
				t.Terrain = Water
			case GlyphSand:
				t.Terrain = Sand
			case GlyphRoad, '1', '2', '3':
				t.Overlay = Road
				t.Level = 1
				if c == '2' || c == '3' {
					t.Level = c - '0'
				}
			case GlyphBridge:
				t.Terrain = Water
				t.Overlay = Road
			case GlyphResidential:
				t.Overlay = Residential
			case GlyphCommercial:
				t.Overlay = Commercial
			case GlyphIndustrial:
				t.Overlay = Industrial
			case GlyphPark:
				t.Overlay = Park
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownGlyph, c, x, y)
			}
		}
	}
	w.RecomputeRoadMasks()

	return w, nil
}

// MustParseLayout is ParseLayout for literal fixtures. It panics on error.
func MustParseLayout(rows []string, seed uint64) *World {
	w, err := ParseLayout(rows, seed)
	if err != nil {
		panic(err)
	}

	return w
}

// Glyph returns the layout character that best describes t.
func Glyph(t Tile) byte {
	switch t.Overlay {
	case Road:
		if t.Terrain == Water {
			return GlyphBridge
		}
		if t.Level >= 2 {
			return '0' + byte(ClampRoadLevel(int(t.Level)))
		}
		return GlyphRoad
	case Residential:
		return GlyphResidential
	case Commercial:
		return GlyphCommercial
	case Industrial:
		return GlyphIndustrial
	case Park:
		return GlyphPark
	}
	switch t.Terrain {
	case Water:
		return GlyphWater
	case Sand:
		return GlyphSand
	}
	return GlyphGrass
}

// Layout renders w back to glyph rows.
func (w *World) Layout() []string {
	rows := make([]string, w.height)
	buf := make([]byte, w.width)
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			buf[x] = Glyph(w.tiles[y*w.width+x])
		}
		rows[y] = string(buf)
	}

	return rows
}
