// Package grid is the tile arena every other roadnet package reads from.
//
// What:
//
//   - World is a rectangular, row-major array of Tile values (idx = y*W + x).
//   - Each Tile carries terrain, an overlay (road, zones, park), a level
//     (road class 1..3 or zone density), occupants, a district id and a
//     variation byte whose low 4 bits store the road connectivity mask.
//   - Road constants (build cost, capacity, travel time, bridge penalties)
//     live next to the arena so every engine prices tiles the same way.
//   - HashWorld folds the whole grid into a stable 64-bit FNV-1a digest.
//
// Why:
//
//   - Derived structures (road graph, zone access, traffic, goods) refer to
//     tiles by index only, so they can be discarded and rebuilt freely.
//   - Hash equality validates that two runs with the same inputs produced the
//     same grid, including road level and mask edits.
//
// Connectivity:
//
//	Conn4 lists neighbours in N, E, S, W order. Mask bits follow the same
//	order: bit0 = (x, y-1), bit1 = (x+1, y), bit2 = (x, y+1), bit3 = (x-1, y).
//
// Complexity:
//
//   - At, Index, Coordinate, InBounds:   O(1).
//   - UpdateRoadMasksAround:             O(1).
//   - RecomputeRoadMasks, HashWorld:     O(W×H).
//   - ParseLayout:                       O(W×H).
//
// Errors:
//
//   - ErrEmptyLayout:     layout has no rows or an empty first row.
//   - ErrNonRectangular:  rows have differing lengths.
//   - ErrUnknownGlyph:    a layout character has no tile meaning.
//   - ErrBadDimensions:   New was asked for a non-positive size.
package grid
