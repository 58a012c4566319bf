package zoneaccess

import (
	"sort"

	"github.com/katalvlaran/roadnet/grid"
)

// Map holds, per tile, the row-major index of the road serving it (-1 = none).
type Map struct {
	W, H    int
	RoadIdx []int
}

// source pairs a block boundary tile with its access road.
type source struct {
	zone, road int
}

// Build computes the zone access map of w.
//
// roadToEdge, when its length matches the grid, restricts usable roads to
// tiles with a non-zero entry (typically the roads connected to the map edge).
// Any other length is ignored.
//
// Steps per zone block:
//  1. BFS the same-overlay block in N, E, S, W order.
//  2. Each block tile next to a usable road takes the lowest road index.
//  3. Sort those sources by (zone, road) and propagate inward.
func Build(w *grid.World, roadToEdge []uint8) *Map {
	out := &Map{}
	if w == nil {
		return out
	}
	out.W, out.H = w.Width(), w.Height()
	n := w.Len()
	out.RoadIdx = make([]int, n)
	for i := range out.RoadIdx {
		out.RoadIdx[i] = -1
	}
	maskOK := len(roadToEdge) == n

	visited := make([]bool, n)
	var queue, block []int
	var sources []source

	for start := 0; start < n; start++ {
		t0 := w.Tile(start)
		if visited[start] || !t0.Overlay.IsZone() || t0.Terrain == grid.Water {
			continue
		}

		// 1) Gather the block.
		overlay := t0.Overlay
		visited[start] = true
		queue = append(queue[:0], start)
		block = block[:0]
		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			block = append(block, cur)
			cx, cy := w.Coordinate(cur)
			for _, d := range grid.Conn4 {
				nx, ny := cx+d[0], cy+d[1]
				if !w.InBounds(nx, ny) {
					continue
				}
				ni := w.Index(nx, ny)
				if visited[ni] {
					continue
				}
				if nt := w.Tile(ni); nt.Terrain == grid.Water || nt.Overlay != overlay {
					continue
				}
				visited[ni] = true
				queue = append(queue, ni)
			}
		}

		// 2) Boundary sources.
		sources = sources[:0]
		for _, zi := range block {
			zx, zy := w.Coordinate(zi)
			best := -1
			for _, d := range grid.Conn4 {
				rx, ry := zx+d[0], zy+d[1]
				if !w.IsRoad(rx, ry) {
					continue
				}
				ri := w.Index(rx, ry)
				if maskOK && roadToEdge[ri] == 0 {
					continue
				}
				if best < 0 || ri < best {
					best = ri
				}
			}
			if best >= 0 {
				out.RoadIdx[zi] = best
				sources = append(sources, source{zone: zi, road: best})
			}
		}
		if len(sources) == 0 {
			continue
		}

		// 3) Propagate inward.
		sort.Slice(sources, func(i, j int) bool {
			if sources[i].zone != sources[j].zone {
				return sources[i].zone < sources[j].zone
			}
			return sources[i].road < sources[j].road
		})
		queue = queue[:0]
		for _, s := range sources {
			queue = append(queue, s.zone)
		}
		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			road := out.RoadIdx[cur]
			cx, cy := w.Coordinate(cur)
			for _, d := range grid.Conn4 {
				nx, ny := cx+d[0], cy+d[1]
				if !w.InBounds(nx, ny) {
					continue
				}
				ni := w.Index(nx, ny)
				if out.RoadIdx[ni] >= 0 {
					continue
				}
				if nt := w.Tile(ni); nt.Terrain == grid.Water || nt.Overlay != overlay {
					continue
				}
				out.RoadIdx[ni] = road
				queue = append(queue, ni)
			}
		}
	}

	return out
}

// Usable reports whether m matches a w×h grid.
func (m *Map) Usable(w, h int) bool {
	return m != nil && m.W == w && m.H == h && len(m.RoadIdx) == w*h
}

// HasAccess reports whether the tile at (x,y) has an access road.
func (m *Map) HasAccess(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.RoadIdx[y*m.W+x] >= 0
}

// PickRoadTile returns the access road of the tile at (x,y).
func (m *Map) PickRoadTile(x, y int) (grid.Point, bool) {
	if !m.HasAccess(x, y) {
		return grid.Point{}, false
	}
	ri := m.RoadIdx[y*m.W+x]

	return grid.Point{X: ri % m.W, Y: ri / m.W}, true
}
