package grid

// ComputeRoadMask returns the 4-bit connectivity of the road at (x,y), or 0
// when (x,y) is out of bounds or not a road.
func (w *World) ComputeRoadMask(x, y int) uint8 {
	if !w.IsRoad(x, y) {
		return 0
	}
	var m uint8
	for bit, d := range Conn4 {
		if w.IsRoad(x+d[0], y+d[1]) {
			m |= 1 << uint(bit)
		}
	}

	return m
}

// ApplyRoadMask stores the computed mask in the low variation bits,
// keeping the upper four bits untouched.
func (w *World) ApplyRoadMask(x, y int) {
	if !w.IsRoad(x, y) {
		return
	}
	t := w.At(x, y)
	t.Variation = (t.Variation &^ RoadMaskBits) | (w.ComputeRoadMask(x, y) & RoadMaskBits)
}

// UpdateRoadMasksAround refreshes (x,y) and its four neighbours.
func (w *World) UpdateRoadMasksAround(x, y int) {
	w.ApplyRoadMask(x, y)
	for _, d := range Conn4 {
		w.ApplyRoadMask(x+d[0], y+d[1])
	}
}

// RecomputeRoadMasks refreshes every road tile. Bulk editors call this once
// after painting instead of per tile.
// Complexity: O(W×H).
func (w *World) RecomputeRoadMasks() {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			if w.tiles[y*w.width+x].Overlay == Road {
				w.ApplyRoadMask(x, y)
			}
		}
	}
}

// RoadDegree counts road neighbours of (x,y) using live overlays.
func (w *World) RoadDegree(x, y int) int {
	n := 0
	for _, d := range Conn4 {
		if w.IsRoad(x+d[0], y+d[1]) {
			n++
		}
	}

	return n
}
