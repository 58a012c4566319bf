package pathfind

import "github.com/katalvlaran/roadnet/grid"

// RoadPathToEdge runs a BFS over roads from start and returns the path to
// the first border road reached. cost is the number of steps.
func RoadPathToEdge(w *grid.World, start grid.Point) ([]grid.Point, int, bool) {
	if w == nil || !w.IsRoad(start.X, start.Y) {
		return nil, 0, false
	}
	n := w.Len()
	si := w.Index(start.X, start.Y)
	cameFrom := make([]int, n)
	visited := make([]bool, n)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	visited[si] = true
	queue := []int{si}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		cx, cy := w.Coordinate(cur)
		if w.IsEdge(cx, cy) {
			path := reconstruct(w, cameFrom, si, cur)
			return path, len(path) - 1, true
		}
		for _, d := range searchDirs {
			nx, ny := cx+d[0], cy+d[1]
			if !w.IsRoad(nx, ny) {
				continue
			}
			ni := w.Index(nx, ny)
			if visited[ni] {
				continue
			}
			visited[ni] = true
			cameFrom[ni] = cur
			queue = append(queue, ni)
		}
	}

	return nil, 0, false
}

// RoadsConnectedToEdge marks (1) every road tile that reaches the map border
// through roads. Border roads seed the BFS in row-then-column scan order.
// Complexity: O(W×H).
func RoadsConnectedToEdge(w *grid.World) []uint8 {
	if w == nil {
		return nil
	}
	out := make([]uint8, w.Len())
	var queue []int
	push := func(x, y int) {
		if !w.IsRoad(x, y) {
			return
		}
		i := w.Index(x, y)
		if out[i] != 0 {
			return
		}
		out[i] = 1
		queue = append(queue, i)
	}

	width, height := w.Width(), w.Height()
	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 1; y < height-1; y++ {
		push(0, y)
		push(width-1, y)
	}

	for head := 0; head < len(queue); head++ {
		x, y := w.Coordinate(queue[head])
		for _, d := range searchDirs {
			push(x+d[0], y+d[1])
		}
	}

	return out
}

// HasAdjacentRoadConnectedToEdge reports whether (x,y) touches a road marked
// in roadToEdge. A mask of the wrong size yields false.
func HasAdjacentRoadConnectedToEdge(w *grid.World, roadToEdge []uint8, x, y int) bool {
	if w == nil || !w.InBounds(x, y) || len(roadToEdge) != w.Len() {
		return false
	}
	for _, d := range searchDirs {
		nx, ny := x+d[0], y+d[1]
		if w.IsRoad(nx, ny) && roadToEdge[w.Index(nx, ny)] != 0 {
			return true
		}
	}

	return false
}

// PickAdjacentRoadTile returns the first road next to (x,y) in N, E, S, W
// order. A mask of matching size restricts the choice to marked roads;
// otherwise it is ignored.
func PickAdjacentRoadTile(w *grid.World, roadToEdge []uint8, x, y int) (grid.Point, bool) {
	if w == nil || !w.InBounds(x, y) {
		return grid.Point{X: -1, Y: -1}, false
	}
	useMask := len(roadToEdge) == w.Len()
	for _, d := range grid.Conn4 {
		nx, ny := x+d[0], y+d[1]
		if !w.IsRoad(nx, ny) {
			continue
		}
		if useMask && roadToEdge[w.Index(nx, ny)] == 0 {
			continue
		}
		return grid.Point{X: nx, Y: ny}, true
	}

	return grid.Point{X: -1, Y: -1}, false
}
