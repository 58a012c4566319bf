package pathfind

import (
	"container/heap"

	"github.com/katalvlaran/roadnet/grid"
)

func manhattan(ax, ay, bx, by int) int {
	dx, dy := ax-bx, ay-by
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func isLand(w *grid.World, x, y int) bool {
	return w.InBounds(x, y) && w.At(x, y).Terrain != grid.Water
}

// reconstruct walks cameFrom from goal back to start and returns the
// forward path.
func reconstruct(w *grid.World, cameFrom []int, start, goal int) []grid.Point {
	var out []grid.Point
	for cur := goal; cur != -1; cur = cameFrom[cur] {
		out = append(out, w.PointOf(cur))
		if cur == start {
			break
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// astar runs unit-cost A* over tiles accepted by pass. With tie set the heap
// breaks (f, g) ties on the tile variation byte before the index.
func astar(w *grid.World, start, goal grid.Point, pass func(x, y int) bool, tie bool) ([]grid.Point, int, bool) {
	if w == nil || !pass(start.X, start.Y) || !pass(goal.X, goal.Y) {
		return nil, 0, false
	}
	si, gi := w.Index(start.X, start.Y), w.Index(goal.X, goal.Y)
	if si == gi {
		return []grid.Point{start}, 0, true
	}

	n := w.Len()
	cameFrom := make([]int, n)
	gScore := make([]int, n)
	for i := 0; i < n; i++ {
		cameFrom[i] = -1
		gScore[i] = inf
	}
	tieOf := func(idx int) int {
		if !tie {
			return 0
		}
		return int(w.Tile(idx).Variation)
	}

	// 1) Seed.
	gScore[si] = 0
	open := keyPQ{{key: [4]int{manhattan(start.X, start.Y, goal.X, goal.Y), 0, tieOf(si)}, id: si}}

	// 2) Expand.
	for open.Len() > 0 {
		cur := heap.Pop(&open).(keyItem)
		g := cur.key[1]
		if g != gScore[cur.id] {
			continue
		}
		if cur.id == gi {
			path := reconstruct(w, cameFrom, si, gi)
			return path, len(path) - 1, true
		}
		cx, cy := w.Coordinate(cur.id)
		for _, d := range searchDirs {
			nx, ny := cx+d[0], cy+d[1]
			if !pass(nx, ny) {
				continue
			}
			ni := w.Index(nx, ny)
			if ng := g + 1; ng < gScore[ni] {
				gScore[ni] = ng
				cameFrom[ni] = cur.id
				heap.Push(&open, keyItem{key: [4]int{ng + manhattan(nx, ny, goal.X, goal.Y), ng, tieOf(ni)}, id: ni})
			}
		}
	}

	return nil, 0, false
}

// RoadPathAStar finds a shortest road-only walk from start to goal.
// cost is the number of steps (len(path)-1). Heap order is (f, g, idx).
// Both endpoints must be road tiles.
func RoadPathAStar(w *grid.World, start, goal grid.Point) ([]grid.Point, int, bool) {
	if w == nil {
		return nil, 0, false
	}
	return astar(w, start, goal, w.IsRoad, false)
}

// LandPathAStar finds a shortest walk over non-water tiles, ignoring
// overlays. Equal-length alternatives are resolved by the tile variation
// byte, then the index. start == goal yields the one-tile path.
func LandPathAStar(w *grid.World, start, goal grid.Point) ([]grid.Point, int, bool) {
	if w == nil {
		return nil, 0, false
	}
	return astar(w, start, goal, func(x, y int) bool { return isLand(w, x, y) }, true)
}
