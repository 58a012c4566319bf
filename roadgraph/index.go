package roadgraph

import "github.com/katalvlaran/roadnet/grid"

// BuildIndex maps every tile of w to the node or edge interior covering it.
// Tiles that are neither hold -1 in all three arrays.
// Complexity: O(W×H + Σ|edge tiles|).
func BuildIndex(w *grid.World, g *Graph) *Index {
	idx := &Index{W: w.Width(), H: w.Height()}
	n := w.Len()
	idx.TileToNode = make([]int, n)
	idx.TileToEdge = make([]int, n)
	idx.TileToEdgeOffset = make([]int, n)
	for i := 0; i < n; i++ {
		idx.TileToNode[i] = -1
		idx.TileToEdge[i] = -1
		idx.TileToEdgeOffset[i] = -1
	}
	if g == nil {
		return idx
	}

	for ni, node := range g.Nodes {
		if w.InBounds(node.Pos.X, node.Pos.Y) {
			idx.TileToNode[w.Index(node.Pos.X, node.Pos.Y)] = ni
		}
	}
	for ei, e := range g.Edges {
		if len(e.Tiles) < 3 {
			continue
		}
		for off := 1; off+1 < len(e.Tiles); off++ {
			p := e.Tiles[off]
			if !w.InBounds(p.X, p.Y) {
				continue
			}
			t := w.Index(p.X, p.Y)
			idx.TileToEdge[t] = ei
			idx.TileToEdgeOffset[t] = off
		}
	}

	return idx
}

// NodeAt returns the node id at (x,y), or -1.
func (idx *Index) NodeAt(x, y int) int {
	if x < 0 || y < 0 || x >= idx.W || y >= idx.H {
		return -1
	}
	return idx.TileToNode[y*idx.W+x]
}

// EdgeAt returns (edge id, offset) of an interior edge tile at (x,y), or (-1, -1).
func (idx *Index) EdgeAt(x, y int) (int, int) {
	if x < 0 || y < 0 || x >= idx.W || y >= idx.H {
		return -1, -1
	}
	i := y*idx.W + x
	return idx.TileToEdge[i], idx.TileToEdgeOffset[i]
}

// TilesCostMilli sums the bridge-aware travel time of entering each tile of
// pts after the first.
func TilesCostMilli(w *grid.World, pts []grid.Point) int {
	total := 0
	for i := 1; i < len(pts); i++ {
		p := pts[i]
		if !w.InBounds(p.X, p.Y) {
			continue
		}
		total += grid.TileTravelTimeMilli(*w.At(p.X, p.Y))
	}

	return total
}

// BuildWeights computes per-edge step counts and directional travel times.
// CostABMilli is the time to enter Tiles[1:] walking from A; CostBAMilli the
// time to enter Tiles[:len-1] walking from B.
// Complexity: O(Σ|edge tiles|).
func BuildWeights(w *grid.World, g *Graph) *Weights {
	if g == nil {
		return &Weights{}
	}
	out := &Weights{Edge: make([]EdgeWeights, len(g.Edges))}
	for ei, e := range g.Edges {
		ew := EdgeWeights{Steps: max(0, len(e.Tiles)-1)}
		for i, p := range e.Tiles {
			if !w.InBounds(p.X, p.Y) {
				continue
			}
			c := grid.TileTravelTimeMilli(*w.At(p.X, p.Y))
			if i > 0 {
				ew.CostABMilli += c
			}
			if i < len(e.Tiles)-1 {
				ew.CostBAMilli += c
			}
		}
		out.Edge[ei] = ew
	}

	return out
}
