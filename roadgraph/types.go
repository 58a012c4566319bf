package roadgraph

import "github.com/katalvlaran/roadnet/grid"

// Node is a graph vertex at a road endpoint, corner or junction.
type Node struct {
	Pos   grid.Point `json:"pos"`
	Edges []int      `json:"edges"` // incident edge ids, in discovery order
}

// Edge is a chain of road tiles between two nodes.
// Tiles includes both endpoint tiles; consecutive tiles are 4-adjacent.
type Edge struct {
	A      int          `json:"a"`
	B      int          `json:"b"`
	Length int          `json:"length"` // len(Tiles)-1
	Tiles  []grid.Point `json:"tiles"`
}

// Other returns the endpoint of e opposite to node.
func (e Edge) Other(node int) int {
	if e.A == node {
		return e.B
	}
	return e.A
}

// Graph is the compiled road network. It is a multigraph: parallel edges and
// self-loops are legal.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool { return g == nil || len(g.Nodes) == 0 }

// Metrics summarises a Graph.
type Metrics struct {
	Nodes                 int     `json:"nodes"`
	Edges                 int     `json:"edges"`
	TotalEdgeLength       uint64  `json:"totalEdgeLength"`
	Components            int     `json:"components"`
	LargestComponentNodes int     `json:"largestComponentNodes"`
	LargestComponentEdges int     `json:"largestComponentEdges"`
	IsolatedNodes         int     `json:"isolatedNodes"`
	AvgDegree             float64 `json:"avgDegree"`
	AvgEdgeLength         float64 `json:"avgEdgeLength"`
	ApproxDiameter        int     `json:"approxDiameter"`
	DiameterA             int     `json:"diameterA"`
	DiameterB             int     `json:"diameterB"`
}

// Diameter is the result of the double-sweep search. NodePath is inclusive;
// EdgePath[i] joins NodePath[i] and NodePath[i+1].
type Diameter struct {
	A        int   `json:"a"`
	B        int   `json:"b"`
	Distance int   `json:"distance"`
	NodePath []int `json:"nodePath"`
	EdgePath []int `json:"edgePath"`
}

// Index maps tiles to graph primitives. Interior edge tiles map to
// (edge, offset into Edge.Tiles); node tiles map to nodes only.
type Index struct {
	W, H             int
	TileToNode       []int
	TileToEdge       []int
	TileToEdgeOffset []int
}

// EdgeWeights are per-direction traversal costs of one edge.
type EdgeWeights struct {
	Steps       int
	CostABMilli int // entering Tiles[1:] from A
	CostBAMilli int // entering Tiles[:len-1] from B
}

// Weights is parallel to Graph.Edges.
type Weights struct {
	Edge []EdgeWeights
}
