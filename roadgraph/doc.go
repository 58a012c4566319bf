// Package roadgraph compiles the road tiles of a grid.World into a compact
// multigraph and offers the read-only analyses that work on it.
//
// What:
//
//   - Build: nodes at dead ends, corners and junctions; edges along maximal
//     chains of straight two-neighbour road tiles between nodes.
//   - Components, ComputeMetrics: connectivity summary of the graph.
//   - ApproxDiameter: double-sweep Dijkstra weighted by edge length, with the
//     node path, edge path and (via ExpandNodePath) the tile polyline.
//   - BuildIndex, BuildWeights: tile→node/edge lookups and per-direction
//     travel-time weights used by routers and planners.
//   - AggregateFlow: folds a per-tile flow map onto nodes and edges (sum,
//     max, capacity, utilisation, congested tiles, excess), over all edge
//     tiles and over interior tiles only.
//
// Why:
//
//	Analytics on dense maps are far cheaper on a few hundred nodes than on
//	every road tile. Nodes and edges refer to tiles by position only, so a
//	Graph is a disposable snapshot: rebuild it whenever roads change.
//
// Determinism:
//
//	Nodes are numbered in row-major tile order. Edges are discovered from
//	each node in N, E, S, W order and kept only from their lower-numbered
//	endpoint, so two builds of the same grid are identical.
//
// Complexity:
//
//   - Build:          O(W×H).
//   - Components:     O(V + E).
//   - ApproxDiameter: O((V + E) log V).
//   - BuildIndex:     O(W×H + Σ|edge tiles|).
//   - AggregateFlow:  O(V + Σ|edge tiles|).
package roadgraph
