// Package centrality ranks road graph nodes and edges by how much traffic
// could pass through them.
//
// What:
//
//   - Betweenness (Brandes): for every source, a Dijkstra pass counts the
//     shortest paths (σ) and a reverse sweep accumulates dependencies onto
//     nodes and the edges on those paths.
//   - Closeness: (r-1)/Σd over the r nodes reachable from a node, optionally
//     scaled by (r-1)/(n-1) so small components do not look central.
//   - Harmonic closeness: Σ 1/d over reachable nodes.
//
// Sampling:
//
//	MaxSources > 0 picks a deterministic subset of sources (SplitMix64 hash
//	of the node id, lowest hashes win). Betweenness may then be scaled by
//	n/sources. Closeness needs every source and stays nil under sampling.
//
// Normalisation (matches NetworkX):
//
//	nodes:  2/((n-1)(n-2)) undirected, 1/((n-1)(n-2)) directed
//	edges:  2/(n(n-1))     undirected, 1/(n(n-1))     directed
//
// Complexity:
//
//   - Time:  O(S·(V+E) log V) for S sources.
//   - Space: O(V+E).
package centrality
