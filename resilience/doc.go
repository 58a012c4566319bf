// Package resilience finds the single points of failure of a road graph.
//
// What:
//
//   - Bridges: edges whose removal disconnects their endpoints.
//   - Articulation nodes: nodes whose removal splits their component.
//   - Bridge cuts: the two node sides left behind by removing a bridge.
//   - Edge connectivity: how many edge-disjoint routes join two nodes
//     (unit-capacity Dinic max-flow).
//   - Bypass suggestions: the cheapest road to build that reconnects both
//     sides of a bridge without using it.
//
// How:
//
//	Compute runs Tarjan's lowlink DFS iteratively with an explicit frame
//	stack, so deep road chains cannot overflow the goroutine stack. Only the
//	exact parent edge id is skipped when looking for back edges, so two
//	parallel edges between the same nodes are correctly not bridges.
//
// Complexity:
//
//   - Compute:          O(V + E)
//   - BridgeCut:        O(V + E)
//   - EdgeConnectivity: O(E·√V) on unit capacities
//   - SuggestBypasses:  one multi-source build search per ranked bridge
package resilience
