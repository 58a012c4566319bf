// Package flowfield computes multi-source shortest-path fields over road tiles.
//
// A Field answers, for every road tile, how far the nearest source is
// (in steps and in travel time), which tile leads one step closer, and
// optionally which source claimed the tile. Traffic routes commuters by
// walking Parent from an origin to a job; goods uses Owner to find the
// nearest producer.
//
// Metrics:
//
//   - MetricHops:       breadth-first, first discovery wins, travel time
//     accumulated along the BFS tree.
//   - MetricTravelTime: Dijkstra on milli-step tile entry costs, equal costs
//     resolved by fewer steps.
//   - MetricSteps:      Dijkstra on steps, equal steps resolved by lower travel
//     time so faster roads win.
//
// Remaining ties resolve to the lower owner, then the lower parent index.
// Neighbours expand in N, E, S, W order.
//
// Options:
//
//   - WithRoadToEdge(mask):          reuse a precomputed outside-connection mask.
//   - WithExtraCostMilli(extra):     per-tile penalty added on entry (congestion).
//   - WithBlockedTiles(mask):        tiles treated as closed.
//   - WithSourceInitialCost(costs):  per-source starting cost offset.
//
// Slices of the wrong length are ignored.
//
// Complexity: O(N) for MetricHops, O(N log N) otherwise, N = W×H.
package flowfield
