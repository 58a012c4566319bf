// Package pathfind answers tile-level routing questions on a grid.World.
//
// What:
//
//   - RoadPathAStar: shortest walk over existing roads (Manhattan A*).
//   - LandPathAStar: shortest walk over any non-water tile.
//   - RoadBuildPath / RoadBuildPathBetweenSets: cheapest route to build,
//     either by count of new tiles or by money, optionally over water
//     (bridges), with slope penalties, a cost ceiling and blocked moves.
//   - RoadPathToEdge, RoadsConnectedToEdge: outside connection of roads.
//   - HasAdjacentRoadConnectedToEdge, PickAdjacentRoadTile: zone helpers.
//
// Determinism:
//
//	Every search pops from a binary heap ordered by an explicit key tuple and
//	finally by tile (or state) index, so equal-cost alternatives always
//	resolve the same way. Neighbours are expanded E, W, S, N. Build searches
//	run on (tile, incoming direction) states and rank equal-cost candidates
//	by steps, then turns, then the tile variation byte, which yields
//	straighter plans.
//
// Errors:
//
//	None. A failed search returns ok == false with a nil path and zero cost.
//
// Complexity:
//
//   - A* and build searches: O(N log N) for N searched tiles (×5 states for
//     build searches).
//   - BFS helpers: O(W×H).
package pathfind
