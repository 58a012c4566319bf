// Package zoneaccess decides which road tile serves each zone tile.
//
// A residential, commercial or industrial tile has access when its
// same-overlay block (4-connected, water excluded) touches a usable road.
// Boundary tiles take their lowest-index adjacent road; interior tiles inherit
// the road of the nearest boundary tile through a multi-source BFS inside the
// block. Blocks of different overlays never share access, even when adjacent.
//
// Complexity:
//
//   - Build:        O(W×H) time and memory.
//   - HasAccess:    O(1).
//   - PickRoadTile: O(1).
package zoneaccess
