// Package traffic assigns commuters from residential tiles to the nearest
// reachable job access road and accumulates the resulting per-tile load.
//
// Free-flow mode builds one multi-source flow field from every job access
// road and walks each origin's parent chain back to a job. Ties on steps are
// broken by travel time, so among equal-length routes the faster road class
// carries the flow.
//
// Congestion-aware mode splits each origin's commuters across a fixed number
// of passes. Before every pass each loaded road tile gets an entry penalty
//
//	round(baseTime × α × min(load/capacity, clamp)^β)
//
// computed from the load assigned so far, and the next slice is routed on the
// penalised field. With two symmetric parallel routes the passes alternate
// and the load splits evenly.
//
// Commuters whose residence or job sits on a road component without the
// required outside connection are counted as unreachable and never placed.
//
// Complexity: O(P × N log N) for P passes over an N-tile grid.
package traffic
