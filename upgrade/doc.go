// Package upgrade plans which road edges to raise to a faster class, given
// an observed per-tile flow map and an optional money budget.
//
// What:
//
//	For every road graph edge and every target level 2..MaxTargetLevel the
//	planner prices the upgrade of the edge's tiles (interior tiles only by
//	default, since endpoints are shared with neighbouring edges) and scores
//	its benefit: the drop in excess traffic max(0, flow-capacity), the
//	flow-weighted travel time saved, or a weighted mix of both.
//
//	Every achievable level is its own candidate. An avenue that relieves
//	most of the excess at a third of the highway price beats the highway on
//	benefit per cost, and the planner keeps it.
//
// How:
//
//  1. Candidates (edge, level) scored independently and sorted by
//     (ratio desc, benefit desc, cost asc, edge asc, level asc).
//  2. Greedy pass: each candidate is re-evaluated against the levels already
//     planned, accepted if it still has cost and benefit and fits the budget.
//     At most one upgrade per edge.
//  3. Apply raises road levels only and refreshes the road masks.
//
// Errors:
//
//   - ErrDimensionMismatch: Apply was given a plan built for another grid.
package upgrade
