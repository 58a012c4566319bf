// Package roadroute answers repeated tile-to-tile route queries over the
// compiled road graph with a contraction hierarchy (github.com/LdDl/ch).
//
// NewRouter contracts the node graph once, with directional edge weights
// from roadgraph.BuildWeights. A query resolves each end tile to its node,
// or to both ends of the edge it lies on, tries every combination and keeps
// the cheapest (cost, then steps). Start and goal on the same edge also
// consider the direct walk along it.
//
// Costs are travel times in milli-steps for entering each tile after the
// start. The returned tile path is 4-connected.
package roadroute
