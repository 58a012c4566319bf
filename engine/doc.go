// Package engine runs the road network pipeline over one world.
//
// Run executes, in order:
//
//	graph       roadgraph.Build + ComputeMetrics
//	access      pathfind.RoadsConnectedToEdge + zoneaccess.Build (shared below)
//	traffic     traffic.Compute
//	goods       goods.Compute with origin-destination debug
//	centrality  centrality.Compute
//	resilience  resilience.Compute + SuggestBypasses
//	diameter    roadgraph.ApproxDiameter
//	routes      roadroute queries (only when requested)
//	upgrade     upgrade.PlanUpgrades over commuter + goods flow, optionally Apply
//
// Each stage is logged with log/slog under a per-run id (github.com/google/uuid)
// and timed into the optional metrics registry. ctx is checked between
// stages only; a stage itself always runs to completion.
package engine
