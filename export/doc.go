// Package export writes road graphs, goods origin-destination flows and
// upgrade plans to files other tools can read.
//
// Formats:
//
//   - JSON:    graph with metrics and diameter path; upgrade plans.
//   - DOT:     undirected GraphViz graph, nodes coloured by component.
//   - CSV:     one file for nodes, one for edges.
//   - GeoJSON: graph edges and nodes, goods OD lines, planned upgrades.
//     Coordinates are tile centres (x+0.5, y+0.5) in grid space, not
//     longitude/latitude.
//
// Layers:
//
//	WithFlow, WithCentrality and WithResilience attach per-node and per-edge
//	results (flow and utilisation, betweenness and closeness, bridge and
//	articulation flags) to the JSON, CSV and GeoJSON graph writers.
//
// Files:
//
//	CreateFile creates parent directories and wraps paths ending in ".sz"
//	in a snappy framed stream; OpenFile reverses it. Callers must Close the
//	returned writer to flush compressed output.
//
// Errors:
//
//	Every I/O failure is wrapped with the operation and, where known, the
//	path (github.com/pkg/errors), so errors.Cause reaches the original.
package export
