// Package roadnet is the road network engine of a tile-based city
// simulation: it compiles the road tiles of a grid world into a compact
// graph and runs the flow analyses a city builder needs on top of it.
//
// What is in the box?
//
//	grid/       the world: terrain, overlays, road levels, masks, hashing
//	roadgraph/  road graph compilation, components, metrics, diameter
//	pathfind/   road A*, build-path planner, outside-connection masks
//	zoneaccess/ zone-to-road access through same-type zone chains
//	flowfield/  multi-source road distance fields with owner labels
//	traffic/    commute assignment, optional congestion-aware passes
//	goods/      producer → consumer goods shipping with imports/exports
//	centrality/ Brandes betweenness and closeness on the road graph
//	resilience/ bridges, articulation nodes and bypass suggestions
//	upgrade/    budgeted road upgrade planning and application
//	roadroute/  contraction-hierarchy point-to-point routing
//	osmimport/  OpenStreetMap extract → world rasterisation
//	export/     JSON, DOT, CSV and GeoJSON writers, snappy files
//	config/     YAML scenarios with validation
//	metrics/    Prometheus gauges for every stage
//	engine/     the staged pipeline tying the above together
//
// Every analysis is deterministic: the same world and configuration always
// produce identical results, and ties break on tile index.
//
// The roadnet command drives the engine from the shell:
//
//	go install github.com/katalvlaran/roadnet/cmd/roadnet@latest
//	roadnet -scenario city.yaml -out ./out -apply
package roadnet
