// Package osmimport rasterises OpenStreetMap XML extracts into a grid.World.
//
// What:
//
//	Import and ImportNew read an OSM XML stream (github.com/paulmach/osm/osmxml),
//	project every node with spherical Web Mercator into the grid and paint:
//	  - highway=* ways as roads (motorway/trunk/primary -> 3, secondary/tertiary -> 2, rest -> 1);
//	  - waterway=river|stream|canal|drain lines as water terrain (optional).
//	Footways, paths, tracks and other non-drivable highway values are ignored.
//
// How:
//
//	Bounds come from the <bounds> element when present (and preferred), otherwise
//	from the node extent. Each way segment is drawn with a 4-connected Bresenham
//	line that splits diagonal steps along the dominant axis, then optionally
//	thickened with a Manhattan diamond (street 0, avenue 1, highway 2).
//	Road masks are recomputed once at the end.
//
// Determinism:
//
//	Ways are painted in document order; a tile that already carries a road
//	keeps the highest level painted on it.
//
// Errors:
//
//	ErrNoBounds      - no <bounds> element and no nodes.
//	ErrZeroArea      - the bounds have no width or no height.
//	ErrWorldTooSmall - the world cannot fit the padding.
//	ErrTooLarge      - auto-sizing would exceed MaxAutoSize per side.
//
// ImportFile memory-maps the file with golang.org/x/exp/mmap.
package osmimport
