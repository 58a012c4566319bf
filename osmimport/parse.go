package osmimport

import (
	"context"
	"io"
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type latLon struct{ lat, lon float64 }

type way struct {
	refs     []osm.NodeID
	highway  string
	waterway string
}

// extract is the subset of an OSM document the importer paints.
type extract struct {
	nodes      map[osm.NodeID]latLon
	ways       []way
	totalWays  int
	boundsTag  Bounds
	hasBounds  bool
	nodeBounds Bounds
}

// bounds picks the <bounds> element or the node extent.
func (e *extract) bounds(preferTag bool) (Bounds, error) {
	if preferTag && e.hasBounds {
		return e.boundsTag, nil
	}
	if len(e.nodes) > 0 {
		return e.nodeBounds, nil
	}
	if e.hasBounds {
		return e.boundsTag, nil
	}

	return Bounds{}, ErrNoBounds
}

// parse scans r once, keeping nodes and the ways carrying interesting tags.
func parse(ctx context.Context, r io.Reader) (*extract, error) {
	sc := osmxml.New(ctx, r)
	defer sc.Close()

	e := &extract{nodes: make(map[osm.NodeID]latLon)}
	nb := Bounds{MinLat: math.Inf(1), MinLon: math.Inf(1), MaxLat: math.Inf(-1), MaxLon: math.Inf(-1)}
	for sc.Scan() {
		switch o := sc.Object().(type) {
		case *osm.Bounds:
			e.boundsTag = Bounds{MinLat: o.MinLat, MinLon: o.MinLon, MaxLat: o.MaxLat, MaxLon: o.MaxLon}
			e.hasBounds = true
		case *osm.Node:
			e.nodes[o.ID] = latLon{lat: o.Lat, lon: o.Lon}
			nb.MinLat, nb.MaxLat = math.Min(nb.MinLat, o.Lat), math.Max(nb.MaxLat, o.Lat)
			nb.MinLon, nb.MaxLon = math.Min(nb.MinLon, o.Lon), math.Max(nb.MaxLon, o.Lon)
		case *osm.Way:
			e.totalWays++
			wy := way{highway: o.Tags.Find("highway"), waterway: o.Tags.Find("waterway")}
			if wy.highway == "" && wy.waterway == "" {
				continue
			}
			wy.refs = make([]osm.NodeID, len(o.Nodes))
			for i, n := range o.Nodes {
				wy.refs[i] = n.ID
			}
			e.ways = append(e.ways, wy)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "osmimport: scan OSM XML")
	}
	e.nodeBounds = nb

	return e, nil
}

// ignoredHighway reports non-drivable highway values.
func ignoredHighway(v string) bool {
	switch v {
	case "", "footway", "path", "cycleway", "steps", "track",
		"bridleway", "pedestrian", "corridor", "construction", "proposed":
		return true
	}
	return false
}

// roadLevelForHighway maps an OSM highway value to a road level.
// "_link" variants follow their parent class.
func roadLevelForHighway(v string) int {
	switch v {
	case "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link":
		return 3
	case "secondary", "secondary_link", "tertiary", "tertiary_link":
		return 2
	}
	return 1
}

func waterLine(v string) bool {
	switch v {
	case "river", "stream", "canal", "drain":
		return true
	}
	return false
}
