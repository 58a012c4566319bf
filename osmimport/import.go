package osmimport

import (
	"context"
	"io"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"

	"github.com/katalvlaran/roadnet/grid"
)

// Import paints the OSM XML read from r into w, keeping w's size.
func Import(ctx context.Context, r io.Reader, w *grid.World, cfg Config) (Stats, error) {
	if w == nil {
		return Stats{}, errors.New("osmimport: nil world")
	}
	e, err := parse(ctx, r)
	if err != nil {
		return Stats{}, err
	}

	return paint(e, w, cfg)
}

// ImportNew parses r and paints it into a new world seeded with seed.
// The size comes from cfg.Width/Height or, when either is <= 0, from the
// bounds at cfg.MetersPerTile plus padding.
func ImportNew(ctx context.Context, r io.Reader, seed uint64, cfg Config) (*grid.World, Stats, error) {
	e, err := parse(ctx, r)
	if err != nil {
		return nil, Stats{}, err
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		b, err := e.bounds(cfg.PreferBoundsTag)
		if err != nil {
			return nil, Stats{}, err
		}
		if width, height, err = autoSize(b, cfg.MetersPerTile, cfg.Padding); err != nil {
			return nil, Stats{}, err
		}
	}
	w, err := grid.New(width, height, seed)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "osmimport: allocate world")
	}
	st, err := paint(e, w, cfg)
	if err != nil {
		return nil, st, err
	}

	return w, st, nil
}

// ImportFile memory-maps path and runs ImportNew over it.
func ImportFile(ctx context.Context, path string, seed uint64, cfg Config) (*grid.World, Stats, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, Stats{}, errors.Wrapf(err, "osmimport: map %s", path)
	}
	defer ra.Close()

	w, st, err := ImportNew(ctx, io.NewSectionReader(ra, 0, int64(ra.Len())), seed, cfg)
	if err != nil {
		return nil, st, errors.Wrapf(err, "osmimport: %s", path)
	}

	return w, st, nil
}

func paint(e *extract, w *grid.World, cfg Config) (Stats, error) {
	st := Stats{NodesParsed: len(e.nodes), WaysParsed: e.totalWays, Width: w.Width(), Height: w.Height()}
	b, err := e.bounds(cfg.PreferBoundsTag)
	if err != nil {
		return st, err
	}
	st.Bounds = b
	proj, err := newProjector(b, w.Width(), w.Height(), cfg.Padding)
	if err != nil {
		return st, err
	}

	cache := make(map[osm.NodeID]grid.Point, len(e.nodes))
	pointOf := func(id osm.NodeID) (grid.Point, bool) {
		if p, ok := cache[id]; ok {
			return p, true
		}
		n, ok := e.nodes[id]
		if !ok {
			return grid.Point{}, false
		}
		p := proj.project(n.lat, n.lon)
		cache[id] = p
		return p, true
	}
	// drawWay walks consecutive resolvable refs; a missing node breaks the line.
	drawWay := func(wy way, radius int, fn func(x, y int)) {
		var prev grid.Point
		hasPrev := false
		for _, ref := range wy.refs {
			cur, ok := pointOf(ref)
			if !ok {
				hasPrev = false
				continue
			}
			if hasPrev {
				for _, p := range linePoints(prev, cur) {
					diamond(p, radius, fn)
				}
			}
			prev, hasPrev = cur, true
		}
	}

	// 1) Waterways first so roads crossing them become bridges.
	if cfg.ImportWater {
		for _, wy := range e.ways {
			if !waterLine(wy.waterway) {
				continue
			}
			drawWay(wy, cfg.WaterwayRadius, func(x, y int) { paintWater(w, x, y) })
			st.WaterWaysImported++
		}
	}

	// 2) Roads.
	if cfg.ImportRoads {
		for _, wy := range e.ways {
			if ignoredHighway(wy.highway) {
				continue
			}
			level := roadLevelForHighway(wy.highway)
			drawWay(wy, radiusFor(cfg, level), func(x, y int) { paintRoad(w, x, y, level) })
			st.HighwayWaysImported++
		}
		w.RecomputeRoadMasks()
	}

	for _, t := range w.Tiles() {
		if t.Overlay == grid.Road {
			st.RoadTiles++
		}
		if t.Terrain == grid.Water {
			st.WaterTiles++
		}
	}

	return st, nil
}

func radiusFor(cfg Config, level int) int {
	if cfg.FixedRadius >= 0 {
		return cfg.FixedRadius
	}
	if !cfg.ThickenByClass {
		return 0
	}
	return grid.ClampRoadLevel(level) - 1
}

// paintRoad keeps the highest level painted on a tile. Masks are left to
// the caller's final RecomputeRoadMasks.
func paintRoad(w *grid.World, x, y, level int) {
	if !w.InBounds(x, y) {
		return
	}
	t := w.At(x, y)
	level = grid.ClampRoadLevel(level)
	if t.Overlay != grid.Road {
		t.Overlay = grid.Road
		t.Occupants = 0
		t.Level = uint8(level)
		t.Variation &^= grid.RoadMaskBits
		return
	}
	t.Level = uint8(max(grid.ClampRoadLevel(int(t.Level)), level))
}

func paintWater(w *grid.World, x, y int) {
	if !w.InBounds(x, y) {
		return
	}
	t := w.At(x, y)
	t.Terrain = grid.Water
	t.Height = 0
	if t.Overlay != grid.Road {
		t.Overlay = grid.None
		t.Level = 1
		t.Occupants = 0
	}
}
