package export

import (
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/katalvlaran/roadnet/goods"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/upgrade"
)

// tileCenter maps a tile to its centre in grid space.
func tileCenter(p grid.Point) []float64 {
	return []float64{float64(p.X) + 0.5, float64(p.Y) + 0.5}
}

func polyline(pts []grid.Point) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = tileCenter(p)
	}
	return out
}

// GraphGeoJSON returns one LineString per edge followed by one Point per
// node. opts add analysis results as feature properties.
func GraphGeoJSON(g *roadgraph.Graph, opts ...Option) *geojson.FeatureCollection {
	l := collectLayers(opts)
	fc := geojson.NewFeatureCollection()
	if g == nil {
		return fc
	}
	comp, _ := roadgraph.Components(g)
	for ei, e := range g.Edges {
		if len(e.Tiles) < 2 {
			continue
		}
		f := geojson.NewLineStringFeature(polyline(e.Tiles))
		f.SetProperty("kind", "edge")
		f.SetProperty("id", ei)
		f.SetProperty("a", e.A)
		f.SetProperty("b", e.B)
		f.SetProperty("length", e.Length)
		f.SetProperty("component", componentOf(comp, e.A))
		for k, v := range l.properties(ei, true) {
			f.SetProperty(k, v)
		}
		fc.AddFeature(f)
	}
	for i, n := range g.Nodes {
		f := geojson.NewPointFeature(tileCenter(n.Pos))
		f.SetProperty("kind", "node")
		f.SetProperty("id", i)
		f.SetProperty("degree", len(n.Edges))
		f.SetProperty("component", componentOf(comp, i))
		for k, v := range l.properties(i, false) {
			f.SetProperty(k, v)
		}
		fc.AddFeature(f)
	}

	return fc
}

// ODGeoJSON turns the goods OD edges selected by Debug.Top into straight
// lines between road tile centres of a grid of the given width.
func ODGeoJSON(d *goods.Debug, width, topN, minAmount int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if d == nil || width <= 0 {
		return fc
	}
	at := func(idx int) grid.Point { return grid.Point{X: idx % width, Y: idx / width} }
	for _, e := range d.Top(topN, minAmount) {
		f := geojson.NewLineStringFeature(polyline([]grid.Point{at(e.SrcRoadIdx), at(e.DstRoadIdx)}))
		f.SetProperty("flow_type", e.Type.String())
		f.SetProperty("amount", e.Amount)
		f.SetProperty("src_idx", e.SrcRoadIdx)
		f.SetProperty("dst_idx", e.DstRoadIdx)
		f.SetProperty("mean_steps", e.MeanSteps())
		f.SetProperty("mean_cost_milli", e.MeanCostMilli())
		f.SetProperty("min_steps", e.MinSteps)
		f.SetProperty("max_steps", e.MaxSteps)
		f.SetProperty("min_cost_milli", e.MinCostMilli)
		f.SetProperty("max_cost_milli", e.MaxCostMilli)
		fc.AddFeature(f)
	}

	return fc
}

// PlanGeoJSON returns one LineString per planned edge upgrade.
func PlanGeoJSON(g *roadgraph.Graph, plan upgrade.Plan) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if g == nil {
		return fc
	}
	for _, u := range plan.Edges {
		if u.EdgeIndex < 0 || u.EdgeIndex >= len(g.Edges) || len(g.Edges[u.EdgeIndex].Tiles) < 2 {
			continue
		}
		f := geojson.NewLineStringFeature(polyline(g.Edges[u.EdgeIndex].Tiles))
		f.SetProperty("edgeIndex", u.EdgeIndex)
		f.SetProperty("targetLevel", u.TargetLevel)
		f.SetProperty("class", grid.RoadClassName(u.TargetLevel))
		f.SetProperty("cost", u.Cost)
		f.SetProperty("timeSaved", u.TimeSaved)
		f.SetProperty("excessReduced", u.ExcessReduced)
		fc.AddFeature(f)
	}

	return fc
}

// WriteGeoJSON marshals fc to w.
func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "export: marshal GeoJSON")
	}
	if _, err = w.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "export: write GeoJSON")
	}

	return nil
}
