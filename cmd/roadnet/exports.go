package main

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/katalvlaran/roadnet/config"
	"github.com/katalvlaran/roadnet/engine"
	"github.com/katalvlaran/roadnet/export"
)

// writeExports writes report.json plus every format selected in cfg and
// returns the paths written.
func writeExports(dir string, rep *engine.Report, cfg config.ExportSection) ([]string, error) {
	var written []string
	layers := []export.Option{
		export.WithFlow(&rep.Flow),
		export.WithCentrality(&rep.Centrality),
		export.WithResilience(&rep.Resilience),
	}
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		if cfg.Compress {
			path += export.CompressedExt
		}
		if err := export.WriteFile(path, fn); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write("report.json", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}); err != nil {
		return written, err
	}

	for _, format := range cfg.Formats {
		var err error
		switch format {
		case "json":
			err = write("graph.json", func(w io.Writer) error {
				return export.WriteGraphJSON(w, rep.Graph, &rep.Metrics, &rep.Diameter, cfg.Config, layers...)
			})
		case "dot":
			err = write("graph.dot", func(w io.Writer) error {
				return export.WriteGraphDOT(w, rep.Graph, &rep.Metrics, cfg.Config)
			})
		case "csv":
			err = write("nodes.csv", func(w io.Writer) error { return export.WriteNodesCSV(w, rep.Graph, layers...) })
			if err == nil {
				err = write("edges.csv", func(w io.Writer) error { return export.WriteEdgesCSV(w, rep.Graph, cfg.Config, layers...) })
			}
		case "geojson":
			err = write("graph.geojson", func(w io.Writer) error {
				return export.WriteGeoJSON(w, export.GraphGeoJSON(rep.Graph, layers...))
			})
		case "od":
			err = write("od.geojson", func(w io.Writer) error {
				return export.WriteGeoJSON(w, export.ODGeoJSON(rep.GoodsOD, rep.Width, cfg.TopOD, cfg.MinODAmount))
			})
		case "plan":
			err = write("plan.json", func(w io.Writer) error {
				return export.WritePlanJSON(w, rep.Plan, rep.Graph, cfg.Config)
			})
			if err == nil {
				err = write("plan.geojson", func(w io.Writer) error {
					return export.WriteGeoJSON(w, export.PlanGeoJSON(rep.Graph, rep.Plan))
				})
			}
		}
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
