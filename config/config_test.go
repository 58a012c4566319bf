package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/export"
	"github.com/katalvlaran/roadnet/flowfield"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/upgrade"
)

const sample = `
name: corridor
seed: 42
employedShare: 0.5
layout:
  - "R#C"
  - "I#P"
zones:
  level: 2
  residentialOccupants: 20
  tiles:
    - {x: 2, y: 0, occupants: 5}
traffic:
  metric: steps
  congestionAwareRouting: true
centrality:
  weight: time
  maxSources: 8
upgrade:
  objective: hybrid
  budget: 40
export:
  formats: [dot, csv]
  includeEdgeTiles: true
  compress: true
`

func TestParse_OverridesOnDefaults(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "corridor", sc.Name)
	assert.Equal(t, uint64(42), sc.Seed)
	assert.Equal(t, 0.5, sc.EmployedShare)

	tc := sc.TrafficConfig()
	assert.Equal(t, flowfield.MetricSteps, tc.Metric)
	assert.True(t, tc.CongestionAwareRouting)
	assert.Equal(t, 4, tc.CongestionIterations, "unset keys keep defaults")
	assert.Equal(t, 28, tc.RoadTileCapacity)
	assert.Equal(t, roadgraph.DefaultFlowConfig(), sc.FlowConfig(), "edge capacity follows the traffic section")

	cc := sc.CentralityConfig()
	assert.Equal(t, centrality.WeightTravelTime, cc.Weight)
	assert.Equal(t, 8, cc.MaxSources)
	assert.True(t, cc.Undirected)

	uc := sc.UpgradeConfig()
	assert.Equal(t, upgrade.Hybrid, uc.Objective)
	assert.Equal(t, 40, uc.Budget)
	assert.Equal(t, 3, uc.MaxTargetLevel)

	assert.Equal(t, []string{"dot", "csv"}, sc.Export.Formats)
	assert.True(t, sc.Export.IncludeEdgeTiles)
	assert.True(t, sc.Export.ColorByComponent)
	assert.True(t, sc.GoodsConfig().AllowImports)
	assert.Equal(t, 5, sc.BypassConfig().Top)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "layout: required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
		want   string
	}{
		{"negative budget", func(s *Scenario) { s.Upgrade.Budget = -2 }, "upgrade.budget: must be at least -1"},
		{"iterations", func(s *Scenario) { s.Traffic.CongestionIterations = 0 }, "traffic.congestionIterations: must be at least 1"},
		{"metric", func(s *Scenario) { s.Traffic.Metric = "fast" }, "traffic.metric: must be one of"},
		{"share", func(s *Scenario) { s.EmployedShare = 1.5 }, "employedShare: must not exceed 1"},
		{"capacity scale", func(s *Scenario) { s.Traffic.CongestionCapacityScale = 0 }, "traffic.congestionCapacityScale: must be greater than 0"},
		{"format", func(s *Scenario) { s.Export.Formats = []string{"svg"} }, "export.formats[0]: must be one of"},
		{"ragged layout", func(s *Scenario) { s.Layout = []string{"##", "#"} }, "layout[1]: has 1 columns, want 2"},
		{"osm path", func(s *Scenario) { s.OSM = &OSMSection{} }, "osm.path: field is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc := Default()
			sc.Layout = []string{"###"}
			tc.mutate(sc)
			err := sc.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	sc := Default()
	sc.Layout = []string{"###"}
	assert.NoError(t, sc.Validate())
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("layout: ['#']\ntrafic: {}\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestParse_OSMDefaults(t *testing.T) {
	sc, err := Parse([]byte("osm:\n  path: city.osm\n  padding: 4\n"))
	require.NoError(t, err)
	require.NotNil(t, sc.OSM)
	assert.Equal(t, "city.osm", sc.OSM.Path)
	assert.Equal(t, 4, sc.OSM.Padding)
	assert.Equal(t, 20.0, sc.OSM.MetersPerTile)
	assert.True(t, sc.OSM.ImportRoads)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o644))
	packed := filepath.Join(dir, "s.yaml"+export.CompressedExt)
	require.NoError(t, export.WriteFile(packed, func(w io.Writer) error {
		_, err := w.Write([]byte(sample))
		return err
	}))

	for _, path := range []string{plain, packed} {
		sc, err := Load(path)
		require.NoError(t, err, path)
		assert.Equal(t, "corridor", sc.Name, path)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildWorld(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)
	w, err := sc.BuildWorld(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(42), w.Seed())
	res := w.At(0, 0)
	assert.Equal(t, grid.Residential, res.Overlay)
	assert.Equal(t, uint8(2), res.Level)
	assert.Equal(t, uint16(20), res.Occupants)
	assert.Equal(t, uint16(5), w.At(2, 0).Occupants, "tile override")
	assert.Equal(t, uint16(10), w.At(0, 1).Occupants, "job default")
	assert.Zero(t, w.At(2, 1).Occupants, "parks stay empty")
	assert.Equal(t, uint8(1), w.At(1, 0).Level, "roads keep their level")
}
