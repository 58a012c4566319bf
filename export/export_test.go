package export

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/goods"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/resilience"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/upgrade"
)

func plus() *roadgraph.Graph {
	return roadgraph.Build(grid.MustParseLayout([]string{
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
	}, 1))
}

func TestWriteGraphJSON(t *testing.T) {
	g := plus()
	d := roadgraph.ApproxDiameter(g)
	cfg := DefaultConfig()
	cfg.IncludeEdgeTiles = true

	var buf bytes.Buffer
	require.NoError(t, WriteGraphJSON(&buf, g, nil, &d, cfg))

	var doc struct {
		Metrics           roadgraph.Metrics `json:"metrics"`
		DiameterPathNodes []int             `json:"diameterPathNodes"`
		Nodes             []nodeDoc         `json:"nodes"`
		Edges             []edgeDoc         `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 5, doc.Metrics.Nodes)
	assert.Equal(t, 4, doc.Metrics.ApproxDiameter)
	assert.Equal(t, d.NodePath, doc.DiameterPathNodes)
	require.Len(t, doc.Nodes, 5)
	assert.Equal(t, 4, doc.Nodes[2].Degree)
	require.Len(t, doc.Edges, 4)
	assert.Equal(t, [][2]int{{2, 0}, {2, 1}, {2, 2}}, doc.Edges[0].Tiles)
}

func TestWriteGraphDOT(t *testing.T) {
	g := plus()
	m := roadgraph.ComputeMetrics(g, true)
	var buf bytes.Buffer
	require.NoError(t, WriteGraphDOT(&buf, g, &m, DefaultConfig()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "graph RoadGraph {\n"))
	assert.Contains(t, out, "// nodes=5 edges=4 components=1 approxDiameter=4")
	assert.Contains(t, out, `2 [label="2\n(2,2)", style=filled, fillcolor="lightcoral"];`)
	assert.Contains(t, out, `0 -- 2 [label="2"];`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestWriteCSV(t *testing.T) {
	g := roadgraph.Build(grid.MustParseLayout([]string{"###.#"}, 1))

	var nodes bytes.Buffer
	require.NoError(t, WriteNodesCSV(&nodes, g))
	assert.Equal(t, "id,x,y,degree,component\n0,0,0,1,0\n1,2,0,1,0\n2,4,0,0,1\n", nodes.String())

	var edges bytes.Buffer
	require.NoError(t, WriteEdgesCSV(&edges, g, Config{IncludeEdgeTiles: true}))
	assert.Equal(t, "id,a,b,length,component,tiles\n0,0,1,2,0,0:0;1:0;2:0\n", edges.String())
}

// layered returns the "###.#" graph with flow, centrality and resilience
// layers: flow 14/56/7 on the edge tiles, a bridge edge, closeness 1 on the
// edge's endpoints and no normalised betweenness.
func layered() (*roadgraph.Graph, []Option) {
	w := grid.MustParseLayout([]string{"###.#"}, 1)
	g := roadgraph.Build(w)
	fs := roadgraph.AggregateFlow(w, g, []uint32{14, 56, 7, 0, 0}, roadgraph.DefaultFlowConfig())
	cent := centrality.Result{
		NodeBetweenness:       []float64{0, 0, 0},
		EdgeBetweenness:       []float64{1.5},
		NodeCloseness:         []float64{1, 1, 0},
		NodeHarmonicCloseness: []float64{1, 1, 0},
	}
	res := resilience.Result{
		IsArticulationNode: []bool{false, false, false},
		IsBridgeEdge:       []bool{true},
	}
	return g, []Option{WithFlow(&fs), WithCentrality(&cent), WithResilience(&res)}
}

func TestWriteCSV_Layers(t *testing.T) {
	g, opts := layered()

	var nodes bytes.Buffer
	require.NoError(t, WriteNodesCSV(&nodes, g, opts...))
	assert.Equal(t,
		"id,x,y,degree,component,flow,capacity,util,incidentSumFlow,incidentMaxUtil,betweenness,betweennessNorm,closeness,harmonicCloseness,articulation\n"+
			"0,0,0,1,0,14,28,0.5,56,2,0,,1,1,0\n"+
			"1,2,0,1,0,7,28,0.25,56,2,0,,1,1,0\n"+
			"2,4,0,0,1,0,28,0,0,0,0,,0,0,0\n",
		nodes.String())

	var edges bytes.Buffer
	require.NoError(t, WriteEdgesCSV(&edges, g, Config{}, opts...))
	assert.Equal(t,
		"id,a,b,length,component,flowSum,flowMax,capacityMin,maxUtil,congestedTiles,excessFlow,interiorExcessFlow,betweenness,betweennessNorm,bridge\n"+
			"0,0,1,2,0,77,56,28,2,1,28,28,1.5,,1\n",
		edges.String())
}

func TestWriteGraphJSON_Layers(t *testing.T) {
	g, opts := layered()
	var buf bytes.Buffer
	require.NoError(t, WriteGraphJSON(&buf, g, nil, nil, DefaultConfig(), opts...))

	var doc struct {
		Nodes []nodeDoc `json:"nodes"`
		Edges []edgeDoc `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Nodes, 3)
	n := doc.Nodes[0]
	require.NotNil(t, n.Flow)
	assert.Equal(t, 14, n.Flow.Flow)
	assert.InDelta(t, 0.5, n.Flow.Util, 1e-12)
	require.NotNil(t, n.Centrality)
	assert.Nil(t, n.Centrality.BetweennessNorm)
	require.NotNil(t, n.Centrality.Closeness)
	assert.Equal(t, 1.0, *n.Centrality.Closeness)
	require.NotNil(t, n.Articulation)
	assert.False(t, *n.Articulation)

	require.Len(t, doc.Edges, 1)
	e := doc.Edges[0]
	require.NotNil(t, e.Bridge)
	assert.True(t, *e.Bridge)
	require.NotNil(t, e.Flow)
	assert.Equal(t, uint64(28), e.Flow.All.ExcessFlow)
	assert.Equal(t, uint64(56), e.Flow.Interior.SumFlow)
	assert.Equal(t, 1.5, e.Centrality.Betweenness)

	buf.Reset()
	require.NoError(t, WriteGraphJSON(&buf, g, nil, nil, DefaultConfig()))
	assert.NotContains(t, buf.String(), `"bridge"`, "layers are opt-in")
}

func TestGraphGeoJSON_Layers(t *testing.T) {
	g, opts := layered()
	fc := GraphGeoJSON(g, opts...)
	require.Len(t, fc.Features, 4)

	edge := fc.Features[0]
	assert.Equal(t, true, edge.Properties["bridge"])
	assert.Equal(t, uint64(28), edge.Properties["excess_flow"])
	assert.Equal(t, 1.5, edge.Properties["betweenness"])

	node := fc.Features[1]
	assert.Equal(t, "node", node.Properties["kind"])
	assert.Equal(t, 0.5, node.Properties["util"])
	assert.Equal(t, 1.0, node.Properties["closeness"])
	assert.Equal(t, false, node.Properties["articulation"])
}

func TestGraphGeoJSON(t *testing.T) {
	fc := GraphGeoJSON(plus())
	require.Len(t, fc.Features, 9)
	first := fc.Features[0]
	assert.Equal(t, "edge", first.Properties["kind"])
	assert.Equal(t, [][]float64{{2.5, 0.5}, {2.5, 1.5}, {2.5, 2.5}}, first.Geometry.LineString)
	last := fc.Features[8]
	assert.Equal(t, "node", last.Properties["kind"])

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, fc))
	assert.Contains(t, buf.String(), `"FeatureCollection"`)
}

func TestODGeoJSON(t *testing.T) {
	w := grid.MustParseLayout([]string{
		"#....",
		"#....",
		"###C.",
		".....",
	}, 1)
	var dbg goods.Debug
	goods.Compute(w, goods.DefaultConfig(), goods.WithDebug(&dbg))

	fc := ODGeoJSON(&dbg, w.Width(), 10, 0)
	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, "import", f.Properties["flow_type"])
	assert.Equal(t, 8, f.Properties["amount"])
	assert.Equal(t, [][]float64{{0.5, 2.5}, {2.5, 2.5}}, f.Geometry.LineString)

	assert.Empty(t, ODGeoJSON(&dbg, w.Width(), 10, 9).Features)
	assert.Empty(t, ODGeoJSON(nil, 5, 0, 0).Features)
}

func TestPlanExports(t *testing.T) {
	w := grid.MustParseLayout([]string{"######"}, 1)
	g := roadgraph.Build(w)
	flow := make([]uint32, w.Len())
	for i := range flow {
		flow[i] = 60
	}
	plan := upgrade.PlanUpgrades(w, g, flow, upgrade.DefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, WritePlanJSON(&buf, plan, g, Config{IncludeEdgeTiles: true}))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, float64(1), doc["version"])
	assert.Equal(t, float64(8), doc["totalCost"])
	cfg := doc["config"].(map[string]any)
	assert.Equal(t, "congestion", cfg["objective"])
	edges := doc["edges"].([]any)
	require.Len(t, edges, 1)
	edge := edges[0].(map[string]any)
	assert.Equal(t, float64(2), edge["targetLevel"])
	assert.Equal(t, map[string]any{"x": float64(5), "y": float64(0)}, edge["bPos"])
	assert.Len(t, doc["tileUpgrades"], 4)

	fc := PlanGeoJSON(g, plan)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "avenue", fc.Features[0].Properties["class"])
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"plain/graph.json", "packed/graph.json.sz"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, func(w io.Writer) error {
			return WriteGraphJSON(w, plus(), nil, nil, DefaultConfig())
		}), name)

		r, err := OpenFile(path)
		require.NoError(t, err, name)
		data, err := io.ReadAll(r)
		require.NoError(t, err, name)
		require.NoError(t, r.Close())
		assert.Contains(t, string(data), `"largestComponentNodes": 5`, name)
	}

	_, err := OpenFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export: open")
}
