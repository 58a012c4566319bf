package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/goods"
	"github.com/katalvlaran/roadnet/resilience"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/traffic"
	"github.com/katalvlaran/roadnet/upgrade"
)

func TestNewRegistry_Independent(t *testing.T) {
	r1, r2 := NewRegistry(), NewRegistry()
	r1.GraphNodes.Set(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(r1.GraphNodes))
	assert.Zero(t, testutil.ToFloat64(r2.GraphNodes), "registries share no state")

	families, err := r1.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRecordResults(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(roadgraph.Metrics{Nodes: 5, Edges: 4, Components: 1, ApproxDiameter: 4})
	r.RecordTraffic(traffic.Result{TotalCommuters: 10, ReachableCommuters: 7, UnreachableCommuters: 3, Congestion: 0.25, MaxTraffic: 9})
	r.RecordGoods(goods.Result{GoodsDemand: 8, GoodsDelivered: 6, GoodsImported: 2, Satisfaction: 0.75})
	r.RecordResilience(resilience.Result{ArticulationNodes: []int{1, 3}, BridgeEdges: []int{0}})
	r.RecordUpgrade(upgrade.Plan{Edges: make([]upgrade.EdgeUpgrade, 2), TotalCost: 18, TotalExcessReduced: 198})

	assert.Equal(t, 5.0, testutil.ToFloat64(r.GraphNodes))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.ApproxDiameter))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.Commuters.WithLabelValues("reachable")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.Commuters.WithLabelValues("unreachable")))
	assert.Equal(t, 0.25, testutil.ToFloat64(r.TrafficCongestion))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.GoodsUnits.WithLabelValues("imported")))
	assert.Equal(t, 0.75, testutil.ToFloat64(r.GoodsSatisfaction))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ArticulationNodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BridgeEdges))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.UpgradeEdges))
	assert.Equal(t, 198.0, testutil.ToFloat64(r.UpgradeExcessReduced))
	assert.Equal(t, 6, testutil.CollectAndCount(r.GoodsUnits))
}

func TestRecordCentralityAndFlow(t *testing.T) {
	r := NewRegistry()
	r.RecordCentrality(centrality.Result{
		SourcesUsed:         4,
		EdgeBetweenness:     []float64{3, 6},
		EdgeBetweennessNorm: []float64{0.5, 1},
	})
	assert.Equal(t, 4.0, testutil.ToFloat64(r.CentralitySources))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.MaxEdgeBetweenness), "normalised scores win")

	r.RecordCentrality(centrality.Result{EdgeBetweenness: []float64{3, 6}})
	assert.Equal(t, 6.0, testutil.ToFloat64(r.MaxEdgeBetweenness))

	var fs roadgraph.FlowStats
	fs.Edges = make([]roadgraph.EdgeFlow, 3)
	fs.Edges[0].All.CongestedTiles = 2
	fs.Edges[0].All.MaxUtil = 1.5
	fs.Edges[2].All.MaxUtil = 0.25
	r.RecordFlow(fs)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CongestedEdges))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.MaxEdgeUtilisation))
}

func TestObserveStageAndRuns(t *testing.T) {
	r := NewRegistry()
	r.ObserveStage("traffic", 2*time.Millisecond)
	r.ObserveStage("traffic", 40*time.Millisecond)
	r.RecordRun("ok")
	r.RecordRun("ok")
	r.RecordRun("canceled")

	obs, err := r.StageDuration.GetMetricWithLabelValues("traffic")
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, obs.(prometheus.Metric).Write(&m))
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.042, m.GetHistogram().GetSampleSum(), 1e-9)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.RunsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RunsTotal.WithLabelValues("canceled")))
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.RecordGraph(roadgraph.Metrics{Nodes: 1})
		r.RecordTraffic(traffic.Result{})
		r.RecordGoods(goods.Result{})
		r.RecordResilience(resilience.Result{})
		r.RecordUpgrade(upgrade.Plan{})
		r.RecordCentrality(centrality.Result{})
		r.RecordFlow(roadgraph.FlowStats{})
		r.ObserveStage("graph", time.Second)
		r.RecordRun("ok")
	})
}
