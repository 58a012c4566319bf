package metrics

import (
	"time"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/goods"
	"github.com/katalvlaran/roadnet/resilience"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/traffic"
	"github.com/katalvlaran/roadnet/upgrade"
)

// RecordGraph copies graph metrics.
func (r *Registry) RecordGraph(m roadgraph.Metrics) {
	if r == nil {
		return
	}
	r.GraphNodes.Set(float64(m.Nodes))
	r.GraphEdges.Set(float64(m.Edges))
	r.GraphComponents.Set(float64(m.Components))
	r.ApproxDiameter.Set(float64(m.ApproxDiameter))
}

// RecordTraffic copies commuter totals and congestion.
func (r *Registry) RecordTraffic(res traffic.Result) {
	if r == nil {
		return
	}
	r.Commuters.WithLabelValues("total").Set(float64(res.TotalCommuters))
	r.Commuters.WithLabelValues("reachable").Set(float64(res.ReachableCommuters))
	r.Commuters.WithLabelValues("unreachable").Set(float64(res.UnreachableCommuters))
	r.TrafficCongestion.Set(res.Congestion)
	r.MaxRoadTraffic.Set(float64(res.MaxTraffic))
}

// RecordGoods copies goods totals.
func (r *Registry) RecordGoods(res goods.Result) {
	if r == nil {
		return
	}
	for kind, v := range map[string]int{
		"produced":    res.GoodsProduced,
		"demand":      res.GoodsDemand,
		"delivered":   res.GoodsDelivered,
		"imported":    res.GoodsImported,
		"exported":    res.GoodsExported,
		"unreachable": res.UnreachableDemand,
	} {
		r.GoodsUnits.WithLabelValues(kind).Set(float64(v))
	}
	r.GoodsSatisfaction.Set(res.Satisfaction)
}

// RecordResilience copies bridge and articulation counts.
func (r *Registry) RecordResilience(res resilience.Result) {
	if r == nil {
		return
	}
	r.ArticulationNodes.Set(float64(len(res.ArticulationNodes)))
	r.BridgeEdges.Set(float64(len(res.BridgeEdges)))
}

// RecordCentrality copies the source count and the top edge score.
func (r *Registry) RecordCentrality(res centrality.Result) {
	if r == nil {
		return
	}
	scores := res.EdgeBetweenness
	if res.EdgeBetweennessNorm != nil {
		scores = res.EdgeBetweennessNorm
	}
	top := 0.0
	for _, v := range scores {
		top = max(top, v)
	}
	r.CentralitySources.Set(float64(res.SourcesUsed))
	r.MaxEdgeBetweenness.Set(top)
}

// RecordFlow counts congested edges and the highest edge utilisation.
func (r *Registry) RecordFlow(fs roadgraph.FlowStats) {
	if r == nil {
		return
	}
	congested, top := 0, 0.0
	for _, e := range fs.Edges {
		if e.All.CongestedTiles > 0 {
			congested++
		}
		top = max(top, e.All.MaxUtil)
	}
	r.CongestedEdges.Set(float64(congested))
	r.MaxEdgeUtilisation.Set(top)
}

// RecordUpgrade copies plan totals.
func (r *Registry) RecordUpgrade(p upgrade.Plan) {
	if r == nil {
		return
	}
	r.UpgradeEdges.Set(float64(len(p.Edges)))
	r.UpgradeCost.Set(float64(p.TotalCost))
	r.UpgradeExcessReduced.Set(float64(p.TotalExcessReduced))
	r.UpgradeTimeSaved.Set(float64(p.TotalTimeSaved))
}

// ObserveStage records the duration of one engine stage.
func (r *Registry) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRun counts a finished run ("ok", "canceled" or "error").
func (r *Registry) RecordRun(status string) {
	if r == nil {
		return
	}
	r.RunsTotal.WithLabelValues(status).Inc()
}
