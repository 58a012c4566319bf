package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roadnet"

// Registry holds the engine collectors.
type Registry struct {
	registry *prometheus.Registry

	// Graph
	GraphNodes      prometheus.Gauge
	GraphEdges      prometheus.Gauge
	GraphComponents prometheus.Gauge
	ApproxDiameter  prometheus.Gauge

	// Traffic
	Commuters         *prometheus.GaugeVec
	TrafficCongestion prometheus.Gauge
	MaxRoadTraffic    prometheus.Gauge

	// Goods
	GoodsUnits        *prometheus.GaugeVec
	GoodsSatisfaction prometheus.Gauge

	// Resilience
	ArticulationNodes prometheus.Gauge
	BridgeEdges       prometheus.Gauge

	// Centrality and per-edge flow
	CentralitySources  prometheus.Gauge
	MaxEdgeBetweenness prometheus.Gauge
	CongestedEdges     prometheus.Gauge
	MaxEdgeUtilisation prometheus.Gauge

	// Upgrade planning
	UpgradeEdges         prometheus.Gauge
	UpgradeCost          prometheus.Gauge
	UpgradeExcessReduced prometheus.Gauge
	UpgradeTimeSaved     prometheus.Gauge

	// Runs
	StageDuration *prometheus.HistogramVec
	RunsTotal     *prometheus.CounterVec
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initGraphMetrics()
	r.initFlowMetrics()
	r.initPlanMetrics()
	r.initRunMetrics()

	return r
}

// Gatherer returns the underlying registry for exposition.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Registry) gauge(subsystem, name, help string) prometheus.Gauge {
	return promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = r.gauge("graph", "nodes", "Nodes of the compiled road graph")
	r.GraphEdges = r.gauge("graph", "edges", "Edges of the compiled road graph")
	r.GraphComponents = r.gauge("graph", "components", "Connected components of the road graph")
	r.ApproxDiameter = r.gauge("graph", "approx_diameter_tiles", "Double-sweep diameter estimate in tiles")
	r.ArticulationNodes = r.gauge("graph", "articulation_nodes", "Nodes whose removal splits their component")
	r.BridgeEdges = r.gauge("graph", "bridge_edges", "Edges whose removal splits their component")
	r.CentralitySources = r.gauge("graph", "centrality_sources", "Source nodes used by the betweenness pass")
	r.MaxEdgeBetweenness = r.gauge("graph", "max_edge_betweenness", "Highest edge betweenness, normalised when enabled")
	r.CongestedEdges = r.gauge("graph", "congested_edges", "Edges with at least one tile over capacity")
	r.MaxEdgeUtilisation = r.gauge("graph", "max_edge_utilisation", "Highest flow over capacity ratio on an edge tile")
}

func (r *Registry) initFlowMetrics() {
	r.Commuters = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "traffic",
			Name:      "commuters",
			Help:      "Commuters by assignment state",
		},
		[]string{"state"},
	)
	r.TrafficCongestion = r.gauge("traffic", "congestion_ratio", "Excess over capacity divided by total road traffic")
	r.MaxRoadTraffic = r.gauge("traffic", "max_road_tile", "Highest commuter count on one road tile")

	r.GoodsUnits = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "goods",
			Name:      "units",
			Help:      "Goods units by flow kind",
		},
		[]string{"kind"},
	)
	r.GoodsSatisfaction = r.gauge("goods", "satisfaction_ratio", "Delivered over demanded goods")
}

func (r *Registry) initPlanMetrics() {
	r.UpgradeEdges = r.gauge("upgrade", "edges", "Edges selected by the upgrade planner")
	r.UpgradeCost = r.gauge("upgrade", "cost", "Total cost of the upgrade plan")
	r.UpgradeExcessReduced = r.gauge("upgrade", "excess_reduced", "Excess traffic removed by the plan")
	r.UpgradeTimeSaved = r.gauge("upgrade", "time_saved_milli", "Travel time saved by the plan in milli-steps")
}

func (r *Registry) initRunMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Engine stage duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"stage"},
	)
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Engine runs by outcome",
		},
		[]string{"status"},
	)
}
