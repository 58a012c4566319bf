package engine

import (
	"errors"
	"log/slog"
	"time"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/goods"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/metrics"
	"github.com/katalvlaran/roadnet/resilience"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/roadroute"
	"github.com/katalvlaran/roadnet/traffic"
	"github.com/katalvlaran/roadnet/upgrade"
	"github.com/katalvlaran/roadnet/zoneaccess"
)

// Sentinel errors.
var (
	ErrNilWorld    = errors.New("engine: nil world")
	ErrNilScenario = errors.New("engine: nil scenario")
)

// RouteQuery asks for a road route between two road tiles.
type RouteQuery struct {
	From grid.Point `json:"from"`
	To   grid.Point `json:"to"`
}

// RouteAnswer is the result of one RouteQuery.
type RouteAnswer struct {
	RouteQuery
	Found bool            `json:"found"`
	Route roadroute.Route `json:"route"`
}

// StageTiming records how long a stage took.
type StageTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Report gathers every stage result of one run.
type Report struct {
	RunID    string `json:"runId"`
	Scenario string `json:"scenario"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`

	HashBefore uint64 `json:"hashBefore"`
	HashAfter  uint64 `json:"hashAfter"`

	Graph      *roadgraph.Graph   `json:"-"`
	Metrics    roadgraph.Metrics  `json:"metrics"`
	Diameter   roadgraph.Diameter `json:"diameter"`
	RoadToEdge []uint8            `json:"-"`
	ZoneAccess *zoneaccess.Map    `json:"-"`

	// RoadFlow is commuter plus goods traffic per tile; Flow folds it onto
	// the graph.
	RoadFlow []uint32            `json:"-"`
	Flow     roadgraph.FlowStats `json:"-"`

	Traffic    traffic.Result      `json:"traffic"`
	Goods      goods.Result        `json:"goods"`
	GoodsOD    *goods.Debug        `json:"-"`
	Centrality centrality.Result   `json:"centrality"`
	Resilience resilience.Result   `json:"resilience"`
	Bypasses   []resilience.Bypass `json:"bypasses,omitempty"`
	Routes     []RouteAnswer       `json:"routes,omitempty"`

	Plan    upgrade.Plan `json:"-"`
	Applied bool         `json:"applied"`

	Stages []StageTiming `json:"stages"`
}

type options struct {
	logger  *slog.Logger
	metrics *metrics.Registry
	apply   bool
	runID   string
	routes  []RouteQuery
}

// Option customises Run.
type Option func(*options)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records results and stage durations into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) { o.metrics = r }
}

// WithApplyUpgrades applies the upgrade plan to the world after planning,
// in addition to the scenario's own upgrade.apply flag.
func WithApplyUpgrades(apply bool) Option {
	return func(o *options) { o.apply = apply }
}

// WithRunID fixes the run id instead of generating a random UUID.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithRoutes answers the given route queries in a "routes" stage.
func WithRoutes(q ...RouteQuery) Option {
	return func(o *options) { o.routes = append(o.routes, q...) }
}
