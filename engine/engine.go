package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/config"
	"github.com/katalvlaran/roadnet/goods"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/pathfind"
	"github.com/katalvlaran/roadnet/resilience"
	"github.com/katalvlaran/roadnet/roadgraph"
	"github.com/katalvlaran/roadnet/roadroute"
	"github.com/katalvlaran/roadnet/traffic"
	"github.com/katalvlaran/roadnet/upgrade"
	"github.com/katalvlaran/roadnet/zoneaccess"
)

type stage struct {
	name string
	run  func() error
}

// Run executes the pipeline on w with the scenario's stage configs.
// w is only mutated when upgrades are applied. A canceled ctx stops the run
// before the next stage and returns the partial report with the ctx error.
func Run(ctx context.Context, w *grid.World, sc *config.Scenario, opts ...Option) (*Report, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	switch {
	case w == nil:
		return nil, ErrNilWorld
	case sc == nil:
		return nil, ErrNilScenario
	}

	log := o.logger.With(slog.String("run", o.runID), slog.String("scenario", sc.Name))
	rep := &Report{
		RunID:      o.runID,
		Scenario:   sc.Name,
		Width:      w.Width(),
		Height:     w.Height(),
		HashBefore: grid.HashWorld(w),
	}
	apply := o.apply || sc.Upgrade.Apply

	stages := []stage{
		{"graph", func() error {
			rep.Graph = roadgraph.Build(w)
			rep.Metrics = roadgraph.ComputeMetrics(rep.Graph, false)
			o.metrics.RecordGraph(rep.Metrics)
			return nil
		}},
		{"access", func() error {
			rep.RoadToEdge = pathfind.RoadsConnectedToEdge(w)
			var mask []uint8
			if sc.Traffic.RequireOutsideConnection {
				mask = rep.RoadToEdge
			}
			rep.ZoneAccess = zoneaccess.Build(w, mask)
			return nil
		}},
		{"traffic", func() error {
			rep.Traffic = traffic.Compute(w, sc.TrafficConfig(), float32(sc.EmployedShare),
				traffic.WithRoadToEdge(rep.RoadToEdge), traffic.WithZoneAccess(rep.ZoneAccess))
			o.metrics.RecordTraffic(rep.Traffic)
			return nil
		}},
		{"goods", func() error {
			rep.GoodsOD = &goods.Debug{}
			gopts := []goods.Option{goods.WithRoadToEdge(rep.RoadToEdge), goods.WithDebug(rep.GoodsOD)}
			// The shared access map only fits when both stages agree on the mask.
			if sc.Goods.RequireOutsideConnection == sc.Traffic.RequireOutsideConnection {
				gopts = append(gopts, goods.WithZoneAccess(rep.ZoneAccess))
			}
			rep.Goods = goods.Compute(w, sc.GoodsConfig(), gopts...)
			o.metrics.RecordGoods(rep.Goods)
			return nil
		}},
		{"flow", func() error {
			rep.RoadFlow = combinedFlow(rep.Traffic.RoadTraffic, rep.Goods.RoadGoodsTraffic)
			rep.Flow = roadgraph.AggregateFlow(w, rep.Graph, rep.RoadFlow, sc.FlowConfig())
			o.metrics.RecordFlow(rep.Flow)
			return nil
		}},
		{"centrality", func() error {
			rep.Centrality = centrality.Compute(rep.Graph, w, sc.CentralityConfig())
			o.metrics.RecordCentrality(rep.Centrality)
			return nil
		}},
		{"resilience", func() error {
			rep.Resilience = resilience.Compute(rep.Graph)
			rep.Bypasses = resilience.SuggestBypasses(w, rep.Graph, rep.Resilience, sc.BypassConfig(), rep.Traffic.RoadTraffic)
			o.metrics.RecordResilience(rep.Resilience)
			return nil
		}},
		{"diameter", func() error {
			rep.Diameter = roadgraph.ApproxDiameter(rep.Graph)
			rep.Metrics.ApproxDiameter = rep.Diameter.Distance
			rep.Metrics.DiameterA, rep.Metrics.DiameterB = rep.Diameter.A, rep.Diameter.B
			o.metrics.RecordGraph(rep.Metrics)
			return nil
		}},
	}
	if len(o.routes) > 0 {
		stages = append(stages, stage{"routes", func() error {
			router, err := roadroute.NewRouter(w, rep.Graph)
			if err != nil {
				return err
			}
			for _, q := range o.routes {
				r, ok := router.Route(q.From, q.To)
				rep.Routes = append(rep.Routes, RouteAnswer{RouteQuery: q, Found: ok, Route: r})
			}
			return nil
		}})
	}
	stages = append(stages, stage{"upgrade", func() error {
		rep.Plan = upgrade.PlanUpgrades(w, rep.Graph, rep.RoadFlow, sc.UpgradeConfig())
		o.metrics.RecordUpgrade(rep.Plan)
		if !apply || len(rep.Plan.Edges) == 0 {
			return nil
		}
		if err := upgrade.Apply(w, rep.Plan); err != nil {
			return err
		}
		rep.Applied = true
		return nil
	}})

	log.Info("run started", slog.Int("width", rep.Width), slog.Int("height", rep.Height),
		slog.Uint64("hash", rep.HashBefore))
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			log.Warn("run canceled", slog.String("before", st.name), slog.Any("err", err))
			o.metrics.RecordRun("canceled")
			rep.HashAfter = grid.HashWorld(w)
			return rep, fmt.Errorf("engine: before %s: %w", st.name, err)
		}
		start := time.Now()
		err := st.run()
		d := time.Since(start)
		rep.Stages = append(rep.Stages, StageTiming{Name: st.name, Duration: d})
		o.metrics.ObserveStage(st.name, d)
		if err != nil {
			log.Error("stage failed", slog.String("stage", st.name), slog.Any("err", err))
			o.metrics.RecordRun("error")
			rep.HashAfter = grid.HashWorld(w)
			return rep, fmt.Errorf("engine: %s: %w", st.name, err)
		}
		log.Debug("stage done", slog.String("stage", st.name), slog.Duration("took", d))
	}
	rep.HashAfter = grid.HashWorld(w)
	o.metrics.RecordRun("ok")

	log.Info("run finished",
		slog.Int("nodes", rep.Metrics.Nodes),
		slog.Int("edges", rep.Metrics.Edges),
		slog.Int("commuters", rep.Traffic.TotalCommuters),
		slog.Int("unreachableCommuters", rep.Traffic.UnreachableCommuters),
		slog.Float64("goodsSatisfaction", rep.Goods.Satisfaction),
		slog.Int("bridges", len(rep.Resilience.BridgeEdges)),
		slog.Int("upgradeEdges", len(rep.Plan.Edges)),
		slog.Bool("applied", rep.Applied),
		slog.Uint64("hash", rep.HashAfter))

	return rep, nil
}

// combinedFlow adds commuter and goods traffic per tile.
func combinedFlow(a, b []uint16) []uint32 {
	n := max(len(a), len(b))
	out := make([]uint32, n)
	for i := range a {
		out[i] += uint32(a[i])
	}
	for i := range b {
		out[i] += uint32(b[i])
	}

	return out
}
