// Command roadnet runs the road network engine over a scenario and writes
// the graph, flow and upgrade exports.
//
//	roadnet -scenario city.yaml -out ./out
//	roadnet -osm extract.osm -out ./out -apply -route 3,4:40,12
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/roadnet/config"
	"github.com/katalvlaran/roadnet/engine"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/metrics"
	"github.com/katalvlaran/roadnet/osmimport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "roadnet:", err)
		os.Exit(1)
	}
}

type routeFlags []engine.RouteQuery

func (r *routeFlags) String() string { return fmt.Sprint(len(*r)) }

func (r *routeFlags) Set(v string) error {
	q, err := parseRoute(v)
	if err != nil {
		return err
	}
	*r = append(*r, q)
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("roadnet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scenarioPath = fs.String("scenario", "", "YAML scenario (\".sz\" accepted)")
		osmPath      = fs.String("osm", "", "OSM XML extract; replaces the scenario layout")
		outDir       = fs.String("out", "", "directory for exports (none when empty)")
		apply        = fs.Bool("apply", false, "apply the upgrade plan to the world")
		logLevel     = fs.String("log-level", "info", "debug, info, warn or error")
		metricsPath  = fs.String("metrics", "", "write Prometheus text metrics to this file")
		routes       routeFlags
	)
	fs.Var(&routes, "route", "route query x1,y1:x2,y2 (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("bad -log-level %q: %w", *logLevel, err)
	}
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	sc := config.Default()
	if *scenarioPath != "" {
		loaded, err := config.Load(*scenarioPath)
		if err != nil {
			return err
		}
		sc = loaded
	}
	if *osmPath != "" {
		sc.OSM = &config.OSMSection{Path: *osmPath, Config: osmimport.DefaultConfig()}
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	w, err := sc.BuildWorld(ctx)
	if err != nil {
		return err
	}
	logger.Info("world ready", "width", w.Width(), "height", w.Height(), "seed", w.Seed())
	fmt.Fprintf(stdout, "hash before: %016x\n", grid.HashWorld(w))

	reg := metrics.NewRegistry()
	rep, err := engine.Run(ctx, w, sc,
		engine.WithLogger(logger),
		engine.WithMetrics(reg),
		engine.WithApplyUpgrades(*apply),
		engine.WithRoutes(routes...),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "hash after:  %016x\n", rep.HashAfter)
	printSummary(stdout, rep)

	if *outDir != "" {
		files, err := writeExports(*outDir, rep, sc.Export)
		if err != nil {
			return err
		}
		logger.Info("exports written", "dir", *outDir, "files", len(files))
	}
	if *metricsPath != "" {
		if err := prometheus.WriteToTextfile(*metricsPath, reg.Gatherer()); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// parseRoute reads "x1,y1:x2,y2".
func parseRoute(v string) (engine.RouteQuery, error) {
	from, to, ok := strings.Cut(v, ":")
	if !ok {
		return engine.RouteQuery{}, fmt.Errorf("route %q: want x1,y1:x2,y2", v)
	}
	a, err := parsePoint(from)
	if err != nil {
		return engine.RouteQuery{}, fmt.Errorf("route %q: %w", v, err)
	}
	b, err := parsePoint(to)
	if err != nil {
		return engine.RouteQuery{}, fmt.Errorf("route %q: %w", v, err)
	}

	return engine.RouteQuery{From: a, To: b}, nil
}

func parsePoint(v string) (grid.Point, error) {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return grid.Point{}, fmt.Errorf("point %q: want x,y", v)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Point{}, err
	}

	return grid.Point{X: x, Y: y}, nil
}

func printSummary(out io.Writer, rep *engine.Report) {
	fmt.Fprintf(out, "graph: %d nodes, %d edges, %d components, diameter %d\n",
		rep.Metrics.Nodes, rep.Metrics.Edges, rep.Metrics.Components, rep.Metrics.ApproxDiameter)
	fmt.Fprintf(out, "traffic: %d commuters (%d unreachable), congestion %.3f\n",
		rep.Traffic.TotalCommuters, rep.Traffic.UnreachableCommuters, rep.Traffic.Congestion)
	fmt.Fprintf(out, "goods: demand %d, delivered %d, imported %d, exported %d\n",
		rep.Goods.GoodsDemand, rep.Goods.GoodsDelivered, rep.Goods.GoodsImported, rep.Goods.GoodsExported)
	fmt.Fprintf(out, "resilience: %d bridges, %d articulation nodes, %d bypasses\n",
		len(rep.Resilience.BridgeEdges), len(rep.Resilience.ArticulationNodes), len(rep.Bypasses))
	fmt.Fprintf(out, "upgrade: %d edges, cost %d, applied %t\n",
		len(rep.Plan.Edges), rep.Plan.TotalCost, rep.Applied)
	for _, r := range rep.Routes {
		if !r.Found {
			fmt.Fprintf(out, "route %v -> %v: none\n", r.From, r.To)
			continue
		}
		fmt.Fprintf(out, "route %v -> %v: %d steps, %d ms\n", r.From, r.To, r.Route.Steps, r.Route.CostMilli)
	}
}
