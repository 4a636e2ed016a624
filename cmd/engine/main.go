package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/http"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/logger"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"go.uber.org/zap"
)

var (
	graphFile          = flag.String("graph_file", "./data/torino.graph", "preprocessed .graph file or openstreetmap extract (.osm.pbf / .osm)")
	searchRadius       = flag.Float64("search_radius", 1.0, "max distance in km between a query point and its snapped vertex")
	snapCacheSize      = flag.Int("snap_cache_size", 1<<16, "number of snapped query points kept in the lru cache, 0 disables it")
	parallelEdgePolicy = flag.String("parallel_edge_policy", "first", "edge used between two vertices joined by parallel edges: first | min_weight")
	useRateLimit       = flag.Bool("rate_limit", false, "limit requests per second (RATE_LIMIT_RPS / RATE_LIMIT_BURST)")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Info("no config file, using defaults", zap.Error(err))
	}

	policy, err := routing.ParseParallelEdgePolicy(*parallelEdgePolicy)
	if err != nil {
		panic(err)
	}

	routingEngine, err := engine.NewEngine(*graphFile, policy, logger)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	routingService, err := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(),
		routingEngine.GetSpatialIndex(), *searchRadius, *snapCacheSize)
	if err != nil {
		panic(err)
	}
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx,
		logger, *useRateLimit, routingService)

	signal := http.GracefulShutdown()

	logger.Info("Dijkstra Routing Engine Server Stopping", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("Dijkstra Routing Engine Server Stopped")
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
