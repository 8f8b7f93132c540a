package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/navigatorx-mld/pkg/engine"
	"github.com/lintang-b-s/navigatorx-mld/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-mld/pkg/http"
	"github.com/lintang-b-s/navigatorx-mld/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-mld/pkg/logger"
	"github.com/lintang-b-s/navigatorx-mld/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	useRateLimit          = flag.Bool("ratelimit", false, "use rate limit")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(viper.GetString("GRAPH_FILE"), *leafBoundingBoxRadius,
		routing.AlternativeParamsFromViper(), logger)
	if err != nil {
		logger.Fatal("failed to load routing engine", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)
	routingEngine.GetRoutingEngine().SetObserver(metrics.NewPrometheusObserver(m))

	routingService := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(), routingEngine.GetRtree(),
		viper.GetFloat64("SNAP_RADIUS_KM"), viper.GetDuration("API_TIMEOUT"))

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger).Use(ctx, *useRateLimit, routingService, reg, m)

	signal := http.GracefulShutdown()

	logger.Info("Navigatorx MLD Routing Engine Server Stopping", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
