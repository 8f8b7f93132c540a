package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"

	"github.com/lintang-b-s/navigatorx-mld/pkg/engine"
	"github.com/lintang-b-s/navigatorx-mld/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-mld/pkg/evaluation"
	"github.com/lintang-b-s/navigatorx-mld/pkg/logger"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	queriesFile           = flag.String("queries", "./data/random_queries_alt.txt", "query file, generated when missing")
	numQueries            = flag.Int("n", 10000, "number of random queries to generate")
	seed                  = flag.Int64("seed", 1, "random query seed")
	k                     = flag.Int("k", 0, "maximum number of alternatives, 0 uses MAX_ALTERNATIVES")
	workers               = flag.Int("workers", runtime.NumCPU(), "number of query workers")
	pprofAddr             = flag.String("pprof", "localhost:6060", "pprof listen address, empty disables it")
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

	re, err := engine.NewEngine(viper.GetString("GRAPH_FILE"), *leafBoundingBoxRadius,
		routing.AlternativeParamsFromViper(), logger)
	if err != nil {
		logger.Fatal("failed to load routing engine", zap.Error(err))
	}
	g := re.GetRoutingEngine().GetGraph()

	queries, err := evaluation.ReadQueriesFile(*queriesFile, g)
	if errors.Is(err, os.ErrNotExist) {
		queries = evaluation.GenerateRandomQueries(g, *numQueries, *seed)
		if err := evaluation.WriteQueriesFile(*queriesFile, queries); err != nil {
			logger.Fatal("failed to write queries", zap.Error(err))
		}
		logger.Sugar().Infof("generated %d random queries into %s", len(queries), *queriesFile)
	} else if err != nil {
		logger.Fatal("failed to read queries", zap.Error(err))
	}

	if *pprofAddr != "" {
		go func() {
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				logger.Warn("pprof server stopped", zap.Error(err))
			}
		}()
	}

	report := evaluation.NewEvaluator(re.GetRoutingEngine(), *workers, logger).Run(context.Background(), queries, *k)
	report.Log(logger)
}
