package main

import (
	"context"
	"flag"
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-mld/pkg/logger"
	"github.com/lintang-b-s/navigatorx-mld/pkg/preprocessor"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"go.uber.org/zap"
)

var (
	osmFile   = flag.String("f", "./data/solo_jogja.osm.pbf", "openstreetmap pbf extract")
	graphFile = flag.String("o", "./data/map.graph", "output graph file")
	cellSizes = flag.String("cell_sizes", "256,2048,16384,131072", "maximum cell size of each level, level 1 first")
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

	sizes, err := parseCellSizes(*cellSizes)
	if err != nil {
		logger.Fatal("invalid cell sizes", zap.Error(err))
	}

	prep := preprocessor.NewPreprocessor(sizes, logger)
	if err := prep.Run(context.Background(), *osmFile, *graphFile); err != nil {
		logger.Fatal("preprocessing failed", zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully.")
}

func parseCellSizes(s string) ([]int, error) {
	sizes := make([]int, 0)
	for _, tok := range strings.Split(s, ",") {
		size, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
