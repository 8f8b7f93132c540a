package evaluation

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/navigatorx-mld/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-mld/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"go.uber.org/zap"
)

type queryResult struct {
	found        bool
	err          error
	runtime      time.Duration
	iterations   int
	candidates   int
	alternatives int
	stretchSum   float64
	overlapSum   float64
}

// Report. aggregate of an alternative route evaluation run.
type Report struct {
	Queries      int
	Found        int
	NotFound     int
	Failed       int
	Alternatives int
	// queries with at least one alternative route
	WithAlternative int

	AvgRuntime      time.Duration
	MaxRuntime      time.Duration
	AvgIterations   float64
	AvgCandidates   float64
	AvgAlternatives float64 // per found query
	AvgStretch      float64 // per alternative route
	AvgOverlap      float64 // per alternative route
}

// Evaluator. runs alternative route queries against an engine and summarizes the quality of the answers.
type Evaluator struct {
	engine     *routing.MLDRoutingEngine
	logger     *zap.Logger
	numWorkers int
}

func NewEvaluator(engine *routing.MLDRoutingEngine, numWorkers int, logger *zap.Logger) *Evaluator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Evaluator{engine: engine, numWorkers: numWorkers, logger: logger}
}

func (ev *Evaluator) Run(ctx context.Context, queries []Query, k int) Report {
	g := ev.engine.GetGraph()

	runQuery := func(q Query) queryResult {
		if ctx.Err() != nil {
			return queryResult{err: ctx.Err()}
		}
		start := time.Now()
		res, err := ev.engine.AlternativeRoutes(ctx, q.Phantoms(g), k)
		qr := queryResult{runtime: time.Since(start)}
		if err != nil && !errors.Is(err, routing.ErrNoRoute) {
			qr.err = err
			return qr
		}
		qr.iterations = res.Stats.Iterations
		qr.candidates = res.Stats.UniqueCandidates
		if res.Found {
			qr.found = true
			for _, alt := range res.Alternatives() {
				qr.alternatives++
				qr.stretchSum += alt.Stretch
				qr.overlapSum += alt.Overlap
			}
		}
		return qr
	}

	results := concurrent.Map(ev.numWorkers, queries, runQuery)

	report := Report{Queries: len(queries)}
	totalRuntime := time.Duration(0)
	stretchSum, overlapSum := 0.0, 0.0
	iterations, candidates := 0, 0
	for i, qr := range results {
		if (i+1)%1000 == 0 {
			ev.logger.Sugar().Infof("collected query %d", i+1)
		}
		if qr.err != nil {
			report.Failed++
			ev.logger.Debug("query failed", zap.Error(qr.err))
			continue
		}
		totalRuntime += qr.runtime
		report.MaxRuntime = max(report.MaxRuntime, qr.runtime)
		iterations += qr.iterations
		candidates += qr.candidates
		if !qr.found {
			report.NotFound++
			continue
		}
		report.Found++
		report.Alternatives += qr.alternatives
		if qr.alternatives > 0 {
			report.WithAlternative++
		}
		stretchSum += qr.stretchSum
		overlapSum += qr.overlapSum
	}

	answered := report.Found + report.NotFound
	if answered > 0 {
		report.AvgRuntime = totalRuntime / time.Duration(answered)
		report.AvgIterations = util.RoundFloat(float64(iterations)/float64(answered), 2)
		report.AvgCandidates = util.RoundFloat(float64(candidates)/float64(answered), 2)
	}
	if report.Found > 0 {
		report.AvgAlternatives = util.RoundFloat(float64(report.Alternatives)/float64(report.Found), 4)
	}
	if report.Alternatives > 0 {
		report.AvgStretch = util.RoundFloat(stretchSum/float64(report.Alternatives), 4)
		report.AvgOverlap = util.RoundFloat(overlapSum/float64(report.Alternatives), 4)
	}
	return report
}

func (r Report) Log(logger *zap.Logger) {
	logger.Info("alternative route evaluation",
		zap.Int("queries", r.Queries),
		zap.Int("found", r.Found),
		zap.Int("not_found", r.NotFound),
		zap.Int("failed", r.Failed),
		zap.Int("with_alternative", r.WithAlternative),
		zap.Float64("avg_alternatives", r.AvgAlternatives),
		zap.Float64("avg_stretch", r.AvgStretch),
		zap.Float64("avg_overlap", r.AvgOverlap),
		zap.Float64("avg_iterations", r.AvgIterations),
		zap.Float64("avg_candidates", r.AvgCandidates),
		zap.Duration("avg_runtime", r.AvgRuntime),
		zap.Duration("max_runtime", r.MaxRuntime),
	)
}
