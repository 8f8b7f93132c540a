package metrics

import (
	"strconv"
	"time"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/engine/routing"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics. prometheus collectors of the routing server, registered on one registry.
type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	queries          *prometheus.CounterVec
	searchIterations prometheus.Histogram
	candidates       prometheus.Histogram
	alternatives     prometheus.Histogram
	droppedCandidate *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"path"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Name:      "route_queries_total",
			Help:      "Number of route queries by outcome.",
		}, []string{"found"}),
		searchIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Name:      "search_iterations",
			Help:      "Double steps of the bidirectional search per query.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 12),
		}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Name:      "via_candidates",
			Help:      "Distinct via vertex candidates per query.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		alternatives: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Name:      "alternative_routes",
			Help:      "Alternative routes returned per query.",
			Buckets:   prometheus.LinearBuckets(0, 1, 6),
		}),
		droppedCandidate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Name:      "via_candidates_dropped_total",
			Help:      "Via candidates dropped during route construction, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.queries, m.searchIterations, m.candidates,
		m.alternatives, m.droppedCandidate)
	return m
}

func (m *Metrics) ObserveHTTPRequest(path string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// PrometheusObserver. routing.SearchObserver feeding the query histograms. iterations are reported once
// per query through OnQueryDone.
type PrometheusObserver struct {
	m *Metrics
}

func NewPrometheusObserver(m *Metrics) *PrometheusObserver {
	return &PrometheusObserver{m: m}
}

var _ routing.SearchObserver = (*PrometheusObserver)(nil)

func (po *PrometheusObserver) OnIteration(routing.IterationStats) {}

func (po *PrometheusObserver) OnCandidateDropped(_ da.Index, reason routing.DropReason) {
	po.m.droppedCandidate.WithLabelValues(reason.String()).Inc()
}

func (po *PrometheusObserver) OnQueryDone(stats routing.QueryStats) {
	po.m.queries.WithLabelValues(strconv.FormatBool(stats.Found)).Inc()
	po.m.searchIterations.Observe(float64(stats.Iterations))
	po.m.candidates.Observe(float64(stats.UniqueCandidates))
	po.m.alternatives.Observe(float64(stats.Alternatives))
}
