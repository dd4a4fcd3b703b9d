package observability

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_api_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garage_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	apiInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "garage_api_inflight_requests",
			Help: "HTTP requests currently being served",
		},
	)

	// RefreshRequests counts refresh requests by how they ended (ok, not_entitled, rate_limited, ...).
	RefreshRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_prediction_refresh_requests_total",
			Help: "Prediction refresh requests by outcome",
		},
		[]string{"outcome"},
	)

	// VehicleOutcomes counts per-vehicle terminal states of a refresh.
	VehicleOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_prediction_vehicle_outcomes_total",
			Help: "Per-vehicle refresh outcomes by terminal state and prediction source",
		},
		[]string{"state", "source"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_prediction_cache_lookups_total",
			Help: "Suggestion cache lookups by result",
		},
		[]string{"result"},
	)

	llmRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_llm_requests_total",
			Help: "LLM provider calls by provider and status",
		},
		[]string{"provider", "status"},
	)

	llmLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garage_llm_request_duration_seconds",
			Help:    "LLM provider call latency",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(apiRequests)
	prometheus.MustRegister(apiLatency)
	prometheus.MustRegister(apiInflight)
	prometheus.MustRegister(RefreshRequests)
	prometheus.MustRegister(VehicleOutcomes)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(llmRequests)
	prometheus.MustRegister(llmLatency)
}

// Handler serves the default registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveAPI(method, route, status string, dur time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	apiRequests.WithLabelValues(method, route, status).Inc()
	apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func ApiInflightInc() { apiInflight.Inc() }

func ApiInflightDec() { apiInflight.Dec() }

func ObserveLLMRequest(provider, status string, dur time.Duration) {
	llmRequests.WithLabelValues(provider, status).Inc()
	llmLatency.WithLabelValues(provider).Observe(dur.Seconds())
}
