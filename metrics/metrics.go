// Package metrics defines the Prometheus collectors for the resume search
// server and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the server.
type Metrics struct {
	HTTPRequestsTotal  *prometheus.CounterVec
	ResumesLoadedTotal prometheus.Counter
	LoadFailuresTotal  *prometheus.CounterVec
	SearchesTotal      prometheus.Counter
	SearchResultsCount prometheus.Histogram
}

// New creates and registers all collectors on the given registerer.
// A nil registerer uses the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xeedo_http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		ResumesLoadedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "xeedo_resumes_loaded_total",
				Help: "Total resumes successfully parsed and added.",
			},
		),
		LoadFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xeedo_load_failures_total",
				Help: "Total files that failed to load, by reason.",
			},
			[]string{"reason"},
		),
		SearchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "xeedo_searches_total",
				Help: "Total search requests served.",
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "xeedo_search_results_count",
				Help:    "Number of resumes returned per search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.ResumesLoadedTotal,
		m.LoadFailuresTotal,
		m.SearchesTotal,
		m.SearchResultsCount,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
