package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported by the API.
type Metrics struct {
	reg             *prometheus.Registry
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	MatchedRows     prometheus.Histogram
	RecordsLoaded   prometheus.Gauge
	RangeRejections prometheus.Counter
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	matched := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sales_query_matched_rows",
		Help:    "Rows matching each sales query before pagination.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
	loaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sales_records_loaded",
		Help: "Sales records in the current dataset.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_query_invalid_range_total",
		Help: "Queries rejected for an invalid age or date range.",
	})

	r.MustRegister(requests, duration, matched, loaded, rejected)
	return &Metrics{
		reg:             r,
		Requests:        requests,
		RequestDuration: duration,
		MatchedRows:     matched,
		RecordsLoaded:   loaded,
		RangeRejections: rejected,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
