// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes
const (
	OutcomeDisplayed  = "displayed"
	OutcomeNotFound   = "not_found"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoweather_http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	LookupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoweather_lookups_total",
			Help: "Weather searches by outcome.",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geoweather_upstream_request_duration_seconds",
			Help:    "Latency of geocoding and forecast calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, LookupCounter, UpstreamDuration)
}

// ObserveUpstream records one upstream call. status is "error" when the
// request never produced a response.
func ObserveUpstream(endpoint string, resp *resty.Response, err error, started time.Time) {
	status := "error"
	if resp != nil && resp.RawResponse != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	UpstreamDuration.WithLabelValues(endpoint, status).Observe(time.Since(started).Seconds())
}
