// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trailhub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SuggestionsComputedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trailhub_suggestions_computed_total",
			Help: "Number of suggestion lists computed",
		},
	)

	// result is one of ok, error, open (breaker rejected the call).
	WeatherRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailhub_weather_requests_total",
			Help: "Weather provider calls by outcome",
		},
		[]string{"result"},
	)
)

func RecordSuggestionRun() {
	SuggestionsComputedTotal.Inc()
}

func RecordWeatherRequest(result string) {
	WeatherRequestsTotal.WithLabelValues(result).Inc()
}
