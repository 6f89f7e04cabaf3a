package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "notesapi"

var (
	requestsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "Requests served, by route template and status code.",
	}, []string{"method", "route", "code"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Time from first byte read to handler return.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	responseBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_response_size_bytes",
		Help:      "Body size of responses.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
	}, []string{"method", "route"})

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being handled.",
	})

	noteMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "note_mutations_total",
		Help:      "Notes created, updated or deleted.",
	}, []string{"operation"})

	failures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "errors_total",
		Help:      "Rejected or failed requests by cause.",
	}, []string{"type"}) // validation, conflict, db, panic, rate_limit, unknown
)

// MetricsMiddleware records per-route request metrics. Routes are labelled with their
// template (/api/notes/:id), unmatched paths share one label.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		inFlight.Inc()
		start := time.Now()

		c.Next()

		inFlight.Dec()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		requestsServed.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		responseBytes.WithLabelValues(method, route).Observe(float64(c.Writer.Size()))
	}
}

// TrackNoteOperation counts a successful create, update or delete.
func TrackNoteOperation(operation string) {
	noteMutations.WithLabelValues(operation).Inc()
}

func TrackError(errorType string) {
	failures.WithLabelValues(errorType).Inc()
}
