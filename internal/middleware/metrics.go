package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Labels stay at method/status granularity; paths carry record ids and
// would blow up series cardinality.
var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resourceplanner_http_requests_total",
			Help: "Total HTTP requests by method and status code.",
		},
		[]string{"method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resourceplanner_http_request_duration_seconds",
			Help:    "HTTP request latency by method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Metrics records a request counter and latency histogram for every
// request. Mount promhttp.Handler() on /metrics to expose them.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
