package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RecalculationsTotal counts vendor metric recomputations triggered by
	// purchase order writes.
	RecalculationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendor_api_metrics_recalculations_total",
			Help: "Total number of vendor performance recalculations",
		},
	)

	// SnapshotArchiveErrorsTotal counts failed uploads of historical
	// performance snapshots to the archive bucket.
	SnapshotArchiveErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendor_api_snapshot_archive_errors_total",
			Help: "Total number of snapshot archive upload failures",
		},
	)
)

// Middleware returns a gin middleware that records request count and
// duration for every handled request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
	}
}

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
