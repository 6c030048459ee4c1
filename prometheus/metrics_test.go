package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())
	router.GET("/vendors/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	before := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/vendors/:id", "200"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vendors/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// The route template, not the concrete path, is the label
	after := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/vendors/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestMiddlewareFallsBackToRawPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unmatched requests have no route template, so the raw path is used
	count := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/no-such-route", "404"))
	assert.GreaterOrEqual(t, count, 1.0)
}

func TestHandlerServesMetrics(t *testing.T) {
	RecalculationsTotal.Inc()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vendor_api_metrics_recalculations_total")
}
