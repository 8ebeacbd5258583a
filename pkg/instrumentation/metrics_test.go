package instrumentation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDispatch(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordDispatch("resolve")
	metrics.RecordDispatch("resolve")
	metrics.RecordDispatch("app")

	assert.Equal(t, float64(2), testutil.ToFloat64(
		metrics.DispatchedRequestsTotal.WithLabelValues("resolve")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.DispatchedRequestsTotal.WithLabelValues("app")))
}

func TestRecordDomainCheck(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordDomainCheck("Verified", false)
	metrics.RecordDomainCheck("", true)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.DomainsCheckedTotal.WithLabelValues("Verified")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DomainCheckFailuresTotal))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics
	metrics.RecordDispatch("resolve")
	metrics.RecordRedirectOutcome("redirect")
	metrics.RecordDomainCheck("Verified", false)
}

func TestMetricsMiddlewareObservesRequests(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	e := echo.New()
	e.Use(MetricsMiddlewareWithConfig(&MetricsConfig{Metrics: metrics}))
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	count := testutil.CollectAndCount(metrics.HttpStatusHistogram, NameSpace+"_"+HttpStatusHistogram)
	assert.Equal(t, 1, count)
}
