package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "/api/portfolios", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "/api/portfolios", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/portfolios/:id", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/portfolios", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/portfolios/:id", "404")))
}

func TestRecordMutation(t *testing.T) {
	m := New()

	m.RecordMutation("create")
	m.RecordMutation("create")
	m.RecordMutation("delete")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutationsTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutationsTotal.WithLabelValues("delete")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
		m.RecordMutation("update")
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordMutation("create")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portfolio_api_portfolio_mutations_total{operation="create"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
