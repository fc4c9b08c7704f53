package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"condo/internal/core"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesPrivateRegistry(t *testing.T) {
	// A second instance would panic on a shared registry.
	a, b := New(), New()
	a.RecordMutation("unit", "add")
	assert.Equal(t, 1.0, testutil.ToFloat64(a.mutations.WithLabelValues("unit", "add")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.mutations.WithLabelValues("unit", "add")))
}

func TestRecordSummary(t *testing.T) {
	m := New()
	m.RecordSummary(core.Summary{
		MonthlyIncome:   core.MoneyFromInt(1540),
		MonthlyExpenses: core.MoneyFromInt(200),
		MonthlyBalance:  core.MoneyFromInt(1340),
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.summaries))
	assert.Equal(t, 1540.0, testutil.ToFloat64(m.monthlyIncome))
	assert.Equal(t, 1340.0, testutil.ToFloat64(m.monthlyBalance))
}

func TestObserveHTTPAndHandler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/summary", http.StatusOK, 12*time.Millisecond)
	m.RecordPublishFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/summary", "200")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "condo_http_requests_total")
	assert.Contains(t, string(body), "condo_event_publish_failures_total 1")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordMutation("unit", "add")
		m.RecordPublishFailure()
		m.RecordSummary(core.Summary{})
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
