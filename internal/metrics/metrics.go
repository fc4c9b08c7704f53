// Package metrics exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"condo/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector, registered in a private registry so that
// building more than one (as tests do) never collides. A nil *Metrics
// records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	publishFailures prometheus.Counter
	summaries       prometheus.Counter
	exports         *prometheus.CounterVec
	monthlyIncome   prometheus.Gauge
	monthlyExpenses prometheus.Gauge
	monthlyBalance  prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condo_mutations_total",
				Help: "Successful changes by entity and operation.",
			},
			[]string{"entity", "op"},
		),
		publishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_event_publish_failures_total",
			Help: "Change events that could not be published.",
		}),
		summaries: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_summaries_total",
			Help: "Summaries computed.",
		}),
		exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condo_exports_total",
				Help: "Month exports by result.",
			},
			[]string{"result"},
		),
		monthlyIncome: factory.NewGauge(prometheus.GaugeOpts{
			Name: "condo_monthly_income",
			Help: "Monthly income of the last computed summary.",
		}),
		monthlyExpenses: factory.NewGauge(prometheus.GaugeOpts{
			Name: "condo_monthly_expenses",
			Help: "Monthly expenses of the last computed summary.",
		}),
		monthlyBalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "condo_monthly_balance",
			Help: "Monthly balance of the last computed summary.",
		}),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condo_http_requests_total",
				Help: "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "condo_http_request_duration_seconds",
				Help:    "HTTP request duration by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// RecordMutation counts a successful change, e.g. ("unit", "add").
func (m *Metrics) RecordMutation(entity, op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(entity, op).Inc()
}

func (m *Metrics) RecordPublishFailure() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

// RecordSummary counts a computation and keeps its monthly figures.
func (m *Metrics) RecordSummary(s core.Summary) {
	if m == nil {
		return
	}
	m.summaries.Inc()
	m.monthlyIncome.Set(s.MonthlyIncome.InexactFloat64())
	m.monthlyExpenses.Set(s.MonthlyExpenses.InexactFloat64())
	m.monthlyBalance.Set(s.MonthlyBalance.InexactFloat64())
}

// RecordExport counts an export attempt as "ok" or "error".
func (m *Metrics) RecordExport(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.exports.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
