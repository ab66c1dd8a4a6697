package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics собирает prometheus-метрики сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	FeedEventsTotal    *prometheus.CounterVec
	AgendaRefreshTotal *prometheus.CounterVec
}

// New registers and returns the service metric set. service is attached as a
// constant label so several instances can share one Prometheus.
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		FeedEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "feed_events_total",
			Help:        "Change feed notifications received",
			ConstLabels: constLabels,
		}, []string{"establishment"}),

		AgendaRefreshTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "agenda_refresh_total",
			Help:        "Agenda window refreshes by outcome",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// ObserveAgendaRefresh counts one agenda window refresh outcome.
func (m *Metrics) ObserveAgendaRefresh(result string) {
	if m == nil {
		return
	}
	m.AgendaRefreshTotal.WithLabelValues(result).Inc()
}

// ObserveFeedEvent counts one change feed notification.
func (m *Metrics) ObserveFeedEvent(establishment string) {
	if m == nil {
		return
	}
	m.FeedEventsTotal.WithLabelValues(establishment).Inc()
}

// ObserveDBQuery records one query execution.
func (m *Metrics) ObserveDBQuery(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, result).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
