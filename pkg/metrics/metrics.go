package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
// Все методы Observe*/Inc* безопасны для nil-получателя: если метрики выключены, вызовы игнорируются
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge

	UpstreamRequestDuration *prometheus.HistogramVec

	ReconcileAttemptsTotal *prometheus.CounterVec
	ReconcileRunsTotal     *prometheus.CounterVec

	PaymentDispatchTotal  *prometheus.CounterVec
	PaymentLinkAliasTotal *prometheus.CounterVec

	HandoffOperationsTotal *prometheus.CounterVec
	ReturnOutcomesTotal    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: constLabels,
		}),

		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}),

		UpstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "Duration of calls to booking, payment and offering services",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"upstream", "operation", "status"}),

		ReconcileAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_reconcile_attempts_total",
			Help:        "Booking status confirmation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		ReconcileRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_reconcile_runs_total",
			Help:        "Booking reconciliation runs by final state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		PaymentDispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_dispatch_total",
			Help:        "Payment dispatches by method and result",
			ConstLabels: constLabels,
		}, []string{"method", "result"}),

		PaymentLinkAliasTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_link_field_total",
			Help:        "Payment link responses by the field that carried the redirect URL",
			ConstLabels: constLabels,
		}, []string{"field"}),

		HandoffOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "handoff_operations_total",
			Help:        "Handoff record operations by kind, operation and result",
			ConstLabels: constLabels,
		}, []string{"kind", "operation", "result"}),

		ReturnOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_return_outcomes_total",
			Help:        "Payment return outcomes by source and status",
			ConstLabels: constLabels,
		}, []string{"source", "status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.UpstreamRequestDuration,
		m.ReconcileAttemptsTotal,
		m.ReconcileRunsTotal,
		m.PaymentDispatchTotal,
		m.PaymentLinkAliasTotal,
		m.HandoffOperationsTotal,
		m.ReturnOutcomesTotal,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ObserveDBQuery(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(seconds)
}

func (m *Metrics) SetDBConnections(open, inUse int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(open))
	m.DBInUseConnections.Set(float64(inUse))
}

func (m *Metrics) ObserveUpstream(upstream, operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequestDuration.WithLabelValues(upstream, operation, status).Observe(seconds)
}

func (m *Metrics) IncReconcileAttempt(outcome string) {
	if m == nil {
		return
	}
	m.ReconcileAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncReconcileRun(state string) {
	if m == nil {
		return
	}
	m.ReconcileRunsTotal.WithLabelValues(state).Inc()
}

func (m *Metrics) IncPaymentDispatch(method, result string) {
	if m == nil {
		return
	}
	m.PaymentDispatchTotal.WithLabelValues(method, result).Inc()
}

func (m *Metrics) IncPaymentLinkField(field string) {
	if m == nil {
		return
	}
	m.PaymentLinkAliasTotal.WithLabelValues(field).Inc()
}

func (m *Metrics) IncHandoff(kind, operation, result string) {
	if m == nil {
		return
	}
	m.HandoffOperationsTotal.WithLabelValues(kind, operation, result).Inc()
}

func (m *Metrics) IncReturnOutcome(source, status string) {
	if m == nil {
		return
	}
	m.ReturnOutcomesTotal.WithLabelValues(source, status).Inc()
}
