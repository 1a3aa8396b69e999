package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", "200", 0.1)
		m.ObserveDBQuery("select", "ok", 0.1)
		m.SetDBConnections(1, 1)
		m.ObserveUpstream("booking", "create", "201", 0.1)
		m.IncReconcileAttempt("success")
		m.IncReconcileRun("confirmed")
		m.IncPaymentDispatch("STRIPE", "ok")
		m.IncPaymentLinkField("url")
		m.IncHandoff("pending_payment", "save", "ok")
		m.IncReturnOutcome("gateway", "success")
	})
}

func TestCounters(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.IncPaymentLinkField("paymentLink")
	m.IncPaymentLinkField("paymentLink")
	m.IncReconcileAttempt("failure")

	assert.Equal(t, 2.0, counterValue(t, m.PaymentLinkAliasTotal.WithLabelValues("paymentLink")))
	assert.Equal(t, 1.0, counterValue(t, m.ReconcileAttemptsTotal.WithLabelValues("failure")))
}
