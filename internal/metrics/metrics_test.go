package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_ObserveAdmitIncrementsCountersOnlyWhenTraded(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveAdmit("ACME", 0)
	assert.Equal(t, float64(1), testutil.ToFloat64(c.OrdersAdmitted.WithLabelValues("ACME")))
	assert.Equal(t, float64(0), testutil.ToFloat64(c.TradesTotal.WithLabelValues("ACME")))

	c.ObserveAdmit("ACME", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(c.OrdersAdmitted.WithLabelValues("ACME")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.TradesTotal.WithLabelValues("ACME")))
}

func TestCollector_ObserveCancelLabelsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveCancel("ACME", true)
	c.ObserveCancel("ACME", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.CancelsTotal.WithLabelValues("ACME", "cancelled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.CancelsTotal.WithLabelValues("ACME", "not_found")))
}

func TestCollector_ObserveRejectionLabelsReason(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRejection("unknown_symbol")
	assert.Equal(t, float64(1), testutil.ToFloat64(c.OrdersRejected.WithLabelValues("unknown_symbol")))
}

func TestCollector_SetSubscribersSetsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.SetSubscribers("ACME", 3)
	assert.Equal(t, float64(3), testutil.ToFloat64(c.SubscribersGauge.WithLabelValues("ACME")))

	c.SetSubscribers("ACME", 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(c.SubscribersGauge.WithLabelValues("ACME")))
}
