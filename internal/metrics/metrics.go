// Package metrics instruments the matching engine with Prometheus
// counters and gauges: admits, rejections, cancels, trades, and
// per-symbol market-data subscriber counts. It is the engine.Recorder implementation; the engine never
// depends on Prometheus directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the exchange's Prometheus metrics.
type Collector struct {
	OrdersAdmitted *prometheus.CounterVec
	OrdersRejected *prometheus.CounterVec
	CancelsTotal   *prometheus.CounterVec
	TradesTotal    *prometheus.CounterVec
	SubscribersGauge *prometheus.GaugeVec
}

// NewCollector registers the exchange's metrics against reg and returns
// the collector. Pass prometheus.DefaultRegisterer for process-wide use.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		OrdersAdmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction",
			Name:      "orders_admitted_total",
			Help:      "Number of orders successfully admitted, by symbol.",
		}, []string{"symbol"}),
		OrdersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction",
			Name:      "orders_rejected_total",
			Help:      "Number of orders rejected at admit, by reason.",
		}, []string{"reason"}),
		CancelsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction",
			Name:      "cancels_total",
			Help:      "Number of cancel attempts, by symbol and outcome.",
		}, []string{"symbol", "outcome"}),
		TradesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction",
			Name:      "trades_total",
			Help:      "Number of trades executed, by symbol.",
		}, []string{"symbol"}),
		SubscribersGauge: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "auction",
			Name:      "marketdata_subscribers",
			Help:      "Active market-data subscriptions, by symbol.",
		}, []string{"symbol"}),
	}
}

// ObserveAdmit implements engine.Recorder.
func (c *Collector) ObserveAdmit(symbol string, trades int) {
	c.OrdersAdmitted.WithLabelValues(symbol).Inc()
	if trades > 0 {
		c.TradesTotal.WithLabelValues(symbol).Add(float64(trades))
	}
}

// ObserveCancel implements engine.Recorder.
func (c *Collector) ObserveCancel(symbol string, found bool) {
	outcome := "not_found"
	if found {
		outcome = "cancelled"
	}
	c.CancelsTotal.WithLabelValues(symbol, outcome).Inc()
}

// ObserveRejection records an admit rejected before it reached the
// book (unknown symbol, invalid quantity).
func (c *Collector) ObserveRejection(reason string) {
	c.OrdersRejected.WithLabelValues(reason).Inc()
}

// SetSubscribers sets the current subscriber gauge for symbol.
func (c *Collector) SetSubscribers(symbol string, n int) {
	c.SubscribersGauge.WithLabelValues(symbol).Set(float64(n))
}
