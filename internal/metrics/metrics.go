// Package metrics exposes Prometheus counters the bot updates during
// operation, served at /metrics in the Prometheus text exposition format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Ticks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_ticks_total",
			Help: "Polling ticks executed",
		},
	)

	SignalChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_signal_checks_total",
			Help: "Signal evaluations by side and result",
		},
		[]string{"side", "result"}, // result: entry|no_entry|error
	)

	Orders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_orders_total",
			Help: "Orders placed by side and mode",
		},
		[]string{"side", "mode"}, // mode: paper|live
	)

	Rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_order_rejections_total",
			Help: "Broker-declined orders by side",
		},
		[]string{"side"},
	)

	LedgerBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_ledger_blocked_total",
			Help: "Decisions blocked by the daily trade cap",
		},
		[]string{"side"},
	)

	LastRSI = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bot_last_rsi",
			Help: "Most recent short-timeframe RSI per side",
		},
		[]string{"side"},
	)
)

func init() {
	prometheus.MustRegister(Ticks, SignalChecks, Orders, Rejections, LedgerBlocked, LastRSI)
}
