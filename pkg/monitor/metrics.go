package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradetrack_monitor_ticks_total",
		Help: "Evaluation passes run by the alert monitor.",
	})

	alertsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradetrack_monitor_alerts_evaluated_total",
		Help: "Alerts evaluated across all ticks.",
	})

	alertsTriggered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradetrack_monitor_alerts_triggered_total",
		Help: "Alerts transitioned to triggered.",
	})

	quoteFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradetrack_monitor_quote_fetch_failures_total",
		Help: "Quote fetches that failed, by reason.",
	}, []string{"reason"})

	notifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradetrack_monitor_notify_failures_total",
		Help: "Notification dispatches that failed.",
	})
)
