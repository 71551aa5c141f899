// pkg/monitor/monitor.go
package monitor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"TradeTrack/pkg/model"
	"TradeTrack/pkg/quote"
)

// AlertStore is the slice of alert persistence the monitor needs.
// MarkTriggered must be atomic: it returns false when the alert was already
// triggered or deleted, which the monitor treats as a no-op.
type AlertStore interface {
	ListEligible(ctx context.Context) ([]*model.PriceAlert, error)
	MarkTriggered(ctx context.Context, alertID string, observedPrice float64) (bool, error)
	UpdateLastPrice(ctx context.Context, alertID string, price float64) error
}

// Notifier dispatches the notification for a triggered alert. The monitor
// makes exactly one attempt; failures never roll back the triggered flag.
type Notifier interface {
	NotifyTriggered(ctx context.Context, alert *model.PriceAlert, price float64) error
}

// Monitor periodically re-evaluates every eligible alert against a fresh
// quote and fires each qualifying alert exactly once.
type Monitor struct {
	alerts       AlertStore
	gateway      quote.Gateway
	notifier     Notifier
	quoteTimeout time.Duration
	log          *logrus.Entry
}

func New(alerts AlertStore, gateway quote.Gateway, notifier Notifier, quoteTimeout time.Duration) *Monitor {
	return &Monitor{
		alerts:       alerts,
		gateway:      gateway,
		notifier:     notifier,
		quoteTimeout: quoteTimeout,
		log:          logrus.WithField("component", "monitor"),
	}
}

// Tick runs one evaluation pass. No alert failure is fatal: a failing quote
// fetch skips that alert for this tick, and the loop survives provider
// outages indefinitely.
func (m *Monitor) Tick(ctx context.Context) {
	ticksTotal.Inc()

	alerts, err := m.alerts.ListEligible(ctx)
	if err != nil {
		m.log.WithError(err).Error("load eligible alerts")
		return
	}
	if len(alerts) == 0 {
		return
	}

	m.log.WithField("count", len(alerts)).Debug("evaluating alerts")
	for _, alert := range alerts {
		m.evaluate(ctx, alert)
	}
}

func (m *Monitor) evaluate(ctx context.Context, alert *model.PriceAlert) {
	alertsEvaluated.Inc()

	log := m.log.WithFields(logrus.Fields{
		"alert_id": alert.ID,
		"symbol":   alert.Symbol,
	})

	fetchCtx, cancel := context.WithTimeout(ctx, m.quoteTimeout)
	q, err := m.gateway.GetQuote(fetchCtx, alert.Symbol)
	cancel()
	if err != nil {
		reason := quote.FailureReason(err)
		quoteFetchFailures.WithLabelValues(reason).Inc()
		log.WithError(err).WithField("reason", reason).Warn("quote fetch failed, skipping alert this tick")
		return
	}

	if !alert.Reached(q.Price) {
		if err := m.alerts.UpdateLastPrice(ctx, alert.ID, q.Price); err != nil {
			log.WithError(err).Debug("update last known price")
		}
		return
	}

	transitioned, err := m.alerts.MarkTriggered(ctx, alert.ID, q.Price)
	if err != nil {
		log.WithError(err).Error("mark alert triggered")
		return
	}
	if !transitioned {
		// Someone else already triggered or deleted it.
		log.Debug("alert no longer eligible, skipping notification")
		return
	}

	alertsTriggered.Inc()
	log.WithFields(logrus.Fields{
		"threshold": alert.ThresholdPrice,
		"price":     q.Price,
	}).Info("alert triggered")

	if err := m.notifier.NotifyTriggered(ctx, alert, q.Price); err != nil {
		// The alert stays triggered; delivery gets no retry.
		notifyFailures.Inc()
		log.WithError(err).Warn("notification dispatch failed")
	}
}
