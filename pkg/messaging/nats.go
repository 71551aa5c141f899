// pkg/messaging/nats.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"

	"TradeTrack/pkg/model"
)

// Stream and subject layout for alert notification events.
const (
	alertsStream = "ALERTS_STREAM"

	SubjectAlertCreated   = "alerts.created"
	SubjectAlertTriggered = "alerts.triggered"
)

// Client wraps a NATS JetStream connection carrying alert notification
// events between the API/monitor processes and the notifier.
type Client struct {
	conn      *nats.Conn
	jetStream jetstream.JetStream
	ctx       context.Context
	cancel    context.CancelFunc
	log       *logrus.Entry
}

// NotificationHandler consumes one notification event. A non-nil error
// NAKs the message for redelivery.
type NotificationHandler func(n model.AlertNotification) error

// NewClient connects to NATS and ensures the alerts stream exists.
func NewClient(natsURL string) (*Client, error) {
	log := logrus.WithField("component", "messaging")

	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &Client{
		conn:      nc,
		jetStream: js,
		ctx:       ctx,
		cancel:    cancel,
		log:       log,
	}

	if err := client.setupStream(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func (c *Client) setupStream() error {
	_, err := c.jetStream.CreateOrUpdateStream(c.ctx, jetstream.StreamConfig{
		Name:        alertsStream,
		Subjects:    []string{"alerts.*"},
		Description: "alert notification events",
		Retention:   jetstream.LimitsPolicy,
		MaxMsgs:     50000,
		MaxBytes:    50 * 1024 * 1024,
		MaxAge:      7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", alertsStream, err)
	}
	return nil
}

// PublishNotification publishes one notification event.
func (c *Client) PublishNotification(subject string, n model.AlertNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if _, err := c.jetStream.Publish(c.ctx, subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	c.log.WithFields(logrus.Fields{
		"subject":  subject,
		"alert_id": n.AlertID,
		"symbol":   n.Symbol,
	}).Debug("published notification event")
	return nil
}

// NotifyTriggered dispatches the triggered-alert notification. Publishing
// is the monitor's single delivery attempt; the alert stays triggered even
// if this fails.
func (c *Client) NotifyTriggered(ctx context.Context, alert *model.PriceAlert, price float64) error {
	return c.PublishNotification(SubjectAlertTriggered, model.AlertNotification{
		Kind:           model.NotificationAlertTriggered,
		AlertID:        alert.ID,
		Symbol:         alert.Symbol,
		ThresholdPrice: alert.ThresholdPrice,
		CurrentPrice:   price,
		Email:          alert.Email,
		At:             time.Now(),
	})
}

// NotifyCreated dispatches the confirmation sent when an alert is set.
func (c *Client) NotifyCreated(alert *model.PriceAlert) error {
	return c.PublishNotification(SubjectAlertCreated, model.AlertNotification{
		Kind:           model.NotificationAlertCreated,
		AlertID:        alert.ID,
		Symbol:         alert.Symbol,
		ThresholdPrice: alert.ThresholdPrice,
		CurrentPrice:   alert.CreatedPrice,
		Email:          alert.Email,
		At:             time.Now(),
	})
}

// Subscribe consumes notification events with a durable consumer.
func (c *Client) Subscribe(consumerName string, handler NotificationHandler) error {
	consumer, err := c.jetStream.CreateOrUpdateConsumer(c.ctx, alertsStream, jetstream.ConsumerConfig{
		Name:          consumerName,
		Durable:       consumerName,
		FilterSubject: "alerts.*",
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer %s: %w", consumerName, err)
	}

	go c.consume(consumer, consumerName, handler)

	c.log.WithField("consumer", consumerName).Info("subscribed to alert events")
	return nil
}

func (c *Client) consume(consumer jetstream.Consumer, consumerName string, handler NotificationHandler) {
	iter, err := consumer.Messages(jetstream.PullMaxMessages(10))
	if err != nil {
		c.log.WithError(err).WithField("consumer", consumerName).Error("get message iterator")
		return
	}
	defer iter.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		msg, err := iter.Next()
		if err != nil {
			if err == jetstream.ErrNoMessages {
				continue
			}
			c.log.WithError(err).WithField("consumer", consumerName).Warn("receive message")
			time.Sleep(time.Second)
			continue
		}

		var n model.AlertNotification
		if err := json.Unmarshal(msg.Data(), &n); err != nil {
			c.log.WithError(err).Warn("drop undecodable notification event")
			msg.Ack()
			continue
		}

		if err := handler(n); err != nil {
			c.log.WithError(err).WithField("alert_id", n.AlertID).Warn("notification handler failed")
			msg.Nak()
		} else {
			msg.Ack()
		}
	}
}

func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close cancels consumers and drops the connection.
func (c *Client) Close() {
	c.cancel()
	if c.conn != nil {
		c.conn.Close()
	}
}
