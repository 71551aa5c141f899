package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"TradeTrack/pkg/config"
	"TradeTrack/pkg/messaging"
	"TradeTrack/pkg/model"
	"TradeTrack/pkg/notify"
)

func main() {
	log := logrus.WithField("service", "notifier")
	log.Info("starting notifier")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if cfg.Email.SendGridAPIKey == "" {
		log.Fatal("sendgrid api key is required")
	}

	natsClient, err := messaging.NewClient(cfg.NATS.URL)
	if err != nil {
		log.WithError(err).Fatal("connect nats")
	}
	defer natsClient.Close()

	sender := notify.NewEmailSender(cfg.Email.SendGridAPIKey, cfg.Email.From)

	// Delivery is attempted once per event; a failed send is logged and the
	// event acknowledged so it is never redelivered.
	err = natsClient.Subscribe("notifier", func(n model.AlertNotification) error {
		msg := notify.Render(n)
		if err := sender.Send(msg); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"alert_id": n.AlertID,
				"kind":     n.Kind,
			}).Warn("email delivery failed")
			return nil
		}
		log.WithFields(logrus.Fields{
			"alert_id": n.AlertID,
			"kind":     n.Kind,
			"to":       msg.To,
		}).Info("notification delivered")
		return nil
	})
	if err != nil {
		log.WithError(err).Fatal("subscribe to alert events")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down notifier")
}
