package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"TradeTrack/pkg/config"
	"TradeTrack/pkg/database"
	"TradeTrack/pkg/messaging"
	"TradeTrack/pkg/monitor"
	"TradeTrack/pkg/quote"
	"TradeTrack/pkg/scheduler"
)

func main() {
	log := logrus.WithField("service", "monitor")
	log.Info("starting alert monitor")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	if cfg.App.Env == "dev" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, err := database.NewPostgres(cfg)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}
	defer db.Close()

	natsClient, err := messaging.NewClient(cfg.NATS.URL)
	if err != nil {
		log.WithError(err).Fatal("connect nats")
	}
	defer natsClient.Close()

	gateway := quote.NewAlphaVantageClient(
		cfg.DataSources.AlphaVantage.APIKey,
		cfg.DataSources.AlphaVantage.BaseURL,
		cfg.DataSources.AlphaVantage.Timeout.Std(),
	)

	mon := monitor.New(db.Alerts(), gateway, natsClient, cfg.Monitor.QuoteTimeout.Std())

	sched := scheduler.New()
	if err := sched.AddEvery(cfg.Monitor.PollInterval.Std(), "alert-check", func() {
		mon.Tick(context.Background())
	}); err != nil {
		log.WithError(err).Fatal("schedule alert check")
	}
	sched.Start()
	defer sched.Stop()

	// Metrics endpoint.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := ":" + cfg.Monitor.MetricsPort
		log.WithField("addr", addr).Info("metrics listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).Error("metrics server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down alert monitor")
}
