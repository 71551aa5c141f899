package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"TradeTrack/pkg/api"
	"TradeTrack/pkg/auth"
	"TradeTrack/pkg/config"
	"TradeTrack/pkg/database"
	"TradeTrack/pkg/health"
	"TradeTrack/pkg/messaging"
	"TradeTrack/pkg/quote"
)

func main() {
	log := logrus.WithField("service", "api")
	log.Info("starting api service")

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

	registry := health.NewRegistry()
	registry.Set("database", "healthy", "")
	registry.Set("nats", "healthy", "")

	gateway := quote.NewAlphaVantageClient(
		cfg.DataSources.AlphaVantage.APIKey,
		cfg.DataSources.AlphaVantage.BaseURL,
		cfg.DataSources.AlphaVantage.Timeout.Std(),
	)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Std())

	handlers := api.NewHandlers(
		db.Users(),
		db.Alerts(),
		db.Watchlist(),
		gateway,
		gateway,
		issuer,
		natsClient,
		registry,
	)

	server := api.NewServer(cfg)
	server.SetupRoutes(handlers, issuer)
	server.Start()
}
