package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"TradeTrack/pkg/auth"
	"TradeTrack/pkg/config"
)

// Server is the REST API server.
type Server struct {
	router *gin.Engine
	srv    *http.Server
	log    *logrus.Entry
}

func NewServer(cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	srv := &http.Server{
		Addr:         ":" + cfg.API.Port,
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout.Std(),
		WriteTimeout: cfg.API.WriteTimeout.Std(),
	}

	return &Server{
		router: router,
		srv:    srv,
		log:    logrus.WithField("component", "api"),
	}
}

// SetupRoutes wires all endpoints.
func (s *Server) SetupRoutes(handlers *Handlers, issuer *auth.TokenIssuer) {
	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/ready", handlers.ReadinessCheck)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/auth/register", handlers.Register)
		v1.POST("/auth/login", handlers.Login)

		v1.GET("/quotes", handlers.GetQuote)
		v1.GET("/history", handlers.GetHistory)

		authed := v1.Group("", auth.Middleware(issuer))
		{
			authed.GET("/profile", handlers.GetProfile)
			authed.PUT("/profile", handlers.UpdateProfile)
			authed.PUT("/profile/password", handlers.UpdatePassword)
			authed.DELETE("/profile", handlers.DeleteAccount)

			authed.GET("/watchlist", handlers.ListWatchlist)
			authed.POST("/watchlist", handlers.AddWatchlistItem)
			authed.DELETE("/watchlist/:symbol", handlers.RemoveWatchlistItem)

			authed.GET("/alerts", handlers.ListAlerts)
			authed.POST("/alerts", handlers.CreateAlert)
			authed.PUT("/alerts/:id", handlers.UpdateAlertThreshold)
			authed.DELETE("/alerts/:id", handlers.DeleteAlert)
		}
	}
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() {
	go func() {
		s.log.WithField("addr", s.srv.Addr).Info("api server listening")
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Fatal("api server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.log.Info("shutting down api server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.WithError(err).Error("api server shutdown")
	}
}
