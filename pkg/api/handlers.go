package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"TradeTrack/pkg/auth"
	"TradeTrack/pkg/database"
	"TradeTrack/pkg/health"
	"TradeTrack/pkg/model"
	"TradeTrack/pkg/quote"
)

// Publisher dispatches alert notification events.
type Publisher interface {
	NotifyCreated(alert *model.PriceAlert) error
}

// Handlers holds the API's dependencies.
type Handlers struct {
	users     database.UserStore
	alerts    database.AlertStore
	watchlist database.WatchlistStore
	gateway   quote.Gateway
	history   quote.HistoryFetcher
	issuer    *auth.TokenIssuer
	publisher Publisher
	health    *health.Registry
	log       *logrus.Entry
}

func NewHandlers(
	users database.UserStore,
	alerts database.AlertStore,
	watchlist database.WatchlistStore,
	gateway quote.Gateway,
	history quote.HistoryFetcher,
	issuer *auth.TokenIssuer,
	publisher Publisher,
	registry *health.Registry,
) *Handlers {
	return &Handlers{
		users:     users,
		alerts:    alerts,
		watchlist: watchlist,
		gateway:   gateway,
		history:   history,
		issuer:    issuer,
		publisher: publisher,
		health:    registry,
		log:       logrus.WithField("component", "handlers"),
	}
}

func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h *Handlers) ReadinessCheck(c *gin.Context) {
	status := http.StatusOK
	if h.health != nil && !h.health.Ready() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"components": h.health.All(),
	})
}

// GetQuote proxies a normalized current quote for one symbol.
func (h *Handlers) GetQuote(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "symbol parameter is required",
		})
		return
	}

	q, err := h.gateway.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		h.renderQuoteError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": q,
	})
}

// GetHistory proxies a symbol's price history for a chart period.
func (h *Handlers) GetHistory(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	period := c.Query("period")
	if symbol == "" || period == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "symbol and period parameters are required",
			"valid_periods": []string{quote.PeriodDay, quote.PeriodWeek, quote.PeriodMonth, quote.PeriodYear},
		})
		return
	}

	series, err := h.history.GetHistory(c.Request.Context(), symbol, period)
	if err != nil {
		if strings.Contains(err.Error(), "invalid period") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":         "invalid period",
				"valid_periods": []string{quote.PeriodDay, quote.PeriodWeek, quote.PeriodMonth, quote.PeriodYear},
			})
			return
		}
		h.renderQuoteError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": series,
	})
}

func (h *Handlers) renderQuoteError(c *gin.Context, symbol string, err error) {
	h.log.WithError(err).WithField("symbol", symbol).Warn("quote lookup failed")
	switch {
	case errors.Is(err, quote.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no data found for symbol",
		})
	case errors.Is(err, quote.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "provider rate limit reached, try again shortly",
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "market data fetch failed",
		})
	}
}
