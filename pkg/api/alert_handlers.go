// pkg/api/alert_handlers.go
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"TradeTrack/pkg/auth"
	"TradeTrack/pkg/database"
	"TradeTrack/pkg/model"
)

type createAlertRequest struct {
	Symbol         string  `json:"symbol" binding:"required"`
	ThresholdPrice float64 `json:"threshold_price" binding:"required"`
}

// CreateAlert sets a price alert for the authenticated user. The current
// quote is recorded on the alert so the monitor knows which side of the
// threshold it started on, and a confirmation event is published.
func (h *Handlers) CreateAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "symbol and threshold_price are required",
		})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	q, err := h.gateway.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		h.renderQuoteError(c, symbol, err)
		return
	}

	alert := &model.PriceAlert{
		UserID:         auth.UserID(c),
		Symbol:         symbol,
		ThresholdPrice: req.ThresholdPrice,
		Email:          auth.Email(c),
		CreatedPrice:   q.Price,
		LastKnownPrice: q.Price,
		IsActive:       true,
	}
	if err := h.alerts.Create(c.Request.Context(), alert); err != nil {
		h.log.WithError(err).Error("create alert")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "alert creation failed",
		})
		return
	}

	// Confirmation email is best effort.
	if h.publisher != nil {
		if err := h.publisher.NotifyCreated(alert); err != nil {
			h.log.WithError(err).WithField("alert_id", alert.ID).Warn("publish alert created event")
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"alert": alert,
	})
}

// ListAlerts returns the user's active alerts.
func (h *Handlers) ListAlerts(c *gin.Context) {
	alerts, err := h.alerts.ListByUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.log.WithError(err).Error("list alerts")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "listing alerts failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": alerts,
	})
}

type updateThresholdRequest struct {
	ThresholdPrice float64 `json:"threshold_price" binding:"required"`
}

// UpdateAlertThreshold edits the threshold of an active alert the user owns.
func (h *Handlers) UpdateAlertThreshold(c *gin.Context) {
	var req updateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "threshold_price is required",
		})
		return
	}

	err := h.alerts.UpdateThreshold(c.Request.Context(), c.Param("id"), auth.UserID(c), req.ThresholdPrice)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "alert not found",
			})
			return
		}
		h.log.WithError(err).Error("update alert threshold")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "alert update failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "updated",
	})
}

// DeleteAlert soft-deletes an alert; the monitor excludes it from the next
// tick on.
func (h *Handlers) DeleteAlert(c *gin.Context) {
	err := h.alerts.SoftDelete(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "alert not found",
			})
			return
		}
		h.log.WithError(err).Error("delete alert")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "alert deletion failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "deleted",
	})
}

type addWatchlistRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// AddWatchlistItem adds a symbol to the user's watchlist.
func (h *Handlers) AddWatchlistItem(c *gin.Context) {
	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "symbol is required",
		})
		return
	}

	item := &model.WatchlistItem{
		UserID: auth.UserID(c),
		Symbol: strings.ToUpper(strings.TrimSpace(req.Symbol)),
	}
	if err := h.watchlist.Add(c.Request.Context(), item); err != nil {
		h.log.WithError(err).Error("add watchlist item")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "watchlist update failed",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item": item,
	})
}

// ListWatchlist returns the user's tracked symbols.
func (h *Handlers) ListWatchlist(c *gin.Context) {
	items, err := h.watchlist.ListByUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.log.WithError(err).Error("list watchlist")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "listing watchlist failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
	})
}

// RemoveWatchlistItem removes a symbol from the user's watchlist.
func (h *Handlers) RemoveWatchlistItem(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	err := h.watchlist.Remove(c.Request.Context(), auth.UserID(c), symbol)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "symbol not on watchlist",
			})
			return
		}
		h.log.WithError(err).Error("remove watchlist item")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "watchlist update failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "removed",
	})
}
