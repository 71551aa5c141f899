// pkg/api/auth_handlers.go
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

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account.
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid registration data: " + err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.users.GetByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "email already registered",
		})
		return
	}
	if _, err := h.users.GetByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "username already taken",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.WithError(err).Error("hash password")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "registration failed",
		})
		return
	}

	user := &model.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.log.WithError(err).Error("create user")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "registration failed",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": user,
	})
}

// Login verifies credentials and returns a signed token.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid login data: " + err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "wrong email or password",
		})
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Email)
	if err != nil {
		h.log.WithError(err).Error("issue token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "login failed",
		})
		return
	}

	if err := h.users.UpdateLastLogin(c.Request.Context(), user.ID); err != nil {
		h.log.WithError(err).Warn("update last login")
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the account plus alert and watchlist counts.
func (h *Handlers) GetProfile(c *gin.Context) {
	userID := auth.UserID(c)

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "user not found",
		})
		return
	}

	alertCount, err := h.alerts.CountByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Warn("count alerts")
	}

	items, err := h.watchlist.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Warn("list watchlist")
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"alert_count":     alertCount,
		"watchlist_count": len(items),
	})
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
}

// UpdateProfile changes the username.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "username must be 3-20 characters",
		})
		return
	}

	if existing, err := h.users.GetByUsername(c.Request.Context(), req.Username); err == nil && existing.ID != auth.UserID(c) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "username already taken",
		})
		return
	}

	if err := h.users.UpdateUsername(c.Request.Context(), auth.UserID(c), req.Username); err != nil {
		h.log.WithError(err).Error("update username")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "profile update failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "updated",
	})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UpdatePassword changes the password after re-verifying the current one.
func (h *Handlers) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "new password must be at least 6 characters",
		})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "user not found",
		})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "current password is incorrect",
		})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.log.WithError(err).Error("hash password")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "password change failed",
		})
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), user.ID, hash); err != nil {
		h.log.WithError(err).Error("update password")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "password change failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "password changed",
	})
}

// DeleteAccount removes the account and everything it owns.
func (h *Handlers) DeleteAccount(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), auth.UserID(c)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "user not found",
			})
			return
		}
		h.log.WithError(err).Error("delete account")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "account deletion failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "account deleted",
	})
}
