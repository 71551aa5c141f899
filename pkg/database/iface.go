package database

import (
	"context"

	"TradeTrack/pkg/model"
)

// UserStore is the user persistence surface the API layer depends on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUsername(ctx context.Context, userID, username string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
}

// AlertStore is the alert persistence surface shared by the API layer and
// the monitor. MarkTriggered is the only mutation the monitor performs on
// the triggered flag and it must be atomic: a failed compare-and-set means
// someone else already triggered or deleted the alert, which is a no-op.
type AlertStore interface {
	Create(ctx context.Context, alert *model.PriceAlert) error
	GetByID(ctx context.Context, alertID string) (*model.PriceAlert, error)
	ListByUser(ctx context.Context, userID string) ([]*model.PriceAlert, error)
	ListEligible(ctx context.Context) ([]*model.PriceAlert, error)
	UpdateThreshold(ctx context.Context, alertID, userID string, threshold float64) error
	UpdateLastPrice(ctx context.Context, alertID string, price float64) error
	MarkTriggered(ctx context.Context, alertID string, observedPrice float64) (bool, error)
	SoftDelete(ctx context.Context, alertID, userID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// WatchlistStore is the watchlist persistence surface.
type WatchlistStore interface {
	Add(ctx context.Context, item *model.WatchlistItem) error
	Remove(ctx context.Context, userID, symbol string) error
	ListByUser(ctx context.Context, userID string) ([]*model.WatchlistItem, error)
}
