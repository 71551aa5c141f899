// pkg/model/watchlist.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchlistItem is a symbol a user tracks on their profile page.
type WatchlistItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_symbol" json:"user_id"`
	Symbol    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_symbol" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *WatchlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
