// pkg/database/watchlist.go
package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"TradeTrack/pkg/model"
)

type WatchlistDB struct {
	db *gorm.DB
}

// Add inserts the symbol; adding a symbol twice is a no-op.
func (w *WatchlistDB) Add(ctx context.Context, item *model.WatchlistItem) error {
	err := w.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("add watchlist item: %w", err)
	}
	return nil
}

func (w *WatchlistDB) Remove(ctx context.Context, userID, symbol string) error {
	res := w.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&model.WatchlistItem{})
	if res.Error != nil {
		return fmt.Errorf("remove watchlist item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (w *WatchlistDB) ListByUser(ctx context.Context, userID string) ([]*model.WatchlistItem, error) {
	var items []*model.WatchlistItem
	err := w.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return items, nil
}
