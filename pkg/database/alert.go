// pkg/database/alert.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"TradeTrack/pkg/model"
)

type AlertDB struct {
	db *gorm.DB
}

func (a *AlertDB) Create(ctx context.Context, alert *model.PriceAlert) error {
	if err := a.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (a *AlertDB) GetByID(ctx context.Context, alertID string) (*model.PriceAlert, error) {
	var alert model.PriceAlert
	err := a.db.WithContext(ctx).First(&alert, "id = ?", alertID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &alert, nil
}

func (a *AlertDB) ListByUser(ctx context.Context, userID string) ([]*model.PriceAlert, error) {
	var alerts []*model.PriceAlert
	err := a.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("list user alerts: %w", err)
	}
	return alerts, nil
}

// ListEligible returns the alerts the monitor evaluates: active and not yet
// triggered.
func (a *AlertDB) ListEligible(ctx context.Context) ([]*model.PriceAlert, error) {
	var alerts []*model.PriceAlert
	err := a.db.WithContext(ctx).
		Where("is_active = ? AND triggered = ?", true, false).
		Order("created_at ASC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("list eligible alerts: %w", err)
	}
	return alerts, nil
}

func (a *AlertDB) UpdateThreshold(ctx context.Context, alertID, userID string, threshold float64) error {
	res := a.db.WithContext(ctx).Model(&model.PriceAlert{}).
		Where("id = ? AND user_id = ? AND is_active = ?", alertID, userID, true).
		Update("threshold_price", threshold)
	if res.Error != nil {
		return fmt.Errorf("update threshold: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (a *AlertDB) UpdateLastPrice(ctx context.Context, alertID string, price float64) error {
	return a.db.WithContext(ctx).Model(&model.PriceAlert{}).
		Where("id = ?", alertID).
		Update("last_known_price", price).Error
}

// MarkTriggered flips the triggered flag with a single guarded UPDATE. The
// WHERE clause is the compare-and-set: only an active, untriggered row
// transitions, so concurrent ticks and concurrent deletes cannot double-fire.
// Returns false when the row had already been triggered or deleted.
func (a *AlertDB) MarkTriggered(ctx context.Context, alertID string, observedPrice float64) (bool, error) {
	now := time.Now()
	res := a.db.WithContext(ctx).Model(&model.PriceAlert{}).
		Where("id = ? AND triggered = ? AND is_active = ?", alertID, false, true).
		Updates(map[string]interface{}{
			"triggered":        true,
			"triggered_at":     now,
			"last_known_price": observedPrice,
		})
	if res.Error != nil {
		return false, fmt.Errorf("mark triggered: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SoftDelete deactivates the alert; the monitor's eligibility filter
// excludes it from the next tick on.
func (a *AlertDB) SoftDelete(ctx context.Context, alertID, userID string) error {
	res := a.db.WithContext(ctx).Model(&model.PriceAlert{}).
		Where("id = ? AND user_id = ? AND is_active = ?", alertID, userID, true).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("soft delete alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (a *AlertDB) DeleteAllForUser(ctx context.Context, userID string) error {
	if err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PriceAlert{}).Error; err != nil {
		return fmt.Errorf("delete user alerts: %w", err)
	}
	return nil
}

func (a *AlertDB) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&model.PriceAlert{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count user alerts: %w", err)
	}
	return count, nil
}
