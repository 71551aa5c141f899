// pkg/model/alert.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceAlert is a user's request to be notified once a symbol's price
// reaches a threshold. Triggered is a one-way flag: the monitor flips it
// exactly once and it never reverts.
type PriceAlert struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Symbol         string     `gorm:"type:varchar(20);not null;index" json:"symbol"`
	ThresholdPrice float64    `gorm:"type:decimal(12,4);not null" json:"threshold_price"`
	Email          string     `gorm:"not null" json:"email"`
	CreatedPrice   float64    `gorm:"type:decimal(12,4);not null" json:"created_price"`
	LastKnownPrice float64    `gorm:"type:decimal(12,4)" json:"last_known_price"`
	IsActive       bool       `gorm:"default:true;index" json:"is_active"`
	Triggered      bool       `gorm:"default:false;index" json:"triggered"`
	TriggeredAt    *time.Time `json:"triggered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (a *PriceAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (PriceAlert) TableName() string {
	return "price_alerts"
}

// Reached reports whether price satisfies the alert's threshold policy.
// The side the alert started on is fixed by the price observed at creation:
// an alert set below its threshold fires at or above it, an alert set above
// fires at or below it. Equality fires either way.
func (a *PriceAlert) Reached(price float64) bool {
	if a.CreatedPrice <= a.ThresholdPrice {
		return price >= a.ThresholdPrice
	}
	return price <= a.ThresholdPrice
}
