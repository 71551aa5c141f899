// pkg/model/notification.go
package model

import (
	"time"
)

// NotificationKind distinguishes the messages the notifier delivers.
type NotificationKind string

const (
	NotificationAlertCreated   NotificationKind = "alert_created"
	NotificationAlertTriggered NotificationKind = "alert_triggered"
)

// AlertNotification is the event published when an alert is created or
// triggered. The notifier consumes these and sends email.
type AlertNotification struct {
	Kind           NotificationKind `json:"kind"`
	AlertID        string           `json:"alert_id"`
	Symbol         string           `json:"symbol"`
	ThresholdPrice float64          `json:"threshold_price"`
	CurrentPrice   float64          `json:"current_price"`
	Email          string           `json:"email"`
	At             time.Time        `json:"at"`
}
