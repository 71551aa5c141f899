package notify

import (
	"fmt"

	"TradeTrack/pkg/model"
)

// Message is one email to deliver.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message to a recipient. Delivery is attempted once;
// a failure is logged by the caller and never retried.
type Sender interface {
	Send(msg Message) error
}

// Render builds the email for a notification event.
func Render(n model.AlertNotification) Message {
	switch n.Kind {
	case model.NotificationAlertCreated:
		return Message{
			To:      n.Email,
			Subject: fmt.Sprintf("Alert set for %s", n.Symbol),
			Body: fmt.Sprintf(
				"You set an alert for %s at %.2f USD. Current price: %.2f USD.",
				n.Symbol, n.ThresholdPrice, n.CurrentPrice,
			),
		}
	default:
		return Message{
			To:      n.Email,
			Subject: fmt.Sprintf("Price alert: %s reached %.2f USD", n.Symbol, n.ThresholdPrice),
			Body: fmt.Sprintf(
				"%s has reached your alert price of %.2f USD. Current price: %.2f USD.",
				n.Symbol, n.ThresholdPrice, n.CurrentPrice,
			),
		}
	}
}
