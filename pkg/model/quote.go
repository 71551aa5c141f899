// pkg/model/quote.go
package model

import (
	"time"
)

// Quote is a normalized snapshot of a symbol's current market price.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent string    `json:"change_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// HistoryPoint is one bar of a symbol's price history.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// HistorySeries is a symbol's price history over one of the supported periods.
type HistorySeries struct {
	Symbol string         `json:"symbol"`
	Period string         `json:"period"`
	Points []HistoryPoint `json:"points"`
}
