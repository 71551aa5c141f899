package quote

import (
	"context"

	"TradeTrack/pkg/model"
)

// Gateway fetches normalized quotes from the market-data provider.
type Gateway interface {
	GetQuote(ctx context.Context, symbol string) (*model.Quote, error)
}

// HistoryFetcher fetches a symbol's price history for a display period.
type HistoryFetcher interface {
	GetHistory(ctx context.Context, symbol, period string) (*model.HistorySeries, error)
}
