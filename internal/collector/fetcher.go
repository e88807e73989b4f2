package collector

import (
	"context"

	"CycleBand/internal/model"
)

// CandleFetcher defines the interface for fetching daily candles.
type CandleFetcher interface {
	FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]model.Candle, error)
	Name() string
}

// QuoteFetcher defines the interface for fetching a live ticker quote.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context) (model.Quote, error)
	Name() string
}
