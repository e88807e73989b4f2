package ingest

import (
	"context"
	"fmt"
	"log"

	"CycleBand/internal/collector"
	"CycleBand/internal/model"
)

// CandleStore is the subset of the store the ingestor writes to.
type CandleStore interface {
	UpsertCandles(candles []model.Candle) error
	PromoteLatestClose() (string, error)
}

// Ingestor refreshes the stored price series from the candle source.
type Ingestor struct {
	Fetcher collector.CandleFetcher
	Store   CandleStore
	Symbol  string
	Limit   int
}

// New creates a new Ingestor.
func New(fetcher collector.CandleFetcher, st CandleStore, symbol string, limit int) *Ingestor {
	return &Ingestor{Fetcher: fetcher, Store: st, Symbol: symbol, Limit: limit}
}

// Refresh fetches the latest daily candles and upserts them into the store,
// then promotes the most recent date's close to its reference price. A fetch
// failure is non-fatal: whatever is already persisted stays usable.
func (in *Ingestor) Refresh(ctx context.Context) error {
	candles, err := in.Fetcher.FetchDailyCandles(ctx, in.Symbol, in.Limit)
	if err != nil {
		log.Printf("[WARN] fetch candles from %s: %v", in.Fetcher.Name(), err)
		return nil
	}
	if len(candles) == 0 {
		log.Printf("[WARN] no candles returned from %s, skipping store update", in.Fetcher.Name())
		return nil
	}

	if err := in.Store.UpsertCandles(candles); err != nil {
		return fmt.Errorf("upsert candles: %w", err)
	}
	latest, err := in.Store.PromoteLatestClose()
	if err != nil {
		return fmt.Errorf("promote latest close: %w", err)
	}

	log.Printf("[INFO] ingested %d candles, latest date %s now uses close price", len(candles), latest)
	return nil
}
