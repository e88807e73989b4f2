package collector

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"CycleBand/internal/model"

	"github.com/adshao/go-binance/v2"
)

// BinanceFetcher implements CandleFetcher using the Binance REST API.
type BinanceFetcher struct {
	client *binance.Client
}

// NewBinanceFetcher creates a fetcher with optional base URL and proxy overrides.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	c := binance.NewClient("", "")
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	c.HTTPClient = &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
	return &BinanceFetcher{client: c}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchDailyCandles fetches the trailing daily klines for the symbol.
// Malformed klines are logged and skipped rather than failing the batch.
func (f *BinanceFetcher) FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]model.Candle, error) {
	klines, err := f.client.NewKlinesService().
		Symbol(symbol).
		Interval("1d").
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}

	candles := make([]model.Candle, 0, len(klines))
	for _, k := range klines {
		c, err := parseKline(k)
		if err != nil {
			log.Printf("[WARN] skip malformed kline at %d: %v", k.OpenTime, err)
			continue
		}
		candles = append(candles, c)
	}

	// Ensure chronological order
	sort.Slice(candles, func(i, j int) bool { return candles[i].Date.Before(candles[j].Date) })
	return candles, nil
}

func parseKline(k *binance.Kline) (model.Candle, error) {
	var c model.Candle
	var err error
	if c.Open, err = strconv.ParseFloat(k.Open, 64); err != nil {
		return c, fmt.Errorf("parse open: %w", err)
	}
	if c.High, err = strconv.ParseFloat(k.High, 64); err != nil {
		return c, fmt.Errorf("parse high: %w", err)
	}
	if c.Low, err = strconv.ParseFloat(k.Low, 64); err != nil {
		return c, fmt.Errorf("parse low: %w", err)
	}
	if c.Close, err = strconv.ParseFloat(k.Close, 64); err != nil {
		return c, fmt.Errorf("parse close: %w", err)
	}
	if c.Volume, err = strconv.ParseFloat(k.Volume, 64); err != nil {
		return c, fmt.Errorf("parse volume: %w", err)
	}
	c.Trades = k.TradeNum

	// Open time (ms, UTC) identifies the calendar day.
	t := time.UnixMilli(k.OpenTime).UTC()
	c.Date = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return c, nil
}
