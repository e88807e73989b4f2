package collector

import (
	"context"
	"time"

	"CycleBand/internal/model"
)

// MockCandleFetcher returns controllable fixed data for development and testing.
type MockCandleFetcher struct {
	Candles []model.Candle
	Err     error
}

func (m *MockCandleFetcher) Name() string { return "mock" }

func (m *MockCandleFetcher) FetchDailyCandles(_ context.Context, _ string, limit int) ([]model.Candle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		return m.Candles, nil
	}
	return GenerateCandles(100, limit), nil
}

// GenerateCandles produces a synthetic ascending daily series ending today.
func GenerateCandles(basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i)*0.001)
		candles[i] = model.Candle{
			Date:   time.Now().UTC().AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000,
			Trades: 5000,
		}
	}
	return candles
}
