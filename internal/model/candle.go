package model

import (
	"math"
	"time"
)

// Candle represents a single daily candlestick bar as fetched from the
// market-data provider.
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Trades int64
}

// ReferencePrice is the canonical price stored for the day: the high/low
// midpoint rounded to 2 decimals.
func (c Candle) ReferencePrice() float64 {
	return math.Round(((c.High+c.Low)/2)*100) / 100
}

// PricePoint is one stored (date, price) observation. Series are ordered
// ascending by date with one point per date.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// Quote is a live bid/ask/last ticker snapshot. Display-only; it never feeds
// the indicator computation.
type Quote struct {
	Bid  float64
	Ask  float64
	Last float64
}
