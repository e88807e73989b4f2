package model

import "time"

// DerivedPoint carries the rolling band statistics for one trading day.
// Zero is the "undefined" sentinel for every windowed field.
type DerivedPoint struct {
	Date         time.Time
	Price        float64
	MovingAvg365 float64 // 365-point moving average
	StdDev365    float64 // population std dev over the same window
	Ceiling      float64 // MovingAvg365 + 2*StdDev365
	Floor        float64 // MovingAvg365
	Median       float64 // (Ceiling + Floor) / 2
	Change       float64 // day-over-day price change
	MovePct      float64 // Change as a percentage of the prior price
	Step         float64 // trailing average of daily changes
	OffsetPct    float64 // distance from Median in percent
	YearPct      float64 // 52-week price change in percent
}

// HasBand reports whether the 365-point window behind this point was full.
func (p DerivedPoint) HasBand() bool { return p.MovingAvg365 != 0 }
