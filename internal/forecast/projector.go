package forecast

import (
	"math"
	"time"

	"CycleBand/internal/model"
)

// StepRange is how many of the most recent display rows feed the average
// step. It doubles as the short projection horizon in days; the reuse is
// deliberate.
const StepRange = 30

// ProjectionResult is a single projected price at a future date.
type ProjectionResult struct {
	Date  time.Time
	Price float64
}

// Projection holds the forward price targets derived from a display window.
type Projection struct {
	AvgStep     float64
	HorizonDays int
	YearEnd     ProjectionResult
	ShortTerm   ProjectionResult
}

// Project extrapolates the band median forward using the recent average trend
// step. The window must be ordered most recent first; the baseline is the
// most recent row's median. An empty window projects zero from a zero
// baseline. A year-end date already in the past simply yields a negative
// projection delta.
func Project(window []model.DerivedPoint, horizonDays int, today, yearEnd time.Time) Projection {
	n := horizonDays
	if len(window) < n {
		n = len(window)
	}
	avg := 0.0
	if n > 0 {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += window[i].Step
		}
		avg = sum / float64(n)
	}

	baseline := 0.0
	if len(window) > 0 {
		baseline = window[0].Median
	}

	return Projection{
		AvgStep:     avg,
		HorizonDays: horizonDays,
		YearEnd: ProjectionResult{
			Date:  yearEnd,
			Price: baseline + avg*float64(DaysBetween(today, yearEnd)),
		},
		ShortTerm: ProjectionResult{
			Date:  today.AddDate(0, 0, horizonDays),
			Price: baseline + avg*float64(horizonDays),
		},
	}
}

// DaysBetween counts whole calendar days from a to b, negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// YearEndOf returns December 31 of t's year.
func YearEndOf(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// CompoundFourYear compounds an average daily percentage increase over four
// years, expressed as a percentage.
func CompoundFourYear(avgDailyPct float64) float64 {
	return (math.Pow(1+avgDailyPct/100, 4) - 1) * 100
}
