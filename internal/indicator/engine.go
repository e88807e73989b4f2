package indicator

import (
	"gonum.org/v1/gonum/stat"

	"CycleBand/internal/model"
)

const (
	// bandWindow is the number of points in the moving average / std dev window.
	bandWindow = 365
	// stepLookback is the number of daily changes averaged into the trend step,
	// and the lookback distance for the 52-week change.
	stepLookback = 364
)

// Compute derives the rolling band statistics for an ascending daily price
// series. It is a pure function: the input is never mutated and the result has
// the same length and date order. Every windowed field stays at its zero
// sentinel until enough trailing history exists, and zero denominators resolve
// to zero rather than Inf or NaN.
func Compute(series []model.PricePoint) []model.DerivedPoint {
	derived := make([]model.DerivedPoint, len(series))
	prices := make([]float64, len(series))
	for i, p := range series {
		derived[i].Date = p.Date
		derived[i].Price = p.Price
		prices[i] = p.Price
	}

	// 365-point moving average, population std dev, and the band around them.
	for i := bandWindow - 1; i < len(derived); i++ {
		window := prices[i-bandWindow+1 : i+1]
		ma := stat.Mean(window, nil)
		std := stat.PopStdDev(window, nil)
		derived[i].MovingAvg365 = ma
		derived[i].StdDev365 = std
		derived[i].Ceiling = ma + 2*std
		derived[i].Floor = ma
		derived[i].Median = (derived[i].Ceiling + derived[i].Floor) / 2
	}

	// Day-over-day change and percentage move, independent of the band.
	for i := 1; i < len(derived); i++ {
		derived[i].Change = derived[i].Price - derived[i-1].Price
		if derived[i-1].Price != 0 {
			derived[i].MovePct = derived[i].Change / derived[i-1].Price * 100
		}
	}

	// Trend step: average of the trailing 364 daily changes.
	for i := stepLookback; i < len(derived); i++ {
		sum := 0.0
		for j := 0; j < stepLookback; j++ {
			sum += derived[i-j].Change
		}
		derived[i].Step = sum / float64(stepLookback)
	}

	// Offset from the band median, in percent.
	for i := range derived {
		if derived[i].Median != 0 {
			derived[i].OffsetPct = (derived[i].Price - derived[i].Median) / derived[i].Median * 100
		}
	}

	// 52-week price change.
	for i := stepLookback; i < len(derived); i++ {
		base := derived[i-stepLookback].Price
		if base != 0 {
			derived[i].YearPct = (derived[i].Price - base) / base * 100
		}
	}

	return derived
}
