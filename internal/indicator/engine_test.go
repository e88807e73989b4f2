package indicator

import (
	"math"
	"testing"
	"time"

	"CycleBand/internal/model"
)

func mkSeries(prices []float64) []model.PricePoint {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		series[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	return series
}

func linear(from float64, count int) []float64 {
	prices := make([]float64, count)
	for i := range prices {
		prices[i] = from + float64(i)
	}
	return prices
}

func relClose(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}

func TestCompute_EmptySeries(t *testing.T) {
	if got := Compute(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d points", len(got))
	}
}

func TestCompute_LengthAndDatesPreserved(t *testing.T) {
	series := mkSeries(linear(1, 400))
	derived := Compute(series)
	if len(derived) != len(series) {
		t.Fatalf("expected %d points, got %d", len(series), len(derived))
	}
	for i := range series {
		if !derived[i].Date.Equal(series[i].Date) {
			t.Fatalf("date mismatch at %d: %v != %v", i, derived[i].Date, series[i].Date)
		}
		if derived[i].Price != series[i].Price {
			t.Fatalf("price mismatch at %d", i)
		}
	}
}

func TestCompute_ShortSeriesAllSentinel(t *testing.T) {
	series := mkSeries(linear(100, 364))
	for i, p := range Compute(series) {
		if p.MovingAvg365 != 0 || p.StdDev365 != 0 || p.Ceiling != 0 || p.Floor != 0 ||
			p.Median != 0 || p.Step != 0 || p.YearPct != 0 {
			t.Fatalf("row %d: expected sentinel band fields for short series, got %+v", i, p)
		}
		if p.OffsetPct != 0 {
			t.Fatalf("row %d: offset should be 0 with zero median", i)
		}
	}
}

func TestCompute_ConstantSeries(t *testing.T) {
	series := mkSeries(make([]float64, 400))
	for i := range series {
		series[i].Price = 250
	}
	derived := Compute(series)
	for i, p := range derived {
		if p.Change != 0 || p.MovePct != 0 {
			t.Fatalf("row %d: expected zero change for constant series", i)
		}
		if i >= 364 {
			if p.StdDev365 != 0 {
				t.Fatalf("row %d: expected zero std dev, got %g", i, p.StdDev365)
			}
			if p.MovingAvg365 != 250 || p.Ceiling != 250 || p.Floor != 250 || p.Median != 250 {
				t.Fatalf("row %d: expected flat band at 250, got %+v", i, p)
			}
			if p.OffsetPct != 0 || p.Step != 0 || p.YearPct != 0 {
				t.Fatalf("row %d: expected zero derived rates, got %+v", i, p)
			}
		}
	}
}

func TestCompute_LinearClosedForm(t *testing.T) {
	// Prices 1..400; the 365th point's window is exactly 1..365.
	derived := Compute(mkSeries(linear(1, 400)))
	p := derived[364]

	wantMean := 183.0 // (1+365)/2
	// Population variance of 1..n is (n^2-1)/12.
	wantStd := math.Sqrt((365.0*365.0 - 1) / 12.0)

	if !relClose(p.MovingAvg365, wantMean, 1e-9) {
		t.Errorf("moving average = %.12f, want %.12f", p.MovingAvg365, wantMean)
	}
	if !relClose(p.StdDev365, wantStd, 1e-9) {
		t.Errorf("std dev = %.12f, want %.12f", p.StdDev365, wantStd)
	}
	if !relClose(p.Ceiling, wantMean+2*wantStd, 1e-9) {
		t.Errorf("ceiling = %.12f, want %.12f", p.Ceiling, wantMean+2*wantStd)
	}
	if p.Floor != p.MovingAvg365 {
		t.Errorf("floor should equal the moving average")
	}
	if !relClose(p.Median, (p.Ceiling+p.Floor)/2, 1e-9) {
		t.Errorf("median should be the ceiling/floor midpoint")
	}
	if derived[363].MovingAvg365 != 0 {
		t.Errorf("band should be undefined one point before the window fills")
	}
}

func TestCompute_LinearEndToEnd(t *testing.T) {
	// 400 consecutive daily prices rising linearly 100..499, step 1/day.
	derived := Compute(mkSeries(linear(100, 400)))
	last := derived[399]

	if last.Change != 1.0 {
		t.Errorf("change = %g, want 1.0", last.Change)
	}
	wantMove := 1.0 / 498.0 * 100.0 // ≈ 0.201%
	if !relClose(last.MovePct, wantMove, 1e-9) {
		t.Errorf("move = %.6f%%, want %.6f%%", last.MovePct, wantMove)
	}
	if !relClose(last.Step, 1.0, 1e-9) {
		t.Errorf("step = %g, want 1.0 for constant slope", last.Step)
	}
	base := derived[399-364].Price // 135
	wantYear := (last.Price - base) / base * 100
	if !relClose(last.YearPct, wantYear, 1e-9) {
		t.Errorf("52-week = %.6f%%, want %.6f%%", last.YearPct, wantYear)
	}
}

func TestCompute_InputNotMutated(t *testing.T) {
	series := mkSeries(linear(1, 400))
	snapshot := make([]model.PricePoint, len(series))
	copy(snapshot, series)
	Compute(series)
	for i := range series {
		if series[i] != snapshot[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestCompute_ZeroPricesNeverNaN(t *testing.T) {
	derived := Compute(mkSeries(make([]float64, 400)))
	for i, p := range derived {
		for _, v := range []float64{p.MovePct, p.OffsetPct, p.YearPct, p.Step} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("row %d: non-finite derived value %g", i, v)
			}
		}
	}
}
