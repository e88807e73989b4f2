package forecast

import (
	"math"
	"testing"
	"time"

	"CycleBand/internal/model"
)

func stepsWindow(steps ...float64) []model.DerivedPoint {
	window := make([]model.DerivedPoint, len(steps))
	for i, s := range steps {
		window[i] = model.DerivedPoint{Step: s, Median: 1000}
	}
	return window
}

func TestProject_AveragesAvailableSteps(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := YearEndOf(today)

	proj := Project(stepsWindow(1, 2, 3, 4, 5), StepRange, today, yearEnd)
	if proj.AvgStep != 3 {
		t.Errorf("avg step = %g, want 3 over the 5 available rows", proj.AvgStep)
	}
	if proj.HorizonDays != StepRange {
		t.Errorf("horizon days = %d, want %d", proj.HorizonDays, StepRange)
	}
}

func TestProject_UsesMostRecentThirty(t *testing.T) {
	steps := make([]float64, 40)
	for i := range steps {
		if i < 30 {
			steps[i] = 2 // averaged
		} else {
			steps[i] = 100 // beyond the range, ignored
		}
	}
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	proj := Project(stepsWindow(steps...), StepRange, today, YearEndOf(today))
	if proj.AvgStep != 2 {
		t.Errorf("avg step = %g, want 2 from the most recent 30 rows", proj.AvgStep)
	}
}

func TestProject_Arithmetic(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := YearEndOf(today) // 305 days ahead

	proj := Project(stepsWindow(2, 2, 2), StepRange, today, yearEnd)
	if want := 1000 + 2.0*305; proj.YearEnd.Price != want {
		t.Errorf("year-end price = %g, want %g", proj.YearEnd.Price, want)
	}
	if want := 1000 + 2.0*30; proj.ShortTerm.Price != want {
		t.Errorf("short-term price = %g, want %g", proj.ShortTerm.Price, want)
	}
	if want := today.AddDate(0, 0, 30); !proj.ShortTerm.Date.Equal(want) {
		t.Errorf("short-term date = %v, want %v", proj.ShortTerm.Date, want)
	}
}

func TestProject_EmptyWindow(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	proj := Project(nil, StepRange, today, YearEndOf(today))
	if proj.AvgStep != 0 || proj.YearEnd.Price != 0 || proj.ShortTerm.Price != 0 {
		t.Errorf("empty window should project zero, got %+v", proj)
	}
}

func TestProject_PastYearEndGoesNegative(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	pastEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	proj := Project(stepsWindow(10), StepRange, today, pastEnd)
	if proj.YearEnd.Price >= 1000 {
		t.Errorf("past year-end should subtract from the baseline, got %g", proj.YearEnd.Price)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 305},
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC), 0},
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompoundFourYear(t *testing.T) {
	if got := CompoundFourYear(0); got != 0 {
		t.Errorf("zero average should compound to zero, got %g", got)
	}
	want := (math.Pow(1.1, 4) - 1) * 100 // ≈ 46.41
	if got := CompoundFourYear(10); math.Abs(got-want) > 1e-9 {
		t.Errorf("CompoundFourYear(10) = %g, want %g", got, want)
	}
}

func TestYearEndOf(t *testing.T) {
	got := YearEndOf(time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC))
	want := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("YearEndOf = %v, want %v", got, want)
	}
}
