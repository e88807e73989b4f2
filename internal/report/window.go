package report

import "CycleBand/internal/model"

// MinWindow is the smallest display window the report will accept.
const MinWindow = 33

// SelectWindow returns the trailing n points of the derived series ordered
// most recent first. Requests smaller than MinWindow are clamped up, and the
// input series is left untouched.
func SelectWindow(series []model.DerivedPoint, n int) []model.DerivedPoint {
	if n < MinWindow {
		n = MinWindow
	}
	if n > len(series) {
		n = len(series)
	}
	window := make([]model.DerivedPoint, n)
	for i := 0; i < n; i++ {
		window[i] = series[len(series)-1-i]
	}
	return window
}
