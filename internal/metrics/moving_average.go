package metrics

import "github.com/guttosm/marketpulse/internal/domain/models"

// Standard daily windows reported in every snapshot.
const (
	Window50  = 50
	Window100 = 100
	Window150 = 150
	Window200 = 200
)

// StandardWindows is the daily window set, shortest first.
var StandardWindows = []int{Window50, Window100, Window150, Window200}

// MovingAverage returns the mean of the last window closes.
// ok is false when the series is shorter than window.
func MovingAverage(series models.PriceSeries, window int) (value float64, ok bool) {
	if window <= 0 || series.Len() < window {
		return 0, false
	}
	sum := 0.0
	for _, o := range series.Tail(window) {
		sum += o.Close
	}
	return sum / float64(window), true
}

// ComputeMovingAverages evaluates every requested window. A window longer
// than the series maps to nil, never to zero.
func ComputeMovingAverages(series models.PriceSeries, windows []int) map[int]*float64 {
	out := make(map[int]*float64, len(windows))
	for _, w := range windows {
		if v, ok := MovingAverage(series, w); ok {
			out[w] = &v
		} else {
			out[w] = nil
		}
	}
	return out
}

// StandardMovingAverages builds the public average set. The 200-week value
// averages the most recent min(longWindow, len) observations, so it is only
// absent for an empty series.
func StandardMovingAverages(series models.PriceSeries, longWindow int) models.MovingAverages {
	daily := ComputeMovingAverages(series, StandardWindows)
	out := models.MovingAverages{
		MA50:     daily[Window50],
		MA100:    daily[Window100],
		MA150:    daily[Window150],
		MA200Day: daily[Window200],
	}

	n := longWindow
	if n <= 0 || n > series.Len() {
		n = series.Len()
	}
	if v, ok := MovingAverage(series, n); ok {
		out.MA200Week = &v
	}
	return out
}
