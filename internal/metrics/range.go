package metrics

import (
	"math"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// centeredPosition is reported when the window has zero range.
const centeredPosition = 50.0

// ComputeHighLowRange scans the trailing window for the highest high and the
// lowest low and places currentPrice within that band as a percentage.
//
// A series shorter than window leaves high, low and position nil. The
// position is not clamped: a price outside the window's band yields a value
// below 0 or above 100.
func ComputeHighLowRange(series models.PriceSeries, window int, currentPrice float64) models.HighLowRange {
	out := models.HighLowRange{CurrentPrice: currentPrice}
	if window <= 0 || series.Len() < window {
		return out
	}

	high := math.Inf(-1)
	low := math.Inf(1)
	for _, o := range series.Tail(window) {
		if o.High > high {
			high = o.High
		}
		if o.Low < low {
			low = o.Low
		}
	}

	pos := centeredPosition
	if high != low {
		pos = (currentPrice - low) / (high - low) * 100
	}

	out.Week52High = &high
	out.Week52Low = &low
	out.PositionPercent = &pos
	return out
}
