package metrics

import (
	"fmt"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// Compute derives the snapshot metrics for a series under a provider profile.
//
// When the series is shorter than profile.MinHistory nothing is computed:
// every average and the whole range come back nil together with
// models.ErrInsufficientHistory. Callers treat that error as informational.
func Compute(series models.PriceSeries, currentPrice float64, profile models.Profile) (models.MovingAverages, models.HighLowRange, error) {
	if series.Len() < profile.MinHistory {
		return models.MovingAverages{}, models.HighLowRange{CurrentPrice: currentPrice},
			fmt.Errorf("%d observations, need %d: %w", series.Len(), profile.MinHistory, models.ErrInsufficientHistory)
	}
	mas := StandardMovingAverages(series, profile.LongWindow)
	rng := ComputeHighLowRange(series, profile.RangeWindow, currentPrice)
	return mas, rng, nil
}
