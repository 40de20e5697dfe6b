package metrics

import "github.com/guttosm/marketpulse/internal/domain/models"

// ComputeMASignals compares currentPrice with each average. Averages that are
// missing or not strictly positive produce an "unknown" signal.
func ComputeMASignals(currentPrice float64, mas models.MovingAverages) map[string]models.Signal {
	out := make(map[string]models.Signal, 5)
	for _, nv := range mas.Named() {
		if nv.Value == nil || *nv.Value <= 0 {
			out[nv.Name] = models.Signal{Signal: models.SignalUnknown}
			continue
		}
		ma := *nv.Value
		dir := models.SignalBelow
		if currentPrice > ma {
			dir = models.SignalAbove
		}
		dist := (currentPrice - ma) / ma * 100
		value := ma
		out[nv.Name] = models.Signal{Signal: dir, DistancePercent: &dist, MAValue: &value}
	}
	return out
}
