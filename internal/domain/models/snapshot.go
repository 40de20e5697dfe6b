package models

import "time"

// MovingAverages holds the standard set of trailing means. A nil field means
// there was not enough history for that window.
//
// swagger:model MovingAverages
type MovingAverages struct {
	MA50      *float64 `json:"ma_50"`
	MA100     *float64 `json:"ma_100"`
	MA150     *float64 `json:"ma_150"`
	MA200Day  *float64 `json:"ma_200_day"`
	MA200Week *float64 `json:"ma_200_week"`
}

// Named returns the averages keyed by their JSON names, in a stable order.
func (m MovingAverages) Named() []NamedValue {
	return []NamedValue{
		{Name: "ma_50", Value: m.MA50},
		{Name: "ma_100", Value: m.MA100},
		{Name: "ma_150", Value: m.MA150},
		{Name: "ma_200_day", Value: m.MA200Day},
		{Name: "ma_200_week", Value: m.MA200Week},
	}
}

// NamedValue is an optional metric with its public name.
type NamedValue struct {
	Name  string
	Value *float64
}

// HighLowRange places the current price inside the 52-week trading range.
// All optional fields are nil together when history is too short.
//
// swagger:model HighLowRange
type HighLowRange struct {
	Week52High      *float64 `json:"week_52_high"`
	Week52Low       *float64 `json:"week_52_low"`
	CurrentPrice    float64  `json:"current_price"`
	PositionPercent *float64 `json:"position_percent"`
}

// Snapshot is the aggregated analysis returned for a symbol and stored in the cache.
//
// swagger:model Snapshot
type Snapshot struct {
	Symbol           string         `json:"symbol" example:"AAPL"`
	Name             string         `json:"name" example:"AAPL"`
	CurrentPrice     float64        `json:"current_price" example:"189.84"`
	Change24h        *float64       `json:"change_24h"`
	Change24hPercent *float64       `json:"change_24h_percent"`
	MovingAverages   MovingAverages `json:"moving_averages"`
	HighLowRange     HighLowRange   `json:"high_low_range"`
	LastUpdated      time.Time      `json:"last_updated"`
}

// Signal direction values.
const (
	SignalAbove   = "above"
	SignalBelow   = "below"
	SignalUnknown = "unknown"
)

// Signal compares the current price against one moving average.
type Signal struct {
	Signal          string   `json:"signal" example:"above"`
	DistancePercent *float64 `json:"distance_percent,omitempty"`
	MAValue         *float64 `json:"ma_value,omitempty"`
}

// SignalReport is the per-average signal view of a snapshot.
type SignalReport struct {
	Symbol       string            `json:"symbol"`
	CurrentPrice float64           `json:"current_price"`
	Signals      map[string]Signal `json:"signals"`
}

// ChartPoint is one closing price on a chart.
type ChartPoint struct {
	Date  string  `json:"date" example:"2024-09-03"`
	Price float64 `json:"price" example:"222.77"`
}

// Chart is a closing-price series for display.
type Chart struct {
	Symbol string       `json:"symbol"`
	Prices []ChartPoint `json:"prices"`
}
