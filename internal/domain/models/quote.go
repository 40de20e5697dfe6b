package models

import "time"

// Quote is the latest price of an instrument as reported by its provider.
//
// Change fields are optional: providers that cannot supply a previous close
// leave them nil.
type Quote struct {
	Symbol           string
	Name             string
	Price            float64
	Change24h        *float64
	Change24hPercent *float64
}

// Observation is one daily bar. Crypto providers only report a close, so
// High and Low equal Close there.
type Observation struct {
	Date  time.Time
	Close float64
	High  float64
	Low   float64
}

// PriceSeries is a symbol's daily history ordered oldest first, one
// observation per calendar date.
type PriceSeries struct {
	Symbol       string
	Observations []Observation
}

// Len returns the number of observations.
func (p PriceSeries) Len() int { return len(p.Observations) }

// Tail returns the last n observations (all of them when n >= Len).
func (p PriceSeries) Tail(n int) []Observation {
	if n >= len(p.Observations) {
		return p.Observations
	}
	if n <= 0 {
		return nil
	}
	return p.Observations[len(p.Observations)-n:]
}

// Descriptor is display metadata for an instrument.
type Descriptor struct {
	Name     string
	Category string
}

// UnknownCategory is used when a provider cannot describe an instrument.
const UnknownCategory = "Unknown"

// FallbackDescriptor is returned whenever descriptor lookup fails.
func FallbackDescriptor(symbol string) Descriptor {
	return Descriptor{Name: symbol, Category: UnknownCategory}
}
