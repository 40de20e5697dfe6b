package models

import "strings"

// AssetClass is the closed set of instrument families the service can price.
//
// Every symbol is classified into exactly one class; the class decides which
// upstream provider answers for it.
type AssetClass int

const (
	// Equity is a listed stock or ETF ticker (e.g. "AAPL").
	Equity AssetClass = iota
	// Crypto is a supported cryptocurrency pair quoted in USD (e.g. "BTC-USD").
	Crypto
)

// String returns the watchlist storage label for the class.
func (a AssetClass) String() string {
	if a == Crypto {
		return "CRYPTO"
	}
	return "STOCK"
}

// ParseAssetClass maps a stored label back to its class. Unknown labels are Equity.
func ParseAssetClass(s string) AssetClass {
	if strings.EqualFold(strings.TrimSpace(s), "CRYPTO") {
		return Crypto
	}
	return Equity
}

// NormalizeSymbol trims and uppercases a user-supplied ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Horizon tells a provider how much daily history to return.
// Days == 0 means the full history the provider can serve.
type Horizon struct {
	Days int
}

// FullHistory is the unbounded horizon.
var FullHistory = Horizon{}

// IsFull reports whether h asks for everything available.
func (h Horizon) IsFull() bool { return h.Days <= 0 }

// Profile carries the per-provider parameters the metrics engine needs.
//
// Fields:
//   - Horizon: how much history a snapshot requests.
//   - RangeWindow: observations spanning the 52-week high/low window.
//   - LongWindow: observations used for the 200-week average.
//   - MinHistory: below this length every derived metric is absent.
type Profile struct {
	Horizon     Horizon
	RangeWindow int
	LongWindow  int
	MinHistory  int
}
