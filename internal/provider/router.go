package provider

import (
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// cryptoSuffix marks USD-quoted crypto pairs.
const cryptoSuffix = "-USD"

// Router classifies symbols and hands out the adapter for their asset class.
// It is the only place in the service that decides Equity vs Crypto.
type Router struct {
	equity    Adapter
	crypto    Adapter
	supported map[string]struct{}
}

// NewRouter builds a router over one adapter per asset class. supported is
// the set of crypto pairs the crypto adapter can price.
func NewRouter(equity, crypto Adapter, supported []string) *Router {
	set := make(map[string]struct{}, len(supported))
	for _, s := range supported {
		set[models.NormalizeSymbol(s)] = struct{}{}
	}
	return &Router{equity: equity, crypto: crypto, supported: set}
}

// Classify is total and deterministic: a symbol is Crypto only when it ends
// in "-USD" and is a supported pair. Everything else is Equity, including
// crypto-looking symbols the crypto provider does not know.
func (r *Router) Classify(symbol string) models.AssetClass {
	s := models.NormalizeSymbol(symbol)
	if !strings.HasSuffix(s, cryptoSuffix) {
		return models.Equity
	}
	if _, ok := r.supported[s]; ok {
		return models.Crypto
	}
	return models.Equity
}

// Route returns the adapter responsible for symbol along with its class.
func (r *Router) Route(symbol string) (Adapter, models.AssetClass) {
	class := r.Classify(symbol)
	if class == models.Crypto {
		return r.crypto, class
	}
	return r.equity, class
}

// Adapter returns the adapter registered for class.
func (r *Router) Adapter(class models.AssetClass) Adapter {
	if class == models.Crypto {
		return r.crypto
	}
	return r.equity
}
