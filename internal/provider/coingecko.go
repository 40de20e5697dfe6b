package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
)

// CoinGeckoURL is the public CoinGecko v3 endpoint.
const CoinGeckoURL = "https://api.coingecko.com/api/v3"

// CryptoCategory is the descriptor category for every coin.
const CryptoCategory = "Cryptocurrency"

// CoinGeckoIDs maps supported USD pairs to CoinGecko coin ids.
var CoinGeckoIDs = map[string]string{
	"BTC-USD":   "bitcoin",
	"ETH-USD":   "ethereum",
	"SOL-USD":   "solana",
	"DOGE-USD":  "dogecoin",
	"ADA-USD":   "cardano",
	"XRP-USD":   "ripple",
	"DOT-USD":   "polkadot",
	"MATIC-USD": "matic-network",
	"AVAX-USD":  "avalanche-2",
	"LINK-USD":  "chainlink",
}

// SupportedCryptoSymbols lists the keys of CoinGeckoIDs in sorted order.
func SupportedCryptoSymbols() []string {
	out := make([]string, 0, len(CoinGeckoIDs))
	for s := range CoinGeckoIDs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// CryptoProfile covers a 365 calendar-day fetch: the 200-week average is
// capped at what that fetch can hold.
var CryptoProfile = models.Profile{
	Horizon:     models.Horizon{Days: 365},
	RangeWindow: 365,
	LongWindow:  364,
	MinHistory:  50,
}

// CoinGecko prices the supported crypto pairs.
type CoinGecko struct {
	client *resty.Client
	ids    map[string]string
}

// NewCoinGecko constructs the crypto adapter. A non-empty APIKey is sent as
// the demo-plan header.
func NewCoinGecko(opts ClientOptions) *CoinGecko {
	c := newRestClient(opts, CoinGeckoURL)
	if opts.APIKey != "" {
		c.SetHeader("x-cg-demo-api-key", opts.APIKey)
	}
	return &CoinGecko{client: c, ids: CoinGeckoIDs}
}

func (g *CoinGecko) Name() string { return "coingecko" }
func (g *CoinGecko) Class() models.AssetClass { return models.Crypto }
func (g *CoinGecko) Profile() models.Profile { return CryptoProfile }

type cgCoin struct {
	Name       string `json:"name"`
	MarketData *struct {
		CurrentPrice             map[string]decimal.Decimal `json:"current_price"`
		PriceChange24h           decimal.NullDecimal        `json:"price_change_24h"`
		PriceChangePercentage24h decimal.NullDecimal        `json:"price_change_percentage_24h"`
	} `json:"market_data"`
}

type cgMarketChart struct {
	Prices [][]float64 `json:"prices"`
}

func (g *CoinGecko) coinID(symbol string) (string, bool) {
	id, ok := g.ids[models.NormalizeSymbol(symbol)]
	return id, ok
}

// get performs one request and decodes the JSON body. 404 is the only
// status treated as a definitive "no such coin".
func (g *CoinGecko) get(ctx context.Context, symbol, path string, params map[string]string, out any) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return unavailable(g.Name(), symbol, err)
	}
	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		return notFound(g.Name(), symbol, "unknown coin")
	case code != http.StatusOK:
		return unavailable(g.Name(), symbol, fmt.Errorf("API error %d", code))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return unavailable(g.Name(), symbol, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func (g *CoinGecko) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	id, ok := g.coinID(symbol)
	if !ok {
		return models.Quote{}, notFound(g.Name(), symbol, "unsupported pair")
	}

	var coin cgCoin
	err := g.get(ctx, symbol, "/coins/"+id, map[string]string{
		"localization":   "false",
		"tickers":        "false",
		"market_data":    "true",
		"community_data": "false",
		"developer_data": "false",
		"sparkline":      "false",
	}, &coin)
	if err != nil {
		return models.Quote{}, err
	}
	if coin.MarketData == nil {
		return models.Quote{}, unavailable(g.Name(), symbol, fmt.Errorf("missing market_data"))
	}
	usd, ok := coin.MarketData.CurrentPrice["usd"]
	if !ok || !usd.IsPositive() {
		return models.Quote{}, unavailable(g.Name(), symbol, fmt.Errorf("missing usd price"))
	}

	q := models.Quote{Symbol: symbol, Name: coin.Name, Price: usd.InexactFloat64()}
	if q.Name == "" {
		q.Name = symbol
	}
	if v := coin.MarketData.PriceChange24h; v.Valid {
		f := v.Decimal.InexactFloat64()
		q.Change24h = &f
	}
	if v := coin.MarketData.PriceChangePercentage24h; v.Valid {
		f := v.Decimal.InexactFloat64()
		q.Change24hPercent = &f
	}
	return q, nil
}

// FetchHistory calls market_chart with daily interval. CoinGecko reports
// closes only, so high and low equal the close. When several samples land on
// the same UTC day the latest one wins.
func (g *CoinGecko) FetchHistory(ctx context.Context, symbol string, horizon models.Horizon) (models.PriceSeries, error) {
	id, ok := g.coinID(symbol)
	if !ok {
		return models.PriceSeries{}, notFound(g.Name(), symbol, "unsupported pair")
	}
	days := "max"
	if !horizon.IsFull() {
		days = strconv.Itoa(horizon.Days)
	}

	var chart cgMarketChart
	err := g.get(ctx, symbol, "/coins/"+id+"/market_chart", map[string]string{
		"vs_currency": "usd",
		"days":        days,
		"interval":    "daily",
	}, &chart)
	if err != nil {
		return models.PriceSeries{}, err
	}

	type sample struct {
		at    int64
		price float64
	}
	byDay := make(map[time.Time]sample, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		ms := int64(p[0])
		ts := time.UnixMilli(ms).UTC()
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		if cur, ok := byDay[day]; !ok || ms >= cur.at {
			byDay[day] = sample{at: ms, price: p[1]}
		}
	}
	if len(byDay) == 0 {
		return models.PriceSeries{}, unavailable(g.Name(), symbol, fmt.Errorf("empty price history"))
	}

	obs := make([]models.Observation, 0, len(byDay))
	for day, s := range byDay {
		obs = append(obs, models.Observation{Date: day, Close: s.price, High: s.price, Low: s.price})
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return models.PriceSeries{Symbol: symbol, Observations: obs}, nil
}

func (g *CoinGecko) FetchDescriptor(ctx context.Context, symbol string) models.Descriptor {
	id, ok := g.coinID(symbol)
	if !ok {
		return models.FallbackDescriptor(symbol)
	}
	var coin cgCoin
	err := g.get(ctx, symbol, "/coins/"+id, map[string]string{
		"localization": "false",
		"tickers":      "false",
		"market_data":  "false",
	}, &coin)
	if err != nil || strings.TrimSpace(coin.Name) == "" {
		logger.L().Warn().Err(err).Str("symbol", symbol).Msg("descriptor lookup failed")
		return models.FallbackDescriptor(symbol)
	}
	return models.Descriptor{Name: coin.Name, Category: CryptoCategory}
}

// Validate answers from the local id table; no request is made.
func (g *CoinGecko) Validate(_ context.Context, symbol string) bool {
	_, ok := g.coinID(symbol)
	return ok
}
