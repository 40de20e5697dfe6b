package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
)

// AlphaVantageURL is the public Alpha Vantage endpoint.
const AlphaVantageURL = "https://www.alphavantage.co"

// compactLimit is the number of recent trading days Alpha Vantage returns
// for outputsize=compact.
const compactLimit = 100

const avDateLayout = "2006-01-02"

// EquityProfile holds the trading-day windows used for equities.
var EquityProfile = models.Profile{
	Horizon:     models.FullHistory,
	RangeWindow: 252,
	LongWindow:  1000,
	MinHistory:  50,
}

// AlphaVantage prices equities through the Alpha Vantage query API.
type AlphaVantage struct {
	client *resty.Client
	apiKey string
	now    func() time.Time
}

// NewAlphaVantage constructs the equity adapter.
func NewAlphaVantage(opts ClientOptions) *AlphaVantage {
	return &AlphaVantage{
		client: newRestClient(opts, AlphaVantageURL),
		apiKey: opts.APIKey,
		now:    time.Now,
	}
}

func (a *AlphaVantage) Name() string { return "alphavantage" }
func (a *AlphaVantage) Class() models.AssetClass { return models.Equity }
func (a *AlphaVantage) Profile() models.Profile { return EquityProfile }

// avEnvelope carries the status keys Alpha Vantage puts next to any payload.
type avEnvelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

type avQuoteResponse struct {
	avEnvelope
	GlobalQuote map[string]string `json:"Global Quote"`
}

type avBar struct {
	High  string `json:"2. high"`
	Low   string `json:"3. low"`
	Close string `json:"4. close"`
}

type avDailyResponse struct {
	avEnvelope
	Series map[string]avBar `json:"Time Series (Daily)"`
}

type avOverviewResponse struct {
	avEnvelope
	Name   string `json:"Name"`
	Sector string `json:"Sector"`
}

// query runs one function call and decodes the body into out. Rate-limit
// notes and transport failures become ErrUnavailable; the explicit
// "Error Message" becomes ErrNotFound.
func (a *AlphaVantage) query(ctx context.Context, symbol string, params map[string]string, out interface{ envelope() avEnvelope }) error {
	params["symbol"] = symbol
	if a.apiKey != "" {
		params["apikey"] = a.apiKey
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/query")
	if err != nil {
		return unavailable(a.Name(), symbol, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return unavailable(a.Name(), symbol, fmt.Errorf("API error %d", resp.StatusCode()))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return unavailable(a.Name(), symbol, fmt.Errorf("decode %s: %w", params["function"], err))
	}

	env := out.envelope()
	switch {
	case env.Note != "":
		return unavailable(a.Name(), symbol, fmt.Errorf("rate limited: %s", env.Note))
	case env.Information != "":
		return unavailable(a.Name(), symbol, fmt.Errorf("rate limited: %s", env.Information))
	case env.ErrorMessage != "":
		return notFound(a.Name(), symbol, env.ErrorMessage)
	}
	return nil
}

func (r *avQuoteResponse) envelope() avEnvelope { return r.avEnvelope }
func (r *avDailyResponse) envelope() avEnvelope { return r.avEnvelope }
func (r *avOverviewResponse) envelope() avEnvelope { return r.avEnvelope }

// FetchQuote calls GLOBAL_QUOTE. An empty quote object is how Alpha Vantage
// answers for unknown tickers.
func (a *AlphaVantage) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	var body avQuoteResponse
	if err := a.query(ctx, symbol, map[string]string{"function": "GLOBAL_QUOTE"}, &body); err != nil {
		return models.Quote{}, err
	}
	if len(body.GlobalQuote) == 0 {
		return models.Quote{}, notFound(a.Name(), symbol, "empty quote")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(body.GlobalQuote["05. price"]))
	if err != nil {
		return models.Quote{}, unavailable(a.Name(), symbol, fmt.Errorf("parse price: %w", err))
	}
	if !price.IsPositive() {
		return models.Quote{}, notFound(a.Name(), symbol, "no price")
	}

	q := models.Quote{Symbol: symbol, Name: symbol, Price: price.InexactFloat64()}

	prev, err := decimal.NewFromString(strings.TrimSpace(body.GlobalQuote["08. previous close"]))
	if err == nil && prev.IsPositive() {
		q.Change24h = optionalDecimal(body.GlobalQuote["09. change"])
		q.Change24hPercent = optionalDecimal(strings.TrimSuffix(strings.TrimSpace(body.GlobalQuote["10. change percent"]), "%"))
	}
	return q, nil
}

// FetchHistory calls TIME_SERIES_DAILY. Bounded horizons that fit in the
// compact window use outputsize=compact; the result is then trimmed to the
// trailing horizon in calendar days.
func (a *AlphaVantage) FetchHistory(ctx context.Context, symbol string, horizon models.Horizon) (models.PriceSeries, error) {
	size := "full"
	if !horizon.IsFull() && horizon.Days <= compactLimit {
		size = "compact"
	}

	var body avDailyResponse
	err := a.query(ctx, symbol, map[string]string{"function": "TIME_SERIES_DAILY", "outputsize": size}, &body)
	if err != nil {
		return models.PriceSeries{}, err
	}
	if len(body.Series) == 0 {
		return models.PriceSeries{}, unavailable(a.Name(), symbol, fmt.Errorf("empty time series"))
	}

	var cutoff time.Time
	if !horizon.IsFull() {
		y, m, d := a.now().UTC().AddDate(0, 0, -horizon.Days).Date()
		cutoff = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	obs := make([]models.Observation, 0, len(body.Series))
	for day, bar := range body.Series {
		date, err := time.Parse(avDateLayout, day)
		if err != nil {
			logger.L().Warn().Str("provider", a.Name()).Str("symbol", symbol).Str("date", day).Msg("skipping malformed bar date")
			continue
		}
		if !cutoff.IsZero() && date.Before(cutoff) {
			continue
		}
		o, ok := parseBar(date, bar)
		if !ok {
			logger.L().Warn().Str("provider", a.Name()).Str("symbol", symbol).Str("date", day).Msg("skipping malformed bar")
			continue
		}
		obs = append(obs, o)
	}

	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return models.PriceSeries{Symbol: symbol, Observations: obs}, nil
}

// FetchDescriptor calls OVERVIEW for company name and sector.
func (a *AlphaVantage) FetchDescriptor(ctx context.Context, symbol string) models.Descriptor {
	var body avOverviewResponse
	if err := a.query(ctx, symbol, map[string]string{"function": "OVERVIEW"}, &body); err != nil {
		logger.L().Warn().Err(err).Str("symbol", symbol).Msg("descriptor lookup failed")
		return models.FallbackDescriptor(symbol)
	}
	d := models.FallbackDescriptor(symbol)
	if n := strings.TrimSpace(body.Name); n != "" {
		d.Name = n
	}
	if s := strings.TrimSpace(body.Sector); s != "" {
		d.Category = s
	}
	return d
}

func (a *AlphaVantage) Validate(ctx context.Context, symbol string) bool {
	return validateByQuote(ctx, a, symbol)
}

func parseBar(date time.Time, bar avBar) (models.Observation, bool) {
	c, err := decimal.NewFromString(bar.Close)
	if err != nil {
		return models.Observation{}, false
	}
	h, err := decimal.NewFromString(bar.High)
	if err != nil {
		h = c
	}
	l, err := decimal.NewFromString(bar.Low)
	if err != nil {
		l = c
	}
	return models.Observation{
		Date:  date,
		Close: c.InexactFloat64(),
		High:  h.InexactFloat64(),
		Low:   l.InexactFloat64(),
	}, true
}

func optionalDecimal(s string) *float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
