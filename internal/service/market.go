package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/guttosm/marketpulse/internal/cache"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/metrics"
	"github.com/guttosm/marketpulse/internal/provider"
)

// DefaultChartDays is the chart length used when none is requested.
const DefaultChartDays = 30

// MarketService assembles quotes, history and metrics into the public views.
type MarketService interface {
	// GetSnapshot returns the cached snapshot for symbol or builds a fresh one.
	// Quote failures surface as wrapped models.ErrNotFound or models.ErrUnavailable.
	GetSnapshot(ctx context.Context, symbol string) (*models.Snapshot, error)
	// GetChart returns closing prices for the trailing days.
	GetChart(ctx context.Context, symbol string, days int) (*models.Chart, error)
	// GetSignals compares the snapshot price against each moving average.
	GetSignals(ctx context.Context, symbol string) (*models.SignalReport, error)
	// Refresh rebuilds the snapshot without reading the cache and overwrites
	// the cached entry. A failed rebuild leaves the old entry in place.
	Refresh(ctx context.Context, symbol string) (*models.Snapshot, error)
}

type marketService struct {
	router *provider.Router
	cache  cache.Cache
	now    func() time.Time
}

// Option customizes a market service.
type Option func(*marketService)

// WithClock overrides the clock used for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *marketService) { s.now = now }
}

// NewMarketService wires the router and cache. Pass cache.Disabled() to run
// without caching.
func NewMarketService(router *provider.Router, c cache.Cache, opts ...Option) MarketService {
	s := &marketService{router: router, cache: c, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.cache == nil {
		s.cache = cache.Disabled()
	}
	return s
}

func (s *marketService) GetSnapshot(ctx context.Context, symbol string) (*models.Snapshot, error) {
	sym := models.NormalizeSymbol(symbol)
	key := cache.SnapshotKey(sym)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var snap models.Snapshot
		err := json.Unmarshal(raw, &snap)
		if err == nil {
			logger.L().Debug().Str("symbol", sym).Msg("snapshot_cache_hit")
			return &snap, nil
		}
		logger.L().Warn().Err(err).Str("symbol", sym).Msg("discarding undecodable cache entry")
	}

	snap, complete, err := s.build(ctx, sym)
	if err != nil {
		return nil, err
	}
	if complete {
		s.store(ctx, key, snap)
	}
	return snap, nil
}

// store overwrites the cached entry for key with snap.
func (s *marketService) store(ctx context.Context, key string, snap *models.Snapshot) {
	if !s.cache.Enabled() {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		logger.L().Error().Err(err).Str("key", key).Msg("snapshot encode failed")
		return
	}
	if !s.cache.Set(ctx, key, raw, cache.SnapshotTTL) {
		logger.L().Warn().Str("key", key).Msg("snapshot cache write skipped")
	}
}

// build fetches from the routed provider and runs the metrics engine.
// complete is false when the history call failed; such a snapshot is served
// but never cached.
func (s *marketService) build(ctx context.Context, sym string) (snap *models.Snapshot, complete bool, err error) {
	adapter, class := s.router.Route(sym)
	profile := adapter.Profile()

	quote, err := adapter.FetchQuote(ctx, sym)
	if err != nil {
		logger.L().Info().Err(err).Str("symbol", sym).Str("provider", adapter.Name()).Msg("quote failed")
		return nil, false, fmt.Errorf("quote %s: %w", sym, err)
	}

	complete = true
	series, err := adapter.FetchHistory(ctx, sym, profile.Horizon)
	if err != nil {
		complete = false
		// metrics degrade to absent; the quote alone is still served
		logger.L().Warn().Err(err).Str("symbol", sym).Str("provider", adapter.Name()).Msg("history unavailable")
		series = models.PriceSeries{Symbol: sym}
	}

	mas, rng, err := metrics.Compute(series, quote.Price, profile)
	if err != nil {
		logger.L().Info().Err(err).Str("symbol", sym).Str("class", class.String()).Msg("metrics omitted")
	}

	name := quote.Name
	if name == "" {
		name = sym
	}
	return &models.Snapshot{
		Symbol:           sym,
		Name:             name,
		CurrentPrice:     quote.Price,
		Change24h:        quote.Change24h,
		Change24hPercent: quote.Change24hPercent,
		MovingAverages:   mas,
		HighLowRange:     rng,
		LastUpdated:      s.now().UTC(),
	}, complete, nil
}

func (s *marketService) GetChart(ctx context.Context, symbol string, days int) (*models.Chart, error) {
	sym := models.NormalizeSymbol(symbol)
	if days <= 0 {
		days = DefaultChartDays
	}
	adapter, _ := s.router.Route(sym)

	series, err := adapter.FetchHistory(ctx, sym, models.Horizon{Days: days})
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", sym, err)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("chart %s: no chart data: %w", sym, models.ErrNotFound)
	}

	points := make([]models.ChartPoint, 0, series.Len())
	for _, o := range series.Observations {
		points = append(points, models.ChartPoint{Date: o.Date.Format("2006-01-02"), Price: o.Close})
	}
	return &models.Chart{Symbol: sym, Prices: points}, nil
}

func (s *marketService) GetSignals(ctx context.Context, symbol string) (*models.SignalReport, error) {
	snap, err := s.GetSnapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &models.SignalReport{
		Symbol:       snap.Symbol,
		CurrentPrice: snap.CurrentPrice,
		Signals:      metrics.ComputeMASignals(snap.CurrentPrice, snap.MovingAverages),
	}, nil
}

func (s *marketService) Refresh(ctx context.Context, symbol string) (*models.Snapshot, error) {
	sym := models.NormalizeSymbol(symbol)
	snap, complete, err := s.build(ctx, sym)
	if err != nil {
		return nil, err
	}
	if complete {
		s.store(ctx, cache.SnapshotKey(sym), snap)
	} else {
		logger.L().Warn().Str("symbol", sym).Msg("refresh kept previous snapshot: history unavailable")
	}
	return snap, nil
}
