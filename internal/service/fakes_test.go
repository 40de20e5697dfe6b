package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/provider"
)

// fakeAdapter serves canned quotes and histories and counts calls.
type fakeAdapter struct {
	mu          sync.Mutex
	name        string
	class       models.AssetClass
	profile     models.Profile
	quotes      map[string]models.Quote
	quoteErr    map[string]error
	history     map[string]models.PriceSeries
	historyErr  error
	invalid     map[string]bool
	desc        map[string]models.Descriptor
	quoteCalls  int
	lastHorizon models.Horizon
}

func (f *fakeAdapter) Name() string { return f.name }
func (f *fakeAdapter) Class() models.AssetClass { return f.class }
func (f *fakeAdapter) Profile() models.Profile { return f.profile }

func (f *fakeAdapter) FetchQuote(_ context.Context, sym string) (models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quoteCalls++
	if err, ok := f.quoteErr[sym]; ok {
		return models.Quote{}, err
	}
	q, ok := f.quotes[sym]
	if !ok {
		return models.Quote{}, fmt.Errorf("%s: %w", sym, models.ErrNotFound)
	}
	return q, nil
}

func (f *fakeAdapter) FetchHistory(_ context.Context, sym string, h models.Horizon) (models.PriceSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastHorizon = h
	if f.historyErr != nil {
		return models.PriceSeries{}, f.historyErr
	}
	s, ok := f.history[sym]
	if !ok {
		return models.PriceSeries{Symbol: sym}, nil
	}
	if !h.IsFull() && h.Days < s.Len() {
		s = models.PriceSeries{Symbol: sym, Observations: s.Tail(h.Days)}
	}
	return s, nil
}

func (f *fakeAdapter) FetchDescriptor(_ context.Context, sym string) models.Descriptor {
	if d, ok := f.desc[sym]; ok {
		return d
	}
	return models.FallbackDescriptor(sym)
}

func (f *fakeAdapter) Validate(_ context.Context, sym string) bool { return !f.invalid[sym] }

func (f *fakeAdapter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quoteCalls
}

func linear(sym string, n int, lo, hi float64) models.PriceSeries {
	obs := make([]models.Observation, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	step := (hi - lo) / float64(n-1)
	for i := range obs {
		c := lo + step*float64(i)
		obs[i] = models.Observation{Date: start.AddDate(0, 0, i), Close: c, High: c, Low: c}
	}
	return models.PriceSeries{Symbol: sym, Observations: obs}
}

func newFakes() (*fakeAdapter, *fakeAdapter, *provider.Router) {
	eq := &fakeAdapter{
		name:    "equity",
		class:   models.Equity,
		profile: provider.EquityProfile,
		quotes:  map[string]models.Quote{"AAPL": {Symbol: "AAPL", Name: "AAPL", Price: 190}},
		history: map[string]models.PriceSeries{"AAPL": linear("AAPL", 260, 100, 200)},
		desc:    map[string]models.Descriptor{"AAPL": {Name: "Apple Inc", Category: "Technology"}},
	}
	cr := &fakeAdapter{
		name:    "crypto",
		class:   models.Crypto,
		profile: provider.CryptoProfile,
		quotes:  map[string]models.Quote{"BTC-USD": {Symbol: "BTC-USD", Name: "Bitcoin", Price: 64000}},
		history: map[string]models.PriceSeries{"BTC-USD": linear("BTC-USD", 40, 50000, 64000)},
	}
	return eq, cr, provider.NewRouter(eq, cr, provider.SupportedCryptoSymbols())
}

// memCache is an in-memory cache.Cache for service tests.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttl     map[string]time.Duration
	sets    int
	deletes int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *memCache) Get(_ context.Context, k string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[k]
	return v, ok
}

func (m *memCache) Set(_ context.Context, k string, v []byte, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[k] = v
	m.ttl[k] = ttl
	return true
}

func (m *memCache) Delete(_ context.Context, k string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.data, k)
	return true
}

func (m *memCache) Enabled() bool { return true }
